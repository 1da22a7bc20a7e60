package integration

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"hire-rank/internal/app"
	"hire-rank/internal/config"
	"hire-rank/internal/database"
	"hire-rank/internal/database/migration"
	dbpostgres "hire-rank/internal/database/postgres"
	"hire-rank/internal/domain/matching"
	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/usecase"
	"hire-rank/migrations"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_MatchAndRankOnPostgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	r := migration.Runner{FS: migrations.FS}
	require.NoError(t, r.Run(ctx, db.SQLDB()))

	jobID, candidateIDs := seed(t, ctx, db)
	defer cleanup(t, db, jobID, candidateIDs)

	repos := app.PostgresRepositories(db)
	matches := usecase.NewMatchResultUsecase(repos, matching.NoSignals{}, 4, nil)
	rankings := usecase.NewRankingUsecase(repos, nil, usecase.RankingOptions{DefaultWeights: ranking.DefaultWeights(), CriteriaVersion: "it"}, nil)

	t.Run("concurrent rescoring keeps one latest", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := matches.CreateOrUpdateMatch(ctx, jobID, candidateIDs[0])
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		var latest int
		require.NoError(t, db.QueryRow(ctx, `SELECT count(*) FROM match_results WHERE job_id = $1 AND candidate_id = $2 AND is_latest`, jobID, candidateIDs[0]).Scan(&latest))
		assert.Equal(t, 1, latest)
	})

	t.Run("batch and rank", func(t *testing.T) {
		report, err := matches.ProcessAllCandidatesForJob(ctx, jobID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, report.Processed, 2)

		first, err := rankings.GenerateRanking(ctx, jobID, nil)
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Nil(t, first[0].PreviousRankPosition)

		second, err := rankings.GenerateRanking(ctx, jobID, nil)
		require.NoError(t, err)
		assert.Equal(t, first[0].Generation+1, second[0].Generation)
		require.NotNil(t, second[0].PreviousRankPosition)
		assert.Equal(t, 1, *second[0].PreviousRankPosition)

		err = rankings.DeleteRanking(ctx, second[0].ID)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		assert.NoError(t, rankings.DeleteRanking(ctx, first[1].ID))
	})

	t.Run("concurrent runs allocate distinct generations", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := rankings.GenerateRanking(ctx, jobID, nil)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		current, err := rankings.GetCurrentRankings(ctx, jobID)
		require.NoError(t, err)
		require.Len(t, current, 2)
		assert.Equal(t, current[0].Generation, current[1].Generation)
		assert.Equal(t, 1, current[0].RankPosition)
		assert.Equal(t, 2, current[1].RankPosition)
	})
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("RANK_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("RANK_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("RANK_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("RANK_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("RANK_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("RANK_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set RANK_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	require.NoError(t, err, "connect db")
	return db
}

func seed(t *testing.T, ctx context.Context, db database.DB) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	jobID := uuid.New()
	_, err := db.Exec(ctx, `INSERT INTO jobs (id, title, required_skills, required_experience, required_education) VALUES ($1, $2, $3, $4, $5)`,
		jobID, "Integration Engineer", "Go, SQL, Kubernetes", "3-5", "Bachelor")
	require.NoError(t, err)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	rows := []struct {
		name, skills, education string
		years                   int
	}{
		{"Ada", "go, sql, kubernetes", "Master of Science", 4},
		{"Alan", "go, sql", "Bachelor of Arts", 1},
	}
	for i, r := range rows {
		_, err := db.Exec(ctx, `INSERT INTO candidates (id, full_name, email, skills, experience_years, education) VALUES ($1, $2, $3, $4, $5, $6)`,
			ids[i], r.name, r.name+"@example.com", r.skills, r.years, r.education)
		require.NoError(t, err)
	}
	return jobID, ids
}

// cleanup relies on ON DELETE CASCADE from jobs and candidates.
func cleanup(t *testing.T, db database.DB, jobID uuid.UUID, candidateIDs []uuid.UUID) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID); err != nil {
		t.Logf("cleanup jobs: %v", err)
	}
	if _, err := db.Exec(ctx, `DELETE FROM candidates WHERE id = ANY($1)`, candidateIDs); err != nil {
		t.Logf("cleanup candidates: %v", err)
	}
}

func stringsOrDefault(v string, def string) string {
	if v != "" {
		return v
	}
	return def
}

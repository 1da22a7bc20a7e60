package seeder

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"hire-rank/internal/database"
	"hire-rank/internal/dataset"
	"hire-rank/internal/domain/candidate"
	"hire-rank/internal/domain/job"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB answers the information_schema probe with every column it is
// told about and records writes made inside transactions.
type fakeDB struct {
	columns   []string
	execs     []string
	execErr   error
	committed int
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(_ context.Context, q string, _ ...any) (int64, error) {
	f.execs = append(f.execs, q)
	return 1, f.execErr
}

func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return &fakeRows{vals: f.columns, i: -1}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }

func (f *fakeDB) Begin(context.Context) (database.Tx, error) { return &fakeTx{db: f}, nil }

type fakeTx struct{ db *fakeDB }

func (t *fakeTx) Exec(ctx context.Context, q string, args ...any) (int64, error) {
	return t.db.Exec(ctx, q, args...)
}
func (t *fakeTx) Query(ctx context.Context, q string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, q, args...)
}
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (t *fakeTx) Commit(context.Context) error {
	t.db.committed++
	return nil
}
func (t *fakeTx) Rollback(context.Context) error { return nil }

type fakeRows struct {
	vals []string
	i    int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	r.i++
	return r.i < len(r.vals)
}
func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.vals[r.i]
	return nil
}

var allColumns = []string{
	"id", "title", "required_skills", "required_experience", "required_education",
	"full_name", "email", "skills", "experience_years", "education", "current_resume_id",
}

func TestRunner_SeedsDataset(t *testing.T) {
	db := &fakeDB{columns: allColumns}
	ds := dataset.Dataset{
		Jobs:       []job.Job{{ID: uuid.New(), Title: "a"}, {ID: uuid.New(), Title: "b"}},
		Candidates: []candidate.Candidate{{ID: uuid.New(), FullName: "c"}},
	}

	err := Runner{Seeders: ForDataset(ds)}.Run(context.Background(), db)
	require.NoError(t, err)

	require.Len(t, db.execs, 3)
	assert.True(t, strings.HasPrefix(db.execs[0], "INSERT INTO jobs"))
	assert.True(t, strings.HasPrefix(db.execs[2], "INSERT INTO candidates"))
	assert.Equal(t, 2, db.committed)
}

func TestRunner_SchemaMismatch(t *testing.T) {
	db := &fakeDB{columns: []string{"id"}}

	err := Runner{Seeders: []Seeder{JobsSeeder{}}}.Run(context.Background(), db)
	assert.ErrorContains(t, err, "seed jobs: schema mismatch: missing column jobs.title")
}

func TestRunner_StopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	db := &fakeDB{columns: allColumns, execErr: boom}
	ds := dataset.Dataset{
		Jobs:       []job.Job{{ID: uuid.New(), Title: "a"}},
		Candidates: []candidate.Candidate{{ID: uuid.New(), FullName: "c"}},
	}

	err := Runner{Seeders: ForDataset(ds)}.Run(context.Background(), db)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, db.execs, 1)
	assert.Zero(t, db.committed)
}

func TestRunner_NilDB(t *testing.T) {
	assert.Error(t, Runner{}.Run(context.Background(), nil))
}

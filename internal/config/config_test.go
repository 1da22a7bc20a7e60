package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hire-rank/internal/domain/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_NAME", "hire-rank")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "9090")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME, APP_ENV, HTTP_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, ranking.DefaultWeights(), cfg.Ranking.DefaultWeights)
	assert.Equal(t, 4, cfg.Ranking.BatchWorkers)
	assert.Equal(t, "v1.0", cfg.Ranking.CriteriaVersion)
	assert.Equal(t, "hash", cfg.Ranking.Signals)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RANK_WEIGHT_SKILLS", "40")
	t.Setenv("RANK_WEIGHT_EXPERIENCE", "30")
	t.Setenv("RANK_WEIGHT_EDUCATION", "10")
	t.Setenv("RANK_WEIGHT_PERSONALITY", "10")
	t.Setenv("RANK_WEIGHT_CULTURAL_FIT", "10")
	t.Setenv("DB_POOL_MAX_CONNS", "12")
	t.Setenv("DB_POOL_MAX_CONN_LIFETIME", "30m")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_TTL", "60")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ranking.Weights{Skills: 40, Experience: 30, Education: 10, Personality: 10, CulturalFit: 10}, cfg.Ranking.DefaultWeights)
	assert.Equal(t, int32(12), cfg.Database.PoolMaxConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.PoolMaxConnLifetime)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
}

func TestLoad_InvalidDefaultWeights(t *testing.T) {
	setRequired(t)
	t.Setenv("RANK_WEIGHT_SKILLS", "80")

	_, err := Load()
	assert.ErrorIs(t, err, ranking.ErrInvalidWeightConfiguration)
}

func TestLoad_UnknownSignals(t *testing.T) {
	setRequired(t)
	t.Setenv("RANK_SIGNALS", "llm")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), "rank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rank_batch_workers: 9\nrank_criteria_version: v2.0\n"), 0o600))
	t.Setenv("RANK_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Ranking.BatchWorkers)
	assert.Equal(t, "v2.0", cfg.Ranking.CriteriaVersion)
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, ranking.DefaultWeights(), cfg.Ranking.DefaultWeights)
	assert.Equal(t, "hire-rank", cfg.App.AppName)
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hire-rank/internal/domain/ranking"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Ranking  RankingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	AutoMigrate   bool
	MigrationsDir string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type RankingConfig struct {
	DefaultWeights  ranking.Weights
	BatchWorkers    int
	CriteriaVersion string
	// Signals selects the supplementary score provider: "hash" or "none".
	Signals string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if file := strings.TrimSpace(v.GetString("rank_config_file")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_json", false)
	v.SetDefault("log_debug", false)

	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_connect_timeout", 5*time.Second)
	v.SetDefault("db_auto_migrate", true)

	v.SetDefault("redis_enabled", false)
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_ttl", 600)

	d := ranking.DefaultWeights()
	v.SetDefault("rank_weight_skills", d.Skills)
	v.SetDefault("rank_weight_experience", d.Experience)
	v.SetDefault("rank_weight_education", d.Education)
	v.SetDefault("rank_weight_personality", d.Personality)
	v.SetDefault("rank_weight_cultural_fit", d.CulturalFit)
	v.SetDefault("rank_batch_workers", 4)
	v.SetDefault("rank_criteria_version", "v1.0")
	v.SetDefault("rank_signals", "hash")
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, strings.ToUpper(key))
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("app_name"),
		Environment: req("app_env"),
		HTTPPort:    req("http_port"),
		LogJSON:     v.GetBool("log_json"),
		LogDebug:    v.GetBool("log_debug"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("db_host"),
		DBPort:     opt("db_port"),
		DBName:     opt("db_name"),
		DBUser:     opt("db_user"),
		DBPassword: v.GetString("db_password"),
		DBSSLMode:  opt("db_ssl_mode"),

		ConnectTimeout:        v.GetDuration("db_connect_timeout"),
		PoolMaxConns:          v.GetInt32("db_pool_max_conns"),
		PoolMinConns:          v.GetInt32("db_pool_min_conns"),
		PoolMaxConnLifetime:   v.GetDuration("db_pool_max_conn_lifetime"),
		PoolMaxConnIdleTime:   v.GetDuration("db_pool_max_conn_idle_time"),
		PoolHealthCheckPeriod: v.GetDuration("db_pool_health_check_period"),

		AutoMigrate:   v.GetBool("db_auto_migrate"),
		MigrationsDir: opt("db_migrations_dir"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("redis_enabled"),
		Host:     opt("redis_host"),
		Port:     opt("redis_port"),
		Password: v.GetString("redis_password"),
		DB:       v.GetInt("redis_db"),
		TTL:      time.Duration(v.GetInt("redis_ttl")) * time.Second,
	}

	cfg.Ranking = RankingConfig{
		DefaultWeights: ranking.Weights{
			Skills:      v.GetFloat64("rank_weight_skills"),
			Experience:  v.GetFloat64("rank_weight_experience"),
			Education:   v.GetFloat64("rank_weight_education"),
			Personality: v.GetFloat64("rank_weight_personality"),
			CulturalFit: v.GetFloat64("rank_weight_cultural_fit"),
		},
		BatchWorkers:    v.GetInt("rank_batch_workers"),
		CriteriaVersion: opt("rank_criteria_version"),
		Signals:         strings.ToLower(opt("rank_signals")),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if err := cfg.Ranking.DefaultWeights.Validate(); err != nil {
		return Config{}, fmt.Errorf("default ranking weights: %w", err)
	}
	switch cfg.Ranking.Signals {
	case "hash", "none":
	default:
		return Config{}, fmt.Errorf("unknown RANK_SIGNALS %q", cfg.Ranking.Signals)
	}

	return cfg, nil
}

// Defaults is the configuration used without an environment, as the CLI does.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	v.Set("app_name", "hire-rank")
	v.Set("app_env", "local")
	v.Set("http_port", "8080")
	cfg, _ := fromViper(v)
	return cfg
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Google       Google       `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Naver        Naver        `mapstructure:",squash"`
	DailyTrigger DailyTrigger `mapstructure:",squash"`
	JobRunner    JobRunner    `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

// Redis vazio significa lock em memória (apenas um processo)
type Redis struct {
	URL string `mapstructure:"redis_url"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Google struct {
	BaseURL           string        `mapstructure:"google_ads_base_url"`
	APIVersion        string        `mapstructure:"google_ads_api_version"`
	DeveloperToken    string        `mapstructure:"google_ads_developer_token"`
	OAuthClientID     string        `mapstructure:"google_oauth_client_id"`
	OAuthClientSecret string        `mapstructure:"google_oauth_client_secret"`
	OAuthTokenURL     string        `mapstructure:"google_oauth_token_url"`
	ChunkDays         int           `mapstructure:"google_chunk_days"`
	RequestDelay      time.Duration `mapstructure:"google_request_delay"`
}

type Meta struct {
	BaseURL         string        `mapstructure:"meta_base_url"`
	URL             string        `mapstructure:"meta_url"`
	Version         string        `mapstructure:"meta_version"`
	AppID           string        `mapstructure:"meta_app_id"`
	AppSecret       string        `mapstructure:"meta_app_secret"`
	ExchangeToken   bool          `mapstructure:"meta_exchange_long_lived"`
	ChunkDays       int           `mapstructure:"meta_chunk_days"`
	PageLimit       int           `mapstructure:"meta_page_limit"`
	RequestDelay    time.Duration `mapstructure:"meta_request_delay"`
	// Em ordem de prioridade: vale só o primeiro action_type presente em cada linha
	ConversionTypes []string      `mapstructure:"meta_conversion_action_types"`
}

type Naver struct {
	BaseURL        string        `mapstructure:"naver_base_url"`
	APIKey         string        `mapstructure:"naver_api_key"`
	SecretKey      string        `mapstructure:"naver_secret_key"`
	StatsBatchSize int           `mapstructure:"naver_stats_batch_size"`
	RequestDelay   time.Duration `mapstructure:"naver_request_delay"`
}

type DailyTrigger struct {
	CronSchedule     string        `mapstructure:"daily_trigger_cron"`
	Platforms        []string      `mapstructure:"daily_trigger_platforms"`
	CollectionTypes  []string      `mapstructure:"daily_trigger_collection_types"`
	IntegrationDelay time.Duration `mapstructure:"daily_trigger_integration_delay"`
	Enabled          bool          `mapstructure:"daily_trigger_enabled"`
}

type JobRunner struct {
	CronSchedule string        `mapstructure:"job_runner_cron"`
	BatchSize    int           `mapstructure:"job_runner_batch_size"`
	JobDelay     time.Duration `mapstructure:"job_runner_job_delay"`
	JobTimeout   time.Duration `mapstructure:"job_runner_job_timeout"`
	StaleAfter   time.Duration `mapstructure:"job_runner_stale_after"`
	Enabled      bool          `mapstructure:"job_runner_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/growth?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	// Os jobs são sequenciais; poucas conexões bastam
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_API_VERSION", "v18")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_OAUTH_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_OAUTH_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_OAUTH_TOKEN_URL", "") // vazio usa o endpoint padrão do Google
	viper.SetDefault("GOOGLE_CHUNK_DAYS", 30)
	viper.SetDefault("GOOGLE_REQUEST_DELAY", "500ms")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_EXCHANGE_LONG_LIVED", false)
	viper.SetDefault("META_CHUNK_DAYS", 7)
	viper.SetDefault("META_PAGE_LIMIT", 500)
	viper.SetDefault("META_REQUEST_DELAY", "1s")
	viper.SetDefault("META_CONVERSION_ACTION_TYPES", "purchase,offsite_conversion.fb_pixel_purchase")

	viper.SetDefault("NAVER_BASE_URL", "https://api.searchad.naver.com")
	viper.SetDefault("NAVER_API_KEY", "")
	viper.SetDefault("NAVER_SECRET_KEY", "")
	viper.SetDefault("NAVER_STATS_BATCH_SIZE", 100)
	viper.SetDefault("NAVER_REQUEST_DELAY", "100ms")

	// Horários em KST (UTC+9)
	viper.SetDefault("DAILY_TRIGGER_CRON", "0 6 * * *")
	viper.SetDefault("DAILY_TRIGGER_PLATFORMS", "Google,Meta,Naver")
	viper.SetDefault("DAILY_TRIGGER_COLLECTION_TYPES", "daily")
	viper.SetDefault("DAILY_TRIGGER_INTEGRATION_DELAY", "1s")
	viper.SetDefault("DAILY_TRIGGER_ENABLED", false)

	viper.SetDefault("JOB_RUNNER_CRON", "*/5 * * * *")
	viper.SetDefault("JOB_RUNNER_BATCH_SIZE", 10)
	viper.SetDefault("JOB_RUNNER_JOB_DELAY", "1s")
	viper.SetDefault("JOB_RUNNER_JOB_TIMEOUT", "30m")
	viper.SetDefault("JOB_RUNNER_STALE_AFTER", "45m")
	viper.SetDefault("JOB_RUNNER_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.finalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize preenche os campos derivados
func (c *Config) finalize() {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// Validate verifica limites que o pipeline de coleta assume
func (c *Config) Validate() error {
	if c.Google.ChunkDays <= 0 {
		return fmt.Errorf("config: GOOGLE_CHUNK_DAYS deve ser positivo, recebido %d", c.Google.ChunkDays)
	}
	if c.Meta.ChunkDays <= 0 {
		return fmt.Errorf("config: META_CHUNK_DAYS deve ser positivo, recebido %d", c.Meta.ChunkDays)
	}
	if c.Naver.StatsBatchSize <= 0 {
		return fmt.Errorf("config: NAVER_STATS_BATCH_SIZE deve ser positivo, recebido %d", c.Naver.StatsBatchSize)
	}
	if c.JobRunner.BatchSize <= 0 {
		return fmt.Errorf("config: JOB_RUNNER_BATCH_SIZE deve ser positivo, recebido %d", c.JobRunner.BatchSize)
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}

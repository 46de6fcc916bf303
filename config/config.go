package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App               AppConfig
	HTTP              ServerConfig
	GRPC              ServerConfig
	MySQL             MySQLConfig
	Log               LogConfig
	InternalEndpoints InternalEndpointsConfig
	Redis             RedisConfig
	Session           SessionConfig
	Storage           StorageConfig
	Upload            UploadConfig
	Jobs              JobsConfig
}

type AppConfig struct {
	ServiceName string
	APIKey      string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
	// Format is "json" or "text".
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

type InternalEndpointsConfig struct {
	AuthGRPCAddr string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	// PublicBaseURL overrides the endpoint when building public object URLs.
	PublicBaseURL        string
	PlanImagesBucket     string
	ProfileImagesBucket  string
	DeleteRetryAttempts  uint
	DeleteRetryBaseDelay time.Duration
}

type UploadConfig struct {
	MaxImageBytes  int64
	MaxImageWidth  int
	MaxImagePixels int64
	MaxFiles       int
	MaxBodyBytes   int64
}

type JobsConfig struct {
	OrphanSweepSchedule string
	OrphanGracePeriod   time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "bridal-service"),
			APIKey:      getEnv("APP_API_KEY", ""),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		GRPC: ServerConfig{
			Host: getEnv("GRPC_HOST", "0.0.0.0"),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getIntEnv("LOG_FILE_MAX_SIZE_MB", 100),
			MaxBackups: getIntEnv("LOG_FILE_MAX_BACKUPS", 5),
		},
		InternalEndpoints: InternalEndpointsConfig{
			AuthGRPCAddr: getEnv("AUTH_SERVICE_GRPC_ADDR", "localhost:9090"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "bridal_session"),
			TTL:        getDurationEnv("SESSION_TTL_MINUTES", 7*24*time.Hour),
			Secure:     getBoolEnv("SESSION_COOKIE_SECURE", false),
		},
		Storage: StorageConfig{
			Endpoint:             getEnv("STORAGE_ENDPOINT", ""),
			Region:               getEnv("STORAGE_REGION", "ap-northeast-1"),
			AccessKeyID:          getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey:      getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			UsePathStyle:         getBoolEnv("STORAGE_USE_PATH_STYLE", true),
			PublicBaseURL:        strings.TrimRight(getEnv("STORAGE_PUBLIC_BASE_URL", ""), "/"),
			PlanImagesBucket:     getEnv("STORAGE_PLAN_IMAGES_BUCKET", "plan-images"),
			ProfileImagesBucket:  getEnv("STORAGE_PROFILE_IMAGES_BUCKET", "provider-profiles"),
			DeleteRetryAttempts:  uint(getIntEnv("STORAGE_DELETE_RETRY_ATTEMPTS", 3)),
			DeleteRetryBaseDelay: getMillisEnv("STORAGE_DELETE_RETRY_DELAY_MS", 200*time.Millisecond),
		},
		Upload: UploadConfig{
			MaxImageBytes:  int64(getIntEnv("UPLOAD_MAX_IMAGE_BYTES", 10<<20)),
			MaxImageWidth:  getIntEnv("UPLOAD_MAX_IMAGE_WIDTH", 2048),
			MaxImagePixels: int64(getIntEnv("UPLOAD_MAX_IMAGE_PIXELS", 40_000_000)),
			MaxFiles:       getIntEnv("UPLOAD_MAX_FILES", 10),
			MaxBodyBytes:   int64(getIntEnv("UPLOAD_MAX_BODY_BYTES", 64<<20)),
		},
		Jobs: JobsConfig{
			OrphanSweepSchedule: getEnv("ORPHAN_SWEEP_SCHEDULE", "0 3 * * *"),
			OrphanGracePeriod:   getDurationEnv("ORPHAN_GRACE_PERIOD_MINUTES", 24*time.Hour),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getMillisEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"freight/internal/adapters/out/objectstore"
	"freight/internal/pkg/tracing"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	Minio objectstore.Config

	// Grants is the static capability table, see the permissions package.
	Grants string

	ChatEditGrace     time.Duration
	StopReconcileCron string

	Tracing tracing.Config
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads .env when present and then the environment. Variables
// already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var errList []error
	duration := func(key string, def time.Duration) time.Duration {
		v, err := durationEnv(key, def)
		errList = append(errList, err)
		return v
	}
	boolean := func(key string, def bool) bool {
		v, err := boolEnv(key, def)
		errList = append(errList, err)
		return v
	}

	cfg := Config{
		HTTPPort:        stringEnv("HTTP_PORT", "8080"),
		ShutdownTimeout: duration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBHost:     stringEnv("DB_HOST", "localhost"),
		DBPort:     stringEnv("DB_PORT", "5432"),
		DBUser:     stringEnv("DB_USER", "postgres"),
		DBPassword: stringEnv("DB_PASSWORD", ""),
		DBName:     stringEnv("DB_NAME", "freight"),
		DBSslMode:  stringEnv("DB_SSLMODE", "disable"),

		Minio: objectstore.Config{
			Endpoint:  stringEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: stringEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: stringEnv("MINIO_SECRET_KEY", ""),
			Bucket:    stringEnv("MINIO_BUCKET", "freight"),
			UseSSL:    boolean("MINIO_USE_SSL", false),
			Prefix:    stringEnv("MINIO_PREFIX", "loads"),
		},

		Grants: stringEnv("PERMISSION_GRANTS", ""),

		ChatEditGrace:     duration("CHAT_EDIT_GRACE", 0),
		StopReconcileCron: os.Getenv("STOP_RECONCILE_CRON"),

		Tracing: tracing.Config{
			Disabled:    boolean("OTEL_SDK_DISABLED", false),
			ServiceName: stringEnv("OTEL_SERVICE_NAME", "freight"),
			Protocol:    os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"),
			Sampler:     os.Getenv("OTEL_TRACES_SAMPLER"),
			SamplerArg:  os.Getenv("OTEL_TRACES_SAMPLER_ARG"),
		},
	}
	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

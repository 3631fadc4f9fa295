package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"phonebook/internal/models"
)

type Config struct {
	Port             string
	Backend          string
	SortKey          models.SortKey
	OperationTimeout time.Duration
	CORSOrigins      []string
	LogLevel         string
	LogFormat        string
	Database         *DatabaseConfig
	S3Config         *S3Config
}

type S3Config struct {
	AccessKey  string
	SecretKey  string
	BucketName string
	Region     string
	ServiceUrl string
	BucketUrl  string
}

// Enabled reports whether exports have somewhere to go.
func (c *S3Config) Enabled() bool {
	return c != nil && c.BucketName != ""
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func NewConfig() (*Config, error) {
	sortKey, err := models.ParseSortKey(getenv("SORT_KEY", string(models.SortByNameSurname)))
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(getenv("OPERATION_TIMEOUT", "5s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid OPERATION_TIMEOUT %q", os.Getenv("OPERATION_TIMEOUT"))
	}

	backend := strings.ToLower(getenv("BACKEND", BackendMemory))
	switch backend {
	case BackendMemory, BackendMySQL, BackendSQLite, BackendPostgres:
	default:
		return nil, fmt.Errorf("unknown BACKEND %q", backend)
	}

	bucket := getenv("S3_BUCKET", "")
	region := getenv("S3_REGION", "us-east-1")

	return &Config{
		Port:             getenv("PORT", "5000"),
		Backend:          backend,
		SortKey:          sortKey,
		OperationTimeout: timeout,
		CORSOrigins:      strings.Split(getenv("CORS_ORIGINS", "*"), ","),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		LogFormat:        getenv("LOG_FORMAT", "text"),
		Database:         NewDatabaseConfig(),
		S3Config: &S3Config{
			AccessKey:  getenv("S3_ACCESS_KEY", ""),
			SecretKey:  getenv("S3_SECRET_KEY", ""),
			BucketName: bucket,
			Region:     region,
			ServiceUrl: getenv("S3_ENDPOINT", ""),
			BucketUrl:  getenv("S3_BUCKET_URL", fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)),
		},
	}, nil
}

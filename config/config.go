package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
			// Gateway callbacks arrive in bursts from a few addresses.
			SkipPaths []string `envconfig:"SKIP_PATHS" default:"/api/webhooks/cashfree"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
				PoolSize int    `envconfig:"POOL_SIZE" default:"10"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Pool           struct {
				MaxOpen         int `envconfig:"MAX_OPEN"          default:"10"`
				MaxIdle         int `envconfig:"MAX_IDLE"          default:"10"`
				MaxLifetimeMins int `envconfig:"MAX_LIFETIME_MINS" default:"30"`
			} `envconfig:"POOL"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`

	Payment struct {
		Cashfree struct {
			AppID          string `envconfig:"APP_ID"`
			SecretKey      string `envconfig:"SECRET_KEY"`
			BaseURL        string `envconfig:"BASE_URL"       default:"https://api.cashfree.com/pg"`
			APIVersion     string `envconfig:"API_VERSION"    default:"2023-08-01"`
			WebhookSecret  string `envconfig:"WEBHOOK_SECRET"`
			ReturnURL      string `envconfig:"RETURN_URL"`
			NotifyURL      string `envconfig:"NOTIFY_URL"`
			Currency       string `envconfig:"CURRENCY"       default:"INR"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"15"`
		} `envconfig:"CASHFREE"`
	} `envconfig:"PAYMENT"`

	Email struct {
		Driver    string `envconfig:"DRIVER"        default:"log"`
		FromEmail string `envconfig:"FROM_EMAIL"`
		FromName  string `envconfig:"FROM_NAME"     default:"BOOK NEO"`
		BrevoKey  string `envconfig:"BREVO_API_KEY"`
		BrevoURL  string `envconfig:"BREVO_URL"     default:"https://api.brevo.com/v3/smtp/email"`
		SMTP      struct {
			Host     string `envconfig:"HOST"`
			Port     int    `envconfig:"PORT"`
			Username string `envconfig:"USER"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SMTP"`
		TimeoutSeconds int `envconfig:"TIMEOUT_SECONDS" default:"10"`
	} `envconfig:"EMAIL"`

	Queue struct {
		Driver string `envconfig:"DRIVER" default:"none"`
		Topic  string `envconfig:"TOPIC"  default:"booking.events"`
		Kafka  struct {
			Brokers []string `envconfig:"BROKERS"`
			SASL    struct {
				Username string `envconfig:"USERNAME"`
				Password string `envconfig:"PASSWORD"`
			} `envconfig:"SASL"`
		} `envconfig:"KAFKA"`
		RabbitMQ struct {
			URL string `envconfig:"URL"`
		} `envconfig:"RABBITMQ"`
	} `envconfig:"QUEUE"`

	Booking struct {
		Reconcile struct {
			Enable            bool   `envconfig:"ENABLE"`
			Schedule          string `envconfig:"SCHEDULE"            default:"*/5 * * * *"`
			PendingAgeMinutes int    `envconfig:"PENDING_AGE_MINUTES" default:"30"`
			BatchSize         int    `envconfig:"BATCH_SIZE"          default:"50"`
		} `envconfig:"RECONCILE"`
		WebhookDedupTTLSeconds int `envconfig:"WEBHOOK_DEDUP_TTL_SECONDS" default:"86400"`
	} `envconfig:"BOOKING"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}

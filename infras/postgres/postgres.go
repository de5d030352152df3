package postgres

//nolint:revive
import (
	"fmt"
	"hotelbooker/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	roleRead  = "read"
	roleWrite = "write"
)

// Connection splits queries between a read replica and the primary. Both may
// point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  Connect(config, roleRead, ReadEndpoint(config)),
		Write: Connect(config, roleWrite, WriteEndpoint(config)),
	}
}

func ReadEndpoint(config *config.Config) Endpoint {
	read := config.DB.Postgres.Read

	return Endpoint{
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		Name:     DBName(config, read.Name),
		SSLMode:  read.SSLMode,
	}
}

func WriteEndpoint(config *config.Config) Endpoint {
	write := config.DB.Postgres.Write

	return Endpoint{
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		Name:     DBName(config, write.Name),
		SSLMode:  write.SSLMode,
	}
}

// DBName applies the configured prefix, which separates test databases from
// the live one on a shared server.
func DBName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

// URL returns the connection string with credentials escaped.
func (e Endpoint) URL() *url.URL {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}
}

// Connect retries until the database answers, then applies the pool limits.
// The process stops when every attempt fails.
func Connect(config *config.Config, role string, endpoint Endpoint) *sqlx.DB {
	pg := config.DB.Postgres
	attempts := max(pg.MaxRetry, 1)

	var lastErr error

	for attempt := range attempts {
		db, err := sqlx.Connect("postgres", endpoint.URL().String())
		if err == nil {
			db.SetMaxOpenConns(pg.Pool.MaxOpen)
			db.SetMaxIdleConns(pg.Pool.MaxIdle)
			db.SetConnMaxLifetime(time.Duration(pg.Pool.MaxLifetimeMins) * time.Minute)

			log.Info().
				Str("role", role).
				Str("host", endpoint.Host).
				Str("dbName", endpoint.Name).
				Int("maxOpen", pg.Pool.MaxOpen).
				Msg("Connected to database")

			return db
		}

		lastErr = err

		log.Error().
			Err(err).
			Str("role", role).
			Str("host", endpoint.Host).
			Str("dbName", endpoint.Name).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Err(fmt.Errorf("%s database unreachable after %d attempts: %w", role, attempts, lastErr)).Msg("Giving up on database")

	return nil
}

package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/postgres"
	"hotelbooker/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStepUp Direction = "step-up"
	DirectionDrop   Direction = "drop"
)

var ErrUnknownDirection = errors.New("unknown migration direction")

func ParseDirection(value string) (Direction, error) {
	switch dir := Direction(value); dir {
	case DirectionUp, DirectionDown, DirectionStepUp, DirectionDrop:
		return dir, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, value)
	}
}

// ConnectionURL builds the migrate DSN for the write database.
func ConnectionURL(cfg *config.Config) string {
	dsn := postgres.WriteEndpoint(cfg).URL()

	if cfg.DB.Postgres.MigrationTable != "" {
		query := dsn.Query()
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
		dsn.RawQuery = query.Encode()
	}

	return dsn.String()
}

func newMigrate(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, ConnectionURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies the migrations in the given direction. Down rolls back a single
// step; drop rolls back everything.
func Run(cfg *config.Config, direction Direction) error {
	mig, err := newMigrate(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch direction {
	case DirectionUp:
		err = mig.Up()
	case DirectionDown:
		err = mig.Steps(-1)
	case DirectionStepUp:
		err = mig.Steps(1)
	case DirectionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirection, direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", direction, err)
	}

	version, dirty, verErr := mig.Version()
	if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
		log.Warn().Err(verErr).Msg("could not read schema version")
	}

	log.Info().Str("direction", string(direction)).Uint("version", version).Bool("dirty", dirty).Msg("Database migrations completed")

	return nil
}

func Up(cfg *config.Config) error {
	return Run(cfg, DirectionUp)
}

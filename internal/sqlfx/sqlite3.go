package sqlfx

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	ConfigDSN            = "db.dsn"
	ConfigMigrationsPath = "db.migrations"
)

type SqliteConfig struct {
	DSN            string
	DatabaseName   string
	MigrationsPath string
}

func SqliteConfigProvider(v *viper.Viper) (*SqliteConfig, error) {
	config := &SqliteConfig{
		DSN:            v.GetString(ConfigDSN),
		DatabaseName:   "logrot",
		MigrationsPath: v.GetString(ConfigMigrationsPath),
	}

	return config, nil
}

// OpenSqliteDatabase opens and migrates the sweep journal. An empty DSN
// disables the journal and yields a nil database.
func OpenSqliteDatabase(config *SqliteConfig, logger *logrus.Logger) (*sqlx.DB, error) {
	if config.DSN == "" {
		logger.Debug("Sweep journal is disabled")
		return nil, nil
	}

	logger.WithField("dsn", config.DSN).Debug("Connecting to DB with DSN")

	db, err := sqlx.Open("sqlite3", config.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to connect to DB")
	}

	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create instance of migrate")
	}

	m, err := migrate.NewWithDatabaseInstance(config.MigrationsPath, config.DatabaseName, driver)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to load migrations")
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return nil, errors.Wrap(err, "Unable to migrate DB")
	}

	return db, nil
}

func CloseSqliteDatabase(lc fx.Lifecycle, db *sqlx.DB) {
	if db == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
}

package iocache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/rotnitxe/kpknfit/schema"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// LatestVersion is the schema version of the newest embedded migration.
const LatestVersion = 3

// MigrateCatalog runs database migrations for the catalog and settings store.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func MigrateCatalog(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openDB(backend, connStr, GetCatalogDBFilePath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	from, to, err := migrateDB(db, backend, targetVersion)
	if err != nil {
		return err
	}
	if from == to {
		fmt.Printf("No migration needed. Database is already at version %d\n", to)
	} else {
		fmt.Printf("Successfully migrated from version %d to version %d\n", from, to)
	}
	return nil
}

// migrateDB moves an open database to targetVersion and reports the
// versions before and after.
func migrateDB(db *sql.DB, backend schema.DatabaseBackend, targetVersion int) (uint, uint, error) {
	if targetVersion > LatestVersion {
		return 0, 0, fmt.Errorf("target version %d is newer than the latest migration %d", targetVersion, LatestVersion)
	}

	driver, err := migrateDriver(db, backend)
	if err != nil {
		return 0, 0, err
	}

	migrationFS, err := fs.Sub(migrationsFS, "migrations/"+string(backend))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(backend), driver)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return current, current, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", current)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return current, current, fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
	}

	after, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return current, 0, nil
	}
	if err != nil {
		return current, current, fmt.Errorf("failed to read migrated version: %w", err)
	}
	return current, after, nil
}

// migrateDriver wraps an open database in the matching migrate driver.
func migrateDriver(db *sql.DB, backend schema.DatabaseBackend) (database.Driver, error) {
	var driver database.Driver
	var err error

	switch backend {
	case schema.SQLiteBackend:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case schema.MySQLBackend:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}
	return driver, nil
}

// schemaVersion reads the applied migration version without changing it.
func schemaVersion(db *sql.DB) uint {
	var version uint
	if err := db.QueryRow("SELECT version FROM schema_migrations LIMIT 1").Scan(&version); err != nil {
		return 0
	}
	return version
}

package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"quiz-progression/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFiles embed.FS

// Migrator applies the embedded schema migrations.
type Migrator interface {
	// Up applies every pending migration.
	Up() error
	// Down rolls back the given number of migrations, or all of them when steps <= 0.
	Down(steps int) error
	// Version reports the current schema version and whether the last run failed midway.
	Version() (version uint, dirty bool, err error)
}

// NewMigrator returns the migrator for the database's driver.
func NewMigrator(db *sqlx.DB) (Migrator, error) {
	switch db.DriverName() {
	case DriverSQLite:
		return newSQLiteMigrator(db)
	case DriverOracle:
		return newOracleMigrator(db)
	default:
		return nil, fmt.Errorf("no migrations for driver %s", db.DriverName())
	}
}

// RunMigrations brings the schema up to date.
func RunMigrations(db *sqlx.DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	v, _, err := m.Version()
	if err != nil {
		return err
	}
	logger.Get().Info("Migrations completed successfully", zap.Uint("version", v))
	return nil
}

type sqliteMigrator struct {
	m *migrate.Migrate
}

func newSQLiteMigrator(db *sqlx.DB) (*sqliteMigrator, error) {
	src, err := iofs.New(migrationFiles, "migrations/sqlite")
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, DriverSQLite, driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	return &sqliteMigrator{m: m}, nil
}

func (s *sqliteMigrator) Up() error {
	if err := s.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *sqliteMigrator) Down(steps int) error {
	var err error
	if steps <= 0 {
		err = s.m.Down()
	} else {
		err = s.m.Steps(-steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *sqliteMigrator) Version() (uint, bool, error) {
	v, dirty, err := s.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// oracleMigrator runs the Oracle scripts statement by statement and records
// progress in the same schema_migrations layout golang-migrate uses.
type oracleMigrator struct {
	db    *sqlx.DB
	files []migrationFile
}

type migrationFile struct {
	version uint
	up      string
	down    string
}

func newOracleMigrator(db *sqlx.DB) (*oracleMigrator, error) {
	files, err := loadMigrationFiles(migrationFiles, "migrations/oracle")
	if err != nil {
		return nil, err
	}
	return &oracleMigrator{db: db, files: files}, nil
}

func loadMigrationFiles(fsys fs.FS, dir string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	byVersion := make(map[uint]*migrationFile)
	for _, entry := range entries {
		name := entry.Name()
		var direction string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			direction = "up"
		case strings.HasSuffix(name, ".down.sql"):
			direction = "down"
		default:
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version prefix", name)
		}
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s: invalid version: %w", name, err)
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		f, ok := byVersion[uint(v)]
		if !ok {
			f = &migrationFile{version: uint(v)}
			byVersion[uint(v)] = f
		}
		if direction == "up" {
			f.up = string(content)
		} else {
			f.down = string(content)
		}
	}
	files := make([]migrationFile, 0, len(byVersion))
	for _, f := range byVersion {
		files = append(files, *f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

// splitStatements breaks a script on ';' since go-ora executes one statement per call.
func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (o *oracleMigrator) ensureVersionTable() error {
	_, err := o.db.Exec(`CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL PRIMARY KEY, dirty NUMBER(1) NOT NULL)`)
	if err != nil && !strings.Contains(err.Error(), "ORA-00955") {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

func (o *oracleMigrator) Version() (uint, bool, error) {
	if err := o.ensureVersionTable(); err != nil {
		return 0, false, err
	}
	var row struct {
		Version int64 `db:"version"`
		Dirty   int   `db:"dirty"`
	}
	err := o.db.Get(&row, `SELECT version, dirty FROM schema_migrations FETCH FIRST 1 ROWS ONLY`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint(row.Version), row.Dirty == 1, nil
}

func (o *oracleMigrator) setVersion(version uint, dirty bool) error {
	tx, err := o.db.Beginx()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM schema_migrations`); err != nil {
		tx.Rollback()
		return err
	}
	if version > 0 {
		dirtyFlag := 0
		if dirty {
			dirtyFlag = 1
		}
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`), version, dirtyFlag); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (o *oracleMigrator) run(version uint, script string) error {
	l := logger.Get()
	if err := o.setVersion(version, true); err != nil {
		return err
	}
	for _, stmt := range splitStatements(script) {
		if _, err := o.db.Exec(stmt); err != nil {
			return fmt.Errorf("could not execute migration %d: %w", version, err)
		}
	}
	l.Info("Executed migration", zap.Uint("version", version))
	return nil
}

func (o *oracleMigrator) Up() error {
	current, dirty, err := o.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, fix it manually", current)
	}
	for _, f := range o.files {
		if f.version <= current {
			continue
		}
		if err := o.run(f.version, f.up); err != nil {
			return err
		}
		if err := o.setVersion(f.version, false); err != nil {
			return err
		}
	}
	return nil
}

func (o *oracleMigrator) Down(steps int) error {
	current, dirty, err := o.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, fix it manually", current)
	}
	applied := make([]migrationFile, 0, len(o.files))
	for _, f := range o.files {
		if f.version <= current {
			applied = append(applied, f)
		}
	}
	if steps <= 0 || steps > len(applied) {
		steps = len(applied)
	}
	for i := 0; i < steps; i++ {
		f := applied[len(applied)-1-i]
		if err := o.run(f.version, f.down); err != nil {
			return err
		}
		var previous uint
		if idx := len(applied) - 2 - i; idx >= 0 {
			previous = applied[idx].version
		}
		if err := o.setVersion(previous, false); err != nil {
			return err
		}
	}
	return nil
}

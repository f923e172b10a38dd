package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/terraincognita07/ovucast/internal/logger"
	"gorm.io/gorm"
)

var (
	migrationFilePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

type schemaMigration struct {
	Version    int
	Name       string
	Statements []string
}

// schemaMigrator applies forward-only SQL files in version order and records
// each one in schema_migrations inside the same transaction.
type schemaMigrator struct {
	database *gorm.DB
	log      *logger.Logger
}

func migrateSchema(database *gorm.DB, source fs.FS, log *logger.Logger) error {
	migrator := schemaMigrator{database: database, log: log}

	migrations, err := loadMigrations(source)
	if err != nil {
		return err
	}
	if err := migrator.ensureVersionTable(); err != nil {
		return err
	}
	applied, err := migrator.appliedVersions()
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if _, done := applied[migration.Version]; done {
			continue
		}
		if err := migrator.apply(migration); err != nil {
			return err
		}
		migrator.log.Infow("schema migration applied", "version", migration.Version, "name", migration.Name)
	}
	return nil
}

func (migrator schemaMigrator) ensureVersionTable() error {
	err := migrator.database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (migrator schemaMigrator) appliedVersions() (map[int]struct{}, error) {
	var versions []int
	if err := migrator.database.Table("schema_migrations").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	applied := make(map[int]struct{}, len(versions))
	for _, version := range versions {
		applied[version] = struct{}{}
	}
	return applied, nil
}

func (migrator schemaMigrator) apply(migration schemaMigration) error {
	return migrator.database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range migration.Statements {
			present, err := addedColumnPresent(tx, statement)
			if err != nil {
				return fmt.Errorf("migration %04d_%s: %w", migration.Version, migration.Name, err)
			}
			if present {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %04d_%s: %w", migration.Version, migration.Name, err)
			}
		}

		return tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.Name,
		).Error
	})
}

func loadMigrations(source fs.FS) ([]schemaMigration, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(entries))
	seen := make(map[int]string, len(entries))
	for _, entry := range entries {
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || matches == nil {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("migration version %s: %w", entry.Name(), err)
		}
		if previous, duplicate := seen[version]; duplicate {
			return nil, fmt.Errorf("migration version %d used by %s and %s", version, previous, entry.Name())
		}
		seen[version] = entry.Name()

		content, err := fs.ReadFile(source, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		statements := splitSQLStatements(string(content))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no statements", entry.Name())
		}

		migrations = append(migrations, schemaMigration{
			Version:    version,
			Name:       matches[2],
			Statements: statements,
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// splitSQLStatements drops "--" comment lines and splits on semicolons.
func splitSQLStatements(sqlText string) []string {
	lines := strings.Split(sqlText, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	statements := make([]string, 0)
	for _, part := range strings.Split(strings.Join(kept, "\n"), ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// addedColumnPresent reports whether statement is an ADD COLUMN for a column
// the table already has.
func addedColumnPresent(tx *gorm.DB, statement string) (bool, error) {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if matches == nil {
		return false, nil
	}
	table := strings.Trim(matches[1], "\"`[]")
	column := strings.Trim(matches[2], "\"`[]")

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := tx.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("inspect %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(existing.Name, column) {
			return true, nil
		}
	}
	return false, nil
}

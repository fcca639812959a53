package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/quitpath/internal/logger"
	embeddedmigrations "github.com/terraincognita07/quitpath/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_[a-z0-9_]+\.sql$`)

var errEmptyMigration = errors.New("migration has no SQL statements")

// schemaMigration is one applied migration file. Version is the numeric
// file prefix as written, so "0001" and "1" are different versions.
type schemaMigration struct {
	Version   string    `gorm:"column:version;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null;autoCreateTime"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type sqlMigration struct {
	Version    string
	Order      int
	Name       string
	Statements []string
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	migrations, err := readMigrations(embeddedmigrations.Files)
	if err != nil {
		return err
	}

	if err := database.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("prepare schema_migrations: %w", err)
	}

	var appliedVersions []string
	if err := database.Model(&schemaMigration{}).Pluck("version", &appliedVersions).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(appliedVersions))
	for _, version := range appliedVersions {
		applied[version] = true
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := database.Transaction(func(tx *gorm.DB) error {
			return runMigration(tx, migration)
		}); err != nil {
			return err
		}
		logger.Info("db: migration applied", "name", migration.Name)
	}
	return nil
}

func runMigration(tx *gorm.DB, migration sqlMigration) error {
	for _, statement := range migration.Statements {
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("migration %s: %w", migration.Name, err)
		}
	}
	record := schemaMigration{Version: migration.Version, Name: migration.Name}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("record migration %s: %w", migration.Name, err)
	}
	return nil
}

// readMigrations returns the numbered .sql files of fsys in version order.
// Other files are ignored.
func readMigrations(fsys fs.FS) ([]sqlMigration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]sqlMigration, 0, len(names))
	byVersion := make(map[string]string, len(names))
	for _, name := range names {
		matches := migrationFilePattern.FindStringSubmatch(name)
		if matches == nil {
			continue
		}
		version := matches[1]
		if previous, seen := byVersion[version]; seen {
			return nil, fmt.Errorf("migration version %s used by %s and %s", version, previous, name)
		}
		byVersion[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := splitSQLStatements(string(raw))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s: %w", name, errEmptyMigration)
		}

		migrations = append(migrations, sqlMigration{
			Version:    version,
			Order:      order,
			Name:       name,
			Statements: statements,
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

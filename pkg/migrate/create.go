package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var slugSeparatorRe = regexp.MustCompile(`[^a-z0-9]+`)

// migrationTemplate wraps both directions in a single statement block so
// multi-statement bodies run as one unit. %[1]s is the slug.
const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s: statements must be idempotent (IF NOT EXISTS) and run on postgres.
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- %[1]s: undo the Up block in reverse order.
-- +goose StatementEnd
`

// CreateSQLMigration writes an empty goose migration named
// <dir>/<version>_<slug>.sql and returns its path. The version is the current
// UTC time.
func CreateSQLMigration(dir, name string) (string, error) {
	return createSQLMigration(dir, name, time.Now().UTC())
}

func createSQLMigration(dir, name string, at time.Time) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("migrations dir is required")
	}
	slug := migrationSlug(name)
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}

	version := at.UTC().Format(versionLayout)
	filename := version + "_" + slug + ".sql"
	if !sqlFileRe.MatchString(filename) {
		return "", fmt.Errorf("generated filename %q is not a valid migration name", filename)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir %q: %w", dir, err)
	}
	taken, err := filepath.Glob(filepath.Join(dir, version+"_*.sql"))
	if err != nil {
		return "", fmt.Errorf("scan migrations dir %q: %w", dir, err)
	}
	if len(taken) > 0 {
		return "", fmt.Errorf("migration version %s already used by %s", version, filepath.Base(taken[0]))
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(fmt.Sprintf(migrationTemplate, slug)), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	return path, nil
}

// migrationSlug lower-cases name and collapses every run of other characters
// into a single underscore.
func migrationSlug(name string) string {
	slug := slugSeparatorRe.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(slug, "_")
}

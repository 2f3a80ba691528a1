package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
)

// MigrationFunc applies one direction of a migration inside tx.
type MigrationFunc func(ctx context.Context, tx database.Queryer) error

type Migration struct {
	Version     int
	Description string
	Up          MigrationFunc
	Down        MigrationFunc
}

// Provider supplies migrations sorted by version in ascending order.
type Provider interface {
	Migrations() []*Migration
}

// File is a parsed migration file name.
type File struct {
	Version   int
	Name      string
	Direction string
}

var fileNamePattern = regexp.MustCompile(`^(\d+)_([a-zA-Z0-9_]+)\.(up|down)\.sql$`)

// ParseFileName parses names of the form NNNN_description.up.sql and
// NNNN_description.down.sql.
func ParseFileName(name string) (*File, error) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return nil, fmt.Errorf("invalid migration file name %q", name)
	}
	version, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("invalid migration version in %q: %w", name, err)
	}
	return &File{Version: version, Name: m[2], Direction: m[3]}, nil
}

// SplitStatements strips line comments and splits sql on semicolons.
// Migration files must not put semicolons inside string literals.
func SplitStatements(sql string) []string {
	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var out []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// FromSQL builds a migration that executes the given statements.
func FromSQL(version int, description, upSQL, downSQL string) *Migration {
	return &Migration{
		Version:     version,
		Description: description,
		Up:          execFunc(func() (string, error) { return upSQL, nil }),
		Down:        execFunc(func() (string, error) { return downSQL, nil }),
	}
}

func fromFile(fsys fs.FS, path string) MigrationFunc {
	return execFunc(func() (string, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("read migration file: %w", err)
		}
		return string(b), nil
	})
}

func execFunc(source func() (string, error)) MigrationFunc {
	return func(ctx context.Context, tx database.Queryer) error {
		sql, err := source()
		if err != nil {
			return err
		}
		for _, stmt := range SplitStatements(sql) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("execute %q: %w", firstLine(stmt), err)
			}
		}
		return nil
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// StaticProvider serves a fixed, in-memory list of migrations.
type StaticProvider struct {
	migrations []*Migration
}

func NewStaticProvider(migrations ...*Migration) *StaticProvider {
	sorted := append([]*Migration(nil), migrations...)
	sortMigrations(sorted)
	return &StaticProvider{migrations: sorted}
}

func (p *StaticProvider) Migrations() []*Migration {
	return p.migrations
}

// FSProvider loads migration pairs from a filesystem.
type FSProvider struct {
	fsys       fs.FS
	migrations []*Migration
}

// NewFSProvider scans fsys for migration files. Every version must have both
// an up and a down file.
func NewFSProvider(fsys fs.FS) (*FSProvider, error) {
	p := &FSProvider{fsys: fsys}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FSProvider) Migrations() []*Migration {
	return p.migrations
}

func (p *FSProvider) load() error {
	byVersion := map[int]*Migration{}

	err := fs.WalkDir(p.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := ParseFileName(d.Name())
		if err != nil {
			// not a migration file
			return nil
		}

		m, ok := byVersion[f.Version]
		if !ok {
			m = &Migration{Version: f.Version, Description: f.Name}
			byVersion[f.Version] = m
		} else if m.Description != f.Name {
			return fmt.Errorf("migration %d has conflicting names %q and %q", f.Version, m.Description, f.Name)
		}

		switch f.Direction {
		case "up":
			m.Up = fromFile(p.fsys, path)
		case "down":
			m.Down = fromFile(p.fsys, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan migrations: %w", err)
	}

	var incomplete []int
	for version, m := range byVersion {
		if m.Up == nil || m.Down == nil {
			incomplete = append(incomplete, version)
		}
		p.migrations = append(p.migrations, m)
	}
	if len(incomplete) > 0 {
		sort.Ints(incomplete)
		return fmt.Errorf("incomplete migrations found (missing up or down files): %v", incomplete)
	}

	sortMigrations(p.migrations)
	return nil
}

func sortMigrations(migrations []*Migration) {
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
}

package database

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/afero"
	"github.com/surrealdb/surrealdb.go"
)

//go:embed schema/*.surql
var schemaFiles embed.FS

// SchemaDir is the directory holding the embedded schema files.
const SchemaDir = "schema"

// SchemaFS exposes the embedded schema as an afero filesystem so an on-disk
// directory can be swapped in with afero.NewBasePathFs.
func SchemaFS() afero.Fs {
	return afero.FromIOFS{FS: schemaFiles}
}

// SchemaData fills the placeholders in the schema templates.
type SchemaData struct {
	Access      string
	TokenSecret string
	TokenTTL    time.Duration
}

// Migration is one rendered schema file.
type Migration struct {
	Name      string
	Statement string
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var schemaFuncs = template.FuncMap{
	"ident": func(s string) (string, error) {
		if !identPattern.MatchString(s) {
			return "", fmt.Errorf("%q is not a valid identifier", s)
		}
		return s, nil
	},
	"quote": func(s string) string {
		s = strings.ReplaceAll(s, `\`, `\\`)
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	},
	"duration": func(d time.Duration) string {
		secs := int64(d / time.Second)
		if secs < 1 {
			secs = 1
		}
		return fmt.Sprintf("%ds", secs)
	},
}

// RenderSchema reads every *.surql file in dir, in name order, and executes
// it as a template with data.
func RenderSchema(fsys afero.Fs, dir string, data SchemaData) ([]Migration, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir %s: %w", dir, err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".surql") {
			continue
		}

		raw, err := afero.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		tmpl, err := template.New(entry.Name()).Funcs(schemaFuncs).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("render %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{Name: entry.Name(), Statement: buf.String()})
	}
	return migrations, nil
}

// Migrate applies the schema. Every statement is idempotent, so running it
// on each deploy is safe.
func Migrate(ctx context.Context, db *surrealdb.DB, fsys afero.Fs, dir string, data SchemaData) error {
	migrations, err := RenderSchema(fsys, dir, data)
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		return fmt.Errorf("no schema files found in %s", dir)
	}

	for _, m := range migrations {
		if err := Execute(ctx, db, m.Statement, nil); err != nil {
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		slog.InfoContext(ctx, "Applied schema file", "file", m.Name)
	}
	return nil
}

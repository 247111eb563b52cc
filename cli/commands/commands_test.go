package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/pure-orm/cli/internal/config"
	"github.com/satishbabariya/pure-orm/driver"
)

// sqliteConfig writes a config file pointing at a fresh SQLite database.
func sqliteConfig(t *testing.T) string {
	t.Helper()
	pterm.DisableStyling()

	fs := afero.NewMemMapFs()
	old := config.AppFs
	config.AppFs = fs
	t.Cleanup(func() { config.AppFs = old })

	dir := t.TempDir()
	file := filepath.Join(dir, "pure-orm.yaml")
	body := fmt.Sprintf("database:\n  type: sqlite\n  filename: %s\n", filepath.Join(dir, "test.db"))
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))
	return file
}

func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	defer a.teardown()

	cmd := a.rootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	out, err := run(t, cfg, args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func seed(t *testing.T, cfg string) {
	t.Helper()
	mustRun(t, cfg, "exec", "CREATE TABLE people (id INTEGER PRIMARY KEY AUTOINCREMENT, name VARCHAR(30) NOT NULL, age INT NULL)")
	mustRun(t, cfg, "exec", "INSERT INTO people (name, age) VALUES (?, ?), (?, ?), (?, NULL)", "ada", "36", "bob", "17", "cy")
}

func TestVersion(t *testing.T) {
	cfg := sqliteConfig(t)
	out := mustRun(t, cfg, "version")
	assert.True(t, strings.HasPrefix(out, "pure-orm "), out)

	out = mustRun(t, cfg, "version", "--json")
	assert.Contains(t, out, `"goVersion"`)
}

func TestDSN(t *testing.T) {
	cfg := sqliteConfig(t)

	out := mustRun(t, cfg, "dsn")
	assert.Contains(t, out, "sqlite:")
	assert.Contains(t, out, "test.db;charset=utf8")

	out = mustRun(t, cfg, "dsn", "--json")
	assert.Contains(t, out, `"type":"sqlite"`)
}

func TestDSNUsesEnvironment(t *testing.T) {
	cfg := sqliteConfig(t)
	t.Setenv("PURE_ORM_DATABASE_TYPE", "mysql")
	t.Setenv("PURE_ORM_DATABASE_NAME", "shop")
	t.Setenv("PURE_ORM_DATABASE_PASSWORD", "secret")

	out := mustRun(t, cfg, "dsn", "--json")
	assert.Contains(t, out, `"name":"shop"`)
	assert.Contains(t, out, `"password":"****"`)
	assert.NotContains(t, out, "secret")
}

func TestPing(t *testing.T) {
	cfg := sqliteConfig(t)
	out := mustRun(t, cfg, "ping")
	assert.Contains(t, out, "connected to sqlite")
}

func TestReadCommands(t *testing.T) {
	cfg := sqliteConfig(t)
	seed(t, cfg)

	assert.Equal(t, "3\n", mustRun(t, cfg, "count", "people"))
	assert.Equal(t, "1\n", mustRun(t, cfg, "count", "people", "--where", "age >= 18"))
	assert.Equal(t, "2\n", mustRun(t, cfg, "count", "people", "-w", "age IS NOT NULL"))

	out := mustRun(t, cfg, "exists", "people")
	assert.Contains(t, out, "table people exists")
	out = mustRun(t, cfg, "exists", "ghosts")
	assert.Contains(t, out, "does not exist")

	out = mustRun(t, cfg, "select", "people", "--fields", "name")
	assert.Contains(t, out, "ada")
	assert.NotContains(t, out, "bob")

	out = mustRun(t, cfg, "select", "people", "--all", "--order", "name", "--desc")
	assert.Less(t, strings.Index(out, "cy"), strings.Index(out, "ada"))
	assert.Contains(t, out, "NULL")

	out = mustRun(t, cfg, "select", "people", "--order", "id", "--limit", "1", "--offset", "1", "--json")
	assert.Contains(t, out, `"name": "bob"`)
	assert.NotContains(t, out, "ada")

	out = mustRun(t, cfg, "select", "people", "--where", "name = 'zed'")
	assert.Contains(t, out, "no rows")

	_, err := run(t, cfg, "select", "people", "--offset", "1")
	assert.Error(t, err)
	_, err = run(t, cfg, "count", "people", "--where", "age >>> 1")
	assert.Error(t, err)
}

func TestWriteCommands(t *testing.T) {
	cfg := sqliteConfig(t)
	seed(t, cfg)

	out := mustRun(t, cfg, "clear", "people", "--yes")
	assert.Contains(t, out, "deleted 3 rows from people")
	assert.Equal(t, "0\n", mustRun(t, cfg, "count", "people"))

	mustRun(t, cfg, "drop", "people", "-y")
	out = mustRun(t, cfg, "exists", "people")
	assert.Contains(t, out, "does not exist")

	_, err := run(t, cfg, "count", "people")
	assert.ErrorIs(t, err, driver.ErrNoSuchTable)
}

func TestExecReportsConstraintErrors(t *testing.T) {
	cfg := sqliteConfig(t)
	seed(t, cfg)

	_, err := run(t, cfg, "exec", "INSERT INTO people (name) VALUES (NULL)")
	assert.ErrorIs(t, err, driver.ErrNullConstraint)
}

func TestRunScript(t *testing.T) {
	cfg := sqliteConfig(t)
	script := `-- schema
CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);
INSERT INTO notes (body) VALUES ('a;b');
INSERT INTO notes (body) VALUES ('it''s');
SELECT body FROM notes ORDER BY id;
`
	require.NoError(t, afero.WriteFile(config.AppFs, "notes.sql", []byte(script), 0o644))

	out := mustRun(t, cfg, "run", "notes.sql")
	assert.Contains(t, out, "a;b")
	assert.Contains(t, out, "it's")
	assert.Contains(t, out, "ran 4 statements from notes.sql")

	_, err := run(t, cfg, "run", "missing.sql")
	assert.Error(t, err)
}

func TestConnectionFailure(t *testing.T) {
	cfg := sqliteConfig(t)
	t.Setenv("PURE_ORM_DATABASE_FILENAME", filepath.Join(t.TempDir(), "missing", "x.db"))

	_, err := run(t, cfg, "count", "people")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestHelpListsCommands(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{"init", "ping", "dsn", "count", "exists", "select", "drop", "clear", "exec", "run", "version"} {
		assert.Contains(t, out.String(), name)
	}
}

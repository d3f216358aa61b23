package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipesYAML = `recipes:
  - name: Rührei
    ingredients:
      Eier: 3
      Butter: 10
`

// writeConfig writes a config file pointing the document store and the
// report sink into dir.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := strings.Join([]string{
		"log:",
		"  level: error",
		"store:",
		"  backend: file",
		"  path: " + filepath.Join(dir, "pantry.json"),
		"report:",
		"  sink: file",
		"  dir: " + filepath.Join(dir, "reports"),
		"",
	}, "\n")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile = ""
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "recipes", "report", "keys"})
}

func TestRecipesImport(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	seed := filepath.Join(dir, "recipes.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(recipesYAML), 0o600))

	_, err := run(t, "--config", cfg, "recipes", "import", seed)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "pantry.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rührei")
}

func TestRecipesImport_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "--config", cfg, "recipes", "import")
	assert.Error(t, err)

	_, err = run(t, "--config", cfg, "recipes", "import", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMigrate_WritesNewFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	legacy := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{"WG_Sonnenallee": {"passwort": "abc", "vorrat": [{"artikel": "Milch", "menge": 1, "einheit": "L", "ort": "Kühlschrank", "mhd": "None"}]}}`), 0o600))
	out := filepath.Join(dir, "migrated.json")

	_, err := run(t, "--config", cfg, "migrate", "--from", legacy, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"schema_version"`)
	assert.Contains(t, string(data), "WG_Sonnenallee")
}

func TestReportShopping(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "--config", cfg, "report", "shopping")
	assert.Error(t, err, "household flag is required")

	_, err = run(t, "--config", cfg, "report", "shopping", "--household", "Niemand")
	assert.ErrorContains(t, err, "not found")
}

func TestKeysCmd(t *testing.T) {
	out, err := run(t, "keys")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	seen := map[string]bool{}
	for _, line := range lines {
		env, value, ok := strings.Cut(line, "=")
		require.True(t, ok, line)
		assert.NotEmpty(t, value)
		seen[env] = true
	}
	assert.True(t, seen["JWT_SECRET_KEY"])
	assert.True(t, seen["STORE_TOKEN"])

	first, _ := run(t, "keys")
	assert.NotEqual(t, out, first)
}

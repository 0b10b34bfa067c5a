package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

const threeEmpiresGalaxy = "../galaxyfile/testdata/three_empires.yaml"

// writeTestConfig points the CLI at a throwaway sqlite database
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`database:
  type: sqlite
  path: %s
logging:
  level: error
watch:
  pid_file: %s
`, filepath.Join(dir, "supply.db"), filepath.Join(dir, "watch.pid"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_ImportUpdateAndInspect(t *testing.T) {
	cfg := writeTestConfig(t)

	// Import and update
	out, err := runCLI(t, "--config", cfg, "galaxy", "import", threeEmpiresGalaxy, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported turn 1: 5 systems, 4 starlanes, 1 blockades, 3 empires")
	assert.Contains(t, out, "Supply updated for turn 1")

	// A second import without --turn becomes turn 2
	out, err = runCLI(t, "--config", cfg, "galaxy", "import", threeEmpiresGalaxy)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported turn 2")

	// Show turn 1 as JSON
	out, err = runCLI(t, "--config", cfg, "supply", "show", "--turn", "1", "--format", "json")
	require.NoError(t, err)
	var snap supply.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 1, snap.Turn)
	require.Len(t, snap.Empires, 3)
	assert.Contains(t, snap.Empire(1).FleetSupplyable, 1)

	// Sources always resupply their owner
	out, err = runCLI(t, "--config", cfg, "supply", "check", "--turn", "1", "--system", "1", "--empire", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Empire 1 can resupply fleets at system 1 (turn 1)")

	// DOT export
	out, err = runCLI(t, "--config", cfg, "supply", "export", "--turn", "1", "--empire", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "Aster (1)")
}

func TestCLI_ShowRejectsUnknownFormat(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := runCLI(t, "--config", cfg, "supply", "show", "--format", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestCLI_ExportUnknownEmpire(t *testing.T) {
	cfg := writeTestConfig(t)
	_, err := runCLI(t, "--config", cfg, "galaxy", "import", threeEmpiresGalaxy, "--update")
	require.NoError(t, err)

	_, err = runCLI(t, "--config", cfg, "supply", "export", "--empire", "42")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empire 42 has no supply")
}

func TestCLI_ConfigShow(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCLI(t, "--config", cfg, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Type:             sqlite")
	assert.Contains(t, out, "Jump Length:      1")
	assert.Contains(t, out, "(disabled)")
}

func TestMaskPassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"with password", "postgresql://starlane:secret@db:5432/supply", "postgresql://starlane:xxxxx@db:5432/supply"},
		{"without password", "postgresql://starlane@db:5432/supply", "postgresql://starlane@db:5432/supply"},
		{"not a url", "host=db user=starlane", "host=db user=starlane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskPassword(tt.in))
		})
	}
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvbnb/gen"
	"github.com/katalvlaran/lvbnb/internal/instance"
	"github.com/katalvlaran/lvbnb/knapsack"
)

const classicYAML = `name: classic
capacity: 50
items:
  - {label: tent, value: 60, weight: 10}
  - {label: stove, value: 100, weight: 20}
  - {label: rope, value: 120, weight: 30}
`

// run executes the CLI with args and returns what it printed on stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-format", "json", "--log-level", "error"}, args...))
	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestSolve_Text(t *testing.T) {
	path := writeFile(t, "classic.yaml", classicYAML)

	out, err := run(t, "solve", path)
	require.NoError(t, err)
	require.Contains(t, out, "status:    converged")
	require.Contains(t, out, "value:     220")
	require.Contains(t, out, "selection: [1 2]")
	require.Contains(t, out, "labels:    [stove rope]")
}

func TestSolve_YAML(t *testing.T) {
	path := writeFile(t, "classic.yaml", classicYAML)

	out, err := run(t, "solve", path, "--output", "yaml", "--workers", "4")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Equal(t, 220.0, r.Value)
	require.Equal(t, "converged", r.Status)
	require.False(t, r.PossiblySuboptimal)
	require.NotEmpty(t, r.RunID)
	require.NotNil(t, r.Stats)
}

func TestSolve_NodeBudget(t *testing.T) {
	path := writeFile(t, "classic.yaml", classicYAML)

	out, err := run(t, "solve", path, "--output", "yaml", "--node-budget", "1", "--no-push-prune")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Equal(t, knapsack.BudgetExceeded.String(), r.Status)
	require.True(t, r.PossiblySuboptimal)
	require.Equal(t, 1, r.Stats.Expanded)
}

func TestSolve_Cache(t *testing.T) {
	path := writeFile(t, "classic.yaml", classicYAML)
	cacheDir := t.TempDir()

	out, err := run(t, "solve", path, "--output", "yaml", "--cache-dir", cacheDir)
	require.NoError(t, err)
	var first report
	require.NoError(t, yaml.Unmarshal([]byte(out), &first))
	require.False(t, first.Cached)

	out, err = run(t, "solve", path, "--output", "yaml", "--cache-dir", cacheDir)
	require.NoError(t, err)
	var second report
	require.NoError(t, yaml.Unmarshal([]byte(out), &second))
	require.True(t, second.Cached)
	require.Equal(t, first.Value, second.Value)
	require.Equal(t, first.Selection, second.Selection)
	require.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestSolve_Errors(t *testing.T) {
	path := writeFile(t, "classic.yaml", classicYAML)

	_, err := run(t, "solve", path, "--output", "xml")
	require.Error(t, err)

	_, err = run(t, "solve", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := writeFile(t, "bad.yaml", "capacity: -1\nitems: []\n")
	_, err = run(t, "solve", bad)
	require.Error(t, err)

	_, err = run(t, "--log-level", "loud", "solve", path)
	require.Error(t, err)
}

func TestGenThenVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strong.yaml")

	_, err := run(t, "gen", "--class", "strong", "-n", "14", "--seed", "3", "-o", path)
	require.NoError(t, err)

	out, err := run(t, "verify", path, "--workers", "3")
	require.NoError(t, err)
	require.Contains(t, out, "ok")
}

func TestGen_Stdout(t *testing.T) {
	out, err := run(t, "gen", "--class", "subset-sum", "-n", "5", "--name", "tiny")
	require.NoError(t, err)
	require.Contains(t, out, "name: tiny")

	_, err = run(t, "gen", "--class", "nope")
	require.Error(t, err)
	_, err = run(t, "gen", "--capacity-ratio", "1.5")
	require.Error(t, err)
}

func TestVerify_TooManyItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.yaml")
	_, err := run(t, "gen", "-n", "30", "-o", path)
	require.NoError(t, err)

	_, err = run(t, "verify", path)
	require.ErrorIs(t, err, knapsack.ErrTooManyItems)
}

func TestCheckSelection(t *testing.T) {
	items := []knapsack.Item{{Value: 60, Weight: 10}, {Value: 100, Weight: 20}}

	require.NoError(t, checkSelection(items, 30, knapsack.Result{Value: 160, Selection: []int{0, 1}}))
	require.Error(t, checkSelection(items, 25, knapsack.Result{Value: 160, Selection: []int{0, 1}}))
	require.Error(t, checkSelection(items, 30, knapsack.Result{Value: 100, Selection: []int{0, 1}}))
}

func TestGen_Batch(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "gen", "--class", "weak", "-n", "10", "--count", "3", "--seed", "5",
		"-o", filepath.Join(dir, "weak.yaml"))
	require.NoError(t, err)

	seen := map[uint64]bool{}
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("weak-%d.yaml", i))
		f, err := instance.Load(path)
		require.NoError(t, err)
		require.Len(t, f.Items, 10)
		require.Equal(t, fmt.Sprintf("weak-10-%d", i), f.Name)
		seen[f.Fingerprint()] = true

		_, err = run(t, "verify", path)
		require.NoError(t, err)
	}
	require.Len(t, seen, 3)

	out, err := run(t, "gen", "-n", "4", "--count", "2")
	require.NoError(t, err)
	require.Contains(t, out, "\n---\n")

	_, err = run(t, "gen", "--count", "0")
	require.ErrorIs(t, err, gen.ErrBadCount)
}

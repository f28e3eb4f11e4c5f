package genfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateWritesAndCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".github", "workflows", "ci.yml")

	require.NoError(t, Update(context.Background(), path, "name: ci\n", false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name: ci\n", string(data))
}

func TestUpdateCheckAfterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	ctx := context.Background()

	require.NoError(t, Update(ctx, path, "a\nb\n", false))
	assert.NoError(t, Update(ctx, path, "a\nb\n", true))
}

func TestUpdateCheckIgnoresLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\r\n"), 0644))

	assert.NoError(t, Update(context.Background(), path, "a\nb\n", true))
}

func TestUpdateCheckDriftLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nmodified\n"), 0644))

	err := Update(context.Background(), path, "a\nb\n", true)
	require.Error(t, err)
	assert.True(t, IsDrift(err))
	assert.Contains(t, err.Error(), path)

	var drift *DriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, path, drift.Path)
	assert.Contains(t, drift.Diff, "-modified\n")
	assert.Contains(t, drift.Diff, "+b\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nmodified\n", string(data))
}

func TestLineDiffKeepsWholeLines(t *testing.T) {
	generated := "name: ci\non:\n  push:\njobs:\n  tests-ubuntu-latest:\n    runs-on: ubuntu-latest\n" +
		"    steps:\n    - uses: actions/checkout@v3\n    - run: cargo test\n    - run: cargo doc"

	diff := lineDiff("name: stale", generated)

	assert.Equal(t, "-name: stale\n"+
		"+name: ci\n"+
		"+on:\n"+
		"+  push:\n"+
		"+jobs:\n"+
		"+  tests-ubuntu-latest:\n"+
		"+    runs-on: ubuntu-latest\n"+
		"+    steps:\n"+
		"+    - uses: actions/checkout@v3\n"+
		"+    - run: cargo test\n"+
		"+    - run: cargo doc\n", diff)
}

func TestLineDiffUnchangedLinesAreOmitted(t *testing.T) {
	diff := lineDiff("a\nb\nc\nd", "a\nx\nc\nd\ne")

	assert.Contains(t, diff, "-b\n")
	assert.Contains(t, diff, "+x\n")
	assert.Contains(t, diff, "+e\n")
	assert.NotContains(t, diff, "a\n")
	assert.NotContains(t, diff, "c\n")
}

func TestUpdateCheckMissingFileIsNotDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	err := Update(context.Background(), path, "a\n", true)
	require.Error(t, err)
	assert.False(t, IsDrift(err))
	assert.Contains(t, err.Error(), path)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpdateSkipsIdenticalContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("same\n"), 0444))

	// A read-only file with identical content is left alone.
	assert.NoError(t, Update(context.Background(), path, "same\n", false))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unix", "a\nb\n", "a\nb"},
		{"windows", "a\r\nb\r\n", "a\nb"},
		{"no trailing newline", "a\nb", "a\nb"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(tt.in))
		})
	}
}

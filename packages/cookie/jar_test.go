package cookie

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StripsAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jar.txt")
	content := "a=1; Path=/; Expires=Wed, 21 Oct 2026 07:28:00 GMT\nb=2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	value, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "a=1; b=2", value)
}

func TestLoad_MissingFile(t *testing.T) {
	value, err := Load(filepath.Join(t.TempDir(), "absent.txt"))

	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jar.txt")
	require.NoError(t, os.WriteFile(path, []byte("\na=1\n\n\nb=2\n\n"), 0o644))

	value, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "a=1; b=2", value)
}

func TestSave_AppendsSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jar.txt")

	require.NoError(t, Save(path, []string{"a=1; Path=/", "b=2"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a=1; Path=/\nb=2\n"+Sentinel+"\n", string(data))
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jar.txt")
	require.NoError(t, os.WriteFile(path, []byte("old=value\n"), 0o644))

	require.NoError(t, Save(path, []string{"fresh=1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old=value")
	assert.Contains(t, string(data), "fresh=1")
}

func TestSave_NothingToSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jar.txt")

	require.NoError(t, Save(path, nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jar.txt")

	require.NoError(t, Save(path, []string{"a=1; Path=/", "b=2"}))

	value, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a=1; b=2; "+Sentinel, value)
}

package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type example struct {
	BaseUrl string   `json:"base_url"`
	Delay   int      `json:"delay"`
	Mirrors []string `json:"mirrors"`
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "dir/config.local.json5", LocalPath("dir/config.json5"))
	require.Equal(t, "config.local", LocalPath("config"))
}

func TestReadConfigOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(base, []byte(`{base_url: "http://ufcstats.com", delay: 1000, mirrors: ["a"]}`), 0644))
	require.NoError(t, os.WriteFile(LocalPath(base), []byte(`{delay: 10}`), 0644))

	cfg, err := ReadConfig[example](base)
	require.NoError(t, err)
	require.Equal(t, example{BaseUrl: "http://ufcstats.com", Delay: 10, Mirrors: []string{"a"}}, cfg)
}

func TestReadConfigOnlyLocal(t *testing.T) {
	base := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(LocalPath(base), []byte(`{delay: 5}`), 0644))

	cfg, err := ReadConfig[example](base)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Delay)
}

func TestReadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadConfig[example](filepath.Join(dir, "missing.json5"))
	require.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json5")
	require.NoError(t, os.WriteFile(bad, []byte(`{delay: `), 0644))
	_, err = ReadConfig[example](bad)
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrNotExist))
}

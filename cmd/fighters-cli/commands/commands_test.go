package commands

import (
	"fighterdata/internal/collector"
	"fighterdata/internal/fighters"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// the public site
		base_url: "http://ufcstats.com",
		dataset: {
			path: "fighters_data.json",
			mirrors: ["public/fighters_data.json"],
		},
		targets: [
			{name: "Phil Rowe", nickname: "Fresh", weight: "170 lbs."},
		],
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		request_delay_ms: 250,
	}`), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 250, cfg.RequestDelayMs)
	require.Equal(t, []string{"public/fighters_data.json"}, cfg.Dataset.Mirrors)
	require.Equal(t, []fighters.Target{{Name: "Phil Rowe", Nickname: "Fresh", Weight: "170 lbs."}}, cfg.Targets)
	require.False(t, cfg.Telemetry.Enabled())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
	require.Equal(t, 1000, cfg.RequestDelayMs)
}

func TestTargetsFor(t *testing.T) {
	config = Config{Targets: []fighters.Target{
		{Name: "Phil Rowe", Nickname: "Fresh"},
		{Name: "Donte Johnson"},
	}}
	t.Cleanup(func() { config = Config{} })

	require.Len(t, targetsFor(nil), 2)
	require.Equal(t, []fighters.Target{
		{Name: "Phil Rowe", Nickname: "Fresh"},
		{Name: "Jon Jones"},
	}, targetsFor([]string{"phil rowe", "Jon Jones"}))
}

func TestFormatFights(t *testing.T) {
	require.Equal(t,
		"win vs Ciryl Gane by Submission (R1)\nloss vs Matt Hamill",
		formatFights([]fighters.FightSummary{
			{Result: "win", Opponent: "Ciryl Gane", Method: "Submission", Round: "1"},
			{Result: "loss", Opponent: "Matt Hamill"},
		}),
	)
	printSummary("test", collector.Summary{Processed: 1})
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/decker502/botdash/pkg/config"
	"github.com/decker502/botdash/pkg/systems"
)

func TestRunSimulationIsReplayable(t *testing.T) {
	opts := simulateOptions{Ticks: 300, Seed: 42, Width: 1280, Height: 720, ReportEvery: 100, ClickEvery: 50, Pointer: true}

	var out1, out2 bytes.Buffer
	r1, err := runSimulation(&out1, config.DefaultFieldConfig(), opts, zap.NewNop())
	require.NoError(t, err)
	r2, err := runSimulation(&out2, config.DefaultFieldConfig(), opts, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, out1.String(), out2.String())
	assert.Contains(t, out1.String(), "connections")

	// 采样点：0, 100, 200, 300
	require.Len(t, r1, 4)
	want := systems.TargetPopulation(config.DefaultFieldConfig(), 1280, 720)
	for _, r := range r1 {
		assert.Equal(t, want, r.Ambient, "ambient population never changes between resizes")
	}
	assert.Zero(t, r1[0].Transient)
	assert.Greater(t, r1[1].Transient, 0, "clicks and trails leave transients")
}

func TestRunSimulationWithoutPointer(t *testing.T) {
	opts := simulateOptions{Ticks: 120, Seed: 7, Width: 400, Height: 300, ReportEvery: 60}
	reports, err := runSimulation(&bytes.Buffer{}, config.DefaultFieldConfig(), opts, nil)
	require.NoError(t, err)
	for _, r := range reports {
		assert.Zero(t, r.Transient)
		assert.Equal(t, 6, r.Ambient)
	}
}

func TestRunSimulationRejectsBadInput(t *testing.T) {
	_, err := runSimulation(&bytes.Buffer{}, config.DefaultFieldConfig(), simulateOptions{Ticks: -1, Width: 10, Height: 10}, nil)
	assert.Error(t, err)

	_, err = runSimulation(&bytes.Buffer{}, config.DefaultFieldConfig(), simulateOptions{Ticks: 1, Width: 0, Height: 10}, nil)
	assert.Error(t, err)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stats:\n  url: https://example.com/file.json\n"), 0o644))

	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&statsURL, "url", "", "")
	cmd.Flags().DurationVar(&interval, "interval", 0, "")

	configPath = path
	t.Cleanup(func() { configPath, statsURL, interval = "", "", 0 })

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/file.json", cfg.Stats.URL)
	assert.Equal(t, 15*time.Second, cfg.Stats.Interval)

	require.NoError(t, cmd.Flags().Set("interval", "30s"))
	require.NoError(t, cmd.Flags().Set("url", "http://localhost/stats.json"))
	cfg, err = loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/stats.json", cfg.Stats.URL)
	assert.Equal(t, 30*time.Second, cfg.Stats.Interval)

	require.NoError(t, cmd.Flags().Set("interval", "-1s"))
	_, err = loadConfig(cmd)
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"simulate", "--ticks", "10", "--report-every", "5", "--width", "200", "--height", "200"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "ambient")
	assert.Contains(t, out.String(), "10")
}

func TestUnknownBackend(t *testing.T) {
	backend = "svg"
	t.Cleanup(func() { backend = backendWindow })
	err := runDashboard(&cobra.Command{}, nil)
	assert.ErrorContains(t, err, "unknown backend")
}

func TestNewRandSeeded(t *testing.T) {
	assert.Equal(t, newRand(5).Int63(), newRand(5).Int63())
}

func TestExampleConfigCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"example-config"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, string(config.ExampleYAML), out.String())
}

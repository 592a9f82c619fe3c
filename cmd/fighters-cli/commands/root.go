package commands

import (
	"context"
	"errors"
	"fighterdata/internal/collector"
	"fighterdata/internal/components/chrono"
	"fighterdata/internal/components/telemetry"
	"fighterdata/internal/dataset"
	"fighterdata/internal/fighters"
	"fighterdata/internal/ufcstats"
	"fighterdata/lib/configutil"
	"fighterdata/lib/restyutil"
	"fighterdata/lib/serviceutil"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const serviceName = "fighters-cli"

type Config struct {
	BaseUrl        string            `json:"base_url"`
	RequestDelayMs int               `json:"request_delay_ms"`
	Dataset        dataset.Config    `json:"dataset"`
	Targets        []fighters.Target `json:"targets"`
	Telemetry      telemetry.Config  `json:"telemetry"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:        ufcstats.DefaultBaseUrl,
		RequestDelayMs: int(ufcstats.DefaultRequestDelay / time.Millisecond),
		Dataset: dataset.Config{
			Path: "fighters_data.json",
		},
	}
}

func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("config file not found, using defaults", "path", path)
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}

	defaults := defaultConfig()
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = defaults.BaseUrl
	}
	if cfg.RequestDelayMs == 0 {
		cfg.RequestDelayMs = defaults.RequestDelayMs
	}
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = defaults.Dataset.Path
	}
	return cfg, nil
}

var (
	configPath string
	verbose    bool
	dumpDir    string
)

// state shared by every command, populated before a command runs
var (
	config     Config
	store      *dataset.Store
	client     *ufcstats.Client
	directory  *ufcstats.Directory
	collect    *collector.Collector
	tracing    telemetry.Telemetry
	tel        telemetry.API = telemetry.SlogAPI{}
	stopTiming context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "fighters-cli scrapes ufcstats.com fighter profiles into fighters_data.json.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		ctx := cmd.Context()

		var err error
		config, err = loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		if config.Telemetry.Enabled() {
			tracing, err = telemetry.Setup(ctx, serviceName, config.Telemetry)
			if err != nil {
				serviceutil.Fatal("failed to setup telemetry", err)
			}
			var perfCtx context.Context
			perfCtx, stopTiming = context.WithCancel(ctx)
			telemetry.InstrumentPerfStats(perfCtx, 15*time.Second)
		}

		store, err = dataset.OpenStore(ctx, config.Dataset)
		if err != nil {
			serviceutil.Fatal("failed to open dataset", err)
		}

		opts := ufcstats.ClientOptions{
			BaseUrl:      config.BaseUrl,
			RequestDelay: time.Duration(config.RequestDelayMs) * time.Millisecond,
		}
		if dumpDir != "" {
			output, err := restyutil.NewDirectoryOutput(dumpDir)
			if err != nil {
				serviceutil.Fatal("failed to prepare dump directory", err)
			}
			opts.Dump = output
		}
		client, err = ufcstats.NewClient(opts, tel)
		if err != nil {
			serviceutil.Fatal("failed to create ufcstats client", err)
		}
		directory = ufcstats.NewDirectory(client, tel)
		collect = collector.New(client, directory, store, chrono.NewStandardImpl(), tel)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			err := store.Close()
			if err != nil {
				slog.Warn("failed to close dataset", "err", err)
			}
		}
		if stopTiming != nil {
			stopTiming()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := tracing.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The configuration file to read.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request and extraction step.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump-dir", "", "Write every fetched page to this directory.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

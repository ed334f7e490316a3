// Package main is the bot statistics dashboard: a live stats overlay on top of an
// interactive particle field.
//
// Usage:
//
//	botdash [flags]
//	botdash simulate [flags]
//	botdash example-config > botdash.yaml
//
// Flags:
//
//	--config <path>       YAML config file, watched for changes
//	--backend <name>      window (default) or terminal
//	--url <url>           stats JSON source
//	--interval <dur>      stats polling interval (e.g. 15s)
//	--page <id>           initial page: overview, cluster or player
//	--seed <n>            particle RNG seed (0 = time based)
//	--verbose, -v         debug logging
//
// Controls:
//
//	Mouse move        - Attract particles, leave a trail
//	Mouse click       - Particle burst (also switches page on a tab)
//	1-3 / Tab         - Switch page
//	F11               - Toggle fullscreen (window backend)
//	Q/Escape          - Quit (terminal backend)
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/botdash/pkg/app"
	"github.com/decker502/botdash/pkg/config"
	"github.com/decker502/botdash/pkg/logging"
	"github.com/decker502/botdash/pkg/stats"
	"github.com/decker502/botdash/pkg/systems"
)

// 后端名称
const (
	backendWindow   = "window"
	backendTerminal = "terminal"
)

var (
	configPath string
	backend    string
	statsURL   string
	interval   time.Duration
	page       string
	seed       int64
	fps        int
	verbose    bool
	logFile    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "botdash",
	Short: "Bot statistics dashboard with an interactive particle background",
	Long: `botdash polls a bot's public statistics JSON and shows it over an
animated particle field. Particles drift, bounce off the edges, are drawn
towards the pointer and link up with nearby neighbours; clicks and pointer
trails spawn short-lived particles.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 终端后端独占屏幕，未指定日志文件时不输出日志
		if backend == backendTerminal && logFile == "" && cmd == rootCmd {
			logger = zap.NewNop()
			return nil
		}
		var err error
		logger, err = logging.New(logging.Options{Verbose: verbose, Output: logFile, Console: true})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDashboard,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (watched for changes)")

	rootCmd.Flags().StringVar(&backend, "backend", backendWindow, "Rendering backend: window or terminal")
	rootCmd.Flags().StringVar(&statsURL, "url", "", "Stats JSON URL (overrides config)")
	rootCmd.Flags().DurationVar(&interval, "interval", 0, "Stats polling interval (overrides config)")
	rootCmd.Flags().StringVar(&page, "page", "", "Initial page: overview, cluster or player")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Particle RNG seed (0 = time based)")
	rootCmd.Flags().IntVar(&fps, "fps", app.DefaultFrameRate, "Frame rate of the terminal backend")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(exampleConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig 读取配置文件并应用命令行覆盖
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Stats.URL = statsURL
	}
	if flags.Changed("interval") {
		cfg.Stats.Interval = interval
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// newRand 返回粒子场使用的随机源；seed 为 0 时使用当前时间
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if backend != backendWindow && backend != backendTerminal {
		return fmt.Errorf("unknown backend %q (want %s or %s)", backend, backendWindow, backendTerminal)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	poller := stats.NewPoller(cfg.Stats, &http.Client{Timeout: cfg.Stats.Timeout}, logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return poller.Run(gctx) })

	var updates <-chan *config.Config
	if configPath != "" {
		w, err := config.NewWatcher(configPath, logger)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		updates = w.Updates()
		g.Go(func() error { return w.Run(gctx) })
	}

	field := systems.NewParticleSystem(cfg.Field, newRand(seed), logger)
	opts := app.DashboardOptions{
		Field:   field,
		Source:  poller,
		Updates: updates,
		Page:    page,
		Logger:  logger,
	}

	// 帧循环必须运行在主 goroutine 上（ebiten 的要求），后台任务在 errgroup 中运行
	runErr := runBackend(gctx, cfg, opts)
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return runErr
}

func runBackend(ctx context.Context, cfg *config.Config, opts app.DashboardOptions) error {
	switch backend {
	case backendTerminal:
		opts.Tabs = app.TerminalTabBar
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		return app.NewTerminal(app.NewDashboard(opts), screen, fps, logger).Run(ctx)
	default:
		opts.Tabs = app.DefaultTabBar
		a, err := app.NewApp(app.NewDashboard(opts), cfg.Window, logger)
		if err != nil {
			return err
		}
		return a.Run(ctx)
	}
}

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "Print an annotated example config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(config.ExampleYAML)
		return err
	},
}

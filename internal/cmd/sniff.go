package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DedPeredoz/rustyloot-scraper/internal/hub"
	"github.com/DedPeredoz/rustyloot-scraper/internal/output"
	"github.com/DedPeredoz/rustyloot-scraper/internal/server"
	"github.com/DedPeredoz/rustyloot-scraper/internal/session"
	"github.com/DedPeredoz/rustyloot-scraper/internal/sniffer"
	"github.com/DedPeredoz/rustyloot-scraper/internal/stats"
)

var (
	durationSec   int
	headless      bool
	dashboard     bool
	dashboardPort string
)

var sniffCmd = &cobra.Command{
	Use:   "sniff",
	Short: "Log in and capture inventory events for a fixed duration",
	Long: `Log in to rustyloot.gg with the credentials from RL_USERNAME and
RL_PASSWORD, open the withdraw page and listen to the site's Socket.IO
traffic for the given duration. Inventory payloads are aggregated by item
name and written to inventory.json after every change; a combined report is
written at the end of the run.

Examples:
  rustyloot-scraper sniff
  rustyloot-scraper sniff --duration 600 --headless
  rustyloot-scraper sniff --dashboard --dashboard-port 8077`,
	RunE: runSniff,
}

func init() {
	rootCmd.AddCommand(sniffCmd)

	sniffCmd.Flags().IntVarP(&durationSec, "duration", "d", 180, "capture duration in seconds")
	sniffCmd.Flags().BoolVar(&headless, "headless", false, "run the browser headless (enable in CI)")
	sniffCmd.Flags().BoolVar(&dashboard, "dashboard", false, "serve a live dashboard while capturing")
	sniffCmd.Flags().StringVar(&dashboardPort, "dashboard-port", "8077", "dashboard listen port")
}

func runSniff(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(viper.GetString("log_file"))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	username := viper.GetString("username")
	password := viper.GetString("password")
	if username == "" || password == "" {
		logger.Printf("RL_USERNAME/RL_PASSWORD not set")
		return fmt.Errorf("missing credentials: export RL_USERNAME and RL_PASSWORD")
	}

	// --- Set up context with graceful shutdown ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Printf("interrupt received, finishing up...")
		cancel()
	}()

	// --- Launch the browser ---
	driver, err := session.New(session.Config{
		AuthURL:     viper.GetString("auth_url"),
		WithdrawURL: viper.GetString("withdraw_url"),
		Headless:    headless,
	}, logger)
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer driver.Close()

	if err := driver.Login(username, password); err != nil {
		return err
	}
	if err := driver.OpenWithdraw(); err != nil {
		return err
	}
	driver.StartCapture()

	// --- Choose renderer ---
	var renderer output.Renderer
	switch strings.ToLower(outputFmt) {
	case "json":
		renderer = output.NewJSONRenderer()
	default:
		renderer = output.NewTextRenderer()
	}

	// --- Wire the pipeline ---
	tracker := stats.NewTracker()
	var events *hub.Hub
	if dashboard {
		events = hub.New(logger)
		defer events.Close()
	}

	runner := sniffer.New(sniffer.Config{
		Duration:      time.Duration(durationSec) * time.Second,
		PollInterval:  time.Duration(viper.GetInt("poll_interval_ms")) * time.Millisecond,
		DedupCapacity: viper.GetInt("dedup_capacity"),
		InventoryFile: viper.GetString("inventory_file"),
		ReportFile:    viper.GetString("report_file"),
	}, driver, logger, renderer, events, tracker)

	if dashboard {
		srv := server.New(events, tracker, runner.Snapshot, logger, dashboardPort)
		go func() {
			if err := srv.Start(); err != nil {
				logger.Printf("dashboard server error: %v", err)
			}
		}()
		logger.Printf("dashboard listening on :%s", dashboardPort)
	}

	err = runner.Run(ctx)

	snap := tracker.Stats()
	logger.Printf("run stats: %d frames, %d events, %d duplicates, %d items merged",
		snap.Frames, snap.Events, snap.Duplicates, snap.ItemsMerged)

	return err
}

// newLogger builds the combined file+console logger used across the run.
func newLogger(path string) (*log.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(io.MultiWriter(f, os.Stdout), "", log.LstdFlags)
	return logger, func() { f.Close() }, nil
}

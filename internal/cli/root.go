// Package cli wires the dashboard together behind a cobra command.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"vmtop/internal/collector"
	"vmtop/internal/config"
	"vmtop/internal/control"
	"vmtop/internal/logging"
	"vmtop/internal/ui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vmtop",
	Short: "Terminal dashboard for libvirt virtual machines",
	Long: `vmtop polls a libvirt host for per-VM resource metrics, derives CPU
utilization from the cumulative counters, and lets you start, stop and
snapshot the selected VM.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// SetVersionInfo records the build metadata main injects via ldflags.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.Flags().String("uri", config.DefaultURI, "libvirt connection URI")
	rootCmd.Flags().Duration("interval", config.DefaultInterval, "polling interval")
	rootCmd.Flags().String("log-file", "", "append structured logs to this file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vmtop: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger := logging.Nop()
	if cfg.LogFile != "" {
		fileLogger, closeLog, err := logging.ToFile(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
		logger = fileLogger
	}

	session, err := collector.Open(cfg.URI, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	source := collector.New(session)
	lifecycle := control.NewClient(session.Client(), logger)
	dispatcher := control.NewDispatcher(lifecycle)

	app := ui.NewApp(source, dispatcher, cfg.Interval, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return app.Err()
}

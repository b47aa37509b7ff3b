package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/aroussi/fragsim/internal/config"
	"github.com/aroussi/fragsim/internal/display"
	"github.com/aroussi/fragsim/internal/export"
	"github.com/aroussi/fragsim/pkg/fragment"
)

// Config holds the parsed CLI configuration.
type Config struct {
	PacketSize  int
	HeaderSize  int
	MTUPath     string
	FragmentID  int
	ComparePath string
	Simple      bool
	NoColor     bool
	Output      string
	Format      string
	ConfigPath  string
	Verbose     bool
	DryRun      bool
}

var validFormats = map[string]bool{
	"":     true, // detect from extension
	"json": true,
	"csv":  true,
	"text": true,
}

// NewRootCmd creates and returns the root cobra command.
func NewRootCmd() *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "fragsim",
		Short: "IPv4 fragmentation simulator",
		Long: `fragsim simulates RFC 791 IPv4 fragmentation of a packet crossing a
path of network hops with different MTUs, showing how fragments split,
re-fragment, and accumulate header overhead along the way.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !validFormats[cfg.Format] {
				return fmt.Errorf("invalid format %q: must be json, csv, or text", cfg.Format)
			}
			if cfg.FragmentID < 0 || cfg.FragmentID > 65535 {
				return fmt.Errorf("invalid fragment ID %d: must fit the 16-bit Identification field", cfg.FragmentID)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, &cfg)
		},
	}

	// Packet flags
	cmd.Flags().IntVarP(&cfg.PacketSize, "packet-size", "p", 0, "Total packet size in bytes (default from config)")
	cmd.Flags().IntVarP(&cfg.HeaderSize, "header-size", "H", 0, "IP header size in bytes (default from config)")
	cmd.Flags().StringVarP(&cfg.MTUPath, "mtu-path", "m", "", "Comma-separated MTU per hop, e.g. 1500,576,1500")
	cmd.Flags().IntVar(&cfg.FragmentID, "fragment-id", 0, "Fragment identification value (0 = generate)")

	// Comparison flags
	cmd.Flags().StringVar(&cfg.ComparePath, "compare", "", "Second MTU path to compare against")

	// Display flags
	cmd.Flags().BoolVar(&cfg.Simple, "simple", false, "Simple output (no TUI)")
	cmd.Flags().BoolVar(&cfg.NoColor, "no-color", false, "Disable colors (implies --simple)")

	// Export flags
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "Export to file (json/csv/txt)")
	cmd.Flags().StringVar(&cfg.Format, "format", "", "Explicit export format")

	// Other flags
	cmd.Flags().StringVar(&cfg.ConfigPath, "config", "", "Config file path")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Validate inputs without running the simulation")

	return cmd
}

// newLogger builds the CLI logger. Debug output goes to stderr so it
// never interleaves with report output on stdout.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{"stderr"}
	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log.Sugar(), nil
}

// parseMTUPath parses a comma-separated MTU list into hop MTU values.
func parseMTUPath(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty MTU path")
	}

	parts := strings.Split(s, ",")
	path := make([]int, 0, len(parts))
	for _, part := range parts {
		mtu, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid MTU %q in path", strings.TrimSpace(part))
		}
		path = append(path, mtu)
	}

	return path, nil
}

// applyConfigDefaults fills unset flags from the persisted configuration.
func applyConfigDefaults(cmd *cobra.Command, cfg *Config, appCfg *config.Config) {
	if !cmd.Flags().Changed("packet-size") {
		cfg.PacketSize = appCfg.DefaultPacketSize
	}
	if !cmd.Flags().Changed("header-size") {
		cfg.HeaderSize = appCfg.DefaultHeaderSize
	}
	if !cmd.Flags().Changed("mtu-path") {
		cfg.MTUPath = appCfg.DefaultMTUPath
	}
}

// runSimulation executes the fragmentation simulation based on configuration.
func runSimulation(cmd *cobra.Command, cfg *Config) error {
	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	appCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfigDefaults(cmd, cfg, appCfg)

	mtuPath, err := parseMTUPath(cfg.MTUPath)
	if err != nil {
		return err
	}

	sim := fragment.NewSimulator(fragment.WithLogger(log))

	if cfg.DryRun {
		if err := sim.Limits().Validate(cfg.PacketSize, cfg.HeaderSize, mtuPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "inputs valid")
		return nil
	}

	id := uint16(cfg.FragmentID)
	if id == 0 {
		id = fragment.NewID()
	}

	rep, err := sim.Simulate(cfg.PacketSize, cfg.HeaderSize, mtuPath, id)
	if err != nil {
		return err
	}

	// Compare mode: simulate the second path and render side by side.
	if cfg.ComparePath != "" {
		otherPath, err := parseMTUPath(cfg.ComparePath)
		if err != nil {
			return fmt.Errorf("invalid --compare path: %w", err)
		}
		other, err := sim.Simulate(cfg.PacketSize, cfg.HeaderSize, otherPath, id)
		if err != nil {
			return fmt.Errorf("compare simulation failed: %w", err)
		}
		display.NewCompareRenderer().Render(cmd.OutOrStdout(), rep, other)
		return exportIfRequested(cmd, cfg, rep)
	}

	// Simple output for --simple, --no-color, exports, and non-terminals.
	if cfg.Simple || cfg.NoColor || cfg.Output != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		display.NewSimpleRenderer().RenderReport(cmd.OutOrStdout(), rep)
		return exportIfRequested(cmd, cfg, rep)
	}

	theme, err := display.RunTUI(rep, appCfg.Theme, appCfg.ExportDirectory, appCfg.AutoTimestamp)
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Persist a theme toggled during the session.
	if theme != appCfg.Theme {
		appCfg.Theme = theme
		if err := appCfg.Save(configPath); err != nil {
			log.Warnw("failed to save config", "path", configPath, "error", err)
		}
	}

	return nil
}

// exportIfRequested writes the report to the requested output file.
func exportIfRequested(cmd *cobra.Command, cfg *Config, rep *fragment.Report) error {
	if cfg.Output == "" {
		return nil
	}
	if err := export.ExportToFile(cfg.Output, export.Format(cfg.Format), rep); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report exported to %s\n", cfg.Output)
	return nil
}

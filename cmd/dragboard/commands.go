package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/justyntemme/dragboard/internal/app"
	"github.com/justyntemme/dragboard/internal/config"
	"github.com/justyntemme/dragboard/internal/debug"
	"github.com/justyntemme/dragboard/internal/metrics"
	"github.com/justyntemme/dragboard/internal/store"
)

// globalFlags are shared by every command
type globalFlags struct {
	configPath  string
	metricsAddr string
	debugCats   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "dragboard [dir]",
		Short: "Drag files between folders on a board",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.debugCats != "" {
				debug.Configure(flags.debugCats)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.newSession()
			if err != nil {
				return err
			}
			manageConsole(debug.Enabled)
			app.Main(session, firstArg(args))
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", config.ConfigPath(), "Path to config.json")
	root.PersistentFlags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides metrics.addr)")
	root.PersistentFlags().StringVar(&flags.debugCats, "debug-categories", "", "Comma-separated debug categories, or \"all\" (debug builds only)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newJournalCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	return root
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [dir]",
		Short: "Run the board in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.newSession()
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()

			return app.NewTerminal(session, screen).Run(firstArg(args))
		},
	}
}

func newJournalCmd(flags *globalFlags) *cobra.Command {
	var (
		limit int
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recorded drag gestures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			db := store.NewDB()
			if err := db.Open(cfg.StorePath()); err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer db.Close()

			if stats {
				counts, err := db.Stats()
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), counts)
				return nil
			}

			gestures, err := db.Recent(limit)
			if err != nil {
				return err
			}
			printGestures(cmd.OutOrStdout(), gestures)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of gestures to show, newest first (0 for all)")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print counts by outcome and operation instead")
	return cmd
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config, backing up the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := config.GenerateConfigAt(flags.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if backup != "" {
				fmt.Fprintf(out, "Backed up existing config to %s\n", backup)
			}
			fmt.Fprintf(out, "Wrote default config to %s\n", flags.configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	})

	return cmd
}

// load reads the config file. A journal path left empty follows the config
// file's directory.
func (f *globalFlags) load() (config.Config, error) {
	m := config.NewManager()
	if err := m.LoadFrom(f.configPath); err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := m.ParseError(); err != nil {
		log.Printf("Config: using defaults for invalid settings: %v", err)
	}

	cfg := m.Get()
	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(filepath.Dir(f.configPath), "journal.db")
	}
	if f.metricsAddr != "" {
		cfg.Metrics.Addr = f.metricsAddr
	}
	return cfg, nil
}

// newSession loads the config and builds a session, serving its metrics
// when an address is configured.
func (f *globalFlags) newSession() (*app.Session, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Addr != "" {
		serveMetrics(cfg.Metrics.Addr, reg)
	}
	return app.NewSession(cfg, reg), nil
}

func serveMetrics(addr string, g prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("Metrics: serving on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics: %v", err)
		}
	}()
}

func printGestures(w io.Writer, gestures []store.Gesture) {
	if len(gestures) == 0 {
		fmt.Fprintln(w, "No gestures recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOUTCOME\tOPERATION\tSOURCE\tTARGET")
	for _, g := range gestures {
		target := g.Target
		if g.Error != "" {
			target += " (" + g.Error + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			g.CreatedAt.Format("2006-01-02 15:04:05"), g.Outcome, g.Operation, g.Source, target)
	}
	tw.Flush()
}

func printStats(w io.Writer, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%d\n", k, counts[k])
	}
	tw.Flush()
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

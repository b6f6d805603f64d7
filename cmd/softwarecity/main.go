package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/softwarecity/internal/config"
	"github.com/ChicagoDave/softwarecity/internal/logging"
	"github.com/ChicagoDave/softwarecity/internal/server"
)

// errInvalid is returned after an invalid report has been printed, so main
// exits non-zero without printing it again.
var errInvalid = errors.New("city document is invalid")

// app carries the state shared by every command after flag parsing.
type app struct {
	configPath string
	logLevel   string

	cfg       config.Config
	log       *slog.Logger
	logCloser io.Closer
}

func main() {
	os.Exit(run(&app{}, os.Args[1:], os.Stderr))
}

// run executes the command line and returns the process exit code. The log
// file is closed whether or not the command succeeded.
func run(a *app, args []string, stderr io.Writer) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	a.close()
	if err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "softwarecity",
		Short:         "Render a software system as a 3D city",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(buildCmd(a))
	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(planCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	return rootCmd
}

func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, closer, err := logging.Open(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.logCloser = cfg, logger, closer
	return nil
}

func buildCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build [project-path]",
		Short: "Assemble the city and write its scene graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(args[0], output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty; .zst compresses)")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a city document without assembling it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(args[0], cmd.OutOrStdout())
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [project-path]",
		Short: "Show resolved layout parameters and dependency statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStats(args[0], cmd.OutOrStdout())
		},
	}
}

func planCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [project-path]",
		Short: "Write the top-down 2D plan of the city as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(args[0], cmd.OutOrStdout())
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server for the browser renderer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			opts, err := a.cfg.SceneOptions(a.log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(args[0], a.cfg.Server.Port, opts).Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port (overrides config)")
	return cmd
}

// Command oxy-view runs the interactive camera demos.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-view/config"
	"github.com/Carmen-Shannon/oxy-view/demo"
	"github.com/Carmen-Shannon/oxy-view/engine/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	fps        float64
	profile    bool
}

// app is filled in by the root command's PersistentPreRunE.
type app struct {
	opts   options
	loader *config.Loader
	cfg    config.Config
	logger zerolog.Logger

	// levelPinned is set when --log-level was given; reloads then leave the level alone.
	levelPinned bool
}

// GLFW must run on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd, _ := newRoot()
	return rootCmd
}

// newRoot builds the command tree and the app its PersistentPreRunE fills in.
func newRoot() (*cobra.Command, *app) {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "oxy-view",
		Short: "Orbit camera demos on WebGPU",
		Long: `oxy-view opens one interactive scene per subcommand.

  Left drag:        rotate (Ctrl constrains to one axis)
  Shift left drag:  pan
  Wheel:            dolly (Shift changes the field of view)
  Left drag a dot:  move a control point or light
  Esc:              quit`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "config file path (default ./oxy-view.yaml)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level: debug, info, warn, error, off")
	flags.StringVar(&a.opts.logFormat, "log-format", "", "log format: console or json")
	flags.Float64Var(&a.opts.fps, "fps", 0, "frame rate cap, 0 for none")
	flags.BoolVar(&a.opts.profile, "profile", false, "log frame statistics")

	for _, e := range demo.Entries() {
		rootCmd.AddCommand(demoCmd(a, e))
	}
	rootCmd.AddCommand(listCmd())
	return rootCmd, a
}

// init loads configuration and builds the logger. Flags override the file and environment.
func (a *app) init(cmd *cobra.Command, _ []string) error {
	loader, err := config.Load(a.opts.configPath, zerolog.Nop())
	if err != nil {
		return err
	}
	cfg := loader.Config()

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
		a.levelPinned = true
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.opts.logFormat
	}
	if flags.Changed("profile") {
		cfg.Renderer.Profile = a.opts.profile
	}

	a.logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: logging.Format(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
	})
	loader.SetLogger(a.logger)
	a.loader = loader
	a.cfg = cfg
	return nil
}

func demoCmd(a *app, e demo.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   e.Name,
		Short: e.Short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(e)
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, e := range demo.Entries() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", e.Name, e.Short); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

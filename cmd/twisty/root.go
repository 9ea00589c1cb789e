package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chazu/twisty/pkg/config"
	"github.com/chazu/twisty/pkg/logging"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	logJSON    bool
	quiet      bool

	opts config.Options
	log  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{opts: config.Default(), log: logging.New(logging.Config{Quiet: true})}

	root := &cobra.Command{
		Use:           "twisty",
		Short:         "Generate and canonicalize a 3x3x3 twisty cube MJCF model",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.log = logging.New(logging.Config{
				Level:   level,
				JSON:    a.logJSON,
				Quiet:   a.quiet,
				Writer:  cmd.ErrOrStderr(),
				Service: "twisty",
			})
			return a.resolve(cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "options file (.yaml, .yml, .toml or .zy recipe)")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.BoolVar(&a.logJSON, "log-json", false, "log as JSON")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "disable logging")

	d := config.Default()
	pf.String("name", d.Name, "model name")
	pf.StringP("output", "o", d.Output, "output document path")
	pf.String("assets", d.AssetsDir, "texture directory, relative to the document")
	pf.Bool("actuators", d.Actuators, "add a motor to every center cubelet")
	pf.Int("precision", d.Precision, "significant digits of printed numbers")
	pf.Float64("zero-threshold", d.ZeroThreshold, "magnitudes below this print as 0")
	pf.Int("resolution", d.TextureResolution, "texture cell size in pixels")

	root.AddCommand(
		newGenerateCmd(a),
		newCanonCmd(a),
		newTexturesCmd(a),
		newCheckCmd(a),
		newHullCmd(a),
	)
	return root
}

// resolve layers defaults, the config file and explicitly set flags, in
// that order, and validates the result.
func (a *app) resolve(flags *pflag.FlagSet) error {
	o := config.Default()
	if a.configPath != "" {
		if err := o.Merge(a.configPath); err != nil {
			return err
		}
		a.log.Debug("loaded config", "path", a.configPath)
	}

	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}
	set("name", func() (e error) { o.Name, e = flags.GetString("name"); return })
	set("output", func() (e error) { o.Output, e = flags.GetString("output"); return })
	set("assets", func() (e error) { o.AssetsDir, e = flags.GetString("assets"); return })
	set("actuators", func() (e error) { o.Actuators, e = flags.GetBool("actuators"); return })
	set("precision", func() (e error) { o.Precision, e = flags.GetInt("precision"); return })
	set("zero-threshold", func() (e error) { o.ZeroThreshold, e = flags.GetFloat64("zero-threshold"); return })
	set("resolution", func() (e error) { o.TextureResolution, e = flags.GetInt("resolution"); return })
	if err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	if err := o.Validate(); err != nil {
		return err
	}
	a.opts = o
	return nil
}

package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/midi2/internal/config"
	"github.com/danmuck/midi2/internal/logging"
	"github.com/danmuck/midi2/internal/observability"
)

type options struct {
	configPath  string
	logLevel    string
	metricsFile string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "umpconv",
		Short:         "Decode and convert MIDI 2.0 UMP and MIDI 1.0 byte streams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if opts.cfg.MetricsFile == "" {
				return nil
			}
			return observability.WriteTextfile(opts.cfg.MetricsFile)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a umpconv TOML config")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write decode counters to this file in the Prometheus text format")

	cmd.AddCommand(newDecodeCmd(opts), newConvertCmd(opts), newConfigCmd())
	return cmd
}

// load resolves the config file, then lets explicit flags override it.
func (o *options) load(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		return errors.Errorf("unknown log level %q", cfg.LogLevel)
	}
	observability.InitLogger("umpconv", level)
	log.Debug().Str("input", cfg.Input).Str("output", cfg.Output).Uint8("group", cfg.Group).Msg("config resolved")
	o.cfg = cfg
	return nil
}

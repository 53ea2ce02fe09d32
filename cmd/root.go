package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"connectn/config"
	"connectn/engine"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options are filled by the root command before any subcommand runs.
type options struct {
	configPath string
	logLevel   string
	config     config.Config
}

// NewRootCommand builds the connectn CLI.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "connectn",
		Short: "Play connect-N against a minimax AI",
		Long: `connectn plays N-in-a-row games on any board size against a depth-limited
minimax search with alpha-beta pruning, in the terminal or over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides the config)")

	root.AddCommand(newPlayCommand(opts), newSelfPlayCommand(opts), newServeCommand(opts))
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) load(logOut io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = strings.ToLower(o.logLevel)
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return errors.Wrap(err, "--log-level")
		}
	}
	o.config = cfg

	setupLogging(cfg.Log, logOut)
	log.Debug().Msgf("loaded config %+v", cfg)
	return nil
}

func setupLogging(c config.LogConfig, out io.Writer) {
	zerolog.SetGlobalLevel(c.ZerologLevel())
	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func (o *options) settings() engine.Settings {
	return engine.Settings{
		Rows:            o.config.Board.Rows,
		Cols:            o.config.Board.Cols,
		WinLength:       o.config.Board.WinLength,
		PlayerGoesFirst: o.config.Board.PlayerGoesFirst,
		Depth:           o.config.Search.Depth,
		NoPruning:       !o.config.Search.Pruning,
	}
}

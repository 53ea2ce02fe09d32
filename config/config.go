package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"connectn/game"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "connectn.yaml"

// Config holds every setting of the CLI and the server. Load merges env > file > defaults.
type Config struct {
	Board      BoardConfig      `yaml:"board"`
	Search     SearchConfig     `yaml:"search"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Experiment ExperimentConfig `yaml:"experiment"`
}

type BoardConfig struct {
	Rows            int  `yaml:"rows"`
	Cols            int  `yaml:"cols"`
	WinLength       int  `yaml:"win_length"`
	PlayerGoesFirst bool `yaml:"player_goes_first"`
}

type SearchConfig struct {
	Depth   int  `yaml:"depth"`
	Pruning bool `yaml:"pruning"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type ExperimentConfig struct {
	Games          int    `yaml:"games"`
	Depths         []int  `yaml:"depths"`
	MCTSGoroutines []int  `yaml:"mcts_goroutines"`
	MCTSEpisodes   int    `yaml:"mcts_episodes"`
	OutDir         string `yaml:"out_dir"`
}

// Default returns a 19x19 five-in-a-row game where the AI moves first and searches 4 plies.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Rows:            19,
			Cols:            19,
			WinLength:       5,
			PlayerGoesFirst: false,
		},
		Search: SearchConfig{
			Depth:   4,
			Pruning: true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Experiment: ExperimentConfig{
			Games:          2,
			Depths:         []int{1, 2},
			MCTSGoroutines: []int{1, 4},
			MCTSEpisodes:   200,
			OutDir:         "experiments",
		},
	}
}

// Load reads the config at path over the defaults, applies the environment and validates the
// result. A missing file is not an error.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, errors.Wrapf(err, "load config file %s", path)
		}
	}

	if err := loadFromEnv(&config); err != nil {
		return config, errors.Wrap(err, "load config from environment")
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "invalid config")
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, config)
}

func loadFromEnv(config *Config) error {
	var errs *multierror.Error

	setInt := func(name string, target *int) {
		if v := os.Getenv(name); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = multierror.Append(errs, errors.Wrapf(err, "%s", name))
				return
			}
			*target = i
		}
	}
	setBool := func(name string, target *bool) {
		if v := os.Getenv(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = multierror.Append(errs, errors.Wrapf(err, "%s", name))
				return
			}
			*target = b
		}
	}
	setString := func(name string, target *string) {
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}

	setInt("CONNECTN_ROWS", &config.Board.Rows)
	setInt("CONNECTN_COLS", &config.Board.Cols)
	setInt("CONNECTN_WIN_LENGTH", &config.Board.WinLength)
	setBool("CONNECTN_PLAYER_FIRST", &config.Board.PlayerGoesFirst)
	setInt("CONNECTN_DEPTH", &config.Search.Depth)
	setBool("CONNECTN_PRUNING", &config.Search.Pruning)
	setString("CONNECTN_ADDR", &config.Server.Addr)
	setString("CONNECTN_LOG_LEVEL", &config.Log.Level)
	setBool("CONNECTN_LOG_PRETTY", &config.Log.Pretty)

	return errs.ErrorOrNil()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs *multierror.Error

	if c.Board.Rows < 1 || c.Board.Cols < 1 {
		errs = multierror.Append(errs, fmt.Errorf("board must have at least one row and column, got %dx%d", c.Board.Rows, c.Board.Cols))
	}
	if c.Board.WinLength < 1 || c.Board.WinLength > max(c.Board.Rows, c.Board.Cols) {
		errs = multierror.Append(errs, fmt.Errorf("win_length %d does not fit on a %dx%d board", c.Board.WinLength, c.Board.Rows, c.Board.Cols))
	}
	if c.Board.WinLength > game.MaxWinLength {
		errs = multierror.Append(errs, fmt.Errorf("win_length must be <= %d, got %d", game.MaxWinLength, c.Board.WinLength))
	}
	if c.Search.Depth < 1 {
		errs = multierror.Append(errs, fmt.Errorf("depth must be >= 1, got %d", c.Search.Depth))
	}
	if c.Experiment.Games < 1 {
		errs = multierror.Append(errs, fmt.Errorf("experiment games must be >= 1, got %d", c.Experiment.Games))
	}
	for _, depth := range c.Experiment.Depths {
		if depth < 1 {
			errs = multierror.Append(errs, fmt.Errorf("experiment depths must be >= 1, got %d", depth))
		}
	}
	for _, n := range c.Experiment.MCTSGoroutines {
		if n < 1 {
			errs = multierror.Append(errs, fmt.Errorf("experiment mcts_goroutines must be >= 1, got %d", n))
		}
	}
	if c.Experiment.MCTSEpisodes < 1 {
		errs = multierror.Append(errs, fmt.Errorf("experiment mcts_episodes must be >= 1, got %d", c.Experiment.MCTSEpisodes))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("log level: %w", err))
	}

	return errs.ErrorOrNil()
}

// ZerologLevel returns the parsed log level, info if it does not parse.
func (c LogConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

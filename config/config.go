// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2017-2023 The Spacemesh developers

package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/spacemeshos/solflood/client"
	"github.com/spacemeshos/solflood/epoch"
	"github.com/spacemeshos/solflood/logging"
	"github.com/spacemeshos/solflood/orchestrator"
	"github.com/spacemeshos/solflood/puzzle"
	"github.com/spacemeshos/solflood/types"
)

const (
	defaultNodeURL        = "http://localhost:3030/testnet"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "solflood.log"
	defaultMaxLogFiles    = 3
	defaultMaxLogFileSize = 10
)

var (
	ErrMissingNodeURL  = errors.New("node URL is required")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Config defines the configuration options for solflood.
//
//nolint:lll
type Config struct {
	NodeURL        string        `long:"node-url"         description:"Base URL of the node REST API"`
	BlocksPerEpoch uint32        `long:"blocks-per-epoch" description:"Number of blocks in an epoch"`
	RequestTimeout time.Duration `long:"request-timeout"  description:"Timeout of a single request to the node"`
	Recipient      types.Address `long:"recipient"        description:"Hex encoded address solutions are bound to"`
	SearchBound    uint64        `long:"search-bound"     description:"Number of nonces tried per genuine proving attempt"`

	ConfigFile     string  `long:"configfile"     description:"Path to configuration file"                   short:"c"`
	LogDir         string  `long:"logdir"         description:"Directory to log output, empty disables file logging"`
	DebugLog       bool    `long:"debuglog"       description:"Enable debug logs"`
	JSONLog        bool    `long:"jsonlog"        description:"Whether to log in JSON format"`
	MaxLogFiles    int     `long:"maxlogfiles"    description:"Maximum logfiles to keep (0 for no rotation)"`
	MaxLogFileSize int     `long:"maxlogfilesize" description:"Maximum logfile size in MB"`
	MetricsPort    *uint16 `long:"metrics-port"   description:"The port to expose metrics"`

	Orchestrator orchestrator.Config `group:"Orchestrator"`
}

// DefaultConfig returns a config with default hardcoded values.
func DefaultConfig() *Config {
	logDir := filepath.Join(".", "solflood", defaultLogDirname)
	if cacheDir, err := os.UserCacheDir(); err == nil {
		logDir = filepath.Join(cacheDir, "solflood", defaultLogDirname)
	}

	return &Config{
		NodeURL:        defaultNodeURL,
		BlocksPerEpoch: epoch.DefaultBlocksPerEpoch,
		RequestTimeout: client.DefaultTimeout,
		Recipient:      types.ZeroAddress,
		SearchBound:    puzzle.DefaultSearchBound,
		LogDir:         logDir,
		MaxLogFiles:    defaultMaxLogFiles,
		MaxLogFileSize: defaultMaxLogFileSize,
		Orchestrator:   orchestrator.DefaultConfig(),
	}
}

// ParseFlags reads values from command line arguments.
func ParseFlags(preCfg *Config) (*Config, error) {
	return ParseArgs(preCfg, os.Args[1:])
}

// ParseArgs reads values from the given arguments.
func ParseArgs(preCfg *Config, args []string) (*Config, error) {
	if _, err := flags.ParseArgs(preCfg, args); err != nil {
		return nil, err
	}
	return preCfg, nil
}

// ReadConfigFile reads config from an ini file.
// It uses the provided `cfg` as a base config and overrides it with the values
// from the config file.
func ReadConfigFile(cfg *Config) (*Config, error) {
	if cfg.ConfigFile == "" {
		return cfg, nil
	}
	if err := flags.IniParse(cfg.ConfigFile, cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from %v: %w", cfg.ConfigFile, err)
	}

	return cfg, nil
}

// SetupConfig validates the settings, expands paths and creates the log directory.
func SetupConfig(cfg *Config) (*Config, error) {
	if cfg.NodeURL == "" {
		return nil, ErrMissingNodeURL
	}
	if cfg.BlocksPerEpoch == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, epoch.ErrZeroEpochLength)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("%w: request timeout must be positive", ErrInvalidSettings)
	}
	o := cfg.Orchestrator
	if o.SeedSolutions < 0 || o.FloodSolutions < 0 || o.Interval < 0 {
		return nil, fmt.Errorf("%w: negative orchestrator settings", ErrInvalidSettings)
	}

	if cfg.LogDir != "" {
		cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
		if err := os.MkdirAll(cfg.LogDir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create %v: %w", cfg.LogDir, err)
		}
	}

	return cfg, nil
}

// LogFile is the path of the rotated log file, empty if file logging is off.
func (c *Config) LogFile() logging.FileConfig {
	if c.LogDir == "" {
		return logging.FileConfig{}
	}
	return logging.FileConfig{
		Path:       filepath.Join(c.LogDir, defaultLogFilename),
		MaxSize:    c.MaxLogFileSize,
		MaxBackups: c.MaxLogFiles,
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
// This function is taken from https://github.com/btcsuite/btcd
func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		user, err := user.Current()
		if err == nil {
			homeDir = user.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

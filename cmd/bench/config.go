package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/spacemeshos/solflood/puzzle"
)

const (
	defaultTarget   = 1 << 12
	defaultAttempts = 100
	defaultCPU      = false
)

// config defines the configuration options for bench.
type config struct {
	Target      uint64 `short:"t" description:"proof target every solution must reach"`
	Attempts    int    `short:"a" description:"number of proving attempts"`
	SearchBound uint64 `short:"b" description:"nonces tried per attempt"`
	CPU         bool   `short:"c" description:"whether to enable CPU profiling"`
}

// loadConfig initializes and parses the config using command line options.
func loadConfig() (*config, error) {
	cfg := config{
		Target:      defaultTarget,
		Attempts:    defaultAttempts,
		SearchBound: puzzle.DefaultSearchBound,
		CPU:         defaultCPU,
	}

	if _, err := flags.Parse(&cfg); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		} else {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		return nil, err
	}

	return &cfg, nil
}

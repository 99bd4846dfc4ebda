package orchestrator

import (
	"time"

	"go.uber.org/zap/zapcore"
)

func DefaultConfig() Config {
	return Config{
		SeedSolutions:  10,
		FloodSolutions: 100,
		Interval:       5 * time.Second,
	}
}

//nolint:lll
type Config struct {
	SeedSolutions  int           `long:"seed-solutions"  description:"Number of genuine solutions submitted to fill the queue before flooding"`
	FloodSolutions int           `long:"flood-solutions" description:"Number of synthetic solutions submitted concurrently to flood the queue"`
	Interval       time.Duration `long:"interval"        description:"Pause after each steady state submission"`
}

// implement zap.ObjectMarshaler interface.
func (c Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("seed-solutions", c.SeedSolutions)
	enc.AddInt("flood-solutions", c.FloodSolutions)
	enc.AddDuration("interval", c.Interval)
	return nil
}

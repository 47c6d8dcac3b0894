package tasks

import "time"

// Config tunes the task queue. Zero fields take the DefaultConfig value.
type Config struct {
	Workers         int           // concurrent workers
	ReleaseAfter    time.Duration // a claimed job not finished by then goes back to the queue
	CleanupInterval time.Duration // how often finished jobs are purged
}

// DefaultConfig returns one worker, a 15 minute release and an hourly purge.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = def.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	return c
}

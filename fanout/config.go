package fanout

import "time"

type configSource interface {
	GetFanout() Config
}

type Config struct {
	PollIntervalSec int `yaml:"pollIntervalSec"`
	ListLimit       int `yaml:"listLimit"`
}

func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.PollIntervalSec) * time.Second
}

func (c Config) Limit() int {
	if c.ListLimit <= 0 {
		return 50
	}
	return c.ListLimit
}

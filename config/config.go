package config

import (
	"os"

	"github.com/anyproto/any-sync/accountservice"
	"github.com/anyproto/any-sync/app"
	"gopkg.in/yaml.v3"

	"github.com/neothink-dao/platform-bridge/db"
	"github.com/neothink-dao/platform-bridge/fanout"
	"github.com/neothink-dao/platform-bridge/localcache"
	"github.com/neothink-dao/platform-bridge/redisprovider"
)

const CName = "config"

func NewFromFile(path string) (c *Config, err error) {
	c = &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return
}

type Config struct {
	Account accountservice.Config `yaml:"account"`
	Mongo   db.Mongo              `yaml:"mongo"`
	Redis   redisprovider.Config  `yaml:"redis"`
	Cache   localcache.Config     `yaml:"cache"`
	Fanout  fanout.Config         `yaml:"fanout"`
}

func (c *Config) Init(a *app.App) (err error) {
	return nil
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetMongo() db.Mongo {
	return c.Mongo
}

func (c *Config) GetRedis() redisprovider.Config {
	return c.Redis
}

func (c *Config) GetAccount() accountservice.Config {
	return c.Account
}

func (c *Config) GetCache() localcache.Config {
	return c.Cache
}

func (c *Config) GetFanout() fanout.Config {
	return c.Fanout
}

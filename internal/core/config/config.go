package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name     string
	Env      string
	BasePath string `mapstructure:"basePath"`
	HTTP     HTTP
	Admin    AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Cache struct {
	Driver string // redis | memory | none
	TTLSec int    `mapstructure:"ttlSec"`
}

func (c Cache) TTL() time.Duration { return time.Duration(c.TTLSec) * time.Second }

type Breaker struct {
	MaxFailures uint32 `mapstructure:"maxFailures"`
	OpenSec     int    `mapstructure:"openSec"`
}

type Notify struct {
	Driver     string // kafka | redis | log
	Brokers    []string
	Topic      string
	Queue      string
	TimeoutSec int `mapstructure:"timeoutSec"`
	Breaker    Breaker
}

func (n Notify) Timeout() time.Duration { return time.Duration(n.TimeoutSec) * time.Second }

type Limits struct {
	RPS          float64
	Burst        int
	PerIP        bool `mapstructure:"perIP"`
	Concurrency  int64
	MaxBodyBytes int64 `mapstructure:"maxBodyBytes"`
	TimeoutSec   int   `mapstructure:"timeoutSec"`
}

type Config struct {
	App    App
	Log    Log
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Cache  Cache
	Notify Notify
	Limits Limits
}

// Load is LoadE for binaries: any error is fatal.
func Load(path string) *Config {
	c, err := LoadE(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}

// LoadE reads path (or $CONFIG_PATH, or the local default) over the built-in
// defaults. APP_* environment variables win over the file. A missing default
// file is tolerated; a missing explicit file is not.
func LoadE(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := true
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path, explicit = defaultPath, false
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || os.IsNotExist(err)) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "person-registry")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.basePath", "/api/v1/persons")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 10)
	v.SetDefault("app.http.writeTimeoutSec", 15)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 9090)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 14)

	v.SetDefault("db.driver", "memory")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "127.0.0.1:6379")

	v.SetDefault("cache.driver", "none")
	v.SetDefault("cache.ttlSec", 60)

	v.SetDefault("notify.driver", "log")
	v.SetDefault("notify.topic", "person.created")
	v.SetDefault("notify.queue", "person:created")
	v.SetDefault("notify.timeoutSec", 5)
	v.SetDefault("notify.breaker.maxFailures", 5)
	v.SetDefault("notify.breaker.openSec", 30)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.perIP", false)
	v.SetDefault("limits.concurrency", 256)
	v.SetDefault("limits.maxBodyBytes", 1<<20)
	v.SetDefault("limits.timeoutSec", 10)
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql", "memory":
	default:
		return fmt.Errorf("db.driver: unsupported %q", c.DB.Driver)
	}
	switch c.Cache.Driver {
	case "redis", "memory", "none", "":
	default:
		return fmt.Errorf("cache.driver: unsupported %q", c.Cache.Driver)
	}
	switch c.Notify.Driver {
	case "kafka":
		if len(c.Notify.Brokers) == 0 {
			return errors.New("notify.brokers: required for kafka")
		}
	case "redis", "log":
	default:
		return fmt.Errorf("notify.driver: unsupported %q", c.Notify.Driver)
	}
	return nil
}

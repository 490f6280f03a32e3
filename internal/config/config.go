package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/IlianBuh/Blog-service/internal/config/duration"
	worker "github.com/IlianBuh/Blog-service/internal/config/event-worker"
	"github.com/IlianBuh/Blog-service/internal/config/frontend"
	"github.com/IlianBuh/Blog-service/internal/config/grpcobj"
	"github.com/IlianBuh/Blog-service/internal/config/httpobj"
	"github.com/IlianBuh/Blog-service/internal/config/kafka"
	"github.com/IlianBuh/Blog-service/internal/config/storage"
)

type Config struct {
	Env         string          `json:"env"`
	Storage     storage.Config  `json:"storage"`
	GRPC        grpcobj.Config  `json:"grpc"`
	HTTP        httpobj.Config  `json:"http"`
	Kafka       kafka.Config    `json:"kafka"`
	EventWorker worker.Config   `json:"event-worker"`
	Frontend    frontend.Config `json:"frontend"`
}

const (
	defaultConfigPath = "./config/config.json"

	defaultTimeout     = 5 * time.Second
	defaultPageSize    = 100
	defaultInterval    = 5 * time.Second
	defaultEventsTopic = "post-events"
)

// New creates new object of applications' configuration
func New() *Config {
	path := fetchConfigPath()

	cfg := MustLoad(path)

	return cfg
}

// MustLoad is wrapper of load function to panic if error occurred
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic("failed to load config file: " + err.Error())
	}

	return cfg
}

// Load loads config from json file by path. Return error if occurred
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	jsonContent, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg, err := Parse(jsonContent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes json configuration and fills omitted values with defaults
func Parse(data []byte) (*Config, error) {
	cfg := new(Config)

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	setDefaults(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = storage.DriverPostgres
	}
	if cfg.GRPC.Timeout.Duration == 0 {
		cfg.GRPC.Timeout = duration.Duration{Duration: defaultTimeout}
	}
	if cfg.HTTP.Timeout.Duration == 0 {
		cfg.HTTP.Timeout = duration.Duration{Duration: defaultTimeout}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = defaultEventsTopic
	}
	if cfg.EventWorker.PageSize <= 0 {
		cfg.EventWorker.PageSize = defaultPageSize
	}
	if cfg.EventWorker.Interval.Duration == 0 {
		cfg.EventWorker.Interval = duration.Duration{Duration: defaultInterval}
	}
	if cfg.EventWorker.Timeout.Duration == 0 {
		cfg.EventWorker.Timeout = duration.Duration{Duration: defaultTimeout}
	}
	if cfg.Frontend.Timeout.Duration == 0 {
		cfg.Frontend.Timeout = duration.Duration{Duration: defaultTimeout}
	}
	if cfg.Frontend.DateLayout == "" {
		cfg.Frontend.DateLayout = frontend.DefaultDateLayout
	}
}

// fetchConfigPath fetches config path from either flag 'config' or environment variable.
// If both are empty default value will be returned
// flag > env > default
func fetchConfigPath() string {
	res := ""

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res != "" {
		return res
	}

	res = os.Getenv("CONFIG_PATH")
	if res != "" {
		return res
	}

	return defaultConfigPath
}

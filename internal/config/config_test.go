package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IlianBuh/Blog-service/internal/config/frontend"
	"github.com/IlianBuh/Blog-service/internal/config/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Full(t *testing.T) {
	data := []byte(`{
		"env": "dev",
		"storage": {"driver": "memory", "dbname": "blog", "port": 5432},
		"grpc": {"port": 20203, "timeout": "3s"},
		"http": {"port": 8080, "timeout": "2s", "static-dir": "./web"},
		"kafka": {"addrs": ["k1:9092", "k2:9092"], "timeout": 5, "retries": 3, "topic": "events"},
		"event-worker": {"page-size": 10, "interval": "1m", "timeout": "15s"},
		"frontend": {"api-base-url": "http://api", "timeout": "7s", "date-layout": "2006-01-02"}
	}`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, storage.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 3*time.Second, cfg.GRPC.Timeout.Duration)
	assert.Equal(t, 2*time.Second, cfg.HTTP.Timeout.Duration)
	assert.Equal(t, "./web", cfg.HTTP.StaticDir)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Addrs)
	assert.Equal(t, "events", cfg.Kafka.Topic)
	assert.Equal(t, 10, cfg.EventWorker.PageSize)
	assert.Equal(t, time.Minute, cfg.EventWorker.Interval.Duration)
	assert.Equal(t, "http://api", cfg.Frontend.APIBaseURL)
	assert.Equal(t, 7*time.Second, cfg.Frontend.Timeout.Duration)
	assert.Equal(t, "2006-01-02", cfg.Frontend.DateLayout)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"env": "local"}`))
	require.NoError(t, err)

	assert.Equal(t, storage.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, defaultTimeout, cfg.GRPC.Timeout.Duration)
	assert.Equal(t, defaultTimeout, cfg.HTTP.Timeout.Duration)
	assert.Equal(t, defaultEventsTopic, cfg.Kafka.Topic)
	assert.Equal(t, defaultPageSize, cfg.EventWorker.PageSize)
	assert.Equal(t, defaultInterval, cfg.EventWorker.Interval.Duration)
	assert.Equal(t, frontend.DefaultDateLayout, cfg.Frontend.DateLayout)
}

func TestParse_BadDuration(t *testing.T) {
	_, err := Parse([]byte(`{"grpc": {"timeout": "soon"}}`))
	require.Error(t, err)

	_, err = Parse([]byte(`{"grpc": {"timeout": 5}}`))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"env": "prod"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.json"))
	})
}

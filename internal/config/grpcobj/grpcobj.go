package grpcobj

import (
	"github.com/IlianBuh/Blog-service/internal/config/duration"
)

// Config object representation of json data
type Config struct {
	Port    int               `json:"port"`
	Timeout duration.Duration `json:"timeout"`
}

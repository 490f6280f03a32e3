package frontend

import (
	"github.com/IlianBuh/Blog-service/internal/config/duration"
)

const (
	// DefaultDateLayout matches the en-US short date, e.g. 11/14/2023
	DefaultDateLayout = "1/2/2006"
)

// Config is the part of configuration served to the browser at /config.json
type Config struct {
	APIBaseURL string            `json:"api-base-url"`
	Timeout    duration.Duration `json:"timeout"`
	DateLayout string            `json:"date-layout"`
}

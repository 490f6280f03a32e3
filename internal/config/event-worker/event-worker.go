package worker

import (
	"github.com/IlianBuh/Blog-service/internal/config/duration"
)

type Config struct {
	PageSize int               `json:"page-size"`
	Interval duration.Duration `json:"interval"`
	Timeout  duration.Duration `json:"timeout"`
}

package sl

import (
	"log/slog"
)

// Err wraps error into slog attribute with key "error"
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

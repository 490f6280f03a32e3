package models

import (
	"time"
)

// Post is a published blog entry. Body is serialized editor markup and is
// stored and displayed verbatim. Timestamp is nanoseconds since epoch and is
// assigned by the service on creation.
type Post struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Author    string `json:"author"`
	Timestamp int64  `json:"timestamp"`
}

// CreatedAt returns the creation moment with millisecond precision.
func (p Post) CreatedAt() time.Time {
	return time.UnixMilli(p.Timestamp / int64(time.Millisecond))
}

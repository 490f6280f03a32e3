package events

import (
	"encoding/json"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	e "github.com/IlianBuh/Blog-service/internal/lib/errors"
	"github.com/google/uuid"
)

type EventPayload struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Timestamp int64  `json:"timestamp"`
}

// CollectEventPayload builds the json payload of the "created" event. Body is
// not included, consumers fetch the post if they need it.
func CollectEventPayload(post models.Post) (string, error) {
	const op = "event.CollectEventPayload"

	payload, err := json.Marshal(EventPayload{post.Title, post.Author, post.Timestamp})
	if err != nil {
		return "", e.Fail(op, err)
	}

	return string(payload), nil
}

func CollectEventId() string {
	return uuid.NewString()
}

package mapper

import (
	"testing"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestEventsToIds(t *testing.T) {
	events := []models.Event{
		{Id: "a", Type: models.EventTypeCreated},
		{Id: "b", Type: models.EventTypeCreated},
	}

	assert.Equal(t, []string{"a", "b"}, EventsToIds(events))
	assert.Empty(t, EventsToIds(nil))
}

package memory

import (
	"context"
	"testing"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/lib/mapper"
	"github.com/IlianBuh/Blog-service/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_PostsNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Save(ctx, models.Post{Title: "first", Timestamp: 10})
	require.NoError(t, err)
	_, err = s.Save(ctx, models.Post{Title: "second", Timestamp: 20})
	require.NoError(t, err)
	_, err = s.Save(ctx, models.Post{Title: "third", Timestamp: 20})
	require.NoError(t, err)

	posts, err := s.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "second", posts[1].Title)
	assert.Equal(t, "first", posts[2].Title)
}

func TestStorage_PostsEmpty(t *testing.T) {
	posts, err := New().Posts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestStorage_SaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Save(ctx, models.Post{Title: "x"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorage_Outbox(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, models.Post{Title: title})
		require.NoError(t, err)
	}

	page, err := s.EventPage(ctx, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	for _, e := range page {
		assert.Equal(t, models.EventTypeCreated, e.Type)
	}

	ids := mapper.EventsToIds(page)
	require.NoError(t, s.Reserve(ctx, ids))
	require.ErrorIs(t, s.Reserve(ctx, ids), storage.ErrNoEvents)

	rest, err := s.EventPage(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Contains(t, rest[0].Payload, `"title":"c"`)

	require.NoError(t, s.DeleteEvent(ctx, ids))
	assert.Len(t, s.events, 1)
}

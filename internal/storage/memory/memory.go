package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/storage"
	"github.com/IlianBuh/Blog-service/internal/storage/events"
)

type record struct {
	id   int
	post models.Post
}

type outboxEvent struct {
	event    models.Event
	reserved bool
}

// Storage keeps posts and outbox events in process memory. It mirrors the
// postgres storage and is used for the "memory" driver and in tests.
type Storage struct {
	mu     sync.RWMutex
	lastId int
	posts  []record
	events []outboxEvent
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) Save(ctx context.Context, post models.Post) (int, error) {
	const op = "memory.Save"

	if err := ctx.Err(); err != nil {
		return 0, fail(op, err)
	}

	payload, err := events.CollectEventPayload(post)
	if err != nil {
		return 0, fail(op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastId++
	s.posts = append(s.posts, record{id: s.lastId, post: post})
	s.events = append(s.events, outboxEvent{
		event: models.Event{
			Id:      events.CollectEventId(),
			Type:    models.EventTypeCreated,
			Payload: payload,
		},
	})

	return s.lastId, nil
}

// Posts returns all posts, newest first
func (s *Storage) Posts(ctx context.Context) ([]models.Post, error) {
	const op = "memory.Posts"

	if err := ctx.Err(); err != nil {
		return nil, fail(op, err)
	}

	s.mu.RLock()
	records := make([]record, len(s.posts))
	copy(records, s.posts)
	s.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].post.Timestamp != records[j].post.Timestamp {
			return records[i].post.Timestamp > records[j].post.Timestamp
		}
		return records[i].id > records[j].id
	})

	res := make([]models.Post, len(records))
	for i, r := range records {
		res[i] = r.post
	}

	return res, nil
}

func (s *Storage) EventPage(ctx context.Context, limit int) ([]models.Event, error) {
	const op = "memory.EventPage"

	if err := ctx.Err(); err != nil {
		return nil, fail(op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	page := make([]models.Event, 0, limit)
	for _, e := range s.events {
		if len(page) == limit {
			break
		}
		if !e.reserved {
			page = append(page, e.event)
		}
	}

	return page, nil
}

func (s *Storage) Reserve(ctx context.Context, ids []string) error {
	const op = "memory.Reserve"

	if err := ctx.Err(); err != nil {
		return fail(op, err)
	}

	set := toSet(ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	reserved := 0
	for i := range s.events {
		if _, ok := set[s.events[i].event.Id]; ok && !s.events[i].reserved {
			s.events[i].reserved = true
			reserved++
		}
	}
	if reserved == 0 {
		return fail(op, storage.ErrNoEvents)
	}

	return nil
}

func (s *Storage) DeleteEvent(ctx context.Context, ids []string) error {
	const op = "memory.DeleteEvent"

	if err := ctx.Err(); err != nil {
		return fail(op, err)
	}

	set := toSet(ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, e := range s.events {
		if _, ok := set[e.event.Id]; !ok {
			kept = append(kept, e)
		}
	}
	s.events = kept

	return nil
}

func (s *Storage) Stop() error {
	return nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func fail(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

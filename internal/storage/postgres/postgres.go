package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/storage"
	"github.com/IlianBuh/Blog-service/internal/storage/events"
	"github.com/lib/pq"
)

const (
	statusNew      = "new"
	statusReserved = "reserved"
)

type Storage struct {
	db *sql.DB
}

func New(
	user string,
	password string,
	host string,
	port int,
	dbname string,
	timeout int,
) (*Storage, error) {
	const op = "postgres.New"
	conn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=%d&sslmode=disable",
		user, password, host, port, dbname, timeout,
	)

	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, fail(op, err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fail(op, err)
	}

	return &Storage{db: db}, nil
}

// Save saves new post together with its "created" event in one transaction.
// Returns id of the new post
func (s *Storage) Save(ctx context.Context, post models.Post) (int, error) {
	const (
		op            = "postgres.Save"
		insertNewPost = `
			INSERT INTO posts(title, body, author, created_at)
			VALUES($1, $2, $3, $4)
			RETURNING post_id`
		insertEvent = `
			INSERT INTO events(event_id, event_type, payload, status)
			VALUES($1, $2, $3, $4)`
	)

	if err := ctx.Err(); err != nil {
		return 0, fail(op, err)
	}

	payload, err := events.CollectEventPayload(post)
	if err != nil {
		return 0, fail(op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fail(op, err)
	}
	defer tx.Rollback()

	var postId int
	row := tx.QueryRowContext(ctx, insertNewPost, post.Title, post.Body, post.Author, post.Timestamp)
	if err = row.Scan(&postId); err != nil {
		return 0, fail(op, err)
	}

	_, err = tx.ExecContext(
		ctx, insertEvent,
		events.CollectEventId(), models.EventTypeCreated, payload, statusNew,
	)
	if err != nil {
		return 0, fail(op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fail(op, err)
	}

	return postId, nil
}

// Posts returns all posts, newest first
func (s *Storage) Posts(ctx context.Context) ([]models.Post, error) {
	const (
		op          = "postgres.Posts"
		selectPosts = `
			SELECT title, body, author, created_at
			FROM posts
			ORDER BY created_at DESC, post_id DESC`
	)

	rows, err := s.db.QueryContext(ctx, selectPosts)
	if err != nil {
		return nil, fail(op, err)
	}
	defer rows.Close()

	res := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err = rows.Scan(&post.Title, &post.Body, &post.Author, &post.Timestamp); err != nil {
			return nil, fail(op, err)
		}
		res = append(res, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fail(op, err)
	}

	return res, nil
}

// EventPage returns up to limit events which are not reserved yet, oldest first
func (s *Storage) EventPage(ctx context.Context, limit int) ([]models.Event, error) {
	const (
		op          = "postgres.EventPage"
		selectEvent = `
			SELECT event_id, event_type, payload
			FROM events
			WHERE status=$1
			ORDER BY created_at
			LIMIT $2`
	)

	rows, err := s.db.QueryContext(ctx, selectEvent, statusNew, limit)
	if err != nil {
		return nil, fail(op, err)
	}
	defer rows.Close()

	page := make([]models.Event, 0, limit)
	for rows.Next() {
		var event models.Event
		if err = rows.Scan(&event.Id, &event.Type, &event.Payload); err != nil {
			return nil, fail(op, err)
		}
		page = append(page, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fail(op, err)
	}

	return page, nil
}

// Reserve marks events as taken for sending. Returns [storage.ErrNoEvents]
// if none of ids was reserved
func (s *Storage) Reserve(ctx context.Context, ids []string) error {
	const (
		op      = "postgres.Reserve"
		reserve = `
			UPDATE events SET status=$1
			WHERE status=$2 AND event_id = ANY($3)`
	)

	if len(ids) == 0 {
		return fail(op, storage.ErrNoEvents)
	}

	res, err := s.db.ExecContext(ctx, reserve, statusReserved, statusNew, pq.Array(ids))
	if err != nil {
		return fail(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fail(op, err)
	}
	if n == 0 {
		return fail(op, storage.ErrNoEvents)
	}

	return nil
}

// DeleteEvent deletes sent events
func (s *Storage) DeleteEvent(ctx context.Context, ids []string) error {
	const (
		op          = "postgres.DeleteEvent"
		deleteEvent = `DELETE FROM events WHERE event_id = ANY($1)`
	)

	_, err := s.db.ExecContext(ctx, deleteEvent, pq.Array(ids))
	if err != nil {
		return fail(op, err)
	}

	return nil
}

// Stop closes database connection
func (s *Storage) Stop() error {
	const op = "postgres.Stop"

	if err := s.db.Close(); err != nil {
		return fail(op, fmt.Errorf("%w: %w", storage.ErrClose, err))
	}

	return nil
}

// fail assembles a new error with define structure
// Error message has pattern 'op':'err'
func fail(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

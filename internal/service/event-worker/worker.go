package eventworker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Blog-service/internal/lib/mapper"
	"github.com/IlianBuh/Blog-service/internal/storage"
)

type PageProvider interface {
	EventPage(ctx context.Context, limit int) ([]models.Event, error)
}

type Deleter interface {
	DeleteEvent(ctx context.Context, ids []string) error
}

type Reserver interface {
	Reserve(ctx context.Context, ids []string) error
}

type Sender interface {
	Send(ctx context.Context, page []models.Event) error
}

// Worker periodically drains the outbox: it takes a page of new events,
// reserves them, sends them and deletes them once sent
type Worker struct {
	log          *slog.Logger
	pageSize     int
	pageProvider PageProvider
	deleter      Deleter
	reserver     Reserver
	sender       Sender
	interval     time.Duration
	timeout      time.Duration
	stop         chan struct{}
	done         chan struct{}
}

func New(
	log *slog.Logger,
	pageSize int,
	pageProvider PageProvider,
	reserver Reserver,
	deleter Deleter,
	sender Sender,
	interval time.Duration,
	timeout time.Duration,
) *Worker {
	return &Worker{
		log:          log,
		pageSize:     pageSize,
		pageProvider: pageProvider,
		deleter:      deleter,
		reserver:     reserver,
		sender:       sender,
		interval:     interval,
		timeout:      timeout,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start runs the worker loop in a separate goroutine. The loop ends when ctx
// is done or Stop is called
func (w *Worker) Start(ctx context.Context) {
	const op = "eventworker.Start"
	log := w.log.With(slog.String("op", op))

	ticker := time.NewTicker(w.interval)

	go func() {
		defer close(w.done)
		defer ticker.Stop()

		for {
			select {
			case <-w.stop:
				log.Info("stop signal is received")
				return
			case <-ctx.Done():
				log.Info("context is done", sl.Err(ctx.Err()))
				return
			case <-ticker.C:
			}

			err := w.handleEvents(ctx)
			if err != nil {
				log.Error("failed to handle events", sl.Err(err))
			}
		}
	}()
}

// Stop signals the loop to finish and waits until it does. Must be called once
// after Start
func (w *Worker) Stop() {
	const op = "eventworker.Stop"
	w.log.Info("starting to stop worker", slog.String("op", op))

	close(w.stop)
	<-w.done

	w.log.Info("worker is stopped", slog.String("op", op))
}

func (w *Worker) handleEvents(ctx context.Context) error {
	const op = "eventworker.handleEvents"
	log := w.log.With(slog.String("op", op))
	log.Debug("starting to handle events")

	ctx, cncl := context.WithTimeout(ctx, w.timeout)
	defer cncl()

	page, err := w.pageProvider.EventPage(ctx, w.pageSize)
	if err != nil {
		log.Error("failed to get event page", sl.Err(err))
		return fail(op, err)
	}
	if len(page) == 0 {
		log.Debug("no new events")
		return nil
	}

	ids := mapper.EventsToIds(page)

	err = w.reserver.Reserve(ctx, ids)
	if err != nil {
		if errors.Is(err, storage.ErrNoEvents) {
			log.Info("no new events")
			return nil
		}

		log.Error("failed to reserve events", sl.Err(err))
		return fail(op, err)
	}

	err = w.sender.Send(ctx, page)
	if err != nil {
		log.Error("failed to send events", sl.Err(err))
		return fail(op, err)
	}

	err = w.deleter.DeleteEvent(ctx, ids)
	if err != nil {
		log.Error("failed to delete events", sl.Err(err))
		return fail(op, err)
	}

	log.Info("events are handled", slog.Int("count", len(page)))
	return nil
}

func fail(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

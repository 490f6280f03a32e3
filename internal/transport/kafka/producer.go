package kafka

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/IBM/sarama"
	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
)

const (
	initialRetryTime = 1
)

type Producer struct {
	log      *slog.Logger
	producer sarama.AsyncProducer
	topic    string
}

// NewProducer creates new kafka producer. If brokers are unreachable it
// retries with growing pauses, at most retries times
func NewProducer(
	ctx context.Context,
	log *slog.Logger,
	addrs []string,
	topic string,
	maxTimeout int,
	retries int,
) (*Producer, error) {
	const op = "kafka.NewProducer"
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Errors = false
	cfg.Producer.Retry.Max = retries
	cfg.Producer.Timeout = time.Duration(maxTimeout) * time.Second

	p, err := sarama.NewAsyncProducer(addrs, cfg)
	if err != nil {
		log.Warn("failed to create producer, retrying", slog.String("op", op), sl.Err(err))
		return tryToCreateProducer(ctx, log, addrs, topic, cfg, maxTimeout, retries)
	}

	return newProducer(log, p, topic), nil
}

func newProducer(log *slog.Logger, p sarama.AsyncProducer, topic string) *Producer {
	return &Producer{
		log:      log,
		producer: p,
		topic:    topic,
	}
}

// tryToCreateProducer tries to make producer instance
func tryToCreateProducer(
	ctx context.Context,
	log *slog.Logger,
	addrs []string,
	topic string,
	cfg *sarama.Config,
	maxTimeout, retries int,
) (*Producer, error) {
	const op = "kafka.tryToCreateProducer"
	var (
		err error
		p   sarama.AsyncProducer
	)
	timeout := initialRetryTime

	for retries > 0 {
		retries--

		select {
		case <-ctx.Done():
			return nil, fail(op, ctx.Err())
		case <-time.After(time.Duration(timeout) * time.Second):
		}

		p, err = sarama.NewAsyncProducer(addrs, cfg)
		if err == nil {
			return newProducer(log, p, topic), nil
		}

		timeout *= 2
		if timeout > maxTimeout {
			timeout = maxTimeout
		}
	}

	return nil, fail(op, err)
}

// Send sends page of events to kafka. Event id is used as message key
func (p *Producer) Send(ctx context.Context, page []models.Event) error {
	const op = "producer.Send"
	log := p.log.With(slog.String("op", op))

	for _, event := range page {
		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.Id),
			Value: sarama.StringEncoder(event.Payload),
			Headers: []sarama.RecordHeader{
				{Key: []byte("type"), Value: []byte(event.Type)},
			},
			Timestamp: time.Now(),
		}

		select {
		case p.producer.Input() <- msg:
		case <-ctx.Done():
			log.Info("failed to send all messages", sl.Err(ctx.Err()))
			return fail(op, ctx.Err())
		}
	}

	log.Info("all events was sent successfully", slog.Int("count", len(page)))
	return nil
}

// Stop stops kafka producer, but the first trying to send all messages
func (p *Producer) Stop() {
	const op = "producer.Stop"
	p.log.Info("starting to stop producer", slog.String("op", op))
	err := p.producer.Close()
	if err != nil {
		p.log.Error(
			"error during closing",
			slog.String("op", op),
			sl.Err(err),
		)
	}
}

func fail(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

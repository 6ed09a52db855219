package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/infra"
	"github.com/memoria-viva/memorial-service/infra/produce"
	"github.com/memoria-viva/memorial-service/repository"
	"github.com/memoria-viva/memorial-service/utils"
	amqp "github.com/rabbitmq/amqp091-go"
)

// TributeConsumer keeps the per-memorial tribute counters fresh and drops the
// stale cached page view whenever a visitor submits a tribute.
type TributeConsumer struct {
	channel    *amqp.Channel
	infra      *infra.Infra
	repository *repository.Repository
}

func NewTributeConsumer(channel *amqp.Channel, infra *infra.Infra, repo *repository.Repository) *TributeConsumer {
	return &TributeConsumer{
		channel:    channel,
		infra:      infra,
		repository: repo,
	}
}

func (c *TributeConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.TributeCreatedQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register tribute consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Tribute Consumer] Started listening on queue: %s", produce.TributeCreatedQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Tribute Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Tribute Consumer] Channel closed")
					return
				}
				c.handleTributeCreated(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *TributeConsumer) handleTributeCreated(ctx context.Context, msg amqp.Delivery) {
	var payload produce.TributeCreatedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Tribute Consumer] Failed to unmarshal message: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	memorialID, err := uuid.Parse(payload.MemorialID)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Tribute Consumer] Invalid memorial ID: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	maxRetries := 3
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = c.refreshTributeCount(ctx, memorialID, payload.MemorialSlug)
		if err == nil {
			c.infra.Logger.InfoWithContextf(ctx, "[Tribute Consumer] Refreshed tribute count for memorial %q", payload.MemorialSlug)
			_ = msg.Ack(false)
			return
		}

		c.infra.Logger.ErrorWithContextf(ctx, err, "[Tribute Consumer] Attempt %d/%d failed: %v", attempt, maxRetries, err)

		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
		}
	}

	// After max retries, reject and requeue
	c.infra.Logger.ErrorWithContextf(ctx, err, "[Tribute Consumer] Failed after %d attempts, requeueing message", maxRetries)
	_ = msg.Nack(false, true)
}

func (c *TributeConsumer) refreshTributeCount(ctx context.Context, memorialID uuid.UUID, slug string) error {
	count, err := c.repository.TributeRepo.CountByMemorialID(memorialID)
	if err != nil {
		return fmt.Errorf("failed to count tributes for memorial %s: %w", memorialID, err)
	}

	if err := c.infra.Redis.Set(ctx, utils.TributeCountCacheKey(slug), count, 0); err != nil {
		return fmt.Errorf("failed to store tribute count for %q: %w", slug, err)
	}

	// Backstop invalidation in case the HTTP side failed to drop the view
	if err := c.infra.Redis.Delete(ctx, utils.MemorialViewCacheKey(slug)); err != nil {
		return fmt.Errorf("failed to invalidate cached view for %q: %w", slug, err)
	}

	return nil
}

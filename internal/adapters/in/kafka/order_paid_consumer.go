// Package kafka consumes payment events and starts fulfillment of paid orders.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/IBM/sarama"
)

const restartDelay = time.Second

// OrderPaidEvent is published by the commerce system once payment is captured.
type OrderPaidEvent struct {
	OrderID string          `json:"orderId"`
	StoreID string          `json:"storeId"`
	Items   []OrderPaidItem `json:"items,omitempty"`
}

type OrderPaidItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type CreateFulfillmentHandler interface {
	Handle(ctx context.Context, command commands.CreateFulfillmentJobCommand) (commands.CreateFulfillmentJobResult, error)
}

// OrderPaidHandler implements sarama.ConsumerGroupHandler.
//
// A message is marked once it is handled or rejected for good: malformed payloads,
// unknown orders, fraud holds and orders without products. Any other error ends the
// session without marking, so the message is consumed again. Job creation is
// idempotent per order, which makes redelivery harmless.
type OrderPaidHandler struct {
	handler CreateFulfillmentHandler
	logger  *slog.Logger
}

func NewOrderPaidHandler(handler CreateFulfillmentHandler, logger *slog.Logger) *OrderPaidHandler {
	return &OrderPaidHandler{
		handler: handler,
		logger:  logger.With("component", "order_paid_consumer"),
	}
}

func (h *OrderPaidHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *OrderPaidHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *OrderPaidHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.handle(ctx, msg); err != nil {
				return err
			}
			session.MarkMessage(msg, "")
		case <-ctx.Done():
			return nil
		}
	}
}

func (h *OrderPaidHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	log := h.logger.With("topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)

	cmd, err := toCommand(msg.Value)
	if err != nil {
		log.WarnContext(ctx, "dropping malformed order paid event", "error", err)
		return nil
	}

	result, err := h.handler.Handle(ctx, cmd)
	switch {
	case err == nil:
		log.InfoContext(ctx, "order paid event handled",
			"order_id", cmd.OrderID().String(), "jobs", len(result.JobIDs), "created", result.Created)
		return nil
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrFraudBlocked),
		errors.Is(err, commands.ErrNoValidProducts):
		log.WarnContext(ctx, "order paid event rejected", "order_id", cmd.OrderID().String(), "error", err)
		return nil
	default:
		log.ErrorContext(ctx, "order paid event failed", "order_id", cmd.OrderID().String(), "error", err)
		return fmt.Errorf("create fulfillment for order %s: %w", cmd.OrderID(), err)
	}
}

func toCommand(payload []byte) (commands.CreateFulfillmentJobCommand, error) {
	var event OrderPaidEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return commands.CreateFulfillmentJobCommand{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return commands.CreateFulfillmentJobCommand{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	storeID, err := kernel.UUIDFromString(event.StoreID)
	if err != nil {
		return commands.CreateFulfillmentJobCommand{}, errs.NewValueIsInvalidErrorWithCause("storeId", err)
	}

	items := make([]order.Item, 0, len(event.Items))
	for _, raw := range event.Items {
		productID, err := kernel.UUIDFromString(raw.ProductID)
		if err != nil {
			return commands.CreateFulfillmentJobCommand{}, errs.NewValueIsInvalidErrorWithCause("productId", err)
		}
		item, err := order.NewItem(productID, raw.Name, raw.Quantity, raw.UnitPriceCents)
		if err != nil {
			return commands.CreateFulfillmentJobCommand{}, err
		}
		items = append(items, item)
	}

	return commands.NewCreateFulfillmentJobCommand(orderID, storeID, items)
}

// Consumer runs a consumer group on the order paid topic.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler sarama.ConsumerGroupHandler
	logger  *slog.Logger
}

func NewConsumer(brokers []string, groupID, topic string, handler sarama.ConsumerGroupHandler, logger *slog.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: handler,
		logger:  logger.With("component", "kafka_consumer", "topic", topic, "group", groupID),
	}, nil
}

// Run consumes until ctx is cancelled. A failed session is restarted after a short
// pause.
func (c *Consumer) Run(ctx context.Context) {
	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("Kafka consumer error", "error", err)
		}
	}()

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			c.logger.Error("Kafka consumer session ended", "error", err)
		}
		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(restartDelay):
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

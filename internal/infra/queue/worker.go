package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier delivers an assignment notice to the manager.
type Notifier interface {
	SendLeadAssigned(ctx context.Context, payload LeadAssignedPayload) error
}

// Consumer is the subset of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel  Consumer
	Notifier Notifier
	Logger   *slog.Logger
}

func NewWorker(ch Consumer, notifier Notifier, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Logger:   logger,
	}
}

// Start consumes until ctx is cancelled or the broker closes the delivery channel.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	w.Logger.Info("lead assignment worker waiting", "queue", queueName)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload LeadAssignedPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.Logger.Error("malformed lead assignment message", "error", err)
		// no requeue, it goes to the DLQ
		d.Nack(false, false)
		return
	}

	if payload.ManagerEmail == "" {
		w.Logger.Warn("manager has no e-mail, skipping notice", "lead_id", payload.LeadID, "manager_id", payload.ManagerID)
		d.Ack(false)
		return
	}

	if err := w.Notifier.SendLeadAssigned(ctx, payload); err != nil {
		w.Logger.Error("assignment notice failed", "lead_id", payload.LeadID, "manager_id", payload.ManagerID, "error", err)
		d.Nack(false, false)
		return
	}

	w.Logger.Info("assignment notice sent", "lead_id", payload.LeadID, "manager_id", payload.ManagerID)
	d.Ack(false)
}

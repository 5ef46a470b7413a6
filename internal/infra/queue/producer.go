package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadAssignedPayload is published whenever a lead lands on a manager.
type LeadAssignedPayload struct {
	LeadID       string    `json:"lead_id"`
	Source       string    `json:"source"`
	StageID      string    `json:"stage_id"`
	ManagerID    string    `json:"manager_id"`
	ManagerName  string    `json:"manager_name"`
	ManagerEmail string    `json:"manager_email"`
	Reason       string    `json:"reason"` // auto, explicit, manual
	LeadName     string    `json:"lead_name,omitempty"`
	LeadPhone    string    `json:"lead_phone,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Channel is the subset of *amqp.Channel the producer needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Channel
}

func NewProducer(ch Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadAssigned(ctx context.Context, payload LeadAssignedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode lead assignment: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.LeadID,
			Timestamp:    payload.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}

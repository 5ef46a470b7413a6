package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func samplePayload() LeadAssignedPayload {
	return LeadAssignedPayload{
		LeadID:       "lead-1",
		Source:       "primary",
		StageID:      "new",
		ManagerID:    "A",
		ManagerName:  "Anna",
		ManagerEmail: "anna@example.com",
		Reason:       "auto",
		LeadName:     "Ivan",
		OccurredAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// TestPublishLeadAssigned - message lands on the leads exchange as persistent JSON
func TestPublishLeadAssigned(t *testing.T) {
	ch := &fakeChannel{}
	producer := NewProducer(ch)

	require.NoError(t, producer.PublishLeadAssigned(context.Background(), samplePayload()))

	assert.Equal(t, ExchangeName, ch.exchange)
	assert.Equal(t, RoutingKey, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "lead-1", ch.msg.MessageId)

	var data map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &data))
	for _, field := range []string{"lead_id", "source", "stage_id", "manager_id", "manager_email", "reason", "occurred_at"} {
		assert.Contains(t, data, field)
	}
	assert.NotContains(t, data, "lead_phone")
}

func TestPublishLeadAssignedWrapsBrokerError(t *testing.T) {
	boom := errors.New("channel closed")
	producer := NewProducer(&fakeChannel{err: boom})

	err := producer.PublishLeadAssigned(context.Background(), samplePayload())
	assert.ErrorIs(t, err, boom)
}

type fakeAcknowledger struct {
	mu       sync.Mutex
	acks     int
	nacks    int
	requeued bool
}

func (a *fakeAcknowledger) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks++
	return nil
}

func (a *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks++
	a.requeued = a.requeued || requeue
	return nil
}

func (a *fakeAcknowledger) Reject(uint64, bool) error { return nil }

func (a *fakeAcknowledger) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acks, a.nacks
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendLeadAssigned(ctx context.Context, payload LeadAssignedPayload) error {
	return m.Called(ctx, payload).Error(0)
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
	err        error
}

func (c *fakeConsumer) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return c.deliveries, c.err
}

func delivery(t *testing.T, ack amqp.Acknowledger, payload any) amqp.Delivery {
	t.Helper()
	var body []byte
	switch p := payload.(type) {
	case []byte:
		body = p
	default:
		var err error
		body, err = json.Marshal(p)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: ack, Body: body}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorkerHandle(t *testing.T) {
	t.Run("delivered notice is acked", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("SendLeadAssigned", mock.Anything, mock.MatchedBy(func(p LeadAssignedPayload) bool {
			return p.LeadID == "lead-1"
		})).Return(nil).Once()
		ack := &fakeAcknowledger{}

		NewWorker(nil, notifier, quietLogger()).handle(context.Background(), delivery(t, ack, samplePayload()))

		acks, nacks := ack.counts()
		assert.Equal(t, 1, acks)
		assert.Equal(t, 0, nacks)
		notifier.AssertExpectations(t)
	})

	t.Run("malformed body goes to the dead letter queue", func(t *testing.T) {
		notifier := new(MockNotifier)
		ack := &fakeAcknowledger{}

		NewWorker(nil, notifier, quietLogger()).handle(context.Background(), delivery(t, ack, []byte("{broken")))

		_, nacks := ack.counts()
		assert.Equal(t, 1, nacks)
		assert.False(t, ack.requeued)
		notifier.AssertNotCalled(t, "SendLeadAssigned", mock.Anything, mock.Anything)
	})

	t.Run("manager without email is skipped", func(t *testing.T) {
		notifier := new(MockNotifier)
		ack := &fakeAcknowledger{}
		p := samplePayload()
		p.ManagerEmail = ""

		NewWorker(nil, notifier, quietLogger()).handle(context.Background(), delivery(t, ack, p))

		acks, _ := ack.counts()
		assert.Equal(t, 1, acks)
		notifier.AssertNotCalled(t, "SendLeadAssigned", mock.Anything, mock.Anything)
	})

	t.Run("notifier failure is nacked without requeue", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("SendLeadAssigned", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
		ack := &fakeAcknowledger{}

		NewWorker(nil, notifier, quietLogger()).handle(context.Background(), delivery(t, ack, samplePayload()))

		_, nacks := ack.counts()
		assert.Equal(t, 1, nacks)
		assert.False(t, ack.requeued)
	})
}

func TestWorkerStartStopsOnCancel(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("SendLeadAssigned", mock.Anything, mock.Anything).Return(nil)
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery, 1)}
	ack := &fakeAcknowledger{}
	consumer.deliveries <- delivery(t, ack, samplePayload())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewWorker(consumer, notifier, quietLogger()).Start(ctx, QueueName)
	}()

	assert.Eventually(t, func() bool {
		acks, _ := ack.counts()
		return acks == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerStartReportsClosedChannel(t *testing.T) {
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery)}
	close(consumer.deliveries)

	err := NewWorker(consumer, new(MockNotifier), quietLogger()).Start(context.Background(), QueueName)
	assert.EqualError(t, err, "delivery channel closed")
}

func TestWorkerStartConsumeFailure(t *testing.T) {
	boom := errors.New("access refused")
	err := NewWorker(&fakeConsumer{err: boom}, nil, quietLogger()).Start(context.Background(), QueueName)
	assert.ErrorIs(t, err, boom)
}

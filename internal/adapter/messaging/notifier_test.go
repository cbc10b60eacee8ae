package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/domain"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	calls    int
	err      error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.calls++
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

func TestNotifier_TransactionCompleted(t *testing.T) {
	channel := &fakeChannel{}
	notifier := &Notifier{
		channel:  channel,
		exchange: "transactions",
		logger:   zerolog.Nop(),
	}

	event := &domain.TransactionEvent{
		EventID:    "01JABCDEF",
		EventType:  domain.EventTypeTransfer,
		Reference:  "REF20260829-ABC123",
		OccurredAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}

	if err := notifier.TransactionCompleted(context.Background(), event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if channel.exchange != "transactions" {
		t.Errorf("expected exchange transactions, got %s", channel.exchange)
	}
	if channel.key != domain.EventTypeTransfer {
		t.Errorf("expected routing key %s, got %s", domain.EventTypeTransfer, channel.key)
	}
	if channel.msg.DeliveryMode != amqp.Persistent {
		t.Error("events must be published persistent")
	}
	if channel.msg.MessageId != event.EventID {
		t.Errorf("expected message id %s, got %s", event.EventID, channel.msg.MessageId)
	}

	var decoded domain.TransactionEvent
	if err := json.Unmarshal(channel.msg.Body, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded.Reference != event.Reference {
		t.Errorf("expected reference %s, got %s", event.Reference, decoded.Reference)
	}
}

func TestNotifier_PublishErrorSurfaces(t *testing.T) {
	channel := &fakeChannel{err: errors.New("channel closed")}
	notifier := &Notifier{
		channel:  channel,
		exchange: "transactions",
		logger:   zerolog.Nop(),
	}

	err := notifier.TransactionCompleted(context.Background(), &domain.TransactionEvent{
		EventType: domain.EventTypeDeposit,
	})
	if err == nil {
		t.Fatal("expected publish error to surface")
	}
}

func TestLogNotifier_NeverFails(t *testing.T) {
	notifier := NewLogNotifier(zerolog.Nop())
	err := notifier.TransactionCompleted(context.Background(), &domain.TransactionEvent{
		EventType: domain.EventTypeWithdrawal,
		Reference: "REF20260829-XYZ789",
	})
	if err != nil {
		t.Fatalf("log notifier must not fail: %v", err)
	}
}

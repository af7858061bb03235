// Package events publishes assessment lifecycle events to downstream
// consumers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/glucoscope/glucoscope/internal/store"
)

// TypeAssessmentCreated is the event-type header of a newly stored record.
const TypeAssessmentCreated = "assessment.created"

// Publisher emits one event per stored record.
type Publisher interface {
	Publish(ctx context.Context, rec store.Record) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, store.Record) error { return nil }
func (Nop) Close() error                                { return nil }

// Envelope is the JSON value of an event message.
type Envelope struct {
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Record     store.Record `json:"record"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes events synchronously, keyed by record id so all events for
// a record land on one partition.
type Kafka struct {
	writer messageWriter
}

// NewKafka creates a publisher writing to topic on the given brokers.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic must not be empty")
	}
	return &Kafka{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}}, nil
}

// Message builds the Kafka message for rec.
func Message(rec store.Record) (kafka.Message, error) {
	value, err := json.Marshal(Envelope{Type: TypeAssessmentCreated, OccurredAt: rec.CreatedAt, Record: rec})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event: %w", err)
	}
	return kafka.Message{
		Key:     []byte(rec.ID),
		Value:   value,
		Time:    rec.CreatedAt,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(TypeAssessmentCreated)}},
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, rec store.Record) error {
	msg, err := Message(rec)
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", rec.ID, err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

// Package amqpsink publishes contract violations to an AMQP exchange as
// JSON events.
package amqpsink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	covenant "github.com/covenant/covenant-go"
)

// Config holds AMQP sink configuration.
type Config struct {
	URL             string `json:"url" yaml:"url"`
	Exchange        string `json:"exchange" yaml:"exchange"`
	RoutingKey      string `json:"routing_key" yaml:"routing_key"`
	ExchangeType    string `json:"exchange_type" yaml:"exchange_type"`
	ExchangeDeclare bool   `json:"exchange_declare" yaml:"exchange_declare"`
}

// Sink publishes one message per violation.
type Sink struct {
	config  *Config
	conn    *amqp.Connection
	channel *amqp.Channel
}

// message is the published payload. Values are rendered to strings since
// arbitrary arguments (callables included) are not JSON-serializable.
type message struct {
	ID         string `json:"id"`
	Constraint string `json:"constraint"`
	Value      string `json:"value"`
	Location   string `json:"location"`
	Timestamp  string `json:"timestamp"`
}

// NewSink dials the broker and prepares a publishing channel.
func NewSink(config *Config) (*Sink, error) {
	if config == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if config.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if config.Exchange == "" {
		return nil, fmt.Errorf("exchange is required")
	}
	if config.RoutingKey == "" {
		config.RoutingKey = "covenant.violation"
	}
	if config.ExchangeType == "" {
		config.ExchangeType = "topic"
	}

	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	if config.ExchangeDeclare {
		if err := channel.ExchangeDeclare(config.Exchange, config.ExchangeType, true, false, false, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("declaring exchange: %w", err)
		}
	}
	return &Sink{config: config, conn: conn, channel: channel}, nil
}

func (s *Sink) Record(ctx context.Context, v *covenant.Violation) error {
	body, err := json.Marshal(message{
		ID:         v.ID,
		Constraint: v.Constraint.String(),
		Value:      covenant.FormatValue(v.Value),
		Location:   v.Location,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encoding violation: %w", err)
	}
	err = s.channel.PublishWithContext(ctx, s.config.Exchange, s.config.RoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   v.ID,
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publishing violation: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	if err := s.channel.Close(); err != nil {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}

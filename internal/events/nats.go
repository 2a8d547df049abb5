package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/veyrascripts/gallery/internal/colors"
)

// NATSPublisher publishes JSON-encoded events to NATS subjects named after the topic.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("script-gallery"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.NoEcho(),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return p.conn.Publish(topic, data)
}

// Subscribe hands script events published by other processes to handle.
// Events published on this connection are not echoed back.
func (p *NATSPublisher) Subscribe(handle func(topic string, event any)) (*nats.Subscription, error) {
	sub, err := p.conn.Subscribe(TopicScripts, func(msg *nats.Msg) {
		event, err := Decode(msg.Subject, msg.Data)
		if err != nil {
			log.Printf("[%v] %v", colors.Warning("events"), err)
			return
		}
		handle(msg.Subject, event)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", TopicScripts, err)
	}
	return sub, p.conn.Flush()
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrascripts/gallery/internal/events"
	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/views"
)

type relayedEvent struct {
	topic string
	id    string
}

type channelPublisher chan relayedEvent

func (p channelPublisher) Publish(ctx context.Context, topic string, event any) error {
	p <- relayedEvent{topic, events.ScriptID(event)}
	return nil
}

func (p channelPublisher) Close() error { return nil }

func startNATS(t *testing.T) string {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(srv.Shutdown)
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("embedded NATS not ready")
	}
	return srv.ClientURL()
}

func TestSeedFromAnotherProcessRefreshesServer(t *testing.T) {
	url := startNATS(t)
	ctx := context.Background()

	cache := views.NewCache(time.Hour)
	var loads atomic.Int32
	load := func(ctx context.Context) ([]*models.Script, error) {
		loads.Add(1)
		return []*models.Script{}, nil
	}
	cache.Scripts(ctx, views.Gallery, load)

	serverConn, err := events.NewNATSPublisher(url)
	require.NoError(t, err)
	defer serverConn.Close()

	relayed := make(channelPublisher, 1)
	sub, err := serverConn.Subscribe(refreshOnRemote(ctx, cache, relayed))
	require.NoError(t, err)
	defer sub.Unsubscribe() //nolint:errcheck

	seedConn, err := events.NewNATSPublisher(url)
	require.NoError(t, err)
	defer seedConn.Close()
	require.NoError(t, seedConn.Publish(ctx, events.TopicScriptCreated, events.ScriptCreated{Script: &models.Script{ID: "seeded"}}))

	select {
	case got := <-relayed:
		assert.Equal(t, relayedEvent{events.TopicScriptCreated, "seeded"}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for relayed event")
	}

	cache.Scripts(ctx, views.Gallery, load)
	assert.Equal(t, int32(2), loads.Load())
}

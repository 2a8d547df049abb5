// Package live pushes catalog invalidations to open gallery pages over a
// centrifuge websocket.
package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/centrifugal/centrifuge"

	"github.com/veyrascripts/gallery/internal/channels"
	"github.com/veyrascripts/gallery/internal/colors"
	"github.com/veyrascripts/gallery/internal/events"
	"github.com/veyrascripts/gallery/internal/views"
)

const (
	historySize = 20
	historyTTL  = 5 * time.Minute
)

// Invalidation tells subscribed pages which views went stale.
type Invalidation struct {
	Type  string   `json:"type"`
	Views []string `json:"views"`
	ID    string   `json:"id,omitempty"`
}

// Node is an events.Publisher that fans change events out to websocket
// subscribers of the gallery and per-script channels.
type Node struct {
	node *centrifuge.Node
}

func NewNode() (*Node, error) {
	node, err := centrifuge.New(centrifugeMainConfig())
	if err != nil {
		return nil, err
	}

	node.OnConnect(func(client *centrifuge.Client) {
		client.OnPresenceStats(onPresenceStats())
		client.OnSubscribe(onSubscribe(client))
	})

	if err := node.Run(); err != nil {
		return nil, err
	}
	return &Node{node: node}, nil
}

func (n *Node) Publish(ctx context.Context, topic string, event any) error {
	id := events.ScriptID(event)
	data, err := json.Marshal(Invalidation{
		Type:  "invalidate",
		Views: []string{views.Gallery, views.Admin},
		ID:    id,
	})
	if err != nil {
		return err
	}

	if _, err := n.node.Publish(channels.Gallery, data, centrifuge.WithHistory(historySize, historyTTL)); err != nil {
		return err
	}
	if id != "" {
		if _, err := n.node.Publish(channels.ForScript(id), data, centrifuge.WithHistory(historySize, historyTTL)); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return n.node.Shutdown(ctx)
}

func (n *Node) WebsocketHandler() http.Handler {
	return centrifuge.NewWebsocketHandler(n.node, wsMainConfig())
}

func checkOrigin(r *http.Request) bool {
	return true
}

func wsMainConfig() centrifuge.WebsocketConfig {
	return centrifuge.WebsocketConfig{
		CheckOrigin: checkOrigin,
	}
}

func centrifugeMainConfig() centrifuge.Config {
	return centrifuge.Config{
		LogLevel: centrifuge.LogLevelError,
		LogHandler: func(e centrifuge.LogEntry) {
			log.Printf("[%v] %v %v", colors.Error("live"), e.Message, e.Fields)
		},
	}
}

// subscribeReply decides whether a client may listen on channel.
func subscribeReply(channel string) (centrifuge.SubscribeReply, error) {
	if !channels.IsValid(channel) {
		return centrifuge.SubscribeReply{}, centrifuge.ErrorUnknownChannel
	}
	return centrifuge.SubscribeReply{
		Options: centrifuge.SubscribeOptions{EnableRecovery: true},
	}, nil
}

func onSubscribe(client *centrifuge.Client) func(centrifuge.SubscribeEvent, centrifuge.SubscribeCallback) {
	return func(e centrifuge.SubscribeEvent, cb centrifuge.SubscribeCallback) {
		reply, err := subscribeReply(e.Channel)
		if err == nil {
			log.Printf("[%v] joined %v", colors.Created(client.UserID()), colors.Created(e.Channel))
		}
		cb(reply, err)
	}
}

func onPresenceStats() func(centrifuge.PresenceStatsEvent, centrifuge.PresenceStatsCallback) {
	return func(e centrifuge.PresenceStatsEvent, cb centrifuge.PresenceStatsCallback) {
		if channels.IsGallery(e.Channel) {
			cb(centrifuge.PresenceStatsReply{}, nil)
		} else {
			cb(centrifuge.PresenceStatsReply{}, centrifuge.ErrorPermissionDenied)
		}
	}
}

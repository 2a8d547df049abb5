package live

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/centrifugal/centrifuge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrascripts/gallery/internal/events"
	"github.com/veyrascripts/gallery/internal/models"
)

func newTestNode(t *testing.T) *Node {
	t.Helper()
	node, err := NewNode()
	require.NoError(t, err)
	t.Cleanup(func() { node.Close() })
	return node
}

func history(t *testing.T, node *Node, channel string) []Invalidation {
	t.Helper()
	result, err := node.node.History(channel, centrifuge.WithLimit(centrifuge.NoLimit))
	require.NoError(t, err)

	var out []Invalidation
	for _, pub := range result.Publications {
		var inv Invalidation
		require.NoError(t, json.Unmarshal(pub.Data, &inv))
		out = append(out, inv)
	}
	return out
}

func TestPublishInvalidatesGalleryAndScript(t *testing.T) {
	node := newTestNode(t)

	err := node.Publish(context.Background(), events.TopicScriptUpdated,
		events.ScriptUpdated{Script: &models.Script{ID: "foo"}})
	require.NoError(t, err)

	want := []Invalidation{{Type: "invalidate", Views: []string{"gallery", "admin"}, ID: "foo"}}
	assert.Equal(t, want, history(t, node, "gallery"))
	assert.Equal(t, want, history(t, node, "script@foo"))
}

func TestSubscribeReply(t *testing.T) {
	_, err := subscribeReply("gallery")
	assert.NoError(t, err)

	reply, err := subscribeReply("script@foo")
	assert.NoError(t, err)
	assert.True(t, reply.Options.EnableRecovery)

	_, err = subscribeReply("admin")
	assert.Equal(t, centrifuge.ErrorUnknownChannel, err)
}

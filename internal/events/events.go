package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/veyrascripts/gallery/internal/models"
)

// Event topic constants
const (
	TopicScriptCreated = "scripts.created"
	TopicScriptUpdated = "scripts.updated"
	TopicScriptDeleted = "scripts.deleted"

	// TopicScripts matches every script topic.
	TopicScripts = "scripts.*"
)

type ScriptCreated struct {
	Script *models.Script `json:"script"`
}

type ScriptUpdated struct {
	Script *models.Script `json:"script"`
}

type ScriptDeleted struct {
	ScriptID string `json:"script_id"`
}

// ScriptID extracts the id of the record an event refers to.
func ScriptID(event any) string {
	switch e := event.(type) {
	case ScriptCreated:
		return e.Script.ID
	case ScriptUpdated:
		return e.Script.ID
	case ScriptDeleted:
		return e.ScriptID
	}
	return ""
}

// Decode rebuilds the typed event that was published under topic.
func Decode(topic string, data []byte) (any, error) {
	var event any
	switch topic {
	case TopicScriptCreated:
		event = &ScriptCreated{}
	case TopicScriptUpdated:
		event = &ScriptUpdated{}
	case TopicScriptDeleted:
		event = &ScriptDeleted{}
	default:
		return nil, fmt.Errorf("unknown topic %q", topic)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", topic, err)
	}

	switch e := event.(type) {
	case *ScriptCreated:
		if e.Script == nil {
			return nil, fmt.Errorf("decoding %s: missing script", topic)
		}
		return *e, nil
	case *ScriptUpdated:
		if e.Script == nil {
			return nil, fmt.Errorf("decoding %s: missing script", topic)
		}
		return *e, nil
	case *ScriptDeleted:
		return *e, nil
	}
	return nil, nil
}

// Publisher delivers change events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

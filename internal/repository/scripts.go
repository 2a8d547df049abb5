package repository

import (
	"context"
	"errors"

	"github.com/veyrascripts/gallery/internal/models"
)

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "All"

var (
	ErrNotFound    = errors.New("script not found")
	ErrDuplicateID = errors.New("script id already exists")
)

// ScriptFilter narrows a listing. Empty fields do not filter.
type ScriptFilter struct {
	Search   string
	Category string
}

// HasCategory reports whether the filter restricts by category.
func (f ScriptFilter) HasCategory() bool {
	return f.Category != "" && f.Category != AllCategories
}

type ScriptsRepository interface {
	ListScripts(ctx context.Context, filter ScriptFilter) ([]*models.Script, error)
	// GetScriptByID returns nil, nil when the id does not exist.
	GetScriptByID(ctx context.Context, id string) (*models.Script, error)
	CreateScript(ctx context.Context, script *models.Script) error
	// UpdateScript merges patch into the stored record and returns the result.
	UpdateScript(ctx context.Context, id string, patch models.ScriptPatch) (*models.Script, error)
	// DeleteScript succeeds for ids that do not exist.
	DeleteScript(ctx context.Context, id string) error
}

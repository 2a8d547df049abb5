// Package memory is an in-process ScriptsRepository used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"
)

type memoryScriptsRepo struct {
	mu      sync.RWMutex
	scripts map[string]*models.Script
}

func NewMemoryScriptsRepository(seed ...*models.Script) repository.ScriptsRepository {
	r := &memoryScriptsRepo{scripts: make(map[string]*models.Script)}
	for _, s := range seed {
		r.scripts[s.ID] = s.Clone()
	}
	return r
}

func (r *memoryScriptsRepo) ListScripts(ctx context.Context, filter repository.ScriptFilter) ([]*models.Script, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	scripts := []*models.Script{}
	for _, s := range r.scripts {
		if filter.HasCategory() && s.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Description), search) {
			continue
		}
		scripts = append(scripts, s.Clone())
	}

	sort.Slice(scripts, func(i, j int) bool {
		if scripts[i].Name != scripts[j].Name {
			return scripts[i].Name < scripts[j].Name
		}
		return scripts[i].ID < scripts[j].ID
	})
	return scripts, nil
}

func (r *memoryScriptsRepo) GetScriptByID(ctx context.Context, id string) (*models.Script, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.scripts[id].Clone(), nil
}

func (r *memoryScriptsRepo) CreateScript(ctx context.Context, script *models.Script) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scripts[script.ID]; exists {
		return repository.ErrDuplicateID
	}
	r.scripts[script.ID] = script.Clone()
	return nil
}

func (r *memoryScriptsRepo) UpdateScript(ctx context.Context, id string, patch models.ScriptPatch) (*models.Script, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	script, ok := r.scripts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(script)
	return script.Clone(), nil
}

func (r *memoryScriptsRepo) DeleteScript(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.scripts, id)
	return nil
}

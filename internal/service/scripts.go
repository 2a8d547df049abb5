package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/veyrascripts/gallery/internal/colors"
	"github.com/veyrascripts/gallery/internal/events"
	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"
	"github.com/veyrascripts/gallery/internal/views"
)

var (
	ErrCreateFailed = errors.New("failed to create script")
	ErrUpdateFailed = errors.New("failed to update script")
	ErrDeleteFailed = errors.New("failed to delete script")
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidationError reports a record that cannot be persisted as submitted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type ViewInvalidator interface {
	Invalidate(views ...string)
}

type ScriptsService struct {
	scriptsRepo repository.ScriptsRepository
	views       ViewInvalidator
	publisher   events.Publisher
}

func NewScriptsService(scriptsRepo repository.ScriptsRepository, views ViewInvalidator, publisher events.Publisher) *ScriptsService {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	return &ScriptsService{scriptsRepo: scriptsRepo, views: views, publisher: publisher}
}

// Fetch lists the scripts matching filter and reports store failures.
func (s *ScriptsService) Fetch(ctx context.Context, filter repository.ScriptFilter) ([]*models.Script, error) {
	scripts, err := s.scriptsRepo.ListScripts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}

	for _, script := range scripts {
		script.Normalize()
	}
	if scripts == nil {
		scripts = []*models.Script{}
	}
	return scripts, nil
}

// List is Fetch with store failures logged and degraded to no results.
func (s *ScriptsService) List(ctx context.Context, search string, category string) []*models.Script {
	scripts, err := s.Fetch(ctx, repository.ScriptFilter{Search: search, Category: category})
	if err != nil {
		log.Printf("[%v] %v", colors.Error("scripts"), err)
		return []*models.Script{}
	}
	return scripts
}

// Find looks a script up by id. It returns nil, nil when there is none.
func (s *ScriptsService) Find(ctx context.Context, id string) (*models.Script, error) {
	script, err := s.scriptsRepo.GetScriptByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	if script != nil {
		script.Normalize()
	}
	return script, nil
}

// Get returns nil when the script does not exist or cannot be read.
func (s *ScriptsService) Get(ctx context.Context, id string) *models.Script {
	script, err := s.Find(ctx, id)
	if err != nil {
		log.Printf("[%v] %v", colors.Error("scripts"), err)
		return nil
	}
	return script
}

func (s *ScriptsService) Create(ctx context.Context, script *models.Script) (*models.Script, error) {
	if err := validateNew(script); err != nil {
		return nil, err
	}

	script = script.Clone()
	script.Normalize()

	if err := s.scriptsRepo.CreateScript(ctx, script); err != nil {
		log.Printf("[%v] create %s: %v", colors.Error("scripts"), script.ID, err)
		return nil, ErrCreateFailed
	}

	log.Printf("[%v] %v", colors.Created("created"), script.ID)
	s.mutated(ctx, events.TopicScriptCreated, events.ScriptCreated{Script: script})
	return script, nil
}

// Update merges patch into the script with the given id. The id itself
// never changes. Unknown ids yield repository.ErrNotFound, even for an
// empty patch.
func (s *ScriptsService) Update(ctx context.Context, id string, patch models.ScriptPatch) (*models.Script, error) {
	if patch.IsEmpty() {
		existing, err := s.Find(ctx, id)
		if err != nil {
			log.Printf("[%v] update %s: %v", colors.Error("scripts"), id, err)
			return nil, ErrUpdateFailed
		}
		if existing == nil {
			return nil, repository.ErrNotFound
		}
		return nil, &ValidationError{Reason: "no fields to update"}
	}
	if missing := clearedFields(patch); len(missing) > 0 {
		return nil, &ValidationError{Reason: "missing required fields: " + strings.Join(missing, ", ")}
	}

	script, err := s.scriptsRepo.UpdateScript(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		log.Printf("[%v] update %s: %v", colors.Error("scripts"), id, err)
		return nil, ErrUpdateFailed
	}
	script.Normalize()

	log.Printf("[%v] %v", colors.Created("updated"), id)
	s.mutated(ctx, events.TopicScriptUpdated, events.ScriptUpdated{Script: script})
	return script, nil
}

// Delete removes the script. Deleting an unknown id succeeds.
func (s *ScriptsService) Delete(ctx context.Context, id string) error {
	if err := s.scriptsRepo.DeleteScript(ctx, id); err != nil {
		log.Printf("[%v] delete %s: %v", colors.Error("scripts"), id, err)
		return ErrDeleteFailed
	}

	log.Printf("[%v] %v", colors.Removed("deleted"), id)
	s.mutated(ctx, events.TopicScriptDeleted, events.ScriptDeleted{ScriptID: id})
	return nil
}

// Upsert creates the script or overwrites every mutable field of an existing
// one. It reports whether a new record was created.
func (s *ScriptsService) Upsert(ctx context.Context, script *models.Script) (bool, error) {
	existing, err := s.Find(ctx, script.ID)
	if err != nil {
		return false, err
	}

	if existing == nil {
		_, err := s.Create(ctx, script)
		return err == nil, err
	}

	if err := validateNew(script); err != nil {
		return false, err
	}
	normalized := script.Clone()
	normalized.Normalize()
	_, err = s.Update(ctx, script.ID, models.PatchFrom(normalized))
	return false, err
}

func (s *ScriptsService) mutated(ctx context.Context, topic string, event any) {
	if s.views != nil {
		s.views.Invalidate(views.Gallery, views.Admin)
	}

	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		log.Printf("[%v] publish %s: %v", colors.Warning("events"), topic, err)
	}
}

func validateNew(script *models.Script) error {
	if script == nil {
		return &ValidationError{Reason: "script is required"}
	}
	if missing := script.MissingFields(); len(missing) > 0 {
		return &ValidationError{Reason: "missing required fields: " + strings.Join(missing, ", ")}
	}
	if !slugPattern.MatchString(script.ID) {
		return &ValidationError{Reason: "id must be a slug of letters, digits, '.', '_' or '-'"}
	}
	return nil
}

// clearedFields lists the required fields a patch would set to empty values.
func clearedFields(patch models.ScriptPatch) []string {
	required := []struct {
		name  string
		value *string
	}{
		{"name", patch.Name},
		{"author", patch.Author},
		{"version", patch.Version},
		{"category", patch.Category},
		{"icon", patch.Icon},
		{"match", patch.Match},
		{"code", patch.Code},
	}

	var cleared []string
	for _, field := range required {
		if field.value != nil && strings.TrimSpace(*field.value) == "" {
			cleared = append(cleared, field.name)
		}
	}
	return cleared
}

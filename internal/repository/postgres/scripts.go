package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"

	"gorm.io/gorm"
)

// likeEscaper makes search text match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type postgresScriptsRepo struct {
	db *gorm.DB
}

func NewPostgresScriptsRepository(db *gorm.DB) repository.ScriptsRepository {
	return &postgresScriptsRepo{db: db}
}

func (r *postgresScriptsRepo) ListScripts(ctx context.Context, filter repository.ScriptFilter) ([]*models.Script, error) {
	var scripts []*models.Script
	query := r.db.WithContext(ctx).Model(&models.Script{})

	if filter.HasCategory() {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Search != "" {
		searchPattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		query = query.Where(`name ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\'`, searchPattern, searchPattern)
	}

	err := query.Order("name, id").Find(&scripts).Error
	if err != nil {
		return nil, err
	}

	return scripts, nil
}

func (r *postgresScriptsRepo) GetScriptByID(ctx context.Context, id string) (*models.Script, error) {
	var script models.Script
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&script).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &script, nil
}

func (r *postgresScriptsRepo) CreateScript(ctx context.Context, script *models.Script) error {
	err := r.db.WithContext(ctx).Create(script).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicateID
	}
	return err
}

func (r *postgresScriptsRepo) UpdateScript(ctx context.Context, id string, patch models.ScriptPatch) (*models.Script, error) {
	var script models.Script
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&script).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		patch.Apply(&script)
		return tx.Model(&script).Select("*").Omit("id").Updates(&script).Error
	})
	if err != nil {
		return nil, err
	}
	return &script, nil
}

func (r *postgresScriptsRepo) DeleteScript(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Script{}).Error
}

// Package catalog moves script records in and out of the store as files:
// TOML seed catalogs on the way in, JSONL snapshots on the way out.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lib/pq"

	"github.com/veyrascripts/gallery/internal/colors"
	"github.com/veyrascripts/gallery/internal/models"
)

type seedFile struct {
	Scripts []seedScript `toml:"scripts"`
}

type seedScript struct {
	ID          string      `toml:"id"`
	Name        string      `toml:"name"`
	Description string      `toml:"description"`
	Author      string      `toml:"author"`
	Version     string      `toml:"version"`
	Category    string      `toml:"category"`
	Tags        []string    `toml:"tags"`
	Icon        string      `toml:"icon"`
	Match       string      `toml:"match"`
	Grant       []string    `toml:"grant"`
	Code        string      `toml:"code"`
	Screenshots []string    `toml:"screenshots"`
	Features    []string    `toml:"features"`
	Changelog   []seedEntry `toml:"changelog"`
}

type seedEntry struct {
	Version string   `toml:"version"`
	Date    string   `toml:"date"`
	Changes []string `toml:"changes"`
}

// DecodeTOML reads a seed catalog of [[scripts]] tables. Unknown keys are
// rejected so that typos do not silently drop data. Omitted fields fall
// back to the admin form defaults.
func DecodeTOML(r io.Reader) ([]*models.Script, error) {
	var file seedFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("decode seed: unknown keys %s", strings.Join(keys, ", "))
	}

	scripts := make([]*models.Script, 0, len(file.Scripts))
	for _, s := range file.Scripts {
		scripts = append(scripts, s.toModel())
	}
	return scripts, nil
}

func (s seedScript) toModel() *models.Script {
	script := &models.Script{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Author:      s.Author,
		Version:     orDefault(s.Version, models.DefaultVersion),
		Category:    orDefault(s.Category, models.DefaultCategory),
		Tags:        pq.StringArray(s.Tags),
		Icon:        orDefault(s.Icon, models.DefaultIcon),
		Match:       orDefault(s.Match, models.DefaultMatch),
		Grant:       pq.StringArray(s.Grant),
		Code:        s.Code,
		Screenshots: pq.StringArray(s.Screenshots),
		Features:    pq.StringArray(s.Features),
	}
	for _, entry := range s.Changelog {
		script.Changelog = append(script.Changelog, models.ChangelogEntry(entry))
	}
	script.Normalize()
	return script
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

type Upserter interface {
	Upsert(ctx context.Context, script *models.Script) (bool, error)
}

// Seed writes every script through upserter and reports how many records
// were created and how many were overwritten. It stops at the first failure.
func Seed(ctx context.Context, upserter Upserter, scripts []*models.Script) (created int, updated int, err error) {
	for _, script := range scripts {
		isNew, err := upserter.Upsert(ctx, script)
		if err != nil {
			return created, updated, fmt.Errorf("seed %s: %w", script.ID, err)
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	log.Printf("[%v] %d created, %d updated", colors.Created("seed"), created, updated)
	return created, updated, nil
}

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"time"

	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"
	"github.com/veyrascripts/gallery/internal/storage"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	ScriptCount int       `json:"script_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Lister interface {
	Fetch(ctx context.Context, filter repository.ScriptFilter) ([]*models.Script, error)
}

// ExportJSONL writes every stored script as JSONL to w, sorted by id and
// preceded by a header line.
func ExportJSONL(ctx context.Context, lister Lister, w io.Writer, now time.Time) error {
	scripts, err := lister.Fetch(ctx, repository.ScriptFilter{})
	if err != nil {
		return fmt.Errorf("list scripts: %w", err)
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].ID < scripts[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   now.UTC(),
		ScriptCount: len(scripts),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, s := range scripts {
		if err := enc.Encode(record{Type: "script", Data: s}); err != nil {
			return fmt.Errorf("encode script %s: %w", s.ID, err)
		}
	}

	return nil
}

var snapshotPattern = regexp.MustCompile(`^scripts-\d{8}T\d{6}Z$`)

// SnapshotName names an export taken at now.
func SnapshotName(now time.Time) string {
	return "scripts-" + now.UTC().Format("20060102T150405Z")
}

func IsSnapshotName(name string) bool {
	return snapshotPattern.MatchString(name)
}

// Snapshot exports the catalog into files and returns the name it was saved
// under.
func Snapshot(ctx context.Context, lister Lister, files storage.FilesStorage, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := ExportJSONL(ctx, lister, &buf, now); err != nil {
		return "", err
	}

	name := SnapshotName(now)
	if err := files.Save(ctx, name, &buf); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return name, nil
}

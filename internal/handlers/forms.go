package handlers

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/lib/pq"

	"github.com/veyrascripts/gallery/internal/gallery"
	"github.com/veyrascripts/gallery/internal/models"
)

// scriptForm mirrors the admin create/edit form. List fields hold one entry
// per line; changelog lines read "version: change; change", optionally with
// a date as "version (date): ...".
type scriptForm struct {
	ID          string `form:"id"`
	Name        string `form:"name"`
	Description string `form:"description"`
	Author      string `form:"author"`
	Version     string `form:"version"`
	Category    string `form:"category"`
	Icon        string `form:"icon"`
	Match       string `form:"match"`
	Grant       string `form:"grant"`
	Tags        string `form:"tags"`
	Features    string `form:"features"`
	Screenshots string `form:"screenshots"`
	Changelog   string `form:"changelog"`
	Code        string `form:"code"`
}

var changelogLine = regexp.MustCompile(`^([^:(]+?)\s*(?:\(([^)]*)\))?\s*:\s*(.*)$`)

func newScriptForm() scriptForm {
	return scriptForm{
		Version:  models.DefaultVersion,
		Category: models.DefaultCategory,
		Icon:     models.DefaultIcon,
		Match:    models.DefaultMatch,
	}
}

func formFromScript(s *models.Script) scriptForm {
	return scriptForm{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Author:      s.Author,
		Version:     s.Version,
		Category:    s.Category,
		Icon:        s.Icon,
		Match:       s.Match,
		Grant:       strings.Join(s.Grant, "\n"),
		Tags:        strings.Join(s.Tags, "\n"),
		Features:    strings.Join(s.Features, "\n"),
		Screenshots: strings.Join(s.Screenshots, "\n"),
		Changelog:   formatChangelog(s.Changelog),
		Code:        s.Code,
	}
}

func (f scriptForm) script() (*models.Script, error) {
	changelog, err := parseChangelog(f.Changelog)
	if err != nil {
		return nil, err
	}

	script := &models.Script{
		ID:          strings.TrimSpace(f.ID),
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Author:      strings.TrimSpace(f.Author),
		Version:     strings.TrimSpace(f.Version),
		Category:    strings.TrimSpace(f.Category),
		Icon:        strings.TrimSpace(f.Icon),
		Match:       strings.TrimSpace(f.Match),
		Grant:       splitLines(f.Grant),
		Tags:        splitLines(f.Tags),
		Features:    splitLines(f.Features),
		Screenshots: splitLines(f.Screenshots),
		Changelog:   changelog,
		Code:        strings.ReplaceAll(f.Code, "\r\n", "\n"),
	}
	return script, nil
}

// categoryOptions lists the selectable categories, keeping a stored category
// that is not one of the known ones.
func categoryOptions(current string) []string {
	options := slices.Clone(gallery.Categories[1:])
	if current != "" && !slices.Contains(options, current) {
		options = append(options, current)
	}
	return options
}

func splitLines(value string) pq.StringArray {
	lines := pq.StringArray{}
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func parseChangelog(value string) ([]models.ChangelogEntry, error) {
	entries := []models.ChangelogEntry{}
	for i, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		match := changelogLine.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("changelog line %d: expected \"version: change; change\"", i+1)
		}

		entry := models.ChangelogEntry{
			Version: strings.TrimSpace(match[1]),
			Date:    strings.TrimSpace(match[2]),
			Changes: []string{},
		}
		for _, change := range strings.Split(match[3], ";") {
			if change = strings.TrimSpace(change); change != "" {
				entry.Changes = append(entry.Changes, change)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func formatChangelog(entries []models.ChangelogEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		head := entry.Version
		if entry.Date != "" {
			head += " (" + entry.Date + ")"
		}
		lines = append(lines, head+": "+strings.Join(entry.Changes, "; "))
	}
	return strings.Join(lines, "\n")
}

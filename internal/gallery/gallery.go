// Package gallery holds the presentation rules of the public gallery and the
// script detail page.
package gallery

import (
	"strings"

	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"
)

// Categories are the filter buttons shown above the gallery.
var Categories = []string{
	repository.AllCategories,
	"Utilities",
	"Farm Stamina",
	"Farm Wave",
	"Loot",
	"Extra",
	"Others",
}

const cardTagLimit = 3

// Matches reports whether script passes the gallery search box and category
// buttons. Unlike the store query, the search also looks at tags.
func Matches(script *models.Script, search string, category string) bool {
	if category != "" && category != repository.AllCategories && script.Category != category {
		return false
	}

	search = strings.ToLower(search)
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(script.Name), search) ||
		strings.Contains(strings.ToLower(script.Description), search) {
		return true
	}
	for _, tag := range script.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func Filter(scripts []*models.Script, search string, category string) []*models.Script {
	filtered := []*models.Script{}
	for _, script := range scripts {
		if Matches(script, search, category) {
			filtered = append(filtered, script)
		}
	}
	return filtered
}

// CardTags returns the tags shown on a gallery card and how many were left out.
func CardTags(tags []string) ([]string, int) {
	if len(tags) <= cardTagLimit {
		return tags, 0
	}
	return tags[:cardTagLimit], len(tags) - cardTagLimit
}

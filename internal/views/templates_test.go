package views

import (
	"bytes"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrascripts/gallery/internal/gallery"
	"github.com/veyrascripts/gallery/internal/models"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"gallery.tmpl", "detail.tmpl", "not_found.tmpl",
		"admin_login.tmpl", "admin_list.tmpl", "admin_form.tmpl", "admin_delete.tmpl",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestGalleryCardTags(t *testing.T) {
	tmpl := MustTemplates()
	script := &models.Script{ID: "foo", Name: "Foo", Version: "1.0.0", Category: "Utilities",
		Tags: pq.StringArray{"a", "b", "c", "d", "e"}}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "gallery.tmpl", map[string]any{
		"Scripts":    []*models.Script{script},
		"Total":      3,
		"Categories": gallery.Categories,
		"Category":   "All",
	}))

	out := buf.String()
	assert.Contains(t, out, "Showing 1 of 3 scripts")
	assert.Contains(t, out, "v1.0.0 • Utilities")
	assert.Contains(t, out, `<span class="tag">c</span>`)
	assert.NotContains(t, out, `<span class="tag">d</span>`)
	assert.Contains(t, out, `<span class="tag">+2</span>`)
}

package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func sample() *Script {
	return &Script{
		ID:          "auto-farm",
		Name:        "Auto Farm",
		Description: "Farms waves",
		Author:      "A",
		Version:     "1.0.0",
		Category:    "Farm Wave",
		Tags:        pq.StringArray{"farm", "wave"},
		Icon:        "📜",
		Match:       "*://*/*",
		Grant:       pq.StringArray{"GM_xmlhttpRequest"},
		Code:        "console.log(1)",
		Changelog:   []ChangelogEntry{{Version: "1.0.0", Changes: []string{"first"}}},
	}
}

func TestMissingFields(t *testing.T) {
	assert.Empty(t, sample().MissingFields())

	s := sample()
	s.Name = "  "
	s.Code = ""
	assert.Equal(t, []string{"name", "code"}, s.MissingFields())

	assert.Equal(t,
		[]string{"id", "name", "author", "version", "category", "icon", "match", "code"},
		(&Script{Description: "only optional"}).MissingFields())
}

func TestNormalizeReplacesNilSequences(t *testing.T) {
	s := &Script{}
	s.Normalize()

	assert.NotNil(t, s.Tags)
	assert.NotNil(t, s.Grant)
	assert.NotNil(t, s.Screenshots)
	assert.NotNil(t, s.Features)
	assert.NotNil(t, s.Changelog)
}

func TestCloneIsDeep(t *testing.T) {
	original := sample()
	clone := original.Clone()

	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone differs (-original +clone):\n%s", diff)
	}

	clone.Tags[0] = "changed"
	clone.Changelog[0].Changes[0] = "changed"
	assert.Equal(t, "farm", original.Tags[0])
	assert.Equal(t, "first", original.Changelog[0].Changes[0])
}

func TestPatchApplyChangesOnlyProvidedFields(t *testing.T) {
	s := sample()
	name := "Renamed"
	grant := []string{}

	ScriptPatch{Name: &name, Grant: &grant}.Apply(s)

	want := sample()
	want.Name = "Renamed"
	want.Grant = pq.StringArray{}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("patched record mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchFromCoversEveryMutableField(t *testing.T) {
	source := sample()
	source.Description = "new"
	source.Features = pq.StringArray{"x"}
	source.Normalize()

	target := &Script{ID: source.ID}
	PatchFrom(source).Apply(target)

	if diff := cmp.Diff(source, target); diff != "" {
		t.Fatalf("PatchFrom did not copy all fields (-want +got):\n%s", diff)
	}
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, ScriptPatch{}.IsEmpty())
	icon := "🔧"
	assert.False(t, ScriptPatch{Icon: &icon}.IsEmpty())
}

package models

import "github.com/lib/pq"

// ScriptPatch carries the fields of a partial update. Nil fields are left
// untouched; the id is never part of a patch.
type ScriptPatch struct {
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Author      *string           `json:"author,omitempty"`
	Version     *string           `json:"version,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Tags        *[]string         `json:"tags,omitempty"`
	Icon        *string           `json:"icon,omitempty"`
	Match       *string           `json:"match,omitempty"`
	Grant       *[]string         `json:"grant,omitempty"`
	Code        *string           `json:"code,omitempty"`
	Screenshots *[]string         `json:"screenshots,omitempty"`
	Features    *[]string         `json:"features,omitempty"`
	Changelog   *[]ChangelogEntry `json:"changelog,omitempty"`
}

func (p ScriptPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Author == nil &&
		p.Version == nil && p.Category == nil && p.Tags == nil &&
		p.Icon == nil && p.Match == nil && p.Grant == nil && p.Code == nil &&
		p.Screenshots == nil && p.Features == nil && p.Changelog == nil
}

// Apply merges the provided fields into s.
func (p ScriptPatch) Apply(s *Script) {
	setString(&s.Name, p.Name)
	setString(&s.Description, p.Description)
	setString(&s.Author, p.Author)
	setString(&s.Version, p.Version)
	setString(&s.Category, p.Category)
	setString(&s.Icon, p.Icon)
	setString(&s.Match, p.Match)
	setString(&s.Code, p.Code)
	setStrings(&s.Tags, p.Tags)
	setStrings(&s.Grant, p.Grant)
	setStrings(&s.Screenshots, p.Screenshots)
	setStrings(&s.Features, p.Features)

	if p.Changelog != nil {
		s.Changelog = append([]ChangelogEntry{}, (*p.Changelog)...)
	}
}

// PatchFrom builds a patch that overwrites every mutable field with the
// values of s. Used by the admin edit form, which always submits the full record.
func PatchFrom(s *Script) ScriptPatch {
	tags := []string(s.Tags)
	grant := []string(s.Grant)
	screenshots := []string(s.Screenshots)
	features := []string(s.Features)
	changelog := s.Changelog

	return ScriptPatch{
		Name:        &s.Name,
		Description: &s.Description,
		Author:      &s.Author,
		Version:     &s.Version,
		Category:    &s.Category,
		Tags:        &tags,
		Icon:        &s.Icon,
		Match:       &s.Match,
		Grant:       &grant,
		Code:        &s.Code,
		Screenshots: &screenshots,
		Features:    &features,
		Changelog:   &changelog,
	}
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

func setStrings(dst *pq.StringArray, value *[]string) {
	if value != nil {
		*dst = append(pq.StringArray{}, (*value)...)
	}
}

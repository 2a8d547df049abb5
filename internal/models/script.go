package models

import (
	"strings"

	"github.com/lib/pq"
)

// Defaults used by the admin form when a new script is created.
const (
	DefaultVersion  = "1.0.0"
	DefaultCategory = "Utilities"
	DefaultIcon     = "📜"
	DefaultMatch    = "*://*/*"
)

type ChangelogEntry struct {
	Version string   `json:"version"`
	Date    string   `json:"date,omitempty"`
	Changes []string `json:"changes"`
}

type Script struct {
	ID          string           `json:"id" gorm:"primaryKey;type:text"`
	Name        string           `json:"name" gorm:"type:text;not null"`
	Description string           `json:"description" gorm:"type:text"`
	Author      string           `json:"author" gorm:"type:text;not null"`
	Version     string           `json:"version" gorm:"type:text;not null"`
	Category    string           `json:"category" gorm:"type:text;not null"`
	Tags        pq.StringArray   `json:"tags" gorm:"type:text[];not null"`
	Icon        string           `json:"icon" gorm:"type:text;not null"`
	Match       string           `json:"match" gorm:"type:text;not null"`
	Grant       pq.StringArray   `json:"grant" gorm:"type:text[]"`
	Code        string           `json:"code" gorm:"type:text;not null"`
	Screenshots pq.StringArray   `json:"screenshots" gorm:"type:text[]"`
	Features    pq.StringArray   `json:"features" gorm:"type:text[]"`
	Changelog   []ChangelogEntry `json:"changelog" gorm:"type:jsonb;serializer:json"`
}

func (Script) TableName() string {
	return "scripts"
}

// MissingFields lists the required fields that are empty, in declaration order.
func (s *Script) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"id", s.ID},
		{"name", s.Name},
		{"author", s.Author},
		{"version", s.Version},
		{"category", s.Category},
		{"icon", s.Icon},
		{"match", s.Match},
		{"code", s.Code},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Normalize replaces nil sequences with empty ones so that stored and
// serialized records never carry null lists.
func (s *Script) Normalize() {
	if s.Tags == nil {
		s.Tags = pq.StringArray{}
	}
	if s.Grant == nil {
		s.Grant = pq.StringArray{}
	}
	if s.Screenshots == nil {
		s.Screenshots = pq.StringArray{}
	}
	if s.Features == nil {
		s.Features = pq.StringArray{}
	}
	if s.Changelog == nil {
		s.Changelog = []ChangelogEntry{}
	}
}

func (s *Script) Clone() *Script {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Tags = cloneStrings(s.Tags)
	clone.Grant = cloneStrings(s.Grant)
	clone.Screenshots = cloneStrings(s.Screenshots)
	clone.Features = cloneStrings(s.Features)
	if s.Changelog != nil {
		clone.Changelog = make([]ChangelogEntry, len(s.Changelog))
		for i, entry := range s.Changelog {
			entry.Changes = append([]string(nil), entry.Changes...)
			clone.Changelog[i] = entry
		}
	}
	return &clone
}

func cloneStrings(values pq.StringArray) pq.StringArray {
	if values == nil {
		return nil
	}
	return append(pq.StringArray{}, values...)
}

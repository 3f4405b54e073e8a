package entity

import "strings"

// PosTag is a user-defined part-of-speech label (name + color) referenced
// by identifier from words.
type PosTag struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// PosTagPatch carries a partial tag update; nil fields are untouched.
type PosTagPatch struct {
	Name  *string
	Color *string
}

// Apply merges the patch into a tag value.
func (p PosTagPatch) Apply(tag *PosTag) {
	if p.Name != nil {
		tag.Name = *p.Name
	}
	if p.Color != nil {
		tag.Color = *p.Color
	}
}

// NormalizePosTagName trims surrounding whitespace from the tag name.
func NormalizePosTagName(name string) string {
	return strings.TrimSpace(name)
}

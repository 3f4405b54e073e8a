package repository

import (
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/wordvault/internal/entity"
)

// Field helpers. Documents come back from the store JSON-normalized, so
// numbers are float64 and timestamps are RFC 3339 strings.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt32(v any) int32 {
	switch n := v.(type) {
	case float64:
		return int32(n)
	case int:
		return int32(n)
	case int32:
		return n
	case int64:
		return int32(n)
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func asTimePtr(v any) *time.Time {
	t := asTime(v)
	if t.IsZero() {
		return nil
	}
	return &t
}

func asStringSlice(v any) []string {
	switch arr := v.(type) {
	case []string:
		return append([]string(nil), arr...)
	case []any:
		return lo.FilterMap(arr, func(item any, _ int) (string, bool) {
			s, ok := item.(string)
			return s, ok
		})
	default:
		return nil
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeWordbook(wb *entity.Wordbook) map[string]any {
	data := map[string]any{
		"name":      wb.Name,
		"userId":    wb.UserID,
		"trashed":   wb.Trashed,
		"createdAt": formatTime(wb.CreatedAt),
	}
	if wb.TrashedAt != nil {
		data["trashedAt"] = formatTime(*wb.TrashedAt)
	}
	return data
}

func decodeWordbook(id string, data map[string]any) entity.Wordbook {
	return entity.Wordbook{
		ID:        id,
		UserID:    asString(data["userId"]),
		Name:      asString(data["name"]),
		Trashed:   asBool(data["trashed"]),
		TrashedAt: asTimePtr(data["trashedAt"]),
		CreatedAt: asTime(data["createdAt"]),
	}
}

func encodeWord(w *entity.Word) map[string]any {
	data := map[string]any{
		"text":               w.Text,
		"phonetic":           w.Phonetic,
		"favorite":           w.Favorite,
		"translation":        w.Translation,
		"posIds":             emptyIfNil(w.PosIDs),
		"example":            w.Example,
		"exampleTranslation": w.ExampleTranslation,
		"frequency":          w.Frequency,
		"mastery":            w.Mastery,
		"note":               w.Note,
		"wordbookId":         w.WordbookID,
		"createdAt":          formatTime(w.CreatedAt),
		"studyCount":         w.StudyCount,
		"reviewedAt":         nil,
	}
	if w.ReviewedAt != nil {
		data["reviewedAt"] = formatTime(*w.ReviewedAt)
	}
	if w.Related != nil {
		data["related"] = encodeRelated(w.Related)
	}
	return data
}

func decodeWord(id string, data map[string]any) entity.Word {
	return entity.Word{
		ID:                 id,
		WordbookID:         asString(data["wordbookId"]),
		Text:               asString(data["text"]),
		Phonetic:           asString(data["phonetic"]),
		Favorite:           asBool(data["favorite"]),
		Translation:        asString(data["translation"]),
		PosIDs:             asStringSlice(data["posIds"]),
		Example:            asString(data["example"]),
		ExampleTranslation: asString(data["exampleTranslation"]),
		Related:            decodeRelated(data["related"]),
		Frequency:          asInt32(data["frequency"]),
		Mastery:            asInt32(data["mastery"]),
		Note:               asString(data["note"]),
		CreatedAt:          asTime(data["createdAt"]),
		ReviewedAt:         asTimePtr(data["reviewedAt"]),
		StudyCount:         asInt32(data["studyCount"]),
	}
}

func encodeRelated(r *entity.RelatedWords) map[string]any {
	return map[string]any{
		"synonym": r.Synonym,
		"antonym": r.Antonym,
	}
}

func decodeRelated(v any) *entity.RelatedWords {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &entity.RelatedWords{
		Synonym: asString(m["synonym"]),
		Antonym: asString(m["antonym"]),
	}
}

// wordPatchFields converts a patch into the partial field map merged at
// the store. Only non-nil patch fields are included.
func wordPatchFields(patch entity.WordPatch) map[string]any {
	fields := map[string]any{}
	if patch.Text != nil {
		fields["text"] = *patch.Text
	}
	if patch.Phonetic != nil {
		fields["phonetic"] = *patch.Phonetic
	}
	if patch.Favorite != nil {
		fields["favorite"] = *patch.Favorite
	}
	if patch.Translation != nil {
		fields["translation"] = *patch.Translation
	}
	if patch.PosIDs != nil {
		fields["posIds"] = emptyIfNil(*patch.PosIDs)
	}
	if patch.Example != nil {
		fields["example"] = *patch.Example
	}
	if patch.ExampleTranslation != nil {
		fields["exampleTranslation"] = *patch.ExampleTranslation
	}
	if patch.Related != nil {
		fields["related"] = encodeRelated(patch.Related)
	}
	if patch.Frequency != nil {
		fields["frequency"] = *patch.Frequency
	}
	if patch.Mastery != nil {
		fields["mastery"] = *patch.Mastery
	}
	if patch.Note != nil {
		fields["note"] = *patch.Note
	}
	if patch.ReviewedAt != nil {
		fields["reviewedAt"] = formatTime(*patch.ReviewedAt)
	}
	if patch.StudyCount != nil {
		fields["studyCount"] = *patch.StudyCount
	}
	return fields
}

func encodePosTag(tag *entity.PosTag) map[string]any {
	return map[string]any{
		"name":   tag.Name,
		"color":  tag.Color,
		"userId": tag.UserID,
	}
}

func decodePosTag(id string, data map[string]any) entity.PosTag {
	return entity.PosTag{
		ID:     id,
		UserID: asString(data["userId"]),
		Name:   asString(data["name"]),
		Color:  asString(data["color"]),
	}
}

func posTagPatchFields(patch entity.PosTagPatch) map[string]any {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Color != nil {
		fields["color"] = *patch.Color
	}
	return fields
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

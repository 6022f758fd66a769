package app

import (
	"encoding/json"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

const (
	DefaultStatus     = "unknown"
	DefaultVersion    = "1.0.0"
	DefaultTranslator = "MVH"
)

// Normalize maps a remote detail record onto the Detail document. An optional field keeps its default when it is
// missing, null, false, zero, empty, or of a type that cannot be coerced.
func Normalize(raw RawDetail) Detail {
	return Detail{
		Schema:         DetailSchema,
		ID:             raw.AppID,
		Name:           raw.Name,
		VietnameseName: raw.VietnameseName,
		Status:         stringOr(raw.Status, DefaultStatus),
		Version:        stringOr(raw.Version, DefaultVersion),
		UpdatedAt:      raw.UpdatedAt,
		Download: Download{
			URL:       stringOr(raw.DownloadURL, ""),
			SizeBytes: int64Or(raw.FileSize, 0),
			SHA256:    stringOr(raw.FileHash, ""),
			Mirrors:   stringsOr(raw.Mirrors),
		},
		Compatibility: objectOr(raw.Compatibility),
		Metadata: Metadata{
			Translator:      stringOr(raw.Translator, DefaultTranslator),
			ProgressPercent: float64Or(raw.Progress, 0),
			WordCount:       int64Or(raw.WordCount, 0),
		},
	}
}

func stringOr(value interface{}, fallback string) string {
	switch value.(type) {
	case nil, bool, map[string]interface{}, []interface{}:
		return fallback
	}
	s, err := cast.ToStringE(value)
	if err != nil || s == "" {
		return fallback
	}
	return s
}

func int64Or(value interface{}, fallback int64) int64 {
	if value == nil {
		return fallback
	}
	if _, ok := value.(bool); ok {
		return fallback
	}
	n, err := cast.ToInt64E(value)
	if err != nil || n == 0 {
		return fallback
	}
	return n
}

func float64Or(value interface{}, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	if _, ok := value.(bool); ok {
		return fallback
	}
	f, err := cast.ToFloat64E(value)
	if err != nil || f == 0 {
		return fallback
	}
	return f
}

// stringsOr keeps the non-empty string entries of a JSON array; entries of any other type are dropped.
func stringsOr(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return []string{}
	}
	mirrors := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || s == "" {
			continue
		}
		mirrors = append(mirrors, s)
	}
	return mirrors
}

// objectOr passes a JSON object through as received, key order included.
func objectOr(value json.RawMessage) json.RawMessage {
	if len(value) == 0 || !gjson.ParseBytes(value).IsObject() {
		return json.RawMessage(`{}`)
	}
	return value
}

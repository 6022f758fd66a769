package app

import (
	"encoding/json"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) RawDetail {
	t.Helper()
	raw, err := DecodeDetail([]byte(body))
	require.NoError(t, err)
	return raw
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected Detail
	}{
		{
			name: "every optional field missing",
			body: `{"app_id":"1","name":"Game","vietnamese_name":"Trò chơi","updated_at":"2024-01-01"}`,
			expected: Detail{
				Schema:         "app",
				ID:             json.RawMessage(`"1"`),
				Name:           json.RawMessage(`"Game"`),
				VietnameseName: json.RawMessage(`"Trò chơi"`),
				Status:         "unknown",
				Version:        "1.0.0",
				UpdatedAt:      json.RawMessage(`"2024-01-01"`),
				Download: Download{
					URL:     "",
					SHA256:  "",
					Mirrors: []string{},
				},
				Compatibility: json.RawMessage(`{}`),
				Metadata: Metadata{
					Translator: "MVH",
				},
			},
		},
		{
			name: "every optional field present",
			body: `{
				"app_id": 9,
				"name": "Game",
				"status": "published",
				"version": "2.1.0",
				"download_url": "https://cdn.example/game.zip",
				"file_size": 1048576,
				"file_hash": "abc123",
				"mirrors": ["https://m1.example/game.zip", "https://m2.example/game.zip"],
				"compatibility": {"game_version": "1.4", "platforms": ["steam"]},
				"translator": "Team A",
				"progress": 87.5,
				"word_count": 120000
			}`,
			expected: Detail{
				Schema:  "app",
				ID:      json.RawMessage(`9`),
				Name:    json.RawMessage(`"Game"`),
				Status:  "published",
				Version: "2.1.0",
				Download: Download{
					URL:       "https://cdn.example/game.zip",
					SizeBytes: 1048576,
					SHA256:    "abc123",
					Mirrors:   []string{"https://m1.example/game.zip", "https://m2.example/game.zip"},
				},
				Compatibility: json.RawMessage(`{"game_version": "1.4", "platforms": ["steam"]}`),
				Metadata: Metadata{
					Translator:      "Team A",
					ProgressPercent: 87.5,
					WordCount:       120000,
				},
			},
		},
		{
			name: "falsy values fall back to defaults",
			body: `{"status":"","version":null,"download_url":false,"file_size":0,"file_hash":"","mirrors":null,"compatibility":null,"translator":"","progress":0,"word_count":null}`,
			expected: Detail{
				Schema:        "app",
				Status:        "unknown",
				Version:       "1.0.0",
				Download:      Download{Mirrors: []string{}},
				Compatibility: json.RawMessage(`{}`),
				Metadata:      Metadata{Translator: "MVH"},
			},
		},
		{
			name: "wrong types are coerced or defaulted",
			body: `{"version":2,"file_size":"2048","mirrors":"https://single.example","compatibility":["not","an","object"],"progress":"40","word_count":"many"}`,
			expected: Detail{
				Schema:        "app",
				Status:        "unknown",
				Version:       "2",
				Download:      Download{SizeBytes: 2048, Mirrors: []string{}},
				Compatibility: json.RawMessage(`{}`),
				Metadata:      Metadata{Translator: "MVH", ProgressPercent: 40},
			},
		},
		{
			name: "mirrors keep only string entries",
			body: `{"mirrors":[{"url":"https://m1"},"https://m2",null,42,"",true,"https://m3"]}`,
			expected: Detail{
				Schema:        "app",
				Status:        "unknown",
				Version:       "1.0.0",
				Download:      Download{Mirrors: []string{"https://m2", "https://m3"}},
				Compatibility: json.RawMessage(`{}`),
				Metadata:      Metadata{Translator: "MVH"},
			},
		},
		{
			name: "fractional integer fields are truncated",
			body: `{"file_size":1.5,"word_count":0.4,"progress":12.25}`,
			expected: Detail{
				Schema:        "app",
				Status:        "unknown",
				Version:       "1.0.0",
				Download:      Download{SizeBytes: 1, Mirrors: []string{}},
				Compatibility: json.RawMessage(`{}`),
				Metadata:      Metadata{Translator: "MVH", ProgressPercent: 12.25},
			},
		},
		{
			name: "scalar compatibility defaults to empty object",
			body: `{"compatibility":"windows"}`,
			expected: Detail{
				Schema:        "app",
				Status:        "unknown",
				Version:       "1.0.0",
				Download:      Download{Mirrors: []string{}},
				Compatibility: json.RawMessage(`{}`),
				Metadata:      Metadata{Translator: "MVH"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := Normalize(decode(t, test.body))
			for _, d := range deep.Equal(test.expected, actual) {
				t.Errorf("diff: %+v", d)
			}
		})
	}
}

func TestNormalize_CompatibilityKeepsKeyOrder(t *testing.T) {
	detail := Normalize(decode(t, `{"compatibility":{"windows":true,"linux":false,"build":{"min":2,"max":1}}}`))

	encoded, err := json.Marshal(detail)
	require.NoError(t, err)

	assert.Contains(t, string(encoded), `"compatibility":{"windows":true,"linux":false,"build":{"min":2,"max":1}}`)
}

func TestNormalize_FileHash(t *testing.T) {
	assert.Equal(t, "abc123", Normalize(decode(t, `{"file_hash":"abc123"}`)).Download.SHA256)
	assert.Equal(t, "", Normalize(decode(t, `{}`)).Download.SHA256)
}

func TestNormalize_NeverNull(t *testing.T) {
	by, err := json.Marshal(Normalize(decode(t, `{"app_id":"x"}`)))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(by, &doc))

	download := doc["download"].(map[string]interface{})
	metadata := doc["metadata"].(map[string]interface{})

	assert.Equal(t, "unknown", doc["status"])
	assert.Equal(t, "1.0.0", doc["version"])
	assert.Equal(t, map[string]interface{}{}, doc["compatibility"])
	assert.Equal(t, "", download["url"])
	assert.Equal(t, float64(0), download["size_bytes"])
	assert.Equal(t, "", download["sha256"])
	assert.Equal(t, []interface{}{}, download["mirrors"])
	assert.Equal(t, "MVH", metadata["translator"])
	assert.Equal(t, float64(0), metadata["progress_percent"])
	assert.Equal(t, float64(0), metadata["word_count"])

	_, hasName := doc["name"]
	assert.False(t, hasName, "absent identity fields are omitted")
}

func TestDecodeDetail_NotAnObject(t *testing.T) {
	for _, body := range []string{`[1,2,3]`, `null`, `"app"`, `42`} {
		_, err := DecodeDetail([]byte(body))
		assert.Error(t, err, body)
	}
}

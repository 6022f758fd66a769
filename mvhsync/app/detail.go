package app

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

const DetailSchema = "app"

// RawDetail is the record served by the detail endpoint. Identity fields are copied verbatim, everything else is
// optional and may arrive with any JSON type.
type RawDetail struct {
	AppID          json.RawMessage `json:"app_id"`
	Name           json.RawMessage `json:"name"`
	VietnameseName json.RawMessage `json:"vietnamese_name"`
	UpdatedAt      json.RawMessage `json:"updated_at"`

	Status        interface{}     `json:"status"`
	Version       interface{}     `json:"version"`
	DownloadURL   interface{}     `json:"download_url"`
	FileSize      interface{}     `json:"file_size"`
	FileHash      interface{}     `json:"file_hash"`
	Mirrors       interface{}     `json:"mirrors"`
	Compatibility json.RawMessage `json:"compatibility"`
	Translator    interface{}     `json:"translator"`
	Progress      interface{}     `json:"progress"`
	WordCount     interface{}     `json:"word_count"`
}

// Detail is the normalized per-app document written to apps/{id}.json.
type Detail struct {
	Schema         string          `json:"$schema"`
	ID             json.RawMessage `json:"id,omitempty"`
	Name           json.RawMessage `json:"name,omitempty"`
	VietnameseName json.RawMessage `json:"vietnamese_name,omitempty"`
	Status         string          `json:"status"`
	Version        string          `json:"version"`
	UpdatedAt      json.RawMessage `json:"updated_at,omitempty"`
	Download       Download        `json:"download"`
	Compatibility  json.RawMessage `json:"compatibility"`
	Metadata       Metadata        `json:"metadata"`
}

type Download struct {
	URL       string   `json:"url"`
	SizeBytes int64    `json:"size_bytes"`
	SHA256    string   `json:"sha256"`
	Mirrors   []string `json:"mirrors"`
}

type Metadata struct {
	Translator      string  `json:"translator"`
	ProgressPercent float64 `json:"progress_percent"`
	WordCount       int64   `json:"word_count"`
}

// DecodeDetail reads a detail endpoint body. The body must be a JSON object.
func DecodeDetail(body []byte) (RawDetail, error) {
	if !gjson.ParseBytes(body).IsObject() {
		return RawDetail{}, fmt.Errorf("detail response is not an object")
	}

	var raw RawDetail
	if err := json.Unmarshal(body, &raw); err != nil {
		return RawDetail{}, err
	}
	return raw, nil
}

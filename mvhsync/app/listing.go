package app

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/mvh/mvh-sync/mvhsync/syncerr"
)

// Listing is one record of the remote app list: the raw record plus the fields the sync needs from it.
type Listing struct {
	// ID is the textual form of app_id, used for the detail endpoint and the output file name
	ID    string
	HasID bool
	Name  string
	Raw   json.RawMessage
}

// ParseList splits the body of the list endpoint into listings, preserving order. The body must be a JSON array.
func ParseList(body []byte) ([]Listing, error) {
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, syncerr.ErrListNotArray
	}

	elements := result.Array()
	listings := make([]Listing, 0, len(elements))
	for _, element := range elements {
		id := element.Get("app_id")
		listings = append(listings, Listing{
			ID:    id.String(),
			HasID: id.Exists() && id.Type != gjson.Null,
			Name:  element.Get("name").String(),
			Raw:   json.RawMessage(element.Raw),
		})
	}
	return listings, nil
}

// Summary projects the listing into its index entry. Fields missing from the remote record are left out.
func (l Listing) Summary() Summary {
	record := gjson.ParseBytes(l.Raw)
	return Summary{
		ID:      rawField(record, "app_id"),
		Name:    rawField(record, "name"),
		Updated: rawField(record, "updated_at"),
	}
}

func rawField(record gjson.Result, path string) json.RawMessage {
	value := record.Get(path)
	if !value.Exists() {
		return nil
	}
	return json.RawMessage(value.Raw)
}

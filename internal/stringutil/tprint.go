package stringutil

import (
	"bytes"
	"text/template"
)

// Tprintf renders a string from a given template string and field values. A template that cannot be rendered
// yields an empty string.
func Tprintf(tmpl string, data map[string]interface{}) string {
	t, err := template.New("").Parse(tmpl)
	if err != nil {
		return ""
	}
	buf := &bytes.Buffer{}
	if err := t.Execute(buf, data); err != nil {
		return ""
	}
	return buf.String()
}

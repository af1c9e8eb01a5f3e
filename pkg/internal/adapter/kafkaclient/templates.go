package kafkaclient

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// renderFieldFromValue resolves a "{field}" placeholder against the JSON
// form of v.
func renderFieldFromValue(v any, placeholder string) (string, bool) {
	ph := strings.TrimSpace(placeholder)
	if !strings.HasPrefix(ph, "{") || !strings.HasSuffix(ph, "}") {
		return "", false
	}
	field := strings.TrimSpace(ph[1 : len(ph)-1])
	if field == "" {
		return "", false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return "", false
	}
	if raw, ok := m[field]; ok && raw != nil {
		return fmt.Sprint(raw), true
	}
	return "", false
}

func renderKeyFromTemplate(tmpl string, v any) []byte {
	t := strings.TrimSpace(tmpl)
	if t == "" {
		return nil
	}
	if val, ok := renderFieldFromValue(v, t); ok {
		return []byte(val)
	}
	return []byte(t)
}

type header struct{ Key, Value string }

// renderHeadersFromTemplates renders each template, sorted by key.
func renderHeadersFromTemplates(tmpls map[string]string, v any) []header {
	if len(tmpls) == 0 {
		return nil
	}
	out := make([]header, 0, len(tmpls))
	for k, t := range tmpls {
		val := t
		if vv, ok := renderFieldFromValue(v, t); ok {
			val = vv
		}
		out = append(out, header{Key: k, Value: val})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

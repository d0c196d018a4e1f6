package marketplace

import "encoding/json"

// Rich content keys that only carry layout or media and waste prompt tokens
var (
	OzonRichBlacklist = []string{
		"img", "imgLink", "size", "width", "height", "align", "contentAlign",
		"color", "src", "sources", "srcMobile", "reverse", "version", "id",
	}
	WBRichBlacklist = []string{"style", "image", "src", "preview", "version"}
)

// SanitizeRichJSON strips blacklisted keys at every depth and drops string array
// elements of at most one byte. Invalid JSON gives "Empty"
func SanitizeRichJSON(raw string, blacklist []string) string {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return "Empty"
	}
	drop := make(map[string]struct{}, len(blacklist))
	for _, k := range blacklist {
		drop[k] = struct{}{}
	}
	b, err := json.Marshal(sanitize(v, drop))
	if err != nil {
		return "Empty"
	}
	return string(b)
}

func sanitize(v any, drop map[string]struct{}) any {
	switch t := v.(type) {
	case []any:
		out := t[:0]
		for _, it := range t {
			if s, ok := it.(string); ok && len(s) <= 1 {
				continue
			}
			out = append(out, sanitize(it, drop))
		}
		return out
	case map[string]any:
		for k := range drop {
			delete(t, k)
		}
		for k, it := range t {
			t[k] = sanitize(it, drop)
		}
		return t
	}
	return v
}

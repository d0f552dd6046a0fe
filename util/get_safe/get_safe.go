package getsafe

// Tolerant accessors over open JSON payloads. Extraction walks payloads of
// unknown provenance, so every accessor returns a zero value instead of
// panicking on a missing key or an unexpected shape.

func String(payload map[string]any, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func Int(payload map[string]any, key string) int {
	if v, ok := payload[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

func Map(payload map[string]any, key string) map[string]any {
	if v, ok := payload[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}

func Slice(payload map[string]any, key string) []any {
	if v, ok := payload[key]; ok {
		if s, ok := v.([]any); ok {
			return s
		}
	}
	return nil
}

// Strings returns the string elements of a list value, skipping anything
// that is not a string.
func Strings(payload map[string]any, key string) []string {
	items := Slice(payload, key)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Maps returns the object elements of a list value, skipping anything that
// is not an object.
func Maps(payload map[string]any, key string) []map[string]any {
	items := Slice(payload, key)
	if items == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

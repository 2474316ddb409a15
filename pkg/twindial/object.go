package twindial

// Payload values come from two sources with different dynamic types: Go code
// configuring overrides (string, int, bool) and YAML/JSON fixtures (int,
// float64). The getters below tolerate all of them.

func getString(p Payload, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func getInt(p Payload, key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func getBool(p Payload, key string) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return false
}

func copyPayload(p Payload) Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

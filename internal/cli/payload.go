package cli

// Table builders read back the machine payload maps, so every accessor
// tolerates a missing or mistyped key and yields the zero value. The
// payloads are built in-process; nothing here sees re-parsed JSON.

func asMap(value any) map[string]any {
	m, _ := value.(map[string]any)
	return m
}

func asSlice(value any) []any {
	values, _ := value.([]any)
	return values
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asBool(value any) bool {
	b, _ := value.(bool)
	return b
}

func asInt(value any) int {
	n, _ := value.(int)
	return n
}

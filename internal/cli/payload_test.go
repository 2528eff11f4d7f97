package cli

import "testing"

func TestPayloadAccessorsTolerateMissingKeys(t *testing.T) {
	data := map[string]any{}
	if got := asString(data["name"]); got != "" {
		t.Fatalf("expected empty string for missing key, got %q", got)
	}
	if got := asInt(data["idx"]); got != 0 {
		t.Fatalf("expected 0 for missing key, got %d", got)
	}
	if asBool(data["mapped"]) {
		t.Fatal("expected false for missing key")
	}
	if asMap(data["banner"]) != nil {
		t.Fatal("expected nil map for missing key")
	}
	if asSlice(data["items"]) != nil {
		t.Fatal("expected nil slice for missing key")
	}
}

func TestPayloadAccessorsTolerateMistypedValues(t *testing.T) {
	if got := asString(42); got != "" {
		t.Fatalf("expected empty string for mistyped value, got %q", got)
	}
	if got := asInt("42"); got != 0 {
		t.Fatalf("expected 0 for mistyped value, got %d", got)
	}
	if got := asSlice("not a slice"); got != nil {
		t.Fatalf("expected nil for mistyped value, got %v", got)
	}
}

func TestPayloadAccessorsPassThrough(t *testing.T) {
	if got := asString("Nevada Theatre"); got != "Nevada Theatre" {
		t.Fatalf("got %q", got)
	}
	if got := asInt(7); got != 7 {
		t.Fatalf("got %d", got)
	}
	if !asBool(true) {
		t.Fatal("expected true")
	}
	if got := asMap(map[string]any{"k": "v"}); got["k"] != "v" {
		t.Fatalf("got %v", got)
	}
	if got := asSlice([]any{"a"}); len(got) != 1 {
		t.Fatalf("got %v", got)
	}
}

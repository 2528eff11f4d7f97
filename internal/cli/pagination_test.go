package cli

import "testing"

func TestPaginateItemsSetsTotalPages(t *testing.T) {
	data := map[string]any{
		"items": []any{"a", "b", "c", "d", "e"},
	}
	limit := 2

	paginateItems(data, &limit, 0)

	if got := asInt(data["total"]); got != 5 {
		t.Fatalf("expected total 5, got %v", data["total"])
	}
	if got := asInt(data["count"]); got != 2 {
		t.Fatalf("expected count 2, got %v", data["count"])
	}
	if got := asInt(data["total_pages"]); got != 3 {
		t.Fatalf("expected total_pages 3, got %v", data["total_pages"])
	}
	if got := asInt(data["next_offset"]); got != 2 {
		t.Fatalf("expected next_offset 2, got %v", data["next_offset"])
	}
}

func TestPaginateItemsOmitsTotalPagesWithoutPositiveLimit(t *testing.T) {
	dataWithoutLimit := map[string]any{
		"items": []any{"a", "b", "c"},
	}
	paginateItems(dataWithoutLimit, nil, 0)
	if _, ok := dataWithoutLimit["total_pages"]; ok {
		t.Fatalf("expected total_pages to be omitted when limit is not set")
	}

	dataWithZeroLimit := map[string]any{
		"items": []any{"a", "b", "c"},
	}
	zeroLimit := 0
	paginateItems(dataWithZeroLimit, &zeroLimit, 0)
	if _, ok := dataWithZeroLimit["total_pages"]; ok {
		t.Fatalf("expected total_pages to be omitted when limit <= 0")
	}
}

func TestPaginateItemsClampsOffsetPastEnd(t *testing.T) {
	data := map[string]any{
		"items": []any{"a", "b"},
	}
	paginateItems(data, nil, 9)

	if got := asInt(data["count"]); got != 0 {
		t.Fatalf("expected empty window, got count %v", data["count"])
	}
	if got := asInt(data["total"]); got != 2 {
		t.Fatalf("expected total 2, got %v", data["total"])
	}
	if _, ok := data["next_offset"]; ok {
		t.Fatal("expected no next_offset past the end")
	}
}

func TestResolvePageOffset(t *testing.T) {
	if _, err := resolvePageOffset(2, true, 1, true, 2, true); err == nil {
		t.Fatal("expected error when both --offset and --page are set")
	}
	if _, err := resolvePageOffset(0, false, 0, false, 2, true); err == nil {
		t.Fatal("expected error when --page is set without --limit")
	}
	if _, err := resolvePageOffset(2, true, 0, false, 0, true); err == nil {
		t.Fatal("expected error when --page < 1")
	}
	got, err := resolvePageOffset(2, true, 0, false, 3, true)
	if err != nil || got != 4 {
		t.Fatalf("expected offset 4, got %d err %v", got, err)
	}
	got, err = resolvePageOffset(0, false, -5, true, 0, false)
	if err != nil || got != 0 {
		t.Fatalf("negative offset should clamp to 0, got %d err %v", got, err)
	}
}

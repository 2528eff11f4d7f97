package cli

import "fmt"

// Every listing command exposes its rows under "items"; pagination
// bookkeeping sits beside them in the same payload map.
const itemsKey = "items"

func resolvePageOffset(limit int, limitSet bool, offset int, offsetSet bool, page int, pageSet bool) (int, error) {
	if !pageSet {
		return max(offset, 0), nil
	}
	if offsetSet {
		return 0, fmt.Errorf("use either --offset or --page, not both")
	}
	if !limitSet || limit <= 0 {
		return 0, fmt.Errorf("--page requires --limit > 0")
	}
	if page < 1 {
		return 0, fmt.Errorf("--page must be >= 1")
	}
	return (page - 1) * limit, nil
}

func paginateItems(data map[string]any, limit *int, offset int) {
	rows := asSlice(data[itemsKey])
	total := len(rows)
	if offset < 0 {
		offset = 0
	}
	start := min(offset, total)
	end := total
	if limit != nil {
		switch {
		case *limit < 0:
			end = start
		case start+*limit < end:
			end = start + *limit
		}
	}

	data[itemsKey] = rows[start:end]
	data["total"] = total
	data["count"] = end - start
	data["offset"] = offset
	delete(data, "total_pages")
	delete(data, "next_offset")
	if limit != nil {
		data["limit"] = *limit
		if *limit > 0 {
			data["total_pages"] = (total + *limit - 1) / *limit
		}
	}
	if end < total {
		data["next_offset"] = end
	}
}

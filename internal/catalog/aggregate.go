package catalog

import "github.com/oweller/ipteav/internal/domain"

// AggregateCategories deduplicates raw backend category records.
//
// Records are visited in response order. The key is
// normalizedName + "-" + contentType; the first record seen for a key
// seeds the aggregate (id and names are never updated by later
// matches), and every subsequent match adds its itemCount. Output
// order is first-seen order, so the result is deterministic for a
// fixed response order.
func AggregateCategories(raw []domain.RawCategory) []domain.CategoryAggregate {
	seen := make(map[string]int, len(raw))
	out := make([]domain.CategoryAggregate, 0, len(raw))

	for _, r := range raw {
		key := r.NormalizedName + "-" + string(r.ContentType)
		if idx, ok := seen[key]; ok {
			out[idx].ItemCount += r.ItemCount
			continue
		}
		seen[key] = len(out)
		out = append(out, domain.CategoryAggregate{
			ID:             r.ID,
			NormalizedName: r.NormalizedName,
			OriginalName:   r.OriginalName,
			ContentType:    r.ContentType,
			ItemCount:      r.ItemCount,
		})
	}
	return out
}

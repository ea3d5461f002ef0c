package catalog

import "velora-gallery/pkg/models"

// Resolve maps a requested, possibly stale category key to the current
// catalog entry. An exact match wins; otherwise keys are compared with their
// numeric ordering prefix stripped on both sides. Returns nil when nothing
// matches; the caller renders an explicit empty state.
func Resolve(cat *models.Catalog, requestedKey string) *models.Category {
	if entry, ok := cat.Get(requestedKey); ok {
		return entry
	}

	want := StripOrderPrefix(requestedKey)
	for _, key := range cat.Keys() {
		if StripOrderPrefix(key) == want {
			entry, _ := cat.Get(key)
			return entry
		}
	}
	return nil
}

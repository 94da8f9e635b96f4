// Package diff computes which freshly fetched listings are genuinely new
// relative to a filter's stored snapshot.
package diff

import (
	"time"

	"yad2watch/internal/model"
)

// Apply compares the previous state against a fresh fetch and returns the
// next state plus the listings whose id was absent before, in fetch order.
//
// Membership is strict: an id present before and now is carried over with
// its original FirstSeen and the fresh mutable fields; an id absent from the
// fetch is dropped, so a listing that disappears and later reappears counts
// as new again. When the same id occurs more than once in one fetch the
// later occurrence wins for field values and it counts once.
func Apply(prev model.FilterState, fresh []model.Listing, now time.Time) (model.FilterState, []model.Listing) {
	deduped := dedupe(fresh)

	next := model.FilterState{
		Listings:  make(map[string]model.Listing, len(deduped)),
		UpdatedAt: now.UTC(),
	}

	var added []model.Listing
	for _, l := range deduped {
		if old, ok := prev.Listings[l.ID]; ok {
			l.FirstSeen = old.FirstSeen
		} else {
			l.FirstSeen = now.UTC()
			added = append(added, l)
		}
		next.Listings[l.ID] = l
	}
	return next, added
}

// dedupe collapses duplicate ids to the last occurrence while keeping the
// position of the first, so page-overlap duplicates neither reorder nor
// double-count.
func dedupe(fresh []model.Listing) []model.Listing {
	index := make(map[string]int, len(fresh))
	var out []model.Listing
	for _, l := range fresh {
		if i, ok := index[l.ID]; ok {
			out[i] = l
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}

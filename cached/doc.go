// Package cached provides lazily computed, per-instance attributes with group invalidation.
//
// A slot is declared once per type, at package level, against the type's Registry.
// Its value is computed the first time it is read on an instance and kept in that
// instance's Store until it is busted:
//
//	type Track struct {
//	    cached.Store
//	    Artist, Title string
//	}
//
//	var trackSlots = cached.NewRegistry[*Track]("track")
//
//	var trackInfo = cached.Declare(trackSlots, "info", func(t *Track) (Info, error) {
//	    return fetchInfo(t.Artist, t.Title)
//	})
//
//	info, err := trackInfo.Get(track)   // computes
//	info, err = trackInfo.Get(track)    // stored value
//	trackSlots.BustAll(track, "info")   // busts everything but info
//
// Rules:
//   - compute runs at most once per instance and slot between two busts.
//   - A failing compute stores nothing; the next read tries again.
//   - Busting a slot that holds no value, or a name the type never declared, does nothing.
//   - BustAll reaches every slot of the type, including those of parents given with WithParents.
//
// The package is a memoizer, not a cache: there is no expiry and no eviction.
package cached

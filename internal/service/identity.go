package service

// remoteIndex is the two-level lookup used to match local entities to
// existing remote records: stable ID first, natural key as the fallback
// for records created before stable IDs existed.
type remoteIndex[E any] struct {
	byID  map[string]E
	byKey map[string]E
}

// newRemoteIndex builds the lookup from a fetched remote snapshot.
//
// When legacy duplicates share a natural key under different primary
// keys, the first record encountered claims the natural-key slot and
// later ones are ignored. This "first wins" rule is deliberate and kept
// from the original behavior; it makes resolution deterministic for a
// given fetch order without judging which duplicate is correct.
func newRemoteIndex[E any](records []E, col collection[E]) *remoteIndex[E] {
	ix := &remoteIndex[E]{
		byID:  make(map[string]E, len(records)),
		byKey: make(map[string]E, len(records)),
	}

	for _, rec := range records {
		if id := col.id(rec); id != "" {
			if _, ok := ix.byID[id]; !ok {
				ix.byID[id] = rec
			}
		}
		k := col.key(rec)
		if _, ok := ix.byKey[k]; !ok {
			ix.byKey[k] = rec
		}
	}

	return ix
}

// resolve maps a local entity to the remote record it corresponds to,
// preferring an exact stable-ID match over the natural-key fallback.
func (ix *remoteIndex[E]) resolve(item E, col collection[E]) (E, bool) {
	if id := col.id(item); id != "" {
		if rec, ok := ix.byID[id]; ok {
			return rec, true
		}
	}
	rec, ok := ix.byKey[col.key(item)]
	return rec, ok
}

// upsertOp pairs an entity with the primary key of the remote record it
// matched. An empty remoteID means no match exists and the executor must
// create the record, supplying the entity's stable ID as its primary key.
type upsertOp[E any] struct {
	item     E
	remoteID string
}

// buildUpsertPlan resolves every entity of a reconciled snapshot against
// the remote index, producing the create/update decisions for the
// executor.
func buildUpsertPlan[E any](items []E, ix *remoteIndex[E], col collection[E]) []upsertOp[E] {
	plan := make([]upsertOp[E], 0, len(items))
	for _, item := range items {
		op := upsertOp[E]{item: item}
		if match, ok := ix.resolve(item, col); ok {
			op.remoteID = col.id(match)
		}
		plan = append(plan, op)
	}
	return plan
}

package service

import "time"

// mergeSnapshots reconciles a local and a remote snapshot of one
// collection into a single set holding exactly one entity per natural
// key present in either input.
//
// The result is seeded with every local entity. A remote entity then
// either fills a key the local side does not have, or replaces the local
// entity only when its clock is strictly greater. Equal and missing
// timestamps keep the local entity, so the local side wins every tie.
//
// A win replaces the whole entity; fields from the two sides are never
// combined. Output order follows first appearance of each key, but
// callers must not rely on it.
func mergeSnapshots[E any](local, remote []E, key func(E) string, clock func(E) time.Time) []E {
	result := make(map[string]E, len(local)+len(remote))
	order := make([]string, 0, len(local)+len(remote))

	for _, item := range local {
		k := key(item)
		if _, ok := result[k]; !ok {
			order = append(order, k)
		}
		result[k] = item
	}

	for _, item := range remote {
		k := key(item)
		existing, ok := result[k]
		if !ok {
			result[k] = item
			order = append(order, k)
			continue
		}
		if clock(item).After(clock(existing)) {
			result[k] = item
		}
	}

	merged := make([]E, 0, len(order))
	for _, k := range order {
		merged = append(merged, result[k])
	}
	return merged
}

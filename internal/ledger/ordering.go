package ledger

import "sort"

// ReorderCategories replaces the category display order. The new order must
// contain exactly the categories currently referenced by envelopes — no
// silent drops or additions.
func (s *Service) ReorderCategories(newOrder []string) error {
	if !s.store.Ready() {
		return ErrNotReady
	}
	current := s.store.Categories()
	if !sameSet(current, newOrder) {
		return ValidationError{Field: "order", Reason: "must contain exactly the current categories"}
	}
	s.store.SetCategoryOrder(newOrder)
	return nil
}

// ReorderEnvelopesWithinCategory reassigns order indexes to the category's
// envelopes to match the given relative order. The global index counter is
// shared across categories, so only the index slots this category already
// holds are redistributed; envelopes elsewhere keep their positions.
func (s *Service) ReorderEnvelopesWithinCategory(category string, newOrder []string) error {
	if !s.store.Ready() {
		return ErrNotReady
	}
	envs := s.store.EnvelopesInCategory(category)
	if len(envs) == 0 {
		return notFound("category", category)
	}

	currentIDs := make([]string, len(envs))
	slots := make([]int, len(envs))
	for i, e := range envs {
		currentIDs[i] = e.ID
		slots[i] = e.OrderIndex
	}
	if !sameSet(currentIDs, newOrder) {
		return ValidationError{Field: "order", Reason: "must contain exactly the category's envelopes"}
	}
	sort.Ints(slots)

	for i, envID := range newOrder {
		env, _ := s.store.Envelope(envID)
		env.OrderIndex = slots[i]
		s.store.PutEnvelope(env)
	}
	return nil
}

// sameSet reports whether a and b hold the same elements, ignoring order.
// Duplicates are rejected by the length check plus map lookups.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	if len(seen) != len(a) {
		return false
	}
	matched := make(map[string]bool, len(b))
	for _, v := range b {
		if !seen[v] || matched[v] {
			return false
		}
		matched[v] = true
	}
	return true
}

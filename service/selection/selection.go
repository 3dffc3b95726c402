// Package selection holds the pinned-products selection of one edit view.
//
// The selection is an ordered list of products with no two entries sharing an
// ID. Slot assignment places a product at a grid index and then compacts the
// list, so slot indexes beyond the current length append.
package selection

import "dashboard.GO/model/catalog"

// Selection is not safe for concurrent use; the owning editor serializes access.
type Selection struct {
	items []catalog.Product
}

func New() *Selection {
	return &Selection{}
}

// From builds a selection from products, keeping the first occurrence of each ID.
func From(products []catalog.Product) *Selection {
	s := New()
	for _, p := range products {
		s.Add(p)
	}
	return s
}

// Add appends p unless an entry with the same ID exists.
func (s *Selection) Add(p catalog.Product) {
	if s.indexOf(p.ID) >= 0 {
		return
	}
	s.items = append(s.items, p)
}

// Remove drops the entry with id, if any.
func (s *Selection) Remove(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// AssignToSlot completes a drag onto slot. Any prior occurrence of p is removed
// first, then p overwrites whatever occupies slot. A slot past the end extends
// the sequence before compaction.
func (s *Selection) AssignToSlot(p catalog.Product, slot int) {
	if slot < 0 {
		slot = 0
	}
	s.Remove(p.ID)

	sparse := make([]*catalog.Product, len(s.items))
	for i := range s.items {
		sparse[i] = &s.items[i]
	}
	for len(sparse) <= slot {
		sparse = append(sparse, nil)
	}
	placed := p
	sparse[slot] = &placed

	s.items = compact(sparse)
}

// compact drops empty slots and any ID already seen earlier in the sequence.
func compact(sparse []*catalog.Product) []catalog.Product {
	seen := make(map[string]struct{}, len(sparse))
	out := make([]catalog.Product, 0, len(sparse))
	for _, p := range sparse {
		if p == nil {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, *p)
	}
	return out
}

// Reset empties the selection.
func (s *Selection) Reset() {
	s.items = nil
}

// Products returns a copy of the entries in order.
func (s *Selection) Products() []catalog.Product {
	out := make([]catalog.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Selection) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

func (s *Selection) Len() int {
	return len(s.items)
}

// Slots lays the selection over n grid positions; empty positions are nil.
// Entries beyond n are not shown.
func (s *Selection) Slots(n int) []*catalog.Product {
	slots := make([]*catalog.Product, n)
	for i := 0; i < n && i < len(s.items); i++ {
		p := s.items[i]
		slots[i] = &p
	}
	return slots
}

func (s *Selection) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

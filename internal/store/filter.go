package store

import (
	"sync"

	"estatecli/internal/model"
)

const defaultSort = "newest"

// FilterStore is purely local state: the current listing filter plus the
// price/size bounds derived from the loaded property set. It never touches
// the network.
type FilterStore struct {
	mu sync.Mutex
	f  model.PropertyFilter

	minPrice, maxPrice float64
	minSize, maxSize   float64
}

func NewFilterStore() *FilterStore {
	return &FilterStore{f: model.PropertyFilter{Sort: defaultSort}}
}

// Filter returns the current filter value.
func (s *FilterStore) Filter() model.PropertyFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f
}

// Bounds returns the derived price and size extremes.
func (s *FilterStore) Bounds() (minPrice, maxPrice, minSize, maxSize float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minPrice, s.maxPrice, s.minSize, s.maxSize
}

// DeriveBounds recomputes the range defaults from a loaded property set.
// An empty set leaves the previous bounds untouched.
func (s *FilterStore) DeriveBounds(props []model.Property) {
	if len(props) == 0 {
		return
	}
	minP, maxP := props[0].Price, props[0].Price
	minS, maxS := props[0].Size, props[0].Size
	for _, p := range props[1:] {
		if p.Price < minP {
			minP = p.Price
		}
		if p.Price > maxP {
			maxP = p.Price
		}
		if p.Size < minS {
			minS = p.Size
		}
		if p.Size > maxS {
			maxS = p.Size
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.minPrice, s.maxPrice = minP, maxP
	s.minSize, s.maxSize = minS, maxS
}

func (s *FilterStore) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.Search = q
}

func (s *FilterStore) SetRooms(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.Rooms = n
}

func (s *FilterStore) SetPropertyType(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.PropertyType = t
}

func (s *FilterStore) SetTransactionType(t model.TransactionType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.TransactionType = t
}

func (s *FilterStore) SetStatus(st model.PropertyStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.Status = st
}

// SetPriceRange clamps the selection into the derived bounds when known.
func (s *FilterStore) SetPriceRange(lo, hi float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxPrice > 0 {
		if lo < s.minPrice {
			lo = s.minPrice
		}
		if hi > s.maxPrice || hi == 0 {
			hi = s.maxPrice
		}
	}
	s.f.MinPrice, s.f.MaxPrice = lo, hi
}

func (s *FilterStore) SetSizeRange(lo, hi float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxSize > 0 {
		if lo < s.minSize {
			lo = s.minSize
		}
		if hi > s.maxSize || hi == 0 {
			hi = s.maxSize
		}
	}
	s.f.MinSize, s.f.MaxSize = lo, hi
}

func (s *FilterStore) SetSort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == "" {
		key = defaultSort
	}
	s.f.Sort = key
}

// Reset restores the default filter, keeping derived bounds.
func (s *FilterStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f = model.PropertyFilter{Sort: defaultSort}
}

package store

import "sync"

// CartLine mirrors one persisted cart row for display purposes.
type CartLine struct {
	ID            string  `json:"id"`
	CartID        string  `json:"cart_id"`
	ProdVariantID string  `json:"prod_variant_id"`
	Title         string  `json:"title"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Size          *string `json:"size"`
	Color         *string `json:"color"`
	Unit          *string `json:"unit"`
	StockQty      int     `json:"stock_qty"`
}

// CartStore is the in-memory mirror of a session's cart, used for immediate
// feedback while the matching persistence call runs. It is a display cache,
// not a source of truth: no persistence, no reconciliation beyond what
// callers trigger via SetCartItems.
type CartStore struct {
	mu     sync.Mutex
	cartID string
	lines  []CartLine
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddToCart appends a line. The store's cart id is seeded from the first
// line added; later adds never overwrite an already-set id.
func (s *CartStore) AddToCart(line CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	if s.cartID == "" {
		s.cartID = line.CartID
	}
}

// RemoveFromCart drops the line with the given id. No-op if absent.
func (s *CartStore) RemoveFromCart(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
}

// IncreaseItemQuantity bumps the line's quantity by one. No-op if absent.
func (s *CartStore) IncreaseItemQuantity(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines[i].Quantity++
		}
	}
}

// DecreaseItemQuantity lowers the line's quantity by one and drops lines
// that reach zero, mirroring the server's delete-on-zero behavior.
func (s *CartStore) DecreaseItemQuantity(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ID == lineID {
			l.Quantity--
		}
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	s.lines = kept
}

// SetCartItems replaces the whole list, seeding the cart id from the first
// line only when it was previously unset.
func (s *CartStore) SetCartItems(lines []CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append([]CartLine(nil), lines...)
	if s.cartID == "" && len(lines) > 0 {
		s.cartID = lines[0].CartID
	}
}

func (s *CartStore) SetCartID(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartID = cartID
}

func (s *CartStore) CartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartID
}

// Items returns a copy of the current lines.
func (s *CartStore) Items() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartLine(nil), s.lines...)
}

// Total sums price times quantity over all lines.
func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, l := range s.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

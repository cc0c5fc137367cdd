package cart

import "sync"

// Line is a single (product, size, color) entry with quantity. Name and
// Price are carried from the product at add time so totals and the
// checkout message do not re-read the catalog.
type Line struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Quantity    int     `json:"quantity"`
}

// Ledger holds one shopper's working selection. Every mutation replaces
// the line slice wholesale, so a concurrent reader never observes a
// partially applied update.
type Ledger struct {
	mu    sync.RWMutex
	lines []Line
}

// NewLedger returns an empty cart ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

func sameKey(a Line, productID uint, size, color string) bool {
	return a.ProductID == productID && a.Size == size && a.Color == color
}

// Add merges the incoming line into an existing one matching on
// (product id, size, color) by summing quantities, or appends a new line.
// Stock is not checked at this layer.
func (l *Ledger) Add(line Line) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]Line, len(l.lines))
	copy(next, l.lines)

	for i := range next {
		if sameKey(next[i], line.ProductID, line.Size, line.Color) {
			next[i].Quantity += line.Quantity
			l.lines = next
			return
		}
	}

	l.lines = append(next, line)
}

// UpdateQuantity replaces the quantity of the matching line. The caller is
// responsible for clamping; out-of-range values are not rejected here.
// No-op when no line matches.
func (l *Ledger) UpdateQuantity(productID uint, size, color string, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]Line, len(l.lines))
	copy(next, l.lines)

	for i := range next {
		if sameKey(next[i], productID, size, color) {
			next[i].Quantity = quantity
			break
		}
	}

	l.lines = next
}

// Remove deletes the matching line. No-op when absent.
func (l *Ledger) Remove(productID uint, size, color string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]Line, 0, len(l.lines))
	for _, line := range l.lines {
		if !sameKey(line, productID, size, color) {
			next = append(next, line)
		}
	}

	l.lines = next
}

// Clear empties all lines
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
}

// Lines returns the current line list. The returned slice is never
// mutated afterwards.
func (l *Ledger) Lines() []Line {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lines
}

// Count returns the total item count across all lines
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, line := range l.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal returns the sum of (unit price x quantity) over all lines.
// Shipping is always free and contributes nothing.
func (l *Ledger) Subtotal() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	subtotal := 0.0
	for _, line := range l.lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	return subtotal
}

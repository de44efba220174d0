package catalog

import "abarrotes-backend/internal/domain"

// DefaultPageSize matches the storefront grid.
const DefaultPageSize = 12

// Window is the "visible count" pagination cursor: it only ever grows by
// one page at a time and resets whenever any filter or search input changes.
type Window struct {
	size    int
	visible int
}

func NewWindow(size int) *Window {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Window{size: size, visible: size}
}

func (w *Window) Visible() int { return w.visible }

// Grow reveals one more page.
func (w *Window) Grow() { w.visible += w.size }

// Reset returns to the first page.
func (w *Window) Reset() { w.visible = w.size }

// Cut returns the visible prefix of the filtered list and whether more
// items remain beyond the window.
func (w *Window) Cut(products []domain.Product) ([]domain.Product, bool) {
	if len(products) <= w.visible {
		return products, false
	}
	return products[:w.visible], true
}

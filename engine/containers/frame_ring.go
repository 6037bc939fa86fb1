package containers

import "errors"

// FrameRing is a fixed-size ring of per-frame values. Unlike a queue it is
// never consumed: element i serves every frame whose index is congruent to
// i modulo the ring size, so a ring of binding sets sized to the number of
// frames in flight rotates automatically as the frame index advances.
type FrameRing[T any] struct {
	items []T
}

// Create a new FrameRing holding the given items, in frame order.
func NewFrameRing[T any](items []T) (*FrameRing[T], error) {
	if len(items) == 0 {
		return nil, errors.New("frame ring cannot be empty")
	}
	ring := &FrameRing[T]{
		items: make([]T, len(items)),
	}
	copy(ring.items, items)
	return ring, nil
}

// ForFrame returns the item owned by the given frame index.
func (fr *FrameRing[T]) ForFrame(frameIndex uint32) T {
	return fr.items[int(frameIndex)%len(fr.items)]
}

// Len returns the ring size, i.e. the frame multiplicity it was built for.
func (fr *FrameRing[T]) Len() int {
	return len(fr.items)
}

// Items returns the items in frame order.
func (fr *FrameRing[T]) Items() []T {
	return fr.items
}

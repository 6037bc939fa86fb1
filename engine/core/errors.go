package core

import (
	"errors"
)

var (
	// ErrPoolExhausted is returned when an allocation request exceeds the
	// remaining capacity of a binding pool for any resource kind, or would
	// exceed its maximum set count. Raised at allocation time only; a pool
	// never grows, so this indicates a static configuration error.
	ErrPoolExhausted = errors.New("binding pool exhausted")
	// ErrSlotKindMismatch is returned when a resource reference's kind does
	// not match the declared kind of its target slot.
	ErrSlotKindMismatch = errors.New("resource kind does not match slot declaration")
	// ErrUnknownSlot is returned when an update targets a slot index absent
	// from the set's layout.
	ErrUnknownSlot = errors.New("slot not declared in binding set layout")
	// ErrPoolDestroyed is returned for any operation on a pool, or on a set
	// owned by a pool, after the pool has been destroyed.
	ErrPoolDestroyed = errors.New("binding pool already destroyed")
	// ErrSetNotConfigured is returned when a set is bound before every slot
	// declared in its layout has received a resource reference.
	ErrSetNotConfigured = errors.New("binding set has unconfigured slots")
	// ErrIndividualFreeDisabled is returned when a single set is freed from
	// a pool that was not created with AllowIndividualFree.
	ErrIndividualFreeDisabled = errors.New("pool does not permit freeing individual sets")
)

package metadata

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/vulcano/engine/core"
)

/**
 * @brief Creation-time parameters of a binding pool. Capacity is fixed for
 * the pool's entire lifetime; there is no resize operation.
 */
type BindingPoolConfig struct {
	/** @brief Number of bindable elements reserved per resource kind. */
	CapacityByKind map[ResourceKind]uint32
	/** @brief Hard cap on the total number of sets the pool may produce. */
	MaxSets uint32
	/**
	 * @brief Permits freeing single sets back to the pool. Disabled by
	 * default: with the per-frame set scheme no descriptor is ever freed
	 * out from under an in-flight command stream.
	 */
	AllowIndividualFree bool
}

/**
 * @brief A fixed-capacity allocator of binding-slot storage, partitioned by
 * resource kind. The pool exclusively owns every binding set carved from
 * it; destroying the pool frees them all, and no set survives its pool.
 */
type BindingPool struct {
	/** @brief Generated identifier, used for logging and lookup. */
	ID string
	/** @brief The immutable creation parameters. */
	Config *BindingPoolConfig

	remaining map[ResourceKind]uint32
	setsInUse uint32
	sets      []*BindingSet
	destroyed bool

	/** @brief Backend descriptor pool state. */
	InternalData interface{}
}

// NewBindingPool builds the pool-side ledger. The renderer backend reserves
// the actual descriptor storage afterwards.
func NewBindingPool(config *BindingPoolConfig) (*BindingPool, error) {
	if config == nil || config.MaxSets < 1 {
		return nil, fmt.Errorf("binding pool requires MaxSets >= 1")
	}
	remaining := make(map[ResourceKind]uint32, len(config.CapacityByKind))
	for kind, capacity := range config.CapacityByKind {
		remaining[kind] = capacity
	}
	return &BindingPool{
		ID:        uuid.New().String(),
		Config:    config,
		remaining: remaining,
	}, nil
}

// Remaining reports the unreserved element capacity for a kind.
func (pool *BindingPool) Remaining(kind ResourceKind) uint32 {
	return pool.remaining[kind]
}

// SetsInUse reports how many sets are currently allocated from the pool.
func (pool *BindingPool) SetsInUse() uint32 {
	return pool.setsInUse
}

func (pool *BindingPool) Destroyed() bool {
	return pool.destroyed
}

// Reserve claims capacity for count sets of the given layout, all-or-nothing.
// On failure the ledger is untouched and core.ErrPoolExhausted is returned.
// Demand is totalled in 64 bits so an oversized request can never wrap the
// 32-bit ledger and slip past the capacity check.
func (pool *BindingPool) Reserve(layout []SlotDeclaration, count uint32) error {
	if pool.destroyed {
		return core.ErrPoolDestroyed
	}
	if uint64(pool.setsInUse)+uint64(count) > uint64(pool.Config.MaxSets) {
		return fmt.Errorf("%w: %d sets requested, %d of %d in use",
			core.ErrPoolExhausted, count, pool.setsInUse, pool.Config.MaxSets)
	}
	demand := LayoutDemand(layout)
	for kind, perSet := range demand {
		available := uint64(pool.remaining[kind])
		// perSet <= available first, so the product cannot overflow uint64.
		if perSet > available || perSet*uint64(count) > available {
			return fmt.Errorf("%w: kind %s needs %d elements per set for %d sets, %d remaining",
				core.ErrPoolExhausted, kind, perSet, count, pool.remaining[kind])
		}
	}
	// Request fits; commit in one pass. The products fit in 32 bits because
	// each one was checked against the remaining capacity above.
	for kind, perSet := range demand {
		pool.remaining[kind] -= uint32(perSet) * count
	}
	pool.setsInUse += count
	return nil
}

// Release returns one set's worth of the layout's demand to the ledger.
// Only meaningful on pools created with AllowIndividualFree.
func (pool *BindingPool) Release(layout []SlotDeclaration) {
	for kind, perSet := range LayoutDemand(layout) {
		pool.remaining[kind] += uint32(perSet)
	}
	pool.setsInUse--
}

// Adopt records ownership of freshly allocated sets.
func (pool *BindingPool) Adopt(sets []*BindingSet) {
	for _, set := range sets {
		set.Owner = pool
		set.State = BINDING_SET_STATE_ALLOCATED
	}
	pool.sets = append(pool.sets, sets...)
}

// Disown removes a single set from the pool after an individual free.
func (pool *BindingPool) Disown(set *BindingSet) {
	for i := range pool.sets {
		if pool.sets[i] == set {
			pool.sets = append(pool.sets[:i], pool.sets[i+1:]...)
			break
		}
	}
	set.invalidate()
}

// Sets returns every set the pool currently owns.
func (pool *BindingPool) Sets() []*BindingSet {
	return pool.sets
}

// MarkDestroyed transitions the pool and every owned set to their terminal
// states and severs the ownership links, so nothing can reach the backend
// through them afterwards.
func (pool *BindingPool) MarkDestroyed() {
	for _, set := range pool.sets {
		set.invalidate()
	}
	pool.sets = nil
	pool.setsInUse = 0
	pool.destroyed = true
	pool.InternalData = nil
}

/**
 * @brief A fixed-layout bundle of resource references, bound as a unit
 * before draw/dispatch. One instance exists per frame-in-flight, all
 * sharing the same layout. Owned exclusively by the pool that produced it.
 */
type BindingSet struct {
	/** @brief Generated identifier, used for logging. */
	ID string
	/** @brief The ordered slot declarations, shared by the whole batch. */
	Layout []SlotDeclaration
	/** @brief The internal state of the set. */
	State BindingSetState
	/** @brief The pool this set was carved from. Nil once freed. */
	Owner *BindingPool

	references map[uint32]*ResourceReference

	/** @brief Backend descriptor set state. */
	InternalData interface{}
}

// NewBindingSet builds the frontend record for one allocated set.
func NewBindingSet(layout []SlotDeclaration) *BindingSet {
	return &BindingSet{
		ID:         uuid.New().String(),
		Layout:     layout,
		State:      BINDING_SET_STATE_UNALLOCATED,
		references: make(map[uint32]*ResourceReference, len(layout)),
	}
}

// Declaration looks up a slot's declaration within the set's layout.
func (set *BindingSet) Declaration(slot uint32) (*SlotDeclaration, bool) {
	for i := range set.Layout {
		if set.Layout[i].Slot == slot {
			return &set.Layout[i], true
		}
	}
	return nil, false
}

// Reference returns the last reference written to a slot, if any.
func (set *BindingSet) Reference(slot uint32) (*ResourceReference, bool) {
	ref, ok := set.references[slot]
	return ref, ok
}

// SetReference records a slot's reference and advances the set to
// Configured once every declared slot holds one. A later write to the same
// slot overwrites; there is no accumulation.
func (set *BindingSet) SetReference(slot uint32, ref *ResourceReference) {
	set.references[slot] = ref
	if set.State == BINDING_SET_STATE_ALLOCATED && set.IsConfigured() {
		set.State = BINDING_SET_STATE_CONFIGURED
	}
}

// IsConfigured reports whether every declared slot holds a reference.
func (set *BindingSet) IsConfigured() bool {
	for i := range set.Layout {
		if _, ok := set.references[set.Layout[i].Slot]; !ok {
			return false
		}
	}
	return true
}

// DynamicSlotCount counts the slots bound with offsets supplied at bind time.
func (set *BindingSet) DynamicSlotCount() uint32 {
	var n uint32
	for i := range set.Layout {
		if set.Layout[i].Dynamic {
			n += set.Layout[i].Count
		}
	}
	return n
}

func (set *BindingSet) invalidate() {
	set.State = BINDING_SET_STATE_FREED
	set.Owner = nil
	set.InternalData = nil
}

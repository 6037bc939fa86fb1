package systems

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/vulcano/engine/containers"
	"github.com/spaghettifunk/vulcano/engine/core"
	"github.com/spaghettifunk/vulcano/engine/renderer"
	"github.com/spaghettifunk/vulcano/engine/renderer/metadata"
)

/** @brief Configuration for the binding system. */
type BindingSystemConfig struct {
	/** @brief The frame multiplicity: one binding set per frame in flight. */
	MaxFramesInFlight uint32 `toml:"max_frames_in_flight"`
	/** @brief The maximum number of pools the system will track. */
	MaxPoolCount uint32 `toml:"max_pool_count"`
	/** @brief Element capacity per resource kind name for the default pool. */
	PoolCapacity map[string]uint32 `toml:"pool_capacity"`
	/** @brief Maximum sets of the default pool. */
	PoolMaxSets uint32 `toml:"pool_max_sets"`
	/** @brief Permits freeing single sets from the default pool. */
	AllowIndividualFree bool `toml:"allow_individual_free"`
}

// LoadBindingSystemConfig reads a TOML configuration file. The binding
// runtime itself persists nothing; this is startup configuration only.
func LoadBindingSystemConfig(path string) (*BindingSystemConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading binding config: %w", err)
	}
	config := &BindingSystemConfig{}
	if err := toml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("parsing binding config: %w", err)
	}
	return config, nil
}

// PoolConfig resolves the configured kind names into a pool configuration.
func (config *BindingSystemConfig) PoolConfig() (*metadata.BindingPoolConfig, error) {
	capacity := make(map[metadata.ResourceKind]uint32, len(config.PoolCapacity))
	for name, count := range config.PoolCapacity {
		kind, err := metadata.ParseResourceKind(name)
		if err != nil {
			return nil, err
		}
		capacity[kind] = count
	}
	return &metadata.BindingPoolConfig{
		CapacityByKind:      capacity,
		MaxSets:             config.PoolMaxSets,
		AllowIndividualFree: config.AllowIndividualFree,
	}, nil
}

// BindingSystem manages how shader-visible binding slots are connected to
// GPU resources across the frames in flight: it carves fixed-capacity
// pools, allocates one binding set per frame out of them, populates the
// sets' slots with resource references, and records the right frame's set
// into a command stream ahead of each draw. Setup (pool creation,
// allocation, slot updates) runs single-threaded before steady-state
// rendering; per-frame binding is a pure read of the configured state.
type BindingSystem struct {
	// This system's configuration.
	Config *BindingSystemConfig
	// A lookup table for pool id->pool.
	Pools map[string]*metadata.BindingPool
	// sub systems
	renderer *renderer.Renderer
}

func NewBindingSystem(config *BindingSystemConfig, r *renderer.Renderer) (*BindingSystem, error) {
	// Verify configuration.
	if config.MaxFramesInFlight == 0 {
		err := fmt.Errorf("NewBindingSystem - config.MaxFramesInFlight must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	if config.MaxPoolCount == 0 {
		config.MaxPoolCount = 1
	}
	core.MetricsInitialize()

	return &BindingSystem{
		Config:   config,
		Pools:    make(map[string]*metadata.BindingPool),
		renderer: r,
	}, nil
}

// CreatePool reserves a fixed-capacity pool of binding-slot storage. The
// capacity is final: no resize path exists and allocations never grow it.
func (bindingSystem *BindingSystem) CreatePool(config *metadata.BindingPoolConfig) (*metadata.BindingPool, error) {
	if uint32(len(bindingSystem.Pools)) >= bindingSystem.Config.MaxPoolCount {
		err := fmt.Errorf("binding system already tracks %d pools", len(bindingSystem.Pools))
		core.LogError(err.Error())
		return nil, err
	}
	pool, err := metadata.NewBindingPool(config)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if err := bindingSystem.renderer.BindingPoolCreate(pool); err != nil {
		return nil, err
	}
	bindingSystem.Pools[pool.ID] = pool
	core.LogInfo("created binding pool %s (max sets %d)", pool.ID, config.MaxSets)
	return pool, nil
}

// DestroyPool is the single bulk teardown: every set the pool owns is
// freed with it, transitioned to its terminal state and severed from the
// backend, so no operation on a stale set can reach the device afterwards.
func (bindingSystem *BindingSystem) DestroyPool(pool *metadata.BindingPool) error {
	if pool.Destroyed() {
		return core.ErrPoolDestroyed
	}
	bindingSystem.renderer.BindingPoolDestroy(pool)
	pool.MarkDestroyed()
	delete(bindingSystem.Pools, pool.ID)
	core.LogInfo("destroyed binding pool %s", pool.ID)
	return nil
}

// AllocateSets carves count sets sharing the given layout out of the pool,
// all-or-nothing: on any failure the pool's capacity is left unchanged and
// no set exists. Callers are expected to allocate exactly one set per
// frame in flight, up front, never per draw; AllocateFrameSets wraps that
// pattern.
func (bindingSystem *BindingSystem) AllocateSets(pool *metadata.BindingPool, layout []metadata.SlotDeclaration, count uint32) ([]*metadata.BindingSet, error) {
	if count < 1 {
		return nil, fmt.Errorf("allocation count must be at least 1")
	}
	if err := metadata.ValidateLayout(layout); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if pool.Destroyed() {
		return nil, core.ErrPoolDestroyed
	}

	if err := pool.Reserve(layout, count); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sets := make([]*metadata.BindingSet, count)
	for i := range sets {
		sets[i] = metadata.NewBindingSet(layout)
	}
	if err := bindingSystem.renderer.BindingSetsAllocate(pool, sets); err != nil {
		// Return the reservation so the failure leaves no trace.
		for i := uint32(0); i < count; i++ {
			pool.Release(layout)
		}
		return nil, err
	}
	pool.Adopt(sets)
	core.MetricsSetsAllocated(count)
	return sets, nil
}

// AllocateFrameSets allocates one set per frame in flight and returns them
// as a ring indexed by frame number.
func (bindingSystem *BindingSystem) AllocateFrameSets(pool *metadata.BindingPool, layout []metadata.SlotDeclaration) (*containers.FrameRing[*metadata.BindingSet], error) {
	sets, err := bindingSystem.AllocateSets(pool, layout, bindingSystem.Config.MaxFramesInFlight)
	if err != nil {
		return nil, err
	}
	return containers.NewFrameRing(sets)
}

// FreeSet returns a single set to its pool. Only legal on pools created
// with AllowIndividualFree; the default configuration keeps it disabled so
// no descriptor is ever freed out from under an in-flight command stream.
func (bindingSystem *BindingSystem) FreeSet(pool *metadata.BindingPool, set *metadata.BindingSet) error {
	if pool.Destroyed() {
		return core.ErrPoolDestroyed
	}
	if !pool.Config.AllowIndividualFree {
		return core.ErrIndividualFreeDisabled
	}
	if set.Owner != pool {
		return fmt.Errorf("binding set %s is not owned by pool %s", set.ID, pool.ID)
	}
	if err := bindingSystem.renderer.BindingSetFree(pool, set); err != nil {
		return err
	}
	pool.Release(set.Layout)
	pool.Disown(set)
	return nil
}

// Update writes a resource reference into one slot of a set, making that
// slot readable by shader code at the declared position. The slot must
// appear in the set's layout and the reference's kind must match the
// declaration; failed updates leave the slot's prior state untouched.
// Repeating an identical update is idempotent and a later update
// overwrites, there is no accumulation.
func (bindingSystem *BindingSystem) Update(set *metadata.BindingSet, slot uint32, reference *metadata.ResourceReference) error {
	if set.Owner == nil || set.State == metadata.BINDING_SET_STATE_FREED {
		return core.ErrPoolDestroyed
	}
	declaration, ok := set.Declaration(slot)
	if !ok {
		core.LogError("update of set %s targets undeclared slot %d", set.ID, slot)
		return core.ErrUnknownSlot
	}
	if err := reference.MatchesSlot(declaration); err != nil {
		core.LogError("update of set %s slot %d: %s reference for %s slot", set.ID, slot, reference.Kind(), declaration.Kind)
		return err
	}
	if err := bindingSystem.renderer.BindingSetUpdate(set, slot, reference); err != nil {
		return err
	}
	set.SetReference(slot, reference)
	core.MetricsSlotWrite()
	return nil
}

// Bind records, into the given command stream, the instruction that makes
// every slot of the given sets visible to the draw/dispatch work recorded
// after it, until another bind supersedes the same set-index range. It
// must be recorded strictly before the draw it is meant to affect; binding
// after the draw is not supported. Sets must be fully configured: binding
// a slot that never received a reference would expose undefined memory to
// shaders, so it is rejected here rather than forwarded.
func (bindingSystem *BindingSystem) Bind(stream *metadata.CommandStream, bindPoint metadata.BindPoint, pipelineLayout *metadata.PipelineLayoutRef, firstSet uint32, sets []*metadata.BindingSet, dynamicOffsets []uint32) error {
	for _, set := range sets {
		if set.Owner == nil || set.State == metadata.BINDING_SET_STATE_FREED {
			return core.ErrPoolDestroyed
		}
		if !set.IsConfigured() {
			core.LogError("binding set %s has unconfigured slots", set.ID)
			return core.ErrSetNotConfigured
		}
	}
	if err := bindingSystem.renderer.BindingSetsBind(stream, bindPoint, pipelineLayout, firstSet, sets, dynamicOffsets); err != nil {
		return err
	}
	for _, set := range sets {
		set.State = metadata.BINDING_SET_STATE_BOUND
	}
	return nil
}

// BindForFrame selects the binding set owned by the given frame index from
// the ring and records its bind. This is the steady-state per-frame call:
// a pure read of already-configured state, once per recorded frame.
func (bindingSystem *BindingSystem) BindForFrame(stream *metadata.CommandStream, bindPoint metadata.BindPoint, pipelineLayout *metadata.PipelineLayoutRef, firstSet uint32, ring *containers.FrameRing[*metadata.BindingSet], frameIndex uint32, dynamicOffsets []uint32) error {
	set := ring.ForFrame(frameIndex)
	return bindingSystem.Bind(stream, bindPoint, pipelineLayout, firstSet, []*metadata.BindingSet{set}, dynamicOffsets)
}

/**
 * @brief Shuts down the binding system, destroying every pool still alive
 * and with them every binding set they own.
 */
func (bindingSystem *BindingSystem) Shutdown() error {
	for _, pool := range bindingSystem.Pools {
		if err := bindingSystem.DestroyPool(pool); err != nil {
			core.LogError(err.Error())
			return err
		}
	}
	return nil
}

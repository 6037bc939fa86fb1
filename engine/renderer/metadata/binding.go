package metadata

import "fmt"

/**
 * @brief The kind of resource a binding slot exposes to shader code.
 */
type ResourceKind int

const (
	/** @brief A buffer-backed slot (uniform data). */
	RESOURCE_KIND_BUFFER ResourceKind = iota
	/** @brief An image-backed slot (sampled image plus sampler). */
	RESOURCE_KIND_IMAGE
	/** @brief A texel-view slot (formatted view over buffer memory). */
	RESOURCE_KIND_TEXEL_VIEW
)

func (k ResourceKind) String() string {
	switch k {
	case RESOURCE_KIND_BUFFER:
		return "buffer"
	case RESOURCE_KIND_IMAGE:
		return "image"
	case RESOURCE_KIND_TEXEL_VIEW:
		return "texel_view"
	}
	return "unknown"
}

// ParseResourceKind resolves a kind by its configuration name.
func ParseResourceKind(name string) (ResourceKind, error) {
	switch name {
	case "buffer":
		return RESOURCE_KIND_BUFFER, nil
	case "image":
		return RESOURCE_KIND_IMAGE, nil
	case "texel_view":
		return RESOURCE_KIND_TEXEL_VIEW, nil
	}
	return 0, fmt.Errorf("unknown resource kind %q", name)
}

/**
 * @brief A single slot declaration within a binding set layout.
 * Immutable once a set has been allocated against the layout.
 */
type SlotDeclaration struct {
	/** @brief The slot index, unique within the layout. */
	Slot uint32
	/** @brief The kind of resource this slot accepts. */
	Kind ResourceKind
	/** @brief The number of elements in the slot. Must be at least 1. */
	Count uint32
	/** @brief Marks a Buffer slot as dynamic, i.e. offset at bind time. */
	Dynamic bool
}

// ValidateLayout checks that a layout is well formed: non-empty, element
// counts of at least 1, unique slot indices, Dynamic only on Buffer slots.
func ValidateLayout(layout []SlotDeclaration) error {
	if len(layout) == 0 {
		return fmt.Errorf("binding set layout must declare at least one slot")
	}
	for i := range layout {
		if layout[i].Count < 1 {
			return fmt.Errorf("slot %d declares element count %d, must be >= 1", layout[i].Slot, layout[i].Count)
		}
		if layout[i].Dynamic && layout[i].Kind != RESOURCE_KIND_BUFFER {
			return fmt.Errorf("slot %d is dynamic but of kind %s", layout[i].Slot, layout[i].Kind)
		}
		// Slot indices must be unique within the layout.
		for j := i + 1; j < len(layout); j++ {
			if layout[i].Slot == layout[j].Slot {
				return fmt.Errorf("slot index %d declared more than once", layout[i].Slot)
			}
		}
	}
	return nil
}

// LayoutDemand totals the element counts of a layout per resource kind.
// The totals are 64-bit: a layout of several maximal 32-bit counts must not
// wrap to a small demand.
func LayoutDemand(layout []SlotDeclaration) map[ResourceKind]uint64 {
	demand := make(map[ResourceKind]uint64)
	for i := range layout {
		demand[layout[i].Kind] += uint64(layout[i].Count)
	}
	return demand
}

/**
 * @brief The pipeline stage class a bind instruction targets.
 */
type BindPoint int

const (
	BIND_POINT_GRAPHICS BindPoint = iota
	BIND_POINT_COMPUTE
)

/**
 * @brief Represents the current state of a binding set.
 */
type BindingSetState int

const (
	/** @brief The set has not been produced by a pool yet. */
	BINDING_SET_STATE_UNALLOCATED BindingSetState = iota
	/** @brief The set exists but has unconfigured slots. */
	BINDING_SET_STATE_ALLOCATED
	/** @brief Every declared slot holds a resource reference. */
	BINDING_SET_STATE_CONFIGURED
	/** @brief The set has been recorded into at least one command stream. */
	BINDING_SET_STATE_BOUND
	/** @brief The owning pool has been destroyed. Terminal. */
	BINDING_SET_STATE_FREED
)

/**
 * @brief An opaque reference to a pipeline layout owned by the pipeline
 * subsystem. The renderer backend interprets InternalData.
 */
type PipelineLayoutRef struct {
	InternalData interface{}
}

/**
 * @brief An opaque reference to a command stream being recorded. The
 * renderer backend interprets InternalData.
 */
type CommandStream struct {
	InternalData interface{}
}

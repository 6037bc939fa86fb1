package metadata

import (
	"github.com/spaghettifunk/vulcano/engine/core"
)

/**
 * @brief Length marker meaning "from the given offset to the end of the
 * resource". Consumers must resolve it exactly as if the caller had passed
 * the resource's remaining byte length; the Vulkan backend maps it to
 * VK_WHOLE_SIZE.
 */
const WholeSize = ^uint64(0)

/**
 * @brief A byte range of a buffer resource.
 */
type BufferBinding struct {
	/** @brief Backend buffer handle, owned by the resource subsystem. */
	Handle interface{}
	/** @brief Byte offset into the buffer. */
	Offset uint64
	/** @brief Byte length, or WholeSize. */
	Size uint64
}

/**
 * @brief An image view plus the sampler it is read through.
 */
type ImageBinding struct {
	/** @brief Backend image view handle, owned by the resource subsystem. */
	View interface{}
	/** @brief Backend sampler handle. */
	Sampler interface{}
}

/**
 * @brief A formatted texel view over buffer memory.
 */
type TexelViewBinding struct {
	/** @brief Backend buffer view handle, owned by the resource subsystem. */
	View interface{}
}

/**
 * @brief A reference to the resource data a slot should expose. Tagged
 * variant over {Buffer, Image, TexelView}: the payload fields are private
 * and only the matching constructor can populate them, so exactly one
 * payload can ever be present.
 */
type ResourceReference struct {
	kind      ResourceKind
	buffer    *BufferBinding
	image     *ImageBinding
	texelView *TexelViewBinding
}

// NewBufferReference builds a Buffer reference for the given byte range.
// Pass WholeSize to reference everything from offset to the buffer's end.
func NewBufferReference(handle interface{}, offset, size uint64) *ResourceReference {
	return &ResourceReference{
		kind: RESOURCE_KIND_BUFFER,
		buffer: &BufferBinding{
			Handle: handle,
			Offset: offset,
			Size:   size,
		},
	}
}

// NewImageReference builds an Image reference from a view and sampler.
func NewImageReference(view, sampler interface{}) *ResourceReference {
	return &ResourceReference{
		kind: RESOURCE_KIND_IMAGE,
		image: &ImageBinding{
			View:    view,
			Sampler: sampler,
		},
	}
}

// NewTexelViewReference builds a TexelView reference from a buffer view.
func NewTexelViewReference(view interface{}) *ResourceReference {
	return &ResourceReference{
		kind:      RESOURCE_KIND_TEXEL_VIEW,
		texelView: &TexelViewBinding{View: view},
	}
}

func (r *ResourceReference) Kind() ResourceKind {
	return r.kind
}

// Buffer returns the buffer payload, or false for any other kind.
func (r *ResourceReference) Buffer() (*BufferBinding, bool) {
	return r.buffer, r.kind == RESOURCE_KIND_BUFFER
}

// Image returns the image payload, or false for any other kind.
func (r *ResourceReference) Image() (*ImageBinding, bool) {
	return r.image, r.kind == RESOURCE_KIND_IMAGE
}

// TexelView returns the texel-view payload, or false for any other kind.
func (r *ResourceReference) TexelView() (*TexelViewBinding, bool) {
	return r.texelView, r.kind == RESOURCE_KIND_TEXEL_VIEW
}

// MatchesSlot verifies the reference against a slot declaration.
func (r *ResourceReference) MatchesSlot(decl *SlotDeclaration) error {
	if r.kind != decl.Kind {
		return core.ErrSlotKindMismatch
	}
	return nil
}

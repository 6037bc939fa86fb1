package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/vulcano/engine/renderer/metadata"
)

/**
 * @brief Backend state of a binding pool: the descriptor pool plus every
 * set layout created for allocations out of it. Layouts are destroyed
 * together with the pool.
 */
type VulkanBindingPool struct {
	Handle     vk.DescriptorPool
	SetLayouts []vk.DescriptorSetLayout
}

/**
 * @brief Backend state of a single binding set.
 */
type VulkanBindingSet struct {
	Handle vk.DescriptorSet
	Layout vk.DescriptorSetLayout
}

// descriptorTypeForSlot maps a slot declaration to its descriptor type.
func descriptorTypeForSlot(decl *metadata.SlotDeclaration) vk.DescriptorType {
	switch decl.Kind {
	case metadata.RESOURCE_KIND_BUFFER:
		if decl.Dynamic {
			return vk.DescriptorTypeUniformBufferDynamic
		}
		return vk.DescriptorTypeUniformBuffer
	case metadata.RESOURCE_KIND_IMAGE:
		return vk.DescriptorTypeCombinedImageSampler
	case metadata.RESOURCE_KIND_TEXEL_VIEW:
		return vk.DescriptorTypeUniformTexelBuffer
	}
	return vk.DescriptorTypeUniformBuffer
}

// poolSizes expands the per-kind capacities into descriptor pool sizes.
// Buffer capacity is mirrored onto the dynamic uniform type so that a pool
// sized for N buffer elements can serve any static/dynamic mix up to N of
// each; the frontend ledger is what actually enforces the kind budget.
func poolSizes(config *metadata.BindingPoolConfig) []vk.DescriptorPoolSize {
	sizes := make([]vk.DescriptorPoolSize, 0, len(config.CapacityByKind)+1)
	for kind, capacity := range config.CapacityByKind {
		if capacity == 0 {
			continue
		}
		switch kind {
		case metadata.RESOURCE_KIND_BUFFER:
			sizes = append(sizes,
				vk.DescriptorPoolSize{
					Type:            vk.DescriptorTypeUniformBuffer,
					DescriptorCount: capacity,
				},
				vk.DescriptorPoolSize{
					Type:            vk.DescriptorTypeUniformBufferDynamic,
					DescriptorCount: capacity,
				})
		case metadata.RESOURCE_KIND_IMAGE:
			sizes = append(sizes, vk.DescriptorPoolSize{
				Type:            vk.DescriptorTypeCombinedImageSampler,
				DescriptorCount: capacity,
			})
		case metadata.RESOURCE_KIND_TEXEL_VIEW:
			sizes = append(sizes, vk.DescriptorPoolSize{
				Type:            vk.DescriptorTypeUniformTexelBuffer,
				DescriptorCount: capacity,
			})
		}
	}
	return sizes
}

// newSetLayout creates the descriptor set layout shared by one allocation
// batch. Slots are visible to all stages; stage narrowing belongs to the
// pipeline subsystem.
func newSetLayout(context *VulkanContext, layout []metadata.SlotDeclaration) (vk.DescriptorSetLayout, error) {
	bindings := make([]vk.DescriptorSetLayoutBinding, len(layout))
	for i := range layout {
		if layout[i].Slot >= VULKAN_MAX_BINDING_SLOTS {
			return nil, fmt.Errorf("slot index %d exceeds the maximum of %d", layout[i].Slot, VULKAN_MAX_BINDING_SLOTS-1)
		}
		bindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         layout[i].Slot,
			DescriptorType:  descriptorTypeForSlot(&layout[i]),
			DescriptorCount: layout[i].Count,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageAll),
		}
	}

	layoutCreateInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}

	var setLayout vk.DescriptorSetLayout
	if res := vk.CreateDescriptorSetLayout(context.Device, &layoutCreateInfo, context.Allocator, &setLayout); res != vk.Success {
		return nil, resultError(res, "vkCreateDescriptorSetLayout")
	}
	return setLayout, nil
}

// buildWrite translates one slot update into a descriptor write. The
// reference payload was already validated against the slot's kind by the
// frontend; here only the handle assertions remain. A slot update covers
// every element of the slot, so an array slot (Count > 1) never carries
// undefined elements after its single update.
func buildWrite(set *VulkanBindingSet, decl *metadata.SlotDeclaration, reference *metadata.ResourceReference) (vk.WriteDescriptorSet, error) {
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          set.Handle,
		DstBinding:      decl.Slot,
		DstArrayElement: 0,
		DescriptorType:  descriptorTypeForSlot(decl),
		DescriptorCount: decl.Count,
	}
	elements := int(decl.Count)

	switch reference.Kind() {
	case metadata.RESOURCE_KIND_BUFFER:
		binding, _ := reference.Buffer()
		buffer, ok := binding.Handle.(vk.Buffer)
		if !ok {
			return write, fmt.Errorf("buffer reference does not hold a vk.Buffer handle")
		}
		size := vk.DeviceSize(binding.Size)
		if binding.Size == metadata.WholeSize {
			size = vk.DeviceSize(vk.WholeSize)
		}
		info := vk.DescriptorBufferInfo{
			Buffer: buffer,
			Offset: vk.DeviceSize(binding.Offset),
			Range:  size,
		}
		infos := make([]vk.DescriptorBufferInfo, elements)
		for i := range infos {
			infos[i] = info
		}
		write.PBufferInfo = infos
	case metadata.RESOURCE_KIND_IMAGE:
		binding, _ := reference.Image()
		view, ok := binding.View.(vk.ImageView)
		if !ok {
			return write, fmt.Errorf("image reference does not hold a vk.ImageView handle")
		}
		sampler, ok := binding.Sampler.(vk.Sampler)
		if !ok {
			return write, fmt.Errorf("image reference does not hold a vk.Sampler handle")
		}
		info := vk.DescriptorImageInfo{
			Sampler:     sampler,
			ImageView:   view,
			ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
		}
		infos := make([]vk.DescriptorImageInfo, elements)
		for i := range infos {
			infos[i] = info
		}
		write.PImageInfo = infos
	case metadata.RESOURCE_KIND_TEXEL_VIEW:
		binding, _ := reference.TexelView()
		view, ok := binding.View.(vk.BufferView)
		if !ok {
			return write, fmt.Errorf("texel view reference does not hold a vk.BufferView handle")
		}
		views := make([]vk.BufferView, elements)
		for i := range views {
			views[i] = view
		}
		write.PTexelBufferView = views
	}

	return write, nil
}

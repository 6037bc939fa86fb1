package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/vulcano/engine/core"
	"github.com/spaghettifunk/vulcano/engine/renderer/metadata"
)

// VulkanRenderer implements renderer.RendererBackend on top of a device
// owned by the embedding engine. All precondition validation happened in
// the frontend by the time a call lands here.
type VulkanRenderer struct {
	context *VulkanContext
	locks   *VulkanLockPool
	appName string
}

func New(context *VulkanContext) *VulkanRenderer {
	if context.FramesInFlight == 0 {
		context.FramesInFlight = VULKAN_DEFAULT_FRAMES_IN_FLIGHT
	}
	return &VulkanRenderer{
		context: context,
		locks:   NewVulkanLockPool(),
	}
}

func (vr *VulkanRenderer) Initialize(appName string) error {
	if vr.context.Device == nil {
		err := fmt.Errorf("vulkan binding backend requires a logical device")
		core.LogError(err.Error())
		return err
	}
	vr.appName = appName
	core.LogInfo("vulkan binding backend initialized for '%s' with %d frames in flight", appName, vr.context.FramesInFlight)
	return nil
}

func (vr *VulkanRenderer) Shutdown() error {
	core.LogInfo("vulkan binding backend shutting down")
	return nil
}

func (vr *VulkanRenderer) BeginFrame(deltaTime float64) error {
	return nil
}

// EndFrame rotates the frame index; the next recorded frame owns the next
// binding set in every frame ring.
func (vr *VulkanRenderer) EndFrame(deltaTime float64) error {
	vr.context.CurrentFrame = (vr.context.CurrentFrame + 1) % vr.context.FramesInFlight
	core.MetricsFrameEnd()
	return nil
}

func (vr *VulkanRenderer) CurrentFrame() uint32 {
	return vr.context.CurrentFrame
}

func (vr *VulkanRenderer) BindingPoolCreate(pool *metadata.BindingPool) error {
	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       pool.Config.MaxSets,
		PoolSizeCount: 0,
	}
	sizes := poolSizes(pool.Config)
	createInfo.PoolSizeCount = uint32(len(sizes))
	createInfo.PPoolSizes = sizes
	if pool.Config.AllowIndividualFree {
		createInfo.Flags = vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit)
	}

	return vr.locks.SafeCall(DescriptorManagement, func() error {
		var handle vk.DescriptorPool
		if res := vk.CreateDescriptorPool(vr.context.Device, &createInfo, vr.context.Allocator, &handle); res != vk.Success {
			err := resultError(res, "vkCreateDescriptorPool")
			core.LogError(err.Error())
			return err
		}
		pool.InternalData = &VulkanBindingPool{Handle: handle}
		core.LogDebug("created descriptor pool %s (max sets %d)", pool.ID, pool.Config.MaxSets)
		return nil
	})
}

func (vr *VulkanRenderer) BindingPoolDestroy(pool *metadata.BindingPool) {
	internal, ok := pool.InternalData.(*VulkanBindingPool)
	if !ok {
		return
	}
	_ = vr.locks.SafeCall(DescriptorManagement, func() error {
		for _, layout := range internal.SetLayouts {
			vk.DestroyDescriptorSetLayout(vr.context.Device, layout, vr.context.Allocator)
		}
		// Destroying the descriptor pool frees every set carved from it.
		vk.DestroyDescriptorPool(vr.context.Device, internal.Handle, vr.context.Allocator)
		return nil
	})
	core.LogDebug("destroyed descriptor pool %s", pool.ID)
}

func (vr *VulkanRenderer) BindingSetsAllocate(pool *metadata.BindingPool, sets []*metadata.BindingSet) error {
	internal, ok := pool.InternalData.(*VulkanBindingPool)
	if !ok {
		return fmt.Errorf("binding pool %s has no descriptor pool", pool.ID)
	}
	if len(sets) == 0 {
		return nil
	}

	return vr.locks.SafeCall(DescriptorManagement, func() error {
		// Every set in the batch shares one layout.
		setLayout, err := newSetLayout(vr.context, sets[0].Layout)
		if err != nil {
			core.LogError(err.Error())
			return err
		}

		layouts := make([]vk.DescriptorSetLayout, len(sets))
		for i := range layouts {
			layouts[i] = setLayout
		}
		allocateInfo := vk.DescriptorSetAllocateInfo{
			SType:              vk.StructureTypeDescriptorSetAllocateInfo,
			DescriptorPool:     internal.Handle,
			DescriptorSetCount: uint32(len(sets)),
			PSetLayouts:        layouts,
		}

		handles := make([]vk.DescriptorSet, len(sets))
		if res := vk.AllocateDescriptorSets(vr.context.Device, &allocateInfo, &handles[0]); res != vk.Success {
			vk.DestroyDescriptorSetLayout(vr.context.Device, setLayout, vr.context.Allocator)
			err := resultError(res, "vkAllocateDescriptorSets")
			core.LogError(err.Error())
			return err
		}

		internal.SetLayouts = append(internal.SetLayouts, setLayout)
		for i := range sets {
			sets[i].InternalData = &VulkanBindingSet{
				Handle: handles[i],
				Layout: setLayout,
			}
		}
		return nil
	})
}

func (vr *VulkanRenderer) BindingSetFree(pool *metadata.BindingPool, set *metadata.BindingSet) error {
	poolInternal, ok := pool.InternalData.(*VulkanBindingPool)
	if !ok {
		return fmt.Errorf("binding pool %s has no descriptor pool", pool.ID)
	}
	setInternal, ok := set.InternalData.(*VulkanBindingSet)
	if !ok {
		return fmt.Errorf("binding set %s has no descriptor set", set.ID)
	}
	return vr.locks.SafeCall(DescriptorManagement, func() error {
		if res := vk.FreeDescriptorSets(vr.context.Device, poolInternal.Handle, 1, &setInternal.Handle); res != vk.Success {
			err := resultError(res, "vkFreeDescriptorSets")
			core.LogError(err.Error())
			return err
		}
		return nil
	})
}

func (vr *VulkanRenderer) BindingSetUpdate(set *metadata.BindingSet, slot uint32, reference *metadata.ResourceReference) error {
	internal, ok := set.InternalData.(*VulkanBindingSet)
	if !ok {
		return fmt.Errorf("binding set %s has no descriptor set", set.ID)
	}
	decl, ok := set.Declaration(slot)
	if !ok {
		return core.ErrUnknownSlot
	}

	write, err := buildWrite(internal, decl, reference)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	return vr.locks.SafeCall(DescriptorManagement, func() error {
		vk.UpdateDescriptorSets(vr.context.Device, 1, []vk.WriteDescriptorSet{write}, 0, nil)
		return nil
	})
}

// BindingSetsBind records the bind instruction into the given command
// stream. No set/layout compatibility validation happens here; callers
// must record the bind strictly before the draw or dispatch it affects.
// Streams recording different frames may call this concurrently without
// synchronization because each frame owns a disjoint set.
func (vr *VulkanRenderer) BindingSetsBind(stream *metadata.CommandStream, bindPoint metadata.BindPoint, pipelineLayout *metadata.PipelineLayoutRef, firstSet uint32, sets []*metadata.BindingSet, dynamicOffsets []uint32) error {
	commandBuffer, ok := stream.InternalData.(*VulkanCommandBuffer)
	if !ok {
		return fmt.Errorf("command stream does not wrap a vulkan command buffer")
	}
	layout, ok := pipelineLayout.InternalData.(vk.PipelineLayout)
	if !ok {
		return fmt.Errorf("pipeline layout reference does not hold a vk.PipelineLayout")
	}

	handles := make([]vk.DescriptorSet, len(sets))
	for i := range sets {
		internal, ok := sets[i].InternalData.(*VulkanBindingSet)
		if !ok {
			return fmt.Errorf("binding set %s has no descriptor set", sets[i].ID)
		}
		handles[i] = internal.Handle
	}

	point := vk.PipelineBindPointGraphics
	if bindPoint == metadata.BIND_POINT_COMPUTE {
		point = vk.PipelineBindPointCompute
	}

	vk.CmdBindDescriptorSets(commandBuffer.Handle, point, layout, firstSet, uint32(len(handles)), handles, uint32(len(dynamicOffsets)), dynamicOffsets)
	core.MetricsBindRecorded()
	return nil
}

// IsMultithreaded reports that per-frame command streams may record
// concurrently; the disjointness of per-frame binding sets is what makes
// this safe, not any locking here.
func (vr *VulkanRenderer) IsMultithreaded() bool {
	return true
}

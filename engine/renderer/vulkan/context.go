package vulkan

import (
	vk "github.com/goki/vulkan"
)

// VulkanContext carries the device-side state this subsystem operates
// against. Instance, device and swapchain creation belong to the embedding
// engine; it populates the context once at startup and keeps ownership of
// every handle in it.
type VulkanContext struct {
	Device    vk.Device
	Allocator *vk.AllocationCallbacks

	// The swapchain's frame multiplicity. One binding set exists per frame
	// in flight, so consumption of frame N's bindings by the GPU never
	// overlaps the CPU reconfiguring frame N's buffer contents.
	FramesInFlight uint32
	CurrentFrame   uint32
}

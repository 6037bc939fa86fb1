package vulkan

import "testing"

func TestStreamWrapsCommandBuffer(t *testing.T) {
	cb := &VulkanCommandBuffer{State: COMMAND_BUFFER_STATE_READY}
	stream := cb.Stream()
	if got, ok := stream.InternalData.(*VulkanCommandBuffer); !ok || got != cb {
		t.Error("stream must wrap the command buffer it was created from")
	}
}

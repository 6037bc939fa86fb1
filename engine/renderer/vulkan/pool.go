package vulkan

import "sync"

type LockGroup string

const (
	DescriptorManagement    LockGroup = "descriptor_management"
	CommandBufferManagement LockGroup = "command_buffer_management"
)

// Mutex pool. Descriptor pool mutation and command buffer allocation go
// through vkCreate*/vkAllocate* calls that must not race on the same
// device-level object; binding recording itself needs no lock because each
// frame's set is disjoint from every other frame's.
type VulkanLockPool struct {
	locks map[LockGroup]*sync.Mutex
	mu    sync.Mutex // Protects access to the locks map
}

func NewVulkanLockPool() *VulkanLockPool {
	return &VulkanLockPool{
		locks: make(map[LockGroup]*sync.Mutex),
	}
}

// Get or create a mutex for a specific group
func (vs *VulkanLockPool) setLock(group LockGroup) *sync.Mutex {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if _, exists := vs.locks[group]; !exists {
		vs.locks[group] = &sync.Mutex{}
	}
	vs.locks[group].Lock()

	return vs.locks[group]
}

func (vs *VulkanLockPool) SafeCall(group LockGroup, fn func() error) error {
	l := vs.setLock(group)
	defer l.Unlock()

	return fn()
}

package renderer

import (
	"github.com/spaghettifunk/vulcano/engine/renderer/metadata"
)

// RendererBackend is the device-facing half of the binding subsystem. The
// frontend performs all precondition validation and ledger bookkeeping; a
// backend only translates the already validated operations into API calls.
type RendererBackend interface {
	Initialize(appName string) error
	Shutdown() error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	BindingPoolCreate(pool *metadata.BindingPool) error
	BindingPoolDestroy(pool *metadata.BindingPool)
	BindingSetsAllocate(pool *metadata.BindingPool, sets []*metadata.BindingSet) error
	BindingSetFree(pool *metadata.BindingPool, set *metadata.BindingSet) error
	BindingSetUpdate(set *metadata.BindingSet, slot uint32, reference *metadata.ResourceReference) error
	BindingSetsBind(stream *metadata.CommandStream, bindPoint metadata.BindPoint, pipelineLayout *metadata.PipelineLayoutRef, firstSet uint32, sets []*metadata.BindingSet, dynamicOffsets []uint32) error
	IsMultithreaded() bool
}

type Renderer struct {
	backend RendererBackend
}

// New wraps a backend. The Vulkan backend lives in renderer/vulkan; tests
// substitute their own.
func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string) error {
	return r.backend.Initialize(appName)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	return r.backend.BeginFrame(deltaTime)
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	return r.backend.EndFrame(deltaTime)
}

func (r *Renderer) BindingPoolCreate(pool *metadata.BindingPool) error {
	return r.backend.BindingPoolCreate(pool)
}

func (r *Renderer) BindingPoolDestroy(pool *metadata.BindingPool) {
	r.backend.BindingPoolDestroy(pool)
}

func (r *Renderer) BindingSetsAllocate(pool *metadata.BindingPool, sets []*metadata.BindingSet) error {
	return r.backend.BindingSetsAllocate(pool, sets)
}

func (r *Renderer) BindingSetFree(pool *metadata.BindingPool, set *metadata.BindingSet) error {
	return r.backend.BindingSetFree(pool, set)
}

func (r *Renderer) BindingSetUpdate(set *metadata.BindingSet, slot uint32, reference *metadata.ResourceReference) error {
	return r.backend.BindingSetUpdate(set, slot, reference)
}

func (r *Renderer) BindingSetsBind(stream *metadata.CommandStream, bindPoint metadata.BindPoint, pipelineLayout *metadata.PipelineLayoutRef, firstSet uint32, sets []*metadata.BindingSet, dynamicOffsets []uint32) error {
	return r.backend.BindingSetsBind(stream, bindPoint, pipelineLayout, firstSet, sets, dynamicOffsets)
}

func (r *Renderer) IsMultithreaded() bool {
	return r.backend.IsMultithreaded()
}

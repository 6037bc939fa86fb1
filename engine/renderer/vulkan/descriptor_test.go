package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/vulcano/engine/renderer/metadata"
)

func TestBuildWriteCoversArraySlots(t *testing.T) {
	set := &VulkanBindingSet{}

	var buffer vk.Buffer
	decl := &metadata.SlotDeclaration{Slot: 2, Kind: metadata.RESOURCE_KIND_BUFFER, Count: 4}
	write, err := buildWrite(set, decl, metadata.NewBufferReference(buffer, 64, metadata.WholeSize))
	if err != nil {
		t.Fatal(err)
	}
	if write.DescriptorCount != 4 || len(write.PBufferInfo) != 4 {
		t.Fatalf("buffer write covers %d of %d elements", len(write.PBufferInfo), write.DescriptorCount)
	}
	for _, info := range write.PBufferInfo {
		if info.Offset != 64 || info.Range != vk.DeviceSize(vk.WholeSize) {
			t.Errorf("element info = %+v, want offset 64 and whole-size range", info)
		}
	}

	var view vk.ImageView
	var sampler vk.Sampler
	imgDecl := &metadata.SlotDeclaration{Slot: 0, Kind: metadata.RESOURCE_KIND_IMAGE, Count: 2}
	write, err = buildWrite(set, imgDecl, metadata.NewImageReference(view, sampler))
	if err != nil {
		t.Fatal(err)
	}
	if write.DescriptorCount != 2 || len(write.PImageInfo) != 2 {
		t.Fatalf("image write covers %d of %d elements", len(write.PImageInfo), write.DescriptorCount)
	}
	for _, info := range write.PImageInfo {
		if info.ImageLayout != vk.ImageLayoutShaderReadOnlyOptimal {
			t.Errorf("image layout = %v, want shader-read-only optimal", info.ImageLayout)
		}
	}

	var bufView vk.BufferView
	texDecl := &metadata.SlotDeclaration{Slot: 1, Kind: metadata.RESOURCE_KIND_TEXEL_VIEW, Count: 3}
	write, err = buildWrite(set, texDecl, metadata.NewTexelViewReference(bufView))
	if err != nil {
		t.Fatal(err)
	}
	if write.DescriptorCount != 3 || len(write.PTexelBufferView) != 3 {
		t.Fatalf("texel view write covers %d of %d elements", len(write.PTexelBufferView), write.DescriptorCount)
	}
}

func TestBuildWriteRejectsForeignHandles(t *testing.T) {
	set := &VulkanBindingSet{}
	decl := &metadata.SlotDeclaration{Slot: 0, Kind: metadata.RESOURCE_KIND_BUFFER, Count: 1}
	if _, err := buildWrite(set, decl, metadata.NewBufferReference("not-a-buffer", 0, 16)); err == nil {
		t.Error("expected error for a handle that is not a vk.Buffer")
	}
}

func TestDescriptorTypeForSlot(t *testing.T) {
	cases := []struct {
		decl metadata.SlotDeclaration
		want vk.DescriptorType
	}{
		{metadata.SlotDeclaration{Kind: metadata.RESOURCE_KIND_BUFFER, Count: 1}, vk.DescriptorTypeUniformBuffer},
		{metadata.SlotDeclaration{Kind: metadata.RESOURCE_KIND_BUFFER, Count: 1, Dynamic: true}, vk.DescriptorTypeUniformBufferDynamic},
		{metadata.SlotDeclaration{Kind: metadata.RESOURCE_KIND_IMAGE, Count: 1}, vk.DescriptorTypeCombinedImageSampler},
		{metadata.SlotDeclaration{Kind: metadata.RESOURCE_KIND_TEXEL_VIEW, Count: 1}, vk.DescriptorTypeUniformTexelBuffer},
	}
	for _, c := range cases {
		if got := descriptorTypeForSlot(&c.decl); got != c.want {
			t.Errorf("descriptorTypeForSlot(%s dynamic=%v) = %v, want %v", c.decl.Kind, c.decl.Dynamic, got, c.want)
		}
	}
}

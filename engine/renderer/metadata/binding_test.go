package metadata

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/vulcano/engine/core"
)

func TestValidateLayout(t *testing.T) {
	cases := []struct {
		name    string
		layout  []SlotDeclaration
		wantErr bool
	}{
		{
			name:    "empty",
			layout:  nil,
			wantErr: true,
		},
		{
			name:   "single buffer slot",
			layout: []SlotDeclaration{{Slot: 0, Kind: RESOURCE_KIND_BUFFER, Count: 1}},
		},
		{
			name: "mixed kinds",
			layout: []SlotDeclaration{
				{Slot: 0, Kind: RESOURCE_KIND_BUFFER, Count: 1},
				{Slot: 1, Kind: RESOURCE_KIND_IMAGE, Count: 4},
				{Slot: 2, Kind: RESOURCE_KIND_TEXEL_VIEW, Count: 1},
			},
		},
		{
			name: "duplicate slot index",
			layout: []SlotDeclaration{
				{Slot: 3, Kind: RESOURCE_KIND_BUFFER, Count: 1},
				{Slot: 3, Kind: RESOURCE_KIND_IMAGE, Count: 1},
			},
			wantErr: true,
		},
		{
			name:    "zero element count",
			layout:  []SlotDeclaration{{Slot: 0, Kind: RESOURCE_KIND_BUFFER, Count: 0}},
			wantErr: true,
		},
		{
			name:   "dynamic buffer slot",
			layout: []SlotDeclaration{{Slot: 0, Kind: RESOURCE_KIND_BUFFER, Count: 1, Dynamic: true}},
		},
		{
			name:    "dynamic image slot",
			layout:  []SlotDeclaration{{Slot: 0, Kind: RESOURCE_KIND_IMAGE, Count: 1, Dynamic: true}},
			wantErr: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateLayout(c.layout)
			if (err != nil) != c.wantErr {
				t.Errorf("ValidateLayout: err = %v, wantErr = %v", err, c.wantErr)
			}
		})
	}
}

func TestLayoutDemand(t *testing.T) {
	layout := []SlotDeclaration{
		{Slot: 0, Kind: RESOURCE_KIND_BUFFER, Count: 2},
		{Slot: 1, Kind: RESOURCE_KIND_BUFFER, Count: 1},
		{Slot: 2, Kind: RESOURCE_KIND_IMAGE, Count: 4},
	}
	demand := LayoutDemand(layout)
	if demand[RESOURCE_KIND_BUFFER] != 3 {
		t.Errorf("buffer demand = %d, want 3", demand[RESOURCE_KIND_BUFFER])
	}
	if demand[RESOURCE_KIND_IMAGE] != 4 {
		t.Errorf("image demand = %d, want 4", demand[RESOURCE_KIND_IMAGE])
	}
	if demand[RESOURCE_KIND_TEXEL_VIEW] != 0 {
		t.Errorf("texel view demand = %d, want 0", demand[RESOURCE_KIND_TEXEL_VIEW])
	}
}

func TestResourceReferenceSinglePayload(t *testing.T) {
	buf := NewBufferReference("buffer-0", 0, WholeSize)
	if buf.Kind() != RESOURCE_KIND_BUFFER {
		t.Errorf("kind = %s, want buffer", buf.Kind())
	}
	if b, ok := buf.Buffer(); !ok || b.Handle != "buffer-0" || b.Size != WholeSize {
		t.Errorf("buffer payload missing or wrong: %+v ok=%v", b, ok)
	}
	if _, ok := buf.Image(); ok {
		t.Error("buffer reference must not expose an image payload")
	}
	if _, ok := buf.TexelView(); ok {
		t.Error("buffer reference must not expose a texel view payload")
	}

	img := NewImageReference("view-0", "sampler-0")
	if _, ok := img.Buffer(); ok {
		t.Error("image reference must not expose a buffer payload")
	}
	if i, ok := img.Image(); !ok || i.View != "view-0" || i.Sampler != "sampler-0" {
		t.Errorf("image payload missing or wrong: %+v ok=%v", i, ok)
	}

	tex := NewTexelViewReference("bufview-0")
	if v, ok := tex.TexelView(); !ok || v.View != "bufview-0" {
		t.Errorf("texel view payload missing or wrong: %+v ok=%v", v, ok)
	}
}

func TestReferenceMatchesSlot(t *testing.T) {
	decl := &SlotDeclaration{Slot: 0, Kind: RESOURCE_KIND_BUFFER, Count: 1}
	if err := NewBufferReference(nil, 0, 64).MatchesSlot(decl); err != nil {
		t.Errorf("matching kind rejected: %v", err)
	}
	err := NewImageReference(nil, nil).MatchesSlot(decl)
	if !errors.Is(err, core.ErrSlotKindMismatch) {
		t.Errorf("err = %v, want ErrSlotKindMismatch", err)
	}
}

func TestParseResourceKind(t *testing.T) {
	for _, kind := range []ResourceKind{RESOURCE_KIND_BUFFER, RESOURCE_KIND_IMAGE, RESOURCE_KIND_TEXEL_VIEW} {
		parsed, err := ParseResourceKind(kind.String())
		if err != nil || parsed != kind {
			t.Errorf("round trip of %s failed: %v %v", kind, parsed, err)
		}
	}
	if _, err := ParseResourceKind("sampler"); err == nil {
		t.Error("expected error for unknown kind name")
	}
}

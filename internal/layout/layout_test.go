package layout

import (
	"errors"
	"slices"
	"testing"

	"numlens/internal/types"
)

func TestScalarLayouts(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	e := New(X86_64LinuxGNU(), in)
	tests := []struct {
		id          types.TypeID
		size, align int
	}{
		{b.Bool, 1, 1},
		{b.Int16, 2, 2},
		{b.ULong, 8, 8},
		{b.Float32, 4, 4},
		{b.Float128, 16, 16},
		{b.Complex64, 8, 4},
		{b.Complex128, 16, 8},
		{b.Complex256, 32, 16},
		{b.Object, 8, 8},
	}
	for _, tt := range tests {
		l, err := e.LayoutOf(tt.id)
		if err != nil {
			t.Fatalf("LayoutOf(%s): %v", types.Label(in, tt.id), err)
		}
		if l.Size != tt.size || l.Align != tt.align {
			t.Fatalf("%s: want size=%d align=%d, got size=%d align=%d", types.Label(in, tt.id), tt.size, tt.align, l.Size, l.Align)
		}
	}
}

func TestStructLayoutAlignedAndPacked(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	fields := []types.StructField{{Name: "a", Type: b.Int8}, {Name: "b", Type: b.Float64}, {Name: "c", Type: b.Int16}}
	e := New(X86_64LinuxGNU(), in)

	aligned, err := e.LayoutOf(in.Struct(fields, false))
	if err != nil {
		t.Fatalf("aligned: %v", err)
	}
	if aligned.Size != 24 || aligned.Align != 8 || !slices.Equal(aligned.FieldOffsets, []int{0, 8, 16}) {
		t.Fatalf("unexpected aligned layout: %+v", aligned)
	}

	packed, err := e.LayoutOf(in.Struct(fields, true))
	if err != nil {
		t.Fatalf("packed: %v", err)
	}
	if packed.Size != 11 || packed.Align != 1 || !slices.Equal(packed.FieldOffsets, []int{0, 1, 9}) {
		t.Fatalf("unexpected packed layout: %+v", packed)
	}
}

func TestArrayLayout(t *testing.T) {
	in := types.NewInterner()
	f64 := in.Builtins().Float64
	e := New(X86_64LinuxGNU(), in)

	s := in.Struct([]types.StructField{{Name: "v", Type: in.Array(f64, 1)}}, false)
	l, err := e.LayoutOf(s)
	if err != nil {
		t.Fatalf("1-d array field: %v", err)
	}
	if l.Size != 8 || l.Align != 8 {
		t.Fatalf("1-d array field should lay out as its element: %+v", l)
	}

	s2 := in.Struct([]types.StructField{{Name: "m", Type: in.Array(f64, 2)}}, false)
	_, err = e.LayoutOf(s2)
	var lerr *LayoutError
	if !errors.As(err, &lerr) || lerr.Kind != LayoutErrUnsized {
		t.Fatalf("expected LayoutErrUnsized, got %v", err)
	}
}

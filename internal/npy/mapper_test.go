package npy

import (
	"errors"
	"testing"

	"numlens/internal/layout"
	"numlens/internal/types"
)

func newTestMapper() (*Mapper, *types.Interner) {
	in := types.NewInterner()
	return NewMapper(in, layout.X86_64LinuxGNU()), in
}

func foreignOrder() byte {
	if NativeOrder == OrderLittle {
		return OrderBig
	}
	return OrderLittle
}

func mustParse(t *testing.T, s string) Descriptor {
	t.Helper()
	d, err := ParseTypestr(s)
	if err != nil {
		t.Fatalf("ParseTypestr(%q): %v", s, err)
	}
	return d
}

func TestMapDtypeScalars(t *testing.T) {
	m, in := newTestMapper()
	b := in.Builtins()
	tests := []struct {
		typestr string
		want    types.TypeID
	}{
		{"=i1", b.Int8},
		{"=i2", b.Int16},
		{"=i4", b.Int32},
		{"=i8", b.Int64},
		{"=u1", b.Uint8},
		{"=u8", b.Uint64},
		{"=f4", b.Float32},
		{"=f8", b.Float64},
		{"=f16", b.Float128},
		{"|b1", b.Bool},
		{"=c8", b.Complex64},
		{"=c16", b.Complex128},
		{"=c32", b.Complex256},
		{"|O", b.Object},
		{"l", b.Int64},
		{"d", b.Float64},
	}
	for _, tt := range tests {
		got, err := m.MapDtype(mustParse(t, tt.typestr))
		if err != nil {
			t.Fatalf("MapDtype(%s): %v", tt.typestr, err)
		}
		if got != tt.want {
			t.Fatalf("MapDtype(%s): want %s, got %s", tt.typestr, m.Label(tt.want), m.Label(got))
		}
	}
}

func TestMapDtypeRejectsForeignByteOrder(t *testing.T) {
	m, _ := newTestMapper()
	d := scalar(KindInt, 4)
	d.ByteOrder = foreignOrder()
	_, err := m.MapDtype(d)
	var uerr *UnmappableTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnmappableTypeError, got %v", err)
	}

	d.ByteOrder = NativeOrder
	if _, err := m.MapDtype(d); err != nil {
		t.Fatalf("explicit native order should map: %v", err)
	}
}

func TestMapDtypeUnsupportedWidths(t *testing.T) {
	m, _ := newTestMapper()
	for _, s := range []string{"=f2", "=i3", "=i16", "=c4", "|V8"} {
		_, err := m.MapDtype(mustParse(t, s))
		var uerr *UnsupportedDescriptorError
		if !errors.As(err, &uerr) {
			t.Fatalf("%s: expected UnsupportedDescriptorError, got %v", s, err)
		}
	}
}

func TestScalarRoundTrip(t *testing.T) {
	m, in := newTestMapper()
	b := in.Builtins()
	ids := []types.TypeID{
		b.Int8, b.Int16, b.Int32, b.Int64,
		b.Uint8, b.Uint16, b.Uint32, b.Uint64,
		b.Float32, b.Float64, b.Float128,
		b.Complex64, b.Complex128, b.Complex256,
		b.Short, b.CInt, b.Long, b.LongLong,
		b.UShort, b.UInt, b.ULong, b.ULongLong,
		b.Float, b.Double, b.LongDouble,
		b.Bool, b.Object,
	}
	for _, id := range ids {
		d, err := m.ToDtype(id)
		if err != nil {
			t.Fatalf("ToDtype(%s): %v", m.Label(id), err)
		}
		back, err := m.MapDtype(d)
		if err != nil {
			t.Fatalf("MapDtype(%s): %v", d, err)
		}
		again, err := m.ToDtype(back)
		if err != nil {
			t.Fatalf("ToDtype(%s): %v", m.Label(back), err)
		}
		if !again.Equal(d) {
			t.Fatalf("%s: %s did not round-trip, got %s", m.Label(id), d, again)
		}
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	m, _ := newTestMapper()
	order := string(NativeOrder)
	for _, s := range []string{order + "i4", order + "u2", order + "f8", "|b1", "|i1", order + "c16", "|O8"} {
		d := mustParse(t, s)
		id, err := m.MapDtype(d)
		if err != nil {
			t.Fatalf("MapDtype(%s): %v", s, err)
		}
		back, err := m.ToDtype(id)
		if err != nil {
			t.Fatalf("ToDtype(%s): %v", m.Label(id), err)
		}
		if !back.Equal(d) || back.Str() != s {
			t.Fatalf("%s: round-trip produced %s", s, back.Str())
		}
	}
}

func TestStructRoundTripAndPacking(t *testing.T) {
	m, in := newTestMapper()
	rec := Descriptor{
		Kind:      KindVoid,
		ByteOrder: OrderNA,
		Fields: []Field{
			{Name: "x", Desc: mustParse(t, "=i4")},
			{Name: "y", Desc: mustParse(t, "=f8")},
		},
	}

	packedID, err := m.MapDtype(rec)
	if err != nil {
		t.Fatalf("MapDtype: %v", err)
	}
	info, ok := in.StructInfo(packedID)
	if !ok || !info.Packed {
		t.Fatalf("unaligned record should map to a packed struct")
	}
	back, err := m.ToDtype(packedID)
	if err != nil {
		t.Fatalf("ToDtype: %v", err)
	}
	if back.IsAlignedStruct || back.ItemSize != 12 || back.Fields[0].Name != "x" || back.Fields[1].Name != "y" || back.Fields[1].Offset != 4 {
		t.Fatalf("unexpected packed descriptor: %s %+v", back, back)
	}

	rec.IsAlignedStruct = true
	alignedID, err := m.MapDtype(rec)
	if err != nil {
		t.Fatalf("MapDtype: %v", err)
	}
	if info, _ := in.StructInfo(alignedID); info.Packed {
		t.Fatalf("aligned record should map to an unpacked struct")
	}
	back, err = m.ToDtype(alignedID)
	if err != nil {
		t.Fatalf("ToDtype: %v", err)
	}
	if !back.IsAlignedStruct || back.ItemSize != 16 || back.Fields[1].Offset != 8 || back.Alignment != 8 {
		t.Fatalf("unexpected aligned descriptor: %s %+v", back, back)
	}
	if want := "dtype([('x', '<i4'), ('y', '<f8')], align=True)"; NativeOrder == OrderLittle && back.String() != want {
		t.Fatalf("want %s, got %s", want, back.String())
	}
}

func TestNestedRecordFieldOrder(t *testing.T) {
	m, _ := newTestMapper()
	inner := Descriptor{Kind: KindVoid, ByteOrder: OrderNA, Fields: []Field{
		{Name: "b", Desc: mustParse(t, "=f4")},
		{Name: "a", Desc: mustParse(t, "=f4")},
	}}
	outer := Descriptor{Kind: KindVoid, ByteOrder: OrderNA, Fields: []Field{
		{Name: "z", Desc: mustParse(t, "|u1")},
		{Name: "pt", Desc: inner},
	}}
	id, err := m.MapDtype(outer)
	if err != nil {
		t.Fatalf("MapDtype: %v", err)
	}
	if got, want := m.Label(id), "packed struct { z: uint8, pt: packed struct { b: float32, a: float32 } }"; got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
	back, err := m.ToDtype(id)
	if err != nil {
		t.Fatalf("ToDtype: %v", err)
	}
	if back.Fields[1].Desc.Fields[0].Name != "b" || back.Fields[1].Offset != 1 || back.ItemSize != 9 {
		t.Fatalf("unexpected nested descriptor: %s %+v", back, back)
	}
}

func TestToDtypeArrays(t *testing.T) {
	m, in := newTestMapper()
	b := in.Builtins()
	d, err := m.ToDtype(in.Array(b.Float32, 1))
	if err != nil {
		t.Fatalf("ToDtype: %v", err)
	}
	if !d.Equal(scalar(KindFloat, 4)) {
		t.Fatalf("1-d array should map to its element, got %s", d)
	}

	_, err = m.ToDtype(in.Array(b.Float32, 2))
	var cerr *ConversionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if cerr.Error() != "cannot convert 'float32[:, :]' to numpy type" {
		t.Fatalf("unexpected message: %s", cerr.Error())
	}
}

func TestToDtypeStructWithArrayField(t *testing.T) {
	m, in := newTestMapper()
	b := in.Builtins()
	s := in.Struct([]types.StructField{
		{Name: "a", Type: in.Array(b.Int32, 1)},
		{Name: "b", Type: b.Float64},
	}, false)
	d, err := m.ToDtype(s)
	if err != nil {
		t.Fatalf("ToDtype: %v", err)
	}
	if d.ItemSize != 16 || len(d.Fields) != 2 {
		t.Fatalf("unexpected record: %s (itemsize %d)", d, d.ItemSize)
	}
	if !d.Fields[0].Desc.Equal(scalar(KindInt, 4)) || d.Fields[0].Offset != 0 {
		t.Fatalf("array field should map to its element at offset 0: %+v", d.Fields[0])
	}
	if d.Fields[1].Offset != 8 {
		t.Fatalf("second field offset: got %d, want 8", d.Fields[1].Offset)
	}

	_, err = m.ToDtype(in.Struct([]types.StructField{{Name: "m", Type: in.Array(b.Int32, 2)}}, false))
	var cerr *ConversionError
	if !errors.As(err, &cerr) {
		t.Fatalf("2-d array field: expected ConversionError, got %v", err)
	}
}

func TestToDtypeSynthesizesIntegers(t *testing.T) {
	m, in := newTestMapper()
	ssize := in.Intern(types.MakeNamed("Py_ssize_t", types.MakeInt(types.Width64)))
	d, err := m.ToDtype(ssize)
	if err != nil {
		t.Fatalf("ToDtype: %v", err)
	}
	if !d.Equal(scalar(KindInt, 8)) {
		t.Fatalf("expected int64 descriptor, got %s", d)
	}
}

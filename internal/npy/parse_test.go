package npy

import (
	"errors"
	"testing"
)

func TestParseTypestr(t *testing.T) {
	tests := []struct {
		in    string
		kind  byte
		size  int
		order byte
	}{
		{"<i4", KindInt, 4, OrderLittle},
		{">f8", KindFloat, 8, OrderBig},
		{"|b1", KindBool, 1, OrderNA},
		{"u2", KindUint, 2, OrderNative},
		{"|O", KindObject, 8, OrderNA},
		{"h", KindInt, 2, OrderNative},
		{"?", KindBool, 1, OrderNA},
		{"G", KindComplex, 32, OrderNative},
		{"|V16", KindVoid, 16, OrderNA},
	}
	for _, tt := range tests {
		d, err := ParseTypestr(tt.in)
		if err != nil {
			t.Fatalf("ParseTypestr(%q): %v", tt.in, err)
		}
		if d.Kind != tt.kind || d.ItemSize != tt.size || d.ByteOrder != tt.order {
			t.Fatalf("ParseTypestr(%q) = %+v", tt.in, d)
		}
	}
}

func TestParseTypestrErrors(t *testing.T) {
	for _, in := range []string{"", "<", "<x4", "<i", "<i-1", "Z"} {
		_, err := ParseTypestr(in)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("ParseTypestr(%q): expected ParseError, got %v", in, err)
		}
	}
}

func TestParseDescr(t *testing.T) {
	d, err := ParseDescr([]byte(`[["x", "=i4"], ["pt", [["a", "=f8"], ["b", "=f8"]]]]`), true)
	if err != nil {
		t.Fatalf("ParseDescr: %v", err)
	}
	if d.Kind != KindVoid || !d.IsAlignedStruct || len(d.Fields) != 2 {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if d.ItemSize != 0 || d.Fields[1].Offset != 0 {
		t.Fatalf("parser should not lay out the record: %+v", d)
	}
	if d.Fields[0].Name != "x" || !d.Fields[0].Desc.Equal(scalar(KindInt, 4)) {
		t.Fatalf("unexpected first field: %+v", d.Fields[0])
	}
	pt := d.Fields[1].Desc
	if d.Fields[1].Name != "pt" || len(pt.Fields) != 2 || !pt.Fields[1].Desc.Equal(scalar(KindFloat, 8)) {
		t.Fatalf("unexpected nested field: %+v", d.Fields[1])
	}
}

func TestLayoutRecordParsedDescr(t *testing.T) {
	m, _ := newTestMapper()
	d, err := ParseDescr([]byte(`[["x", "=i4"], ["pt", [["a", "=f8"], ["b", "=f8"]]]]`), true)
	if err != nil {
		t.Fatalf("ParseDescr: %v", err)
	}
	_, got, err := m.LayoutRecord(d)
	if err != nil {
		t.Fatalf("LayoutRecord: %v", err)
	}
	f8 := scalar(KindFloat, 8)
	want := Descriptor{
		Kind: KindVoid, ItemSize: 24, ByteOrder: OrderNA, Alignment: 8, IsAlignedStruct: true,
		Fields: []Field{
			{Name: "x", Desc: scalar(KindInt, 4), Offset: 0},
			{Name: "pt", Offset: 8, Desc: Descriptor{
				Kind: KindVoid, ItemSize: 16, ByteOrder: OrderNA, Alignment: 8, IsAlignedStruct: true,
				Fields: []Field{{Name: "a", Desc: f8, Offset: 0}, {Name: "b", Desc: f8, Offset: 8}},
			}},
		},
	}
	if !got.Equal(want) {
		t.Fatalf("want %+v\ngot  %+v", want, got)
	}
	out, err := got.Descr()
	if err != nil {
		t.Fatalf("Descr: %v", err)
	}
	if NativeOrder == OrderLittle {
		want := `[["x","<i4"],["pt",[["a","<f8"],["b","<f8"]]]]`
		if string(out) != want {
			t.Fatalf("want %s, got %s", want, out)
		}
	}
}

func TestParseDescrRejectsMalformed(t *testing.T) {
	for _, in := range []string{`{}`, `[["x"]]`, `[[1, "<i4"]]`, `[["x", 4]]`} {
		if _, err := ParseDescr([]byte(in), false); err == nil {
			t.Fatalf("ParseDescr(%s): expected error", in)
		}
	}
}

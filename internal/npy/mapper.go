package npy

import (
	"math/bits"

	"fortio.org/safecast"

	"numlens/internal/layout"
	"numlens/internal/types"
)

// Mapper converts descriptors to type tags of one interner and back.
type Mapper struct {
	types  *types.Interner
	layout *layout.LayoutEngine
	table  map[types.TypeID]Descriptor
}

// NewMapper builds a Mapper over in for the given layout target.
func NewMapper(in *types.Interner, target layout.Target) *Mapper {
	return &Mapper{
		types:  in,
		layout: layout.New(target, in),
		table:  scalarTable(in.Builtins()),
	}
}

func scalar(kind byte, size int) Descriptor {
	order := OrderNative
	if size == 1 || kind == KindObject {
		order = OrderNA
	}
	align := size
	switch {
	case kind == KindComplex:
		align = size / 2
	case size > 8:
		align = 16
	}
	return Descriptor{Kind: kind, ItemSize: size, ByteOrder: order, Alignment: min(align, 16)}
}

// scalarTable is the fixed tag -> descriptor table for the LP64 model.
func scalarTable(b types.Builtins) map[types.TypeID]Descriptor {
	return map[types.TypeID]Descriptor{
		b.Int8:   scalar(KindInt, 1),
		b.Int16:  scalar(KindInt, 2),
		b.Int32:  scalar(KindInt, 4),
		b.Int64:  scalar(KindInt, 8),
		b.Uint8:  scalar(KindUint, 1),
		b.Uint16: scalar(KindUint, 2),
		b.Uint32: scalar(KindUint, 4),
		b.Uint64: scalar(KindUint, 8),

		b.Float32:    scalar(KindFloat, 4),
		b.Float64:    scalar(KindFloat, 8),
		b.Float128:   scalar(KindFloat, 16),
		b.Float:      scalar(KindFloat, 4),
		b.Double:     scalar(KindFloat, 8),
		b.LongDouble: scalar(KindFloat, 16),

		b.Short:     scalar(KindInt, 2),
		b.CInt:      scalar(KindInt, 4),
		b.Long:      scalar(KindInt, 8),
		b.LongLong:  scalar(KindInt, 8),
		b.UShort:    scalar(KindUint, 2),
		b.UInt:      scalar(KindUint, 4),
		b.ULong:     scalar(KindUint, 8),
		b.ULongLong: scalar(KindUint, 8),

		b.Complex64:  scalar(KindComplex, 8),
		b.Complex128: scalar(KindComplex, 16),
		b.Complex256: scalar(KindComplex, 32),

		b.Bool:   scalar(KindBool, 1),
		b.Object: scalar(KindObject, 8),
	}
}

// MapDtype maps a descriptor to the corresponding type tag.
func (m *Mapper) MapDtype(d Descriptor) (types.TypeID, error) {
	if d.Numeric() && !d.NativeByteOrder() {
		return types.NoTypeID, &UnmappableTypeError{Desc: d, Reason: "only native byteorder is supported"}
	}
	b := m.types.Builtins()
	switch d.Kind {
	case KindInt:
		return pick(d, []types.TypeID{b.Int8, b.Int16, b.Int32, b.Int64})
	case KindUint:
		return pick(d, []types.TypeID{b.Uint8, b.Uint16, b.Uint32, b.Uint64})
	case KindFloat:
		switch d.ItemSize {
		case 2:
			return types.NoTypeID, &UnsupportedDescriptorError{Desc: d, Reason: "half floats are not supported"}
		case 4:
			return b.Float32, nil
		case 8:
			return b.Float64, nil
		case 16:
			return b.Float128, nil
		}
	case KindBool:
		if d.ItemSize == 1 {
			return b.Bool, nil
		}
	case KindComplex:
		switch d.ItemSize {
		case 8:
			return b.Complex64, nil
		case 16:
			return b.Complex128, nil
		case 32:
			return b.Complex256, nil
		}
	case KindVoid:
		return m.mapRecord(d)
	case KindObject:
		return b.Object, nil
	}
	return types.NoTypeID, &UnsupportedDescriptorError{Desc: d}
}

// pick indexes a power-of-two width table: 1, 2, 4, 8 bytes.
func pick(d Descriptor, table []types.TypeID) (types.TypeID, error) {
	size, err := safecast.Conv[uint](d.ItemSize)
	if err != nil || size == 0 || bits.OnesCount(size) != 1 {
		return types.NoTypeID, &UnsupportedDescriptorError{Desc: d}
	}
	idx := bits.TrailingZeros(size)
	if idx >= len(table) {
		return types.NoTypeID, &UnsupportedDescriptorError{Desc: d}
	}
	return table[idx], nil
}

func (m *Mapper) mapRecord(d Descriptor) (types.TypeID, error) {
	if len(d.Fields) == 0 {
		return types.NoTypeID, &UnsupportedDescriptorError{Desc: d, Reason: "unstructured void data"}
	}
	fields := make([]types.StructField, 0, len(d.Fields))
	for _, f := range d.Fields {
		ft, err := m.MapDtype(f.Desc)
		if err != nil {
			return types.NoTypeID, err
		}
		fields = append(fields, types.StructField{Name: f.Name, Type: ft})
	}
	return m.types.Struct(fields, !d.IsAlignedStruct), nil
}

// ToDtype maps a type tag to its descriptor. One-dimensional arrays map to
// their element descriptor; the shape is not represented.
func (m *Mapper) ToDtype(id types.TypeID) (Descriptor, error) {
	tt, ok := m.types.Lookup(id)
	if !ok {
		return Descriptor{}, &ConversionError{Label: types.Label(m.types, id)}
	}
	switch {
	case tt.Kind == types.KindStruct:
		return m.recordDtype(id)
	case tt.Kind == types.KindArray && tt.Ndim == 1:
		return m.ToDtype(tt.Elem)
	}
	if d, ok := m.table[id]; ok {
		return d, nil
	}
	if tt.IsInt() && tt.Width != types.WidthAny {
		kind := KindUint
		if tt.Signed() {
			kind = KindInt
		}
		return scalar(kind, tt.Width.Bytes()), nil
	}
	return Descriptor{}, &ConversionError{Label: types.Label(m.types, id)}
}

func (m *Mapper) recordDtype(id types.TypeID) (Descriptor, error) {
	info, ok := m.types.StructInfo(id)
	if !ok {
		return Descriptor{}, &ConversionError{Label: types.Label(m.types, id)}
	}
	l, err := m.layout.LayoutOf(id)
	if err != nil {
		return Descriptor{}, &ConversionError{Label: types.Label(m.types, id)}
	}
	fields := make([]Field, 0, len(info.Fields))
	for i, f := range info.Fields {
		fd, err := m.ToDtype(f.Type)
		if err != nil {
			return Descriptor{}, err
		}
		off := 0
		if i < len(l.FieldOffsets) {
			off = l.FieldOffsets[i]
		}
		fields = append(fields, Field{Name: f.Name, Desc: fd, Offset: off})
	}
	return Descriptor{
		Kind:            KindVoid,
		ItemSize:        l.Size,
		ByteOrder:       OrderNA,
		Alignment:       l.Align,
		Fields:          fields,
		IsAlignedStruct: !info.Packed,
	}, nil
}

// LayoutRecord maps a record descriptor to its struct tag and returns the
// descriptor that tag lays out to, with offsets and item size filled in.
func (m *Mapper) LayoutRecord(d Descriptor) (types.TypeID, Descriptor, error) {
	id, err := m.MapDtype(d)
	if err != nil {
		return types.NoTypeID, Descriptor{}, err
	}
	out, err := m.ToDtype(id)
	if err != nil {
		return types.NoTypeID, Descriptor{}, err
	}
	return id, out, nil
}

// Label returns the display label of a tag of the mapper's interner.
func (m *Mapper) Label(id types.TypeID) string {
	return types.Label(m.types, id)
}

package layout

import (
	"numlens/internal/types"
)

func (e *LayoutEngine) computeLayout(id types.TypeID) (TypeLayout, *LayoutError) {
	tt, ok := e.Types.Lookup(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrUnknownType, Type: id}
	}

	switch tt.Kind {
	case types.KindBool:
		return TypeLayout{Size: 1, Align: 1}, nil

	case types.KindInt, types.KindUint:
		return scalarLayoutBytes(tt.Width.Bytes()), nil

	case types.KindFloat:
		if tt.Width == types.Width128 {
			return e.longDoubleLayout(), nil
		}
		return scalarLayoutBytes(tt.Width.Bytes()), nil

	case types.KindComplex:
		// two components laid out like a struct of floats
		part := scalarLayoutBytes(tt.Width.Bytes() / 2)
		if tt.Width == types.Width256 {
			part = e.longDoubleLayout()
		}
		return TypeLayout{Size: 2 * part.Size, Align: part.Align}, nil

	case types.KindObject:
		return e.ptrLayout(), nil

	case types.KindStruct:
		return e.structLayout(id)

	case types.KindArray:
		// a 1-d array field stores its element; the shape is not represented
		if tt.Ndim == 1 {
			return e.layoutOf(tt.Elem)
		}
		fallthrough

	default:
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrUnsized, Type: id, Label: types.Label(e.Types, id)}
	}
}

func (e *LayoutEngine) ptrLayout() TypeLayout {
	ptrSize := e.Target.PtrSize
	ptrAlign := e.Target.PtrAlign
	if ptrSize <= 0 {
		ptrSize = 8
	}
	if ptrAlign <= 0 {
		ptrAlign = ptrSize
	}
	return TypeLayout{Size: ptrSize, Align: ptrAlign}
}

func (e *LayoutEngine) longDoubleLayout() TypeLayout {
	align := e.Target.LongDoubleAlign
	if align <= 0 {
		align = 16
	}
	return TypeLayout{Size: 16, Align: align}
}

func scalarLayoutBytes(size int) TypeLayout {
	if size <= 0 {
		return TypeLayout{Size: 0, Align: 1}
	}
	return TypeLayout{Size: size, Align: size}
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func (e *LayoutEngine) structLayout(id types.TypeID) (TypeLayout, *LayoutError) {
	info, ok := e.Types.StructInfo(id)
	if !ok || len(info.Fields) == 0 {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	fields := info.Fields
	offsets := make([]int, len(fields))
	aligns := make([]int, len(fields))

	if info.Packed {
		size := 0
		for i := range fields {
			fl, err := e.layoutOf(fields[i].Type)
			if err != nil {
				return TypeLayout{Size: 0, Align: 1}, err
			}
			offsets[i] = size
			aligns[i] = 1
			size += fl.Size
		}
		return TypeLayout{
			Size:         size,
			Align:        1,
			FieldOffsets: offsets,
			FieldAligns:  aligns,
		}, nil
	}

	size := 0
	align := 1
	for i := range fields {
		fl, err := e.layoutOf(fields[i].Type)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		fAlign := max(fl.Align, 1)
		size = roundUp(size, fAlign)
		offsets[i] = size
		aligns[i] = fAlign
		size += fl.Size
		align = max(align, fAlign)
	}
	size = roundUp(size, align)
	return TypeLayout{
		Size:         size,
		Align:        align,
		FieldOffsets: offsets,
		FieldAligns:  aligns,
	}, nil
}

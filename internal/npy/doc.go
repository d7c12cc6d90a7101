// Package npy converts between NumPy element-type descriptors (dtypes) and
// the compiler's interned type tags.
//
// Descriptors follow the array-interface conventions: a kind letter
// (i u f b c V O), an item size in bytes and a byte-order character
// ('=' native, '<' little, '>' big, '|' not applicable). Structured
// descriptors (kind 'V') carry ordered named fields and the aligned-struct
// flag.
//
// Mapper.MapDtype goes from descriptor to type tag and Mapper.ToDtype goes
// back. Both directions fail loudly: a descriptor without a matching tag
// (half floats, odd item sizes) is an *UnsupportedDescriptorError rather
// than a silent miss.
package npy

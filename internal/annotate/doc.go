// Package annotate renders compiler annotations over program source text.
//
// A Program carries the primary source, its per-line annotations and any
// number of named intermediate representations (LLVM listings, lowered
// IR and so on). RenderText walks the primary source line by line and
// interleaves annotation blocks under the code they describe:
//
//	   3        y = x * 2
//	              -------------------||-------------------
//	              Types: x:int64 y:int64
//	              __________________llvm__________________
//	                %2 = mul i64 %x, 2
//	              -------------------||-------------------
//
// Intermediates are resolved through the Renderer interface, which exposes
// a set of named capabilities ("source", "dot"). Column widths of the text
// report are fixed: a 4-cell line-number gutter, 40-cell annotation
// separators and banners, 80-cell banners for intermediates rendered in a
// separate trailing section.
package annotate

// Package report decodes annotation reports emitted by the compiler into
// annotate.Program values.
//
// A report is a document in JSON, YAML or msgpack:
//
//	{
//	  "format": "1.0.0",
//	  "source": {
//	    "lines": {"1": "def f(x):", "2": "    return x * 2"},
//	    "annotations": {"2": [{"type": "Types", "value": "x:int64"}]}
//	  },
//	  "intermediates": [
//	    {"name": "llvm", "linenomap": {"2": [5]},
//	     "source": {"lines": {"5": "  %r = mul i64 %x, 2"}},
//	     "dot": "digraph f { ... }"}
//	  ]
//	}
//
// The format version must satisfy FormatConstraint.
package report

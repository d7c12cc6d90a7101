package layout

// Target describes the data model the layouts are computed for.
type Target struct {
	Triple          string // e.g. "x86_64-linux-gnu"
	PtrSize         int    // bytes
	PtrAlign        int    // bytes
	LongDoubleAlign int    // bytes; alignment of 128-bit floats
}

// X86_64LinuxGNU is the LP64 SysV target.
func X86_64LinuxGNU() Target {
	return Target{
		Triple:          "x86_64-linux-gnu",
		PtrSize:         8,
		PtrAlign:        8,
		LongDoubleAlign: 16,
	}
}

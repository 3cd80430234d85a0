package calltree

import "fmt"

// Symbol identifies one call-stack frame: a function name plus the
// binary it originates from. Identity is exactly these fields, so a
// Symbol can key a map directly; aggregation by symbol relies on that.
// Per-sample data that must not split aggregation (addresses, source
// lines, function size) lives on Location instead.
type Symbol struct {
	// Name is the (possibly mangled) function name.
	Name string
	// Binary is the dso / executable base name.
	Binary string
	// Path is the full path of the dso / executable.
	Path string
	// RelAddr is the address relative to the mapping start, 0 if unknown.
	RelAddr uint64
}

func (s Symbol) IsValid() bool {
	return s.Name != "" || s.Binary != "" || s.Path != ""
}

func (s Symbol) String() string {
	if s.Binary == "" {
		return s.Name
	}
	if s.Name == "" {
		return s.Binary
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Binary)
}

// FileLine points into source code. A FileLine without a file is not
// valid, whatever the line says.
type FileLine struct {
	File string
	Line int
}

func (f FileLine) IsValid() bool {
	return f.File != ""
}

func (f FileLine) String() string {
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

func (f FileLine) ShortString() string {
	slash := -1
	for i := len(f.File) - 1; i >= 0; i-- {
		if f.File[i] == '/' {
			slash = i
			break
		}
	}
	return fmt.Sprintf("%s:%d", f.File[slash+1:], f.Line)
}

// Location is the precise address a frame was sampled at, with the
// resolved source position when debug info was available.
type Location struct {
	Address uint64
	RelAddr uint64
	// Size of the frame's function, 0 if unknown.
	Size     uint64
	FileLine FileLine
}

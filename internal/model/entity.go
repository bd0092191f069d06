// Package model defines the data structures for documentation auditing.
package model

// Path represents a file system path.
type Path string

// EntityKind classifies a documentable unit.
type EntityKind string

const (
	// KindModule represents a file-level unit (the package clause).
	KindModule EntityKind = "module"
	// KindClass represents a named type declaration.
	KindClass EntityKind = "class"
	// KindFunction represents a top-level function.
	KindFunction EntityKind = "function"
	// KindMethod represents a function with a receiver.
	KindMethod EntityKind = "method"
)

// Parameter describes one declared parameter in declaration order.
type Parameter struct {
	Name         string
	DeclaredType string
	// HasDefault records optionality only. Go's single optional shape is a
	// variadic final parameter.
	HasDefault bool
}

// Entity is a documentable unit discovered in a single source file.
// QualifiedName is unique within its file; methods use "Type.Name".
type Entity struct {
	QualifiedName string
	Kind          EntityKind
	Parameters    []Parameter
	ReturnType    string
	RaisedErrors  []string
	StartLine     int // 1-indexed, inclusive
	EndLine       int
	// Doc holds the attached documentation block, with comment markers
	// stripped. Empty when the unit is undocumented.
	Doc string
	// DocStartLine/DocEndLine locate the doc comment in the file so a fixer
	// can rewrite it in place. Zero when Doc is empty.
	DocStartLine int
	DocEndLine   int
	// Enclosing stores the receiver type name for methods. It is a lookup
	// key into the same file's entities, never an owning reference.
	Enclosing string
	// Indent is the leading whitespace of the declaration line.
	Indent    string
	Signature string
	File      Path
}

// SourceUnit pairs a file identifier with its raw text for one analysis
// pass. It is never persisted.
type SourceUnit struct {
	File Path
	Text []byte
}

// ParseError marks a single file as unparsable. It is recorded per file and
// never aborts a batch.
type ParseError struct {
	File    Path
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return string(e.File) + ": " + e.Message
}

// Package domain contains the core documentation auditing logic.
package domain

import (
	"go/ast"
	"go/scanner"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"github.com/doclens/doclens/internal/adapter"
	m "github.com/doclens/doclens/internal/model"
)

// Extractor turns one source file into an ordered inventory of documentable
// entities and their documentation debt.
type Extractor interface {
	// Extract parses src and walks the tree top to bottom. A syntax error is
	// reported as a ParseError with an empty entity list; it never escapes
	// to the caller as a failure, so batch runs isolate faults per file.
	Extract(src []byte, file m.Path) ([]m.Entity, []m.Debt, *m.ParseError)
}

type extractor struct {
	goAdapter adapter.GoFileAdapter
}

// NewExtractor constructs an Extractor backed by the provided parser adapter.
func NewExtractor(goAdapter adapter.GoFileAdapter) Extractor {
	return &extractor{goAdapter: goAdapter}
}

func (e *extractor) Extract(src []byte, file m.Path) ([]m.Entity, []m.Debt, *m.ParseError) {
	fset := token.NewFileSet()

	fileAST, err := e.goAdapter.Parse(fset, string(file), src)
	if err != nil {
		return nil, nil, parseErrorFor(file, err)
	}

	lines := strings.Split(string(src), "\n")

	b := &entityBuilder{
		fset:  fset,
		src:   src,
		lines: lines,
		file:  file,
	}

	entities := []m.Entity{b.moduleEntity(fileAST)}
	seen := map[string]int{entities[0].QualifiedName: 1}

	for _, decl := range fileAST.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}

			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				entity := b.typeEntity(d, ts)
				entity.QualifiedName = uniqueName(seen, entity.QualifiedName)
				entities = append(entities, entity)
			}
		case *ast.FuncDecl:
			entity := b.funcEntity(d)
			entity.QualifiedName = uniqueName(seen, entity.QualifiedName)
			entities = append(entities, entity)
		}
	}

	var debts []m.Debt

	for _, entity := range entities {
		if debt, ok := debtFor(entity); ok {
			debts = append(debts, debt)
		}
	}

	return entities, debts, nil
}

// uniqueName suffixes a repeated declaration name so every entity keys
// uniquely within its file. Go permits the repetition only for init
// functions and the blank identifier.
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		return name + "#" + strconv.Itoa(n)
	}

	return name
}

func parseErrorFor(file m.Path, err error) *m.ParseError {
	pe := &m.ParseError{File: file, Message: err.Error()}

	var list scanner.ErrorList
	if ok := asErrorList(err, &list); ok && len(list) > 0 {
		pe.Line = list[0].Pos.Line
		pe.Message = list[0].Msg
	}

	return pe
}

func asErrorList(err error, out *scanner.ErrorList) bool {
	list, ok := err.(scanner.ErrorList)
	if ok {
		*out = list
	}

	return ok
}

// entityBuilder carries the per-file parsing context used while walking
// declarations.
type entityBuilder struct {
	fset  *token.FileSet
	src   []byte
	lines []string
	file  m.Path
}

func (b *entityBuilder) moduleEntity(fileAST *ast.File) m.Entity {
	entity := m.Entity{
		QualifiedName: fileAST.Name.Name,
		Kind:          m.KindModule,
		StartLine:     1,
		EndLine:       b.fset.File(fileAST.Pos()).LineCount(),
		Signature:     "package " + fileAST.Name.Name,
		File:          b.file,
	}

	b.attachDoc(&entity, fileAST.Doc)

	return entity
}

func (b *entityBuilder) typeEntity(decl *ast.GenDecl, ts *ast.TypeSpec) m.Entity {
	start := decl.Pos()
	if len(decl.Specs) > 1 {
		start = ts.Pos()
	}

	entity := m.Entity{
		QualifiedName: ts.Name.Name,
		Kind:          m.KindClass,
		StartLine:     b.line(start),
		EndLine:       b.line(ts.End()),
		Signature:     "type " + ts.Name.Name + " " + typeKeyword(ts.Type),
		Indent:        b.indentAt(start),
		File:          b.file,
	}

	// doc precedence mirrors what godoc renders for grouped declarations
	switch {
	case len(decl.Specs) == 1 && decl.Doc != nil:
		b.attachDoc(&entity, decl.Doc)
	case ts.Doc != nil:
		b.attachDoc(&entity, ts.Doc)
	case ts.Comment != nil:
		b.attachDoc(&entity, ts.Comment)
	}

	return entity
}

func (b *entityBuilder) funcEntity(decl *ast.FuncDecl) m.Entity {
	entity := m.Entity{
		QualifiedName: decl.Name.Name,
		Kind:          m.KindFunction,
		Parameters:    buildParameters(decl.Type.Params),
		ReturnType:    returnTypeString(decl.Type.Results),
		RaisedErrors:  collectRaisedErrors(decl.Body),
		StartLine:     b.line(decl.Pos()),
		EndLine:       b.line(decl.End()),
		Signature:     b.signatureText(decl),
		Indent:        b.indentAt(decl.Pos()),
		File:          b.file,
	}

	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		recv := receiverTypeName(decl.Recv.List[0].Type)
		entity.Kind = m.KindMethod
		entity.Enclosing = recv
		entity.QualifiedName = recv + "." + decl.Name.Name
	}

	b.attachDoc(&entity, decl.Doc)

	return entity
}

func (b *entityBuilder) attachDoc(entity *m.Entity, doc *ast.CommentGroup) {
	if doc == nil {
		return
	}

	entity.Doc = strings.TrimRight(doc.Text(), "\n")
	entity.DocStartLine = b.line(doc.Pos())
	entity.DocEndLine = b.line(doc.End())
}

func (b *entityBuilder) line(pos token.Pos) int {
	return b.fset.Position(pos).Line
}

func (b *entityBuilder) indentAt(pos token.Pos) string {
	lineNo := b.line(pos)
	if lineNo < 1 || lineNo > len(b.lines) {
		return ""
	}

	line := b.lines[lineNo-1]

	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// signatureText slices the declaration text up to the body brace and
// collapses it onto one line.
func (b *entityBuilder) signatureText(decl *ast.FuncDecl) string {
	start := b.fset.Position(decl.Pos()).Offset

	end := b.fset.Position(decl.End()).Offset
	if decl.Body != nil {
		end = b.fset.Position(decl.Body.Lbrace).Offset
	}

	if start < 0 || end > len(b.src) || start >= end {
		return ""
	}

	return strings.Join(strings.Fields(string(b.src[start:end])), " ")
}

func buildParameters(fields *ast.FieldList) []m.Parameter {
	if fields == nil {
		return nil
	}

	var params []m.Parameter

	for _, field := range fields.List {
		_, variadic := field.Type.(*ast.Ellipsis)
		typ := typeString(field.Type)

		if len(field.Names) == 0 {
			params = append(params, m.Parameter{DeclaredType: typ, HasDefault: variadic})
			continue
		}

		for _, name := range field.Names {
			params = append(params, m.Parameter{
				Name:         name.Name,
				DeclaredType: typ,
				HasDefault:   variadic,
			})
		}
	}

	return params
}

func returnTypeString(results *ast.FieldList) string {
	if results == nil || len(results.List) == 0 {
		return ""
	}

	var parts []string

	for _, field := range results.List {
		typ := typeString(field.Type)

		n := len(field.Names)
		if n == 0 {
			n = 1
		}

		for i := 0; i < n; i++ {
			parts = append(parts, typ)
		}
	}

	return strings.Join(parts, ", ")
}

// collectRaisedErrors scans a function body for explicit error-producing
// constructs and returns the distinct error-type names it can identify
// statically. Dynamic errors that cannot be named are omitted, not guessed.
func collectRaisedErrors(body *ast.BlockStmt) []string {
	if body == nil {
		return nil
	}

	seen := make(map[string]struct{})

	ast.Inspect(body, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.CallExpr:
			if ident, ok := n.Fun.(*ast.Ident); ok && ident.Name == "panic" && len(n.Args) == 1 {
				addErrorName(seen, n.Args[0])
			}
		case *ast.ReturnStmt:
			for _, result := range n.Results {
				addErrorName(seen, result)
			}
		}

		return true
	})

	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func addErrorName(seen map[string]struct{}, expr ast.Expr) {
	if name, ok := errorNameOf(expr); ok {
		seen[name] = struct{}{}
	}
}

func errorNameOf(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		return asErrorName(e.Name)
	case *ast.SelectorExpr:
		return asErrorName(e.Sel.Name)
	case *ast.CompositeLit:
		if e.Type != nil {
			return errorNameOf(e.Type)
		}
	case *ast.UnaryExpr:
		return errorNameOf(e.X)
	case *ast.CallExpr:
		if name, ok := errorNameOf(e.Fun); ok {
			return name, true
		}
	}

	return "", false
}

// asErrorName accepts names following the Err-prefix or Error-suffix
// conventions, and unwraps constructor names like NewParseError to the type
// they build.
func asErrorName(name string) (string, bool) {
	if trimmed := strings.TrimPrefix(name, "New"); trimmed != name && strings.HasSuffix(trimmed, "Error") {
		return trimmed, true
	}

	if strings.HasPrefix(name, "Err") || strings.HasSuffix(name, "Error") {
		return name, true
	}

	return "", false
}

func receiverTypeName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(e.X)
	case *ast.IndexExpr:
		return receiverTypeName(e.X)
	case *ast.IndexListExpr:
		return receiverTypeName(e.X)
	case *ast.Ident:
		return e.Name
	}

	return "unknown"
}

func typeKeyword(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.StructType:
		return "struct"
	case *ast.InterfaceType:
		return "interface"
	}

	return typeString(expr)
}

func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.ArrayType:
		return "[]" + typeString(t.Elt)
	case *ast.Ellipsis:
		return "..." + typeString(t.Elt)
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *ast.ChanType:
		return "chan " + typeString(t.Value)
	case *ast.FuncType:
		return "func"
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.IndexExpr:
		return typeString(t.X) + "[" + typeString(t.Index) + "]"
	case *ast.IndexListExpr:
		parts := make([]string, 0, len(t.Indices))
		for _, idx := range t.Indices {
			parts = append(parts, typeString(idx))
		}

		return typeString(t.X) + "[" + strings.Join(parts, ", ") + "]"
	}

	return "unknown"
}

// debtFor computes the single debt entry an entity carries, if any.
func debtFor(entity m.Entity) (m.Debt, bool) {
	debt := m.Debt{
		Entity: entity.QualifiedName,
		File:   entity.File,
		Line:   entity.StartLine,
	}

	switch {
	case strings.TrimSpace(entity.Doc) == "":
		debt.Kind = m.DebtMissing
		debt.Severity = m.SeverityError
	case summaryLine(entity.Doc) == "":
		debt.Kind = m.DebtTooShort
		debt.Severity = m.SeverityWarning
	case len(entity.Parameters) > 0 && !hasParameterCoverage(entity.Doc, entity.Parameters):
		debt.Kind = m.DebtTooShort
		debt.Severity = m.SeverityWarning
	case hasStaleParameters(entity.Doc, entity.Parameters):
		debt.Kind = m.DebtStaleSignature
		debt.Severity = m.SeverityWarning
	default:
		return m.Debt{}, false
	}

	return debt, true
}

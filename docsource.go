package pact

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
)

type (
	// DocSource supplies the raw documentation text of a method. An
	// undocumented or unknown method yields "".
	DocSource interface {
		MethodDoc(method string) string
	}

	// DocSourceFunc adapts a function to DocSource.
	DocSourceFunc func(method string) string

	// DocTable maps method names to their raw documentation, comment
	// markers included. gen-pact-doctable writes one per receiver type.
	DocTable map[string]string

	// TypeDocs maps receiver type names to the documentation of their
	// methods.
	TypeDocs map[string]DocTable
)

func (f DocSourceFunc) MethodDoc(method string) string { return f(method) }

func (t DocTable) MethodDoc(method string) string { return t[method] }

// Methods returns the documented method names in sorted order.
func (t DocTable) Methods() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns the receiver type names in sorted order.
func (d TypeDocs) Types() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFile parses a Go source file and collects the documentation of
// every method declaration. src follows go/parser.ParseFile.
func ParseFile(filename string, src interface{}) (TypeDocs, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	docs := make(TypeDocs)
	CollectMethodDocs(docs, f)
	return docs, nil
}

// ParseDir is ParseFile over every non-test Go file of a directory.
func ParseDir(dir string) (TypeDocs, error) {
	fset := token.NewFileSet()

	pkgs, err := parser.ParseDir(fset, dir,
		func(fi fs.FileInfo) bool {
			return !strings.HasSuffix(fi.Name(), "_test.go")
		},
		parser.ParseComments)
	if err != nil {
		return nil, err
	}

	docs := make(TypeDocs)
	for _, pkg := range pkgs {
		for _, f := range pkg.Files {
			CollectMethodDocs(docs, f)
		}
	}
	return docs, nil
}

// CollectMethodDocs adds the documentation of the methods declared in f to
// docs. Methods without a doc comment are recorded with "".
func CollectMethodDocs(docs TypeDocs, f *ast.File) {
	astutil.Apply(f, func(c *astutil.Cursor) bool {
		switch node := c.Node().(type) {
		case *ast.File:
			return true
		case *ast.FuncDecl:
			typename := receiverTypeName(node)
			if len(typename) == 0 {
				return false
			}

			table, ok := docs[typename]
			if !ok {
				table = make(DocTable)
				docs[typename] = table
			}
			table[node.Name.Name] = rawCommentText(node.Doc)
		}
		return false
	}, nil)
}

func receiverTypeName(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return ""
	}

	var expr = decl.Recv.List[0].Type
	for {
		switch typedExpr := expr.(type) {
		case *ast.StarExpr:
			expr = typedExpr.X
		case *ast.ParenExpr:
			expr = typedExpr.X
		case *ast.IndexExpr:
			expr = typedExpr.X
		case *ast.IndexListExpr:
			expr = typedExpr.X
		case *ast.Ident:
			return typedExpr.Name
		default:
			return ""
		}
	}
}

// rawCommentText keeps the comment markers, unlike CommentGroup.Text, so
// the documentation reads as written in the source.
func rawCommentText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}

	lines := make([]string, 0, len(group.List))
	for _, comment := range group.List {
		lines = append(lines, comment.Text)
	}
	return strings.Join(lines, "\n")
}

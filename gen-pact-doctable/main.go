package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bofry/pact"
	"golang.org/x/mod/modfile"
)

var (
	osExit func(int) = os.Exit
	gofile string
)

func init() {
	flag.StringVar(&gofile, "target", "", "the source file declaring the documented methods")
}

func main() {
	var (
		outfile string
		err     error
	)
	flag.Parse()

	if gofile == "" {
		gofile = os.Getenv("GOFILE")
		if gofile == "" {
			throw("No file to parse.")
			exit(1)
			return
		}
	}

	fmt.Println(gofile)

	file, err := parseDocTableFile(gofile)
	if err != nil {
		throw(err.Error())
		exit(1)
		return
	}
	if len(file.Tables) == 0 {
		fmt.Printf("%s (no preconditions)\n", gofile)
		exit(0)
		return
	}

	if err = checkModuleRequirement(filepath.Dir(gofile)); err != nil {
		throw(err.Error())
		exit(1)
		return
	}

	outfile = extractfilename(gofile) + DOCTABLE_FILE_SUFFIX

	if err = writeFile(outfile, NewDocTableFileWriter(), file); err != nil {
		throw(err.Error())
		exit(1)
		return
	}

	fmt.Println(outfile)
	exit(0)
}

func writeFile(filename string, writer *DocTableFileWriter, file *DocTableFile) error {
	var buf bytes.Buffer
	if err := writer.Write(&buf, file); err != nil {
		return err
	}

	content, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("cannot format '%s' cause %v", filename, err)
	}
	return os.WriteFile(filename, content, 0o644)
}

func extractfilename(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

func throw(err string) {
	fmt.Fprintln(os.Stderr, err)
}

func exit(code int) {
	osExit(code)
}

func parseDocTableFile(gofile string) (*DocTableFile, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, gofile, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	docs := make(pact.TypeDocs)
	pact.CollectMethodDocs(docs, f)

	file := &DocTableFile{
		Generator:   GENERATOR_NAME,
		PackageName: f.Name.Name,
	}
	for _, typename := range docs.Types() {
		table := docs[typename]

		docTable := &DocTableType{
			Name:     typename + DOCTABLE_TYPE_SUFFIX,
			TypeName: typename,
		}
		for _, method := range table.Methods() {
			doc := table.MethodDoc(method)

			// keep only methods declaring preconditions
			if n := len(pact.ExtractPreconditions(doc)); n > 0 {
				docTable.Methods = append(docTable.Methods, &MethodDoc{
					Name:       method,
					Doc:        doc,
					Conditions: n,
				})
			}
		}

		if len(docTable.Methods) > 0 {
			file.Tables = append(file.Tables, docTable)
		}
	}
	return file, nil
}

// checkModuleRequirement warns when the module enclosing dir does not
// require the pact module the generated code imports.
func checkModuleRequirement(dir string) error {
	gomod, err := findGoMod(dir)
	if err != nil {
		return err
	}
	if gomod == "" {
		return nil
	}

	content, err := os.ReadFile(gomod)
	if err != nil {
		return err
	}
	mod, err := modfile.Parse(gomod, content, nil)
	if err != nil {
		return err
	}

	if mod.Module != nil && mod.Module.Mod.Path == PACT_MODULE_PATH {
		return nil
	}
	for _, require := range mod.Require {
		if require.Mod.Path == PACT_MODULE_PATH {
			return nil
		}
	}
	throw(fmt.Sprintf("warning: %s does not require %s; run 'go get %s'", gomod, PACT_MODULE_PATH, PACT_MODULE_PATH))
	return nil
}

func findGoMod(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, GO_MOD_FILE)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

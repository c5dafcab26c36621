package main

import (
	"fmt"
	"io"
	"text/template"
)

const (
	DOCTABLE_FILE_TEMPLATE = `// Code generated by {{.Generator}}. DO NOT EDIT.

package {{.PackageName}}

import (
	pact "github.com/Bofry/pact"
)
`

	DOCTABLE_TYPE_TEMPLATE = `
// {{.Name}} holds the documentation of the {{.TypeName}} methods declaring preconditions.
var {{.Name}} = pact.DocTable{
{{- range .Methods}}
	{{printf "%q" .Name}}: {{printf "%q" .Doc}},
{{- end}}
}
`
)

var (
	DocTableFileTemplate *template.Template
	DocTableTypeTemplate *template.Template
)

func init() {
	{
		tmpl, err := template.New("DocTableFile").Parse(DOCTABLE_FILE_TEMPLATE)
		if err != nil {
			panic(err)
		}
		DocTableFileTemplate = tmpl
	}

	{
		tmpl, err := template.New("DocTableType").Parse(DOCTABLE_TYPE_TEMPLATE)
		if err != nil {
			panic(err)
		}
		DocTableTypeTemplate = tmpl
	}
}

type DocTableFileWriter struct {
	fileTemplate *template.Template
	typeTemplate *template.Template
}

func NewDocTableFileWriter() *DocTableFileWriter {
	return &DocTableFileWriter{
		fileTemplate: DocTableFileTemplate,
		typeTemplate: DocTableTypeTemplate,
	}
}

func (w *DocTableFileWriter) Write(writer io.Writer, file *DocTableFile) error {
	// write header, package name and imports
	err := w.fileTemplate.Execute(writer, file)
	if err != nil {
		return err
	}

	// write tables
	for _, t := range file.Tables {
		if t != nil {
			err = w.WriteType(writer, t)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *DocTableFileWriter) WriteType(writer io.Writer, t *DocTableType) error {
	if len(t.Methods) == 0 {
		return fmt.Errorf("doc table %q has no method", t.Name)
	}
	return w.typeTemplate.Execute(writer, t)
}

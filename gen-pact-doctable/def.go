package main

const (
	GENERATOR_NAME       string = "gen-pact-doctable"
	PACT_MODULE_PATH     string = "github.com/Bofry/pact"
	DOCTABLE_TYPE_SUFFIX string = "DocTable"
	DOCTABLE_FILE_SUFFIX string = "DocTable_gen.go"
	GO_MOD_FILE          string = "go.mod"
)

type (
	DocTableFile struct {
		Generator   string
		PackageName string
		Tables      []*DocTableType
	}

	DocTableType struct {
		Name     string
		TypeName string
		Methods  []*MethodDoc
	}

	MethodDoc struct {
		Name       string
		Doc        string
		Conditions int
	}
)

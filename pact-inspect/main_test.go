package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bofry/pact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	_FILE_BANK_GO = `package bank

type Account struct {
	Balance int
}

type Bank struct{}

// Transfer moves amount between accounts.
//
// @param Account from
// @param Account to
// @param int amount
// @pre positive 3
func (b *Bank) Transfer(from, to *Account, amount int) error {
	return nil
}

// Open opens an account.
// @param string owner
// @pre nonEmpty 1
// @pre unique_owner 1
func (b *Bank) Open(owner string) *Account {
	return &Account{}
}

func (b *Bank) Close() {}

type Audit struct{}

// @param mixed event
func (a Audit) Record(event interface{}) {}
`

	_FILE_CHECKS_YAML = `checks:
  - name: unique_owner
    expr: size(value) > 3
`
)

func setup(t *testing.T) string {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "bank.go"), []byte(_FILE_BANK_GO), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "checks.yaml"), []byte(_FILE_CHECKS_YAML), 0o644))
	return tmp
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspect_Text(t *testing.T) {
	tmp := setup(t)

	out, err := execute(filepath.Join(tmp, "bank.go"))
	require.NoError(t, err)

	expected := strings.Join([]string{
		"Audit",
		"  Record",
		"    basic mixed event #1",
		"Bank",
		"  Open",
		"    basic string owner #1",
		"    custom nonEmpty #1",
		"    custom unique_owner #1 (unresolved)",
		"  Transfer",
		"    class Account from #1",
		"    class Account to #2",
		"    basic int amount #3",
		"    custom positive #3",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestInspect_TypeFilterAndChecks(t *testing.T) {
	tmp := setup(t)

	out, err := execute(tmp,
		"--type", "Bank",
		"--checks", filepath.Join(tmp, "checks.yaml"),
		"--strict")
	require.NoError(t, err)

	assert.NotContains(t, out, "Audit")
	assert.NotContains(t, out, "unresolved")
	assert.Contains(t, out, "    custom unique_owner #1\n")
}

func TestInspect_Strict(t *testing.T) {
	tmp := setup(t)

	out, err := execute(filepath.Join(tmp, "bank.go"), "--strict")
	require.Error(t, err)
	assert.Equal(t, "1 custom check(s) unresolved", err.Error())
	assert.Contains(t, out, "(unresolved)")
}

func TestInspect_YAML(t *testing.T) {
	tmp := setup(t)

	out, err := execute(filepath.Join(tmp, "bank.go"), "-o", "yaml", "-t", "Bank")
	require.NoError(t, err)

	var report Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.Len(t, report.Types, 1)

	bank := report.Types[0]
	assert.Equal(t, "Bank", bank.Name)
	require.Len(t, bank.Methods, 2)
	assert.Equal(t, "Open", bank.Methods[0].Name)

	open := bank.Methods[0].Conditions
	require.Len(t, open, 3)
	assert.Equal(t, pact.Condition{Check: pact.BasicCheck, Type: "string", Param: 1, Name: "owner"}, open[0].Condition)
	assert.Nil(t, open[0].Resolved)
	require.NotNil(t, open[2].Resolved)
	assert.False(t, *open[2].Resolved)

	assert.Equal(t, 1, report.Unresolved())
}

func TestInspect_Errors(t *testing.T) {
	tmp := setup(t)

	_, err := execute(filepath.Join(tmp, "missing.go"))
	assert.Error(t, err)

	_, err = execute(filepath.Join(tmp, "bank.go"), "-o", "json")
	assert.EqualError(t, err, `unknown output format "json"`)

	_, err = execute()
	assert.Error(t, err)

	_, err = execute(filepath.Join(tmp, "bank.go"), "--checks", filepath.Join(tmp, "missing.yaml"))
	assert.Error(t, err)
}

func TestMain_ExitCode(t *testing.T) {
	tmp := setup(t)

	var code = -1
	osExit = func(i int) {
		code = i
	}
	t.Cleanup(func() {
		osExit = os.Exit
	})

	os.Args = []string{"pact-inspect", filepath.Join(tmp, "bank.go"), "--strict", "-o", "yaml"}

	defaultStdout := os.Stdout
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	os.Stdout = devnull
	defer func() {
		os.Stdout = defaultStdout
		devnull.Close()
	}()

	main()
	assert.Equal(t, 1, code)
}

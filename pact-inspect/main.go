package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Bofry/pact"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	osExit func(int) = os.Exit
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		throw(err.Error())
		exit(1)
	}
}

func throw(err string) {
	fmt.Fprintln(os.Stderr, err)
}

func exit(code int) {
	osExit(code)
}

func newRootCommand() *cobra.Command {
	var (
		typename   string
		output     string
		checksFile string
		strict     bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "pact-inspect <file-or-dir>",
		Short: "List the preconditions documented on Go methods",
		Long: `pact-inspect parses Go source and lists, per receiver type, the
preconditions declared by @param and @pre lines in method documentation.
Custom checks are resolved against the built-in checks and, with --checks,
against a check definition file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case OUTPUT_TEXT, OUTPUT_YAML:
			default:
				return fmt.Errorf("unknown output format %q", output)
			}

			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
				defer logger.Sync()
			}

			checks := pact.DefaultChecks
			if len(checksFile) > 0 {
				c, err := pact.LoadChecks(checksFile)
				if err != nil {
					return err
				}
				checks = c
				logger.Debug("loaded checks",
					zap.String("file", checksFile),
					zap.Strings("checks", checks.Names()))
			}

			report, err := inspect(args[0], typename, checks, logger)
			if err != nil {
				return err
			}

			if output == OUTPUT_YAML {
				err = writeYAML(cmd.OutOrStdout(), report)
			} else {
				err = writeText(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}

			if n := report.Unresolved(); strict && n > 0 {
				return fmt.Errorf("%d custom check(s) unresolved", n)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&typename, "type", "t", "", "only inspect the methods of this receiver type")
	flags.StringVarP(&output, "output", "o", OUTPUT_TEXT, "output format: text or yaml")
	flags.StringVar(&checksFile, "checks", "", "check definition file (YAML)")
	flags.BoolVar(&strict, "strict", false, "fail when a custom check is unresolved")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	return cmd
}

func inspect(target string, typename string, checks *pact.Checks, logger *zap.Logger) (*Report, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	var docs pact.TypeDocs
	if info.IsDir() {
		docs, err = pact.ParseDir(target)
	} else {
		docs, err = pact.ParseFile(target, nil)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed source",
		zap.String("target", target),
		zap.Int("types", len(docs)))

	report := new(Report)
	for _, name := range docs.Types() {
		if len(typename) > 0 && name != typename {
			continue
		}

		var (
			table      = docs[name]
			typeReport = &TypeReport{Name: name}
			p          = pact.New(nil, table,
				pact.WithLogger(logger.With(zap.String("type", name))),
				pact.WithChecks(checks))
		)
		for _, method := range table.Methods() {
			if !p.HasPrecondition(method) {
				continue
			}
			conditions, err := p.GetConditions(pact.Pre, method)
			if err != nil {
				return nil, err
			}

			methodReport := &MethodReport{Name: method}
			for _, cond := range conditions {
				conditionReport := &ConditionReport{Condition: cond}
				if cond.Check == pact.CustomCheck {
					_, ok := checks.Lookup(cond.Type)
					conditionReport.Resolved = &ok
				}
				methodReport.Conditions = append(methodReport.Conditions, conditionReport)
			}
			typeReport.Methods = append(typeReport.Methods, methodReport)
		}

		if len(typeReport.Methods) > 0 {
			report.Types = append(report.Types, typeReport)
		}
	}
	return report, nil
}

func writeText(w io.Writer, report *Report) error {
	for _, t := range report.Types {
		if _, err := fmt.Fprintln(w, t.Name); err != nil {
			return err
		}
		for _, m := range t.Methods {
			if _, err := fmt.Fprintf(w, "  %s\n", m.Name); err != nil {
				return err
			}
			for _, c := range m.Conditions {
				var suffix string
				if c.Resolved != nil && !*c.Resolved {
					suffix = " (unresolved)"
				}
				if _, err := fmt.Fprintf(w, "    %s%s\n", c.Condition, suffix); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeYAML(w io.Writer, report *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

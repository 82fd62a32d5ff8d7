package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goflags "github.com/jessevdk/go-flags"
)

// buildParser constructs the go-flags parser bound to a fresh Options.
func buildParser() (*goflags.Parser, *Options) {
	var opts Options

	parser := goflags.NewParser(&opts, goflags.Default)
	parser.Name = "reports"
	parser.Usage = "-db NAME [-o PATH] [OPTIONS]"
	parser.LongDescription = "Append the top authors, top articles and high error-rate days of a news database to a text report."

	return parser, &opts
}

// Run is the main entry point for the reports CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and generates the
// reports.
func RunWithArgs(version string, args []string) error {
	if args == nil {
		args = os.Args[1:]
	}
	args = normalizeArgs(args)

	// --version is valid without the otherwise required --db_name.
	for _, arg := range args {
		if arg == "--version" {
			fmt.Printf("reports %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, opts := buildParser()
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return opts.run()
}

// normalizeArgs rewrites the two-letter single-dash spelling -db, which
// go-flags would read as -d with value "b", into --db_name.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		switch {
		case arg == "-db":
			arg = "--db_name"
		case strings.HasPrefix(arg, "-db="):
			arg = "--db_name=" + strings.TrimPrefix(arg, "-db=")
		}
		out = append(out, arg)
	}
	return out
}

// defaultOutputPath derives the report file name from the running binary.
func defaultOutputPath() string {
	return outputPathFor(os.Args[0])
}

// outputPathFor returns "<name>.txt" where name is the program's base name
// up to its first dot.
func outputPathFor(program string) string {
	name, _, _ := strings.Cut(filepath.Base(program), ".")
	if name == "" {
		name = "reports"
	}
	return name + ".txt"
}

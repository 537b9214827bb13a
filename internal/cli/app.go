// pattern: Functional Core
package cli

import (
	"errors"
	"fmt"
	"io"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitAttention   = 2
	ExitInterrupted = 130
)

// App is the git-ahead command line.
type App struct {
	version string
	stdout  io.Writer
	stderr  io.Writer
	scan    func(opts Options) int
}

// NewApp creates the application writing to stdout and stderr.
func NewApp(version string, stdout, stderr io.Writer) *App {
	a := &App{
		version: version,
		stdout:  stdout,
		stderr:  stderr,
	}
	a.scan = a.runScan
	return a
}

// Execute parses args (without the program name), runs the scan and
// returns the process exit code.
func (a *App) Execute(args []string) int {
	opts, err := ParseArgs(args)
	if err != nil {
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(a.stderr, usage.Error())
			return ExitError
		}
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return ExitError
	}

	if opts.Help {
		a.PrintHelp(a.stdout)
		return ExitOK
	}

	if opts.Version {
		fmt.Fprintln(a.stdout, a.version)
		return ExitOK
	}

	return a.scan(opts)
}

// PrintHelp prints the usage text.
func (a *App) PrintHelp(w io.Writer) {
	var opts Options
	fs := newFlagSet(&opts)

	fmt.Fprintf(w, "Usage: git-ahead [options] [path]\n\n")
	fmt.Fprintf(w, "Both options and path are optional (cwd will be used).\n\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintf(w, "      --                        Stops parsing options, put this before your path if it starts with `-`\n")
}

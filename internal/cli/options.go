// pattern: Functional Core
package cli

import (
	"io"

	flag "github.com/spf13/pflag"

	"gitahead/internal/config"
)

// UsageError is a command line mistake; it is printed as-is with exit 1.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

// Options is the parsed command line.
type Options struct {
	Path            string
	Help            bool
	Version         bool
	Dev             bool
	SkipUntracked   bool
	Concurrency     int
	NoFetch         bool
	Flat            bool
	MaxFiles        int
	JSON            bool
	Progress        string
	ConfigDir       string
	Verbose         bool
	FailOnAttention bool

	set map[string]bool
}

// newFlagSet registers every flag on a fresh FlagSet bound to opts.
func newFlagSet(opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet("git-ahead", flag.ContinueOnError)
	fs.SortFlags = false

	fs.BoolVar(&opts.SkipUntracked, "skip-untracked", false, "Skips checking for untracked files")
	fs.BoolVarP(&opts.Dev, "dev", "d", false, "Dev mode (loads and writes data into cache file for testing formatting)")
	fs.IntVarP(&opts.Concurrency, "concurrency", "j", 1, "Projects inspected at once (0 = all)")
	fs.BoolVar(&opts.NoFetch, "no-fetch", false, "Skips git fetch, inspects local state only")
	fs.BoolVar(&opts.Flat, "flat", false, "Lists results per category instead of per project")
	fs.IntVar(&opts.MaxFiles, "max-files", 5, "Files listed per project before summarizing")
	fs.BoolVar(&opts.JSON, "json", false, "Prints the results as JSON")
	fs.StringVar(&opts.Progress, "progress", config.ProgressPlain, "Progress display: plain, spinner or none")
	fs.StringVarP(&opts.ConfigDir, "config-dir", "c", "", "Config directory (default: ~/.config/git-ahead)")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Mirrors debug logs to stderr")
	fs.BoolVar(&opts.FailOnAttention, "fail-on-attention", false, "Exits with code 2 when a project needs attention")
	fs.BoolVarP(&opts.Help, "help", "h", false, "Prints this help")
	fs.BoolVarP(&opts.Version, "version", "v", false, "Prints version info")

	return fs
}

// ParseArgs parses args (without the program name).
//
// Help wins over everything except unknown flags. Argument count errors are
// reported before --version is honored.
func ParseArgs(args []string) (Options, error) {
	var opts Options
	fs := newFlagSet(&opts)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return opts, &UsageError{msg: err.Error()}
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if opts.Help {
		return opts, nil
	}

	rest := fs.Args()
	if len(rest) > 1 {
		return opts, &UsageError{msg: "Too many arguments"}
	}
	if dash := fs.ArgsLenAtDash(); dash >= 0 && dash == len(rest) {
		return opts, &UsageError{msg: "No path after --"}
	}
	if len(rest) == 1 {
		opts.Path = rest[0]
	}
	return opts, nil
}

// Apply overrides cfg with the flags given explicitly on the command line.
func (o Options) Apply(cfg *config.Config) {
	if o.set["skip-untracked"] {
		cfg.SkipUntracked = o.SkipUntracked
	}
	if o.set["concurrency"] {
		cfg.Concurrency = o.Concurrency
	}
	if o.set["flat"] {
		cfg.GroupByProject = !o.Flat
	}
	if o.set["max-files"] {
		cfg.MaxFiles = o.MaxFiles
	}
	if o.set["progress"] {
		cfg.Progress = o.Progress
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
}

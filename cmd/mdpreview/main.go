// Command mdpreview renders Markdown to themed HTML previews.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	env.withVerbosity(hasVerboseFlag(os.Args[1:]))
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		env.Logger.Debug(fmt.Sprintf(format, args...))
	}))

	os.Exit(runMain(os.Args, env))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]

	var err error
	switch {
	case isCommand(cmd, "render"):
		err = runRender(ctx, rest, env)
	case isCommand(cmd, "watch"):
		err = runWatch(ctx, rest, env)
	case isCommand(cmd, "css"):
		err = runCSS(rest, env)
	case isCommand(cmd, "stats"):
		err = runStats(rest, env)
	case isCommand(cmd, "config"):
		err = runConfig(rest, env)
	case isCommand(cmd, "completion"):
		err = runCompletion(rest, env)
	case isCommand(cmd, "version", "--version"):
		fmt.Fprintf(env.Stdout, "go-mdpreview %s\n", Version)
	case isCommand(cmd, "help", "-h", "--help"):
		err = runHelp(rest, env)
	case looksLikeMarkdown(cmd):
		err = runRender(ctx, args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// isCommand reports whether arg is one of the given command names.
func isCommand(arg string, names ...string) bool {
	for _, n := range names {
		if arg == n {
			return true
		}
	}
	return false
}

// looksLikeMarkdown reports whether arg names a markdown file, which
// selects render as the implicit command.
func looksLikeMarkdown(arg string) bool {
	return fileutil.IsMarkdown(arg)
}

// hasVerboseFlag scans raw args for -v or --verbose before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

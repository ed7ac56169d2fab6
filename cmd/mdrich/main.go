package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdrich/internal/config"
	"github.com/alnah/go-mdrich/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// command runs one subcommand with its own arguments.
type command func(ctx context.Context, args []string, env *Environment) error

var commands = map[string]command{
	"fmt":  runFmt,
	"html": runHTML,
	"tree": runTree,
	"type": runType,
}

// isCommand reports whether name is a known subcommand.
func isCommand(name string) bool {
	if _, ok := commands[name]; ok {
		return true
	}
	return name == "version" || name == "help"
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	name, rest := args[1], args[2:]
	switch name {
	case "version":
		fmt.Fprintf(env.Stdout, "mdrich %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", name)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := cmd(ctx, rest, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runHelp prints general or per-command usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if !printCommandUsage(env.Stdout, args[0]) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		return ExitUsage
	}
	return ExitSuccess
}

// hintFor returns an actionable hint for err, if any.
func hintFor(err error) string {
	var ruleErr *unknownRuleError
	switch {
	case errors.As(err, &ruleErr):
		return hints.ForUnknownRule(ruleErr.group, ruleErr.available)
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(searchedPaths(err))
	case errors.Is(err, ErrCheckFailed):
		return hints.ForCheckFailed()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

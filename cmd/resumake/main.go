package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	env := DefaultEnv()

	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "convert":
		return runConvertCmd(commandArgs, env)
	case "serve":
		return runServeCmd(commandArgs, env)
	case "version":
		fmt.Fprintf(env.Stdout, "resumake %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(commandArgs, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", command)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runConvertCmd parses flags, sets up the service pool, and runs conversion.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	// Configure GOMAXPROCS for containers. Error ignored: maxprocs.Set only
	// fails on an invalid GOMAXPROCS env value, in which case Go runtime
	// defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	poolSize := resolvePoolSize(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := NewServicePool(poolSize, flags.timeout)
	defer func() {
		if err := pool.Close(); err != nil {
			fmt.Fprintf(env.Stderr, "closing pool: %v\n", err)
		}
	}()

	ctx, stop := notifyContext()
	defer stop()

	if err := runConvert(ctx, positional, flags, pool, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runServeCmd parses flags and starts the preview server.
func runServeCmd(args []string, env *Environment) int {
	flags, err := parseServeFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext()
	defer stop()

	if err := runServe(ctx, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

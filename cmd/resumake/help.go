package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumake <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert resume markdown files to PDF or HTML")
	fmt.Fprintln(w, "  serve      Start the live preview server")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'resumake help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumake convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert resume markdown files to PDF or HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --two-column          Classify sections into a two-column layout")
	fmt.Fprintln(w, "      --two-page            Split pages at a '<!-- pagebreak -->' comment")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -T, --template <s>        Template: professional, modern, minimalist,")
	fmt.Fprintln(w, "                            creative, executive (default: professional)")
	fmt.Fprintln(w, "  -p, --paper-size <s>      Paper size: a4, letter (default: a4)")
	fmt.Fprintln(w, "      --custom-css <path>   User override CSS for the active template")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Attachments:")
	fmt.Fprintln(w, "      --file-url <s>        URL of an uploaded attachment to resolve")
	fmt.Fprintln(w, "      --file-name <s>       Display name of the uploaded attachment")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --html                Output HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Output HTML only, skip PDF")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumake serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Start the live preview server.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  POST /render                   Render a complete HTML document")
	fmt.Fprintln(w, "  POST /export                   Export a PDF")
	fmt.Fprintln(w, "  GET  /styles.css               Composed stylesheet for the preview")
	fmt.Fprintln(w, "  GET  /templates                List available templates")
	fmt.Fprintln(w, "  PUT  /templates/{name}/css     Set a template's override CSS")
	fmt.Fprintln(w, "  DEL  /templates/{name}/css     Remove a template's override CSS")
	fmt.Fprintln(w, "  POST /styles/clear             Clear all override CSS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -T, --template <s>        Default template")
	fmt.Fprintln(w, "  -p, --paper-size <s>      Default paper size")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: resumake version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: resumake help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

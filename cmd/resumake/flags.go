package main

import (
	"os"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// layoutFlags holds layout mode flags.
type layoutFlags struct {
	twoColumn bool
	twoPage   bool
}

// styleFlags holds template and paper flags.
type styleFlags struct {
	template  string
	paperSize string
	customCSS string // path to a user override stylesheet
}

// uploadFlags holds attachment reference flags.
type uploadFlags struct {
	fileURL  string
	fileName string
}

// outputModeFlags holds output mode flags for debugging.
type outputModeFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    time.Duration
	layout     layoutFlags
	style      styleFlags
	upload     uploadFlags
	outputMode outputModeFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
	style  styleFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addLayoutFlags adds layout mode flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.BoolVar(&f.twoColumn, "two-column", false, "classify sections into a two-column layout")
	fs.BoolVar(&f.twoPage, "two-page", false, "split content into two pages at a pagebreak comment")
}

// addStyleFlags adds template and paper flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.template, "template", "T", "", "template: professional, modern, minimalist, creative, executive")
	fs.StringVarP(&f.paperSize, "paper-size", "p", "", "paper size: a4, letter")
	fs.StringVar(&f.customCSS, "custom-css", "", "user override CSS file for the active template")
}

// addUploadFlags adds attachment reference flags to a FlagSet.
func addUploadFlags(fs *flag.FlagSet, f *uploadFlags) {
	fs.StringVar(&f.fileURL, "file-url", "", "URL of an uploaded attachment to resolve")
	fs.StringVar(&f.fileName, "file-name", "", "display name of the uploaded attachment")
}

// addOutputModeFlags adds output mode flags to a FlagSet.
func addOutputModeFlags(fs *flag.FlagSet, f *outputModeFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	addStyleFlags(fs, &f.style)
	addUploadFlags(fs, &f.upload)
	addOutputModeFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)

	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	resumake "github.com/resumake/go-resumake"
	"github.com/resumake/go-resumake/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// pagebreakMarker splits two-page input into first and second page content.
const pagebreakMarker = "<!-- pagebreak -->"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// conversionParams groups parameters shared across batch conversion.
type conversionParams struct {
	layout     layoutFlags
	upload     uploadFlags
	opts       resumake.DisplayOptions
	htmlOnly   bool
	htmlOutput bool
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, pool Pool, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir, flags.outputMode.htmlOnly)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	opts, err := buildDisplayOptions(cfg, flags.style.customCSS)
	if err != nil {
		return err
	}

	params := &conversionParams{
		layout: layoutFlags{
			twoColumn: cfg.Layout.TwoColumn,
			twoPage:   cfg.Layout.TwoPage,
		},
		upload: uploadFlags{
			fileURL:  cfg.Upload.FileURL,
			fileName: cfg.Upload.FileName,
		},
		opts:       opts,
		htmlOnly:   flags.outputMode.htmlOnly,
		htmlOutput: flags.outputMode.html,
	}

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.style.template != "" {
		cfg.Template.Name = flags.style.template
	}
	if flags.style.paperSize != "" {
		cfg.Page.Size = flags.style.paperSize
	}
	if flags.layout.twoColumn {
		cfg.Layout.TwoColumn = true
	}
	if flags.layout.twoPage {
		cfg.Layout.TwoPage = true
	}
	if flags.upload.fileURL != "" {
		cfg.Upload.FileURL = flags.upload.fileURL
	}
	if flags.upload.fileName != "" {
		cfg.Upload.FileName = flags.upload.fileName
	}
}

// validateWorkers rejects negative worker counts.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, n)
	}
	return nil
}

// buildDisplayOptions composes the full stylesheet for the active template
// through a style registry, so file output carries the same cascade the
// preview server serves.
func buildDisplayOptions(cfg *config.Config, customCSSPath string) (resumake.DisplayOptions, error) {
	registry := resumake.NewStyleRegistry()
	sink := &resumake.MemorySink{}
	registry.Init(sink)
	defer registry.Dispose()

	for name, css := range cfg.Template.CustomCSS {
		registry.AddTemplateCSS(name, css)
	}

	if customCSSPath != "" {
		content, err := os.ReadFile(customCSSPath) // #nosec G304 -- user-provided path
		if err != nil {
			return resumake.DisplayOptions{}, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		registry.AddTemplateCSS(cfg.Template.Name, string(content))
	}

	return resumake.DisplayOptions{
		PaperSize:   cfg.Page.Size,
		Template:    cfg.Template.Name,
		TemplateCSS: registry.ComposedCSS(),
	}, nil
}

// buildContent maps raw markdown into layout-aware content.
func buildContent(markdown string, layout layoutFlags, upload uploadFlags) resumake.ResumeContent {
	content := resumake.ResumeContent{
		Markdown:         markdown,
		TwoColumn:        layout.twoColumn,
		TwoPage:          layout.twoPage,
		UploadedFileURL:  upload.fileURL,
		UploadedFileName: upload.fileName,
	}

	if layout.twoColumn {
		split := resumake.SplitMarkdownForTwoColumn(markdown)
		content.Header = split.Header
		content.Summary = split.Summary
		content.LeftColumn = split.LeftColumn
		content.RightColumn = split.RightColumn
	}

	if layout.twoPage {
		first, second, found := strings.Cut(markdown, pagebreakMarker)
		content.FirstPage = strings.TrimSpace(first)
		if found {
			content.SecondPage = strings.TrimSpace(second)
		}
	}

	return content
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// discoverFiles finds all markdown files to convert.
func discoverFiles(inputPath, outputDir string, htmlOnly bool) ([]FileToConvert, error) {
	outExt := ".pdf"
	if htmlOnly {
		outExt = ".html"
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", outExt)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, outExt)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir, outExt string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+outExt)
	}

	if strings.HasSuffix(outputDir, outExt) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+outExt)
		}
	}

	return filepath.Join(outputDir, base+outExt)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := filepath.Ext(path)
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

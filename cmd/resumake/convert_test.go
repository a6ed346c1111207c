package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/resumake/go-resumake/internal/config"
)

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	flags := &convertFlags{
		style:  styleFlags{template: "modern", paperSize: "letter"},
		layout: layoutFlags{twoColumn: true},
		upload: uploadFlags{fileURL: "blob:x", fileName: "cv.pdf"},
	}

	mergeFlags(flags, cfg)

	if cfg.Template.Name != "modern" {
		t.Errorf("Template.Name = %q, want %q", cfg.Template.Name, "modern")
	}
	if cfg.Page.Size != "letter" {
		t.Errorf("Page.Size = %q, want %q", cfg.Page.Size, "letter")
	}
	if !cfg.Layout.TwoColumn {
		t.Error("Layout.TwoColumn should be set")
	}
	if cfg.Layout.TwoPage {
		t.Error("Layout.TwoPage should stay unset")
	}
	if cfg.Upload.FileURL != "blob:x" || cfg.Upload.FileName != "cv.pdf" {
		t.Errorf("upload = %q/%q, want flag values", cfg.Upload.FileURL, cfg.Upload.FileName)
	}
}

func TestMergeFlagsEmptyFlagsKeepConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Template.Name = "executive"

	mergeFlags(&convertFlags{}, cfg)

	if cfg.Template.Name != "executive" {
		t.Errorf("empty flags should not override config, got %q", cfg.Template.Name)
	}
}

func TestBuildContent(t *testing.T) {
	t.Parallel()

	t.Run("single column", func(t *testing.T) {
		t.Parallel()

		content := buildContent("# Jane", layoutFlags{}, uploadFlags{})
		if content.Markdown != "# Jane" {
			t.Errorf("Markdown = %q", content.Markdown)
		}
		if content.TwoColumn || content.TwoPage {
			t.Error("layout flags should stay unset")
		}
	})

	t.Run("two column splits sections", func(t *testing.T) {
		t.Parallel()

		md := "# A\nX@y.com\n\n## Skills\nGo\n\n## Experience\nAcme"
		content := buildContent(md, layoutFlags{twoColumn: true}, uploadFlags{})

		if !content.TwoColumn {
			t.Fatal("TwoColumn should be set")
		}
		if content.Header != "# A\nX@y.com" {
			t.Errorf("Header = %q", content.Header)
		}
		if !strings.Contains(content.LeftColumn, "Skills") {
			t.Errorf("LeftColumn = %q", content.LeftColumn)
		}
		if !strings.Contains(content.RightColumn, "Experience") {
			t.Errorf("RightColumn = %q", content.RightColumn)
		}
	})

	t.Run("two page splits at marker", func(t *testing.T) {
		t.Parallel()

		md := "# Page One\n\n" + pagebreakMarker + "\n\n# Page Two"
		content := buildContent(md, layoutFlags{twoPage: true}, uploadFlags{})

		if content.FirstPage != "# Page One" {
			t.Errorf("FirstPage = %q", content.FirstPage)
		}
		if content.SecondPage != "# Page Two" {
			t.Errorf("SecondPage = %q", content.SecondPage)
		}
	})

	t.Run("two page without marker keeps all on first page", func(t *testing.T) {
		t.Parallel()

		content := buildContent("# Only Page", layoutFlags{twoPage: true}, uploadFlags{})

		if content.FirstPage != "# Only Page" {
			t.Errorf("FirstPage = %q", content.FirstPage)
		}
		if content.SecondPage != "" {
			t.Errorf("SecondPage = %q, want empty", content.SecondPage)
		}
	})

	t.Run("upload fields forwarded", func(t *testing.T) {
		t.Parallel()

		content := buildContent("x", layoutFlags{}, uploadFlags{fileURL: "blob:x", fileName: "cv.pdf"})
		if content.UploadedFileURL != "blob:x" || content.UploadedFileName != "cv.pdf" {
			t.Errorf("upload = %q/%q", content.UploadedFileURL, content.UploadedFileName)
		}
	})
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		outExt       string
		expected     string
	}{
		{
			name:      "sibling pdf by default",
			inputPath: filepath.Join("docs", "resume.md"),
			outExt:    ".pdf",
			expected:  filepath.Join("docs", "resume.pdf"),
		},
		{
			name:      "explicit output file",
			inputPath: "resume.md",
			outputDir: filepath.Join("out", "final.pdf"),
			outExt:    ".pdf",
			expected:  filepath.Join("out", "final.pdf"),
		},
		{
			name:      "output directory",
			inputPath: "resume.md",
			outputDir: "out",
			outExt:    ".pdf",
			expected:  filepath.Join("out", "resume.pdf"),
		},
		{
			name:         "directory structure preserved",
			inputPath:    filepath.Join("in", "sub", "resume.md"),
			outputDir:    "out",
			baseInputDir: "in",
			outExt:       ".pdf",
			expected:     filepath.Join("out", "sub", "resume.pdf"),
		},
		{
			name:      "html extension",
			inputPath: "resume.md",
			outExt:    ".html",
			expected:  "resume.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.inputPath, tt.outputDir, tt.baseInputDir, tt.outExt)
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidateMarkdownExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"resume.md", false},
		{"resume.markdown", false},
		{"resume.txt", true},
		{"resume", true},
	}

	for _, tt := range tests {
		err := validateMarkdownExtension(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateMarkdownExtension(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	if err := validateWorkers(0); err != nil {
		t.Errorf("validateWorkers(0) error = %v", err)
	}
	if err := validateWorkers(4); err != nil {
		t.Errorf("validateWorkers(4) error = %v", err)
	}
	if err := validateWorkers(-1); err == nil {
		t.Error("validateWorkers(-1) should error")
	}
}

func TestHTMLOutputPath(t *testing.T) {
	t.Parallel()

	if got := htmlOutputPath(filepath.Join("out", "resume.pdf")); got != filepath.Join("out", "resume.html") {
		t.Errorf("htmlOutputPath() = %q", got)
	}
}

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if got, err := resolveInputPath([]string{"resume.md"}, cfg); err != nil || got != "resume.md" {
		t.Errorf("positional arg: got %q, %v", got, err)
	}

	cfg.Input.DefaultDir = "docs"
	if got, err := resolveInputPath(nil, cfg); err != nil || got != "docs" {
		t.Errorf("config default: got %q, %v", got, err)
	}

	cfg.Input.DefaultDir = ""
	if _, err := resolveInputPath(nil, cfg); err == nil {
		t.Error("no input should error")
	}
}

package resumake

import "testing"

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       *pdfOptions
		wantWidth  float64
		wantHeight float64
	}{
		{"nil options default to a4", nil, 8.27, 11.69},
		{"a4", &pdfOptions{PaperSize: "a4"}, 8.27, 11.69},
		{"letter", &pdfOptions{PaperSize: "letter"}, 8.5, 11.0},
		{"us_letter alias", &pdfOptions{PaperSize: "us_letter"}, 8.5, 11.0},
		{"unknown defaults to a4", &pdfOptions{PaperSize: "legal"}, 8.27, 11.69},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPDFOptions(tt.opts)

			if *got.PaperWidth != tt.wantWidth || *got.PaperHeight != tt.wantHeight {
				t.Errorf("paper = %v x %v, want %v x %v",
					*got.PaperWidth, *got.PaperHeight, tt.wantWidth, tt.wantHeight)
			}
			if !got.PrintBackground {
				t.Error("PrintBackground must be enabled")
			}
			if !got.PreferCSSPageSize {
				t.Error("PreferCSSPageSize must be enabled")
			}
			for name, margin := range map[string]*float64{
				"top":    got.MarginTop,
				"bottom": got.MarginBottom,
				"left":   got.MarginLeft,
				"right":  got.MarginRight,
			} {
				if *margin != 0 {
					t.Errorf("margin %s = %v, want 0", name, *margin)
				}
			}
		})
	}
}

func TestFloatPtr(t *testing.T) {
	t.Parallel()

	p := floatPtr(1.5)
	if *p != 1.5 {
		t.Errorf("*floatPtr(1.5) = %v, want 1.5", *p)
	}
}

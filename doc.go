// Package resumake turns resume content written as Markdown or raw HTML
// into styled, print-accurate HTML documents and PDFs.
//
// The pipeline has four stages: section classification (two-column mode),
// content assembly into a class-tagged HTML fragment, reference resolution
// for uploaded files and relative asset paths, and display-document
// construction for preview, print windows, and PDF capture. A StyleRegistry
// owns the single template stylesheet that all rendering targets share.
//
// # Quick Start
//
//	svc := resumake.New()
//	defer svc.Close()
//
//	doc, err := svc.RenderDocument(ctx, resumake.ResumeContent{
//	    Markdown: "# Jane Doe\n\n## Experience\n- Built things",
//	}, resumake.DisplayOptions{PaperSize: resumake.PaperA4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// PDF export renders the same document through headless Chrome:
//
//	pdf, err := svc.ExportPDF(ctx, content, opts)
package resumake

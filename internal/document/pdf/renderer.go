package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Renderer turns document text into PDF bytes written to w.
type Renderer interface {
	Render(w io.Writer, content string) error
}

// Options controls page layout of FPDFRenderer.
type Options struct {
	PageSize    string // A4, Letter, ...
	Orientation string // P or L
	FontFamily  string
	FontSize    float64
	NoCompress  bool // leave content streams readable
	Creator     string
}

func DefaultOptions() Options {
	return Options{PageSize: "A4", Orientation: "P", FontFamily: "Helvetica", FontSize: 12, Creator: "crm document generator"}
}

// FPDFRenderer renders content as a single left-aligned paragraph on one or more pages.
type FPDFRenderer struct {
	opts Options
	now  func() time.Time
}

func NewFPDFRenderer(opts Options) *FPDFRenderer {
	def := DefaultOptions()
	if opts.PageSize == "" {
		opts.PageSize = def.PageSize
	}
	if opts.Orientation == "" {
		opts.Orientation = def.Orientation
	}
	if opts.FontFamily == "" {
		opts.FontFamily = def.FontFamily
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Creator == "" {
		opts.Creator = def.Creator
	}
	return &FPDFRenderer{opts: opts, now: time.Now}
}

func (r *FPDFRenderer) Render(w io.Writer, content string) error {
	doc := fpdf.New(r.opts.Orientation, "mm", r.opts.PageSize, "")
	doc.SetCompression(!r.opts.NoCompress)
	doc.SetCreator(r.opts.Creator, true)
	doc.SetCreationDate(r.now())
	doc.AddPage()
	doc.SetFont(r.opts.FontFamily, "", r.opts.FontSize)
	if err := doc.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	// core fonts are cp1252; runes outside it do not survive translation
	tr := doc.UnicodeTranslatorFromDescriptor("")
	// line height follows the font size (pt -> mm, 1.25 leading)
	doc.MultiCell(0, r.opts.FontSize*0.3528*1.25, tr(content), "", "L", false)
	doc.Close()
	if err := doc.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Package report exports the current result set as a printable A4 PDF.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"govscheme/internal/models"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW    = 210.0
	pageH    = 297.0
	marginL  = 18.0
	marginR  = 18.0
	marginT  = 15.0
	contentW = pageW - marginL - marginR
)

var (
	cNavy    = [3]int{16, 31, 56}
	cEmerald = [3]int{4, 120, 87}
	cEmerBg  = [3]int{236, 253, 245}
	cBlue    = [3]int{29, 78, 216}
	cBlueBg  = [3]int{239, 246, 255}
	cRed     = [3]int{185, 28, 28}
	cInk     = [3]int{30, 41, 59}
	cInk50   = [3]int{100, 116, 139}
	cInk15   = [3]int{226, 232, 240}
	cWhite   = [3]int{255, 255, 255}
)

func setFill(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setText(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }
func setDraw(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetDrawColor(c[0], c[1], c[2]) }

// transliterate maps characters the core PDF fonts cannot encode.
func transliterate(s string) string {
	replacer := strings.NewReplacer(
		"₹", "Rs. ", "–", "-", "—", "-", "•", "-",
		"‘", "'", "’", "'", "“", "\"", "”", "\"",
		"≤", "<=", "≥", ">=", "✓", "",
	)
	return replacer.Replace(s)
}

// typeColors mirrors the badge styling of the cards: State is blue, anything
// else emerald.
func typeColors(schemeType string) (fg, bg [3]int) {
	if schemeType == models.TypeState {
		return cBlue, cBlueBg
	}
	return cEmerald, cEmerBg
}

// ensureSpace adds a page when fewer than needed mm remain.
func ensureSpace(pdf *gofpdf.Fpdf, needed float64) {
	if pdf.GetY()+needed > pageH-22 {
		pdf.AddPage()
	}
}

func drawPill(pdf *gofpdf.Fpdf, x, y float64, label string, bg, fg [3]int) float64 {
	pdf.SetFont("Helvetica", "B", 7.5)
	w := pdf.GetStringWidth(transliterate(label)) + 8
	setFill(pdf, bg)
	pdf.RoundedRect(x, y, w, 5.5, 2.5, "1234", "F")
	setText(pdf, fg)
	pdf.SetXY(x, y+0.5)
	pdf.CellFormat(w, 5, transliterate(label), "", 0, "C", false, 0, "")
	return w
}

func drawAccentBar(pdf *gofpdf.Fpdf, x, startY, endY float64, c [3]int) {
	setFill(pdf, c)
	pdf.Rect(x, startY, 2.5, endY-startY, "F")
}

func drawCheckmark(pdf *gofpdf.Fpdf, x, y float64) {
	setDraw(pdf, cEmerald)
	pdf.SetLineWidth(0.4)
	pdf.Line(x+0.3, y+1.8, x+1.2, y+2.8)
	pdf.Line(x+1.2, y+2.8, x+3, y+0.8)
}

// Write renders set as a PDF to w.
func Write(w io.Writer, set models.SchemeResultSet, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginL, marginT, marginR)
	pdf.SetAutoPageBreak(false, 20)
	pdf.SetTitle("GovScheme eligibility report", false)
	pdf.SetCreator("govscheme", false)

	dateDisplay := generated.Format("02 Jan 2006 15:04")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		setDraw(pdf, cInk15)
		pdf.SetLineWidth(0.3)
		pdf.Line(marginL, pdf.GetY(), pageW-marginR, pdf.GetY())
		pdf.SetY(-11)
		pdf.SetFont("Helvetica", "", 6.5)
		setText(pdf, cInk50)
		pdf.SetX(marginL)
		pdf.CellFormat(contentW/2, 8, "GovScheme India", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 8, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// header band
	headerH := 38.0
	setFill(pdf, cNavy)
	pdf.Rect(0, 0, pageW, headerH, "F")
	pdf.SetXY(marginL, 12)
	pdf.SetFont("Helvetica", "B", 22)
	setText(pdf, cWhite)
	pdf.CellFormat(contentW, 9, "GovScheme India", "", 1, "L", false, 0, "")
	pdf.SetX(marginL)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(190, 200, 215)
	pdf.CellFormat(contentW, 6, "Eligibility report generated "+dateDisplay, "", 1, "L", false, 0, "")

	// summary
	pdf.SetY(headerH + 8)
	pdf.SetX(marginL)
	pdf.SetFont("Helvetica", "B", 12)
	setText(pdf, cInk)
	pdf.CellFormat(contentW, 6,
		fmt.Sprintf("%d eligible, %d not eligible", len(set.Eligible), len(set.NotEligible)),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, "ELIGIBLE SCHEMES")
	if len(set.Eligible) == 0 {
		pdf.SetX(marginL)
		pdf.SetFont("Helvetica", "I", 9)
		setText(pdf, cInk50)
		pdf.CellFormat(contentW, 6, "No matching schemes found.", "", 1, "L", false, 0, "")
	}
	for _, s := range set.Eligible {
		drawScheme(pdf, s, s.WhyEligible, true)
	}

	pdf.Ln(4)
	ensureSpace(pdf, 20)
	sectionTitle(pdf, "NOT ELIGIBLE")
	for _, s := range set.NotEligible {
		drawScheme(pdf, s, s.WhyNot, false)
	}

	return pdf.Output(w)
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetX(marginL)
	pdf.SetFont("Helvetica", "B", 7)
	setText(pdf, cInk50)
	pdf.CellFormat(contentW, 4, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func drawScheme(pdf *gofpdf.Fpdf, s models.Scheme, reasons []string, eligible bool) {
	ensureSpace(pdf, 24+float64(len(reasons))*5)
	startY := pdf.GetY()
	x := marginL + 6

	pdf.SetXY(x, startY)
	pdf.SetFont("Helvetica", "B", 11)
	setText(pdf, cInk)
	nameW := pdf.GetStringWidth(transliterate(s.Name)) + 3
	pdf.CellFormat(nameW, 6, transliterate(s.Name), "", 0, "L", false, 0, "")
	fg, bg := typeColors(s.Type)
	drawPill(pdf, x+nameW, startY+0.3, strings.ToUpper(s.Type), bg, fg)

	pdf.SetXY(x, startY+7)
	pdf.SetFont("Helvetica", "", 8.5)
	setText(pdf, cInk50)
	pdf.MultiCell(contentW-6, 4.2, transliterate(s.Description), "", "L", false)

	if eligible && s.ApplyLink != "" {
		pdf.SetX(x)
		pdf.SetFont("Helvetica", "U", 8)
		setText(pdf, cBlue)
		pdf.CellFormat(contentW-6, 4.5, transliterate(s.ApplyLink), "", 1, "L", false, 0, s.ApplyLink)
	}
	pdf.Ln(1)

	for _, r := range reasons {
		y := pdf.GetY()
		if eligible {
			drawCheckmark(pdf, x, y+0.3)
			setText(pdf, cInk)
		} else {
			setText(pdf, cRed)
			pdf.SetXY(x, y)
			pdf.SetFont("Helvetica", "B", 8.5)
			pdf.CellFormat(4, 4.5, "-", "", 0, "L", false, 0, "")
		}
		pdf.SetXY(x+5, y)
		pdf.SetFont("Helvetica", "", 8.5)
		pdf.MultiCell(contentW-11, 4.5, transliterate(r), "", "L", false)
	}

	endY := pdf.GetY() + 1
	accent := cEmerald
	if !eligible {
		accent = cRed
	}
	drawAccentBar(pdf, marginL, startY, endY, accent)
	pdf.SetY(endY + 4)
}

// FileName is the export name for a report generated at t.
func FileName(t time.Time) string {
	return "govscheme-report-" + t.Format("2006-01-02-150405") + ".pdf"
}

// WriteFile writes the report into dir and returns its path.
func WriteFile(dir string, set models.SchemeResultSet, generated time.Time) (string, error) {
	path := filepath.Join(dir, FileName(generated))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	if err := Write(f, set, generated); err != nil {
		f.Close()
		return "", fmt.Errorf("report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	return path, nil
}

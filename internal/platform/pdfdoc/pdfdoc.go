package pdfdoc

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const ContentType = "application/pdf"

// Field is a label/value line in a report section.
type Field struct {
	Label string
	Value string
}

type Section struct {
	Heading string
	Fields  []Field
}

type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// Render lays the document out on A4 pages.
func Render(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, doc.Title)
	pdf.Ln(10)
	if doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 8, doc.Subtitle)
		pdf.Ln(10)
	}

	for _, section := range doc.Sections {
		if section.Heading != "" {
			pdf.SetFont("Helvetica", "B", 13)
			pdf.Cell(0, 9, section.Heading)
			pdf.Ln(9)
		}
		pdf.SetFont("Helvetica", "", 11)
		for _, field := range section.Fields {
			pdf.CellFormat(70, 7, field.Label, "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 7, field.Value, "", "L", false)
		}
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

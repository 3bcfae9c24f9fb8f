package reports

import (
	"encoding/csv"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Table é o formato comum dos relatórios: título, cabeçalho fixo e uma
// linha por registro. Sem paginação; o resultado inteiro sai no download.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WritePDF(w io.Writer, t Table) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	colWidth := (210.0 - 20.0) / float64(len(t.Headers))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(221, 221, 221)
	for _, h := range t.Headers {
		pdf.CellFormat(colWidth, 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(246, 246, 246)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 7, tr(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Supported formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Table is an ordered set of columns and string rows.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// File is a rendered export ready to be sent to the client.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Render encodes the table in the requested format. basename excludes the extension.
func Render(format, basename string, table Table) (*File, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("export requires at least one column")
	}
	switch strings.ToLower(format) {
	case FormatCSV:
		content, err := renderCSV(table)
		if err != nil {
			return nil, err
		}
		return &File{Name: basename + ".csv", ContentType: "text/csv; charset=utf-8", Content: content}, nil
	case FormatPDF:
		content, err := renderPDF(table)
		if err != nil {
			return nil, err
		}
		return &File{Name: basename + ".pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Supported reports whether format can be rendered.
func Supported(format string) bool {
	switch strings.ToLower(format) {
	case FormatCSV, FormatPDF:
		return true
	}
	return false
}

func renderCSV(table Table) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPDF(table Table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()
	// core fonts are cp1252; accented Portuguese names need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(table.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(table.Columns))

	pdf.SetFont("Arial", "B", 9)
	for _, column := range table.Columns {
		pdf.CellFormat(colWidth, 8, tr(column), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range table.Rows {
		for i := range table.Columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

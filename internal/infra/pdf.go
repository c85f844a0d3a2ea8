package infra

// pdf.go — PDF generation using go-pdf/fpdf.
// Two documents are produced:
//   - Quotation sheet (A4) for a Cotizacion, handed to the client
//   - Sales report (A4) for a date range, downloaded from the reports screen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/GabMond07/Salty-Sweety-POS-sub000/internal/model"
)

const businessName = "Salty & Sweety"

// PDFGenerator writes quotation PDFs under storagePath and renders in-memory
// sales reports.
type PDFGenerator struct {
	storagePath string
}

func NewPDFGenerator(storagePath string) *PDFGenerator {
	return &PDFGenerator{storagePath: storagePath}
}

// GenerarCotizacion renders the quotation sheet and returns the absolute path
// to the generated file.
func (g *PDFGenerator) GenerarCotizacion(c *model.Cotizacion) (string, error) {
	if err := os.MkdirAll(g.storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cotizacion_%s.pdf", c.ID)
	filePath := filepath.Join(g.storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Cotización", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Quotation info ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("N° %s", c.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Fecha: "+c.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")

	switch c.Tipo {
	case "personalizada":
		if c.Cliente != nil {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(contentW, 5, "Cliente: "+c.Cliente.Nombre, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
		}
		if c.ValidaHasta != nil {
			pdf.CellFormat(contentW, 5, "Válida hasta: "+c.ValidaHasta.Format("02/01/2006"), "", 1, "L", false, 0, "")
		}
	case "estandar":
		if c.NombreProducto != nil {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(contentW, 5, "Producto: "+*c.NombreProducto, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
		}
	}
	pdf.Ln(3)

	col1 := contentW * 0.50 // description
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.18 // unit price
	col4 := contentW * 0.18 // subtotal

	// ── Product lines ─────────────────────────────────────────────────────────
	if len(c.Items) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "P. Unit", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "Subtotal", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, item := range c.Items {
			nombre := ""
			if item.Producto != nil {
				nombre = item.Producto.Nombre
			}
			pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 6, "$"+item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 6, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	// ── Ingredient lines ──────────────────────────────────────────────────────
	if len(c.Ingredientes) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1, 6, "Ingrediente", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "P. Unit", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "Subtotal", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, ing := range c.Ingredientes {
			nombre := ""
			unidad := ""
			if ing.Ingrediente != nil {
				nombre = ing.Ingrediente.Nombre
				unidad = " " + ing.Ingrediente.UnidadMedida
			}
			pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 6, ing.Cantidad.String()+unidad, "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 6, "$"+ing.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 6, "$"+ing.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
			if ing.Notas != nil && *ing.Notas != "" {
				pdf.SetFont("Helvetica", "I", 8)
				pdf.CellFormat(contentW, 5, "   Nota: "+*ing.Notas, "", 1, "L", false, 0, "")
				pdf.SetFont("Helvetica", "", 9)
			}
		}
		pdf.Ln(3)
	}

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+c.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Precios sujetos a cambio sin previo aviso.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// GenerarReporteVentas renders an in-memory sales report for [desde, hasta).
func (g *PDFGenerator) GenerarReporteVentas(ventas []model.Venta, desde, hasta time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, businessName+" — Reporte de Ventas", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("Del %s al %s", desde.Format("02/01/2006"), hasta.AddDate(0, 0, -1).Format("02/01/2006")),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	col1 := contentW * 0.22 // fecha
	col2 := contentW * 0.36 // cliente
	col3 := contentW * 0.22 // metodo
	col4 := contentW * 0.20 // total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cliente", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Método", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	suma := decimal.Zero
	for _, v := range ventas {
		cliente := "Cliente general"
		if v.Cliente != nil {
			cliente = v.Cliente.Nombre
		}
		pdf.CellFormat(col1, 6, v.CreatedAt.Format("02/01 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, cliente, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, v.MetodoPago, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+v.Total.StringFixed(2), "", 1, "R", false, 0, "")
		suma = suma.Add(v.Total)
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, fmt.Sprintf("%d ventas — TOTAL:", len(ventas)), "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, "$"+suma.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render report: %w", err)
	}
	return buf.Bytes(), nil
}

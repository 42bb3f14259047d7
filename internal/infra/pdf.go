package infra

// Settlement receipt generation using go-pdf/fpdf.
// Produces an A5 receipt for a finalized rental with:
//   - Business name header
//   - Rental id, client and timestamp
//   - Item table (product name, quantity, subtotal)
//   - Incident cost line (if any)
//   - Garantía breakdown: total, applied, returned
//
// The output file is saved to storagePath/liquidacion_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"alquilapp/internal/model"
)

// Liquidacion carries the settlement figures printed on the receipt.
type Liquidacion struct {
	GarantiaTotal   decimal.Decimal
	CostoIncidentes decimal.Decimal
	MontoAplicado   decimal.Decimal
	MontoDevuelto   decimal.Decimal
	GarantiaEstado  string
}

// GenerateLiquidacionPDF writes the settlement receipt for a finalized
// alquiler and returns the absolute path to the generated file.
func GenerateLiquidacionPDF(alquiler *model.Alquiler, liq Liquidacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("liquidacion_%s.pdf", alquiler.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "AlquilApp", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Liquidacion de alquiler", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Rental info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Alquiler %s", alquiler.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, "Cliente: "+alquiler.ClienteNombre, "", 1, "L", false, 0, "")
	if alquiler.FinalizadoEn != nil {
		pdf.CellFormat(contentW, 4, alquiler.FinalizadoEn.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range alquiler.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		if len(nombre) > 28 {
			nombre = nombre[:27] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Garantía breakdown ───────────────────────────────────────────────────
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		pdf.CellFormat(col1+col2, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, value, "", 1, "R", false, 0, "")
	}

	row("Garantia total:", "$"+liq.GarantiaTotal.StringFixed(2), false)
	if !liq.CostoIncidentes.IsZero() {
		row("Costo de incidentes:", "$"+liq.CostoIncidentes.StringFixed(2), false)
	}
	if !liq.MontoAplicado.IsZero() {
		row("Garantia aplicada:", "$"+liq.MontoAplicado.StringFixed(2), false)
	}
	row("Garantia devuelta:", "$"+liq.MontoDevuelto.StringFixed(2), true)

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Estado de garantia: "+liq.GarantiaEstado, "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

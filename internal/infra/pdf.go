package infra

// pdf.go — Internal PDF generation using go-pdf/fpdf.
// Generates an A7-size receipt-style document for an invoice with:
//   - Business name header
//   - Invoice number and exit date
//   - Product block (name, reference, serial)
//   - Quantity and unit value
//   - Bold total (quantity × unit value)
//
// The output file is saved to storagePath/factura_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"gestinv/internal/model"
)

// GenerateFacturaPDF generates an internal PDF receipt for a Factura whose
// Producto association is preloaded. storagePath is the directory where the
// PDF will be written (created if needed). Returns the absolute path to the
// generated file.
func GenerateFacturaPDF(factura *model.Factura, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("factura_%s.pdf", factura.NumeroFactura)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper (custom size, "A7" is not in fpdf's named list)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "GestInv", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de Salida", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Invoice info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Factura %s", factura.NumeroFactura), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	if factura.FechaSalida != nil {
		pdf.CellFormat(contentW, 4, "Salida: "+factura.FechaSalida.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, "Emitida: "+factura.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Product block ─────────────────────────────────────────────────────────
	nombre := "Sin nombre"
	valor := decimal.Zero
	if p := factura.Producto; p != nil {
		if p.Nombre != nil {
			nombre = *p.Nombre
		}
		if p.Valor != nil {
			valor = *p.Valor
		}
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW, 5, nombre, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		if p.Referencia != nil {
			pdf.CellFormat(contentW, 4, "Ref: "+*p.Referencia, "", 1, "L", false, 0, "")
		}
		if p.Serial != nil {
			pdf.CellFormat(contentW, 4, "Serial: "+*p.Serial, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(1)

	// ── Quantity and values ───────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW/2, 4, fmt.Sprintf("Cantidad: %d", factura.Cantidad), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 4, "Unitario: $"+valor.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(1)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	total := valor.Mul(decimal.NewFromInt(int64(factura.Cantidad)))
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "TOTAL  $"+total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

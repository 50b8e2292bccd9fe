package documents

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/cotizaplus/cotiza-backend/internal/pricing"
	"github.com/cotizaplus/cotiza-backend/pkg/db/models"
	"github.com/cotizaplus/cotiza-backend/pkg/enums"
)

const (
	pageMargin  = 15.0
	labelWidth  = 130.0
	amountWidth = 45.0
	rowHeight   = 7.0
)

// RenderQuotePDF lays out the quote with the same financial breakdown the API
// returns. Amounts come straight from the calculator so the document and the
// detail view never disagree.
func RenderQuotePDF(quote *models.Quote, fin pricing.Financials, logo []byte) ([]byte, error) {
	if quote == nil {
		return nil, fmt.Errorf("quote is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if len(logo) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "", ReadDpi: true}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
		if pdf.Ok() {
			pdf.ImageOptions("logo", pageMargin, pageMargin, 35, 0, false, opts, 0, "")
			pdf.SetY(pageMargin + 22)
		}
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Cotización"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Cliente: %s", quote.ClientName)), "", 1, "L", false, 0, "")
	if quote.ClientCompany != nil && *quote.ClientCompany != "" {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Empresa: %s", *quote.ClientCompany)), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Plan: %s", quote.PlanName)), "", 1, "L", false, 0, "")
	if fin.PlanTitle != "" {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Financiamiento: %s", fin.PlanTitle)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeRecurringSection(pdf, tr, quote, fin)
	if fin.OneTimeBase.IsPositive() {
		pdf.Ln(4)
		writeOneTimeSection(pdf, tr, quote, fin)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRecurringSection(pdf *gofpdf.Fpdf, tr func(string) string, quote *models.Quote, fin pricing.Financials) {
	sectionHeader(pdf, tr, "Servicios recurrentes")

	if quote.AnnualLicenseCost.IsPositive() {
		amountRow(pdf, tr, fmt.Sprintf("Licencia anual %s", quote.PlanName), quote.AnnualLicenseCost)
	}
	if quote.IncludeWhatsApp && quote.WhatsAppCost.IsPositive() {
		amountRow(pdf, tr, "Servicio WhatsApp", quote.WhatsAppCost)
	}
	for _, item := range quote.LineItems {
		if item.Kind != enums.LineItemKindRecurring {
			continue
		}
		amountRow(pdf, tr, item.Name, item.Amount)
	}

	switch fin.AdjustmentType {
	case enums.AdjustmentTypeRecharge:
		if fin.AdjustmentAmount.IsPositive() {
			amountRow(pdf, tr, fin.AdjustmentLabel, fin.AdjustmentAmount)
		}
	case enums.AdjustmentTypeDiscount:
		if fin.AdjustmentLabel != "" {
			labelRow(pdf, tr, fin.AdjustmentLabel)
		}
	}

	if fin.ManualDiscountAmount.IsPositive() {
		amountRow(pdf, tr, "Descuento adicional", fin.ManualDiscountAmount.Neg())
	}

	amountRow(pdf, tr, "Subtotal", fin.TaxableRecurringBase)
	amountRow(pdf, tr, fmt.Sprintf("IVA (%s%%)", fin.IVARate.Mul(decimal.NewFromInt(100)).Round(0)), fin.RecurringTax)
	totalRow(pdf, tr, "Total", fin.RecurringTotal)

	if !fin.SinglePayment {
		pdf.SetFont("Helvetica", "", 9)
		msg := fmt.Sprintf("%d cuotas de %s", fin.Installments, formatMoney(fin.InstallmentAmount))
		pdf.CellFormat(0, 6, tr(msg), "", 1, "R", false, 0, "")
	}
}

func writeOneTimeSection(pdf *gofpdf.Fpdf, tr func(string) string, quote *models.Quote, fin pricing.Financials) {
	sectionHeader(pdf, tr, "Pagos únicos")

	if quote.IncludeImplementation && quote.ImplementationCost.IsPositive() {
		amountRow(pdf, tr, "Implementación", quote.ImplementationCost)
	}
	for _, item := range quote.LineItems {
		if item.Kind != enums.LineItemKindOneTime {
			continue
		}
		amountRow(pdf, tr, item.Name, item.Amount)
	}

	amountRow(pdf, tr, fmt.Sprintf("IVA (%s%%)", fin.IVARate.Mul(decimal.NewFromInt(100)).Round(0)), fin.OneTimeTax)
	totalRow(pdf, tr, "Total pago único", fin.OneTimeTotal)
}

func sectionHeader(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(235, 238, 243)
	pdf.CellFormat(labelWidth+amountWidth, rowHeight+1, tr(title), "", 1, "L", true, 0, "")
}

func amountRow(pdf *gofpdf.Fpdf, tr func(string) string, label string, amount decimal.Decimal) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelWidth, rowHeight, tr(label), "B", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, rowHeight, formatMoney(amount), "B", 1, "R", false, 0, "")
}

func labelRow(pdf *gofpdf.Fpdf, tr func(string) string, label string) {
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(labelWidth+amountWidth, rowHeight, tr(label), "B", 1, "L", false, 0, "")
}

func totalRow(pdf *gofpdf.Fpdf, tr func(string) string, label string, amount decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelWidth, rowHeight, tr(label), "T", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, rowHeight, formatMoney(amount), "T", 1, "R", false, 0, "")
}

func formatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

func (s *invoiceService) Download(ctx context.Context, id int64) (string, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(s.exportDir, fmt.Sprintf("invoice-%d.pdf", inv.ID))

	pdf := renderInvoice(inv)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	if err := s.invoiceRepo.RecordDownload(ctx, inv.ID, path); err != nil {
		return "", err
	}

	// a downloaded draft is no longer a draft
	if inv.InvoiceStatus == domain.InvoiceStatusDraft {
		inv.InvoiceStatus = domain.InvoiceStatusDownloaded
		if err := s.invoiceRepo.Update(ctx, inv); err != nil {
			return "", err
		}
	}

	s.log.Info("invoice downloaded", zap.Int64("id", inv.ID), zap.String("path", path))
	return path, nil
}

func renderInvoice(inv *domain.InvoiceRecord) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice #%d", inv.ID), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, fmt.Sprintf("Invoice #%d", inv.ID), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, "Bill to: "+inv.Name, "", 1, "L", false, 0, "")
	if inv.CompanyEmail != "" {
		pdf.CellFormat(0, 6, inv.CompanyEmail, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	due := "-"
	if !inv.DueDate.IsZero() {
		due = inv.DueDate.Format(domain.DateLayout)
	}
	rows := [][2]string{
		{"Issued", inv.IssuedDate.Format(domain.DateLayout)},
		{"Due", due},
		{"Status", string(inv.InvoiceStatus)},
		{"Total", fmt.Sprintf("$%.2f", inv.Total)},
		{"Balance", fmt.Sprintf("$%.2f", inv.Balance)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(60, 8, row[1], "1", 1, "R", false, 0, "")
	}

	if inv.IsPaid() {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(40, 160, 70)
		pdf.CellFormat(0, 10, "PAID", "", 1, "L", false, 0, "")
	}

	return pdf
}

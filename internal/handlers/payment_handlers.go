package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"rentflow/internal/common"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
	"rentflow/internal/services"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
)

// receiptsBucket holds generated rent receipt PDFs.
const receiptsBucket = "receipts"

// PaymentHandlers handles rent payment HTTP requests
type PaymentHandlers struct {
	paymentService services.PaymentService
	minioSvc       services.MinioService
}

// NewPaymentHandlers creates a new payment handlers instance
func NewPaymentHandlers(paymentService services.PaymentService, minioSvc services.MinioService) *PaymentHandlers {
	return &PaymentHandlers{
		paymentService: paymentService,
		minioSvc:       minioSvc,
	}
}

// CreatePayment handles POST /payments
func (h *PaymentHandlers) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	payment, err := h.paymentService.Create(ctx, landlordID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "tenant")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, payment)
}

// GetPayments handles GET /payments
func (h *PaymentHandlers) GetPayments(c echo.Context) error {
	ctx := c.Request().Context()

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	payments, err := h.paymentService.ListForLandlord(ctx, landlordID)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve payments: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
		"count":    len(payments),
	})
}

// GetPaymentByID handles GET /payments/:id
func (h *PaymentHandlers) GetPaymentByID(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := common.ValidateID(c.Param("id"), "payment_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	payment, err := h.paymentService.GetForLandlord(ctx, landlordID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "payment")
		}
		return common.SendServerError(c, "Failed to retrieve payment: "+err.Error())
	}

	return c.JSON(http.StatusOK, payment)
}

// UpdatePayment handles PUT /payments/:id
func (h *PaymentHandlers) UpdatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := common.ValidateID(c.Param("id"), "payment_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var upd models.PaymentUpdate
	if err := c.Bind(&upd); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	payment, err := h.paymentService.Update(ctx, landlordID, paymentID, &upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "payment")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, payment)
}

// DeletePayment handles DELETE /payments/:id
func (h *PaymentHandlers) DeletePayment(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := common.ValidateID(c.Param("id"), "payment_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	payment, err := h.paymentService.GetForLandlord(ctx, landlordID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "payment")
		}
		return common.SendServerError(c, "Failed to retrieve payment: "+err.Error())
	}

	if err := h.paymentService.Delete(ctx, landlordID, paymentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "payment")
		}
		return common.SendServerError(c, "Failed to delete payment: "+err.Error())
	}

	// Stored receipts do not outlive their payment.
	objectName := fmt.Sprintf("%d-%d.pdf", payment.TenantID, payment.ID)
	if err := h.minioSvc.DeleteDocument(ctx, receiptsBucket, objectName); err != nil {
		log.Printf("Failed to delete receipt %s: %v", objectName, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Payment deleted successfully",
	})
}

// ProcessPayment handles POST /payments/:id/process. Landlords may settle
// payments of their own tenants; tenant users only their own.
func (h *PaymentHandlers) ProcessPayment(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := common.ValidateID(c.Param("id"), "payment_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	role, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	payment, err := h.paymentService.Process(ctx, userID, models.Role(role), paymentID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "payment")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Payment processed successfully",
		"payment": payment,
	})
}

// GetMyPayments handles GET /my/payments for tenant users
func (h *PaymentHandlers) GetMyPayments(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	payments, err := h.paymentService.ListForTenantUser(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve payments: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
		"count":    len(payments),
	})
}

// GenerateReceiptPDF handles GET /payments/:id/receipt
// Generates and stores a PDF rent receipt using MinIO
func (h *PaymentHandlers) GenerateReceiptPDF(c echo.Context) error {
	ctx := c.Request().Context()

	paymentID, err := common.ValidateID(c.Param("id"), "payment_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	role, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	receipt, err := h.paymentService.GetReceiptData(ctx, userID, models.Role(role), paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "payment")
		}
		return common.SendServerError(c, "Failed to retrieve payment: "+err.Error())
	}

	if receipt.Status != models.PaymentPaid {
		return common.SendClientError(c, "Receipt is only available for paid payments")
	}

	pdfBytes, err := h.generateReceiptPDF(receipt)
	if err != nil {
		return common.SendServerError(c, fmt.Sprintf("Failed to generate PDF: %v", err))
	}

	if len(pdfBytes) == 0 {
		return common.SendServerError(c, "Generated PDF is empty")
	}

	objectName := fmt.Sprintf("%d-%d.pdf", receipt.TenantID, receipt.ID)

	if err := h.minioSvc.UploadDocument(ctx, receiptsBucket, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
		return common.SendServerError(c, "Failed to upload PDF to storage: "+err.Error())
	}

	receiptURL, err := h.minioSvc.GetPresignedURL(receiptsBucket, objectName, 24*time.Hour)
	if err != nil {
		return common.SendServerError(c, "Failed to generate download URL: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Receipt generated successfully",
		"receipt_url": receiptURL,
		"expires_in":  "24 hours",
	})
}

// generateReceiptPDF renders a rent receipt for a settled payment
func (h *PaymentHandlers) generateReceiptPDF(receipt *models.PaymentWithDetails) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 15.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "RENT RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Receipt Number: %d", receipt.ID))
	pdf.Ln(8)
	if receipt.PaymentDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Payment Date: %s", receipt.PaymentDate.Format("02-Jan-2006")))
		pdf.Ln(8)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Due Date: %s", receipt.DueDate.Format("02-Jan-2006")))
	pdf.Ln(10)

	// Payer details
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "RECEIVED FROM:")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%s %s", receipt.User.FirstName, receipt.User.LastName))
	pdf.Ln(6)
	pdf.Cell(0, 6, receipt.User.Email)
	pdf.Ln(10)

	// Premises details
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "FOR PREMISES:")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Unit %s, %s", receipt.Unit.UnitNumber, receipt.Property.Name))
	pdf.Ln(6)
	pdf.Cell(0, 6, receipt.Property.Address)
	pdf.Ln(10)

	// Line item table
	headers := []string{"Description", "Period", "Amount"}
	colWidths := []float64{90, 50, 40}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(255, 255, 255)
	pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("Rent for unit %s", receipt.Unit.UnitNumber), "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[1], 8, receipt.DueDate.Format("January 2006"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%.2f", receipt.Amount), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	// Total
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(140, 8, "TOTAL PAID:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", receipt.Amount), "", 0, "R", false, 0, "")
	pdf.Ln(8)

	if method := common.SafeString(receipt.PaymentMethod); method != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(140, 6, "Payment Method:", "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, method, "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	// Footer
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(0, 5, "This is a computer generated receipt and does not require a signature.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

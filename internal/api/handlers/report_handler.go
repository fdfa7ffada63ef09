package handlers

import (
	"bytes"

	"fin-analyzer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePNG  = "image/png"
)

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// ExportPDF godoc
// @Summary Export summary as PDF
// @Tags reports
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /export/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.reportService.WritePDF(&buf); err != nil {
		return respondError(c, h.logger, err, "Failed to generate PDF")
	}
	c.Attachment("expense_report.pdf")
	c.Set(fiber.HeaderContentType, contentTypePDF)
	return c.Send(buf.Bytes())
}

// ExportExcel godoc
// @Summary Export summary and budgets as a workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /export/excel [get]
func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.reportService.WriteExcel(&buf); err != nil {
		return respondError(c, h.logger, err, "Failed to generate workbook")
	}
	c.Attachment("expense_report.xlsx")
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	return c.Send(buf.Bytes())
}

// Visualize godoc
// @Summary Bar chart of totals per category
// @Tags reports
// @Produce image/png
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /visualize [get]
func (h *ReportHandler) Visualize(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.reportService.WriteChart(&buf); err != nil {
		return respondError(c, h.logger, err, "Failed to render chart")
	}
	c.Set(fiber.HeaderContentType, contentTypePNG)
	return c.Send(buf.Bytes())
}

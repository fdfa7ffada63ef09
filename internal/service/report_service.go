package service

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"fin-analyzer/internal/models"
	"fin-analyzer/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	SheetExpenses = "Expenses"
	SheetBudgets  = "Budgets"
)

// ReportService renders the latest summary as PDF, spreadsheet or chart.
type ReportService struct {
	budgets   *repository.BudgetStore
	summaries *repository.SummaryStore
	logger    *zap.Logger
}

func NewReportService(budgets *repository.BudgetStore, summaries *repository.SummaryStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		budgets:   budgets,
		summaries: summaries,
		logger:    logger,
	}
}

func (s *ReportService) latest() (*models.CategorySummary, error) {
	summary := s.summaries.Latest()
	if summary == nil {
		return nil, ErrNoExpenseData
	}
	return summary, nil
}

// WritePDF writes the summary table, the total and, when budgets exist, a
// budget status table.
func (s *ReportService) WritePDF(w io.Writer) error {
	summary, err := s.latest()
	if err != nil {
		return err
	}
	budgets := s.budgets.GetAll()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Expense Summary Report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Expense Summary Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	header := func(cols []string, widths []float64) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(0, 51, 102)
		pdf.SetTextColor(255, 255, 255)
		for i, c := range cols {
			pdf.CellFormat(widths[i], 8, c, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
	}

	widths := []float64{110, 60}
	header([]string{"Category", "Amount"}, widths)
	for i, category := range summary.Categories() {
		total, _ := summary.Get(category)
		fill := i%2 == 1
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(widths[0], 7, tr(category), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, total.StringFixed(2), "1", 1, "R", fill, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0], 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 8, summary.Total().StringFixed(2), "1", 1, "R", false, 0, "")

	if len(budgets) > 0 {
		insights, err := ComputeInsights(budgets, summary)
		if err != nil {
			return err
		}
		pdf.Ln(8)
		bw := []float64{50, 30, 30, 30, 30}
		header([]string{"Category", "Budget", "Spent", "Remaining", "Status"}, bw)
		for _, category := range sortedKeys(insights) {
			in := insights[category]
			pdf.CellFormat(bw[0], 7, tr(category), "1", 0, "L", false, 0, "")
			pdf.CellFormat(bw[1], 7, in.Budget.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(bw[2], 7, in.Spent.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(bw[3], 7, in.Remaining.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(bw[4], 7, in.Status(), "1", 1, "C", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// WriteExcel writes a workbook with an Expenses sheet (the summary) and a
// Budgets sheet.
func (s *ReportService) WriteExcel(w io.Writer) error {
	summary, err := s.latest()
	if err != nil {
		return err
	}
	budgets := s.budgets.GetAll()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetExpenses); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetBudgets); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	expenseRows := [][]interface{}{{"Category", "Amount"}}
	for _, category := range summary.Categories() {
		total, _ := summary.Get(category)
		expenseRows = append(expenseRows, []interface{}{category, total.InexactFloat64()})
	}
	budgetRows := [][]interface{}{{"Category", "Budget"}}
	for _, category := range sortedKeys(budgets) {
		budgetRows = append(budgetRows, []interface{}{category, budgets[category].InexactFloat64()})
	}

	for sheet, rows := range map[string][][]interface{}{SheetExpenses: expenseRows, SheetBudgets: budgetRows} {
		for r, row := range rows {
			cellName, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, r+1, err)
			}
		}
		if err := f.SetCellStyle(sheet, "A1", "B1", bold); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteChart renders a PNG bar chart of total amount per category.
func (s *ReportService) WriteChart(w io.Writer) error {
	summary, err := s.latest()
	if err != nil {
		return err
	}
	if summary.Len() == 0 {
		return fmt.Errorf("%w: latest upload has no transactions", ErrNoExpenseData)
	}

	bars := make([]chart.Value, 0, summary.Len())
	lo, hi := 0.0, 0.0
	for _, category := range summary.Categories() {
		total, _ := summary.Get(category)
		v := total.InexactFloat64()
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		bars = append(bars, chart.Value{Value: v, Label: category})
	}
	if lo == hi {
		hi = 1
	}

	graph := chart.BarChart{
		Title:      "Expenses by Category",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      1024,
		Height:     512,
		BarWidth:   60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

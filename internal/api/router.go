package api

import (
	"errors"

	"fin-analyzer/docs"
	"fin-analyzer/internal/api/handlers"
	"fin-analyzer/pkg/config"
	"fin-analyzer/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Expense *handlers.ExpenseHandler
	Budget  *handlers.BudgetHandler
	Report  *handlers.ReportHandler
	Advice  *handlers.AdviceHandler
	Health  *handlers.HealthHandler
}

func SetupRouter(h Handlers, cfg config.ServerConfig, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "fin-analyzer",
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Path()))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.HeaderRequestID,
	}))
	app.Use(logger.New())
	app.Use(middleware.RequestID(appLogger))

	// Swagger - importing docs registers the OpenAPI document through init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", h.Health.Index)
	app.Get("/health", h.Health.Health)

	app.Post("/upload", h.Expense.Upload)

	app.Post("/set_budget", h.Budget.SetBudget)
	app.Post("/reset_budgets", h.Budget.ResetBudgets)
	app.Get("/get_budgets", h.Budget.GetBudgets)
	app.Get("/expense_insights", h.Budget.ExpenseInsights)

	export := app.Group("/export")
	export.Get("/pdf", h.Report.ExportPDF)
	export.Get("/excel", h.Report.ExportExcel)
	app.Get("/visualize", h.Report.Visualize)

	app.Post("/advice", h.Advice.Advise)

	return app
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"fin-analyzer/internal/ml"
	"fin-analyzer/internal/models"
	"fin-analyzer/internal/repository"
	"fin-analyzer/internal/service"
	"fin-analyzer/pkg/config"
	"fin-analyzer/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finctl",
		Short:         "Offline tools for the fin-analyzer categorization model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTrainCmd(), newCategorizeCmd())
	return root
}

// setup loads config, the logger and the artifact store shared by all
// subcommands. The returned func releases them.
func setup(ctx context.Context) (*config.Config, repository.ArtifactStore, *zap.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := logger.Init(cfg.Logger.Level); err != nil {
		return nil, nil, nil, nil, err
	}
	log := logger.Get()

	store, closeStore, err := repository.OpenArtifactStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, store, log, func() {
		closeStore()
		logger.Sync()
	}, nil
}

func newTrainCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the bootstrap model and persist its artifacts",
		Long: "Loads the persisted extractor and classifier, training and saving them when absent.\n" +
			"With --force the model is always retrained and overwritten.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, store, log, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			trainer := service.NewBootstrapTrainer(store, cfg.Model, log)
			var model *ml.Model
			if force {
				model, err = trainer.Train(ctx)
			} else {
				model, err = trainer.EnsureModel(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "model ready (%s store), labels: %s\n",
				cfg.Model.Store, strings.Join(model.Labels(), ", "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "retrain even if artifacts exist")
	return cmd
}

func newCategorizeCmd() *cobra.Command {
	var budgetFlags []string

	cmd := &cobra.Command{
		Use:   "categorize FILE",
		Short: "Categorize a transactions CSV and print the summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			budgets, err := parseBudgets(budgetFlags)
			if err != nil {
				return err
			}
			if err := service.ValidateUploadName(args[0]); err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, store, log, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			model, err := service.NewBootstrapTrainer(store, cfg.Model, log).EnsureModel(ctx)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := service.ParseCSV(f)
			if err != nil {
				return err
			}

			categorizer, err := service.NewCategorizerService(model, repository.NewSummaryStore(), 0, log)
			if err != nil {
				return err
			}
			defer categorizer.Close()

			categorized, summary, err := categorizer.Categorize(rows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DESCRIPTION\tAMOUNT\tCATEGORY")
			for _, row := range categorized {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Description, row.Amount.StringFixed(2), row.Category)
			}
			tw.Flush()

			fmt.Fprintln(out)
			tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tTOTAL")
			for _, category := range summary.Categories() {
				total, _ := summary.Get(category)
				fmt.Fprintf(tw, "%s\t%s\n", category, total.StringFixed(2))
			}
			tw.Flush()

			printAlerts(out, service.ComputeAlerts(summary, budgets))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&budgetFlags, "budget", nil, "budget as CATEGORY=AMOUNT (repeatable)")
	return cmd
}

// parseBudgets turns CATEGORY=AMOUNT flags into a budget map.
func parseBudgets(flags []string) (map[string]decimal.Decimal, error) {
	budgets := make(map[string]decimal.Decimal, len(flags))
	for _, f := range flags {
		category, raw, ok := strings.Cut(f, "=")
		category = strings.TrimSpace(category)
		if !ok || category == "" {
			return nil, fmt.Errorf("%w: budget %q must look like CATEGORY=AMOUNT", service.ErrInvalidBudget, f)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || amount.IsNegative() {
			return nil, fmt.Errorf("%w: budget %q needs a non-negative amount", service.ErrInvalidBudget, f)
		}
		budgets[category] = amount
	}
	return budgets, nil
}

func printAlerts(w io.Writer, alerts []models.Alert) {
	if len(alerts) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, a := range alerts {
		if a.Percentage != nil {
			fmt.Fprintf(w, "ALERT %s: spent %s of %s (%s%%)\n", a.Category, a.Spent.StringFixed(2), a.Budget.StringFixed(2), a.Percentage.StringFixed(1))
		} else {
			fmt.Fprintf(w, "ALERT %s: spent %s with a zero budget\n", a.Category, a.Spent.StringFixed(2))
		}
	}
}

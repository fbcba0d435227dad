package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	invoicepg "github.com/buildtrack/construction-api/internal/invoice/postgres"
	"github.com/buildtrack/construction-api/internal/reminder"
	reminderpg "github.com/buildtrack/construction-api/internal/reminder/postgres"
	"github.com/buildtrack/construction-api/pkg/logger"
)

// sweepCmd runs a single overdue promotion pass and exits, for operators
// who run the sweep from an external scheduler instead of the in-process
// cron.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Promote overdue reminders and invoices",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Logging.Format, cfg.Logging.Level)

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		reminderService := reminder.NewService(reminderpg.NewReminderRepository(db), logger.L())
		promoted, err := reminderService.SweepOverdue()
		if err != nil {
			log.Fatalf("reminder sweep failed: %v", err)
		}

		invoices, err := invoicepg.NewInvoiceRepository(db).PromoteOverdue(time.Now())
		if err != nil {
			log.Fatalf("invoice sweep failed: %v", err)
		}

		fmt.Printf("promoted %d reminders and %d invoices to OVERDUE\n", promoted, invoices)
	},
}

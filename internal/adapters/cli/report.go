package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyclus-go/cyclus/internal/adapters/persistence"
	appaudit "github.com/cyclus-go/cyclus/internal/application/audit"
	"github.com/cyclus-go/cyclus/internal/application/common"
	"github.com/cyclus-go/cyclus/internal/infrastructure/config"
	"github.com/cyclus-go/cyclus/internal/infrastructure/database"
)

var reportPeriod int

// NewReportCommand builds `cyclus report --period N`: sums material
// moved in period from the settlement ledger, a conservation sanity
// check a user can run after `cyclus run` completes.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report total material moved in a settled period",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&reportPeriod, "period", 0, "Period to report on")
	return cmd
}

func runReport(ctx context.Context) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return &runtimeError{err: fmt.Errorf("load config: %w", err)}
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return &runtimeError{err: fmt.Errorf("connect database: %w", err)}
	}
	defer database.Close(db)

	mediator := common.NewMediator()
	if err := appaudit.RegisterHandlers(mediator, persistence.NewGormSettlementRepository(db)); err != nil {
		return &runtimeError{err: err}
	}

	resp, err := mediator.Send(ctx, &appaudit.GetConservationReportQuery{Period: reportPeriod})
	if err != nil {
		return &runtimeError{err: err}
	}

	fmt.Printf("period %d: total material moved = %v\n", reportPeriod, resp)
	return nil
}

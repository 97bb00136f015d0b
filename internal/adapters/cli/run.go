package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyclus-go/cyclus/internal/adapters/metrics"
	"github.com/cyclus-go/cyclus/internal/adapters/persistence"
	"github.com/cyclus-go/cyclus/internal/application/audit"
	"github.com/cyclus-go/cyclus/internal/application/common"
	"github.com/cyclus-go/cyclus/internal/application/simulation"
	domainaudit "github.com/cyclus-go/cyclus/internal/domain/audit"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
	"github.com/cyclus-go/cyclus/internal/infrastructure/config"
	"github.com/cyclus-go/cyclus/internal/infrastructure/database"
	"github.com/cyclus-go/cyclus/internal/infrastructure/logging"
	"github.com/cyclus-go/cyclus/internal/infrastructure/pluginregistry"
	"github.com/cyclus-go/cyclus/internal/infrastructure/scenario"
)

// NewRunCommand builds the `cyclus run <scenario-file>` subcommand.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario-file>",
		Short: "Run a scenario from tick 0 through its horizon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.Context(), args[0])
		},
	}
}

func runScenario(ctx context.Context, scenarioPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return &scenarioError{err: fmt.Errorf("load config: %w", err)}
	}

	logger := logging.New(cfg.Logging)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return &runtimeError{err: fmt.Errorf("connect database: %w", err)}
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return &runtimeError{err: fmt.Errorf("migrate database: %w", err)}
	}

	catalog := pluginregistry.NewCatalog(db)
	if err := catalog.Scan(ctx, cfg.CyclusPath, cfg.PluginHost.Address != ""); err != nil {
		return &scenarioError{err: fmt.Errorf("scan plugin catalog: %w", err)}
	}

	doc, err := scenario.Load(scenarioPath)
	if err != nil {
		return &scenarioError{err: err}
	}

	kinds := pluginregistry.NewKindRegistry()
	if err := pluginregistry.RegisterBuiltins(kinds); err != nil {
		return &scenarioError{err: fmt.Errorf("register builtin kinds: %w", err)}
	}

	sim, err := scenario.Build(doc, kinds)
	if err != nil {
		return &scenarioError{err: err}
	}
	sim.Context.Freeze()

	settlementRepo := persistence.NewGormSettlementRepository(db)
	mediator := common.NewMediator()
	if err := audit.RegisterHandlers(mediator, settlementRepo); err != nil {
		return &runtimeError{err: fmt.Errorf("register audit handlers: %w", err)}
	}

	simCtx := sim.Context
	for _, market := range sim.Markets {
		market.SetSettlementObserver(func(tx *txn.Transaction, period int) {
			name := ""
			if c, err := simCtx.Commodity(tx.Commodity()); err == nil {
				name = c.Name
			}
			if _, err := mediator.Send(ctx, &audit.RecordSettlementCommand{Settlement: domainaudit.Settlement{
				TransactionID: tx.ID(),
				Period:        period,
				Commodity:     tx.Commodity(),
				CommodityName: name,
				Amount:        tx.Amount(),
				UnitPrice:     tx.UnitPrice(),
				Supplier:      tx.Supplier(),
				Requester:     tx.Requester(),
				Metadata:      tx.Metadata(),
				SettledAt:     time.Now().UTC(),
			}}); err != nil {
				logger.Log("error", "settlement record failed", map[string]interface{}{"error": err.Error(), "period": period})
			}
		})
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewPrometheusCollector(metrics.GetRegistry())
		metrics.SetGlobalCollector(collector)
	}

	tk := simulation.NewTimekeeper(sim.Roots, sim.Markets, sim.Horizon, simulation.WithLogger(logger))

	if cfg.Metrics.Enabled {
		commandMetrics := metrics.NewCommandMetricsCollector(metrics.GetRegistry())
		tk.Use(metrics.PrometheusMiddleware(commandMetrics))
	}

	if err := tk.Run(ctx); err != nil {
		return &runtimeError{err: err}
	}

	logger.Log("info", "simulation complete", map[string]interface{}{"horizon": sim.Horizon})
	return nil
}

// Package audit wires the settlement ledger (internal/domain/audit) into
// the mediator as one command and three queries, the same CQRS split the
// teacher uses for every other use-case.
package audit

import (
	"context"
	"fmt"

	"github.com/cyclus-go/cyclus/internal/application/common"
	domainaudit "github.com/cyclus-go/cyclus/internal/domain/audit"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
)

// RecordSettlementCommand persists one completed DOWN-leg transfer.
type RecordSettlementCommand struct {
	Settlement domainaudit.Settlement
}

// GetSettlementsQuery lists settlements for a commodity.
type GetSettlementsQuery struct {
	Commodity registry.CommodityID
}

// GetTransfersQuery lists settlements an agent took part in, as either
// supplier or requester.
type GetTransfersQuery struct {
	AgentID registry.AgentID
}

// GetConservationReportQuery sums material moved in a period, a sanity
// check that the market never fabricated or destroyed quantity.
type GetConservationReportQuery struct {
	Period int
}

type recordSettlementHandler struct {
	repo domainaudit.Repository
}

// NewRecordSettlementHandler builds the RecordSettlementCommand handler.
func NewRecordSettlementHandler(repo domainaudit.Repository) common.RequestHandler {
	return &recordSettlementHandler{repo: repo}
}

func (h *recordSettlementHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RecordSettlementCommand)
	if !ok {
		return nil, fmt.Errorf("audit: unexpected request type %T", request)
	}
	if err := h.repo.Record(ctx, cmd.Settlement); err != nil {
		return nil, err
	}
	return nil, nil
}

type getSettlementsHandler struct {
	repo domainaudit.Repository
}

// NewGetSettlementsHandler builds the GetSettlementsQuery handler.
func NewGetSettlementsHandler(repo domainaudit.Repository) common.RequestHandler {
	return &getSettlementsHandler{repo: repo}
}

func (h *getSettlementsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSettlementsQuery)
	if !ok {
		return nil, fmt.Errorf("audit: unexpected request type %T", request)
	}
	return h.repo.GetSettlements(ctx, query.Commodity)
}

type getTransfersHandler struct {
	repo domainaudit.Repository
}

// NewGetTransfersHandler builds the GetTransfersQuery handler.
func NewGetTransfersHandler(repo domainaudit.Repository) common.RequestHandler {
	return &getTransfersHandler{repo: repo}
}

func (h *getTransfersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetTransfersQuery)
	if !ok {
		return nil, fmt.Errorf("audit: unexpected request type %T", request)
	}
	return h.repo.GetTransfers(ctx, query.AgentID)
}

type getConservationReportHandler struct {
	repo domainaudit.Repository
}

// NewGetConservationReportHandler builds the GetConservationReportQuery handler.
func NewGetConservationReportHandler(repo domainaudit.Repository) common.RequestHandler {
	return &getConservationReportHandler{repo: repo}
}

func (h *getConservationReportHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetConservationReportQuery)
	if !ok {
		return nil, fmt.Errorf("audit: unexpected request type %T", request)
	}
	total, err := h.repo.GetConservationReport(ctx, query.Period)
	if err != nil {
		return nil, err
	}
	return total, nil
}

// RegisterHandlers registers all four audit handlers on mediator.
func RegisterHandlers(mediator common.Mediator, repo domainaudit.Repository) error {
	if err := common.RegisterHandler[*RecordSettlementCommand](mediator, NewRecordSettlementHandler(repo)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*GetSettlementsQuery](mediator, NewGetSettlementsHandler(repo)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*GetTransfersQuery](mediator, NewGetTransfersHandler(repo)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*GetConservationReportQuery](mediator, NewGetConservationReportHandler(repo)); err != nil {
		return err
	}
	return nil
}

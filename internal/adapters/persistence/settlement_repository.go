package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cyclus-go/cyclus/internal/domain/audit"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// GormSettlementRepository is the gorm-backed audit.Repository
// implementation, grounded on the teacher's own persistence repository
// pattern: a thin model↔domain conversion layer wrapping *gorm.DB.
type GormSettlementRepository struct {
	db *gorm.DB
}

// NewGormSettlementRepository wraps db as an audit.Repository.
func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

func (r *GormSettlementRepository) Record(ctx context.Context, s audit.Settlement) error {
	metadataJSON, err := json.Marshal(s.Metadata)
	if err != nil {
		return fmt.Errorf("marshal settlement metadata: %w", err)
	}
	model := SettlementModel{
		ID:            uuid.UUID(s.TransactionID).String(),
		Period:        s.Period,
		CommodityID:   int64(s.Commodity),
		CommodityName: s.CommodityName,
		Amount:        s.Amount,
		UnitPrice:     s.UnitPrice,
		SupplierID:    int64(s.Supplier),
		RequesterID:   int64(s.Requester),
		MetadataJSON:  string(metadataJSON),
		CreatedAt:     s.SettledAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormSettlementRepository) GetSettlements(ctx context.Context, commodity registry.CommodityID) ([]audit.Settlement, error) {
	var models []SettlementModel
	if err := r.db.WithContext(ctx).Where("commodity_id = ?", int64(commodity)).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	return toSettlements(models)
}

func (r *GormSettlementRepository) GetTransfers(ctx context.Context, agentID registry.AgentID) ([]audit.Settlement, error) {
	var models []SettlementModel
	id := int64(agentID)
	if err := r.db.WithContext(ctx).Where("supplier_id = ? OR requester_id = ?", id, id).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	return toSettlements(models)
}

func (r *GormSettlementRepository) GetConservationReport(ctx context.Context, period int) (float64, error) {
	var models []SettlementModel
	if err := r.db.WithContext(ctx).Where("period = ?", period).Find(&models).Error; err != nil {
		return 0, err
	}
	var total float64
	for _, m := range models {
		total += m.Amount
	}
	return total, nil
}

func toSettlements(models []SettlementModel) ([]audit.Settlement, error) {
	out := make([]audit.Settlement, 0, len(models))
	for _, m := range models {
		id, err := uuid.Parse(m.ID)
		if err != nil {
			return nil, fmt.Errorf("parse settlement id %q: %w", m.ID, err)
		}
		var metadata map[string]any
		if m.MetadataJSON != "" {
			if err := json.Unmarshal([]byte(m.MetadataJSON), &metadata); err != nil {
				return nil, fmt.Errorf("unmarshal settlement metadata: %w", err)
			}
		}
		out = append(out, audit.Settlement{
			TransactionID: txn.TransactionID(id),
			Period:        m.Period,
			Commodity:     registry.CommodityID(m.CommodityID),
			CommodityName: m.CommodityName,
			Amount:        m.Amount,
			UnitPrice:     m.UnitPrice,
			Supplier:      registry.AgentID(m.SupplierID),
			Requester:     registry.AgentID(m.RequesterID),
			Metadata:      metadata,
			SettledAt:     m.CreatedAt,
		})
	}
	return out, nil
}

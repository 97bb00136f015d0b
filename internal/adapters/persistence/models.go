// Package persistence holds the gorm model types and repositories
// backing the settlement/audit ledger: every DOWN-leg transaction that
// reaches DONE is appended here for later query (GetTransfers,
// GetConservationReport, GetSettlements), the same kind of write-once
// query surface the teacher's ledger package exists to provide — just
// never reloaded as simulation state across runs.
package persistence

import "time"

// SettlementModel is the gorm-mapped row for one settled transaction.
type SettlementModel struct {
	ID            string `gorm:"primaryKey"`
	Period        int    `gorm:"index"`
	CommodityID   int64  `gorm:"index"`
	CommodityName string
	Amount        float64
	UnitPrice     float64
	SupplierID    int64 `gorm:"index"`
	RequesterID   int64 `gorm:"index"`
	MetadataJSON  string
	CreatedAt     time.Time
}

func (SettlementModel) TableName() string { return "settlements" }

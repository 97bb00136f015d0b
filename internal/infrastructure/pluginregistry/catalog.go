package pluginregistry

import (
	"context"
	"os"
	"path/filepath"

	"gorm.io/gorm"
)

// CatalogEntryModel is one discovered kind-tag, scanned fresh from
// CYCLUS_PATH/Models/<kind>/ at every start of `cyclus run` into the
// configured database (the one that also holds the settlement ledger).
// It is never reloaded across runs and never consulted to reconstruct
// simulation state — it only answers "what kind tags does this
// CYCLUS_PATH make available" through Lookup. The validate command does
// not scan or consult it.
type CatalogEntryModel struct {
	Kind         string `gorm:"primaryKey"`
	ArtifactPath string
	Remote       bool
}

func (CatalogEntryModel) TableName() string { return "plugin_catalog" }

// Catalog wraps a gorm.DB holding the scanned CatalogEntryModel rows.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog wraps db, which must already have CatalogEntryModel
// migrated (internal/infrastructure/database.AutoMigrate does this).
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Scan walks cyclusPath/Models/<kind>/ and (re)populates the catalog,
// one row per immediate subdirectory. remote marks every discovered kind
// as dispatched to the configured plugin host rather than the in-process
// KindRegistry; a real loader would decide this per-kind, but the core
// doesn't implement that dynamic loader (Non-goal), so this package only
// records what a loader would need to know.
func (c *Catalog) Scan(ctx context.Context, cyclusPath string, remote bool) error {
	modelsDir := filepath.Join(cyclusPath, "Models")
	entries, err := os.ReadDir(modelsDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.db.WithContext(ctx).Where("1 = 1").Delete(&CatalogEntryModel{}).Error; err != nil {
		return err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		row := CatalogEntryModel{
			Kind:         e.Name(),
			ArtifactPath: filepath.Join(modelsDir, e.Name()),
			Remote:       remote,
		}
		if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the catalog entry for kind, if any was scanned.
func (c *Catalog) Lookup(ctx context.Context, kind string) (CatalogEntryModel, bool, error) {
	var row CatalogEntryModel
	err := c.db.WithContext(ctx).First(&row, "kind = ?", kind).Error
	if err == gorm.ErrRecordNotFound {
		return CatalogEntryModel{}, false, nil
	}
	if err != nil {
		return CatalogEntryModel{}, false, err
	}
	return row, true, nil
}

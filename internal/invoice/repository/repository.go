// Package repository persists the single in-progress invoice draft.
//
// Only one draft row ever exists: tax rates and bank details ride along in
// the aggregate payload, so a restart restores the form exactly as it was
// left. This is deliberately not a multi-invoice archive.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/dhruvent/billing/internal/invoice/domain"
)

const draftRowID = 1

// Draft is the persistence model for the in-progress invoice.
type Draft struct {
	ID            int64          `gorm:"primaryKey"`
	InvoiceNumber int64          `gorm:"not null;index"`
	Payload       datatypes.JSON `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
}

// TableName sets the database table name.
func (Draft) TableName() string { return "invoice_drafts" }

// DraftRepository loads and saves the current draft.
type DraftRepository interface {
	// Load returns the saved draft, or nil when none has been saved yet.
	Load(ctx context.Context) (*domain.Invoice, error)
	Save(ctx context.Context, inv *domain.Invoice) error
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Load(ctx context.Context) (*domain.Invoice, error) {
	var row Draft
	err := r.db.WithContext(ctx).First(&row, "id = ?", draftRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var inv domain.Invoice
	if err := json.Unmarshal(row.Payload, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *draftRepository) Save(ctx context.Context, inv *domain.Invoice) error {
	payload, err := json.Marshal(inv)
	if err != nil {
		return err
	}

	row := Draft{
		ID:            draftRowID,
		InvoiceNumber: inv.Header.InvoiceNumber,
		Payload:       payload,
		UpdatedAt:     time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

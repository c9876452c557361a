package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/dhruvent/billing/internal/invoice/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Draft{}))
	return db
}

func newTestInvoice(t *testing.T) *domain.Invoice {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	inv := domain.New(428, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), node.Generate)
	inv.BillTo = domain.Party{Name: "Acme Traders", GSTIN: "33AAAAA0000A1Z5"}
	inv.Items[0].Apply(domain.FieldDescription, "Steel Rods")
	inv.Items[0].Apply(domain.FieldQuantity, "10")
	inv.Items[0].Apply(domain.FieldUnitPrice, "25.5")
	return inv
}

func TestLoadWithoutDraft(t *testing.T) {
	repo := NewDraftRepository(newTestDB(t))

	inv, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := NewDraftRepository(newTestDB(t))
	ctx := context.Background()

	saved := newTestInvoice(t)
	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, saved.Header.InvoiceNumber, loaded.Header.InvoiceNumber)
	assert.Equal(t, saved.BillTo, loaded.BillTo)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, saved.Items[0], loaded.Items[0])
	assert.Equal(t, saved.Rates, loaded.Rates)
}

func TestSaveOverwritesSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	first := newTestInvoice(t)
	require.NoError(t, repo.Save(ctx, first))

	second := newTestInvoice(t)
	second.Header.InvoiceNumber = 429
	require.NoError(t, repo.Save(ctx, second))

	var count int64
	require.NoError(t, db.Model(&Draft{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(429), loaded.Header.InvoiceNumber)
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	businessdomain "github.com/invobook/invobook/internal/business/domain"
	businessrepo "github.com/invobook/invobook/internal/business/repository"
	businessservice "github.com/invobook/invobook/internal/business/service"
	"github.com/invobook/invobook/internal/config"
	customerdomain "github.com/invobook/invobook/internal/customer/domain"
	customerrepo "github.com/invobook/invobook/internal/customer/repository"
	customerservice "github.com/invobook/invobook/internal/customer/service"
	"github.com/invobook/invobook/internal/invoice/domain"
	"github.com/invobook/invobook/internal/invoice/generate"
	"github.com/invobook/invobook/internal/invoice/render"
	invoicerepo "github.com/invobook/invobook/internal/invoice/repository"
	"github.com/invobook/invobook/internal/seed"
	settingsdomain "github.com/invobook/invobook/internal/settings/domain"
	settingsrepo "github.com/invobook/invobook/internal/settings/repository"
	settingsservice "github.com/invobook/invobook/internal/settings/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	svc       domain.Service
	customers customerdomain.Service
	settings  settingsdomain.Service
}

func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&businessdomain.Business{},
		&settingsdomain.Settings{},
		&customerdomain.Customer{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
	)
	require.NoError(t, err)

	require.NoError(t, seed.EnsureDefaults(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	businessSvc := businessservice.New(businessservice.Params{
		DB: db, Log: log, GenID: node, Repo: businessrepo.Provide(),
	})
	settingsSvc := settingsservice.New(settingsservice.Params{
		DB: db, Log: log, GenID: node, Repo: settingsrepo.Provide(),
	})
	customerSvc := customerservice.New(customerservice.Params{
		DB: db, Log: log, GenID: node, Repo: customerrepo.Provide(),
	})

	renderer := render.NewRenderer(log)
	generator := generate.NewGenerator(generate.Params{Log: log, Renderer: renderer})

	svc := New(Params{
		Config:    config.Config{},
		DB:        db,
		Log:       log,
		GenID:     node,
		Repo:      invoicerepo.Provide(),
		Business:  businessSvc,
		Settings:  settingsSvc,
		Customers: customerSvc,
		Renderer:  renderer,
		Generator: generator,
	})

	return &testEnv{db: db, svc: svc, customers: customerSvc, settings: settingsSvc}
}

func itemInput(name string, qty, price float64) domain.ItemInput {
	return domain.ItemInput{Name: name, Quantity: qty, Price: price}
}

func TestInvoiceService_CreateAssignsSequentialNumbers(t *testing.T) {
	env := newTestEnv(t, "invoice_seq")
	ctx := context.Background()

	taxRate := 10.0
	first, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Acme Traders",
		Items:        []domain.ItemInput{itemInput("Widget", 2, 100)},
		TaxRate:      &taxRate,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", first.Invoice.InvoiceNumber)
	assert.Equal(t, domain.InvoiceStatusDraft, first.Invoice.Status)
	assert.Equal(t, 200.0, first.Totals.Subtotal)
	assert.Equal(t, 20.0, first.Totals.TaxAmount)
	assert.Equal(t, 220.0, first.Totals.Total)

	second, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Acme Traders",
		Items:        []domain.ItemInput{itemInput("Widget", 1, 50)},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", second.Invoice.InvoiceNumber)
}

func TestInvoiceService_CreateValidation(t *testing.T) {
	env := newTestEnv(t, "invoice_validation")
	ctx := context.Background()

	_, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{CustomerName: "A"})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)

	_, err = env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "A",
		Items:        []domain.ItemInput{itemInput("Widget", -1, 10)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "A",
		Items:        []domain.ItemInput{{Name: "Widget", Quantity: 1, Price: 10, Discount: 150}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPercent)

	bad := 120.0
	_, err = env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "A",
		Items:        []domain.ItemInput{itemInput("Widget", 1, 10)},
		TaxRate:      &bad,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPercent)
}

func TestInvoiceService_CustomerSnapshotIsFrozen(t *testing.T) {
	env := newTestEnv(t, "invoice_snapshot")
	ctx := context.Background()

	cust, err := env.customers.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Address: "12 MG Road, Bengaluru",
	})
	require.NoError(t, err)

	created, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID: cust.ID.String(),
		Items:      []domain.ItemInput{itemInput("Consulting", 1, 5000)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", created.Invoice.CustomerName)
	assert.Equal(t, "ravi@example.com", created.Invoice.CustomerEmail)
	assert.Equal(t, "12 MG Road, Bengaluru", created.Invoice.CustomerAddress)

	newName := "Ravi K"
	_, err = env.customers.Update(ctx, customerdomain.UpdateCustomerRequest{
		ID:   cust.ID.String(),
		Name: &newName,
	})
	require.NoError(t, err)

	got, err := env.svc.GetByID(ctx, created.Invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.Invoice.CustomerName)
}

func TestInvoiceService_CreateRejectsUnknownCustomer(t *testing.T) {
	env := newTestEnv(t, "invoice_unknown_customer")

	_, err := env.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		CustomerID: "123456789",
		Items:      []domain.ItemInput{itemInput("Widget", 1, 10)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomer)
}

func TestInvoiceService_UpdateReplacesItems(t *testing.T) {
	env := newTestEnv(t, "invoice_update")
	ctx := context.Background()

	created, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items:        []domain.ItemInput{itemInput("Widget", 1, 100)},
	})
	require.NoError(t, err)

	status := "paid"
	updated, err := env.svc.Update(ctx, domain.UpdateInvoiceRequest{
		ID:     created.Invoice.ID.String(),
		Status: &status,
		Items: []domain.ItemInput{
			itemInput("Widget", 2, 100),
			itemInput("Gadget", 1, 25),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, updated.Invoice.Status)
	require.Len(t, updated.Invoice.Items, 2)
	assert.Equal(t, 0, updated.Invoice.Items[0].Position)
	assert.Equal(t, 1, updated.Invoice.Items[1].Position)
	assert.Equal(t, 225.0, updated.Totals.Total)

	got, err := env.svc.GetByID(ctx, created.Invoice.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Invoice.Items, 2)
	assert.Equal(t, "Widget", got.Invoice.Items[0].Name)
	assert.Equal(t, "Gadget", got.Invoice.Items[1].Name)

	// The invoice number never changes on update.
	assert.Equal(t, created.Invoice.InvoiceNumber, got.Invoice.InvoiceNumber)
}

func TestInvoiceService_UpdateRejectsInvalidStatus(t *testing.T) {
	env := newTestEnv(t, "invoice_bad_status")
	ctx := context.Background()

	created, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items:        []domain.ItemInput{itemInput("Widget", 1, 100)},
	})
	require.NoError(t, err)

	status := "archived"
	_, err = env.svc.Update(ctx, domain.UpdateInvoiceRequest{
		ID:     created.Invoice.ID.String(),
		Status: &status,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestInvoiceService_ListFiltersByStatus(t *testing.T) {
	env := newTestEnv(t, "invoice_list")
	ctx := context.Background()

	first, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items:        []domain.ItemInput{itemInput("Widget", 1, 100)},
	})
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Globex",
		Items:        []domain.ItemInput{itemInput("Gadget", 1, 50)},
	})
	require.NoError(t, err)

	status := "paid"
	_, err = env.svc.Update(ctx, domain.UpdateInvoiceRequest{
		ID:     first.Invoice.ID.String(),
		Status: &status,
	})
	require.NoError(t, err)

	all, err := env.svc.List(ctx, domain.ListInvoiceRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Invoices, 2)

	paid, err := env.svc.List(ctx, domain.ListInvoiceRequest{Status: "paid"})
	require.NoError(t, err)
	require.Len(t, paid.Invoices, 1)
	assert.Equal(t, first.Invoice.ID, paid.Invoices[0].ID)

	_, err = env.svc.List(ctx, domain.ListInvoiceRequest{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestInvoiceService_Delete(t *testing.T) {
	env := newTestEnv(t, "invoice_delete")
	ctx := context.Background()

	created, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items:        []domain.ItemInput{itemInput("Widget", 1, 100)},
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, created.Invoice.ID.String()))

	_, err = env.svc.GetByID(ctx, created.Invoice.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	var count int64
	require.NoError(t, env.db.Model(&domain.InvoiceItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInvoiceService_RenderPDF(t *testing.T) {
	env := newTestEnv(t, "invoice_render")
	ctx := context.Background()

	created, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items:        []domain.ItemInput{itemInput("Widget", 3, 199.5)},
	})
	require.NoError(t, err)

	doc, err := env.svc.RenderPDF(ctx, created.Invoice.ID.String())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Bytes(), []byte("%PDF")))
}

func TestInvoiceService_ExportPDFReportsProgress(t *testing.T) {
	env := newTestEnv(t, "invoice_export")
	ctx := context.Background()

	created, err := env.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerName: "Acme",
		Items:        []domain.ItemInput{itemInput("Widget", 1, 100)},
	})
	require.NoError(t, err)

	job, inv, err := env.svc.ExportPDF(ctx, created.Invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Invoice.InvoiceNumber, inv.InvoiceNumber)

	last := -1
	for p := range job.Progress() {
		assert.GreaterOrEqual(t, p.Percent, last)
		last = p.Percent
	}
	assert.Equal(t, 100, last)

	doc, err := job.Wait(ctx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Bytes(), []byte("%PDF")))
}

package service_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-uniform-pos/internal/checkout"
	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/repository"
	"go-uniform-pos/internal/service"
	"go-uniform-pos/internal/ws"
)

var (
	testDB *gorm.DB

	catalogSvc     service.CatalogService
	checkoutSvc    service.CheckoutService
	procurementSvc service.ProcurementService
	poSvc          service.PurchaseOrderService
	reportSvc      service.ReportService

	vendorRepo repository.VendorRepository
	txRepo     repository.TransactionRepository

	testVendorID uuid.UUID
	codeSeq      int
)

// TestMain wires the full service stack against a throwaway Postgres given by
// TEST_DATABASE_URL. Without it the integration tests skip.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}
	testDB = db

	db.AutoMigrate(
		&model.Uniform{},
		&model.Transaction{}, &model.TransactionItem{},
		&model.ProcurementRecord{}, &model.ProcurementItem{},
		&model.PurchaseOrder{}, &model.PurchaseOrderItem{},
		&model.Vendor{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)
	cleanup(db)

	hub := ws.NewHub()
	go hub.Run()

	uniformRepo := repository.NewUniformRepo(db)
	txRepo = repository.NewTransactionRepo(db)
	procurementRepo := repository.NewProcurementRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	vendorRepo = repository.NewVendorRepo(db)
	userRepo := repository.NewUserRepo(db)

	catalogSvc = service.NewCatalogService(uniformRepo, db, hub)
	checkoutSvc = service.NewCheckoutService(uniformRepo, txRepo, db, hub, checkout.Options{})
	procurementSvc = service.NewProcurementService(procurementRepo, uniformRepo, db, hub)
	poSvc = service.NewPurchaseOrderService(poRepo)
	reportSvc = service.NewReportService(txRepo, procurementRepo, uniformRepo, userRepo, 0)

	seedTestData(db)

	code := m.Run()
	cleanup(db)
	os.Exit(code)
}

func cleanup(db *gorm.DB) {
	db.Exec(`TRUNCATE uniforms, transactions, transaction_items,
		procurement_records, procurement_items,
		purchase_orders, purchase_order_items,
		vendors, users RESTART IDENTITY CASCADE`)
}

func seedTestData(db *gorm.DB) {
	vendor := &model.Vendor{Name: "CV Seragam Jaya", Contact: "0812000111", Type: "Konveksi"}
	if err := vendorRepo.Create(vendor); err != nil {
		panic("failed to seed vendor: " + err.Error())
	}
	testVendorID = vendor.ID
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
}

// newCashier inserts a user row so transactions have a valid cashier id.
func newCashier(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u := &model.User{Username: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]), Name: name, IsActive: true}
	require.NoError(t, u.SetPassword("secret123"))
	require.NoError(t, testDB.Create(u).Error)
	return u.ID
}

// newUniform creates a catalog item with a unique code.
func newUniform(t *testing.T, name string, price int64, stock int) *model.Uniform {
	t.Helper()
	codeSeq++
	u := &model.Uniform{
		Code:  fmt.Sprintf("UNF-%03d", codeSeq),
		Name:  name,
		Size:  "M",
		Price: price,
		Stock: stock,
	}
	require.NoError(t, catalogSvc.CreateUniform(u, "tester", "Tester"))
	return u
}

func currentStock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	var u model.Uniform
	require.NoError(t, testDB.First(&u, "id = ?", id).Error)
	return u.Stock
}

func transactionCount(t *testing.T) int64 {
	t.Helper()
	n, err := txRepo.Count()
	require.NoError(t, err)
	return n
}

func TestCheckoutFlow(t *testing.T) {
	requireDB(t)

	t.Run("cash sale decrements stock and records the exact total", func(t *testing.T) {
		cashier := newCashier(t, "kasir1")
		shirt := newUniform(t, "Kemeja Putih S", 65000, 5)

		for i := 0; i < 3; i++ {
			_, err := checkoutSvc.AddToCart(cashier, shirt.ID)
			require.NoError(t, err)
		}

		view, err := checkoutSvc.Begin(cashier)
		require.NoError(t, err)
		assert.Equal(t, checkout.PhasePayment, view.Phase)
		assert.Equal(t, int64(195000), view.Subtotal)

		tx, err := checkoutSvc.Finalize(cashier, model.PaymentCash, model.ShippingInfo{}, "Kasir Satu")
		require.NoError(t, err)

		assert.Equal(t, int64(195000), tx.TotalAmount)
		assert.Equal(t, model.TxPaid, tx.Status)
		require.Len(t, tx.Items, 1)
		assert.Equal(t, 3, tx.Items[0].Quantity)
		assert.Equal(t, "Kemeja Putih S", tx.Items[0].Name)

		assert.Equal(t, 2, currentStock(t, shirt.ID))

		// A completed cart is replaced by a fresh idle one.
		fresh := checkoutSvc.GetCart(cashier)
		assert.Equal(t, checkout.PhaseIdle, fresh.Phase)
		assert.Empty(t, fresh.Lines)
	})

	t.Run("transfer sale stays pending until marked paid", func(t *testing.T) {
		cashier := newCashier(t, "kasir2")
		trousers := newUniform(t, "Celana Abu M", 90000, 4)

		_, err := checkoutSvc.AddToCart(cashier, trousers.ID)
		require.NoError(t, err)
		_, err = checkoutSvc.Begin(cashier)
		require.NoError(t, err)

		info := model.ShippingInfo{CustomerName: "Ibu Sari", PhoneNumber: "0813", Address: "Jl. Anggrek 5"}
		tx, err := checkoutSvc.Finalize(cashier, model.PaymentTransfer, info, "Kasir Dua")
		require.NoError(t, err)
		assert.Equal(t, model.TxPending, tx.Status)
		assert.Equal(t, "Ibu Sari", tx.CustomerName)

		require.NoError(t, checkoutSvc.MarkPaid(tx.ID, cashier.String()))

		settled, err := checkoutSvc.GetTransactionByID(tx.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TxPaid, settled.Status)

		assert.ErrorIs(t, checkoutSvc.MarkPaid(tx.ID, cashier.String()), service.ErrAlreadyPaid)
	})

	t.Run("finalizing an empty cart writes nothing", func(t *testing.T) {
		cashier := newCashier(t, "kasir3")
		before := transactionCount(t)

		_, err := checkoutSvc.Finalize(cashier, model.PaymentCash, model.ShippingInfo{}, "Kasir Tiga")
		assert.ErrorIs(t, err, checkout.ErrEmptyCart)
		assert.Equal(t, before, transactionCount(t))
	})

	t.Run("stale cart loses to commit-time stock", func(t *testing.T) {
		cashier := newCashier(t, "kasir4")
		jacket := newUniform(t, "Jaket Almamater", 150000, 3)

		for i := 0; i < 3; i++ {
			_, err := checkoutSvc.AddToCart(cashier, jacket.ID)
			require.NoError(t, err)
		}
		_, err := checkoutSvc.Begin(cashier)
		require.NoError(t, err)

		// Stock moves underneath the open cart.
		_, err = catalogSvc.AdjustStock(jacket.ID, -2, "gudang", "Gudang")
		require.NoError(t, err)

		before := transactionCount(t)
		_, err = checkoutSvc.Finalize(cashier, model.PaymentCash, model.ShippingInfo{}, "Kasir Empat")
		assert.ErrorIs(t, err, service.ErrStockConflict)

		// Nothing committed: no transaction row, no partial decrement.
		assert.Equal(t, before, transactionCount(t))
		assert.Equal(t, 1, currentStock(t, jacket.ID))

		// The cart survives the failed finalize for retry.
		view := checkoutSvc.GetCart(cashier)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 3, view.Lines[0].Quantity)
	})
}

func TestStockAdjustment(t *testing.T) {
	requireDB(t)

	t.Run("delta below zero is rejected, not clamped", func(t *testing.T) {
		hat := newUniform(t, "Topi Sekolah", 25000, 2)

		_, err := catalogSvc.AdjustStock(hat.ID, -5, "gudang", "Gudang")
		assert.ErrorIs(t, err, service.ErrStockConflict)
		assert.Equal(t, 2, currentStock(t, hat.ID))
	})
}

func TestProcurement(t *testing.T) {
	requireDB(t)

	t.Run("stock-in and ledger row commit together", func(t *testing.T) {
		tie := newUniform(t, "Dasi Abu", 15000, 2)

		record, err := procurementSvc.RecordProcurement(&service.RecordProcurementRequest{
			VendorID: testVendorID,
			Items: []service.ProcurementItemInput{
				{UniformID: tie.ID, Quantity: 10, Cost: 50000},
			},
		}, "gudang", "Gudang")
		require.NoError(t, err)

		assert.Equal(t, int64(500000), record.TotalCost)
		require.Len(t, record.Items, 1)
		assert.Equal(t, "Dasi Abu", record.Items[0].Name)
		assert.Equal(t, 12, currentStock(t, tie.ID))
	})

	t.Run("invalid quantity aborts the whole stock-in", func(t *testing.T) {
		belt := newUniform(t, "Ikat Pinggang", 20000, 5)

		_, err := procurementSvc.RecordProcurement(&service.RecordProcurementRequest{
			VendorID: testVendorID,
			Items: []service.ProcurementItemInput{
				{UniformID: belt.ID, Quantity: 0, Cost: 10000},
			},
		}, "gudang", "Gudang")
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
		assert.Equal(t, 5, currentStock(t, belt.ID))
	})

	t.Run("deleting a record does not reverse stock", func(t *testing.T) {
		socks := newUniform(t, "Kaos Kaki", 10000, 1)

		record, err := procurementSvc.RecordProcurement(&service.RecordProcurementRequest{
			VendorID: testVendorID,
			Items: []service.ProcurementItemInput{
				{UniformID: socks.ID, Quantity: 6, Cost: 8000},
			},
		}, "gudang", "Gudang")
		require.NoError(t, err)
		assert.Equal(t, 7, currentStock(t, socks.ID))

		require.NoError(t, procurementSvc.DeleteProcurement(record.ID, "gudang"))
		assert.Equal(t, 7, currentStock(t, socks.ID))
	})

	t.Run("records survive vendor deletion", func(t *testing.T) {
		vendor := &model.Vendor{Name: "UD Sementara"}
		require.NoError(t, vendorRepo.Create(vendor))

		shoes := newUniform(t, "Sepatu Hitam", 120000, 3)
		record, err := procurementSvc.RecordProcurement(&service.RecordProcurementRequest{
			VendorID: vendor.ID,
			Items: []service.ProcurementItemInput{
				{UniformID: shoes.ID, Quantity: 2, Cost: 100000},
			},
		}, "gudang", "Gudang")
		require.NoError(t, err)

		require.NoError(t, vendorRepo.Delete(vendor.ID, "admin"))

		// The vendor is gone, the ledger row is not.
		_, err = vendorRepo.FindByID(vendor.ID)
		assert.Error(t, err)

		kept, err := procurementSvc.GetProcurementByID(record.ID)
		require.NoError(t, err)
		assert.Equal(t, vendor.ID, kept.VendorID)
	})
}

func TestPurchaseOrderTracking(t *testing.T) {
	requireDB(t)

	t.Run("advancing an order never touches stock", func(t *testing.T) {
		batik := newUniform(t, "Batik Jumat", 85000, 4)

		order, err := poSvc.Create(&service.CreatePurchaseOrderRequest{
			VendorID: testVendorID,
			Items: []service.PurchaseOrderItemInput{
				{Name: "Batik Jumat ukuran XL", Quantity: 20, EstimatedPrice: 80000},
			},
		}, "gudang")
		require.NoError(t, err)
		assert.Equal(t, model.POPending, order.Status)

		order, err = poSvc.AdvanceStatus(order.ID, "gudang")
		require.NoError(t, err)
		assert.Equal(t, model.POOrdered, order.Status)

		order, err = poSvc.AdvanceStatus(order.ID, "gudang")
		require.NoError(t, err)
		assert.Equal(t, model.POReceived, order.Status)

		_, err = poSvc.AdvanceStatus(order.ID, "gudang")
		assert.ErrorIs(t, err, model.ErrPurchaseOrderReceived)

		// Receiving the order is tracking only; stock is unchanged until a
		// procurement is entered.
		assert.Equal(t, 4, currentStock(t, batik.ID))
	})

	t.Run("status filter narrows the listing", func(t *testing.T) {
		_, err := poSvc.Create(&service.CreatePurchaseOrderRequest{
			VendorID: testVendorID,
			Items: []service.PurchaseOrderItemInput{
				{Name: "Rok Abu", Quantity: 15},
			},
		}, "gudang")
		require.NoError(t, err)

		pending, err := poSvc.GetAll(model.POPending)
		require.NoError(t, err)
		for _, po := range pending {
			assert.Equal(t, model.POPending, po.Status)
		}
		assert.NotEmpty(t, pending)
	})
}

func TestReports(t *testing.T) {
	requireDB(t)

	t.Run("dashboard counters move with sales and low stock", func(t *testing.T) {
		before, err := reportSvc.GetDashboardStats()
		require.NoError(t, err)

		// One more uniform under the default threshold of 10.
		vest := newUniform(t, "Rompi", 45000, 3)

		cashier := newCashier(t, "kasir5")
		_, err = checkoutSvc.AddToCart(cashier, vest.ID)
		require.NoError(t, err)
		_, err = checkoutSvc.Begin(cashier)
		require.NoError(t, err)
		_, err = checkoutSvc.Finalize(cashier, model.PaymentCash, model.ShippingInfo{}, "Kasir Lima")
		require.NoError(t, err)

		after, err := reportSvc.GetDashboardStats()
		require.NoError(t, err)

		assert.Equal(t, before.TotalTransactions+1, after.TotalTransactions)
		assert.Equal(t, before.TotalSales+45000, after.TotalSales)
		assert.Equal(t, before.TotalUniforms+1, after.TotalUniforms)
		assert.Equal(t, before.LowStockItems+1, after.LowStockItems)
	})

	t.Run("sales report sums both ledgers", func(t *testing.T) {
		before, err := reportSvc.GetSalesReport()
		require.NoError(t, err)

		ribbon := newUniform(t, "Pita Nama", 5000, 2)
		_, err = procurementSvc.RecordProcurement(&service.RecordProcurementRequest{
			VendorID: testVendorID,
			Items: []service.ProcurementItemInput{
				{UniformID: ribbon.ID, Quantity: 4, Cost: 3000},
			},
		}, "gudang", "Gudang")
		require.NoError(t, err)

		after, err := reportSvc.GetSalesReport()
		require.NoError(t, err)
		assert.Equal(t, before.TotalPurchases+12000, after.TotalPurchases)
		assert.GreaterOrEqual(t, after.TotalSales, before.TotalSales)
	})

	t.Run("sales movement covers the requested window", func(t *testing.T) {
		movement, err := reportSvc.GetSalesMovement(7)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(movement), 8)
		for _, day := range movement {
			assert.NotEmpty(t, day.Date)
			assert.GreaterOrEqual(t, day.Amount, int64(0))
		}
	})
}

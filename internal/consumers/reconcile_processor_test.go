package consumers

import (
	"os"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ledger-service/internal/models"
	"ledger-service/internal/services"
)

// Same gate as the services tests: a MySQL behind DATABASE_URL, skip
// otherwise.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			testDB = db
			testDB.AutoMigrate(&models.Client{}, &models.Transaction{}, &models.Entity{}, &models.Lot{})
		}
	}
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM transactions")
		testDB.Exec("DELETE FROM lots")
		testDB.Exec("DELETE FROM entities")
		testDB.Exec("DELETE FROM clients")
	}
}

// The full-sweep task handed to the worker must re-derive every commission
// row, repairing rows edited out-of-band.
func TestProcessAuditSweepRepairsDrift(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	commission := services.NewCommissionService(testDB)
	entitySvc := services.NewEntityService(testDB, commission)
	processor := NewReconcileProcessor(commission)

	entity, err := entitySvc.CreateEntity(services.EntityDTO{
		Name:        "Auction-20",
		BuyerName:   "Ahmed",
		AuctionDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	if _, err := entitySvc.AddLot(entity.ID, services.LotDTO{LotNumber: "1", TotalValue: 10000, Value30: 3000}); err != nil {
		t.Fatalf("AddLot failed: %v", err)
	}

	testDB.Model(&models.Transaction{}).Where("entity_id = ?", entity.ID).Update("amount", -999)

	if err := processor.ProcessAuditSweep(); err != nil {
		t.Fatalf("ProcessAuditSweep failed: %v", err)
	}

	var rows []models.Transaction
	testDB.Where("entity_id = ?", entity.ID).Find(&rows)
	if len(rows) != 1 || rows[0].Amount != -50 {
		t.Errorf("Sweep should restore -50, got %+v", rows)
	}
}

func TestProcessReconcileEntityUnknownID(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	processor := NewReconcileProcessor(services.NewCommissionService(testDB))
	if err := processor.ProcessReconcileEntity(99999); err == nil {
		t.Error("Expected an error for an unknown entity")
	}
}

package services

import (
	"testing"
	"time"

	"ledger-service/internal/models"
)

func TestAddLotDerivesValue70(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	entitySvc, _ := reconcileFixture(t)

	entity, _ := entitySvc.CreateEntity(EntityDTO{
		Name:        "Auction-11",
		AuctionDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	})

	lot, err := entitySvc.AddLot(entity.ID, LotDTO{
		LotNumber:  "3",
		TotalValue: 9000,
		Value30:    2700,
	})
	if err != nil {
		t.Fatalf("AddLot failed: %v", err)
	}
	if lot.Value70 != 6300 {
		t.Errorf("Expected value70 = 6300, got %v", lot.Value70)
	}

	// 30% part larger than the total is rejected at write time.
	if _, err := entitySvc.AddLot(entity.ID, LotDTO{
		LotNumber:  "4",
		TotalValue: 100,
		Value30:    200,
	}); err == nil {
		t.Error("Expected validation error for value30 > totalValue")
	}
}

func TestDeleteEntityStripsCommissionRow(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	entitySvc, _ := reconcileFixture(t)

	entity, _ := entitySvc.CreateEntity(EntityDTO{
		Name:        "Auction-12",
		BuyerName:   "Ahmed",
		AuctionDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	})
	entitySvc.AddLot(entity.ID, LotDTO{LotNumber: "1", TotalValue: 10000, Value30: 3000})

	if err := entitySvc.DeleteEntity(entity.ID); err != nil {
		t.Fatalf("DeleteEntity failed: %v", err)
	}

	var rows int64
	testDB.Model(&models.Transaction{}).Where("entity_id = ?", entity.ID).Count(&rows)
	if rows != 0 {
		t.Errorf("Deleted entity must not leave commission rows, found %d", rows)
	}

	var lots int64
	testDB.Model(&models.Lot{}).Where("entity_id = ?", entity.ID).Count(&lots)
	if lots != 0 {
		t.Errorf("Deleted entity must not leave lots, found %d", lots)
	}
}

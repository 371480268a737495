package services

import (
	"errors"
	"testing"

	"ledger-service/internal/ledger"
	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

func TestSettleAndArchive(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewClientService(testDB)

	client, err := svc.CreateClient(models.NamespaceAdvances, CreateClientDTO{Name: "settle-me"})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	trxSvc := NewTransactionService(testDB)
	trxSvc.AddTransaction(client.ID, TransactionDTO{Amount: 500})
	trxSvc.AddTransaction(client.ID, TransactionDTO{Amount: -200})

	settled, err := svc.SettleAndArchive(models.NamespaceAdvances, client.ID)
	if err != nil {
		t.Fatalf("SettleAndArchive failed: %v", err)
	}

	if balance := ledger.ClientBalance(settled.Transactions); balance != 0 {
		t.Errorf("Expected zero balance after settlement, got %v", balance)
	}
	if !settled.IsArchived {
		t.Error("Expected client to be archived")
	}
	if settled.ArchiveType == nil || *settled.ArchiveType != models.NamespaceAdvances {
		t.Errorf("Expected archive type %q, got %v", models.NamespaceAdvances, settled.ArchiveType)
	}

	// The balancing row carries the settlement note and the exact inverse.
	last := settled.Transactions[len(settled.Transactions)-1]
	if last.Amount != -300 {
		t.Errorf("Expected settlement amount -300, got %v", last.Amount)
	}
	if last.Notes != "تسوية نهائية" {
		t.Errorf("Unexpected settlement note: %q", last.Notes)
	}
	if !last.IsSettled {
		t.Error("Settlement row should be settled")
	}
}

func TestRestoreClientClearsArchiveType(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewClientService(testDB)

	client, err := svc.CreateClient(models.NamespaceWork, CreateClientDTO{Name: "restore-me"})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	if _, err := svc.SettleAndArchive(models.NamespaceWork, client.ID); err != nil {
		t.Fatalf("SettleAndArchive failed: %v", err)
	}

	restored, err := svc.RestoreClient(models.NamespaceWork, client.ID)
	if err != nil {
		t.Fatalf("RestoreClient failed: %v", err)
	}

	if restored.IsArchived {
		t.Error("Expected client active after restore")
	}
	if restored.ArchiveType != nil {
		t.Errorf("Expected archive type cleared to NULL, got %v", *restored.ArchiveType)
	}
}

func TestNamespacesAreDisjoint(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewClientService(testDB)

	client, err := svc.CreateClient(models.NamespaceAdvances, CreateClientDTO{Name: "advances-only"})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	if _, err := svc.GetClient(models.NamespaceWork, client.ID); err == nil {
		t.Error("Expected lookup in the other namespace to fail")
	}
}

// The history endpoint resolves the client through FindClient, so a missing
// id or a namespace mismatch surfaces as not-found rather than an empty page.
func TestFindClientNotFound(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewClientService(testDB)

	client, err := svc.CreateClient(models.NamespaceWork, CreateClientDTO{Name: "work-only"})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	if _, err := svc.FindClient(models.NamespaceWork, client.ID); err != nil {
		t.Fatalf("FindClient in own namespace failed: %v", err)
	}
	if _, err := svc.FindClient(models.NamespaceAdvances, client.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound across namespaces, got %v", err)
	}
	if _, err := svc.FindClient(models.NamespaceWork, 99999); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

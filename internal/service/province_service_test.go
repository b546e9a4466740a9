package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"travel-api/internal/domain"
)

func TestProvinceService_CreateAndGet(t *testing.T) {
	repo := newMockProvinceRepo()
	svc := NewProvinceService(zap.NewNop(), repo, NewMemoryProvinceCache(time.Minute))

	province, err := svc.Create(context.Background(), "New Province", false)
	if err != nil {
		t.Fatalf("create province: %v", err)
	}
	if province.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if province.TaxReduction() != 0.1 {
		t.Fatalf("expected primary reduction 0.1, got %v", province.TaxReduction())
	}

	got, err := svc.GetByID(context.Background(), province.ID)
	if err != nil {
		t.Fatalf("get province: %v", err)
	}
	if got.ProvinceName != "New Province" {
		t.Fatalf("unexpected name: %q", got.ProvinceName)
	}
}

func TestProvinceService_CreateRejectsEmptyName(t *testing.T) {
	svc := NewProvinceService(zap.NewNop(), newMockProvinceRepo(), nil)
	if _, err := svc.Create(context.Background(), "   ", true); !errors.Is(err, ErrInvalidProvince) {
		t.Fatalf("expected ErrInvalidProvince, got %v", err)
	}
}

func TestProvinceService_GetMissing(t *testing.T) {
	svc := NewProvinceService(zap.NewNop(), newMockProvinceRepo(), nil)
	if _, err := svc.GetByID(context.Background(), 99999); !errors.Is(err, ErrProvinceNotFound) {
		t.Fatalf("expected ErrProvinceNotFound, got %v", err)
	}
}

func TestProvinceService_GetUsesCache(t *testing.T) {
	repo := newMockProvinceRepo()
	svc := NewProvinceService(zap.NewNop(), repo, NewMemoryProvinceCache(time.Minute))

	province, err := svc.Create(context.Background(), "Cached Province", true)
	if err != nil {
		t.Fatalf("create province: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), province.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	callsAfterFirst := repo.getCalls

	if _, err := svc.GetByID(context.Background(), province.ID); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if repo.getCalls != callsAfterFirst {
		t.Fatalf("expected second read served from cache, repo calls went %d -> %d", callsAfterFirst, repo.getCalls)
	}
}

func TestProvinceService_UpdateInvalidatesCache(t *testing.T) {
	repo := newMockProvinceRepo()
	svc := NewProvinceService(zap.NewNop(), repo, NewMemoryProvinceCache(time.Minute))

	province, err := svc.Create(context.Background(), "Old Name", false)
	if err != nil {
		t.Fatalf("create province: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), province.ID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	province.ProvinceName = "Updated Province"
	province.IsSecondary = true
	if _, err := svc.Update(context.Background(), province); err != nil {
		t.Fatalf("update province: %v", err)
	}

	got, err := svc.GetByID(context.Background(), province.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.ProvinceName != "Updated Province" || !got.IsSecondary {
		t.Fatalf("stale cache after update: %+v", got)
	}
}

func TestProvinceService_UpdateMissing(t *testing.T) {
	svc := NewProvinceService(zap.NewNop(), newMockProvinceRepo(), nil)
	_, err := svc.Update(context.Background(), domain.Province{ID: 99999, ProvinceName: "Ghost"})
	if !errors.Is(err, ErrProvinceNotFound) {
		t.Fatalf("expected ErrProvinceNotFound, got %v", err)
	}
}

func TestProvinceService_DeleteThenGet(t *testing.T) {
	repo := newMockProvinceRepo()
	svc := NewProvinceService(zap.NewNop(), repo, NewMemoryProvinceCache(time.Minute))

	province, err := svc.Create(context.Background(), "Doomed Province", false)
	if err != nil {
		t.Fatalf("create province: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), province.ID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if err := svc.Delete(context.Background(), province.ID); err != nil {
		t.Fatalf("delete province: %v", err)
	}
	if err := svc.Delete(context.Background(), province.ID); !errors.Is(err, ErrProvinceNotFound) {
		t.Fatalf("expected ErrProvinceNotFound on second delete, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), province.ID); !errors.Is(err, ErrProvinceNotFound) {
		t.Fatalf("expected ErrProvinceNotFound after delete, got %v", err)
	}
}

package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"postavki/internal/domain"
)

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	ps := setupEnv(t).products
	p, err := ps.Create(ctx, domain.Product{Name: "Аспирин", Price: decimal.RequireFromString("100"), Expiration: 365})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected id assigned")
	}
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	ps := setupEnv(t).products
	if _, err := ps.Create(ctx, domain.Product{Name: "", Price: decimal.RequireFromString("1")}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "N", Price: decimal.RequireFromString("-1")}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "N", Expiration: -1}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestProduct_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	ps := setupEnv(t).products
	p, _ := ps.Create(ctx, domain.Product{Name: "A", Price: decimal.RequireFromString("10"), Expiration: 5})

	// get
	got, err := ps.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get failed: %v", err)
	}

	// update
	p.Name = "A+"
	p.Price = decimal.RequireFromString("12")
	p.Expiration = 7
	up, err := ps.Update(ctx, *p)
	if err != nil {
		t.Fatalf("update err: %v", err)
	}
	if up.Name != "A+" || !up.Price.Equal(decimal.RequireFromString("12")) || up.Expiration != 7 {
		t.Fatalf("not updated")
	}

	// delete
	if err := ps.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	if _, err := ps.GetByID(ctx, p.ID); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestProduct_List(t *testing.T) {
	ctx := context.Background()
	ps := setupEnv(t).products
	_, _ = ps.Create(ctx, domain.Product{Name: "A"})
	_, _ = ps.Create(ctx, domain.Product{Name: "B"})

	list, err := ps.List(ctx)
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if len(list) != 2 || list[0].Name != "A" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

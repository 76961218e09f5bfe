package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
)

type fakeProducts map[string]*market.Product

func (f fakeProducts) GetProduct(_ context.Context, id string) (*market.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, market.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func availableProduct(id string, qty int, price int64) *market.Product {
	return &market.Product{
		ID: id, OwnerID: "seller-1", Name: "Denim jacket",
		PriceCents: price, Quantity: qty, Status: market.ProductAvailable,
	}
}

func TestCheckInventoryPasses(t *testing.T) {
	products := fakeProducts{"p1": availableProduct("p1", 3, 1500)}
	live, err := CheckInventory(context.Background(), products, []market.CartLine{{ProductID: "p1", Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if live["p1"].PriceCents != 1500 {
		t.Fatalf("expected live product returned, got %+v", live["p1"])
	}
}

func TestCheckInventoryProductMissing(t *testing.T) {
	_, err := CheckInventory(context.Background(), fakeProducts{}, []market.CartLine{{ProductID: "nope", Quantity: 1}})
	if !errors.Is(err, market.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestCheckInventoryInsufficientStock(t *testing.T) {
	products := fakeProducts{"p1": availableProduct("p1", 1, 1500)}
	_, err := CheckInventory(context.Background(), products, []market.CartLine{{ProductID: "p1", Quantity: 2}})
	if !errors.Is(err, market.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
}

func TestCheckInventorySoldProductRejected(t *testing.T) {
	p := availableProduct("p1", 1, 1500)
	p.Status = market.ProductSold
	_, err := CheckInventory(context.Background(), fakeProducts{"p1": p}, []market.CartLine{{ProductID: "p1", Quantity: 1}})
	if !errors.Is(err, market.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
}

func TestCheckInventoryIdempotent(t *testing.T) {
	products := fakeProducts{"p1": availableProduct("p1", 2, 1500)}
	lines := []market.CartLine{{ProductID: "p1", Quantity: 2}}

	for i := 0; i < 2; i++ {
		if _, err := CheckInventory(context.Background(), products, lines); err != nil {
			t.Fatalf("pass %d: check is read-only and must repeat its verdict, got %v", i, err)
		}
	}
}

func TestCheckInventoryRejectsBeforeAnyLinePasses(t *testing.T) {
	products := fakeProducts{
		"ok":  availableProduct("ok", 5, 1000),
		"low": availableProduct("low", 0, 1000),
	}
	lines := []market.CartLine{
		{ProductID: "ok", Quantity: 1},
		{ProductID: "low", Quantity: 1},
	}
	if _, err := CheckInventory(context.Background(), products, lines); !errors.Is(err, market.ErrInsufficientStock) {
		t.Fatalf("one bad line fails the whole order, got %v", err)
	}
}

package settlement

import (
	"context"

	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
)

type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (*market.Product, error)
}

// CheckInventory fetches the live product for every cart line and
// rejects the whole order on the first unavailable line. It returns the
// live rows keyed by id so the builder prices from them, never from the
// client's hints. The check is advisory: the executor re-guards every
// decrement, so two racing checkouts cannot both over-sell.
func CheckInventory(ctx context.Context, products ProductGetter, lines []market.CartLine) (map[string]*market.Product, error) {
	live := make(map[string]*market.Product, len(lines))
	for _, line := range lines {
		p, ok := live[line.ProductID]
		if !ok {
			var err error
			p, err = products.GetProduct(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			live[line.ProductID] = p
		}
		if p.Status != market.ProductAvailable || p.Quantity < line.Quantity {
			return nil, market.ErrInsufficientStock
		}
	}
	return live, nil
}

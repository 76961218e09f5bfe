package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
)

// DB is the slice of pgxpool.Pool the executor needs.
type DB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Executor submits one Batch as a single transaction. Either every
// write in the batch lands or none does.
type Executor struct{ DB DB }

// Commit performs the batch. Stock decrements are guarded with
// `quantity >= requested` so a checkout that lost a race with another
// buyer aborts with ErrInsufficientStock instead of driving quantity
// negative. Any other datastore failure surfaces as ErrCommit.
func (e *Executor) Commit(ctx context.Context, b *Batch) error {
	tx, err := e.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return commitErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, d := range b.Stock {
		ct, err := tx.Exec(ctx, `
			UPDATE products
			SET quantity = quantity - $2,
			    status = CASE WHEN quantity = $2 THEN 'sold' ELSE status END,
			    updated_at = now()
			WHERE id = $1 AND status = 'available' AND quantity >= $2`,
			d.ProductID, d.Qty)
		if err != nil {
			return commitErr(err)
		}
		if ct.RowsAffected() != 1 {
			return market.ErrInsufficientStock
		}
	}

	for _, m := range b.WalletMoves {
		ct, err := tx.Exec(ctx, `
			UPDATE users
			SET wallet_available_cents = wallet_available_cents + $2,
			    wallet_pending_cents = wallet_pending_cents + $3,
			    updated_at = now()
			WHERE id = $1 AND wallet_available_cents + $2 >= 0`,
			m.UserID, m.AvailableDelta, m.PendingDelta)
		if err != nil {
			return commitErr(err)
		}
		if ct.RowsAffected() != 1 {
			// balance moved under us since validation
			return commitErr(fmt.Errorf("wallet adjustment rejected for user %s", m.UserID))
		}
	}

	for _, t := range b.Ledger {
		if _, err := tx.Exec(ctx, `
			INSERT INTO wallet_transactions(id, user_id, type, amount_cents, description, status, related_product_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.ID, t.UserID, t.Type, t.AmountCents, t.Description, t.Status, t.RelatedProductID); err != nil {
			return commitErr(err)
		}
	}

	for _, r := range b.Records {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_records(id, owner_id, kind, buyer_id, seller_id, product_id, product_name, price_cents, quantity, size, is_verified)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			r.ID, r.OwnerID, r.Kind, r.BuyerID, r.SellerID, r.ProductID, r.ProductName, r.PriceCents, r.Quantity, r.Size, r.IsVerified); err != nil {
			return commitErr(err)
		}
	}

	for _, n := range b.Notifications {
		if _, err := tx.Exec(ctx, `
			INSERT INTO notifications(id, user_id, message, link)
			VALUES ($1, $2, $3, $4)`,
			n.ID, n.UserID, n.Message, n.Link); err != nil {
			return commitErr(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return commitErr(err)
	}
	return nil
}

func commitErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", market.ErrCommit, err)
}

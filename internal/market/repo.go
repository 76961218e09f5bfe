package market

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// GetUser returns ErrUnauthorized for an unknown id so callers do not
// leak whether an account exists.
func (r *Repo) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, email, status, wallet_available_cents, wallet_pending_cents, created_at, updated_at
		FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Status, &u.WalletAvailableCents, &u.WalletPendingCents, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetProduct(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT p.id, p.owner_id, u.name, p.name, p.price_cents, p.quantity, p.status, p.created_at, p.updated_at
		FROM products p JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1`, id).
		Scan(&p.ID, &p.OwnerID, &p.OwnerName, &p.Name, &p.PriceCents, &p.Quantity, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListAvailable(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.owner_id, u.name, p.name, p.price_cents, p.quantity, p.status, p.created_at, p.updated_at
		FROM products p JOIN users u ON u.id = p.owner_id
		WHERE p.status = 'available' AND p.quantity > 0
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.OwnerName, &p.Name, &p.PriceCents, &p.Quantity, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// WalletView is what the wallet page shows: cached balances plus the
// most recent ledger entries.
type WalletView struct {
	AvailableCents int64               `json:"available_cents"`
	PendingCents   int64               `json:"pending_cents"`
	Transactions   []WalletTransaction `json:"transactions"`
}

func (r *Repo) WalletHistory(ctx context.Context, userID string, limit int) (*WalletView, error) {
	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, type, amount_cents, description, status, related_product_id, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	view := WalletView{
		AvailableCents: u.WalletAvailableCents,
		PendingCents:   u.WalletPendingCents,
	}
	for rows.Next() {
		var t WalletTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.AmountCents, &t.Description, &t.Status, &t.RelatedProductID, &t.CreatedAt); err != nil {
			return nil, err
		}
		view.Transactions = append(view.Transactions, t)
	}
	return &view, rows.Err()
}

package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
	"github.com/mahdisharifi109/Rewear-sub000/internal/ratelimit"
	"github.com/mahdisharifi109/Rewear-sub000/internal/settlement"
)

type Settler interface {
	Settle(ctx context.Context, req settlement.CheckoutRequest) (settlement.Result, error)
}

// Store is the read side the catalog and wallet pages use.
type Store interface {
	ListAvailable(ctx context.Context) ([]market.Product, error)
	WalletHistory(ctx context.Context, userID string, limit int) (*market.WalletView, error)
}

type CheckoutHandler struct {
	Settler Settler
	Store   Store
	Limiter *ratelimit.Limiter
}

// ProductHint mirrors what the cart page holds for a line. Only the id
// is trusted; price and stock are revalidated server-side.
type ProductHint struct {
	ID         string `json:"id"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	Name       string `json:"name"`
}

type CheckoutItem struct {
	Product  ProductHint `json:"product"`
	Quantity int         `json:"quantity"`
	Size     string      `json:"size,omitempty"`
}

type CheckoutData struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone,omitempty"`
}

type CheckoutReq struct {
	UserID           string         `json:"user_id"`
	Checkout         CheckoutData   `json:"checkout_data"`
	Items            []CheckoutItem `json:"cart_items"`
	UseWallet        bool           `json:"use_wallet"`
	VerifiedDelivery bool           `json:"verified_delivery"`
	TotalCents       int64          `json:"total_cents"`
}

type CheckoutResp struct {
	Success            bool   `json:"success"`
	OrderID            string `json:"order_id"`
	WalletAppliedCents int64  `json:"wallet_applied_cents"`
	ChargedCents       int64  `json:"charged_cents"`
}

func (h *CheckoutHandler) Register(r *chi.Mux) {
	r.Post("/checkout", h.checkout)
	r.Get("/products", h.listProducts)
	r.Get("/users/{id}/wallet", h.wallet)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (d CheckoutData) complete() bool {
	return d.FirstName != "" && d.LastName != "" && d.Email != "" &&
		d.Address != "" && d.City != "" && d.Region != "" && d.PostalCode != ""
}

// clientKey identifies the caller for rate limiting. RealIP middleware
// has already rewritten RemoteAddr from the forwarding headers.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	if !h.Limiter.Allow(r.Context(), clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, market.ErrRateLimited.Error())
		return
	}

	var req CheckoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.UserID == "" || len(req.Items) == 0 || !req.Checkout.complete() {
		writeError(w, http.StatusBadRequest, market.ErrValidation.Error())
		return
	}

	lines := make([]market.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, market.CartLine{
			ProductID:      it.Product.ID,
			Quantity:       it.Quantity,
			Size:           it.Size,
			UnitPriceCents: it.Product.PriceCents,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := h.Settler.Settle(ctx, settlement.CheckoutRequest{
		BuyerID:          req.UserID,
		Lines:            lines,
		UseWallet:        req.UseWallet,
		VerifiedDelivery: req.VerifiedDelivery,
		ClientTotalCents: req.TotalCents,
		TraceID:          middleware.GetReqID(r.Context()),
	})
	if err != nil {
		h.writeSettleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CheckoutResp{
		Success:            true,
		OrderID:            res.OrderID,
		WalletAppliedCents: res.WalletAppliedCents,
		ChargedCents:       res.ChargedCents,
	})
}

// writeSettleError maps the settlement taxonomy to status codes. Only
// the taxonomy message reaches the client; wrapped datastore detail
// stays in the logs.
func (h *CheckoutHandler) writeSettleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, market.ErrValidation):
		writeError(w, http.StatusBadRequest, market.ErrValidation.Error())
	case errors.Is(err, market.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, market.ErrUnauthorized.Error())
	case errors.Is(err, market.ErrAccountSuspended):
		writeError(w, http.StatusForbidden, market.ErrAccountSuspended.Error())
	case errors.Is(err, market.ErrProductNotFound):
		writeError(w, http.StatusNotFound, market.ErrProductNotFound.Error())
	case errors.Is(err, market.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, market.ErrInsufficientStock.Error())
	default:
		slog.Error("checkout failed",
			"request_id", middleware.GetReqID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, market.ErrCommit.Error())
	}
}

func (h *CheckoutHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Store.ListAvailable(ctx)
	if err != nil {
		slog.Error("list products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load products")
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *CheckoutHandler) wallet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	view, err := h.Store.WalletHistory(ctx, userID, 20)
	if err != nil {
		if errors.Is(err, market.ErrUnauthorized) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		slog.Error("wallet history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load wallet")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

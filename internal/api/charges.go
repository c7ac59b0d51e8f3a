package api

import (
	"net/http"
	"strings"

	"hmis/m/domain"
	"hmis/m/internal/charge"
)

// Catalog search
func (h *Handler) searchCatalog(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	items := []domain.CatalogItem{}
	var err error
	if query == "" {
		err = h.db.SelectContext(r.Context(), &items,
			`SELECT id, code, name, COALESCE(category, '') AS category, rate FROM catalog_items ORDER BY name LIMIT 25`)
	} else {
		like := "%" + strings.ToLower(query) + "%"
		err = h.db.SelectContext(r.Context(), &items, h.db.Rebind(
			`SELECT id, code, name, COALESCE(category, '') AS category, rate FROM catalog_items
			WHERE LOWER(name) LIKE ? OR LOWER(code) LIKE ? ORDER BY name LIMIT 25`), like, like)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type amountRequest struct {
	Quantity         int64   `json:"quantity"`
	Rate             float64 `json:"rate"`
	DiscountAbsolute float64 `json:"discount_absolute"`
	DiscountPercent  float64 `json:"discount_percent"`
}

func (h *Handler) computeAmount(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount := charge.ComputeAmount(req.Quantity, req.Rate, req.DiscountAbsolute, req.DiscountPercent)
	respondJSON(w, http.StatusOK, map[string]float64{"amount": amount})
}

type totalsRequest struct {
	Items         []amountRequest `json:"items"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue float64         `json:"discount_value"`
	PaidAmount    *float64        `json:"paid_amount"`
}

type totalsResponse struct {
	Items      []domain.LineItem  `json:"items"`
	Totals     domain.Totals      `json:"totals"`
	Settlement *domain.Settlement `json:"settlement,omitempty"`
}

// computeTotals prices a whole order without keeping any state. Line
// amounts are recomputed from their inputs.
func (h *Handler) computeTotals(w http.ResponseWriter, r *http.Request) {
	var req totalsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DiscountType == "" {
		req.DiscountType = charge.DiscountPercent
	}

	items := make([]domain.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.LineItem{
			Rate:             it.Rate,
			Quantity:         it.Quantity,
			DiscountAbsolute: it.DiscountAbsolute,
			DiscountPercent:  it.DiscountPercent,
			Amount:           charge.ComputeAmount(it.Quantity, it.Rate, it.DiscountAbsolute, it.DiscountPercent),
		}
	}
	resp := totalsResponse{Items: items, Totals: charge.ComputeTotals(items, req.DiscountType, req.DiscountValue)}
	if req.PaidAmount != nil {
		s := charge.Settle(resp.Totals.GrandTotal, *req.PaidAmount)
		resp.Settlement = &s
	}
	respondJSON(w, http.StatusOK, resp)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hmis/m/domain"
	"hmis/m/internal/charge"
)

// draft is an order form being filled in.
type draft struct {
	kind   domain.OrderKind
	header map[string]string
	calc   *charge.Calculator
	// submitted is set under the entry lock once the sink accepted the
	// order. Requests already waiting on the lock must not reuse it.
	submitted bool
}

type draftRequest struct {
	Kind   domain.OrderKind  `json:"kind"`
	Header map[string]string `json:"header"`
}

type draftResponse struct {
	ID            string            `json:"id"`
	Kind          domain.OrderKind  `json:"kind"`
	Header        map[string]string `json:"header"`
	Pending       domain.LineItem   `json:"pending"`
	Items         []domain.LineItem `json:"items"`
	DiscountType  string            `json:"discount_type"`
	DiscountValue float64           `json:"discount_value"`
	Totals        domain.Totals     `json:"totals"`
}

func renderDraft(id string, d *draft) draftResponse {
	dt, dv := d.calc.Discount()
	items := d.calc.Items()
	if items == nil {
		items = []domain.LineItem{}
	}
	return draftResponse{
		ID:            id,
		Kind:          d.kind,
		Header:        d.header,
		Pending:       d.calc.Pending(),
		Items:         items,
		DiscountType:  dt,
		DiscountValue: dv,
		Totals:        d.calc.Totals(),
	}
}

func (h *Handler) createDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Kind.Valid() {
		h.fail(w, r, &charge.ValidationError{Field: "kind", Message: "must be opd, appointment, requisition or return"})
		return
	}
	if req.Header == nil {
		req.Header = map[string]string{}
	}
	d := &draft{kind: req.Kind, header: req.Header, calc: charge.NewCalculator()}
	id := h.drafts.put(d)
	respondJSON(w, http.StatusCreated, renderDraft(id, d))
}

// withDraft runs fn with the draft locked. A draft submitted while the
// request waited for the lock is reported as not found.
func (h *Handler) withDraft(w http.ResponseWriter, r *http.Request, fn func(id string, d *draft)) {
	id := chi.URLParam(r, "id")
	e, ok := h.drafts.get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "draft not found")
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.value.submitted {
		respondError(w, http.StatusNotFound, "draft not found")
		return
	}
	fn(id, e.value)
}

func (h *Handler) getDraft(w http.ResponseWriter, r *http.Request) {
	h.withDraft(w, r, func(id string, d *draft) {
		respondJSON(w, http.StatusOK, renderDraft(id, d))
	})
}

type pendingRequest struct {
	Name             *string  `json:"name"`
	Rate             *float64 `json:"rate"`
	Quantity         *int64   `json:"quantity"`
	DiscountAbsolute *float64 `json:"discount_absolute"`
	DiscountPercent  *float64 `json:"discount_percent"`
}

func (h *Handler) updatePending(w http.ResponseWriter, r *http.Request) {
	var req pendingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.withDraft(w, r, func(id string, d *draft) {
		if req.Name != nil {
			d.calc.SetName(*req.Name)
		}
		if req.Rate != nil {
			d.calc.SetRate(*req.Rate)
		}
		if req.Quantity != nil {
			d.calc.SetQuantity(*req.Quantity)
		}
		if req.DiscountAbsolute != nil {
			d.calc.SetDiscountAbsolute(*req.DiscountAbsolute)
		}
		if req.DiscountPercent != nil {
			d.calc.SetDiscountPercent(*req.DiscountPercent)
		}
		respondJSON(w, http.StatusOK, renderDraft(id, d))
	})
}

func (h *Handler) commitItem(w http.ResponseWriter, r *http.Request) {
	h.withDraft(w, r, func(id string, d *draft) {
		if _, err := d.calc.Commit(); err != nil {
			h.fail(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, renderDraft(id, d))
	})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "index must be a number")
		return
	}
	h.withDraft(w, r, func(id string, d *draft) {
		if err := d.calc.Remove(index); err != nil {
			h.fail(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, renderDraft(id, d))
	})
}

type discountRequest struct {
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
}

func (h *Handler) setDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.withDraft(w, r, func(id string, d *draft) {
		if err := d.calc.SetOverallDiscount(req.DiscountType, req.DiscountValue); err != nil {
			h.fail(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, renderDraft(id, d))
	})
}

type submitRequest struct {
	PaidAmount *float64 `json:"paid_amount"`
}

// submitDraft builds the order, hands it to the sink and discards the
// draft. A failed submission keeps the draft for another attempt.
func (h *Handler) submitDraft(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.withDraft(w, r, func(id string, d *draft) {
		order, err := d.calc.Order(d.kind, d.header)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if req.PaidAmount != nil {
			if *req.PaidAmount < 0 {
				h.fail(w, r, &charge.ValidationError{Field: "paid_amount", Message: "must not be negative"})
				return
			}
			s := charge.Settle(order.Totals.GrandTotal, *req.PaidAmount)
			order.Settlement = &s
		}
		if uid, ok := userID(r); ok {
			order.CreatedBy = &uid
		}

		if err := h.sink.Submit(r.Context(), order); err != nil {
			h.fail(w, r, err)
			return
		}
		d.submitted = true
		h.drafts.delete(id)
		h.metrics.OrdersSubmitted.WithLabelValues(string(order.Kind)).Inc()
		h.metrics.OrderGrandTotal.Observe(order.Totals.GrandTotal)
		hlogger(r).Info().Str("order_id", order.ID).Str("kind", string(order.Kind)).Msg("draft submitted")
		respondJSON(w, http.StatusCreated, order)
	})
}

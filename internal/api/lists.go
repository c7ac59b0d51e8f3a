package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hmis/m/domain"
	"hmis/m/internal/datasource"
	"hmis/m/internal/listing"
)

type listInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Columns     []string `json:"columns"`
	Searchable  []string `json:"searchable"`
	DefaultSort string   `json:"default_sort"`
}

func (h *Handler) listLists(w http.ResponseWriter, r *http.Request) {
	specs := h.lists.Specs()
	out := make([]listInfo, len(specs))
	for i, s := range specs {
		out[i] = listInfo{
			Name:        s.Name,
			Title:       s.Title,
			Columns:     s.Columns,
			Searchable:  s.Searchable,
			DefaultSort: listing.FormatSort(s.DefaultSort),
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// parseQuery reads search, sort, page and page_size from the URL.
func parseQuery(r *http.Request) (listing.Query, string, bool) {
	params := r.URL.Query()
	q := listing.Query{
		Search: params.Get("search"),
		Sort:   listing.ParseSort(params.Get("sort")),
		Page:   1,
	}
	if v := strings.TrimSpace(params.Get("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, "page must be a number", false
		}
		q.Page = n
	}
	if v := strings.TrimSpace(params.Get("page_size")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, "page_size must be a number", false
		}
		q.PageSize = n
	}
	return q, "", true
}

func (h *Handler) queryList(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.Get(chi.URLParam(r, "list"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	q, msg, ok := parseQuery(r)
	if !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	page, err := list.Query(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.metrics.ListQueries.WithLabelValues(list.Name).Inc()
	respondJSON(w, http.StatusOK, page)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin, domain.RoleReceptionist) {
		return
	}
	if h.orders == nil {
		respondError(w, http.StatusNotFound, "orders are not stored by the configured sink")
		return
	}
	q, msg, ok := parseQuery(r)
	if !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	page, err := h.orders.Query(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.metrics.ListQueries.WithLabelValues(h.orders.Name).Inc()
	respondJSON(w, http.StatusOK, page)
}

// View sessions

type viewSession struct {
	list *datasource.List
	view *listing.View[listing.Row]
}

type viewRequest struct {
	Search   string `json:"search"`
	Sort     string `json:"sort"`
	PageSize int    `json:"page_size"`
}

type viewPatch struct {
	Search     *string `json:"search"`
	PageSize   *int    `json:"page_size"`
	ToggleSort *string `json:"toggle_sort"`
	Page       *int    `json:"page"`
	Refresh    bool    `json:"refresh"`
}

type viewResponse struct {
	ID    string                    `json:"id"`
	List  string                    `json:"list"`
	State listing.ViewState         `json:"state"`
	Page  listing.Page[listing.Row] `json:"page"`
}

func renderView(id string, s *viewSession) viewResponse {
	state, page := s.view.Snapshot()
	return viewResponse{ID: id, List: s.list.Name, State: state, Page: page}
}

func (h *Handler) createView(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.Get(chi.URLParam(r, "list"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req viewRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := list.Rows(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view := listing.NewView(list.Engine(), rows, req.PageSize)
	sort := listing.ParseSort(req.Sort)
	if len(sort) == 0 {
		sort = list.DefaultSort
	}
	view.SetSort(sort...)
	view.SetSearch(req.Search)

	s := &viewSession{list: list, view: view}
	id := h.views.put(s)
	h.metrics.ListQueries.WithLabelValues(list.Name).Inc()
	respondJSON(w, http.StatusCreated, renderView(id, s))
}

func (h *Handler) getView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.views.get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "view not found")
		return
	}
	respondJSON(w, http.StatusOK, renderView(id, e.value))
}

// patchView applies search and page size first, then the sort toggle,
// and the explicit page last so it survives the resets the others cause.
func (h *Handler) patchView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.views.get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "view not found")
		return
	}
	var req viewPatch
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s := e.value
	if req.Refresh {
		rows, err := s.list.Rows(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		s.view.SetRows(rows)
	}
	if req.Search != nil {
		s.view.SetSearch(*req.Search)
	}
	if req.PageSize != nil {
		s.view.SetPageSize(*req.PageSize)
	}
	if req.ToggleSort != nil && strings.TrimSpace(*req.ToggleSort) != "" {
		s.view.ToggleSort(strings.TrimSpace(*req.ToggleSort))
	}
	if req.Page != nil {
		s.view.SetPage(*req.Page)
	}
	h.metrics.ListQueries.WithLabelValues(s.list.Name).Inc()
	respondJSON(w, http.StatusOK, renderView(id, s))
}

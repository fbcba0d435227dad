package invoice

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/transport"
)

type ServiceAPI interface {
	Create(principal internal.Principal, dto CreateInvoiceDTO) (*Invoice, error)
	GetByID(id int64) (*Invoice, error)
	List(principal internal.Principal, status string, limit, offset int) ([]*Invoice, error)
	ListByProject(projectID int64) ([]*Invoice, error)
	Update(id int64, principal internal.Principal, dto UpdateInvoiceDTO) (*Invoice, error)
	Send(id int64, principal internal.Principal) (*Invoice, error)
	MarkPaid(id int64, principal internal.Principal) (*Invoice, error)
	Cancel(id int64, principal internal.Principal) (*Invoice, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateInvoiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateInvoice: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	i, err := h.Service.Create(principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, i)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid invoice ID")
		return
	}

	i, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, i)
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := pagination(r)
	status := r.URL.Query().Get("status")

	invoices, err := h.Service.List(principal, status, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) ListProjectInvoices(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	invoices, err := h.Service.ListByProject(projectID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"invoices": invoices})
}

func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid invoice ID")
		return
	}

	var dto UpdateInvoiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	i, err := h.Service.Update(id, principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, i)
}

func (h *Handler) SendInvoice(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "send")
}

func (h *Handler) MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "pay")
}

func (h *Handler) CancelInvoice(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancel")
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, action string) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid invoice ID")
		return
	}

	var i *Invoice
	switch action {
	case "send":
		i, err = h.Service.Send(id, principal)
	case "pay":
		i, err = h.Service.MarkPaid(id, principal)
	case "cancel":
		i, err = h.Service.Cancel(id, principal)
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("invoice transition", "invoice_id", id, "action", action, "user_id", principal.UserID)
	h.WriteJSON(w, http.StatusOK, i)
}

func pagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}

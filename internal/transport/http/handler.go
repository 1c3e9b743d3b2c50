package http

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	auditcontracts "github.com/light-bringer/finrecon-service/internal/app/audit/contracts"
	budgetdomain "github.com/light-bringer/finrecon-service/internal/app/budget/domain"
	"github.com/light-bringer/finrecon-service/internal/app/budget/queries/compare_budget"
	"github.com/light-bringer/finrecon-service/internal/app/budget/usecases/import_budget"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/queries/get_waterfall"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/usecases/mark_reviewed"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/usecases/update_override"
	"github.com/light-bringer/finrecon-service/internal/app/sales/queries/aggregate_sales"
)

// Handler exposes the engine over a JSON API.
type Handler struct {
	logger *zap.Logger

	waterfallQuery  *get_waterfall.Query
	updateOverride  *update_override.Interactor
	markReviewed    *mark_reviewed.Interactor
	salesQuery      *aggregate_sales.Query
	comparisonQuery *compare_budget.Query
	importBudget    *import_budget.Interactor
	eventsReadModel auditcontracts.EventsReadModel
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	logger *zap.Logger,
	waterfallQuery *get_waterfall.Query,
	updateOverride *update_override.Interactor,
	markReviewed *mark_reviewed.Interactor,
	salesQuery *aggregate_sales.Query,
	comparisonQuery *compare_budget.Query,
	importBudget *import_budget.Interactor,
	eventsReadModel auditcontracts.EventsReadModel,
) *Handler {
	return &Handler{
		logger:          logger,
		waterfallQuery:  waterfallQuery,
		updateOverride:  updateOverride,
		markReviewed:    markReviewed,
		salesQuery:      salesQuery,
		comparisonQuery: comparisonQuery,
		importBudget:    importBudget,
		eventsReadModel: eventsReadModel,
	}
}

// Router builds the route table.
func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products/{id}/pricing", h.handleGetPricing)
	mux.HandleFunc("PUT /api/v1/overrides", h.handleUpdateOverride)
	mux.HandleFunc("POST /api/v1/overrides/reviewed", h.handleMarkReviewed)
	mux.HandleFunc("GET /api/v1/sales/summary", h.handleSalesSummary)
	mux.HandleFunc("GET /api/v1/budget/comparison", h.handleBudgetComparison)
	mux.HandleFunc("POST /api/v1/budget/import", h.handleImportBudget)
	mux.HandleFunc("GET /api/v1/events", h.handleListEvents)
	mux.HandleFunc("GET /health", h.handleHealth)
	return mux
}

// handleGetPricing handles GET /api/v1/products/{id}/pricing?country=XX.
func (h *Handler) handleGetPricing(w http.ResponseWriter, r *http.Request) {
	req := &get_waterfall.Request{
		ProductID:   r.PathValue("id"),
		CountryCode: r.URL.Query().Get("country"),
	}

	resp, err := h.waterfallQuery.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// updateOverrideRequest is the edit payload. Exactly one of value (for
// a field edit) or grossSalesUsd must be present; both together apply
// the gross sales change before resolving the field edit.
type updateOverrideRequest struct {
	ProductID     string   `json:"productId"`
	CountryCode   string   `json:"countryCode"`
	Field         string   `json:"field,omitempty"`
	Side          string   `json:"side,omitempty"`
	Value         *float64 `json:"value,omitempty"`
	GrossSalesUSD *float64 `json:"grossSalesUsd,omitempty"`
}

// handleUpdateOverride handles PUT /api/v1/overrides.
func (h *Handler) handleUpdateOverride(w http.ResponseWriter, r *http.Request) {
	var body updateOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	req := &update_override.Request{
		ProductID:   body.ProductID,
		CountryCode: body.CountryCode,
		Field:       domain.CostField(body.Field),
		Side:        domain.EditSide(body.Side),
	}
	if body.GrossSalesUSD != nil {
		req.GrossSales = domain.NewMoneyFromFloat(*body.GrossSalesUSD)
	}
	if body.Value != nil {
		switch req.Side {
		case domain.EditAmount:
			req.Amount = domain.NewMoneyFromFloat(*body.Value)
		case domain.EditPct:
			req.Pct = new(big.Rat).SetFloat64(*body.Value)
		}
	}

	if err := h.updateOverride.Execute(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleMarkReviewed handles POST /api/v1/overrides/reviewed.
func (h *Handler) handleMarkReviewed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID   string `json:"productId"`
		CountryCode string `json:"countryCode"`
		Reviewed    bool   `json:"reviewed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	req := &mark_reviewed.Request{
		ProductID:   body.ProductID,
		CountryCode: body.CountryCode,
		Reviewed:    body.Reviewed,
	}
	if err := h.markReviewed.Execute(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleSalesSummary handles GET /api/v1/sales/summary.
func (h *Handler) handleSalesSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &aggregate_sales.Request{
		Company:    q.Get("company"),
		Product:    q.Get("product"),
		Year:       parseInt(q.Get("year")),
		Month:      parseInt(q.Get("month")),
		OnlyPriced: q.Get("onlyPriced") == "true",
	}

	resp, err := h.salesQuery.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleBudgetComparison handles GET /api/v1/budget/comparison.
func (h *Handler) handleBudgetComparison(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &compare_budget.Request{
		BudgetYear:  parseInt(q.Get("budgetYear")),
		ActualYearA: parseInt(q.Get("yearA")),
		ActualYearB: parseInt(q.Get("yearB")),
		Month:       parseInt(q.Get("month")),
		Product:     q.Get("product"),
		SortBy:      compare_budget.SortColumn(q.Get("sortBy")),
	}
	if countries := q["country"]; len(countries) > 0 {
		req.Countries = countries
	}

	resp, err := h.comparisonQuery.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// importBudgetRequest is the already-parsed budget payload.
type importBudgetRequest struct {
	Year int64 `json:"year"`
	Rows []struct {
		CountryCode string    `json:"countryCode"`
		ProductName string    `json:"productName"`
		Months      [12]int64 `json:"months"`
	} `json:"rows"`
}

// handleImportBudget handles POST /api/v1/budget/import.
func (h *Handler) handleImportBudget(w http.ResponseWriter, r *http.Request) {
	var body importBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	req := &import_budget.Request{Year: body.Year}
	for _, row := range body.Rows {
		req.Rows = append(req.Rows, import_budget.Row{
			CountryCode: row.CountryCode,
			ProductName: row.ProductName,
			Months:      row.Months,
		})
	}

	result, err := h.importBudget.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// handleListEvents handles GET /api/v1/events.
func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &auditcontracts.ListEventsFilter{
		EventType:   q.Get("eventType"),
		AggregateID: q.Get("aggregateId"),
		Limit:       parseInt(q.Get("limit")),
	}

	events, err := h.eventsReadModel.ListEvents(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors to HTTP status codes. Call-contract
// violations are 400s; missing products are 404s; storage failures
// surface as 503 so callers know a retry may help.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, budgetdomain.ErrInvalidMonth),
		errors.Is(err, budgetdomain.ErrInvalidYear),
		errors.Is(err, budgetdomain.ErrNoBudgetRows),
		errors.Is(err, domain.ErrUnknownCostField),
		errors.Is(err, domain.ErrInvalidEditSide),
		errors.Is(err, domain.ErrMissingEditValue),
		errors.Is(err, domain.ErrEmptyProductID),
		errors.Is(err, domain.ErrEmptyCountryCode):
		status = http.StatusBadRequest
	case isStorageUnavailable(err):
		status = http.StatusServiceUnavailable
	}

	if status >= 500 {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	} else {
		h.logger.Warn("request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}

	h.writeJSON(w, status, errorBody(err.Error()))
}

// isStorageUnavailable reports whether the error is a transient
// Spanner failure worth retrying.
func isStorageUnavailable(err error) bool {
	switch spanner.ErrCode(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	default:
		return false
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func parseInt(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/application/services/checkout"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
	"github.com/vsinha/liquorstore/pkg/domain/services"
	"github.com/vsinha/liquorstore/pkg/interfaces/cli/output"
)

// DefaultTopProducts is the number of top sellers returned when ?top= is absent
const DefaultTopProducts = 5

// CheckoutService is the checkout surface the API exposes
type CheckoutService interface {
	PickupSlots(ctx context.Context) (*dto.SlotsResult, error)
	Quote(ctx context.Context, items []dto.CartItem) (*dto.QuoteResult, error)
	PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*entities.Order, error)
	GetOrder(ctx context.Context, orderID string) (*entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*entities.Order, error)
}

// ReportService is the reporting surface the API exposes
type ReportService interface {
	Generate(ctx context.Context, reportType entities.ReportType, dateRange entities.DateRange) (*entities.ReportRecord, error)
	Analytics(ctx context.Context, dateRange entities.DateRange, topLimit int) (*dto.AnalyticsResult, error)
}

type Handler struct {
	checkout CheckoutService
	reports  ReportService
	location *time.Location
	logger   *zap.Logger
}

// NewHandler creates the API handler. Report date parameters are read in loc.
func NewHandler(checkoutSvc CheckoutService, reportSvc ReportService, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{checkout: checkoutSvc, reports: reportSvc, location: loc, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) GetPickupSlots(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkout.PickupSlots(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type quoteRequest struct {
	Items []dto.CartItem `json:"items"`
}

func (h *Handler) QuoteCart(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
		return
	}

	result, err := h.checkout.Quote(r.Context(), req.Items)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewOrderView(order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewOrderView(order))
}

type statusRequest struct {
	Status entities.OrderStatus `json:"status"`
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
		return
	}

	order, err := h.checkout.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewOrderView(order))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportType, err := entities.ParseReportType(chi.URLParam(r, "type"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	dateRange, err := h.parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if !isReportFormat(format) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unsupported format: %s", format)})
		return
	}

	record, err := h.reports.Generate(r.Context(), reportType, dateRange)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", output.ContentType(format))
	if format == "csv" {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_report.csv"`, reportType))
	}
	w.WriteHeader(http.StatusOK)
	if err := output.WriteReport(w, format, record); err != nil {
		h.logger.Warn("failed to write report", zap.Error(err))
	}
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	dateRange, err := h.parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	top := DefaultTopProducts
	if raw := r.URL.Query().Get("top"); raw != "" {
		top, err = strconv.Atoi(raw)
		if err != nil || top < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "top must be a non-negative integer"})
			return
		}
	}

	result, err := h.reports.Analytics(r.Context(), dateRange, top)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) parseDateRange(r *http.Request) (entities.DateRange, error) {
	query := r.URL.Query()
	return dto.ParseDateRange(query.Get("start"), query.Get("end"), h.location)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: validation.Message, Code: validationCode(validation)})
	case errors.Is(err, checkout.ErrUnknownProduct), errors.Is(err, checkout.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, entities.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func validationCode(err *services.ValidationError) string {
	switch {
	case errors.Is(err, services.ErrMissingCustomerInfo):
		return "missing_customer_info"
	case errors.Is(err, services.ErrInvalidPickupSlot):
		return "invalid_pickup_slot"
	case errors.Is(err, services.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, services.ErrItemCapExceeded):
		return "item_cap_exceeded"
	default:
		return "invalid"
	}
}

func isReportFormat(format string) bool {
	for _, f := range output.ReportFormats {
		if f == format {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

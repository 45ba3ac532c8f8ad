package report

import (
	"log/slog"
	"net/http"

	"github.com/powersupps/storefront/internal/httpx"
	"github.com/powersupps/storefront/internal/notify"
)

type Handler struct {
	aggregator *Aggregator
	renderer   Renderer
	mailer     notify.Mailer
	adminEmail string
	logger     *slog.Logger
}

func NewHandler(aggregator *Aggregator, renderer Renderer, mailer notify.Mailer, adminEmail string, logger *slog.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		renderer:   renderer,
		mailer:     mailer,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.aggregator.BuildSalesReport(r.Context())
	if err != nil {
		h.logger.Error("failed to build sales report", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, report)
}

// HandleChart renders the best-sellers chart as a PNG. With no sales yet it
// responds 204.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	report, err := h.aggregator.BuildSalesReport(r.Context())
	if err != nil {
		h.logger.Error("failed to build sales report", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	png, err := h.renderer.Render(report)
	if err != nil {
		h.logger.Error("failed to render chart", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if png == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// HandleEmailReport mails the summary to the admin, chart attached when
// there is data. A mail failure surfaces here; the admin asked for the
// report and needs to know it did not arrive.
func (h *Handler) HandleEmailReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.aggregator.BuildSalesReport(r.Context())
	if err != nil {
		h.logger.Error("failed to build sales report", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var attachment *notify.Attachment
	png, err := h.renderer.Render(report)
	if err != nil {
		h.logger.Error("failed to render chart", "error", err)
	} else if png != nil {
		attachment = &notify.Attachment{
			Name:        "best_sellers.png",
			ContentType: "image/png",
			Content:     png,
		}
	}

	msg := notify.SalesReport(h.adminEmail,
		report.TotalUsers, report.TotalProducts, report.TotalOrders,
		report.EstimatedRevenue, attachment)

	if err := h.mailer.Send(r.Context(), msg); err != nil {
		h.logger.Error("failed to email sales report", "error", err)
		httpx.WriteError(w, http.StatusBadGateway, "failed to send report")
		return
	}

	h.logger.Info("sales report emailed", "to", h.adminEmail)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

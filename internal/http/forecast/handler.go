package forecast

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/agencyops/internal/export"
	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	"github.com/MrJamesThe3rd/agencyops/internal/importer"
	"github.com/MrJamesThe3rd/agencyops/internal/matching"
)

const maxUploadBytes = 10 << 20

// SettingsStore persists the global forecast settings.
type SettingsStore interface {
	SaveSettings(ctx context.Context, settings forecast.Settings) error
}

type Handler struct {
	svc       *forecast.Service
	settings  SettingsStore
	exportSvc *export.Service
	importSvc *importer.Service
	matchSvc  *matching.Service
}

func NewHandler(
	svc *forecast.Service,
	settings SettingsStore,
	exportSvc *export.Service,
	importSvc *importer.Service,
	matchSvc *matching.Service,
) *Handler {
	return &Handler{
		svc:       svc,
		settings:  settings,
		exportSvc: exportSvc,
		importSvc: importSvc,
		matchSvc:  matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.forecast)
	r.Get("/summary", h.summary)
	r.Post("/preview", h.preview)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Put("/settings", h.saveSettings)
		r.Post("/export", h.export)
	})
}

// requestParams are the knobs shared by every forecast endpoint.
type requestParams struct {
	Months      int              `json:"months,omitempty"`
	Today       string           `json:"today,omitempty"`
	BlendedRate *decimal.Decimal `json:"blended_rate,omitempty"`
}

func paramsFromForm(r *http.Request) (requestParams, error) {
	var p requestParams

	if v := r.FormValue("months"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("invalid months %q", v)
		}

		p.Months = months
	}

	p.Today = r.FormValue("today")

	if v := r.FormValue("blended_rate"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return p, fmt.Errorf("invalid blended_rate %q", v)
		}

		p.BlendedRate = &rate
	}

	return p, nil
}

func (p requestParams) toRequest() (forecast.Request, error) {
	req := forecast.Request{
		WindowMonths: p.Months,
		BlendedRate:  p.BlendedRate,
	}

	if p.Today != "" {
		today, err := time.Parse(dateLayout, p.Today)
		if err != nil {
			return req, fmt.Errorf("invalid today %q, want YYYY-MM-DD", p.Today)
		}

		req.Today = &today
	}

	return req, nil
}

func requestFromForm(r *http.Request) (forecast.Request, error) {
	p, err := paramsFromForm(r)
	if err != nil {
		return forecast.Request{}, err
	}

	return p.toRequest()
}

func writeForecastError(w http.ResponseWriter, err error) {
	if errors.Is(err, forecast.ErrInvalidWindow) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Error("failed to compute forecast", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	explain, _ := strconv.ParseBool(r.URL.Query().Get("explain"))

	res, err := h.svc.Forecast(r.Context(), req)
	if err != nil {
		writeForecastError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForecastResponse(res, explain))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Forecast(r.Context(), req)
	if err != nil {
		writeForecastError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryOnlyResponse(res))
}

type settingsRequest struct {
	BlendedRate decimal.Decimal `json:"blended_rate"`
}

type settingsResponse struct {
	BlendedRate string `json:"blended_rate"`
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !req.BlendedRate.IsPositive() {
		http.Error(w, "blended_rate must be positive", http.StatusBadRequest)
		return
	}

	if err := h.settings.SaveSettings(r.Context(), forecast.Settings{BlendedRate: req.BlendedRate}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{BlendedRate: forecast.Display(req.BlendedRate)})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var params requestParams

	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	req, err := params.toRequest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tmpDir, err := os.MkdirTemp("", "agencyops-export-*")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	res, items, err := h.exportSvc.Export(r.Context(), req, tmpDir)
	if err != nil {
		writeForecastError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"forecast_%s.zip\"", res.Today.Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	for _, item := range items {
		if err := addToZip(zipWriter, item); err != nil {
			slog.Error("failed to create zip", "file", item.Name, "error", err)
			return
		}
	}
}

func addToZip(zw *zip.Writer, item export.Item) error {
	zf, err := zw.Create(item.Name)
	if err != nil {
		return err
	}

	f, err := os.Open(item.FilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(zf, f)

	return err
}

// preview computes a forecast from uploaded sheets without reading or writing the store.
// Each sheet is a multipart file field named after its kind ("invoices", "quotas", ...).
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	req, err := requestFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sheets := make(map[importer.Kind]io.Reader)

	for _, kind := range importer.Kinds {
		file, _, err := r.FormFile(string(kind))
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}

		if err != nil {
			http.Error(w, fmt.Sprintf("reading %s: %v", kind, err), http.StatusBadRequest)
			return
		}
		defer file.Close()

		sheets[kind] = file
	}

	if len(sheets) == 0 {
		http.Error(w, "at least one sheet is required: "+kindList(), http.StatusBadRequest)
		return
	}

	snap, err := h.importSvc.ImportAll(sheets)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err = h.matchSvc.Resolve(r.Context(), snap)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	res, err := h.svc.Preview(r.Context(), req, snap)
	if err != nil {
		writeForecastError(w, err)
		return
	}

	explain, _ := strconv.ParseBool(r.FormValue("explain"))

	writeJSON(w, http.StatusOK, toForecastResponse(res, explain))
}

func kindList() string {
	names := make([]string, 0, len(importer.Kinds))
	for _, k := range importer.Kinds {
		names = append(names, string(k))
	}

	return strings.Join(names, ", ")
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/grid"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/options"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/quote"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/treatment"
)

const (
	maxJSONBody = 1 << 20
	maxGridBody = 8 << 20
	xlsxMime    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Quoter — то, что handlers берут от quote.Service.
type Quoter interface {
	Quote(ctx context.Context, req quote.Request) (quote.Quote, error)
	SubmitOrder(ctx context.Context, d quote.OrderDraft) (quote.SubmitReport, error)
}

// GridStore — таблицы цен материалов.
type GridStore interface {
	GetMaterial(ctx context.Context, id int64) (*treatment.Material, error)
	SetGrid(ctx context.Context, materialID int64, g *grid.Grid) error
}

type Handlers struct {
	log    *slog.Logger
	quotes Quoter
	grids  GridStore
}

func NewHandlers(log *slog.Logger, quotes Quoter, grids GridStore) *Handlers {
	return &Handlers{log: log, quotes: quotes, grids: grids}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, errorBody{Error: err.Error(), Code: code})
}

// statusFor раскладывает доменные ошибки по HTTP-кодам.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, treatment.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, grid.ErrOutOfRange):
		return http.StatusUnprocessableEntity, "out_of_range"
	case errors.Is(err, treatment.ErrConfiguration), errors.Is(err, options.ErrNodeConfig),
		errors.Is(err, options.ErrNoInventoryPricer), errors.Is(err, grid.ErrEmpty):
		return http.StatusUnprocessableEntity, "configuration"
	case errors.Is(err, inventory.ErrItemNotFound), errors.Is(err, inventory.ErrBadMode):
		return http.StatusUnprocessableEntity, "inventory"
	case errors.Is(err, quote.ErrNoOrderNumber), errors.Is(err, quote.ErrNoItems):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, quote.ErrNoSubmitter):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	// размеры могут прийти числом; json.Number не теряет "150.0"
	dec.UseNumber()
	return dec.Decode(v)
}

func (h *Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	log := requestLog(h.log, r)

	var req quote.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.InventoryMode != "" && !req.InventoryMode.Valid() {
		writeError(w, http.StatusBadRequest, "bad_request", inventory.ErrBadMode)
		return
	}

	q, err := h.quotes.Quote(r.Context(), req)
	if err != nil {
		status, code := statusFor(err)
		if status >= 500 {
			log.Error("quote failed", "err", err)
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// SubmitOrder: 200 если ушли все группы, 207 при частичном успехе,
// 502 если не ушла ни одна. Отчёт по группам отдаётся всегда.
func (h *Handlers) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	log := requestLog(h.log, r)

	var d quote.OrderDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(d.OrderNumber) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", quote.ErrNoOrderNumber)
		return
	}
	if len(d.Items) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", quote.ErrNoItems)
		return
	}

	rep, err := h.quotes.SubmitOrder(r.Context(), d)
	if err != nil {
		status, code := statusFor(err)
		log.Error("submit failed", "order", d.OrderNumber, "err", err)
		writeError(w, status, code, err)
		return
	}

	status := http.StatusOK
	switch {
	case rep.Succeeded() == 0:
		status = http.StatusBadGateway
	case rep.Failed() > 0:
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, rep)
}

func materialID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("bad material id")
	}
	return id, nil
}

func wantsXLSX(r *http.Request, header string) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "xlsx") {
		return true
	}
	return strings.HasPrefix(r.Header.Get(header), xlsxMime)
}

// ExportGrid отдаёт таблицу цен материала в CSV (или XLSX с ?format=xlsx).
func (h *Handlers) ExportGrid(w http.ResponseWriter, r *http.Request) {
	id, err := materialID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	m, err := h.grids.GetMaterial(r.Context(), id)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	if m.Grid == nil {
		writeError(w, http.StatusNotFound, "not_found", grid.ErrEmpty)
		return
	}

	var buf bytes.Buffer
	ctype, ext := "text/csv; charset=utf-8", "csv"
	if wantsXLSX(r, "Accept") {
		ctype, ext = xlsxMime, "xlsx"
		err = grid.WriteXLSX(&buf, *m.Grid)
	} else {
		err = grid.WriteCSV(&buf, *m.Grid)
	}
	if err != nil {
		requestLog(h.log, r).Error("grid export failed", "material_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", "attachment; filename=\"grid_"+strconv.FormatInt(id, 10)+"."+ext+"\"")
	_, _ = w.Write(buf.Bytes())
}

// ImportGrid заменяет таблицу цен целиком. Битые строки пропускаются
// и перечисляются в отчёте.
func (h *Handlers) ImportGrid(w http.ResponseWriter, r *http.Request) {
	log := requestLog(h.log, r)

	id, err := materialID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	body := io.LimitReader(r.Body, maxGridBody)
	var (
		g   grid.Grid
		rep grid.ImportReport
	)
	if wantsXLSX(r, "Content-Type") {
		g, rep, err = grid.ReadXLSX(body)
	} else {
		g, rep, err = grid.ReadCSV(body)
	}
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, grid.ErrEmpty) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, struct {
			errorBody
			Report grid.ImportReport `json:"report"`
		}{errorBody{Error: err.Error(), Code: "bad_grid"}, rep})
		return
	}

	if err := h.grids.SetGrid(r.Context(), id, &g); err != nil {
		status, code := statusFor(err)
		if status >= 500 {
			log.Error("grid import failed", "material_id", id, "err", err)
		}
		writeError(w, status, code, err)
		return
	}

	log.Info("grid imported", "material_id", id, "tiers", len(g.Tiers), "skipped", len(rep.Skipped))
	writeJSON(w, http.StatusOK, struct {
		Type   grid.Type         `json:"type"`
		Report grid.ImportReport `json:"report"`
	}{g.Type, rep})
}

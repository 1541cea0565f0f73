package http_handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ekklesia/church-directory/internal/application/church"
	"github.com/ekklesia/church-directory/internal/domain"
	"github.com/ekklesia/church-directory/internal/infrastructure/csvsource"
	"github.com/ekklesia/church-directory/internal/logger"
	"github.com/ekklesia/church-directory/internal/transport/http/dto"
	"github.com/ekklesia/church-directory/internal/transport/http/middleware"
	"github.com/ekklesia/church-directory/internal/transport/http/response"
)

// maxImportSize caps CSV uploads at 10 MiB.
const maxImportSize = 10 << 20

type ChurchHandler struct {
	svc *church.Service
}

func NewChurchHandler(svc *church.Service) *ChurchHandler {
	return &ChurchHandler{svc: svc}
}

// List handles GET /api/churches with paging and filter query params.
func (h *ChurchHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := church.ListFilter{
		Page:         queryInt(q.Get("page"), 1),
		PageSize:     queryInt(q.Get("page_size"), 0),
		Status:       q.Get("status"),
		City:         q.Get("city"),
		State:        q.Get("state"),
		Denomination: q.Get("denomination"),
	}

	churches, err := h.svc.List(r.Context(), f)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	response.OK(w, dto.ChurchPage{
		Churches: dto.NewChurchViews(churches),
		Page:     page,
		PageSize: size,
	})
}

// Get handles GET /api/churches/{id}.
func (h *ChurchHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewChurchView(c))
}

// Search handles GET /api/churches/search?q=&latitude=&longitude=&radius_km=.
func (h *ChurchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := queryFloat(q.Get("latitude"))
	if err != nil {
		response.WriteError(w, r, domain.ErrInvalidField("latitude", "not a number"))
		return
	}
	lon, err := queryFloat(q.Get("longitude"))
	if err != nil {
		response.WriteError(w, r, domain.ErrInvalidField("longitude", "not a number"))
		return
	}
	radius, err := queryFloat(q.Get("radius_km"))
	if err != nil {
		response.WriteError(w, r, domain.ErrInvalidField("radius_km", "not a number"))
		return
	}

	churches, err := h.svc.Search(r.Context(), q.Get("q"), lat, lon, radius)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewChurchViews(churches))
}

// Create handles POST /api/churches (admin).
func (h *ChurchHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())

	var req dto.CreateChurchRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), req.ToInput(), email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewChurchView(c))
}

// Update handles PUT /api/churches/{id} (admin).
func (h *ChurchHandler) Update(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())

	var req dto.UpdateChurchRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req.ToPatch(), email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewChurchView(c))
}

// Delete handles DELETE /api/churches/{id} (admin, soft delete).
func (h *ChurchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

// UpdateStatus handles PATCH /api/churches/{id}/status (admin).
func (h *ChurchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())

	var req dto.UpdateStatusRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	status, ok := domain.ParseChurchStatus(req.Status)
	if !ok {
		response.WriteError(w, r, domain.ErrInvalidStatus(req.Status))
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status, req.Reason, email); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, map[string]string{"status": "ok"})
}

// Import handles POST /api/churches/import (data_curator+, multipart CSV
// under the "file" field).
func (h *ChurchHandler) Import(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromContext(r.Context())

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		response.WriteError(w, r, domain.ErrInvalidUpload("multipart form expected"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.WriteError(w, r, domain.ErrInvalidUpload("missing file field"))
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		response.WriteError(w, r, domain.ErrInvalidUpload("only .csv files are accepted"))
		return
	}

	processed, err := h.svc.ImportCSV(r.Context(), csvsource.New(file), email)
	if err != nil {
		middleware.ImportRecordsTotal.WithLabelValues("failed").Inc()
		response.WriteError(w, r, err)
		return
	}

	middleware.ImportRecordsTotal.WithLabelValues("processed").Add(float64(processed))
	logger.WithCtx(r.Context()).Info().
		Int("processed", processed).
		Str("file", header.Filename).
		Str("imported_by", email).
		Msg("csv_import_completed")

	response.OK(w, dto.ImportResult{Processed: processed})
}

func queryInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func queryFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

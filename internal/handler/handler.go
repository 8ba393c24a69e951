package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"rhiza/internal/domain"
	"rhiza/internal/service"
)

// maxBodyBytes bounds request bodies; graph payloads are the largest
const maxBodyBytes = 4 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// DragRequest is the body of a drag gesture
type DragRequest struct {
	Phase string  `json:"phase" validate:"required,oneof=start move end"`
	Node  string  `json:"node" validate:"required"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// HoverRequest is the body of a hover gesture
type HoverRequest struct {
	Phase string  `json:"phase" validate:"required,oneof=enter exit"`
	Node  string  `json:"node" validate:"required"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// ZoomRequest is the body of a zoom gesture
type ZoomRequest struct {
	Factor float64 `json:"factor" validate:"gt=0"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// PanRequest is the body of a pan gesture
type PanRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// ModeRequest selects an educational lens
type ModeRequest struct {
	Mode string `json:"mode"`
}

// VisualizationHandler serves the visualization API
type VisualizationHandler struct {
	svc      *service.VisualizationService
	validate *validator.Validate
	log      *zap.Logger
}

// NewVisualizationHandler creates a new visualization handler
func NewVisualizationHandler(svc *service.VisualizationService, logger *zap.Logger) *VisualizationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisualizationHandler{svc: svc, validate: validator.New(), log: logger}
}

// Health reports liveness
func (h *VisualizationHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "healthy"}, http.StatusOK)
}

// ListContainers returns the registered containers
func (h *VisualizationHandler) ListContainers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Containers(), http.StatusOK)
}

// Search looks a word up on the etymology backend
func (h *VisualizationHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Search(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, res, http.StatusOK)
}

// RenderGraph renders a posted payload into a container
func (h *VisualizationHandler) RenderGraph(w http.ResponseWriter, r *http.Request) {
	var p domain.Payload
	if !h.decode(w, r, &p) {
		return
	}
	container := chi.URLParam(r, "container")
	if err := h.svc.RenderGraph(r.Context(), &p, container); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeFrame(w, r, container, http.StatusCreated)
}

// ShowWord fetches a word's graph and renders it into a container
func (h *VisualizationHandler) ShowWord(w http.ResponseWriter, r *http.Request) {
	includeRelated, _ := strconv.ParseBool(r.URL.Query().Get("include_related"))
	container := chi.URLParam(r, "container")
	if err := h.svc.ShowWord(r.Context(), chi.URLParam(r, "word"), includeRelated, container); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeFrame(w, r, container, http.StatusCreated)
}

// GetFrame returns the current frame of a container
func (h *VisualizationHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	h.writeFrame(w, r, chi.URLParam(r, "container"), http.StatusOK)
}

// GetSVG returns the current frame drawn as SVG
func (h *VisualizationHandler) GetSVG(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "svg")
}

// Render draws the current frame with the back end named in the path
func (h *VisualizationHandler) Render(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, chi.URLParam(r, "backend"))
}

func (h *VisualizationHandler) render(w http.ResponseWriter, r *http.Request, backend string) {
	out, contentType, err := h.svc.Render(chi.URLParam(r, "container"), backend)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		h.log.Debug("write render output", zap.Error(err))
	}
}

// GetPositions returns the node positions of a container
func (h *VisualizationHandler) GetPositions(w http.ResponseWriter, r *http.Request) {
	pos, err := h.svc.Positions(chi.URLParam(r, "container"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, pos, http.StatusOK)
}

// ApplyMode switches the educational lens of a container
func (h *VisualizationHandler) ApplyMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if !h.decode(w, r, &req) {
		return
	}
	container := chi.URLParam(r, "container")
	if err := h.svc.ApplyEducationalMode(req.Mode, container); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeFrame(w, r, container, http.StatusOK)
}

// Drag applies a drag gesture
func (h *VisualizationHandler) Drag(w http.ResponseWriter, r *http.Request) {
	var req DragRequest
	if !h.decode(w, r, &req) {
		return
	}
	container := chi.URLParam(r, "container")
	if err := h.svc.Drag(container, req.Phase, req.Node, req.X, req.Y); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeFrame(w, r, container, http.StatusOK)
}

// Hover applies a hover gesture
func (h *VisualizationHandler) Hover(w http.ResponseWriter, r *http.Request) {
	var req HoverRequest
	if !h.decode(w, r, &req) {
		return
	}
	container := chi.URLParam(r, "container")
	if err := h.svc.Hover(container, req.Phase, req.Node, req.X, req.Y); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeFrame(w, r, container, http.StatusOK)
}

// Zoom applies a zoom gesture
func (h *VisualizationHandler) Zoom(w http.ResponseWriter, r *http.Request) {
	var req ZoomRequest
	if !h.decode(w, r, &req) {
		return
	}
	container := chi.URLParam(r, "container")
	if err := h.svc.Zoom(container, req.Factor, req.X, req.Y); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeFrame(w, r, container, http.StatusOK)
}

// Pan applies a pan gesture
func (h *VisualizationHandler) Pan(w http.ResponseWriter, r *http.Request) {
	var req PanRequest
	if !h.decode(w, r, &req) {
		return
	}
	container := chi.URLParam(r, "container")
	if err := h.svc.Pan(container, req.DX, req.DY); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeFrame(w, r, container, http.StatusOK)
}

// Close disposes the visualization of a container
func (h *VisualizationHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Close(chi.URLParam(r, "container")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VisualizationHandler) writeFrame(w http.ResponseWriter, r *http.Request, container string, status int) {
	f, err := h.svc.Frame(container)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, f, status)
}

// decode reads a JSON body into v and validates it; on failure the error reply is already written
func (h *VisualizationHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	if _, isPayload := v.(*domain.Payload); isPayload {
		// payloads are validated by the adapter
		return true
	}
	if err := h.validate.Struct(v); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *VisualizationHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, title := classify(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(title,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	h.writeError(w, title, err.Error(), status)
}

func (h *VisualizationHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Warn("failed to encode JSON", zap.Error(err))
	}
}

func (h *VisualizationHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.log.Warn("failed to encode error response", zap.Error(fmt.Errorf("%s: %w", error, err)))
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"pokerclock/internal/model"
	"pokerclock/internal/service"
	"pokerclock/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// StructureHandler handles blind structure endpoints
type StructureHandler struct {
	structureSvc *service.StructureService
}

// NewStructureHandler creates a new structure handler
func NewStructureHandler(structureSvc *service.StructureService) *StructureHandler {
	return &StructureHandler{structureSvc: structureSvc}
}

// StructureRequest is the request body for creating or updating a structure
type StructureRequest struct {
	Title  string             `json:"title"`
	Levels []model.BlindLevel `json:"levels"`
}

// Create handles POST /v1/structures
//
//	@Summary	Create a blind structure
//	@Tags		structures
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		StructureRequest	true	"Structure"
//	@Success	201		{object}	map[string]string
//	@Failure	400		{object}	map[string]string
//	@Router		/structures [post]
func (h *StructureHandler) Create(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req StructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st := &model.BlindStructure{Title: req.Title, Levels: req.Levels}
	id, err := h.structureSvc.Create(r.Context(), hostID, st)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"structureId": id})
}

// List handles GET /v1/structures
//
//	@Summary	List the host's blind structures
//	@Tags		structures
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	model.BlindStructure
//	@Router		/structures [get]
func (h *StructureHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	structures, err := h.structureSvc.ListByHost(r.Context(), hostID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, structures)
}

// Get handles GET /v1/structures/{id}
//
//	@Summary	Get a blind structure
//	@Tags		structures
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Structure ID"
//	@Success	200	{object}	model.BlindStructure
//	@Failure	404	{object}	map[string]string
//	@Router		/structures/{id} [get]
func (h *StructureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	st, err := h.structureSvc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

// Update handles PUT /v1/structures/{id}
//
//	@Summary	Replace a blind structure
//	@Tags		structures
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Structure ID"
//	@Param		body	body		StructureRequest	true	"Structure"
//	@Success	200		{object}	model.BlindStructure
//	@Failure	403		{object}	map[string]string
//	@Router		/structures/{id} [put]
func (h *StructureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req StructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st := &model.BlindStructure{ID: id, Title: req.Title, Levels: req.Levels}
	if err := h.structureSvc.Update(r.Context(), hostID, st); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

// Delete handles DELETE /v1/structures/{id}
//
//	@Summary	Delete a blind structure
//	@Tags		structures
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Structure ID"
//	@Success	204
//	@Router		/structures/{id} [delete]
func (h *StructureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.structureSvc.Delete(r.Context(), hostID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

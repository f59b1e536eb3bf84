package handler

import (
	"encoding/json"
	"net/http"
	"pokerclock/internal/model"
	"pokerclock/internal/service"
	"pokerclock/internal/transport/rest/middleware"
	"strconv"

	"github.com/gorilla/mux"
)

const defaultEventLimit = 50

// TableHandler handles live table endpoints
type TableHandler struct {
	tableSvc *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableSvc *service.TableService) *TableHandler {
	return &TableHandler{tableSvc: tableSvc}
}

// OpenTableRequest is the request body for opening a table
type OpenTableRequest struct {
	StructureID string `json:"structureId"`
	Title       string `json:"title,omitempty"`
}

// Open handles POST /v1/tables
//
//	@Summary	Open a table with a paused clock
//	@Tags		tables
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		OpenTableRequest	true	"Table"
//	@Success	201		{object}	service.TableState
//	@Failure	404		{object}	map[string]string
//	@Router		/tables [post]
func (h *TableHandler) Open(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req OpenTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StructureID == "" {
		writeError(w, http.StatusBadRequest, "structureId is required")
		return
	}

	state, err := h.tableSvc.OpenTable(r.Context(), hostID, req.StructureID, req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, state)
}

// List handles GET /v1/tables
//
//	@Summary	List live and recently closed tables
//	@Tags		tables
//	@Produce	json
//	@Success	200	{array}	model.Table
//	@Router		/tables [get]
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tableSvc.Tables(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tables)
}

// Get handles GET /v1/tables/{code}
//
//	@Summary	Get a table and its clock
//	@Tags		tables
//	@Produce	json
//	@Param		code	path		string	true	"Table code"
//	@Success	200		{object}	service.TableState
//	@Failure	404		{object}	map[string]string
//	@Router		/tables/{code} [get]
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	state, err := h.tableSvc.Get(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Events handles GET /v1/tables/{code}/events
//
//	@Summary	Table history, newest first
//	@Tags		tables
//	@Produce	json
//	@Param		code	path	string	true	"Table code"
//	@Param		limit	query	int		false	"Maximum number of events"
//	@Success	200		{array}	model.TableEvent
//	@Router		/tables/{code}/events [get]
func (h *TableHandler) Events(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	limit := defaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	events, err := h.tableSvc.Events(r.Context(), code, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// Command handles POST /v1/tables/{code}/commands
//
//	@Summary	Control a table's clock
//	@Tags		tables
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		code	path		string			true	"Table code"
//	@Param		body	body		model.Command	true	"Command"
//	@Success	200		{object}	game.Snapshot
//	@Failure	400		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/tables/{code}/commands [post]
func (h *TableHandler) Command(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var cmd model.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.tableSvc.Execute(r.Context(), code, hostID, cmd)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Close handles DELETE /v1/tables/{code}
//
//	@Summary	Close a table
//	@Tags		tables
//	@Security	BearerAuth
//	@Param		code	path	string	true	"Table code"
//	@Param		purge	query	bool	false	"Also drop the cached table and clock"
//	@Success	204
//	@Router		/tables/{code} [delete]
func (h *TableHandler) Close(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	end := h.tableSvc.Close
	if r.URL.Query().Get("purge") == "true" {
		end = h.tableSvc.Purge
	}
	if err := end(r.Context(), code, hostID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"errors"
	"log"
	"net/http"
	"pokerclock/internal/game"
	"pokerclock/internal/repository"
	"pokerclock/internal/service"
)

// writeServiceError maps service and game errors to HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrStructureNotFound), errors.Is(err, service.ErrTableNotFound),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner), errors.Is(err, service.ErrNotTableHost):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidStructure), errors.Is(err, service.ErrUnknownAction),
		errors.Is(err, game.ErrUnknownBlind):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrNoNextBlind):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/UserManager/internal/core/ports"
	"github.com/GoArmGo/UserManager/internal/domain"
	"github.com/GoArmGo/UserManager/internal/messaging/payloads"
	"github.com/GoArmGo/UserManager/internal/usecase"
	"github.com/google/uuid"
)

// UserAPIHandler — JSON API над UserUseCase.
type UserAPIHandler struct {
	userUseCase     usecase.UserUseCase
	importPublisher ports.UserImportPublisher
	logger          *slog.Logger
}

// NewUserAPIHandler создаёт новый экземпляр UserAPIHandler.
// publisher может быть nil, тогда импорт отвечает 503
func NewUserAPIHandler(
	uc usecase.UserUseCase,
	publisher ports.UserImportPublisher,
	logger *slog.Logger,
) *UserAPIHandler {
	return &UserAPIHandler{
		userUseCase:     uc,
		importPublisher: publisher,
		logger:          logger,
	}
}

// ListUsers — GET /api/users
func (h *UserAPIHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.GetAllUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list users", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

// GetUser — GET /api/users/{id}
func (h *UserAPIHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		respondEmpty(w, http.StatusNotFound)
		return
	}

	user, err := h.userUseCase.GetUserByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get user", "user_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to get user", h.logger)
		return
	}
	if user == nil {
		respondEmpty(w, http.StatusNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// CreateUser — POST /api/users. Успех отвечает 200, а не 201
func (h *UserAPIHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in domain.User
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid user payload", "error", err)
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	created, err := h.userUseCase.CreateUser(r.Context(), &in)
	switch usecase.Classify(err) {
	case usecase.OutcomeOK:
		respondWithJSON(w, http.StatusOK, created, h.logger)
	case usecase.OutcomeConflict:
		respondEmpty(w, http.StatusBadRequest)
	default:
		h.logger.Error("failed to create user", "email", in.Email, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to create user", h.logger)
	}
}

// UpdateUser — PUT /api/users/{id}
func (h *UserAPIHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		respondEmpty(w, http.StatusNotFound)
		return
	}

	var details domain.User
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		h.logger.Warn("invalid user payload", "user_id", id, "error", err)
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	updated, err := h.userUseCase.UpdateUser(r.Context(), id, details)
	switch usecase.Classify(err) {
	case usecase.OutcomeOK:
		respondWithJSON(w, http.StatusOK, updated, h.logger)
	case usecase.OutcomeNotFound:
		respondEmpty(w, http.StatusNotFound)
	default:
		h.logger.Error("failed to update user", "user_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to update user", h.logger)
	}
}

// DeleteUser — DELETE /api/users/{id}. Удаление отсутствующего id тоже 200
func (h *UserAPIHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		respondEmpty(w, http.StatusNotFound)
		return
	}

	if err := h.userUseCase.DeleteUser(r.Context(), id); err != nil {
		h.logger.Error("failed to delete user", "user_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to delete user", h.logger)
		return
	}
	respondEmpty(w, http.StatusOK)
}

// ImportUsers — POST /api/users/import, ставит пачку пользователей в очередь.
func (h *UserAPIHandler) ImportUsers(w http.ResponseWriter, r *http.Request) {
	if h.importPublisher == nil {
		respondWithError(w, http.StatusServiceUnavailable, "import queue is not configured", h.logger)
		return
	}

	var users []domain.User
	if err := json.NewDecoder(r.Body).Decode(&users); err != nil || len(users) == 0 {
		respondWithError(w, http.StatusBadRequest, "expected a non-empty JSON array of users", h.logger)
		return
	}

	payload := payloads.UserImportPayload{JobID: uuid.New(), Users: users}
	if err := h.importPublisher.PublishUserImport(r.Context(), payload); err != nil {
		h.logger.Error("failed to publish import job", "job_id", payload.JobID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to enqueue import", h.logger)
		return
	}

	h.logger.Info("import job enqueued", "job_id", payload.JobID, "count", len(users))
	respondWithJSON(w, http.StatusAccepted, map[string]string{"job_id": payload.JobID.String()}, h.logger)
}

// ExportUsers — POST /api/users/export, выгружает снимок в объектное хранилище.
func (h *UserAPIHandler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	location, err := h.userUseCase.ExportUsers(r.Context())
	if errors.Is(err, usecase.ErrExportDisabled) {
		respondWithError(w, http.StatusServiceUnavailable, "export storage is not configured", h.logger)
		return
	}
	if err != nil {
		h.logger.Error("failed to export users", "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to export users", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"location": location}, h.logger)
}

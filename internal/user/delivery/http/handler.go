package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mundiclass/backend/internal/user/domain"
	"github.com/mundiclass/backend/internal/user/usecase/command"
	"github.com/mundiclass/backend/internal/user/usecase/query"
	"github.com/mundiclass/backend/kafka"
	"github.com/mundiclass/backend/pkg/logger"
	"github.com/mundiclass/backend/pkg/middleware"
)

// UserHandler handles HTTP requests for users using CQRS pattern
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	updateHandler   *command.UpdateUserHandler
	deleteHandler   *command.DeleteUserHandler

	getHandler  *query.GetUserHandler
	listHandler *query.ListUsersHandler

	repo           domain.UserRepository
	kafkaPublisher *kafka.Publisher
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	updateHandler *command.UpdateUserHandler,
	deleteHandler *command.DeleteUserHandler,
	getHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	repo domain.UserRepository,
) *UserHandler {
	return &UserHandler{
		registerHandler: registerHandler,
		loginHandler:    loginHandler,
		updateHandler:   updateHandler,
		deleteHandler:   deleteHandler,
		getHandler:      getHandler,
		listHandler:     listHandler,
		repo:            repo,
	}
}

// SetKafkaPublisher attaches an optional event publisher
func (h *UserHandler) SetKafkaPublisher(p *kafka.Publisher) {
	h.kafkaPublisher = p
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/users/register", h.Register).Methods("POST")
	router.HandleFunc("/api/users/login", h.Login).Methods("POST")

	router.HandleFunc("/api/users", middleware.AdminMiddleware(h.ListUsers)).Methods("GET")
	router.HandleFunc("/api/users/{id}", middleware.AuthMiddleware(h.GetUser)).Methods("GET")
	router.HandleFunc("/api/users/{id}", middleware.AuthMiddleware(h.UpdateUser)).Methods("PUT")
	router.HandleFunc("/api/users/{id}", middleware.AdminMiddleware(h.DeleteUser)).Methods("DELETE")
}

type registerRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Cedula   string      `json:"cedula"`
	Password string      `json:"password"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Cedula:   req.Cedula,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to register user")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.listHandler.Handle(query.ListUsersQuery{
		Role:   r.URL.Query().Get("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list users")
		respondError(w, err)
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"users": users,
			"total": count,
		},
	})
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	user, err := h.getHandler.Handle(query.GetUserQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

type updateUserRequest struct {
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	FullName *string      `json:"full_name"`
	Role     *domain.Role `json:"role"`
	IsActive *bool        `json:"is_active"`
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	// only admins may touch other accounts or change roles
	callerID, _ := r.Context().Value(middleware.UserIDKey).(uint)
	callerRole, _ := r.Context().Value(middleware.RoleKey).(string)
	if callerRole != string(domain.RoleAdmin) && callerID != id {
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Cannot modify another user"})
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Role != nil && callerRole != string(domain.RoleAdmin) {
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Only admins can change roles"})
		return
	}

	user, err := h.updateHandler.Handle(command.UpdateUserCommand{
		ID:       id,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update user")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteUserCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete user")
		respondError(w, err)
		return
	}

	if h.kafkaPublisher != nil {
		event := kafka.RecordDeletedEvent{
			EntityTable: domain.User{}.TableName(),
			RecordID:    id,
		}
		if err := h.kafkaPublisher.PublishRecordDeleted(r.Context(), event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish record deleted event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User deleted successfully",
	})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps the error to a status code; unexpected failures get a
// generic message so internals never reach the client
func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	respondJSON(w, status, Response{Success: false, Error: msg})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

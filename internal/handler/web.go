package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/UserManager/internal/domain"
	"github.com/GoArmGo/UserManager/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData — модель страницы: список или один пользователь плюс flash
type pageData struct {
	Title   string
	Users   []domain.User
	User    domain.User
	Success string
	Error   string
}

// UserWebHandler — серверные страницы управления пользователями.
// Каждая изменяющая операция сообщает результат через flash и редирект.
type UserWebHandler struct {
	userUseCase usecase.UserUseCase
	templates   *template.Template
	logger      *slog.Logger
}

// NewUserWebHandler создаёт обработчик и разбирает встроенные шаблоны.
func NewUserWebHandler(uc usecase.UserUseCase, logger *slog.Logger) (*UserWebHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблонов: %w", err)
	}
	return &UserWebHandler{userUseCase: uc, templates: tmpl, logger: logger}, nil
}

// render рисует страницу, подмешивая flash-сообщение, если оно есть
func (h *UserWebHandler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if f, ok := popFlash(w, r); ok {
		if f.Kind == flashSuccess {
			data.Success = f.Message
		} else {
			data.Error = f.Message
		}
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write HTTP response", "error", err)
	}
}

func (h *UserWebHandler) redirect(w http.ResponseWriter, r *http.Request, to, kind, message string) {
	setFlash(w, kind, message)
	http.Redirect(w, r, to, http.StatusFound)
}

func userFromForm(r *http.Request) domain.User {
	return domain.User{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Address: r.PostFormValue("address"),
	}
}

// ShowUserList — GET /
func (h *UserWebHandler) ShowUserList(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.GetAllUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		h.render(w, r, "user-list", pageData{Title: "Users", Error: "Error loading users: " + err.Error()})
		return
	}
	h.render(w, r, "user-list", pageData{Title: "Users", Users: users})
}

// ShowAddUserForm — GET /add-user
func (h *UserWebHandler) ShowAddUserForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "add-user", pageData{Title: "Add user"})
}

// AddUser — POST /add-user
func (h *UserWebHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	user := userFromForm(r)

	_, err := h.userUseCase.CreateUser(r.Context(), &user)
	switch usecase.Classify(err) {
	case usecase.OutcomeOK:
		h.redirect(w, r, "/", flashSuccess, "User added successfully!")
	case usecase.OutcomeConflict:
		h.redirect(w, r, "/add-user", flashError, "Email already exists!")
	default:
		h.logger.Error("failed to add user", "email", user.Email, "error", err)
		h.redirect(w, r, "/add-user", flashError, "Error adding user: "+err.Error())
	}
}

// ShowEditUserForm — GET /edit-user/{id}
func (h *UserWebHandler) ShowEditUserForm(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		h.redirect(w, r, "/", flashError, "User not found!")
		return
	}

	user, err := h.userUseCase.GetUserByID(r.Context(), id)
	if err != nil || user == nil {
		if err != nil {
			h.logger.Error("failed to load user for edit", "user_id", id, "error", err)
		}
		h.redirect(w, r, "/", flashError, "User not found!")
		return
	}

	h.render(w, r, "edit-user", pageData{Title: "Edit user", User: *user})
}

// EditUser — POST /edit-user/{id}. В отличие от добавления, при ошибке
// возвращает на список, а не на форму
func (h *UserWebHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		h.redirect(w, r, "/", flashError, "Error updating user: invalid user id")
		return
	}

	if _, err := h.userUseCase.UpdateUser(r.Context(), id, userFromForm(r)); err != nil {
		h.logger.Warn("failed to update user", "user_id", id, "outcome", usecase.Classify(err).String(), "error", err)
		h.redirect(w, r, "/", flashError, "Error updating user: "+err.Error())
		return
	}
	h.redirect(w, r, "/", flashSuccess, "User updated successfully!")
}

// DeleteUser — GET /delete-user/{id}, всегда возвращает на список
func (h *UserWebHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		h.redirect(w, r, "/", flashError, "Error deleting user: invalid user id")
		return
	}

	if err := h.userUseCase.DeleteUser(r.Context(), id); err != nil {
		h.logger.Error("failed to delete user", "user_id", id, "error", err)
		h.redirect(w, r, "/", flashError, "Error deleting user: "+err.Error())
		return
	}
	h.redirect(w, r, "/", flashSuccess, "User deleted successfully!")
}

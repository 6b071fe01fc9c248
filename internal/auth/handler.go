package auth

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"snow-tracker/internal/logger"
	"snow-tracker/internal/utils"
	"snow-tracker/internal/view"
)

// LoginRequest is the body accepted by POST /login, either form encoded or JSON.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password"`
}

// Handler serves the login and register pages. There is no user store: a
// login is accepted for any non-empty username.
type Handler struct {
	View     *view.Engine
	Logger   *logger.Logger
	validate *validator.Validate
}

func NewHandler(engine *view.Engine, logger *logger.Logger) *Handler {
	return &Handler{
		View:     engine,
		Logger:   logger,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the auth routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterPage)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", "Login")
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", "Register")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string) {
	err := h.View.Render(w, http.StatusOK, name, view.TemplateData{Title: title, CurrentPath: r.URL.Path})
	if err != nil {
		h.Logger.Error("VIEW", "Failed to render "+name+": "+err.Error())
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// Login echoes the submitted username without checking credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(r)
	if err != nil {
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse("invalid login payload"))
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse("username is required"))
			return
		}
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse("username is too long"))
		return
	}

	h.Logger.Info("AUTH", "Login accepted for "+req.Username)
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, map[string]string{"message": "Logged in as " + req.Username})
}

func decodeLogin(r *http.Request) (LoginRequest, error) {
	var req LoginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Username = r.PostForm.Get("username")
	req.Password = r.PostForm.Get("password")
	return req, nil
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"curiozando/internal/ratelimit"
	"curiozando/internal/util"
	"curiozando/pkg/domain"
	"curiozando/pkg/generate"
	"curiozando/services/blog/internal/app"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	Limiter        *ratelimit.FixedWindowLimiter
	TrustedProxies *util.TrustedProxies
	AllowedOrigin  string
}

// Server exposes HTTP endpoints for the blog service.
type Server struct {
	app     *app.App
	limiter *ratelimit.FixedWindowLimiter
	trusted *util.TrustedProxies
	origin  string
	mux     *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("app required")
	}
	s := &Server{
		app:     cfg.App,
		limiter: cfg.Limiter,
		trusted: cfg.TrustedProxies,
		origin:  cfg.AllowedOrigin,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("blog", util.WithSecurityHeaders(util.WithCORS(s.origin, s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// public reads
	s.mux.HandleFunc("/posts", s.handlePosts)
	s.mux.HandleFunc("/posts/", s.handlePostByID)
	s.mux.HandleFunc("/categories", s.handleCategories)

	// admin
	s.mux.HandleFunc("/admin/login", s.handleLogin)
	s.mux.Handle("/admin/logout", s.withAdmin(s.handleLogout))
	s.mux.Handle("/admin/generate", s.withAdmin(s.handleGenerate))
	s.mux.Handle("/admin/posts", s.withAdmin(s.handlePublish))
	s.mux.Handle("/admin/posts/", s.withAdmin(s.handleAdminPostByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type adminHandler func(http.ResponseWriter, *http.Request, string)

func (s *Server) withAdmin(next adminHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if _, ok := s.app.Authenticate(token); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, token)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	token, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, token string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := s.app.Logout(token); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, _ string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if s.limiter != nil {
		key := util.ClientIP(r, s.trusted)
		if !s.limiter.Allow(key) {
			writeError(w, http.StatusTooManyRequests, "too many generation requests")
			return
		}
	}
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	draft, err := s.app.GenerateArticle(r.Context(), req.Theme)
	if err != nil {
		logger := util.LoggerFromContext(r.Context())
		switch {
		case errors.Is(err, generate.ErrEmptyTheme):
			writeError(w, http.StatusBadRequest, "theme required")
		case errors.Is(err, generate.ErrUnexpectedFormat):
			logger.Warn("generation returned malformed article", "err", err)
			writeError(w, http.StatusBadGateway, "ai response was not in the expected format")
		default:
			logger.Error("generation failed", "err", err)
			writeError(w, http.StatusBadGateway, "generation failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	var (
		posts []domain.Post
		err   error
	)
	if category != "" {
		posts, err = s.app.ListPostsByCategory(category)
	} else {
		posts, err = s.app.ListPosts()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": posts,
		"count": len(posts),
	})
}

func (s *Server) handlePostByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/posts/")
	if id == "" || strings.Contains(id, "/") {
		notFound(w, "not found")
		return
	}
	post, err := s.app.GetPost(id)
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			notFound(w, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	categories, err := s.app.ListCategories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": categories,
		"count": len(categories),
	})
}

type publishRequest struct {
	Title    string          `json:"title"`
	Deck     string          `json:"deck"`
	Content  string          `json:"content"`
	ImageURL string          `json:"imageUrl"`
	Category string          `json:"category"`
	Sources  []domain.Source `json:"sources"`
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request, _ string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	draft := domain.Draft{
		Title:    req.Title,
		Deck:     req.Deck,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Sources:  req.Sources,
	}
	post, posts, err := s.app.PublishPost(draft, req.Category)
	if err != nil {
		if errors.Is(err, app.ErrEmptyDraft) {
			writeError(w, http.StatusBadRequest, "title and content are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"post":  post,
		"posts": posts,
	})
}

func (s *Server) handleAdminPostByID(w http.ResponseWriter, r *http.Request, _ string) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/posts/")
	if id == "" || strings.Contains(id, "/") {
		notFound(w, "not found")
		return
	}
	switch r.Method {
	case http.MethodPatch:
		s.handleUpdatePost(w, r, id)
	case http.MethodDelete:
		s.handleDeletePost(w, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Title   *string `json:"title"`
		Deck    *string `json:"deck"`
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	post, err := s.app.UpdatePost(id, domain.PostUpdate{
		Title:   req.Title,
		Deck:    req.Deck,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			notFound(w, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, id string) {
	if err := s.app.DeletePost(id); err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			notFound(w, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      errorCodeForBlog(status, msg),
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

func errorCodeForBlog(status int, msg string) string {
	message := strings.ToLower(strings.TrimSpace(msg))
	switch {
	case message == "unauthorized":
		return "AUTH_INVALID_TOKEN"
	case message == "invalid credentials":
		return "AUTH_INVALID_CREDENTIALS"
	case message == "post not found":
		return "POST_NOT_FOUND"
	case message == "title and content are required":
		return "POST_EMPTY_DRAFT"
	case message == "theme required":
		return "GENERATE_THEME_REQUIRED"
	case message == "ai response was not in the expected format":
		return "GENERATE_BAD_AI_RESPONSE"
	case message == "generation failed":
		return "GENERATE_UPSTREAM_ERROR"
	case message == "too many generation requests":
		return "GENERATE_RATE_LIMITED"
	case message == "invalid json body":
		return "POST_INVALID_REQUEST"
	case message == "method not allowed":
		return "SYSTEM_METHOD_NOT_ALLOWED"
	case message == "not found":
		return "SYSTEM_NOT_FOUND"
	}

	switch status {
	case http.StatusBadRequest:
		return "POST_INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "AUTH_INVALID_TOKEN"
	case http.StatusNotFound:
		return "POST_NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "SYSTEM_METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return "GENERATE_RATE_LIMITED"
	default:
		if status >= http.StatusInternalServerError {
			return "SYSTEM_INTERNAL_ERROR"
		}
		return "REQUEST_ERROR"
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

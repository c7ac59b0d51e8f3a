package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"

	"hmis/m/domain"
	"hmis/m/internal/datasource"
	"hmis/m/internal/metrics"
	"hmis/m/internal/submission"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxRole   ctxKey = "role"
)

// Options carries the collaborators of a Handler besides the database.
type Options struct {
	Lists   *datasource.Registry
	Sink    submission.Sink
	Metrics *metrics.Registry
	Logger  zerolog.Logger
	// Orders serves the submitted-orders list. Nil when the sink does
	// not keep orders.
	Orders      datasource.Source
	SessionTTL  time.Duration
	CORSOrigins []string
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db      *sqlx.DB
	secret  string
	lists   *datasource.Registry
	orders  *datasource.List
	sink    submission.Sink
	metrics *metrics.Registry
	logger  zerolog.Logger
	origins []string

	views  *store[*viewSession]
	drafts *store[*draft]
}

// New constructs a Handler.
func New(db *sqlx.DB, secret string, opts Options) *Handler {
	if opts.Lists == nil {
		opts.Lists = datasource.NewRegistry()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewRegistry()
	}
	if opts.Sink == nil {
		opts.Sink = submission.NewLogSink(opts.Logger)
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	h := &Handler{
		db:      db,
		secret:  secret,
		lists:   opts.Lists,
		sink:    opts.Sink,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		origins: opts.CORSOrigins,
		views:   newStore[*viewSession](opts.SessionTTL),
		drafts:  newStore[*draft](opts.SessionTTL),
	}
	if opts.Orders != nil {
		orders := datasource.NewRegistry()
		orders.Register(datasource.OrdersSpec, opts.Orders)
		h.orders, _ = orders.Get(datasource.OrdersSpec.Name)
	}
	return h
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID)
	r.Use(hlog.NewHandler(h.logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/lists", func(r chi.Router) {
			r.Get("/", h.listLists)
			r.Get("/{list}", h.queryList)
			r.Post("/{list}/views", h.createView)
		})

		pr.Route("/views/{id}", func(r chi.Router) {
			r.Get("/", h.getView)
			r.Patch("/", h.patchView)
		})

		pr.Get("/catalog", h.searchCatalog)

		pr.Route("/charges", func(r chi.Router) {
			r.Post("/amount", h.computeAmount)
			r.Post("/totals", h.computeTotals)
		})

		pr.Route("/drafts", func(r chi.Router) {
			r.Post("/", h.createDraft)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getDraft)
				r.Put("/pending", h.updatePending)
				r.Post("/items", h.commitItem)
				r.Delete("/items/{index}", h.removeItem)
				r.Put("/discount", h.setDiscount)
				r.Post("/submit", h.submitDraft)
			})
		})

		pr.Get("/orders", h.listOrders)
	})

	return r
}

// StartJanitor evicts idle view and draft sessions until ctx is done.
func (h *Handler) StartJanitor(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				v, d := h.views.evict(), h.drafts.evict()
				if v+d > 0 {
					h.logger.Debug().Int("views", v).Int("drafts", d).Msg("evicted idle sessions")
				}
			}
		}
	}()
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Authentication helpers

type authClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID int64, role string) (string, error) {
	claims := authClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	role := r.Context().Value(ctxRole)
	if role == nil {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	current := role.(string)
	for _, allowedRole := range allowed {
		if current == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

func userID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(ctxUserID).(int64)
	return id, ok
}

// Auth Handlers

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "username, email, password and role are required")
		return
	}
	if !domain.ValidRole(req.Role) {
		respondError(w, http.StatusBadRequest, "role must be admin, receptionist, doctor or storekeeper")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	email := strings.ToLower(req.Email)
	var id int64
	err = h.db.QueryRowxContext(r.Context(),
		h.db.Rebind(`INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?) RETURNING id`),
		req.Username, email, string(hashed), req.Role).Scan(&id)
	if err != nil {
		respondError(w, http.StatusConflict, "email already exists")
		return
	}

	token, err := h.generateToken(id, req.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: domain.User{ID: id, Username: req.Username, Email: email, Role: req.Role}})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user domain.User
	err := h.db.GetContext(r.Context(), &user,
		h.db.Rebind(`SELECT id, username, email, password, role FROM users WHERE email = ?`), strings.ToLower(req.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.generateToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(r *http.Request, dest interface{}) error {
	if err := decodeJSON(r, dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func hlogger(r *http.Request) *zerolog.Logger {
	return hlog.FromRequest(r)
}

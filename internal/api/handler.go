package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"oilshop/pos/domain"
	"oilshop/pos/internal/inventory"
	"oilshop/pos/internal/metrics"
	"oilshop/pos/internal/printer"
	"oilshop/pos/internal/receipt"
	"oilshop/pos/internal/report"
	"oilshop/pos/internal/sale"
	"oilshop/pos/internal/store"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxRole   ctxKey = "role"
)

// Options carries everything the handler needs besides the store.
type Options struct {
	Secret      string
	TokenTTL    time.Duration
	ReceiptPath string
	Renderer    receipt.Renderer
	Printer     printer.Sink
	Metrics     *metrics.Metrics
	Now         func() time.Time
}

// Handler bundles dependencies for HTTP handlers. It owns the cart of the
// terminal it serves; mu serialises requests that touch it.
type Handler struct {
	store    *store.Store
	checkout *sale.Checkout
	reports  *report.Service
	editor   *inventory.Editor
	opts     Options

	mu      sync.Mutex
	session *sale.Session
}

// New constructs a Handler.
func New(st *store.Store, opts Options) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Printer == nil {
		opts.Printer = printer.NopSink{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.ReceiptPath == "" {
		opts.ReceiptPath = receipt.DefaultPath()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	return &Handler{
		store:    st,
		checkout: sale.NewCheckout(st, opts.Renderer).WithClock(opts.Now),
		reports:  report.NewService(st, opts.Renderer.Currency),
		editor:   inventory.NewEditor(st),
		opts:     opts,
		session:  sale.NewSession(),
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", h.opts.Metrics.Handler())
	r.Post("/auth/login", h.login)

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Post("/users", h.createUser)
		pr.Get("/products/barcode/{barcode}", h.productByBarcode)

		pr.Route("/cart", func(r chi.Router) {
			r.Get("/", h.viewCart)
			r.Post("/items", h.addToCart)
			r.Delete("/", h.clearCart)
		})

		pr.Post("/sales", h.finishSale)
		pr.Get("/reports/sales/monthly", h.monthlyReport)

		pr.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.listInventory)
			r.Put("/{id}", h.editInventory)
		})
	})

	return r
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

func (h *Handler) generateToken(user domain.User) (string, error) {
	now := time.Now()
	claims := authClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(h.opts.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.opts.Secret))
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
			return []byte(h.opts.Secret), nil
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

func operatorID(ctx context.Context) int64 {
	id, _ := ctx.Value(ctxUserID).(int64)
	return id
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	current, _ := r.Context().Value(ctxRole).(string)
	if current == "" {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	for _, allowedRole := range allowed {
		if current == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

// Auth handlers

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.store.FindUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			log.Printf("login lookup failed: %v", err)
		}
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	user.Password = ""
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleOwner) {
		return
	}
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if req.Role == "" {
		req.Role = domain.RoleCashier
	}
	if req.Role != domain.RoleOwner && req.Role != domain.RoleCashier {
		respondError(w, http.StatusBadRequest, "role must be owner or cashier")
		return
	}
	if _, err := h.store.FindUserByUsername(r.Context(), req.Username); err == nil {
		respondError(w, http.StatusConflict, "username already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}
	id, err := h.store.CreateUser(r.Context(), req.Username, string(hashed), req.Role)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, domain.User{ID: id, Username: req.Username, Role: req.Role})
}

// Product lookup

func (h *Handler) productByBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := strings.TrimSpace(chi.URLParam(r, "barcode"))
	product, err := h.store.FindProductByBarcode(r.Context(), barcode)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.opts.Metrics.BarcodeMisses.Inc()
		}
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Cart handlers

type cartResponse struct {
	Lines []domain.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
}

func (h *Handler) cartSnapshot() cartResponse {
	return cartResponse{Lines: h.session.Lines(), Total: h.session.Total()}
}

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	respondJSON(w, http.StatusOK, h.cartSnapshot())
}

type addToCartRequest struct {
	Barcode string `json:"barcode"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	barcode := strings.TrimSpace(req.Barcode)
	if barcode == "" {
		respondError(w, http.StatusBadRequest, "barcode is required")
		return
	}

	product, err := h.store.FindProductByBarcode(r.Context(), barcode)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.opts.Metrics.BarcodeMisses.Inc()
		}
		respondFailure(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.session.AddLine(product, 1)
	respondJSON(w, http.StatusCreated, h.cartSnapshot())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session.Reset()
	respondJSON(w, http.StatusOK, h.cartSnapshot())
}

// Sales handlers

type saleResponse struct {
	sale.Result
	ReceiptPath string `json:"receipt_path"`
	PrintError  string `json:"print_error,omitempty"`
}

type saleFailureResponse struct {
	Error  string `json:"error"`
	SaleID int64  `json:"sale_id"`
}

func (h *Handler) finishSale(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	operator := operatorID(r.Context())
	result, err := h.checkout.Commit(r.Context(), h.session)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			respondFailure(w, err)
			return
		}
		h.opts.Metrics.CheckoutFailures.Inc()
		log.Printf("checkout by user %d failed: %v", operator, err)
		if result.SaleID == 0 {
			respondFailure(w, err)
			return
		}
		// The sale header is stored even though its items are not.
		status, message := failureStatus(err)
		respondJSON(w, status, saleFailureResponse{Error: message, SaleID: result.SaleID})
		return
	}
	h.opts.Metrics.SalesCommitted.Inc()
	h.opts.Metrics.ItemsSold.Add(float64(len(result.Lines)))
	log.Printf("sale %d recorded by user %d", result.SaleID, operator)

	resp := saleResponse{Result: result, ReceiptPath: h.opts.ReceiptPath}
	if err := h.printReceipt(r.Context(), result.Receipt); err != nil {
		h.opts.Metrics.PrintFailures.Inc()
		log.Printf("sale %d recorded, receipt not printed: %v", result.SaleID, err)
		resp.PrintError = err.Error()
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *Handler) printReceipt(ctx context.Context, text string) error {
	if err := receipt.WriteFile(h.opts.ReceiptPath, text); err != nil {
		return &domain.PrintError{Path: h.opts.ReceiptPath, Err: err}
	}
	return h.opts.Printer.Print(ctx, h.opts.ReceiptPath)
}

// Reports

type monthlyReportResponse struct {
	*report.Report
	Text string `json:"text"`
}

func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	var (
		rep *report.Report
		err error
	)
	if month := strings.TrimSpace(r.URL.Query().Get("month")); month != "" {
		rep, err = h.reports.MonthlyFor(r.Context(), month)
	} else {
		rep, err = h.reports.Monthly(r.Context(), h.opts.Now())
	}
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, monthlyReportResponse{Report: rep, Text: rep.Text()})
}

// Inventory handlers

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	products, err := h.editor.List(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// inventoryRequest keeps every field as text, exactly as typed into the table.
type inventoryRequest struct {
	Name     string `json:"name"`
	Barcode  string `json:"barcode"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

func (h *Handler) editInventory(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleOwner) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req inventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.editor.ApplyEdit(r.Context(), id, req.Name, req.Barcode, req.Price, req.Quantity); err != nil {
		h.opts.Metrics.InventoryEdits.WithLabelValues("rejected").Inc()
		respondFailure(w, err)
		return
	}
	h.opts.Metrics.InventoryEdits.WithLabelValues("ok").Inc()

	products, err := h.editor.List(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
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

func respondFailure(w http.ResponseWriter, err error) {
	status, message := failureStatus(err)
	respondError(w, status, message)
}

// failureStatus maps the shop's error kinds onto HTTP statuses.
func failureStatus(err error) (int, string) {
	var (
		validationErr *domain.ValidationError
		storageErr    *domain.StorageError
	)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, "no items to record"
	case errors.Is(err, report.ErrNoData):
		return http.StatusNotFound, report.ErrNoData.Error()
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError, fmt.Sprintf("db error: %v", storageErr.Err)
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

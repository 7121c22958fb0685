package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler struct to encapsulate HTTP handling logic
type Handler struct {
	accounts *AccountManager
	ledger   *LedgerManager
	tokens   *TokenService
	devMode  bool
}

func NewHandler(accounts *AccountManager, ledger *LedgerManager, tokens *TokenService, devMode bool) *Handler {
	return &Handler{accounts: accounts, ledger: ledger, tokens: tokens, devMode: devMode}
}

func RegisterRoutes(mux *chi.Mux, handler *Handler) {
	mux.Use(middleware.Logger) // Add logging middleware

	mux.Post("/user-info", handler.Register)
	mux.Post("/login", handler.Login)

	mux.Get("/me", handler.RequireAuth(handler.Me))
	mux.Get("/user-info", handler.RequireAuth(handler.ListUsers))
	mux.Get("/expenses", handler.RequireAuth(handler.ListExpenses))
	mux.Post("/expenses", handler.RequireAuth(handler.CreateExpense))
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account from an email/password pair.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	// A body that is missing or not JSON is treated as empty: the manager
	// reports the missing fields.
	_ = json.NewDecoder(r.Body).Decode(&creds)

	user, err := h.accounts.Register(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"id": user.Id})
}

// Login verifies credentials and returns a signed access token. The token is
// the only thing the client needs for subsequent protected requests.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	_ = json.NewDecoder(r.Body).Decode(&creds)

	user, err := h.accounts.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.Id, user.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// Me returns the profile of the authenticated account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, ErrMissingAuth)
		return
	}

	user, err := h.accounts.Profile(r.Context(), identity.UserId)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

// ListUsers returns all registered accounts, newest first.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, users)
}

// ListExpenses returns all ledger entries, newest first.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.ledger.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, expenses)
}

// CreateExpense records a new ledger entry.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var input ExpenseInput
	_ = json.NewDecoder(r.Body).Decode(&input)

	expense, err := h.ledger.Record(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"id": expense.Id})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps a request error to its status and a small {"error": ...}
// body. Errors outside the taxonomy are logged server-side and surface as a
// generic 500; in development mode the detail is included in the body.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		if !h.devMode {
			message = "Internal server error"
		}
	}
	h.writeJSON(w, status, map[string]string{"error": message})
}

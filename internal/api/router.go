// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wallet-ledger/internal/api/handler"
	authmw "wallet-ledger/internal/api/middleware"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(walletHandler *handler.WalletHandler, authHandler *handler.AuthHandler, tokens authmw.TokenParser, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/users/register", authHandler.Register)
		r.Post("/token", authHandler.ObtainToken)
		r.Post("/token/refresh", authHandler.RefreshToken)

		// Routes requiring a bearer access token
		r.Group(func(r chi.Router) {
			r.Use(authmw.Authenticator(tokens, logger))

			r.Get("/wallet/balance", walletHandler.GetWalletBalance)
			r.Post("/wallet/deposit", walletHandler.Deposit)
			r.Post("/transactions/transfer", walletHandler.Transfer)
			r.Get("/transactions", walletHandler.ListTransactions)
		})
	})

	return r
}

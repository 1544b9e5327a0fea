package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"contapf-server/config"
	"contapf-server/handlers"
	"contapf-server/repository"
	"contapf-server/services"
)

const version = "1.0.0"

func SetupRoutes(accountRepo *repository.AccountRepository, configLoader *config.ConfigLoader, qrService *services.AccountQRService, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountRepo, configLoader)
	qrHandler := handlers.NewQRHandler(accountRepo, qrService)

	// API routes live on the root router; a subrouter turns method mismatches into 404

	// Collection routes
	router.HandleFunc("/api/accounts", accountHandler.GetAccounts).Methods("GET")
	router.HandleFunc("/api/accounts/all", accountHandler.GetAccounts).Methods("GET")
	router.HandleFunc("/api/accounts/count", accountHandler.GetCount).Methods("GET")
	router.HandleFunc("/api/accounts/last", accountHandler.GetLast).Methods("GET")
	router.HandleFunc("/api/accounts/types", accountHandler.GetAccountTypes).Methods("GET")
	router.HandleFunc("/api/accounts", accountHandler.CreateAccount).Methods("POST")
	router.HandleFunc("/api/accounts/batch", accountHandler.CreateAccounts).Methods("POST")
	router.HandleFunc("/api/accounts/all", accountHandler.DeleteAccounts).Methods("DELETE")

	// Account routes keyed by id
	router.HandleFunc("/api/accounts/{id:-?[0-9]+}", accountHandler.GetAccount).Methods("GET")
	router.HandleFunc("/api/accounts/{id:-?[0-9]+}", accountHandler.UpdateAccount).Methods("PUT")
	router.HandleFunc("/api/accounts/{id:-?[0-9]+}", accountHandler.PatchName).Methods("PATCH")
	router.HandleFunc("/api/accounts/{id:-?[0-9]+}", accountHandler.DeleteAccount).Methods("DELETE")
	router.HandleFunc("/api/accounts/{id:-?[0-9]+}/qrcode", qrHandler.GetQRCode).Methods("GET")
	router.HandleFunc("/api/accounts/{id:-?[0-9]+}/qrcode/image", qrHandler.GetQRCodeImage).Methods("GET")

	// Account routes keyed by account number
	router.HandleFunc("/api/accounts/number/{accountNumber:-?[0-9]+}", accountHandler.GetByAccountNumber).Methods("GET")
	router.HandleFunc("/api/accounts/number/{accountNumber:-?[0-9]+}", accountHandler.UpdateByAccountNumber).Methods("PUT")
	router.HandleFunc("/api/accounts/number/{accountNumber:-?[0-9]+}", accountHandler.PatchNameByAccountNumber).Methods("PATCH")
	router.HandleFunc("/api/accounts/number/{accountNumber:-?[0-9]+}", accountHandler.DeleteByAccountNumber).Methods("DELETE")

	// Branch routes
	router.HandleFunc("/api/accounts/branch/{branch:-?[0-9]+}", accountHandler.GetByBranch).Methods("GET")
	router.HandleFunc("/api/accounts/branch/{branch:-?[0-9]+}", accountHandler.DeleteByBranch).Methods("DELETE")

	// Health check
	router.HandleFunc("/api/health", healthCheck(accountRepo)).Methods("GET")

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})

	// requestMiddleware wraps the whole router so unmatched requests are logged too
	handler := c.Handler(requestMiddleware(router))
	return handler
}

func healthCheck(accountRepo *repository.AccountRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"storage":   "memory",
			"accounts":  accountRepo.Count(),
		}
		json.NewEncoder(w).Encode(response)
	}
}

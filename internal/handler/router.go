package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// DefaultAllowedOrigins are the localhost ports a reader client is usually
// served from during development.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
	"http://localhost:3000",
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(readerHandler *ReaderHandler, middleware func(http.Handler) http.Handler, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	if middleware != nil {
		router.Use(middleware)
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pdf-book-reader"})
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pdf-book-reader"})
	}).Methods("GET")

	// Document routes
	api.HandleFunc("/document", readerHandler.UploadDocument).Methods("POST")
	api.HandleFunc("/document", readerHandler.GetDocument).Methods("GET")
	api.HandleFunc("/document", readerHandler.DeleteDocument).Methods("DELETE")
	api.HandleFunc("/document/file", readerHandler.DownloadFile).Methods("GET", "HEAD")
	api.HandleFunc("/document/pages/{page:[0-9]+}", readerHandler.RenderPage).Methods("GET")

	// Navigation routes
	api.HandleFunc("/navigation/previous", readerHandler.Previous).Methods("POST")
	api.HandleFunc("/navigation/next", readerHandler.Next).Methods("POST")
	api.HandleFunc("/navigation/page", readerHandler.SetPage).Methods("PUT")
	api.HandleFunc("/navigation/wheel", readerHandler.Wheel).Methods("POST")
	api.HandleFunc("/viewer/page", readerHandler.ViewerPage).Methods("POST")

	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Range",
		},
		ExposedHeaders: []string{
			"Accept-Ranges",
			"Content-Length",
			"Content-Range",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}

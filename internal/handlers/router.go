package handlers

import (
	"io"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"phonebook/internal/wsnotify"
)

// NewRouter mounts the contact API under /api next to the probes and
// the metrics endpoint.
func NewRouter(h *HTTPHandler, manager *wsnotify.WebSocketManager, set *metrics.Set) *mux.Router {
	root := mux.NewRouter()
	root.HandleFunc("/liveness", h.Liveness).Methods("GET")
	root.HandleFunc("/readiness", h.Readiness).Methods("GET")
	root.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		writeMetrics(w, set)
	}).Methods("GET")

	api := root.PathPrefix("/api").Subrouter()
	api.Use(MeterRequests(set))

	api.HandleFunc("/contacts", h.ListContacts).Methods("GET", "OPTIONS")
	api.HandleFunc("/contacts", h.CreateContact).Methods("POST", "OPTIONS")
	api.HandleFunc("/contacts/export", h.ExportContacts).Methods("POST", "OPTIONS")
	api.HandleFunc("/contacts/{id}", h.GetContact).Methods("GET", "OPTIONS")
	api.HandleFunc("/contacts/{id}", h.UpdateContact).Methods("PUT", "OPTIONS")
	api.HandleFunc("/contacts/{id}", h.DeleteContact).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/contacts/{id}/qrcode", h.ContactQRCode).Methods("GET", "OPTIONS")

	api.HandleFunc("/ws", WebSocketHandler(manager))

	api.PathPrefix("/swagger-ui/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/api/swagger-ui/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	return root
}

func writeMetrics(w io.Writer, set *metrics.Set) {
	set.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}

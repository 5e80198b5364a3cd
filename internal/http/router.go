package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/numjklpp1/parts-management-pro/internal/handlers"
)

func NewRouter(
	inventoryHandler *handlers.InventoryHandler,
	taskHandler *handlers.TaskHandler,
	advisoryHandler *handlers.AdvisoryHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Ledger records
	api.HandleFunc("/records", inventoryHandler.ListRecords).Methods("GET")
	api.HandleFunc("/records", inventoryHandler.SubmitRecord).Methods("POST")
	api.HandleFunc("/records/refresh", inventoryHandler.RefreshRecords).Methods("POST")

	// Stock projections
	api.HandleFunc("/stock", inventoryHandler.GetStock).Methods("GET")
	api.HandleFunc("/stock/summary", inventoryHandler.GetStockSummary).Methods("GET")
	api.HandleFunc("/stock/adjust", inventoryHandler.AdjustStock).Methods("POST")

	// Dashboard
	api.HandleFunc("/dashboard", inventoryHandler.Dashboard).Methods("GET")

	// Dispatch task queue
	api.HandleFunc("/tasks", taskHandler.ListTasks).Methods("GET")
	api.HandleFunc("/tasks", taskHandler.AddTasks).Methods("POST")
	api.HandleFunc("/tasks/{index}", taskHandler.DeleteTask).Methods("DELETE")
	api.HandleFunc("/tasks/{index}/complete", taskHandler.CompleteTask).Methods("POST")
	api.HandleFunc("/tasks/{index}/prioritize", taskHandler.PrioritizeTask).Methods("POST")

	// Advisory (optional, never on the ledger's critical path)
	api.HandleFunc("/advisory/analysis", advisoryHandler.Analyze).Methods("POST")
	api.HandleFunc("/advisory/suggestion", advisoryHandler.Suggest).Methods("POST")

	return r
}

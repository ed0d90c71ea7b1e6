package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset"
)

// HealthcheckHandler responde 200 enquanto o processo estiver de pé; o campo
// dataset_loaded indica se já existe snapshot para servir.
func HealthcheckHandler(provider dataset.Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := provider.Status()

		body := map[string]any{
			"status":         "ok",
			"time":           time.Now().UTC().Format(time.RFC3339),
			"dataset_loaded": status.Loaded,
			"dataset_source": status.Source,
		}

		writeJSON(w, http.StatusOK, body)
	})
}

package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// DatasetSyncer é o agendador de recarga do snapshot de vendas
type DatasetSyncer interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// RefreshDataset dispara manualmente a recarga do snapshot
func RefreshDataset(syncer DatasetSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("dataset: manual refresh requested")

		if !syncer.TriggerManualSync(r.Context()) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"message": "Recarga do dataset já em andamento",
			})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Recarga do dataset iniciada com sucesso",
		})
	})
}

func GetDatasetStatus(syncer DatasetSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, syncer.GetStatus())
	})
}

package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("handler: failed to encode response")
	}
}

// writeDashboardError traduz os erros dos casos de uso para o formato padronizado da API
func writeDashboardError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidWindow):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidMetric):
		apiErrors.WriteError(w, apiErrors.ErrInvalidMetric, err.Error(), map[string]any{
			"allowed": domain.MetricKeys,
		})
	case errors.Is(err, dashboarding.ErrSessionNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSessionNotFound, "Sessão de visualização não encontrada", nil)
	case errors.Is(err, dataset.ErrEmptyDataset):
		apiErrors.WriteError(w, apiErrors.ErrDatasetUnavailable, "Dados de vendas ainda não carregados", nil)
	default:
		logger.WithError(err).Error("handler: unexpected dashboard error")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao montar o dashboard", nil)
	}
}

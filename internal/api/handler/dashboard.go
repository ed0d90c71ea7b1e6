package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// ListMetrics devolve o catálogo de métricas com o par de comparação de cada uma
func ListMetrics(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Catalog())
	})
}

func ListSales(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		query, err := viewRequestFromQuery(r).toQuery()
		if err != nil {
			logger.WithError(err).Warn("sales: invalid date parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		sales, err := service.ListSales(query)
		if err != nil {
			writeDashboardError(w, logger, err)
			return
		}

		logger.WithField("dataset_records", len(sales.Records)).Debug("sales: records listed")
		writeJSON(w, http.StatusOK, sales)
	})
}

// GetDashboard deriva a visão completa sem criar sessão
func GetDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		query, err := viewRequestFromQuery(r).toQuery()
		if err != nil {
			logger.WithError(err).Warn("dashboard: invalid date parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		view, err := service.GetDashboard(query)
		if err != nil {
			writeDashboardError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"metric":          view.Primary.Key,
			"dataset_records": view.RecordCount,
		}).Debug("dashboard: view derived")

		writeJSON(w, http.StatusOK, view)
	})
}

package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func sessionID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

func CreateSession(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req ViewRequest
		if err := decodeOptionalBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		query, err := req.toQuery()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		session, err := service.CreateSession(query)
		if err != nil {
			writeDashboardError(w, logger, err)
			return
		}

		logger.WithField("session_id", session.ID).Info("sessions: view session created")
		writeJSON(w, http.StatusCreated, session)
	})
}

func GetSessionView(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := service.GetSessionView(sessionID(r))
		if err != nil {
			writeDashboardError(w, log.ForContext(r.Context()), err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	})
}

// SetSessionRange altera somente o período da sessão
func SetSessionRange(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req ViewRequest
		if err := decodeOptionalBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Metric != "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Use PUT /v1/sessions/:id/metric para trocar a métrica", nil)
			return
		}

		query, err := req.toQuery()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		session, err := service.SetSessionRange(sessionID(r), query)
		if err != nil {
			writeDashboardError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"session_id":    session.ID,
			"session_start": session.View.Window.Start,
			"session_end":   session.View.Window.End,
		}).Debug("sessions: range updated")

		writeJSON(w, http.StatusOK, session)
	})
}

// SetSessionMetric altera somente a métrica primária da sessão
func SetSessionMetric(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req MetricRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Metric == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "metric é obrigatório", nil)
			return
		}

		session, err := service.SetSessionMetric(sessionID(r), req.Metric)
		if err != nil {
			writeDashboardError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"session_id": session.ID,
			"metric":     session.View.Primary.Key,
		}).Debug("sessions: metric updated")

		writeJSON(w, http.StatusOK, session)
	})
}

func DeleteSession(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteSession(sessionID(r)); err != nil {
			writeDashboardError(w, log.ForContext(r.Context()), err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

func Healthcheck(provider dataset.Provider) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(provider),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics",
			Method:  http.MethodGet,
			Handler: ListMetrics(service),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service),
		},
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
	}
}

func Sessions(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sessions",
			Method:  http.MethodPost,
			Handler: CreateSession(service),
		},
		{
			Path:    "/v1/sessions/:id/view",
			Method:  http.MethodGet,
			Handler: GetSessionView(service),
		},
		{
			Path:    "/v1/sessions/:id/range",
			Method:  http.MethodPut,
			Handler: SetSessionRange(service),
		},
		{
			Path:    "/v1/sessions/:id/metric",
			Method:  http.MethodPut,
			Handler: SetSessionMetric(service),
		},
		{
			Path:    "/v1/sessions/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSession(service),
		},
	}
}

func Dataset(syncer DatasetSyncer, authenticator authenticating.Authenticator) []router.Route {
	adminOnly := []func(http.Handler) http.Handler{
		middleware.AuthMiddleware(authenticator),
		middleware.AdminOnly(),
	}

	return []router.Route{
		{
			Path:        "/v1/dataset/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshDataset(syncer),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/dataset/status",
			Method:      http.MethodGet,
			Handler:     GetDatasetStatus(syncer),
			Middlewares: adminOnly,
		},
	}
}

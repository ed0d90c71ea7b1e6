package handler

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// ViewRequest é o corpo aceito na criação de sessões e na troca de período
type ViewRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Preset    string `json:"preset"`
	Metric    string `json:"metric"`
}

type MetricRequest struct {
	Metric string `json:"metric"`
}

func (req ViewRequest) toQuery() (dashboarding.ViewQuery, error) {
	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return dashboarding.ViewQuery{}, errors.Wrap(err, "start_date must be yyyy-mm-dd")
	}

	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return dashboarding.ViewQuery{}, errors.Wrap(err, "end_date must be yyyy-mm-dd")
	}

	return dashboarding.ViewQuery{
		StartDate: startDate,
		EndDate:   endDate,
		Preset:    req.Preset,
		Metric:    req.Metric,
	}, nil
}

func viewRequestFromQuery(r *http.Request) ViewRequest {
	query := r.URL.Query()

	return ViewRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		Preset:    query.Get("preset"),
		Metric:    query.Get("metric"),
	}
}

// decodeOptionalBody aceita corpo vazio como valor zero
func decodeOptionalBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

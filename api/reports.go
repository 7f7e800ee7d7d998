package api

import (
	"strings"

	"github.com/0xcafe-io/iz"
)

func (api *Api) GetMonthlySummaryHandler(r *iz.Request, ownerID int64) iz.Responder {
	summary, err := api.Service.GetMonthlySummary(r.Context(), ownerID, r.URL.Query().Get("month"))
	if err != nil {
		return failure(r.Request, "get monthly summary", err)
	}
	return iz.Respond().Status(200).JSON(SummaryToHttp(summary))
}

func (api *Api) GetMonthsArchiveHandler(r *iz.Request, ownerID int64) iz.Responder {
	months, err := api.Service.GetMonthsArchive(r.Context(), ownerID)
	if err != nil {
		return failure(r.Request, "get months archive", err)
	}
	return iz.Respond().Status(200).JSON(months)
}

// GetMonthsComparisonHandler takes ?months=2024-01,2024-02 or repeated
// months parameters.
func (api *Api) GetMonthsComparisonHandler(r *iz.Request, ownerID int64) iz.Responder {
	var months []string
	for _, value := range r.URL.Query()["months"] {
		for _, month := range strings.Split(value, ",") {
			if month = strings.TrimSpace(month); month != "" {
				months = append(months, month)
			}
		}
	}

	summaries, err := api.Service.GetMonthsComparison(r.Context(), ownerID, months)
	if err != nil {
		return failure(r.Request, "compare months", err)
	}
	return iz.Respond().Status(200).JSON(mapItems(summaries, SummaryToHttp))
}

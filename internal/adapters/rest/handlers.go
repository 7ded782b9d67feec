package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/port/usecases_port"
)

type VacancyHandler struct {
	collectCityStatsUC    usecases_port.CollectCityStatsUseCase
	getPendingVacanciesUC usecases_port.GetPendingVacanciesUseCase
}

func NewVacancyHandler(
	collectCityStatsUC usecases_port.CollectCityStatsUseCase,
	getPendingVacanciesUC usecases_port.GetPendingVacanciesUseCase,
) *VacancyHandler {
	return &VacancyHandler{
		collectCityStatsUC:    collectCityStatsUC,
		getPendingVacanciesUC: getPendingVacanciesUC,
	}
}

func (h *VacancyHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *VacancyHandler) GetCityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.collectCityStatsUC.Execute(r.Context())
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("CityStatsHandler: failed to collect stats: %v", err))
		return
	}

	// Маппинг из доменной модели в DTO для ответа
	response := make([]CityStatsResponse, len(stats))
	for i, s := range stats {
		response[i] = CityStatsResponse{
			CitySlug:        s.CitySlug,
			CityName:        s.CityName,
			Total:           s.Total,
			Posted:          s.Posted,
			AwaitingPublish: s.AwaitingPublish,
			AddedLastDay:    s.AddedLastDay,
			AvgSalaryToNet:  s.AvgSalaryToNet,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

func (h *VacancyHandler) GetPendingVacancies(w http.ResponseWriter, r *http.Request) {
	citySlug := r.URL.Query().Get("city")
	if citySlug == "" {
		WriteJSONError(w, http.StatusBadRequest, "PendingVacanciesHandler: city is required")
		return
	}

	limit, err := GetLimitOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "PendingVacanciesHandler: invalid limit value")
		return
	}

	vacancies, err := h.getPendingVacanciesUC.Execute(r.Context(), citySlug, *limit)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("PendingVacanciesHandler: failed to get pending vacancies: %v", err))
		return
	}

	response := make([]PendingVacancyResponse, len(vacancies))
	for i, v := range vacancies {
		response[i] = PendingVacancyResponse{
			ID:          v.ID,
			Source:      v.Source,
			ExternalID:  v.ExternalID,
			CitySlug:    v.CitySlug,
			Title:       v.Title,
			Employer:    v.Employer,
			SalaryToNet: v.SalaryToNet,
			ExternalURL: v.ExternalURL,
			PublishedAt: v.PublishedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

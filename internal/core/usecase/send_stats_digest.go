package usecase

import (
	"context"
	"fmt"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port/usecases_port"
)

// SendStatsDigestUseCase отправляет операторам ежедневную сводку по городам
type SendStatsDigestUseCase struct {
	stats  usecases_port.CollectCityStatsUseCase
	alerts port.AlertPort
}

func NewSendStatsDigestUseCase(stats usecases_port.CollectCityStatsUseCase, alerts port.AlertPort) *SendStatsDigestUseCase {
	return &SendStatsDigestUseCase{stats: stats, alerts: alerts}
}

func (uc *SendStatsDigestUseCase) Execute(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SendStatsDigest",
	})
	logger.Info("Use case started", nil)

	cityStats, err := uc.stats.Execute(ctx)
	if err != nil {
		sendErr := uc.alerts.SendAlert(ctx, port.Alert{
			Title:   "Сбор статистики завершился ошибкой",
			Details: err.Error(),
			IsError: true,
		})
		if sendErr != nil {
			logger.Error("Failed to send error alert", sendErr, nil)
		}
		return err
	}

	statLines := make(map[string]string, len(cityStats))
	for _, s := range cityStats {
		line := fmt.Sprintf("всего %d, опубликовано %d, в очереди %d, за сутки +%d",
			s.Total, s.Posted, s.AwaitingPublish, s.AddedLastDay)
		if s.AvgSalaryToNet != nil {
			line += fmt.Sprintf(", ср. зарплата %.0f ₽", *s.AvgSalaryToNet)
		}
		statLines[s.CityName] = line
	}

	if err := uc.alerts.SendAlert(ctx, port.Alert{
		Title: "Ежедневная сводка по вакансиям",
		Stats: statLines,
	}); err != nil {
		logger.Error("Failed to send stats digest", err, nil)
		return err
	}

	logger.Info("Stats digest sent", port.Fields{"cities": len(cityStats)})
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

// Окно вокруг запланированного времени
const publishWindow = 10 * time.Minute

// Московское время, без перехода на летнее
var mskLocation = time.FixedZone("MSK", 3*60*60)

// ShouldPublishNowUseCase решает, попадает ли текущий момент в окно
// публикации по расписанию. В CI расписанием управляет сам триггер,
// поэтому там проверка всегда проходит.
type ShouldPublishNowUseCase struct {
	postTimesMSK []string
	runningInCI  bool
	now          func() time.Time
}

func NewShouldPublishNowUseCase(postTimesMSK []string, runningInCI bool, now func() time.Time) *ShouldPublishNowUseCase {
	if now == nil {
		now = time.Now
	}
	return &ShouldPublishNowUseCase{
		postTimesMSK: postTimesMSK,
		runningInCI:  runningInCI,
		now:          now,
	}
}

func (uc *ShouldPublishNowUseCase) Execute(ctx context.Context) bool {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ShouldPublishNow",
	})

	if uc.runningInCI {
		logger.Info("CI mode, publication is always allowed", nil)
		return true
	}

	if len(uc.postTimesMSK) == 0 {
		return true
	}

	nowMSK := uc.now().In(mskLocation)

	for _, entry := range uc.postTimesMSK {
		var hour, minute int
		if _, err := fmt.Sscanf(entry, "%d:%d", &hour, &minute); err != nil {
			logger.Warn("Malformed schedule entry, skipping", port.Fields{"entry": entry})
			continue
		}
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			logger.Warn("Malformed schedule entry, skipping", port.Fields{"entry": entry})
			continue
		}

		scheduled := time.Date(nowMSK.Year(), nowMSK.Month(), nowMSK.Day(), hour, minute, 0, 0, mskLocation)
		diff := nowMSK.Sub(scheduled)
		if diff < 0 {
			diff = -diff
		}
		if diff <= publishWindow {
			logger.Info("Inside publication window", port.Fields{"scheduled": entry})
			return true
		}
	}

	logger.Info("Outside of publication schedule", port.Fields{
		"now_msk": nowMSK.Format("15:04"),
	})
	return false
}

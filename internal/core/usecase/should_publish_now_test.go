package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
)

var testMSK = time.FixedZone("MSK", 3*60*60)

func fixedNow(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.March, 10, hour, minute, 0, 0, testMSK)
	}
}

func TestShouldPublishNow_InsideWindow(t *testing.T) {
	schedule := []string{"09:00", "19:00"}

	cases := []struct {
		name string
		now  func() time.Time
		want bool
	}{
		{name: "exact scheduled time", now: fixedNow(9, 0), want: true},
		{name: "ten minutes after", now: fixedNow(9, 10), want: true},
		{name: "ten minutes before", now: fixedNow(18, 50), want: true},
		{name: "eleven minutes after", now: fixedNow(9, 11), want: false},
		{name: "midday, far from both slots", now: fixedNow(13, 30), want: false},
	}

	for _, tc := range cases {
		uc := usecase.NewShouldPublishNowUseCase(schedule, false, tc.now)
		if got := uc.Execute(context.Background()); got != tc.want {
			t.Errorf("%s: Execute() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestShouldPublishNow_CIBypass(t *testing.T) {
	uc := usecase.NewShouldPublishNowUseCase([]string{"09:00"}, true, fixedNow(3, 0))
	if !uc.Execute(context.Background()) {
		t.Error("Execute() = false in CI mode, want true")
	}
}

func TestShouldPublishNow_EmptySchedule(t *testing.T) {
	uc := usecase.NewShouldPublishNowUseCase(nil, false, fixedNow(3, 0))
	if !uc.Execute(context.Background()) {
		t.Error("Execute() = false with empty schedule, want true")
	}
}

func TestShouldPublishNow_MalformedEntriesSkipped(t *testing.T) {
	uc := usecase.NewShouldPublishNowUseCase([]string{"garbage", "25:00", "13:30"}, false, fixedNow(13, 30))
	if !uc.Execute(context.Background()) {
		t.Error("Execute() = false, valid entry should still match")
	}

	uc = usecase.NewShouldPublishNowUseCase([]string{"garbage", "25:00"}, false, fixedNow(13, 30))
	if uc.Execute(context.Background()) {
		t.Error("Execute() = true with only malformed entries, want false")
	}
}

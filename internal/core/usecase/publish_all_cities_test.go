package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
)

type fakeCityPublisher struct {
	results map[string]domain.CityResult
	calls   []string
}

func (f *fakeCityPublisher) Execute(ctx context.Context, city domain.City) domain.CityResult {
	f.calls = append(f.calls, city.Slug)
	if r, ok := f.results[city.Slug]; ok {
		return r
	}
	return domain.CityResult{CitySlug: city.Slug, State: domain.CityStateMarked, PublishedCount: 1}
}

type fakeGate struct{ allow bool }

func (f *fakeGate) Execute(ctx context.Context) bool { return f.allow }

type fakeRunLock struct {
	acquireErr error
	acquired   bool
	released   bool
}

func (f *fakeRunLock) Acquire(ctx context.Context, key string, ttl time.Duration) error {
	if f.acquireErr != nil {
		return f.acquireErr
	}
	f.acquired = true
	return nil
}

func (f *fakeRunLock) Release(ctx context.Context, key string) error {
	f.released = true
	return nil
}

func twoCities() []domain.City {
	return []domain.City{
		{Slug: "msk", Name: "Москва", ChannelID: "@courier_jobs_msk"},
		{Slug: "spb", Name: "Санкт-Петербург", ChannelID: "@courier_jobs_spb"},
	}
}

func TestPublishAllCities_OutsideWindow(t *testing.T) {
	publisher := &fakeCityPublisher{}
	uc := usecase.NewPublishAllCitiesUseCase(publisher, &fakeGate{allow: false}, nil, twoCities(), 0)

	report := uc.Execute(context.Background())

	if !report.Success {
		t.Error("Success = false outside the window, want true")
	}
	if len(report.Results) != 0 {
		t.Errorf("Results has %d entries, want 0", len(report.Results))
	}
	if len(publisher.calls) != 0 {
		t.Error("cities were published outside the window")
	}
}

func TestPublishAllCities_FailedCityDoesNotStopRun(t *testing.T) {
	cities := append(twoCities(), domain.City{Slug: "nsk", Name: "Новосибирск", ChannelID: "@courier_jobs_nsk"})
	publisher := &fakeCityPublisher{results: map[string]domain.CityResult{
		"spb": {CitySlug: "spb", State: domain.CityStateFailed, Err: errors.New("boom")},
		"nsk": {CitySlug: "nsk", State: domain.CityStateSkipped},
	}}
	uc := usecase.NewPublishAllCitiesUseCase(publisher, &fakeGate{allow: true}, nil, cities, 0)

	report := uc.Execute(context.Background())

	if report.Success {
		t.Error("Success = true with a failed city, want false")
	}
	if len(publisher.calls) != 3 {
		t.Errorf("published %d cities, want 3: failure must not stop the run", len(publisher.calls))
	}
	if len(report.Results) != 3 {
		t.Errorf("Results has %d entries, want one per city", len(report.Results))
	}
	if report.Results["msk"].State != domain.CityStateMarked {
		t.Errorf("msk state = %s, want MARKED", report.Results["msk"].State)
	}
	if report.Results["nsk"].State != domain.CityStateSkipped {
		t.Errorf("nsk state = %s, want SKIPPED", report.Results["nsk"].State)
	}
	if report.TotalPublished != 1 {
		t.Errorf("TotalPublished = %d, want 1", report.TotalPublished)
	}
}

func TestPublishAllCities_LockBusySkipsRun(t *testing.T) {
	publisher := &fakeCityPublisher{}
	lock := &fakeRunLock{acquireErr: domain.ErrRunLockBusy}
	uc := usecase.NewPublishAllCitiesUseCase(publisher, &fakeGate{allow: true}, lock, twoCities(), 0)

	report := uc.Execute(context.Background())

	if !report.Success {
		t.Error("Success = false when another run holds the lock, want true")
	}
	if len(publisher.calls) != 0 {
		t.Error("cities were published while the lock was busy")
	}
}

func TestPublishAllCities_LockUnavailableContinues(t *testing.T) {
	publisher := &fakeCityPublisher{}
	lock := &fakeRunLock{acquireErr: errors.New("redis down")}
	uc := usecase.NewPublishAllCitiesUseCase(publisher, &fakeGate{allow: true}, lock, twoCities(), 0)

	report := uc.Execute(context.Background())

	if !report.Success {
		t.Error("Success = false, want true: lock outage must not block the run")
	}
	if len(publisher.calls) != 2 {
		t.Errorf("published %d cities, want 2", len(publisher.calls))
	}
}

func TestPublishAllCities_LockReleasedAfterRun(t *testing.T) {
	publisher := &fakeCityPublisher{}
	lock := &fakeRunLock{}
	uc := usecase.NewPublishAllCitiesUseCase(publisher, &fakeGate{allow: true}, lock, twoCities(), 0)

	uc.Execute(context.Background())

	if !lock.acquired {
		t.Error("lock was never acquired")
	}
	if !lock.released {
		t.Error("lock was not released after the run")
	}
}

func TestPublishAllCities_CancelledBetweenCities(t *testing.T) {
	publisher := &fakeCityPublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := usecase.NewPublishAllCitiesUseCase(publisher, &fakeGate{allow: true}, nil, twoCities(), 50*time.Millisecond)
	report := uc.Execute(ctx)

	if report.Success {
		t.Error("Success = true for a cancelled run, want false")
	}
	if len(publisher.calls) != 1 {
		t.Errorf("published %d cities, want 1 before cancellation took effect", len(publisher.calls))
	}
}

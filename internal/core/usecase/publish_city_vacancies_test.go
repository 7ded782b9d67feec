package usecase_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
)

type fakeStorage struct {
	eligible    []domain.Vacancy
	eligibleErr error

	gotCriteria domain.EligibilityCriteria

	markErr       error
	markedIDs     []int64
	markedChannel string
}

func (f *fakeStorage) GetEligibleForPublication(ctx context.Context, criteria domain.EligibilityCriteria) ([]domain.Vacancy, error) {
	f.gotCriteria = criteria
	return f.eligible, f.eligibleErr
}

func (f *fakeStorage) MarkAsPosted(ctx context.Context, ids []int64, channelID string) error {
	f.markedIDs = ids
	f.markedChannel = channelID
	return f.markErr
}

func (f *fakeStorage) BatchUpsert(ctx context.Context, vacancies []domain.Vacancy) (domain.SaveStats, error) {
	return domain.SaveStats{}, nil
}

func (f *fakeStorage) GetCityStats(ctx context.Context, city domain.City, criteria domain.EligibilityCriteria) (domain.CityStats, error) {
	return domain.CityStats{}, nil
}

func (f *fakeStorage) GetPendingVacancies(ctx context.Context, citySlug string, limit int) ([]domain.Vacancy, error) {
	return nil, nil
}

type fakeMessenger struct {
	sendErr     error
	sentChannel string
	sentPost    domain.PostContent
	calls       int
}

func (f *fakeMessenger) SendPost(ctx context.Context, channelID string, post domain.PostContent) error {
	f.calls++
	f.sentChannel = channelID
	f.sentPost = post
	return f.sendErr
}

func newCityPublisher(storage *fakeStorage, messenger *fakeMessenger) *usecase.PublishCityVacanciesUseCase {
	return usecase.NewPublishCityVacanciesUseCase(
		storage,
		messenger,
		usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(1))),
		usecase.NewRenderPostUseCase(""),
		usecase.PublicationSettings{
			TargetCount:       10,
			Currency:          "RUR",
			MaxVacancyAgeDays: 30,
			MaxParsedAgeDays:  14,
		},
	)
}

func testCity() domain.City {
	return domain.City{Slug: "msk", Name: "Москва", ChannelID: "@courier_jobs_msk"}
}

func eligiblePool(n int) []domain.Vacancy {
	pool := make([]domain.Vacancy, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, domain.Vacancy{
			ID:          int64(i + 1),
			Title:       "Курьер " + string(rune('А'+i)),
			Employer:    "Работодатель " + string(rune('А'+i)),
			ExternalURL: "https://hh.ru/vacancy/1",
			Fingerprint: "fp-" + string(rune('a'+i)),
		})
	}
	return pool
}

// memoryStorage повторяет семантику хранилища: выборка отдает только
// неопубликованные вакансии, отметка переводит их в is_posted
type memoryStorage struct {
	vacancies map[int64]domain.Vacancy
	posted    map[int64]bool
	markCalls int
}

func newMemoryStorage(pool []domain.Vacancy) *memoryStorage {
	s := &memoryStorage{
		vacancies: make(map[int64]domain.Vacancy, len(pool)),
		posted:    make(map[int64]bool),
	}
	for _, v := range pool {
		s.vacancies[v.ID] = v
	}
	return s
}

func (s *memoryStorage) GetEligibleForPublication(ctx context.Context, criteria domain.EligibilityCriteria) ([]domain.Vacancy, error) {
	var eligible []domain.Vacancy
	for _, v := range s.vacancies {
		if !s.posted[v.ID] {
			eligible = append(eligible, v)
		}
	}
	return eligible, nil
}

func (s *memoryStorage) MarkAsPosted(ctx context.Context, ids []int64, channelID string) error {
	s.markCalls++
	for _, id := range ids {
		s.posted[id] = true
	}
	return nil
}

func (s *memoryStorage) BatchUpsert(ctx context.Context, vacancies []domain.Vacancy) (domain.SaveStats, error) {
	return domain.SaveStats{}, nil
}

func (s *memoryStorage) GetCityStats(ctx context.Context, city domain.City, criteria domain.EligibilityCriteria) (domain.CityStats, error) {
	return domain.CityStats{}, nil
}

func (s *memoryStorage) GetPendingVacancies(ctx context.Context, citySlug string, limit int) ([]domain.Vacancy, error) {
	return nil, nil
}

func TestPublishCityVacancies_RequestsTripleTarget(t *testing.T) {
	storage := &fakeStorage{eligible: eligiblePool(3)}
	uc := newCityPublisher(storage, &fakeMessenger{})

	uc.Execute(context.Background(), testCity())

	if storage.gotCriteria.Limit != 30 {
		t.Errorf("criteria.Limit = %d, want 30 (target * 3)", storage.gotCriteria.Limit)
	}
	if storage.gotCriteria.CitySlug != "msk" {
		t.Errorf("criteria.CitySlug = %q, want msk", storage.gotCriteria.CitySlug)
	}
	if storage.gotCriteria.Currency != "RUR" {
		t.Errorf("criteria.Currency = %q, want RUR", storage.gotCriteria.Currency)
	}
	if storage.gotCriteria.MaxVacancyAgeDays != 30 || storage.gotCriteria.MaxParsedAgeDays != 14 {
		t.Errorf("criteria age cutoffs = %d/%d, want 30/14",
			storage.gotCriteria.MaxVacancyAgeDays, storage.gotCriteria.MaxParsedAgeDays)
	}
}

func TestPublishCityVacancies_FetchError(t *testing.T) {
	storage := &fakeStorage{eligibleErr: errors.New("connection refused")}
	messenger := &fakeMessenger{}
	uc := newCityPublisher(storage, messenger)

	result := uc.Execute(context.Background(), testCity())

	if result.State != domain.CityStateFailed {
		t.Errorf("State = %s, want FAILED", result.State)
	}
	if result.Err == nil {
		t.Error("Err is nil, want fetch error")
	}
	if messenger.calls != 0 {
		t.Error("post was sent despite a fetch failure")
	}
}

func TestPublishCityVacancies_EmptyPoolSkipped(t *testing.T) {
	storage := &fakeStorage{}
	uc := newCityPublisher(storage, &fakeMessenger{})

	result := uc.Execute(context.Background(), testCity())

	if result.State != domain.CityStateSkipped {
		t.Errorf("State = %s, want SKIPPED", result.State)
	}
	if result.Err != nil {
		t.Errorf("Err = %v, want nil", result.Err)
	}
}

func TestPublishCityVacancies_SendError(t *testing.T) {
	storage := &fakeStorage{eligible: eligiblePool(5)}
	messenger := &fakeMessenger{sendErr: errors.New("bot api unavailable")}
	uc := newCityPublisher(storage, messenger)

	result := uc.Execute(context.Background(), testCity())

	if result.State != domain.CityStateFailed {
		t.Errorf("State = %s, want FAILED", result.State)
	}
	if storage.markedIDs != nil {
		t.Error("vacancies were marked as posted after a failed send")
	}
}

func TestPublishCityVacancies_MarkErrorKeepsSentState(t *testing.T) {
	storage := &fakeStorage{
		eligible: eligiblePool(5),
		markErr:  errors.New("deadlock detected"),
	}
	uc := newCityPublisher(storage, &fakeMessenger{})

	result := uc.Execute(context.Background(), testCity())

	if result.State != domain.CityStateSent {
		t.Errorf("State = %s, want SENT when marking fails after send", result.State)
	}
	if result.Err != nil {
		t.Errorf("Err = %v, want nil: post is already in the channel", result.Err)
	}
	if result.PublishedCount != 5 {
		t.Errorf("PublishedCount = %d, want 5", result.PublishedCount)
	}
}

func TestPublishCityVacancies_RepeatMarkingIsNoOp(t *testing.T) {
	storage := newMemoryStorage(eligiblePool(5))
	messenger := &fakeMessenger{}
	uc := usecase.NewPublishCityVacanciesUseCase(
		storage,
		messenger,
		usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(1))),
		usecase.NewRenderPostUseCase(""),
		usecase.PublicationSettings{TargetCount: 10, Currency: "RUR", MaxVacancyAgeDays: 30, MaxParsedAgeDays: 14},
	)

	first := uc.Execute(context.Background(), testCity())
	if first.State != domain.CityStateMarked {
		t.Fatalf("first run state = %s, want MARKED", first.State)
	}
	postedAfterFirst := len(storage.posted)

	// Повторная отметка того же набора не ошибка и не меняет состояние
	ids := make([]int64, 0, postedAfterFirst)
	for id := range storage.posted {
		ids = append(ids, id)
	}
	if err := storage.MarkAsPosted(context.Background(), ids, "@courier_jobs_msk"); err != nil {
		t.Errorf("repeated MarkAsPosted error = %v, want nil", err)
	}
	if len(storage.posted) != postedAfterFirst {
		t.Errorf("posted set grew from %d to %d after repeated marking", postedAfterFirst, len(storage.posted))
	}

	// Второй прогон не находит кандидатов и ничего не публикует повторно
	second := uc.Execute(context.Background(), testCity())
	if second.State != domain.CityStateSkipped {
		t.Errorf("second run state = %s, want SKIPPED", second.State)
	}
	if messenger.calls != 1 {
		t.Errorf("messenger called %d times, want 1: marked vacancies must not be republished", messenger.calls)
	}
}

func TestPublishCityVacancies_HappyPath(t *testing.T) {
	storage := &fakeStorage{eligible: eligiblePool(5)}
	messenger := &fakeMessenger{}
	uc := newCityPublisher(storage, messenger)

	result := uc.Execute(context.Background(), testCity())

	if result.State != domain.CityStateMarked {
		t.Fatalf("State = %s, want MARKED", result.State)
	}
	if result.PublishedCount != 5 {
		t.Errorf("PublishedCount = %d, want 5", result.PublishedCount)
	}
	if messenger.sentChannel != "@courier_jobs_msk" {
		t.Errorf("post sent to %q, want @courier_jobs_msk", messenger.sentChannel)
	}
	if messenger.sentPost.Text == "" {
		t.Error("sent post has empty text")
	}
	if len(storage.markedIDs) != 5 {
		t.Errorf("marked %d ids, want 5", len(storage.markedIDs))
	}
	if storage.markedChannel != "@courier_jobs_msk" {
		t.Errorf("marked with channel %q, want @courier_jobs_msk", storage.markedChannel)
	}
}

package usecase

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

// SelectForPublicationUseCase отбирает подмножество вакансий для одного поста.
// Алгоритм:
//  1. Пул делится на вакансии с указанной верхней зарплатой и без нее.
//  2. Из "зарплатной" части берется случайная выборка без повторов,
//     остаток добирается из вакансий без зарплаты.
//  3. Зарплатная часть сортируется по убыванию salary_to_net и идет
//     в начале поста.
type SelectForPublicationUseCase struct {
	rng *rand.Rand
}

func NewSelectForPublicationUseCase(rng *rand.Rand) *SelectForPublicationUseCase {
	return &SelectForPublicationUseCase{rng: rng}
}

func (uc *SelectForPublicationUseCase) Execute(ctx context.Context, eligible []domain.Vacancy, targetCount int) []domain.Vacancy {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SelectForPublication",
	})

	if targetCount <= 0 || len(eligible) == 0 {
		return []domain.Vacancy{}
	}

	candidates := uc.dropDuplicates(eligible)

	var withSalary, withoutSalary []domain.Vacancy
	for _, v := range candidates {
		if v.HasSalaryTo() {
			withSalary = append(withSalary, v)
		} else {
			withoutSalary = append(withoutSalary, v)
		}
	}

	salaried := uc.sample(withSalary, targetCount)
	rest := uc.sample(withoutSalary, targetCount-len(salaried))

	// Зарплатные вакансии идут первыми, от высокой к низкой
	sort.SliceStable(salaried, func(i, j int) bool {
		return *salaried[i].SalaryToNet > *salaried[j].SalaryToNet
	})

	selection := append(salaried, rest...)
	if len(selection) > targetCount {
		selection = selection[:targetCount]
	}

	logger.Info("Selection finished", port.Fields{
		"pool_size":    len(eligible),
		"with_salary":  len(withSalary),
		"selected":     len(selection),
		"target_count": targetCount,
	})

	return selection
}

// sample возвращает до limit случайных элементов без повторов
func (uc *SelectForPublicationUseCase) sample(pool []domain.Vacancy, limit int) []domain.Vacancy {
	if limit <= 0 || len(pool) == 0 {
		return []domain.Vacancy{}
	}

	shuffled := make([]domain.Vacancy, len(pool))
	copy(shuffled, pool)
	uc.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if limit > len(shuffled) {
		limit = len(shuffled)
	}
	return shuffled[:limit]
}

// dropDuplicates убирает повторы по id, отпечатку и грубому ключу
// "работодатель + начало названия". Вакансии без названия или без
// работодателя в пост не попадают.
func (uc *SelectForPublicationUseCase) dropDuplicates(pool []domain.Vacancy) []domain.Vacancy {
	seenIDs := make(map[int64]struct{}, len(pool))
	seenFingerprints := make(map[string]struct{}, len(pool))
	seenTitleKeys := make(map[string]struct{}, len(pool))

	result := make([]domain.Vacancy, 0, len(pool))
	for _, v := range pool {
		employer := strings.TrimSpace(v.Employer)
		title := strings.TrimSpace(v.Title)
		if employer == "" || title == "" {
			continue
		}

		if _, ok := seenIDs[v.ID]; ok {
			continue
		}
		if v.Fingerprint != "" {
			if _, ok := seenFingerprints[v.Fingerprint]; ok {
				continue
			}
		}

		titleKey := employer + "_" + truncateRunes(title, 60)
		if _, ok := seenTitleKeys[titleKey]; ok {
			continue
		}

		seenIDs[v.ID] = struct{}{}
		if v.Fingerprint != "" {
			seenFingerprints[v.Fingerprint] = struct{}{}
		}
		seenTitleKeys[titleKey] = struct{}{}
		result = append(result, v)
	}
	return result
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package usecase_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
)

func salariedVacancy(id int64, salaryTo int64) domain.Vacancy {
	return domain.Vacancy{
		ID:          id,
		Title:       "Курьер",
		Employer:    "Работодатель",
		SalaryToNet: &salaryTo,
		Fingerprint: "fp-" + string(rune('a'+id)),
	}
}

func plainVacancy(id int64) domain.Vacancy {
	return domain.Vacancy{
		ID:          id,
		Title:       "Курьер-доставщик",
		Employer:    "Компания",
		Fingerprint: "fp-" + string(rune('A'+id)),
	}
}

func TestSelectForPublication_BoundedByTarget(t *testing.T) {
	pool := make([]domain.Vacancy, 0, 12)
	salaries := []int64{50000, 60000, 65000, 70000, 80000, 85000, 90000}
	for i, s := range salaries {
		v := salariedVacancy(int64(i+1), s)
		v.Employer = "Работодатель " + string(rune('А'+i))
		pool = append(pool, v)
	}
	for i := 0; i < 5; i++ {
		v := plainVacancy(int64(100 + i))
		v.Employer = "Компания " + string(rune('А'+i))
		pool = append(pool, v)
	}

	uc := usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(42)))
	selection := uc.Execute(context.Background(), pool, 10)

	if len(selection) != 10 {
		t.Fatalf("Execute() returned %d vacancies, want 10", len(selection))
	}

	// Зарплатные вакансии идут первыми, от высокой к низкой
	if selection[0].SalaryToNet == nil || *selection[0].SalaryToNet != 90000 {
		t.Errorf("first entry salary = %v, want 90000", selection[0].SalaryToNet)
	}
	lastSalaried := -1
	for i, v := range selection {
		if v.SalaryToNet != nil {
			if lastSalaried >= 0 && *selection[lastSalaried].SalaryToNet < *v.SalaryToNet {
				t.Errorf("salaried entries are not sorted desc at index %d", i)
			}
			if lastSalaried < i-1 && lastSalaried >= 0 {
				t.Errorf("salaried entry at index %d appears after a vacancy without salary", i)
			}
			lastSalaried = i
		}
	}

	seen := make(map[int64]bool)
	for _, v := range selection {
		if seen[v.ID] {
			t.Errorf("vacancy %d selected twice", v.ID)
		}
		seen[v.ID] = true
	}
}

func TestSelectForPublication_DeterministicWithSeed(t *testing.T) {
	pool := make([]domain.Vacancy, 0, 20)
	for i := 0; i < 20; i++ {
		v := salariedVacancy(int64(i+1), int64(40000+i*1000))
		v.Employer = "Работодатель " + string(rune('А'+i))
		pool = append(pool, v)
	}

	first := usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(7))).
		Execute(context.Background(), pool, 5)
	second := usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(7))).
		Execute(context.Background(), pool, 5)

	if len(first) != len(second) {
		t.Fatalf("runs with the same seed differ in size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("runs with the same seed differ at index %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSelectForPublication_TargetNotPositive(t *testing.T) {
	pool := []domain.Vacancy{salariedVacancy(1, 50000)}
	uc := usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(1)))

	if got := uc.Execute(context.Background(), pool, 0); len(got) != 0 {
		t.Errorf("Execute(target=0) returned %d vacancies, want 0", len(got))
	}
	if got := uc.Execute(context.Background(), pool, -3); len(got) != 0 {
		t.Errorf("Execute(target=-3) returned %d vacancies, want 0", len(got))
	}
}

func TestSelectForPublication_DropsDuplicates(t *testing.T) {
	byFingerprint := salariedVacancy(2, 60000)
	byFingerprint.Fingerprint = "fp-same"
	byFingerprintDup := salariedVacancy(3, 70000)
	byFingerprintDup.Fingerprint = "fp-same"
	byFingerprintDup.Employer = "Другой работодатель"

	byTitle := salariedVacancy(4, 55000)
	byTitle.Fingerprint = ""
	byTitle.Employer = "Сеть доставки"
	byTitle.Title = "Курьер на авто"
	byTitleDup := salariedVacancy(5, 56000)
	byTitleDup.Fingerprint = ""
	byTitleDup.Employer = "Сеть доставки"
	byTitleDup.Title = "Курьер на авто"

	noEmployer := salariedVacancy(6, 90000)
	noEmployer.Employer = "   "

	pool := []domain.Vacancy{byFingerprint, byFingerprintDup, byTitle, byTitleDup, noEmployer}

	uc := usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(9)))
	selection := uc.Execute(context.Background(), pool, 10)

	if len(selection) != 2 {
		t.Fatalf("Execute() returned %d vacancies, want 2 after dedup", len(selection))
	}
	for _, v := range selection {
		if v.ID == 3 || v.ID == 5 || v.ID == 6 {
			t.Errorf("duplicate or invalid vacancy %d was selected", v.ID)
		}
	}
}

func TestSelectForPublication_FillsFromUnsalariedPool(t *testing.T) {
	pool := []domain.Vacancy{salariedVacancy(1, 50000)}
	for i := 0; i < 4; i++ {
		v := plainVacancy(int64(10 + i))
		v.Employer = "Компания " + string(rune('А'+i))
		pool = append(pool, v)
	}

	uc := usecase.NewSelectForPublicationUseCase(rand.New(rand.NewSource(3)))
	selection := uc.Execute(context.Background(), pool, 3)

	if len(selection) != 3 {
		t.Fatalf("Execute() returned %d vacancies, want 3", len(selection))
	}
	if selection[0].SalaryToNet == nil {
		t.Error("salaried vacancy should come first")
	}
}

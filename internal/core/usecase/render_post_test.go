package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func renderVacancy(id int64, title string) domain.Vacancy {
	return domain.Vacancy{
		ID:          id,
		Title:       title,
		Employer:    "Доставка Плюс",
		ExternalURL: "https://hh.ru/vacancy/123",
	}
}

func TestRenderPost_EmptySelection(t *testing.T) {
	uc := usecase.NewRenderPostUseCase("https://example.org/ref")

	content, err := uc.Execute(context.Background(), nil, "Москва")
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if content.Text != "Нет новых вакансий для публикации" {
		t.Errorf("Execute() text = %q, want placeholder", content.Text)
	}
}

func TestRenderPost_EntriesAndEscaping(t *testing.T) {
	uc := usecase.NewRenderPostUseCase("https://example.org/ref")

	v1 := renderVacancy(1, "Курьер <срочно>")
	v1.SalaryFromNet = int64Ptr(50000)
	v1.SalaryToNet = int64Ptr(90000)
	v1.ScheduleName = strPtr("Гибкий график")
	v1.ExperienceName = strPtr("Нет опыта")
	v2 := renderVacancy(2, "Пеший курьер")

	content, err := uc.Execute(context.Background(), []domain.Vacancy{v1, v2}, "Казань")
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}

	if !strings.Contains(content.Text, "г. Казань") {
		t.Error("post should mention the city")
	}
	if !strings.Contains(content.Text, "Курьер &lt;срочно&gt;") {
		t.Error("title should be HTML-escaped")
	}
	if strings.Contains(content.Text, "<срочно>") {
		t.Error("raw title markup leaked into the post")
	}
	if !strings.Contains(content.Text, "1. ") || !strings.Contains(content.Text, "2. ") {
		t.Error("entries should be numbered")
	}
	if !strings.Contains(content.Text, "от 50 000 до 90 000 ₽") {
		t.Errorf("salary range missing, text:\n%s", content.Text)
	}
	if !strings.Contains(content.Text, "🕒 Гибкий график") {
		t.Error("schedule line missing")
	}
	if !strings.Contains(content.Text, "\n---\n") {
		t.Error("divider between entries missing")
	}
	if content.ButtonURL != "https://example.org/ref" {
		t.Errorf("ButtonURL = %q, want referral link", content.ButtonURL)
	}
}

func TestRenderPost_SalaryFormats(t *testing.T) {
	uc := usecase.NewRenderPostUseCase("")

	cases := []struct {
		name    string
		from    *int64
		to      *int64
		period  *string
		freq    *string
		wantSub string
		banSub  string
	}{
		{name: "equal bounds", from: int64Ptr(90000), to: int64Ptr(90000), wantSub: "💰 90 000 ₽"},
		{name: "only from", from: int64Ptr(45000), wantSub: "💰 от 45 000 ₽"},
		{name: "only to", to: int64Ptr(120000), wantSub: "💰 120 000 ₽"},
		{name: "no salary", wantSub: "💰 не указана"},
		{
			name: "period with frequency", from: int64Ptr(60000),
			period: strPtr("за месяц"), freq: strPtr("Два раза в месяц"),
			wantSub: "(за месяц, Два раза в месяц)",
		},
		{
			name: "unknown frequency skipped", from: int64Ptr(60000),
			period: strPtr("за месяц"), freq: strPtr("Не указано"),
			wantSub: "(за месяц)", banSub: "за месяц,",
		},
		{
			name: "empty frequency shown as unknown", from: int64Ptr(60000),
			period: strPtr("за месяц"), freq: strPtr(""),
			wantSub: "(за месяц, не указано)",
		},
		{
			name: "absent frequency omitted", from: int64Ptr(60000),
			period: strPtr("за месяц"),
			wantSub: "(за месяц)", banSub: "за месяц,",
		},
	}

	for _, tc := range cases {
		v := renderVacancy(1, "Курьер")
		v.SalaryFromNet = tc.from
		v.SalaryToNet = tc.to
		v.SalaryPeriodName = tc.period
		v.SalaryFrequencyName = tc.freq

		content, err := uc.Execute(context.Background(), []domain.Vacancy{v}, "Москва")
		if err != nil {
			t.Errorf("%s: Execute() error = %v", tc.name, err)
			continue
		}
		if !strings.Contains(content.Text, tc.wantSub) {
			t.Errorf("%s: post does not contain %q, text:\n%s", tc.name, tc.wantSub, content.Text)
		}
		if tc.banSub != "" && strings.Contains(content.Text, tc.banSub) {
			t.Errorf("%s: post contains forbidden %q, text:\n%s", tc.name, tc.banSub, content.Text)
		}
	}
}

func TestRenderPost_ShrinksOnOverflow(t *testing.T) {
	uc := usecase.NewRenderPostUseCase("")

	longTitle := strings.Repeat("Очень длинное название вакансии курьера ", 10)
	selection := make([]domain.Vacancy, 0, 30)
	for i := 0; i < 30; i++ {
		selection = append(selection, renderVacancy(int64(i+1), longTitle))
	}

	content, err := uc.Execute(context.Background(), selection, "Москва")
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if got := utf8.RuneCountInString(content.Text); got > 4096 {
		t.Errorf("post length = %d runes, want <= 4096", got)
	}
}

func TestRenderPost_SingleEntryTooLong(t *testing.T) {
	uc := usecase.NewRenderPostUseCase("")

	v := renderVacancy(1, strings.Repeat("Ж", 5000))
	_, err := uc.Execute(context.Background(), []domain.Vacancy{v}, "Москва")
	if !errors.Is(err, domain.ErrRenderOverflow) {
		t.Errorf("Execute() error = %v, want ErrRenderOverflow", err)
	}
}

func TestRenderPost_NoReferralBlockWithoutLink(t *testing.T) {
	uc := usecase.NewRenderPostUseCase("   ")

	content, err := uc.Execute(context.Background(), []domain.Vacancy{renderVacancy(1, "Курьер")}, "Москва")
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if strings.Contains(content.Text, "Хочешь работать на себя") {
		t.Error("referral block rendered without a referral link")
	}
	if content.ButtonURL != "" {
		t.Errorf("ButtonURL = %q, want empty", content.ButtonURL)
	}
}

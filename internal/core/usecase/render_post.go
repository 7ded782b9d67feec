package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

// Лимит длины сообщения Telegram в символах
const maxPostLength = 4096

// При переполнении сначала ужимаемся до этого числа вакансий,
// дальше делим пополам до одной
const overflowEntriesCap = 5

const emptySelectionText = "Нет новых вакансий для публикации"

// RenderPostUseCase собирает HTML-текст поста из отобранных вакансий.
// Поля вакансий экранируются, пост не превышает лимит Telegram.
type RenderPostUseCase struct {
	referralLink string
	printer      *message.Printer
}

func NewRenderPostUseCase(referralLink string) *RenderPostUseCase {
	return &RenderPostUseCase{
		referralLink: strings.TrimSpace(referralLink),
		printer:      message.NewPrinter(language.Russian),
	}
}

func (uc *RenderPostUseCase) Execute(ctx context.Context, selection []domain.Vacancy, cityName string) (domain.PostContent, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RenderPost",
		"city":     cityName,
	})

	if len(selection) == 0 {
		return domain.PostContent{Text: emptySelectionText}, nil
	}

	count := len(selection)
	text := uc.render(selection[:count], cityName)

	for utf8.RuneCountInString(text) > maxPostLength {
		if count == 1 {
			logger.Error("Post does not fit even with a single vacancy", domain.ErrRenderOverflow, port.Fields{
				"length": utf8.RuneCountInString(text),
			})
			return domain.PostContent{}, domain.ErrRenderOverflow
		}

		if count > overflowEntriesCap {
			count = overflowEntriesCap
		} else {
			count = count / 2
			if count < 1 {
				count = 1
			}
		}

		logger.Warn("Post too long, rendering fewer vacancies", port.Fields{
			"length":  utf8.RuneCountInString(text),
			"entries": count,
		})
		text = uc.render(selection[:count], cityName)
	}

	return domain.PostContent{Text: text, ButtonURL: uc.referralLink}, nil
}

func (uc *RenderPostUseCase) render(vacancies []domain.Vacancy, cityName string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<b>🚀 Новые вакансии курьеров в г. %s</b>\n\n", html.EscapeString(cityName)))

	if uc.referralLink != "" {
		b.WriteString("\n💡 <b>Хочешь работать на себя?</b>\n")
		b.WriteString("✅ Работай на себя — сам выбираешь график\n")
		b.WriteString("✅ Заработок от 5000₽ в день с первого дня\n")
		b.WriteString("✅ Выплаты ежедневно на карту\n")
		b.WriteString("✅ Работаешь в своём районе — без долгих поездок\n")
		b.WriteString("✅ Бонусы для новичков\n\n")
		b.WriteString(fmt.Sprintf("🚀 <a href='%s'><b>Начать работать на себя →</b></a>\n", uc.referralLink))
		b.WriteString("<i>Начни зарабатывать уже завтра!</i>\n\n")
	}

	for i, v := range vacancies {
		b.WriteString(fmt.Sprintf("<b>%d. <a href='%s'>%s</a></b>\n\n",
			i+1, v.ExternalURL, html.EscapeString(v.Title)))

		if employer := strings.TrimSpace(v.Employer); employer != "" {
			b.WriteString(fmt.Sprintf("🏢 %s\n", html.EscapeString(employer)))
		}

		b.WriteString(fmt.Sprintf("💰 %s\n", uc.formatSalary(v)))

		if v.ScheduleName != nil && strings.TrimSpace(*v.ScheduleName) != "" {
			b.WriteString(fmt.Sprintf("🕒 %s\n", html.EscapeString(*v.ScheduleName)))
		}
		if v.ExperienceName != nil && strings.TrimSpace(*v.ExperienceName) != "" {
			b.WriteString(fmt.Sprintf("📊 %s\n", html.EscapeString(*v.ExperienceName)))
		}

		// Разделитель между вакансиями, после последней не нужен
		if i < len(vacancies)-1 {
			b.WriteString("\n---\n\n")
		}
	}

	return b.String()
}

// formatSalary собирает строку зарплаты с периодом и частотой выплат
func (uc *RenderPostUseCase) formatSalary(v domain.Vacancy) string {
	from := v.SalaryFromNet
	to := v.SalaryToNet

	var display string
	switch {
	case from != nil && to != nil && *from == *to:
		display = fmt.Sprintf("%s ₽", uc.formatNumber(*from))
	case from != nil && to != nil:
		display = fmt.Sprintf("от %s до %s ₽", uc.formatNumber(*from), uc.formatNumber(*to))
	case from != nil:
		display = fmt.Sprintf("от %s ₽", uc.formatNumber(*from))
	case to != nil:
		display = fmt.Sprintf("%s ₽", uc.formatNumber(*to))
	default:
		return "не указана"
	}

	if v.SalaryPeriodName != nil && *v.SalaryPeriodName != "" {
		display += " (" + *v.SalaryPeriodName
		// Пустая частота выплат показывается как "не указано",
		// отсутствующее поле не показывается вовсе
		if v.SalaryFrequencyName != nil {
			switch frequency := strings.TrimSpace(*v.SalaryFrequencyName); {
			case frequency == "":
				display += ", не указано"
			case strings.ToLower(frequency) != "не указано":
				display += ", " + frequency
			}
		}
		display += ")"
	}

	return display
}

// formatNumber разделяет тысячи пробелами: 90000 -> "90 000"
func (uc *RenderPostUseCase) formatNumber(n int64) string {
	grouped := uc.printer.Sprintf("%d", n)
	// Печатник русской локали вставляет неразрывные пробелы
	return strings.ReplaceAll(grouped, "\u00a0", " ")
}

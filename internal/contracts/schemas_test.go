package contracts

import (
	"strings"
	"testing"
)

const validScrapedVacancyEvent = `{
	"citySlug": "msk",
	"vacancies": [
		{
			"source": "hh",
			"externalId": "12345",
			"citySlug": "msk",
			"city": "Москва",
			"channelId": "@courier_jobs_msk",
			"title": "Курьер",
			"employer": "Доставка Плюс",
			"currency": "RUR",
			"externalUrl": "https://hh.ru/vacancy/12345",
			"publishedAt": "2026-03-10T14:30:00+03:00"
		}
	]
}`

func TestValidateEvent_ValidPayload(t *testing.T) {
	err := ValidateEvent("ScrapedVacancyEvent", "1.0.0", []byte(validScrapedVacancyEvent))
	if err != nil {
		t.Errorf("ValidateEvent() error = %v, want nil", err)
	}
}

func TestValidateEvent_UnknownEventType(t *testing.T) {
	err := ValidateEvent("UnknownEvent", "1.0.0", []byte(`{}`))
	if err == nil {
		t.Fatal("ValidateEvent() error = nil, want schema-not-found error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want mention of missing schema", err)
	}
}

func TestValidateEvent_MissingRequiredField(t *testing.T) {
	body := `{"vacancies": []}`
	if err := ValidateEvent("ScrapedVacancyEvent", "1.0.0", []byte(body)); err == nil {
		t.Error("ValidateEvent() error = nil for payload without citySlug, want validation error")
	}
}

func TestValidateEvent_InvalidJSON(t *testing.T) {
	if err := ValidateEvent("ScrapedVacancyEvent", "1.0.0", []byte("{not json")); err == nil {
		t.Error("ValidateEvent() error = nil for broken JSON, want error")
	}
}

func TestGenerateKeyFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{path: "events/scraped-vacancy/v1.json", want: "ScrapedVacancyEvent/1.0.0"},
		{path: "events/some-other-thing/v2.json", want: "SomeOtherThingEvent/2.0.0"},
		{path: "events/flat.json", want: ""},
	}

	for _, tc := range cases {
		if got := generateKeyFromPath(tc.path); got != tc.want {
			t.Errorf("generateKeyFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

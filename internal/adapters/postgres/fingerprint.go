package postgres

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mmcloughlin/geohash"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/domain"
)

const geohashPrecision = 5

// buildFingerprintPayload собирает стабильную строку из ключевых полей
// вакансии. Одна и та же вакансия, перевыложенная работодателем под
// новым external_id, дает тот же отпечаток.
func buildFingerprintPayload(v domain.Vacancy) string {
	parts := []string{
		normalizePart(v.Employer),
		normalizePart(truncateTitle(v.Title, 60)),
	}

	// Координаты округляются геохэшем, чтобы мелкие сдвиги адреса
	// не меняли отпечаток
	if v.Latitude != nil && v.Longitude != nil {
		geohsh := geohash.Encode(*v.Latitude, *v.Longitude)
		parts = append(parts, geohsh[:geohashPrecision])
	} else {
		parts = append(parts, "null")
	}

	return strings.Join(parts, "|")
}

func normalizePart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "null"
	}
	return s
}

func truncateTitle(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// CalculateFingerprint вычисляет SHA256-отпечаток вакансии
func CalculateFingerprint(v domain.Vacancy) string {
	h := sha256.New()
	h.Write([]byte(buildFingerprintPayload(v)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

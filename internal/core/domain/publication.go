package domain

import "errors"

// CityRunState - состояние обработки одного города внутри запуска публикации
type CityRunState string

const (
	CityStatePending  CityRunState = "PENDING"
	CityStateFetched  CityRunState = "FETCHED"
	CityStateSelected CityRunState = "SELECTED"
	CityStateRendered CityRunState = "RENDERED"
	CityStateSent     CityRunState = "SENT"
	CityStateMarked   CityRunState = "MARKED"
	CityStateSkipped  CityRunState = "SKIPPED"
	CityStateFailed   CityRunState = "FAILED"
)

// PostContent - готовый к отправке пост канала
type PostContent struct {
	Text      string
	ButtonURL string // ссылка для inline-кнопки, пустая строка = без кнопки
}

// CityResult - итог обработки одного города
type CityResult struct {
	CitySlug       string
	State          CityRunState
	PublishedCount int
	Err            error
}

// RunReport - агрегированный итог запуска по всем городам
type RunReport struct {
	Results        map[string]CityResult
	TotalPublished int
	Success        bool
}

// ErrRenderOverflow возвращается, когда даже одна вакансия не помещается
// в лимит длины сообщения.
var ErrRenderOverflow = errors.New("rendered post exceeds message size limit even with a single entry")

// ErrRunLockBusy возвращается, когда блокировка запуска уже занята другим процессом
var ErrRunLockBusy = errors.New("publication run lock is held by another process")

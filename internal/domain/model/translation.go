package model

import (
	"strings"
	"time"
)

// Translation — запись перевода UI-строки публичного сайта.
// Композитный ключ: (Language, Section, Key).
type Translation struct {
	Language  string    `json:"language"`
	Section   string    `json:"section"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Префиксы ключей custom FAQ — конвенция хранения пар вопрос/ответ
// внутри generic key-value хранилища переводов.
const (
	faqQuestionPrefix = "customFaqQ_"
	faqAnswerPrefix   = "customFaqA_"
)

// FAQEntry — пара вопрос/ответ custom FAQ как полноценная сущность
// (восстанавливается из конвенции customFaqQ_<id>/customFaqA_<id>).
type FAQEntry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ParseFAQEntries восстанавливает пары FAQ из списка переводов.
// Вопрос без парного ответа отбрасывается. Порядок — по порядку
// появления вопросов во входном списке.
func ParseFAQEntries(translations []Translation) []FAQEntry {
	answers := make(map[string]string)
	for _, tr := range translations {
		if id, ok := strings.CutPrefix(tr.Key, faqAnswerPrefix); ok {
			answers[id] = tr.Value
		}
	}

	var entries []FAQEntry
	for _, tr := range translations {
		id, ok := strings.CutPrefix(tr.Key, faqQuestionPrefix)
		if !ok {
			continue
		}
		answer, ok := answers[id]
		if !ok {
			// Осиротевший вопрос — молча пропускаем
			continue
		}
		entries = append(entries, FAQEntry{
			ID:       id,
			Question: tr.Value,
			Answer:   answer,
		})
	}
	return entries
}

// FAQQuestionKey / FAQAnswerKey строят ключи хранения по конвенции.
func FAQQuestionKey(id string) string { return faqQuestionPrefix + id }
func FAQAnswerKey(id string) string   { return faqAnswerPrefix + id }

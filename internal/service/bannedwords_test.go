package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// fakeBannedWordBackend — подмена backend API для тестов.
type fakeBannedWordBackend struct {
	words    []model.BannedWord
	nextID   int64
	addCalls atomic.Int64
}

func (f *fakeBannedWordBackend) ListBannedWords(_ context.Context) ([]model.BannedWord, error) {
	return f.words, nil
}

func (f *fakeBannedWordBackend) AddBannedWord(_ context.Context, word, reason string) (*model.BannedWord, error) {
	f.addCalls.Add(1)
	f.nextID++
	w := model.BannedWord{ID: f.nextID, Word: word, Reason: reason}
	f.words = append(f.words, w)
	return &w, nil
}

func (f *fakeBannedWordBackend) DeleteBannedWord(_ context.Context, id int64) error {
	for i, w := range f.words {
		if w.ID == id {
			f.words = append(f.words[:i], f.words[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestBannedWordAdd(t *testing.T) {
	fb := &fakeBannedWordBackend{}
	svc := NewBannedWordService(fb, nil, testLogger())

	w, err := svc.Add(context.Background(), "  spam  ", "реклама", "admin@haqnow.com")
	if err != nil {
		t.Fatalf("Add() вернул ошибку: %v", err)
	}
	if w.Word != "spam" {
		t.Errorf("Word = %q, пробелы должны быть убраны", w.Word)
	}
}

func TestBannedWordAdd_DuplicateCaseInsensitive(t *testing.T) {
	fb := &fakeBannedWordBackend{
		words: []model.BannedWord{{ID: 1, Word: "Spam"}},
	}
	svc := NewBannedWordService(fb, nil, testLogger())

	_, err := svc.Add(context.Background(), "spam", "", "admin@haqnow.com")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Add() дубликата = %v, ожидается ErrConflict", err)
	}
	if n := fb.addCalls.Load(); n != 0 {
		t.Errorf("backend вызван %d раз для дубликата, ожидается 0", n)
	}
}

func TestBannedWordAdd_Empty(t *testing.T) {
	fb := &fakeBannedWordBackend{}
	svc := NewBannedWordService(fb, nil, testLogger())

	_, err := svc.Add(context.Background(), "   ", "", "admin@haqnow.com")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Add() пустого слова = %v, ожидается ErrValidation", err)
	}
}

func TestBannedWordDelete(t *testing.T) {
	fb := &fakeBannedWordBackend{
		words: []model.BannedWord{{ID: 1, Word: "spam"}},
	}
	svc := NewBannedWordService(fb, nil, testLogger())

	if err := svc.Delete(context.Background(), 1, "admin@haqnow.com"); err != nil {
		t.Fatalf("Delete() вернул ошибку: %v", err)
	}

	words, _ := svc.List(context.Background())
	if len(words) != 0 {
		t.Errorf("после удаления осталось %d слов, ожидается 0", len(words))
	}
}

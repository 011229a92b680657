// Package event holds the mutable event record (date and ticket price) shared by
// every handler.
package event

import (
	"sync"

	"ticket-bot/internal/models"
)

type Settings struct {
	mu  sync.RWMutex
	cur models.Event
}

func New(e models.Event) *Settings {
	return &Settings{cur: e}
}

func (s *Settings) Get() models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Set overwrites both fields. Previous values are not kept.
func (s *Settings) Set(date string, price int) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = models.Event{Date: date, Price: price}
	return s.cur
}

package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"ticket-bot/internal/models"
)

func TestSettings_SetOverwrites(t *testing.T) {
	s := New(models.Event{Date: "5 апреля", Price: 2300})
	assert.Equal(t, 2300, s.Get().Price)

	got := s.Set("12 мая", 1800)
	assert.Equal(t, models.Event{Date: "12 мая", Price: 1800}, got)
	assert.Equal(t, got, s.Get())
}

func TestSettings_ConcurrentAccess(t *testing.T) {
	s := New(models.Event{Date: "d", Price: 1})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Set("d", i)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Get()
		}()
	}
	wg.Wait()

	assert.Equal(t, "d", s.Get().Date)
}

package bot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversations(t *testing.T) {
	c := NewConversations()
	assert.Nil(t, c.Get(1))

	f := &companyCreationForm{}
	c.Set(1, f)
	assert.Same(t, f, c.Get(1))
	assert.Nil(t, c.Get(2))

	c.Clear(1)
	c.Clear(1)
	assert.Nil(t, c.Get(1))
	assert.Zero(t, c.Len())
}

func TestConversations_ConcurrentUsers(t *testing.T) {
	c := NewConversations()

	var wg sync.WaitGroup
	for id := int64(1); id <= 50; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			f := newMonthlyEntryForm()
			f.year = int(id)
			c.Set(id, f)
			_ = c.Get(id)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
	for id := int64(1); id <= 50; id++ {
		f, ok := c.Get(id).(*monthlyEntryForm)
		if assert.True(t, ok) {
			assert.Equal(t, int(id), f.year)
		}
	}
}

package bot

import "sync"

// Conversations keeps the active form of every user, keyed by telegram user
// id. A user with no entry is at the root menu.
type Conversations struct {
	mu    sync.Mutex
	forms map[int64]form
}

func NewConversations() *Conversations {
	return &Conversations{forms: make(map[int64]form)}
}

func (c *Conversations) Get(userID int64) form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forms[userID]
}

func (c *Conversations) Set(userID int64, f form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forms[userID] = f
}

func (c *Conversations) Clear(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.forms, userID)
}

func (c *Conversations) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.forms)
}

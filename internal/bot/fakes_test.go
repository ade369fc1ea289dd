package bot

import (
	"context"
	"sort"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/repo"
)

// memStore is an in-memory stand-in for the three postgres repositories,
// enforcing the same uniqueness rules.
type memStore struct {
	mu        sync.Mutex
	users     map[int64]domain.User
	companies map[int64]domain.Company
	monthly   map[monthKey]domain.MonthlyData
	nextID    int64

	userErr error
}

type monthKey struct {
	companyID int64
	year      int
	month     domain.Month
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[int64]domain.User{},
		companies: map[int64]domain.Company{},
		monthly:   map[monthKey]domain.MonthlyData{},
	}
}

func (s *memStore) FindOrCreate(_ context.Context, id int64, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userErr != nil {
		return domain.User{}, s.userErr
	}
	u, ok := s.users[id]
	if !ok {
		u = domain.User{ID: id, Username: username}
		s.users[id] = u
	}
	for _, c := range s.companies {
		if c.UserID == id {
			u.Company = &c
		}
	}
	return u, nil
}

func (s *memStore) Create(_ context.Context, ownerID int64, name string) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.Name == name {
			return domain.Company{}, repo.ErrCompanyNameTaken
		}
		if c.UserID == ownerID {
			return domain.Company{}, repo.ErrCompanyExists
		}
	}
	s.nextID++
	c := domain.Company{ID: s.nextID, Name: name, UserID: ownerID}
	s.companies[c.ID] = c
	return c, nil
}

func (s *memStore) Delete(_ context.Context, c domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[c.ID]; !ok {
		return repo.ErrNotFound
	}
	delete(s.companies, c.ID)
	for k := range s.monthly {
		if k.companyID == c.ID {
			delete(s.monthly, k)
		}
	}
	return nil
}

func (s *memStore) ByName(_ context.Context, name string) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.Company{}, repo.ErrNotFound
}

func (s *memStore) NamesWithData(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for k := range s.monthly {
		name := s.companies[k.companyID].Name
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *memStore) Upsert(_ context.Context, d domain.MonthlyData) (domain.MonthlyData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := monthKey{d.CompanyID, d.Year, d.Month}
	if old, ok := s.monthly[k]; ok {
		d.ID = old.ID
	} else {
		s.nextID++
		d.ID = s.nextID
	}
	s.monthly[k] = d
	return d, nil
}

func (s *memStore) Years(_ context.Context, companyID int64) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[int]bool{}
	var out []int
	for k := range s.monthly {
		if k.companyID == companyID && !seen[k.year] {
			seen[k.year] = true
			out = append(out, k.year)
		}
	}
	sort.Ints(out)
	return out, nil
}

func (s *memStore) Series(_ context.Context, companyID int64, field domain.Field, year int) ([]domain.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Point
	for _, m := range domain.Months {
		d, ok := s.monthly[monthKey{companyID, year, m}]
		if !ok {
			continue
		}
		v, err := field.Value(d)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Point{Value: v, Month: m})
	}
	return out, nil
}

func (s *memStore) rows() []domain.MonthlyData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MonthlyData, 0, len(s.monthly))
	for _, d := range s.monthly {
		out = append(out, d)
	}
	return out
}

func (s *memStore) companiesNamed(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.companies {
		if c.Name == name {
			n++
		}
	}
	return n
}

// racyCompanies hides existing names from the lookup, as if another user
// created the company between the availability check and the insert.
type racyCompanies struct{ *memStore }

func (racyCompanies) ByName(context.Context, string) (domain.Company, error) {
	return domain.Company{}, repo.ErrNotFound
}

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeSender) lastMessage(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if m, ok := f.sent[i].(tgbotapi.MessageConfig); ok {
			return m
		}
	}
	t.Fatal("no message sent")
	return tgbotapi.MessageConfig{}
}

func (f *fakeSender) photos() []tgbotapi.PhotoConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.PhotoConfig
	for _, c := range f.sent {
		if p, ok := c.(tgbotapi.PhotoConfig); ok {
			out = append(out, p)
		}
	}
	return out
}

type renderCall struct {
	points []domain.Point
	field  domain.Field
	year   int
}

type fakeRenderer struct {
	calls []renderCall
	panic bool
}

func (r *fakeRenderer) Render(points []domain.Point, field domain.Field, year int) ([]byte, error) {
	if r.panic {
		panic("renderer exploded")
	}
	r.calls = append(r.calls, renderCall{points, field, year})
	return []byte("\x89PNG"), nil
}

type harness struct {
	h      *Handler
	api    *fakeSender
	store  *memStore
	charts *fakeRenderer
	convs  *Conversations
}

func newHarness() *harness {
	hs := &harness{
		api:    &fakeSender{},
		store:  newMemStore(),
		charts: &fakeRenderer{},
		convs:  NewConversations(),
	}
	hs.h = NewHandler(hs.api, zerolog.Nop(), hs.convs, hs.charts, hs.store, hs.store, hs.store)
	return hs
}

func textUpdate(userID int64, firstName, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			From: &tgbotapi.User{ID: userID, FirstName: firstName},
			Chat: &tgbotapi.Chat{ID: userID, Type: "private"},
		},
	}
}

func (hs *harness) say(userID int64, name string, texts ...string) {
	for _, text := range texts {
		hs.h.HandleUpdate(context.Background(), textUpdate(userID, name, text))
	}
}

func keyboardTexts(t *testing.T, markup any) []string {
	t.Helper()
	kb, ok := markup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("expected reply keyboard, got %T", markup)
	}
	var out []string
	for _, row := range kb.Keyboard {
		for _, b := range row {
			out = append(out, b.Text)
		}
	}
	return out
}

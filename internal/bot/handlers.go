package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

// Sender is the part of *tgbotapi.BotAPI the handler needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type UserStore interface {
	FindOrCreate(ctx context.Context, telegramID int64, username string) (domain.User, error)
}

type CompanyStore interface {
	Create(ctx context.Context, ownerID int64, name string) (domain.Company, error)
	Delete(ctx context.Context, c domain.Company) error
	ByName(ctx context.Context, name string) (domain.Company, error)
	NamesWithData(ctx context.Context) ([]string, error)
}

type MonthlyStore interface {
	Upsert(ctx context.Context, d domain.MonthlyData) (domain.MonthlyData, error)
	Years(ctx context.Context, companyID int64) ([]int, error)
	Series(ctx context.Context, companyID int64, field domain.Field, year int) ([]domain.Point, error)
}

type ChartRenderer interface {
	Render(points []domain.Point, field domain.Field, year int) ([]byte, error)
}

type Handler struct {
	api    Sender
	log    zerolog.Logger
	convs  *Conversations
	charts ChartRenderer

	users     UserStore
	companies CompanyStore
	monthly   MonthlyStore
}

func NewHandler(api Sender, log zerolog.Logger, convs *Conversations, charts ChartRenderer, u UserStore, c CompanyStore, m MonthlyStore) *Handler {
	return &Handler{api: api, log: log, convs: convs, charts: charts, users: u, companies: c, monthly: m}
}

// request is one incoming text message with its resolved sender.
type request struct {
	chatID int64
	user   domain.User
	text   string
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}
	// private chats only
	if !msg.Chat.IsPrivate() {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	log := h.log.With().
		Str("trace_id", uuid.NewString()).
		Int64("user_id", msg.From.ID).
		Int64("chat_id", msg.Chat.ID).
		Logger()
	ctx = log.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("handler panicked")
			h.reply(ctx, msg.Chat.ID, "There was an error processing your request.", nil)
		}
	}()

	user, err := h.users.FindOrCreate(ctx, msg.From.ID, displayName(msg.From))
	if err != nil {
		log.Error().Err(err).Msg("resolve user")
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf("There was an error processing your request: %v", err), nil)
		return
	}

	req := request{chatID: msg.Chat.ID, user: user, text: text}
	if err := h.dispatch(ctx, req); err != nil {
		log.Error().Err(err).Str("text", text).Msg("handle message")
		h.reply(ctx, req.chatID, fmt.Sprintf("There was an error processing your request: %v", err), nil)
	}
}

func (h *Handler) dispatch(ctx context.Context, req request) error {
	// available from any step
	switch {
	case strings.HasPrefix(req.text, cmdStart):
		h.convs.Clear(req.user.ID)
		return h.handleStart(ctx, req)
	case req.text == cmdExit:
		h.convs.Clear(req.user.ID)
		h.reply(ctx, req.chatID, "You have exited to the main menu.", startKeyboard())
		return nil
	}

	if f := h.convs.Get(req.user.ID); f != nil {
		zerolog.Ctx(ctx).Debug().Str("form", f.name()).Str("step", f.stepName()).Msg("form step")
		return h.handleStep(ctx, req, f)
	}

	switch req.text {
	case cmdMyCompany:
		return h.handleMyCompany(ctx, req)
	case cmdListCompanies:
		return h.handleListCompanies(ctx, req)
	case cmdCreateCompany:
		return h.handleCreateCompany(ctx, req)
	case cmdDeleteCompany:
		return h.handleDeleteCompany(ctx, req)
	case cmdAddInformation:
		return h.handleAddInformation(ctx, req)
	case cmdViewCompany:
		return h.handleViewCompany(ctx, req)
	}

	h.reply(ctx, req.chatID, "I don't know that command. Choose an option:", startKeyboard())
	return nil
}

func (h *Handler) handleStep(ctx context.Context, req request, f form) error {
	switch f := f.(type) {
	case *companyCreationForm:
		return h.stepCompanyName(ctx, req)
	case *monthlyEntryForm:
		return h.stepMonthlyEntry(ctx, req, f)
	case *viewOwnForm:
		return h.stepViewOwn(ctx, req, f)
	case *retrieveForm:
		return h.stepRetrieve(ctx, req, f)
	}
	return fmt.Errorf("unknown form %T", f)
}

func (h *Handler) handleStart(ctx context.Context, req request) error {
	h.reply(ctx, req.chatID, "Welcome! You can register your company and track its monthly figures.", nil)
	h.reply(ctx, req.chatID, "Choose an option:", startKeyboard())
	return nil
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := h.api.Send(msg); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("send message")
	}
}

func (h *Handler) sendPhoto(ctx context.Context, chatID int64, png []byte, caption string, markup any) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "diagram.png", Bytes: png})
	photo.Caption = caption
	if markup != nil {
		photo.ReplyMarkup = markup
	}
	if _, err := h.api.Send(photo); err != nil {
		return fmt.Errorf("send diagram: %w", err)
	}
	return nil
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
	if name == "" {
		name = u.UserName
	}
	if name == "" {
		name = fmt.Sprintf("user_%d", u.ID)
	}
	return name
}

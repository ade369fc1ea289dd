package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/repo"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/validation"
)

var (
	amounts = message.NewPrinter(language.English)
	upper   = cases.Upper(language.English)
)

func (h *Handler) handleAddInformation(ctx context.Context, req request) error {
	if !req.user.HasCompany() {
		h.reply(ctx, req.chatID, "You don't have a company to add information to.", nil)
		return nil
	}
	h.convs.Set(req.user.ID, newMonthlyEntryForm())
	h.reply(ctx, req.chatID, "Please enter the year for the data:", removeKeyboard())
	return nil
}

func (h *Handler) stepMonthlyEntry(ctx context.Context, req request, f *monthlyEntryForm) error {
	switch f.step {
	case entryYear:
		year, ok := h.readYear(ctx, req)
		if !ok {
			return nil
		}
		f.year = year
		f.step = entryMonth
		h.reply(ctx, req.chatID, "Please select the month:", monthsKeyboard())
		return nil

	case entryMonth:
		if ok, msg := validation.Month(req.text); !ok {
			h.reply(ctx, req.chatID, msg, nil)
			return nil
		}
		f.month, _ = domain.ParseMonth(req.text)
		f.step = entryIncome
		h.reply(ctx, req.chatID, figurePrompt(domain.FieldIncome), removeKeyboard())
		return nil
	}

	field, ok := f.step.field()
	if !ok {
		return fmt.Errorf("monthly entry: unexpected step %d", f.step)
	}
	value, ok := h.readFigure(ctx, req, field)
	if !ok {
		return nil
	}
	f.figures[field] = value

	if f.step == entryKPN {
		return h.finishMonthlyEntry(ctx, req, f)
	}
	f.step++
	next, _ := f.step.field()
	h.reply(ctx, req.chatID, figurePrompt(next), nil)
	return nil
}

func (h *Handler) finishMonthlyEntry(ctx context.Context, req request, f *monthlyEntryForm) error {
	if !req.user.HasCompany() {
		h.convs.Clear(req.user.ID)
		h.reply(ctx, req.chatID, "You don't have a company to add information to.", startKeyboard())
		return nil
	}
	rec, err := f.record(req.user.Company.ID)
	if err != nil {
		h.convs.Clear(req.user.ID)
		return err
	}

	saved, err := h.monthly.Upsert(ctx, rec)
	if err != nil {
		return err
	}
	h.convs.Clear(req.user.ID)

	zerolog.Ctx(ctx).Info().
		Int64("company_id", saved.CompanyID).
		Int("year", saved.Year).
		Str("month", saved.Month.String()).
		Msg("monthly data saved")

	text := fmt.Sprintf("Monthly data for %s %d has been added.\n\n", upper.String(saved.Month.String()), saved.Year) +
		amounts.Sprintf("Income: %d\nExpenses: %d\nProfit: %d\nKPN: %d", saved.Income, saved.Expenses, saved.Profit, saved.KPN)
	h.reply(ctx, req.chatID, text, companyKeyboard(true))
	return nil
}

func (h *Handler) handleViewCompany(ctx context.Context, req request) error {
	if !req.user.HasCompany() {
		h.reply(ctx, req.chatID, "You don't have a company.", nil)
		return nil
	}
	years, err := h.monthly.Years(ctx, req.user.Company.ID)
	if err != nil {
		return err
	}
	if len(years) == 0 {
		h.reply(ctx, req.chatID, "No data available for your company.", nil)
		return nil
	}
	h.convs.Set(req.user.ID, &viewOwnForm{step: chartYear})
	h.reply(ctx, req.chatID, "Please select a year:", yearsKeyboard(years))
	return nil
}

func (h *Handler) stepViewOwn(ctx context.Context, req request, f *viewOwnForm) error {
	if f.step == chartYear {
		year, ok := h.readYear(ctx, req)
		if !ok {
			return nil
		}
		f.year = year
		f.step = chartField
		h.reply(ctx, req.chatID, "Please select the field you want to view:", fieldsKeyboard())
		return nil
	}

	field, ok := h.readField(ctx, req)
	if !ok {
		return nil
	}
	if !req.user.HasCompany() {
		h.convs.Clear(req.user.ID)
		h.reply(ctx, req.chatID, "You don't have a company.", startKeyboard())
		return nil
	}
	h.convs.Clear(req.user.ID)
	return h.sendChart(ctx, req, *req.user.Company, field, f.year, companyKeyboard(true))
}

func (h *Handler) stepRetrieve(ctx context.Context, req request, f *retrieveForm) error {
	switch f.step {
	case retrieveName:
		c, err := h.companies.ByName(ctx, req.text)
		if errors.Is(err, repo.ErrNotFound) {
			h.convs.Clear(req.user.ID)
			h.reply(ctx, req.chatID, fmt.Sprintf("Company '%s' not found.", req.text), startKeyboard())
			return nil
		}
		if err != nil {
			return err
		}
		years, err := h.monthly.Years(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(years) == 0 {
			h.convs.Clear(req.user.ID)
			h.reply(ctx, req.chatID, "No data available for this company.", startKeyboard())
			return nil
		}
		f.company = c
		f.step = retrieveYear
		h.reply(ctx, req.chatID, "Please select a year:", yearsKeyboard(years))
		return nil

	case retrieveYear:
		year, ok := h.readYear(ctx, req)
		if !ok {
			return nil
		}
		f.year = year
		f.step = retrieveField
		h.reply(ctx, req.chatID, "Please select the field you want to view:", fieldsKeyboard())
		return nil
	}

	field, ok := h.readField(ctx, req)
	if !ok {
		return nil
	}
	h.convs.Clear(req.user.ID)
	return h.sendChart(ctx, req, f.company, field, f.year, startKeyboard())
}

func (h *Handler) sendChart(ctx context.Context, req request, c domain.Company, field domain.Field, year int, markup any) error {
	points, err := h.monthly.Series(ctx, c.ID, field, year)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		h.reply(ctx, req.chatID, "No data available for the selected field.", markup)
		return nil
	}

	png, err := h.charts.Render(points, field, year)
	if err != nil {
		return fmt.Errorf("generate diagram: %w", err)
	}
	caption := fmt.Sprintf("%s: %s for %d", c.Name, strings.ToUpper(field.String()), year)
	return h.sendPhoto(ctx, req.chatID, png, caption, markup)
}

func (h *Handler) readYear(ctx context.Context, req request) (int, bool) {
	v, err := validation.ParseInt(req.text)
	if err != nil {
		h.reply(ctx, req.chatID, "Please enter a valid year.", nil)
		return 0, false
	}
	if ok, msg := validation.Year(int(v)); !ok {
		h.reply(ctx, req.chatID, msg, nil)
		return 0, false
	}
	return int(v), true
}

func (h *Handler) readFigure(ctx context.Context, req request, field domain.Field) (int64, bool) {
	v, err := validation.ParseInt(req.text)
	if err != nil {
		h.reply(ctx, req.chatID, fmt.Sprintf("Please enter a valid integer for %s.", figureName(field)), nil)
		return 0, false
	}
	if ok, msg := validation.NonNegative(v, figureName(field)); !ok {
		h.reply(ctx, req.chatID, msg, nil)
		return 0, false
	}
	return v, true
}

func (h *Handler) readField(ctx context.Context, req request) (domain.Field, bool) {
	field, err := domain.ParseField(req.text)
	if err != nil {
		h.reply(ctx, req.chatID, "Please select one of the fields: Income, Expenses, Profit or KPN.", fieldsKeyboard())
		return 0, false
	}
	return field, true
}

func figurePrompt(f domain.Field) string {
	if f == domain.FieldKPN {
		return "Please enter the company's KPN (tax) for this month:"
	}
	return fmt.Sprintf("Please enter the company's %s for this month:", f)
}

func figureName(f domain.Field) string {
	if f == domain.FieldKPN {
		return "KPN"
	}
	return f.String()
}

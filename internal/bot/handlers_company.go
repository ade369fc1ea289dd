package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/repo"
	"github.com/AferDust/finances-datagram-telegram-bot/internal/validation"
)

func (h *Handler) handleMyCompany(ctx context.Context, req request) error {
	if req.user.HasCompany() {
		h.reply(ctx, req.chatID, "Choose an option for your company:", companyKeyboard(true))
		return nil
	}
	h.reply(ctx, req.chatID, "You don't have a company yet. You can create one:", companyKeyboard(false))
	return nil
}

func (h *Handler) handleCreateCompany(ctx context.Context, req request) error {
	if req.user.HasCompany() {
		h.reply(ctx, req.chatID, "You already have company!", nil)
		return nil
	}
	h.convs.Set(req.user.ID, &companyCreationForm{})
	h.reply(ctx, req.chatID, "Please enter the name of your new company:", removeKeyboard())
	return nil
}

func (h *Handler) stepCompanyName(ctx context.Context, req request) error {
	name := req.text

	if ok, msg := validation.CompanyName(name); !ok {
		h.reply(ctx, req.chatID, msg, nil)
		return nil
	}
	ok, msg, err := validation.CompanyNameAvailable(ctx, h.companies.ByName, name)
	if err != nil {
		return err
	}
	if !ok {
		h.reply(ctx, req.chatID, msg, nil)
		return nil
	}

	c, err := h.companies.Create(ctx, req.user.ID, name)
	switch {
	case errors.Is(err, repo.ErrCompanyNameTaken):
		// lost a race with another user after the availability check
		h.reply(ctx, req.chatID, validation.MsgNameTaken, nil)
		return nil
	case errors.Is(err, repo.ErrCompanyExists):
		h.convs.Clear(req.user.ID)
		h.reply(ctx, req.chatID, "You already have company!", companyKeyboard(true))
		return nil
	case err != nil:
		return err
	}

	h.convs.Clear(req.user.ID)
	zerolog.Ctx(ctx).Info().Int64("company_id", c.ID).Str("company", c.Name).Msg("company created")
	h.reply(ctx, req.chatID, fmt.Sprintf("Company '%s' has been created!", c.Name), companyKeyboard(true))
	return nil
}

func (h *Handler) handleDeleteCompany(ctx context.Context, req request) error {
	if !req.user.HasCompany() {
		h.reply(ctx, req.chatID, "You don't have a company to delete.", companyKeyboard(false))
		return nil
	}
	c := *req.user.Company
	err := h.companies.Delete(ctx, c)
	if errors.Is(err, repo.ErrNotFound) {
		h.reply(ctx, req.chatID, "You don't have a company to delete.", companyKeyboard(false))
		return nil
	}
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("company_id", c.ID).Str("company", c.Name).Msg("company deleted")
	h.reply(ctx, req.chatID, fmt.Sprintf("Company '%s' has been deleted.", c.Name), companyKeyboard(false))
	return nil
}

func (h *Handler) handleListCompanies(ctx context.Context, req request) error {
	names, err := h.companies.NamesWithData(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		h.reply(ctx, req.chatID, "No companies available.", nil)
		return nil
	}
	h.convs.Set(req.user.ID, &retrieveForm{step: retrieveName})
	h.reply(ctx, req.chatID, "Please select a company:", listKeyboard(names))
	return nil
}

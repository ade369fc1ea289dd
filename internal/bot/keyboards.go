package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

// Menu commands, matched literally against the message text.
const (
	cmdStart          = "/start"
	cmdMyCompany      = "My Company"
	cmdListCompanies  = "List of Companies"
	cmdCreateCompany  = "Create Company"
	cmdAddInformation = "Add Information"
	cmdViewCompany    = "View Company"
	cmdDeleteCompany  = "Delete Company"
	cmdExit           = "Exit"
)

func startKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(cmdMyCompany),
			tgbotapi.NewKeyboardButton(cmdListCompanies),
		),
	)
}

func companyKeyboard(hasCompany bool) tgbotapi.ReplyKeyboardMarkup {
	if !hasCompany {
		return tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cmdCreateCompany)),
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cmdExit)),
		)
	}
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cmdViewCompany)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cmdAddInformation)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cmdDeleteCompany)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cmdExit)),
	)
}

// listKeyboard puts one value per row and Exit last.
func listKeyboard(values []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(values)+1)
	for _, v := range values {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(v)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cmdExit)))
	return tgbotapi.NewReplyKeyboard(rows...)
}

func monthsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return listKeyboard(domain.MonthNames())
}

func yearsKeyboard(years []int) tgbotapi.ReplyKeyboardMarkup {
	values := make([]string, len(years))
	for i, y := range years {
		values[i] = strconv.Itoa(y)
	}
	return listKeyboard(values)
}

func fieldsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.FieldIncome.Label()),
			tgbotapi.NewKeyboardButton(domain.FieldExpenses.Label()),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.FieldProfit.Label()),
			tgbotapi.NewKeyboardButton(domain.FieldKPN.Label()),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cmdExit)),
	)
}

func removeKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(false)
}

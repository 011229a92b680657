package tgbot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ticket-bot/internal/flow"
	"ticket-bot/internal/models"
)

// Callback data. User callbacks start with "u:", admin callbacks with "a:".
const (
	cbConfirmYes = "u:confirm_yes"
	cbConfirmNo  = "u:confirm_no"
	cbChange     = "u:change:"
	cbAgeYes     = "u:age_yes"
	cbAgeNo      = "u:age_no"

	cbPage    = "a:page:"
	cbConfirm = "a:confirm:"
	cbExport  = "a:export"
)

// Fields the buyer may go back to from the review screen.
var changeTargets = map[string]flow.Step{
	"full_name":   flow.StepFullName,
	"institution": flow.StepInstitution,
	"promo_code":  flow.StepPromo,
}

func mainMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBuy)),
	)
}

func adminMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnChangeEvent),
			tgbotapi.NewKeyboardButton(btnGetTable),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirmOrder),
			tgbotapi.NewKeyboardButton(btnRevert),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDeny),
			tgbotapi.NewKeyboardButton(btnAddClient),
		),
	)
}

func cancelMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
}

func reviewKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да", cbConfirmYes),
			tgbotapi.NewInlineKeyboardButtonData("Изменить", cbConfirmNo),
		),
	)
}

func changeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ФИО", cbChange+"full_name"),
			tgbotapi.NewInlineKeyboardButtonData("Учебное заведение", cbChange+"institution"),
			tgbotapi.NewInlineKeyboardButtonData("Промокод", cbChange+"promo_code"),
		),
	)
}

func ageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да", cbAgeYes),
			tgbotapi.NewInlineKeyboardButtonData("Отмена", cbAgeNo),
		),
	)
}

func exportKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Ссылка на выгрузку", cbExport),
		),
	)
}

// pendingKeyboard lists one page of pending orders. Buttons carry the order id
// because full names in Cyrillic can exceed the 64-byte callback data limit.
func pendingKeyboard(orders []models.Order, page int) tgbotapi.InlineKeyboardMarkup {
	p := flow.Paginate(orders, page, flow.PerPage)
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, o := range p.Items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.FullName, fmt.Sprintf("%s%d", cbConfirm, o.ID)),
		))
	}
	if p.HasPrev {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", fmt.Sprintf("%s%d", cbPage, p.Number-1)),
		))
	}
	if p.HasNext {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ Вперед", fmt.Sprintf("%s%d", cbPage, p.Number+1)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

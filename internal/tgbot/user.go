package tgbot

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ticket-bot/internal/flow"
	"ticket-bot/internal/metrics"
	"ticket-bot/internal/models"
	"ticket-bot/internal/sheets"
	"ticket-bot/internal/store"
	"ticket-bot/internal/util"
)

// Quote data kept in the order session next to the collected answers.
const (
	keyDiscount   = "discount"
	keyFinalPrice = "final_price"
	keyTimestamp  = "timestamp"
)

// ---------- Order flow ----------

func (a *App) orderStep(ctx context.Context, m *tgbotapi.Message, next flow.Session) error {
	chatID := m.Chat.ID
	if next.Step != flow.StepConfirm {
		a.setSession(m.From.ID, next)
		return a.prompt(chatID, next.Step)
	}

	// promo code entered: freeze the quote at the current price
	discount := a.promos.Discount(next.Value(flow.KeyPromo))
	final := flow.Quote(a.event.Get().Price, discount)
	next.Data[keyDiscount] = strconv.Itoa(discount)
	next.Data[keyFinalPrice] = strconv.Itoa(final)
	next.Data[keyTimestamp] = util.ISO(a.now())
	a.setSession(m.From.ID, next)

	text := reviewText(next.Value(flow.KeyFullName), next.Value(flow.KeyInstitution), next.Value(flow.KeyPromo), discount, final)
	return a.sendWithMarkup(chatID, text, reviewKeyboard())
}

func (a *App) handleUserCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	tgID := q.From.ID
	st := a.session(tgID)

	switch {
	case q.Data == cbConfirmYes && st.Step == flow.StepConfirm:
		a.setSession(tgID, st.Advance())
		return a.sendWithMarkup(tgID, txtAgeQuestion, ageKeyboard())

	case q.Data == cbConfirmNo && st.Step == flow.StepConfirm:
		return a.sendWithMarkup(tgID, txtWhatToChange, changeKeyboard())

	case strings.HasPrefix(q.Data, cbChange) && st.Step == flow.StepConfirm:
		target, ok := changeTargets[strings.TrimPrefix(q.Data, cbChange)]
		if !ok {
			return nil
		}
		next, err := st.Jump(target)
		if err != nil {
			return err
		}
		a.setSession(tgID, next)
		return a.prompt(tgID, target)

	case q.Data == cbAgeYes && st.Step == flow.StepAgeConfirm:
		return a.finalizeOrder(ctx, q.From, st)

	case q.Data == cbAgeNo && st.Step == flow.StepAgeConfirm:
		a.clearSession(tgID)
		return a.sendWithMarkup(tgID, txtCancelled, mainMenu())
	}

	return a.SendText(tgID, txtStaleButton)
}

func (a *App) finalizeOrder(ctx context.Context, from *tgbotapi.User, st flow.Session) error {
	final, _ := strconv.Atoi(st.Value(keyFinalPrice))
	discount, _ := strconv.Atoi(st.Value(keyDiscount))

	username := "N/A"
	if from.UserName != "" {
		username = "@" + from.UserName
	}

	o := &models.Order{
		FullName:     st.Value(flow.KeyFullName),
		Institution:  st.Value(flow.KeyInstitution),
		RegisteredAt: st.Value(keyTimestamp),
		Confirmation: models.ConfirmationPending,
		Paid:         models.PaidNo,
		Amount:       final,
		Username:     username,
		TgID:         from.ID,
		PromoCode:    st.Value(flow.KeyPromo),
		Discount:     discount,
	}
	err := a.st.Create(ctx, o)
	if errors.Is(err, store.ErrDuplicate) {
		next, jerr := st.Jump(flow.StepFullName)
		if jerr != nil {
			return jerr
		}
		a.setSession(from.ID, next)
		return a.sendWithMarkup(from.ID, txtDuplicate, cancelMenu())
	}
	if err != nil {
		return err
	}
	metrics.OrdersCreated.Inc()
	a.clearSession(from.ID)
	a.syncMirror()

	if err := a.notifyNewOrder(ctx, *o); err != nil {
		log.Printf("notify new order: %v", err)
	}

	instructions, err := a.pay.Instructions(ctx, *o)
	if err != nil {
		return err
	}
	return a.sendWithMarkup(from.ID, instructions, mainMenu())
}

// notifyNewOrder posts the order summary and the fresh table to the notification chat.
func (a *App) notifyNewOrder(ctx context.Context, o models.Order) error {
	if a.cfg.NotificationChatID == 0 {
		return nil
	}
	stats, err := a.st.Stats(ctx)
	if err != nil {
		return err
	}
	if err := a.SendText(a.cfg.NotificationChatID, newOrderText(o, stats.PaidCount, stats.PaidTotal)); err != nil {
		return err
	}
	return a.sendTable(ctx, a.cfg.NotificationChatID, nil)
}

// sendTable sends the order table as an xlsx document. markup may be nil.
func (a *App) sendTable(ctx context.Context, chatID int64, markup interface{}) error {
	orders, err := a.st.List(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return a.SendText(chatID, txtEmptyTable)
	}
	data, err := sheets.WriteXLSX(orders)
	if err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: sheets.XLSXFileName, Bytes: data})
	doc.ReplyMarkup = markup
	_, err = a.api.Send(doc)
	return err
}

package tgbot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ticket-bot/internal/flow"
	"ticket-bot/internal/metrics"
	"ticket-bot/internal/models"
	"ticket-bot/internal/server"
	"ticket-bot/internal/store"
	"ticket-bot/internal/util"
)

func (a *App) handleAdminButton(ctx context.Context, chatID, tgID int64, txt string) error {
	switch txt {
	case btnChangeEvent:
		return a.startFlow(chatID, tgID, flow.AdminEvent)
	case btnDeny:
		return a.startFlow(chatID, tgID, flow.AdminDeny)
	case btnRevert:
		return a.startFlow(chatID, tgID, flow.AdminRevert)
	case btnAddClient:
		return a.startFlow(chatID, tgID, flow.AdminAddClient)
	case btnGetTable:
		// the export link only works while the HTTP side server is up
		if a.cfg.HTTPAddr != "" {
			return a.sendTable(ctx, chatID, exportKeyboard())
		}
		return a.sendTable(ctx, chatID, nil)
	case btnConfirmOrder:
		return a.showPending(ctx, chatID)
	}
	return nil
}

func (a *App) handleAdminCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	data := q.Data

	if strings.HasPrefix(data, cbPage) {
		page, err := strconv.Atoi(strings.TrimPrefix(data, cbPage))
		if err != nil {
			return fmt.Errorf("bad page %q: %w", data, err)
		}
		return a.turnPendingPage(ctx, q, page)
	}

	if strings.HasPrefix(data, cbConfirm) {
		id, err := strconv.ParseUint(strings.TrimPrefix(data, cbConfirm), 10, 64)
		if err != nil {
			return fmt.Errorf("bad order id %q: %w", data, err)
		}
		o, err := a.st.ByID(ctx, uint(id))
		if errors.Is(err, store.ErrNotFound) {
			return a.SendText(q.Message.Chat.ID, txtNotFound)
		}
		if err != nil {
			return err
		}
		if err := a.confirmOrder(ctx, q.Message.Chat.ID, o.FullName); err != nil {
			return err
		}
		_, _ = a.api.Request(tgbotapi.NewDeleteMessage(q.Message.Chat.ID, q.Message.MessageID))
		return nil
	}

	if data == cbExport {
		if a.cfg.HTTPAddr == "" {
			return a.SendText(q.From.ID, txtExportOff)
		}
		return a.SendText(q.From.ID, "📤 Выгрузка заказов (ссылка): "+server.ExportURL(a.cfg))
	}

	return nil
}

// ---------- Pending orders ----------

func (a *App) showPending(ctx context.Context, chatID int64) error {
	pending, err := a.st.ListPending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return a.SendText(chatID, txtNoPending)
	}
	return a.sendWithMarkup(chatID, txtPickPending, pendingKeyboard(pending, 0))
}

func (a *App) turnPendingPage(ctx context.Context, q *tgbotapi.CallbackQuery, page int) error {
	pending, err := a.st.ListPending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return a.SendText(q.Message.Chat.ID, txtNoPending)
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(q.Message.Chat.ID, q.Message.MessageID, pendingKeyboard(pending, page))
	_, err = a.api.Request(edit)
	return err
}

// confirmOrder marks the pending order paid at the current event price and sends
// the buyer the event details. The order stays confirmed even if the buyer cannot
// be reached.
func (a *App) confirmOrder(ctx context.Context, chatID int64, name string) error {
	ev := a.event.Get()
	o, err := a.st.Confirm(ctx, name, ev.Price, util.ISO(a.now()))
	switch {
	case errors.Is(err, store.ErrNotFound):
		metrics.OrderActions.WithLabelValues("confirm", metrics.StatusNotFound).Inc()
		return a.SendText(chatID, txtNotFound)
	case errors.Is(err, store.ErrAlreadyConfirmed):
		metrics.OrderActions.WithLabelValues("confirm", metrics.StatusConflict).Inc()
		return a.sendWithMarkup(chatID, fmt.Sprintf("Заказ для %s уже подтвержден.", name), adminMenu())
	case err != nil:
		return err
	}
	metrics.OrderActions.WithLabelValues("confirm", metrics.StatusOK).Inc()
	a.syncMirror()

	if err := a.notifyConfirmed(*o, ev); err != nil {
		metrics.DeliveryFailures.Inc()
		if isUnreachable(err) {
			if err := a.SendText(chatID, fmt.Sprintf("Не удалось отправить сообщение пользователю %s. Чат не найден.", o.FullName)); err != nil {
				return err
			}
		} else {
			// the order is confirmed already, the admin still gets the reply
			log.Printf("notify confirmed %s: %v", o.FullName, err)
		}
	}

	return a.sendWithMarkup(chatID, fmt.Sprintf("Заказ для %s подтвержден.", o.FullName), adminMenu())
}

func (a *App) notifyConfirmed(o models.Order, ev models.Event) error {
	if o.TgID == 0 {
		return nil
	}
	if err := a.SendText(o.TgID, acceptText(o.FullName, ev, a.cfg.VenueAddress)); err != nil {
		return err
	}
	_, err := a.api.Send(tgbotapi.NewLocation(o.TgID, a.cfg.VenueLat, a.cfg.VenueLon))
	return err
}

// ---------- Deny / revert ----------

func (a *App) adminDeny(ctx context.Context, m *tgbotapi.Message, next flow.Session) error {
	chatID := m.Chat.ID
	name := next.Value(flow.KeyName)

	o, err := a.st.DenyPayment(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		metrics.OrderActions.WithLabelValues("deny", metrics.StatusNotFound).Inc()
		return a.sendWithMarkup(chatID, txtNotFound, cancelMenu())
	}
	if err != nil {
		return err
	}
	metrics.OrderActions.WithLabelValues("deny", metrics.StatusOK).Inc()
	a.clearSession(m.From.ID)
	a.syncMirror()

	if o.TgID != 0 {
		if err := a.SendText(o.TgID, fmt.Sprintf("%s, ваш платеж был опровергнут.", o.FullName)); err != nil && !isUnreachable(err) {
			return err
		}
	}
	return a.sendWithMarkup(chatID, fmt.Sprintf("Оплата заказа для %s опровергнута.", o.FullName), adminMenu())
}

func (a *App) adminRevert(ctx context.Context, m *tgbotapi.Message, next flow.Session) error {
	chatID := m.Chat.ID
	name := next.Value(flow.KeyName)

	o, err := a.st.RevertConfirmation(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		metrics.OrderActions.WithLabelValues("revert", metrics.StatusNotFound).Inc()
		return a.sendWithMarkup(chatID, txtNotFound, cancelMenu())
	}
	if err != nil {
		return err
	}
	metrics.OrderActions.WithLabelValues("revert", metrics.StatusOK).Inc()
	a.clearSession(m.From.ID)
	a.syncMirror()

	return a.sendWithMarkup(chatID, fmt.Sprintf("Подтверждение заказа для %s отменено.", o.FullName), adminMenu())
}

// ---------- Event settings ----------

func (a *App) adminEventStep(ctx context.Context, m *tgbotapi.Message, next flow.Session) error {
	if !next.Done() {
		a.setSession(m.From.ID, next)
		return a.prompt(m.Chat.ID, next.Step)
	}

	price, err := strconv.Atoi(next.Value(flow.KeyPrice))
	if err != nil {
		return err
	}
	ev := a.event.Set(next.Value(flow.KeyDate), price)
	if err := a.st.SaveEvent(ctx, ev); err != nil {
		return err
	}
	a.clearSession(m.From.ID)
	return a.sendWithMarkup(m.Chat.ID, fmt.Sprintf("Дата мероприятия: %s, цена билета: %d₽", ev.Date, ev.Price), adminMenu())
}

// ---------- Manual client ----------

func (a *App) adminAddClientStep(ctx context.Context, m *tgbotapi.Message, next flow.Session) error {
	chatID := m.Chat.ID
	if !next.Done() {
		a.setSession(m.From.ID, next)
		return a.prompt(chatID, next.Step)
	}

	amount, err := strconv.Atoi(next.Value(flow.KeyAmount))
	if err != nil {
		return err
	}
	now := util.ISO(a.now())
	o := &models.Order{
		FullName:     next.Value(flow.KeyFullName),
		Institution:  next.Value(flow.KeyInstitution),
		RegisteredAt: now,
		Confirmation: now,
		Paid:         models.PaidYes,
		Amount:       amount,
		Username:     "@" + next.Value(flow.KeyUsername),
	}
	err = a.st.Create(ctx, o)
	if errors.Is(err, store.ErrDuplicate) {
		a.setSession(m.From.ID, flow.Start(flow.AdminAddClient))
		return a.sendWithMarkup(chatID, txtDuplicate, cancelMenu())
	}
	if err != nil {
		return err
	}
	metrics.OrdersCreated.Inc()
	a.clearSession(m.From.ID)
	a.syncMirror()

	return a.sendWithMarkup(chatID, fmt.Sprintf("Клиент %s добавлен в базу.", o.FullName), adminMenu())
}

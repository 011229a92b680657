package tgbot

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ticket-bot/internal/config"
	"ticket-bot/internal/event"
	"ticket-bot/internal/flow"
	"ticket-bot/internal/metrics"
	"ticket-bot/internal/models"
	"ticket-bot/internal/payments"
	"ticket-bot/internal/promo"
	"ticket-bot/internal/store"
)

// Sender is the part of *tgbotapi.BotAPI the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	ByID(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListPending(ctx context.Context) ([]models.Order, error)
	Confirm(ctx context.Context, name string, price int, at string) (*models.Order, error)
	DenyPayment(ctx context.Context, name string) (*models.Order, error)
	RevertConfirmation(ctx context.Context, name string) (*models.Order, error)
	Stats(ctx context.Context) (store.Stats, error)
	SaveEvent(ctx context.Context, e models.Event) error
}

// Mirror receives the full order table after every change.
type Mirror interface {
	ReplaceOrders(ctx context.Context, orders []models.Order) error
}

type Deps struct {
	Store  OrderStore
	Event  *event.Settings
	Promos promo.Table
	Pay    payments.PaymentProvider
	Mirror Mirror // optional
}

type App struct {
	cfg    config.Config
	bot    *tgbotapi.BotAPI
	api    Sender
	st     OrderStore
	event  *event.Settings
	promos promo.Table
	pay    payments.PaymentProvider
	mirror Mirror
	now    func() time.Time

	mu       sync.Mutex
	sessions map[int64]flow.Session

	// held from List to ReplaceOrders so refreshes land in order
	mirrorMu sync.Mutex
}

func New(cfg config.Config, deps Deps) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	a := newApp(cfg, b, deps)
	a.bot = b
	return a, nil
}

func newApp(cfg config.Config, api Sender, deps Deps) *App {
	return &App{
		cfg:      cfg,
		api:      api,
		st:       deps.Store,
		event:    deps.Event,
		promos:   deps.Promos,
		pay:      deps.Pay,
		mirror:   deps.Mirror,
		now:      time.Now,
		sessions: map[int64]flow.Session{},
	}
}

func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)
	defer a.bot.StopReceivingUpdates()

	log.Printf("authorized on account @%s", a.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			a.handleUpdate(ctx, upd)
		}
	}
}

func (a *App) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil && upd.Message.From != nil {
		if err := a.handleMessage(ctx, upd.Message); err != nil {
			metrics.HandlerErrors.WithLabelValues("message").Inc()
			log.Printf("handle msg: %v", err)
		}
	} else if upd.CallbackQuery != nil {
		if err := a.handleCallback(ctx, upd.CallbackQuery); err != nil {
			metrics.HandlerErrors.WithLabelValues("callback").Inc()
			log.Printf("handle cb: %v", err)
		}
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.api.Send(msg)
	return err
}

func (a *App) sendWithMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	_, err := a.api.Send(msg)
	return err
}

func (a *App) isAdmin(tgID int64) bool {
	return a.cfg.AdminTGIDs[tgID]
}

func (a *App) menuFor(tgID int64) tgbotapi.ReplyKeyboardMarkup {
	if a.isAdmin(tgID) {
		return adminMenu()
	}
	return mainMenu()
}

// ---------- Sessions ----------

func (a *App) session(tgID int64) flow.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[tgID]
}

func (a *App) setSession(tgID int64, s flow.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[tgID] = s
}

func (a *App) clearSession(tgID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, tgID)
}

// ---------- Message handling ----------

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	tgID := m.From.ID
	chatID := m.Chat.ID
	txt := strings.TrimSpace(m.Text)

	if strings.HasPrefix(txt, "/start") {
		a.clearSession(tgID)
		return a.showStart(chatID, tgID)
	}
	if txt == "/cancel" || txt == btnCancel {
		a.clearSession(tgID)
		return a.sendWithMarkup(chatID, txtCancelled, a.menuFor(tgID))
	}

	// flow-based input
	st := a.session(tgID)
	if st.Active() {
		return a.handleFlowInput(ctx, m, st)
	}

	switch txt {
	case btnBuy:
		return a.startFlow(chatID, tgID, flow.Order)
	case btnChangeEvent, btnGetTable, btnConfirmOrder, btnRevert, btnDeny, btnAddClient:
		if !a.isAdmin(tgID) {
			return a.SendText(chatID, txtAccessDenied)
		}
		return a.handleAdminButton(ctx, chatID, tgID, txt)
	}

	return a.showStart(chatID, tgID)
}

func (a *App) showStart(chatID, tgID int64) error {
	if a.isAdmin(tgID) {
		return a.sendWithMarkup(chatID, txtAdminHello, adminMenu())
	}
	return a.sendWithMarkup(chatID, greetingText(a.event.Get()), mainMenu())
}

func (a *App) startFlow(chatID, tgID int64, f flow.Flow) error {
	s := flow.Start(f)
	a.setSession(tgID, s)
	return a.prompt(chatID, s.Step)
}

func (a *App) prompt(chatID int64, step flow.Step) error {
	return a.sendWithMarkup(chatID, prompts[step], cancelMenu())
}

func (a *App) handleFlowInput(ctx context.Context, m *tgbotapi.Message, st flow.Session) error {
	chatID := m.Chat.ID
	if !st.ExpectsText() {
		return a.SendText(chatID, txtUseButtons)
	}

	next, err := st.Apply(m.Text)
	if err != nil {
		return a.sendWithMarkup(chatID, validationText(err), cancelMenu())
	}

	switch st.Flow {
	case flow.Order:
		return a.orderStep(ctx, m, next)
	case flow.AdminEvent:
		return a.adminEventStep(ctx, m, next)
	case flow.AdminDeny:
		return a.adminDeny(ctx, m, next)
	case flow.AdminRevert:
		return a.adminRevert(ctx, m, next)
	case flow.AdminAddClient:
		return a.adminAddClientStep(ctx, m, next)
	default:
		a.clearSession(m.From.ID)
		return a.SendText(chatID, "Сброс состояния. Нажмите /start")
	}
}

// ---------- Callback handling ----------

func (a *App) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	tgID := q.From.ID
	data := q.Data

	// ack
	cb := tgbotapi.NewCallback(q.ID, "")
	_, _ = a.api.Request(cb)

	if strings.HasPrefix(data, "u:") {
		return a.handleUserCallback(ctx, q)
	}
	if strings.HasPrefix(data, "a:") {
		if !a.isAdmin(tgID) {
			return a.SendText(tgID, txtAccessDenied)
		}
		return a.handleAdminCallback(ctx, q)
	}
	return nil
}

// ---------- Delivery ----------

// isUnreachable reports whether Telegram refused the message because the user chat
// does not exist or the bot was blocked.
func isUnreachable(err error) bool {
	var tgErr *tgbotapi.Error
	if !errors.As(err, &tgErr) {
		return false
	}
	if tgErr.Code == http.StatusForbidden {
		return true
	}
	return tgErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(tgErr.Message), "chat not found")
}

// syncMirror refreshes the spreadsheet mirror in the background. Each refresh
// lists the table under mirrorMu, so the last write always carries a snapshot
// at least as new as every earlier one.
func (a *App) syncMirror() {
	if a.mirror == nil {
		return
	}
	go func() {
		a.mirrorMu.Lock()
		defer a.mirrorMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		orders, err := a.st.List(ctx)
		if err != nil {
			log.Printf("mirror: list orders: %v", err)
			return
		}
		if err := a.mirror.ReplaceOrders(ctx, orders); err != nil {
			log.Printf("mirror: %v", err)
		}
	}()
}

package tgbot

import (
	"errors"
	"fmt"

	"ticket-bot/internal/flow"
	"ticket-bot/internal/models"
)

// Reply-keyboard buttons. Incoming text is matched against these literally.
const (
	btnBuy = "Купить билет"

	btnChangeEvent  = "Изменить событие"
	btnGetTable     = "Получить таблицу"
	btnConfirmOrder = "Подтвердить заказ"
	btnRevert       = "Отменить подтверждение"
	btnDeny         = "Опровергнуть оплату"
	btnAddClient    = "Добавить клиента"

	btnCancel = "Отмена"
)

const (
	txtAccessDenied = "Доступ запрещён."
	txtCancelled    = "Действие отменено."
	txtUseButtons   = "Пожалуйста, воспользуйтесь кнопками выше или нажмите «Отмена»."
	txtStaleButton  = "Эта кнопка больше не активна."
	txtNotFound     = "Человек не найден в базе. Проверьте ФИО и попробуйте снова."
	txtNoPending    = "Нет заказов, ожидающих подтверждения."
	txtPickPending  = "Выберите заказ для подтверждения:"
	txtExportOff    = "Выгрузка по ссылке выключена."
	txtEmptyTable   = "Файл с билетами пуст или не создан. Попробуйте добавить хотя бы одну запись."
	txtDuplicate    = "Заказ на это ФИО уже оформлен. Введите другое ФИО."
	txtAgeQuestion  = "Покупая билет, вы подтверждаете своё совершеннолетие. Продолжить?"
	txtWhatToChange = "Что вы хотите изменить?"
	txtAdminHello   = "Привет, Админ!"
)

var prompts = map[flow.Step]string{
	flow.StepFullName:          "Введите ваше ФИО (три слова, каждое не длиннее 15 символов)",
	flow.StepInstitution:       "Введите название вашего учебного заведения",
	flow.StepPromo:             "Введите промокод, если он у вас есть. Если нет, введите 'нет'.",
	flow.StepEventDate:         "Введите новую дату мероприятия (пример: 5 апреля)",
	flow.StepEventPrice:        "Введите новую цену билета",
	flow.StepDenyName:          "Введите ФИО участника, чей платеж хотите опровергнуть:",
	flow.StepRevertName:        "Введите ФИО участника, чье подтверждение хотите отменить:",
	flow.StepClientName:        "Введите ФИО клиента (три слова, каждое не длиннее 15 символов)",
	flow.StepClientInstitution: "Введите название учебного заведения клиента",
	flow.StepClientUsername:    "Введите ник в Telegram клиента (например, @username)",
	flow.StepClientAmount:      "Введите сумму, которую клиент заплатил",
}

func validationText(err error) string {
	switch {
	case errors.Is(err, flow.ErrBadFullName):
		return "Некорректный формат ФИО. Введите три слова, каждое не длиннее 15 символов."
	case errors.Is(err, flow.ErrBadInstitution):
		return "Название учебного заведения должно быть не длиннее 25 символов. Попробуйте снова."
	case errors.Is(err, flow.ErrBadNumber):
		return "Введите целое неотрицательное число."
	default:
		return "Значение не может быть пустым. Попробуйте снова."
	}
}

func greetingText(e models.Event) string {
	return fmt.Sprintf("Привет! Ближайшая вечеринка %s. Билет: %d₽", e.Date, e.Price)
}

func reviewText(name, institution, promoCode string, discount, final int) string {
	return "🔍 Проверьте введенные данные:\n\n" +
		fmt.Sprintf("👤 ФИО: %s\n", name) +
		fmt.Sprintf("🏫 Учебное заведение: %s\n", institution) +
		fmt.Sprintf("🎟 Промокод: %s\n", promoCode) +
		fmt.Sprintf("💰 Скидка: %d₽\n", discount) +
		fmt.Sprintf("🤑 Итоговая цена: %d₽\n\n", final) +
		"✅ Все верно?"
}

func newOrderText(o models.Order, paidCount, paidTotal int64) string {
	return fmt.Sprintf("Новый заказ: %s (%s). Ожидает оплаты. Промокод: %s, Скидка: %d₽, Итоговая цена: %d₽.\n"+
		"Всего продано билетов: %d\n"+
		"Общая сумма заработка: %d₽",
		o.FullName, o.Institution, o.PromoCode, o.Discount, o.Amount, paidCount, paidTotal)
}

func acceptText(name string, e models.Event, address string) string {
	return fmt.Sprintf(`%s,
🎉 Оплата успешно подтверждена! 🎉

📍 Ждём тебя %s с 19:00 по адресу:
%s 🏠🔥

🔹 Что взять с собой?
   - 📌 Студенческий билет – для входа
   - 📌 Паспорт – на всякий случай
   - 📌 Отличное настроение – без него не пустим! 😉🎊

💃 Будет много музыки, драйва и крутых впечатлений!
🚀 Готовься к самой жаркой студенческой тусовке! 🔥`, name, e.Date, address)
}

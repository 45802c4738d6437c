package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/agenda/internal/controller/formatting"
	"github.com/Freeeeeet/agenda/internal/controller/keyboard"
	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const slotsPerRow = 4

// slotKeyboard строит кнопки только для свободных слотов.
// Без услуги бронировать нельзя, кнопок нет
func slotKeyboard(req slotsRequest, candidates []model.SlotCandidate) (*models.InlineKeyboardMarkup, int) {
	if req.ServiceID == nil {
		return nil, 0
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(candidates))
	for _, c := range candidates {
		if !c.Available {
			continue
		}
		buttons = append(buttons, keyboard.Button(c.Label, BookCallbackData(req.ProfessionalID, req.Date, c.Value, *req.ServiceID)))
	}

	if len(buttons) == 0 {
		return nil, 0
	}

	return keyboard.NewBuilder().Grid(buttons, slotsPerRow).Build(), len(buttons)
}

// slotsSummary - текстовый список слотов, занятые отмечены
func slotsSummary(req slotsRequest, candidates []model.SlotCandidate) string {
	text := fmt.Sprintf("🗓 %s, специалист #%d\n\n", formatting.FormatDay(req.Date), req.ProfessionalID)

	free := 0
	for _, c := range candidates {
		if c.Available {
			free++
		}
	}

	if len(candidates) == 0 {
		return text + "В этот день специалист не работает."
	}
	if free == 0 {
		return text + "Свободного времени нет."
	}

	text += fmt.Sprintf("Свободно слотов: %d из %d.", free, len(candidates))
	if req.ServiceID == nil {
		text += "\n\nЧтобы записаться, укажите услугу: /slots <id специалиста> <ГГГГ-ММ-ДД> <id услуги>\n\n"
		for _, c := range candidates {
			if c.Available {
				text += "🟢 " + c.Label + "\n"
			}
		}
	} else {
		text += "\nВыберите время:"
	}

	return text
}

// HandleSlots обрабатывает /slots <professional_id> <YYYY-MM-DD> [service_id]
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	req, err := parseSlotsArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "Использование: /slots <id специалиста> <ГГГГ-ММ-ДД> [id услуги]", nil)
		return
	}

	candidates, err := h.slots.GetAvailableTimes(ctx, req.ProfessionalID, req.Date, req.ServiceID)
	if err != nil {
		if isUnexpected(err) {
			h.logger.Error("Failed to get available times",
				zap.Int64("professional_id", req.ProfessionalID),
				zap.String("date", req.Date),
				zap.Error(err),
			)
		}
		h.sendMessage(ctx, b, chatID, userMessage(err), nil)
		return
	}

	markup, _ := slotKeyboard(req, candidates)
	if markup != nil {
		h.sendMessage(ctx, b, chatID, slotsSummary(req, candidates), markup)
		return
	}
	h.sendMessage(ctx, b, chatID, slotsSummary(req, candidates), nil)
}

// HandleBookCallback бронирует выбранный слот для привязанного клиента
func (h *Handlers) HandleBookCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	req, err := parseBookCallback(callback.Data)
	if err != nil {
		h.logger.Warn("Bad book callback", zap.String("data", callback.Data), zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, "❌ Некорректная кнопка", true)
		return
	}

	client, err := h.clients.GetClientByTelegramID(ctx, callback.From.ID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			h.answerCallback(ctx, b, callback.ID, "Сначала привяжите аккаунт: /link", true)
			return
		}
		h.logger.Error("Failed to get client", zap.Int64("telegram_id", callback.From.ID), zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, userMessage(err), true)
		return
	}

	if !client.IsVerified() {
		h.answerCallback(ctx, b, callback.ID, "Сначала подтвердите телефон: /link", true)
		return
	}

	appt, err := h.booking.CreateAppointment(ctx, service.CreateAppointmentInput{
		ProfessionalID: req.ProfessionalID,
		ClientID:       client.ID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
	})
	if err != nil {
		if isUnexpected(err) {
			h.logger.Error("Failed to book from telegram",
				zap.Int64("client_id", client.ID),
				zap.Int64("professional_id", req.ProfessionalID),
				zap.Error(err),
			)
		}
		h.answerCallback(ctx, b, callback.ID, userMessage(err), true)
		return
	}

	h.answerCallback(ctx, b, callback.ID, "✅ Записано", false)

	if msg := callback.Message.Message; msg != nil {
		h.sendMessage(ctx, b, msg.Chat.ID, "🎉 Вы записаны!\n\n"+formatting.FormatAppointment(appt), nil)
	}
}

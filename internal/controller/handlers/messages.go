package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/agenda/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// answerCallback отвечает на callback query, alert - всплывающее окно
func (h *Handlers) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		h.logger.Error("Failed to answer callback", zap.Error(err))
	}
}

// userMessage переводит доменную ошибку в текст для пользователя
func userMessage(err error) string {
	text, _ := describeError(err)
	return text
}

// isUnexpected - ошибки инфраструктуры, которые стоит логировать
func isUnexpected(err error) bool {
	_, known := describeError(err)
	return !known
}

func describeError(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrProfessionalNotFound):
		return "❌ Специалист не найден.", true
	case errors.Is(err, service.ErrServiceNotFound):
		return "❌ Услуга не найдена.", true
	case errors.Is(err, service.ErrClientNotFound):
		return "❌ Клиент не найден.", true
	case errors.Is(err, service.ErrEnterpriseMismatch):
		return "❌ Услуга или клиент относятся к другому предприятию.", true
	case errors.Is(err, service.ErrPhoneMismatch):
		return "❌ Телефон не совпадает с данными клиента.", true
	case errors.Is(err, service.ErrInvalidCode):
		return "❌ Неверный код.", true
	case errors.Is(err, service.ErrCodeExpired):
		return "⌛ Код истёк или не запрашивался. Запросите новый через /link.", true
	case errors.Is(err, service.ErrClientExists):
		return "❌ Этот аккаунт Telegram уже привязан к другому клиенту.", true
	case errors.Is(err, service.ErrSlotUnavailable), errors.Is(err, service.ErrSlotTaken):
		return "😔 Это время уже занято. Выберите другое через /slots.", true
	case errors.Is(err, service.ErrSlotBusy):
		return "⏳ Это время сейчас бронирует кто-то другой. Попробуйте через несколько секунд.", true
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidTime):
		return "❌ Некорректные данные. Проверьте формат команды: /help", true
	default:
		return "❌ Произошла ошибка. Попробуйте позже.", false
	}
}

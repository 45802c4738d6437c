package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/agenda/internal/controller/state"
	"github.com/Freeeeeet/agenda/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleLink обрабатывает /link <client_id> <phone>: запрашивает код и ждёт его ответным сообщением
func (h *Handlers) HandleLink(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	clientID, phone, err := parseLinkArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "Использование: /link <client_id> <телефон в формате +5511999990000>", nil)
		return
	}

	code, err := h.verification.RequestCode(ctx, service.RequestCodeInput{ClientID: clientID, Phone: phone})
	if err != nil {
		if isUnexpected(err) {
			h.logger.Error("Failed to request verification code", zap.Int64("client_id", clientID), zap.Error(err))
		}
		h.sendMessage(ctx, b, chatID, userMessage(err), nil)
		return
	}

	h.stateManager.Set(update.Message.From.ID, state.Dialog{
		State:    state.StateAwaitingCode,
		ClientID: clientID,
		Phone:    phone,
	})

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("📨 Код отправлен на %s.\nОн действует до %s.\n\nПришлите код ответным сообщением.",
			phone, code.ExpiresAt.Format("15:04")),
		nil,
	)
}

// HandleVerify обрабатывает /verify <client_id> <phone> <code>
func (h *Handlers) HandleVerify(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	clientID, phone, code, err := parseVerifyArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Использование: /verify <client_id> <телефон> <код>", nil)
		return
	}

	h.completeLink(ctx, b, update.Message, clientID, phone, code)
}

func (h *Handlers) completeLink(ctx context.Context, b *bot.Bot, msg *models.Message, clientID int64, phone, code string) {
	telegramID := msg.From.ID

	client, err := h.verification.LinkTelegram(ctx, service.VerifyCodeInput{
		ClientID: clientID,
		Phone:    phone,
		Code:     code,
	}, telegramID)
	if err != nil {
		if isUnexpected(err) {
			h.logger.Error("Failed to link telegram",
				zap.Int64("client_id", clientID),
				zap.Int64("telegram_id", telegramID),
				zap.Error(err),
			)
		}
		h.sendMessage(ctx, b, msg.Chat.ID, userMessage(err), nil)
		return
	}

	h.stateManager.Clear(telegramID)

	h.logger.Info("Telegram linked", zap.Int64("client_id", client.ID), zap.Int64("telegram_id", telegramID))
	h.sendMessage(ctx, b, msg.Chat.ID,
		fmt.Sprintf("✅ Готово, %s! Аккаунт привязан.\n\nСвободное время: /slots <id специалиста> <ГГГГ-ММ-ДД> <id услуги>", client.Name),
		nil,
	)
}

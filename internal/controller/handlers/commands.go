package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/agenda/internal/controller/state"
	"github.com/Freeeeeet/agenda/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/link <client_id> <телефон> - Привязать аккаунт, на телефон придёт код\n" +
	"/verify <client_id> <телефон> <код> - Подтвердить код\n" +
	"/slots <id специалиста> <ГГГГ-ММ-ДД> [id услуги] - Свободное время\n" +
	"/cancel - Отменить текущий диалог\n" +
	"/help - Показать эту справку\n\n" +
	"Чтобы записаться, укажите услугу в /slots и нажмите на время."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	client, err := h.clients.GetClientByTelegramID(ctx, update.Message.From.ID)
	if err != nil && !errors.Is(err, service.ErrClientNotFound) {
		h.logger.Error("Failed to get client", zap.Int64("telegram_id", update.Message.From.ID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, userMessage(err), nil)
		return
	}

	if client == nil {
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("👋 Привет, %s!\n\n"+
				"Это бот для записи к специалистам.\n"+
				"Сначала привяжите аккаунт: /link <client_id> <телефон>\n\n%s",
				update.Message.From.FirstName, helpText),
			nil,
		)
		return
	}

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("👋 С возвращением, %s!\n\nСвободное время: /slots <id специалиста> <ГГГГ-ММ-ДД> <id услуги>", client.Name),
		nil,
	)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.stateManager.Clear(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	dialog, ok := h.stateManager.Get(update.Message.From.ID)
	if !ok {
		return
	}

	switch dialog.State {
	case state.StateAwaitingCode:
		h.completeLink(ctx, b, update.Message, dialog.ClientID, dialog.Phone, strings.TrimSpace(update.Message.Text))
	}
}

package telegram

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chatcal/internal/auth"
	"chatcal/internal/dispatch"
)

// Sender is the slice of the Telegram API the bot uses to deliver replies.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot is the messaging gateway shell. It validates the sender, hands the
// dispatcher a plain (userID, text) pair and delivers the single reply.
// Headers, signatures and transport framing never reach the dispatcher.
type Bot struct {
	api     *tgbotapi.BotAPI
	s       Sender
	authSvc *auth.Service
	d       *dispatch.Dispatcher
}

func New(botToken string, authSvc *auth.Service, d *dispatch.Dispatcher) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:     api,
		s:       api,
		authSvc: authSvc,
		d:       d,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil && update.Message.Text != "" {
				// each message is an independent unit of work; a stalled
				// collaborator call holds up that sender only
				go b.handleIncomingMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !b.authSvc.IsAllowed(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
		b.sendMessage(msg.Chat.ID, "抱歉，你沒有使用權限。")
		return
	}

	log.Printf("Incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)

	userID := strconv.FormatInt(msg.From.ID, 10)
	reply := b.d.Handle(ctx, userID, msg.Text)
	b.sendMessage(msg.Chat.ID, reply)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

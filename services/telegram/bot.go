package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vacancy/models"
	"vacancy/services/availability"
	"vacancy/services/checkin"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const WebhookPath = "/telegram/webhook"

const greeting = "Hello! Use /checkdate to see free dates per room, /checkin for today's and tomorrow's arrivals, /rooms for the room list and /cleaning <room number> to log a cleaning."

// Sender delivers messages to Telegram. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// RoomLister lists rooms for the /rooms command.
type RoomLister interface {
	FetchRooms(ctx context.Context) ([]models.Room, error)
}

// Cleaner records a cleaning visit for a room.
type Cleaner interface {
	LogCleaning(ctx context.Context, input models.CleaningInput) (string, error)
}

// Bot answers chat commands.
type Bot struct {
	sender       Sender
	availability availability.AvailabilityService
	checkins     checkin.CheckInService
	rooms        RoomLister
	cleaner      Cleaner
	location     *time.Location
	logger       *zap.Logger
}

type Option func(*Bot)

// WithCleaner enables the /cleaning command.
func WithCleaner(c Cleaner) Option {
	return func(b *Bot) { b.cleaner = c }
}

// WithLocation sets the zone timestamps are shown in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(b *Bot) {
		if loc != nil {
			b.location = loc
		}
	}
}

func NewBot(sender Sender, avail availability.AvailabilityService, checkins checkin.CheckInService, rooms RoomLister, logger *zap.Logger, opts ...Option) *Bot {
	b := &Bot{
		sender:       sender,
		availability: avail,
		checkins:     checkins,
		rooms:        rooms,
		location:     time.UTC,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewAPI connects to Telegram and registers the webhook when webhookURL is
// set.
func NewAPI(token, webhookURL string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	if webhookURL == "" {
		return api, nil
	}
	wh, err := tgbotapi.NewWebhook(strings.TrimRight(webhookURL, "/") + WebhookPath)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := api.Request(wh); err != nil {
		return nil, fmt.Errorf("failed to set webhook: %w", err)
	}
	return api, nil
}

// HandleUpdate dispatches one update. Non-command messages are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return nil
	}
	chatID := msg.Chat.ID
	logger := b.logger.With(zap.Int64("chatId", chatID), zap.String("command", msg.Command()))

	var reply string
	switch strings.ToLower(msg.Command()) {
	case "start":
		reply = greeting
	case "checkdate":
		report, err := b.availability.GetReport(ctx, false)
		if err != nil {
			logger.Error("failed to build availability report", zap.Error(err))
			reply = "Error: " + escape(err.Error())
			break
		}
		reply = FormatAvailability(report, b.location)
	case "checkin":
		checkIns, err := b.checkins.Upcoming(ctx)
		if err != nil {
			logger.Error("failed to fetch check-ins", zap.Error(err))
			reply = "Error: " + escape(err.Error())
			break
		}
		reply = FormatCheckIns(checkIns)
	case "rooms":
		rooms, err := b.rooms.FetchRooms(ctx)
		if err != nil {
			logger.Error("failed to fetch rooms", zap.Error(err))
			reply = "Error: " + escape(err.Error())
			break
		}
		reply = FormatRooms(rooms)
	case "cleaning":
		reply = b.logCleaning(ctx, logger, msg.CommandArguments())
	default:
		reply = "Unknown command. " + greeting
	}
	return b.Reply(chatID, reply)
}

// logCleaning records a cleaning for the room at the 1-based position arg
// of the /rooms list.
func (b *Bot) logCleaning(ctx context.Context, logger *zap.Logger, arg string) string {
	if b.cleaner == nil {
		return "Cleaning log is not configured."
	}
	rooms, err := b.rooms.FetchRooms(ctx)
	if err != nil {
		logger.Error("failed to fetch rooms", zap.Error(err))
		return "Error: " + escape(err.Error())
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(rooms) {
		return "Usage: /cleaning <room number>\n" + FormatRooms(rooms)
	}
	room := rooms[n-1]
	if _, err := b.cleaner.LogCleaning(ctx, models.CleaningInput{RoomID: room.ID}); err != nil {
		logger.Error("failed to log cleaning", zap.String("roomId", room.ID), zap.Error(err))
		return "Error: " + escape(err.Error())
	}
	name := room.Name
	if name == "" {
		name = room.ID
	}
	return "Cleaning logged for " + escape(name) + "."
}

// Reply sends a Markdown message to chatID.
func (b *Bot) Reply(chatID int64, text string) error {
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(out); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// SendCheckInDigest pushes the check-in list to chatID.
func (b *Bot) SendCheckInDigest(ctx context.Context, chatID int64) error {
	checkIns, err := b.checkins.Upcoming(ctx)
	if err != nil {
		return err
	}
	return b.Reply(chatID, FormatCheckIns(checkIns))
}

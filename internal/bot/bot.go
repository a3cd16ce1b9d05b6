// Package bot is the Telegram presentation wrapper over the same client-side
// core the TUI uses. It keeps one in-memory session per chat and performs no
// domain logic of its own.
package bot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"cartpilot/internal/api"
	"cartpilot/internal/config"
	"cartpilot/internal/intent"
	"cartpilot/internal/plan"
	"cartpilot/internal/watchlist"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const requestTimeout = 45 * time.Second

// session is the single-user view state for one chat.
type session struct {
	list    []intent.Intent
	tracker *watchlist.Tracker
	watched []watchlist.WatchedItem
}

// Bot wraps the Telegram API and the assistant backend client.
type Bot struct {
	tg     *tgbotapi.BotAPI
	client *api.Client
	cfg    *config.Config
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

// NewBot initializes the Telegram bot and sets the webhook.
func NewBot(cfg *config.Config, client *api.Client, logger *zap.Logger) (*Bot, error) {
	tg, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	logger.Info("authorized on telegram", zap.String("account", tg.Self.UserName))

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := tg.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", zap.String("response", resp.Description))

	return &Bot{
		tg:       tg,
		client:   client,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[int64]*session),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.tg.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("error parsing update", zap.Error(err))
		return
	}

	if update.Message == nil {
		return
	}

	if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID {
		b.logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", update.Message.From.ID),
			zap.String("username", update.Message.From.UserName))
		return
	}

	go b.processMessage(update.Message)
}

// sessionFor returns the chat's session, creating it on first contact.
func (b *Bot) sessionFor(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[chatID]
	if !ok {
		s = &session{tracker: watchlist.NewTracker()}
		b.sessions[chatID] = s
	}
	return s
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "/start":
		b.reply(msg.Chat.ID, "Hi! Tell me what you need to buy and I'll keep your list. Commands: /list /drops /plan /watch <n> /premium")
	case text == "/list":
		b.handleList(msg.Chat.ID)
	case text == "/drops":
		b.handleDrops(msg.Chat.ID)
	case strings.HasPrefix(text, "/plan"):
		b.handlePlan(msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/plan")))
	case strings.HasPrefix(text, "/watch"):
		b.handleWatch(msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/watch")))
	case text == "/premium":
		b.handleCheckout(msg.Chat.ID, "premium")
	case text == "/costco":
		b.handleCheckout(msg.Chat.ID, "costco_addon")
	default:
		b.handleChat(msg.Chat.ID, text)
	}
}

func (b *Bot) handleChat(chatID int64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	reply, err := b.client.SendChat(ctx, b.cfg.UserID, text)
	if err != nil {
		b.logger.Warn("chat request failed", zap.Error(err))
		b.reply(chatID, "Sorry, the assistant is unavailable right now. Your list is unchanged.")
		return
	}

	s := b.sessionFor(chatID)
	b.mu.Lock()
	s.list = intent.Merge(s.list, reply.Items)
	count := len(s.list)
	b.mu.Unlock()

	out := api.FlattenHTML(reply.Reply)
	if len(reply.Items) > 0 {
		out += fmt.Sprintf("\n\nYour list now has %d item(s). /list to see it.", count)
	}
	b.reply(chatID, out)
}

func (b *Bot) handleList(chatID int64) {
	s := b.sessionFor(chatID)
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(s.list) == 0 {
		b.reply(chatID, "Your list is empty. Tell me what you need!")
		return
	}
	var sb strings.Builder
	sb.WriteString("🛒 Your shopping list:\n")
	for i, it := range s.list {
		star := ""
		if s.tracker.IsWatched(it.ID) {
			star = " ⭐"
		}
		fmt.Fprintf(&sb, "%d. %s%s\n", i+1, itemLabel(it), star)
	}
	sb.WriteString("\n/watch <number> to track an item's price.")
	b.reply(chatID, sb.String())
}

func (b *Bot) handleWatch(chatID int64, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		b.reply(chatID, "Usage: /watch <item number from /list>")
		return
	}

	s := b.sessionFor(chatID)
	b.mu.Lock()
	if n < 1 || n > len(s.list) {
		b.mu.Unlock()
		b.reply(chatID, "No such item number. /list to see your items.")
		return
	}
	item := s.list[n-1]
	var price *float64
	for _, w := range s.watched {
		if w.ItemID == item.ID {
			price = w.LastPrice
		}
	}
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	watched, err := b.client.ToggleWatch(ctx, b.cfg.UserID, item.ID, price)
	if err != nil {
		b.logger.Warn("watch toggle failed", zap.Error(err))
		b.reply(chatID, "Could not update the watchlist, try again later.")
		return
	}

	b.mu.Lock()
	s.tracker.ReconcileToggle(item.ID, watched)
	b.mu.Unlock()

	if watched {
		b.reply(chatID, fmt.Sprintf("⭐ Now watching %q for price drops.", item.RawText))
	} else {
		b.reply(chatID, fmt.Sprintf("Stopped watching %q.", item.RawText))
	}
	b.refreshWatchlist(chatID)
}

func (b *Bot) refreshWatchlist(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	items, err := b.client.FetchWatchlist(ctx, b.cfg.UserID)
	if err != nil {
		b.logger.Warn("watchlist refresh failed", zap.Error(err))
		return
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ItemID)
	}

	s := b.sessionFor(chatID)
	b.mu.Lock()
	s.tracker.LoadSnapshot(ids)
	s.watched = items
	b.mu.Unlock()
}

func (b *Bot) handleDrops(chatID int64) {
	b.refreshWatchlist(chatID)

	s := b.sessionFor(chatID)
	b.mu.Lock()
	watched := s.watched
	b.mu.Unlock()

	dropped := watchlist.WithPositiveDrop(watched)
	if len(dropped) == 0 {
		b.reply(chatID, "No price drops on your watched items yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📉 Price drops:\n")
	for _, it := range dropped {
		d, _ := watchlist.EffectiveDrop(it)
		fmt.Fprintf(&sb, "• %s — down $%.2f\n", it.RawText, d)
	}
	if best, ok := watchlist.BiggestDrop(watched); ok {
		d, _ := watchlist.EffectiveDrop(best)
		fmt.Fprintf(&sb, "\nBiggest drop: %s ($%.2f off)", best.RawText, d)
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handlePlan(chatID int64, preference string) {
	if preference == "" {
		preference = "cheapest"
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := b.client.BuildPlans(ctx, b.cfg.UserID, preference, b.cfg.DefaultOrigin, "")
	if err != nil {
		b.logger.Warn("plan build failed", zap.Error(err))
		b.reply(chatID, "Could not build store plans right now.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏪 Store plans:\n")
	for _, key := range plan.SortedKeys(resp) {
		p := resp.Plans[key]
		marker := "•"
		suffix := ""
		if plan.IsRecommended(key, resp) {
			marker = "★"
			suffix = " (recommended)"
		}
		fmt.Fprintf(&sb, "%s %s — %d store(s), $%.2f, %.0f min%s\n",
			marker, p.Label, p.NumberOfStores, p.TotalPrice, p.TravelMinutes, suffix)
		if route, ok := plan.BuildRouteQuery(b.cfg.DefaultOrigin, "", p.Stores); ok {
			fmt.Fprintf(&sb, "   route: %s\n", route)
		}
	}
	if resp.Explanation != "" {
		sb.WriteString("\n" + resp.Explanation)
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleCheckout(chatID int64, billingPlan string) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	url, err := b.client.CreateCheckoutSession(ctx, b.cfg.UserID, billingPlan)
	if err != nil {
		b.logger.Warn("checkout failed", zap.Error(err))
		b.reply(chatID, "Could not start checkout, try again later.")
		return
	}
	b.reply(chatID, "Complete your upgrade here: "+url)
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.tg.Send(msg); err != nil {
		b.logger.Warn("failed to send telegram message", zap.Error(err))
	}
}

func itemLabel(it intent.Intent) string {
	label := it.RawText
	if it.CanonicalCategory != "" {
		label = fmt.Sprintf("%s (%s)", it.RawText, it.CanonicalCategory)
	}
	if it.Quantity > 1 {
		label = fmt.Sprintf("%gx %s", it.Quantity, label)
	}
	return label
}

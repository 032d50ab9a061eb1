// Package intake processes inbound chat messages into persisted order rows.
//
// A message travels parse -> validate -> duplicate/agent checks -> ledger
// append -> confirmation. Every rejection is reported back to the submitter
// in the originating thread; only collaborator failures reach the admin chat.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/doorasi/closingbot/internal/application/report"
	"github.com/doorasi/closingbot/internal/domain/order"
	"github.com/doorasi/closingbot/internal/infrastructure/config"
	"github.com/doorasi/closingbot/internal/infrastructure/sheets"
	"github.com/doorasi/closingbot/internal/infrastructure/telegram"
)

// Rejection sentinels. The submitter has already been notified when one of
// these comes back; they are not collaborator failures.
var (
	ErrValidationFailed = errors.New("order failed validation")
	ErrDuplicateOrder   = errors.New("duplicate order detected")
	ErrInvalidAgentCode = errors.New("agent code not registered")
)

// Idempotency cache bounds. Telegram redelivers webhooks on slow responses;
// a day of message IDs is plenty to absorb that.
const (
	seenCacheSize = 4096
	seenCacheTTL  = 24 * time.Hour
)

// Service is the inbound order pipeline. Construct once and share; all
// methods are safe for concurrent webhook deliveries.
type Service struct {
	regular     sheets.Ledger
	marketplace sheets.Ledger
	roster      sheets.Roster
	messenger   telegram.Messenger
	stats       *report.Aggregator
	cfg         config.TelegramConfig
	logger      *slog.Logger

	seen *expirable.LRU[string, struct{}]
	now  func() time.Time
}

// NewService wires the intake pipeline.
func NewService(
	regular, marketplace sheets.Ledger,
	roster sheets.Roster,
	messenger telegram.Messenger,
	stats *report.Aggregator,
	cfg config.TelegramConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		regular:     regular,
		marketplace: marketplace,
		roster:      roster,
		messenger:   messenger,
		stats:       stats,
		cfg:         cfg,
		logger:      logger,
		seen:        expirable.NewLRU[string, struct{}](seenCacheSize, nil, seenCacheTTL),
		now:         time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// HandleMessage runs one inbound message through the pipeline. It never
// returns an error: every failure mode ends in a notification, a log line,
// or both, and the webhook always acknowledges.
func (s *Service) HandleMessage(ctx context.Context, msg *telegram.Message) {
	if msg == nil {
		return
	}

	text := msg.Content()
	operator := msg.From.FullName()

	if !strings.HasPrefix(strings.ToLower(text), "sales") {
		if msg.HasPhoto() && strings.Contains(strings.ToLower(text), "transfer") {
			s.reply(ctx, msg, "✅ Bukti transfer diterima. Kirim detail pesanan dengan format SALES yang valid.")
		}
		return
	}

	// Dedupe redelivered webhooks before doing any real work.
	key := fmt.Sprintf("%d:%d", msg.Chat.ID, msg.MessageID)
	if _, dup := s.seen.Get(key); dup {
		s.logger.Warn("message already processed", "message_id", msg.MessageID, "chat_id", msg.Chat.ID)
		return
	}
	s.seen.Add(key, struct{}{})

	s.logger.Info("processing order", "operator", operator, "chat_id", msg.Chat.ID)

	var err error
	if platform, ok := order.Platform(text); ok {
		err = s.processMarketplace(ctx, operator, text, platform)
	} else {
		err = s.processRegular(ctx, msg, operator, text)
	}

	switch {
	case err == nil:
		s.sendConfirmation(ctx, msg, operator, order.Parse(text))
	case errors.Is(err, ErrValidationFailed),
		errors.Is(err, ErrDuplicateOrder),
		errors.Is(err, ErrInvalidAgentCode):
		s.logger.Info("order rejected", "operator", operator, "reason", err)
	default:
		s.logger.Error("order processing failed", "operator", operator, "error", err)
		s.notifyAdmin(ctx, fmt.Sprintf("Bot Error: %v", err))
	}
}

// processMarketplace persists a marketplace order. These arrive pre-vetted
// from the platform, so they skip validation and duplicate checks.
func (s *Service) processMarketplace(ctx context.Context, operator, text, platform string) error {
	now := s.now()

	rec := order.Parse(text)
	rec.CustomerService = operator

	invoiceID := rec.OrderID
	if invoiceID == "" {
		invoiceID = fmt.Sprintf("INV-MP-%d", now.Unix())
	}

	if err := s.marketplace.AppendRow(ctx, rec.LedgerRow(invoiceID, platform, now)); err != nil {
		return fmt.Errorf("persisting marketplace order: %w", err)
	}

	s.logger.Info("marketplace order saved", "customer", rec.CustomerName, "platform", platform, "invoice_id", invoiceID)
	return nil
}

// processRegular validates and persists a directly negotiated order.
func (s *Service) processRegular(ctx context.Context, msg *telegram.Message, operator, text string) error {
	now := s.now()

	rec := order.Parse(text)
	rec.CustomerService = operator

	if errs := order.Validate(text, rec); len(errs) > 0 {
		s.reply(ctx, msg, strings.Join(errs, "\n"))
		return fmt.Errorf("%w: %d issue(s)", ErrValidationFailed, len(errs))
	}

	if !order.HasRepeatOverride(text) {
		if dup, found := s.findDuplicate(ctx, rec); found {
			s.reply(ctx, msg, fmt.Sprintf("🚨 Duplicate: %s Silakan periksa kembali.", dup[order.ColPhone]))
			return fmt.Errorf("%w: phone %s", ErrDuplicateOrder, rec.Phone)
		}
	}

	if strings.Contains(strings.ToLower(rec.Notes), "agen") && !s.agentCodeValid(ctx, rec.Notes) {
		s.reply(ctx, msg, "🚨 Kode Agen tidak valid/terdaftar.")
		return fmt.Errorf("%w: %q", ErrInvalidAgentCode, rec.Notes)
	}

	invoiceID := fmt.Sprintf("INV-%d", now.Unix())
	if err := s.regular.AppendRow(ctx, rec.LedgerRow(invoiceID, rec.PaymentMethod, now)); err != nil {
		return fmt.Errorf("persisting order: %w", err)
	}

	s.logger.Info("order saved", "customer", rec.CustomerName, "invoice_id", invoiceID)
	return nil
}

// findDuplicate checks today's regular ledger for a same phone or address.
// A ledger read failure fails open: blocking all intake on a flaky read
// would cost more than the occasional duplicate row.
func (s *Service) findDuplicate(ctx context.Context, rec order.Record) (order.Row, bool) {
	rows, err := s.regular.ReadAllRows(ctx)
	if err != nil {
		s.logger.Error("reading ledger for duplicate check", "error", err)
		return nil, false
	}
	return order.FindDuplicate(rec.Phone, rec.Address, rows, s.now())
}

// agentCodeValid verifies a roster code embedded in the notes. Notes without
// a code pattern are vacuously valid, and roster lookup failures fail open:
// roster availability must never block order intake.
func (s *Service) agentCodeValid(ctx context.Context, notes string) bool {
	code, ok := order.AgentCode(notes)
	if !ok {
		return true
	}

	codes, err := s.roster.AgentCodes(ctx)
	if err != nil {
		s.logger.Error("reading agent roster, accepting code unchecked", "error", err)
		return true
	}

	for _, known := range codes {
		if strings.TrimSpace(known) == code {
			return true
		}
	}
	return false
}

// sendConfirmation replies with the operator's running totals for the day
// plus an outcome line, and forwards transfer proofs to the bookkeeping
// groups. Everything here is best-effort.
func (s *Service) sendConfirmation(ctx context.Context, msg *telegram.Message, operator string, rec order.Record) {
	stats := s.stats.Stats(ctx, operator, s.now())
	header := fmt.Sprintf("%s ★ %d INVOICE - %d Box - %d Sachet", operator, stats.Invoices, stats.Box, stats.Sachet)

	payMethod := strings.ToUpper(rec.PaymentMethod)
	fromChat := strconv.FormatInt(msg.Chat.ID, 10)

	switch {
	case strings.Contains(strings.ToLower(rec.Notes), "agen"):
		s.reply(ctx, msg, header+"\n\n🥷🏻 Data ter-supply untuk "+rec.Notes)
		if payMethod == "TRANSFER" && msg.HasPhoto() {
			s.forward(ctx, s.cfg.AgentGroupID, fromChat, msg.MessageID)
		}
	case payMethod == "TRANSFER":
		s.reply(ctx, msg, header+"\n\n🏧 Orderan Transfer "+rec.CustomerName+" diterima")
		if msg.HasPhoto() {
			s.forward(ctx, s.cfg.TransferGroupID, fromChat, msg.MessageID)
		}
	default:
		s.reply(ctx, msg, header+"\n\n✅ Success! "+rec.CustomerName+" berhasil diinput")
	}
}

// reply answers in the thread the message came from. Send failures are
// logged and swallowed; notification is never fatal to the pipeline.
func (s *Service) reply(ctx context.Context, msg *telegram.Message, text string) {
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if _, err := s.messenger.SendText(ctx, chatID, msg.MessageThreadID, text); err != nil {
		s.logger.Error("sending reply", "chat_id", chatID, "error", err)
	}
}

func (s *Service) forward(ctx context.Context, toChatID, fromChatID string, messageID int) {
	if err := s.messenger.ForwardMessage(ctx, toChatID, fromChatID, messageID); err != nil {
		s.logger.Error("forwarding message", "to", toChatID, "message_id", messageID, "error", err)
	}
}

func (s *Service) notifyAdmin(ctx context.Context, text string) {
	if s.cfg.AdminChatID == "" {
		return
	}
	if _, err := s.messenger.SendText(ctx, s.cfg.AdminChatID, 0, text); err != nil {
		s.logger.Error("notifying admin", "error", err)
	}
}

package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doorasi/closingbot/internal/infrastructure/config"
	"github.com/doorasi/closingbot/internal/infrastructure/msgstore"
	"github.com/doorasi/closingbot/internal/infrastructure/sheets"
	"github.com/doorasi/closingbot/internal/infrastructure/telegram"
)

// Jobs bundles the scheduled broadcasts: the nightly sales report, the
// morning agent list and the closing-input reminders.
type Jobs struct {
	agg       *Aggregator
	roster    sheets.Roster
	messenger telegram.Messenger
	store     *msgstore.Store
	cfg       config.TelegramConfig
	logger    *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewJobs wires the scheduled jobs.
func NewJobs(
	agg *Aggregator,
	roster sheets.Roster,
	messenger telegram.Messenger,
	store *msgstore.Store,
	cfg config.TelegramConfig,
	logger *slog.Logger,
) *Jobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &Jobs{
		agg:       agg,
		roster:    roster,
		messenger: messenger,
		store:     store,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (j *Jobs) WithClock(now func() time.Time) *Jobs {
	j.now = now
	return j
}

// Runner adapts a job to a cron-callable func. Failures are logged and
// reported to the admin chat; they never propagate into the scheduler.
func (j *Jobs) Runner(name string, fn func(context.Context) error) func() {
	return func() {
		ctx := context.Background()
		log := j.logger.With("job", name, "run_id", uuid.NewString()[:8])

		log.Info("job started")
		if err := fn(ctx); err != nil {
			log.Error("job failed", "error", err)
			j.notifyAdmin(ctx, fmt.Sprintf("Bot Error (%s): %v", name, err))
			return
		}
		log.Info("job finished")
	}
}

// SendSalesReport builds the ranked report, replaces today's previously sent
// copy and posts the fresh one to the sales group.
func (j *Jobs) SendSalesReport(ctx context.Context) error {
	now := j.now()

	text, err := j.agg.SalesReport(ctx, now)
	if err != nil {
		return err
	}

	storeKey := "sales_report_" + now.Format("2006-01-02")
	j.deleteStored(ctx, storeKey, j.cfg.SalesGroupID)

	msgID, err := j.messenger.SendText(ctx, j.cfg.SalesGroupID, j.cfg.SalesThreadID, text)
	if err != nil {
		return fmt.Errorf("sending sales report: %w", err)
	}
	if err := j.store.Set(storeKey, []int{msgID}); err != nil {
		j.logger.Warn("storing sales report message id", "error", err)
	}
	return nil
}

// SendAgentList posts the sorted roster to the agent notification group,
// replacing the previous day's list.
func (j *Jobs) SendAgentList(ctx context.Context) error {
	now := j.now()

	codes, err := j.roster.AgentCodes(ctx)
	if err != nil {
		return fmt.Errorf("reading agent roster: %w", err)
	}

	cleaned := make([]string, 0, len(codes))
	for _, code := range codes {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	sort.Strings(cleaned)

	if len(cleaned) == 0 {
		_, err := j.messenger.SendText(ctx, j.cfg.AgentNotifGroupID, j.cfg.AgentNotifThreadID,
			"🚨 Tidak ada agen yang tersedia di sheet 'AGEN'!")
		return err
	}

	j.deleteStored(ctx, "agent_notif_ids", j.cfg.AgentNotifGroupID)

	msgID, err := j.messenger.SendText(ctx, j.cfg.AgentNotifGroupID, j.cfg.AgentNotifThreadID,
		BuildAgentList(cleaned, now))
	if err != nil {
		return fmt.Errorf("sending agent list: %w", err)
	}
	if err := j.store.Set("agent_notif_ids", []int{msgID}); err != nil {
		j.logger.Warn("storing agent list message id", "error", err)
	}
	return nil
}

// SendClosingReminder fans the hour's reminder out to every configured sales
// thread. Hours without a reminder are a no-op so the job can share one cron
// entry across all reminder slots.
func (j *Jobs) SendClosingReminder(ctx context.Context) error {
	text := ReminderText(j.now().Hour())
	if text == "" {
		return nil
	}

	for _, threadID := range j.cfg.ReminderThreadIDs {
		if _, err := j.messenger.SendText(ctx, j.cfg.SalesGroupID, threadID, text); err != nil {
			j.logger.Error("sending reminder", "thread_id", threadID, "error", err)
			continue
		}
		j.logger.Info("reminder sent", "thread_id", threadID)
	}
	return nil
}

// deleteStored best-effort deletes the messages previously stored under key.
func (j *Jobs) deleteStored(ctx context.Context, key, chatID string) {
	ids, err := j.store.Get(key)
	if err != nil {
		j.logger.Warn("loading stored message ids", "key", key, "error", err)
		return
	}
	for _, id := range ids {
		if err := j.messenger.DeleteMessage(ctx, chatID, id); err != nil {
			j.logger.Warn("deleting old message", "message_id", id, "error", err)
		}
	}
}

// notifyAdmin reports a job failure to the admin chat, best-effort.
func (j *Jobs) notifyAdmin(ctx context.Context, text string) {
	if j.cfg.AdminChatID == "" {
		return
	}
	if _, err := j.messenger.SendText(ctx, j.cfg.AdminChatID, 0, text); err != nil {
		j.logger.Error("notifying admin", "error", err)
	}
}

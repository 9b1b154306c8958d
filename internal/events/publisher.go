package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// Topic names for downstream consumers (reporting, sync, audit).
const (
	TopicJournalPosted  = "ledger.journal.posted"
	TopicJournalVoided  = "ledger.journal.voided"
	TopicPeriodClosed   = "ledger.period.closed"
	TopicPeriodReopened = "ledger.period.reopened"
)

// JournalEventPayload is the wire format for journal lifecycle events.
type JournalEventPayload struct {
	JournalID     string               `json:"journalID"`
	BranchID      string               `json:"branchID"`
	EntryNumber   string               `json:"entryNumber"`
	EntryDate     time.Time            `json:"entryDate"`
	ReferenceType domain.ReferenceType `json:"referenceType"`
	ReferenceID   string               `json:"referenceID,omitempty"`
	TotalDebit    decimal.Decimal      `json:"totalDebit"`
	TotalCredit   decimal.Decimal      `json:"totalCredit"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

// PeriodClosedPayload is the wire format for fiscal-year closing events.
type PeriodClosedPayload struct {
	ClosingID  string          `json:"closingID"`
	BranchID   string          `json:"branchID"`
	Year       int             `json:"year"`
	NetIncome  decimal.Decimal `json:"netIncome"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// Publisher emits ledger lifecycle events to Kafka. A nil *Publisher is a
// valid no-op, so wiring stays unconditional even when brokers are not
// configured. Publishing is best-effort: a broker failure is logged and
// swallowed, never surfaced to the posting path.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka publisher for the given brokers. Returns nil
// when no brokers are configured.
func NewPublisher(brokers []string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

// JournalPosted emits a journal.posted event keyed by branch.
func (p *Publisher) JournalPosted(ctx context.Context, entry *domain.JournalEntry) {
	p.publishJournal(ctx, TopicJournalPosted, entry)
}

// JournalVoided emits a journal.voided event keyed by branch.
func (p *Publisher) JournalVoided(ctx context.Context, entry *domain.JournalEntry) {
	p.publishJournal(ctx, TopicJournalVoided, entry)
}

func (p *Publisher) publishJournal(ctx context.Context, topic string, entry *domain.JournalEntry) {
	if p == nil {
		return
	}
	payload := JournalEventPayload{
		JournalID:     entry.JournalID,
		BranchID:      entry.BranchID,
		EntryNumber:   entry.EntryNumber,
		EntryDate:     entry.EntryDate,
		ReferenceType: entry.ReferenceType,
		ReferenceID:   entry.ReferenceID,
		TotalDebit:    entry.TotalDebit,
		TotalCredit:   entry.TotalCredit,
		OccurredAt:    time.Now().UTC(),
	}
	p.publish(ctx, topic, entry.BranchID, payload)
}

// PeriodClosed emits a period.closed event keyed by branch.
func (p *Publisher) PeriodClosed(ctx context.Context, period *domain.ClosingPeriod) {
	p.publishPeriod(ctx, TopicPeriodClosed, period)
}

// PeriodReopened emits a period.reopened event after a closing is voided.
func (p *Publisher) PeriodReopened(ctx context.Context, period *domain.ClosingPeriod) {
	p.publishPeriod(ctx, TopicPeriodReopened, period)
}

func (p *Publisher) publishPeriod(ctx context.Context, topic string, period *domain.ClosingPeriod) {
	if p == nil {
		return
	}
	payload := PeriodClosedPayload{
		ClosingID:  period.ClosingID,
		BranchID:   period.BranchID,
		Year:       period.Year,
		NetIncome:  period.NetIncome,
		OccurredAt: time.Now().UTC(),
	}
	p.publish(ctx, topic, period.BranchID, payload)
}

func (p *Publisher) publish(ctx context.Context, topic, key string, payload any) {
	logger := middleware.GetLoggerFromCtx(ctx)
	value, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event payload", slog.String("topic", topic), slog.String("error", err.Error()))
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		logger.Error("Failed to publish event", slog.String("topic", topic), slog.String("error", err.Error()))
		return
	}
	logger.Debug("Published event", slog.String("topic", topic), slog.String("key", key))
}

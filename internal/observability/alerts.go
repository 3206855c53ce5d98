package observability

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/justjoin/justjoin-backend/internal/config"
	"github.com/justjoin/justjoin-backend/internal/mail"
)

// Entry is one buffered log record.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
}

// AlertBuffer keeps a bounded in-memory window of recent log entries and
// emails the admin when error-level entries cross a threshold. It plugs
// into zap via Hook. The buffer rotates down to the newest Keep entries
// on overflow or once per rotate interval; the alert fires at Threshold
// errors with a cooldown between alerts, then resets the counter.
type AlertBuffer struct {
	mu          sync.Mutex
	entries     []Entry
	cap         int
	keep        int
	threshold   int
	cooldown    time.Duration
	rotateEvery time.Duration

	errorCount int
	lastAlert  time.Time
	lastRotate time.Time

	mailer     mail.Mailer
	adminEmail string
	now        func() time.Time
}

// NewAlertBuffer builds the buffer from logger settings.
func NewAlertBuffer(cfg config.LoggerConfig, adminEmail string, mailer mail.Mailer) *AlertBuffer {
	b := &AlertBuffer{
		cap:         cfg.BufferCap,
		keep:        cfg.BufferKeep,
		threshold:   cfg.AlertThreshold,
		cooldown:    time.Duration(cfg.AlertCooldownMin) * time.Minute,
		rotateEvery: time.Duration(cfg.RotateIntervalHour) * time.Hour,
		mailer:      mailer,
		adminEmail:  adminEmail,
		now:         time.Now,
	}
	if b.cap <= 0 {
		b.cap = 500
	}
	if b.keep <= 0 || b.keep > b.cap {
		b.keep = 100
	}
	if b.threshold <= 0 {
		b.threshold = 10
	}
	if b.cooldown <= 0 {
		b.cooldown = time.Hour
	}
	if b.rotateEvery <= 0 {
		b.rotateEvery = 24 * time.Hour
	}
	b.lastRotate = b.now()
	return b
}

// Hook records one zap entry. Intended for zap.Hooks.
func (b *AlertBuffer) Hook(entry zapcore.Entry) error {
	b.mu.Lock()

	now := b.now()
	b.entries = append(b.entries, Entry{Time: entry.Time, Level: entry.Level.String(), Message: entry.Message})
	if len(b.entries) > b.cap || now.Sub(b.lastRotate) >= b.rotateEvery {
		b.rotateLocked(now)
	}

	var alert *mail.Message
	if entry.Level >= zapcore.ErrorLevel {
		b.errorCount++
		if b.errorCount >= b.threshold && now.Sub(b.lastAlert) >= b.cooldown {
			msg := mail.ErrorAlert(b.adminEmail, b.summaryLocked(b.threshold))
			alert = &msg
			b.lastAlert = now
			b.errorCount = 0
		}
	}
	b.mu.Unlock()

	if alert != nil && b.mailer != nil {
		// best-effort: an unreachable mail server must not break logging
		_ = b.mailer.Send(context.Background(), *alert)
	}
	return nil
}

func (b *AlertBuffer) rotateLocked(now time.Time) {
	if len(b.entries) > b.keep {
		kept := make([]Entry, b.keep)
		copy(kept, b.entries[len(b.entries)-b.keep:])
		b.entries = kept
	}
	b.lastRotate = now
}

// summaryLocked renders the n most recent error entries.
func (b *AlertBuffer) summaryLocked(n int) string {
	var lines []string
	for i := len(b.entries) - 1; i >= 0 && len(lines) < n; i-- {
		e := b.entries[i]
		if e.Level != zapcore.ErrorLevel.String() {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", e.Time.Format(time.RFC3339), e.Message))
	}
	return strings.Join(lines, "\n")
}

// Entries returns a copy of the buffered entries, oldest first.
func (b *AlertBuffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// SetNow overrides the clock. Test hook.
func (b *AlertBuffer) SetNow(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
	b.lastRotate = now()
}

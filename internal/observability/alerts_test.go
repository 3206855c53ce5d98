package observability

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/justjoin/justjoin-backend/internal/config"
	"github.com/justjoin/justjoin-backend/internal/mail"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *captureMailer) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.sent...)
}

func testBufferConfig() config.LoggerConfig {
	return config.LoggerConfig{
		BufferCap:          500,
		BufferKeep:         100,
		AlertThreshold:     10,
		AlertCooldownMin:   60,
		RotateIntervalHour: 24,
	}
}

func record(b *AlertBuffer, level zapcore.Level, msg string) {
	_ = b.Hook(zapcore.Entry{Time: time.Now(), Level: level, Message: msg})
}

func TestAlertBufferRotatesOnOverflow(t *testing.T) {
	b := NewAlertBuffer(testBufferConfig(), "admin@justjoin.jp", &captureMailer{})

	for i := 0; i < 501; i++ {
		record(b, zapcore.InfoLevel, fmt.Sprintf("entry %d", i))
	}

	entries := b.Entries()
	require.Len(t, entries, 100)
	assert.Equal(t, "entry 401", entries[0].Message)
	assert.Equal(t, "entry 500", entries[99].Message)
}

func TestAlertBufferRotatesAfterInterval(t *testing.T) {
	b := NewAlertBuffer(testBufferConfig(), "admin@justjoin.jp", &captureMailer{})

	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.SetNow(func() time.Time { return current })

	for i := 0; i < 200; i++ {
		record(b, zapcore.InfoLevel, fmt.Sprintf("entry %d", i))
	}
	require.Len(t, b.Entries(), 200)

	current = current.Add(25 * time.Hour)
	record(b, zapcore.InfoLevel, "after interval")

	entries := b.Entries()
	assert.Len(t, entries, 100)
	assert.Equal(t, "after interval", entries[99].Message)
}

func TestAlertFiresAtThreshold(t *testing.T) {
	mailer := &captureMailer{}
	b := NewAlertBuffer(testBufferConfig(), "admin@justjoin.jp", mailer)

	for i := 0; i < 9; i++ {
		record(b, zapcore.ErrorLevel, fmt.Sprintf("error %d", i))
	}
	assert.Empty(t, mailer.messages(), "below threshold")

	record(b, zapcore.ErrorLevel, "error 9")

	messages := mailer.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"admin@justjoin.jp"}, messages[0].To)
	assert.Contains(t, messages[0].Body, "error 9")
	assert.Contains(t, messages[0].Body, "error 0")
}

func TestAlertCooldownSuppressesRepeats(t *testing.T) {
	mailer := &captureMailer{}
	b := NewAlertBuffer(testBufferConfig(), "admin@justjoin.jp", mailer)

	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.SetNow(func() time.Time { return current })

	for i := 0; i < 20; i++ {
		record(b, zapcore.ErrorLevel, fmt.Sprintf("error %d", i))
	}
	assert.Len(t, mailer.messages(), 1, "second burst lands inside the cooldown")

	current = current.Add(61 * time.Minute)
	for i := 0; i < 10; i++ {
		record(b, zapcore.ErrorLevel, fmt.Sprintf("late error %d", i))
	}
	assert.Len(t, mailer.messages(), 2)
}

func TestWarningsDoNotCountTowardThreshold(t *testing.T) {
	mailer := &captureMailer{}
	b := NewAlertBuffer(testBufferConfig(), "admin@justjoin.jp", mailer)

	for i := 0; i < 50; i++ {
		record(b, zapcore.WarnLevel, "warn")
	}
	assert.Empty(t, mailer.messages())
}

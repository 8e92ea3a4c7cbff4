package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/logging"
)

type Kind string

const (
	KindChat     Kind = "chat"
	KindLevelUp  Kind = "levelup"
	KindMaxLevel Kind = "maxlevel"
)

type Notification struct {
	Kind      Kind
	Message   string
	BossKey   string
	Level     int
	CreatedAt time.Time
}

type publisher interface {
	Publish(ctx context.Context, entry Notification)
}

// Notifier turns chat lines and celebrations into notifications for the client to pick up
type Notifier struct {
	feed    publisher
	nowFunc func() time.Time
}

func New(feed publisher, nowFunc func() time.Time) *Notifier {
	return &Notifier{
		feed:    feed,
		nowFunc: nowFunc,
	}
}

func (n *Notifier) Notify(ctx context.Context, message string) {
	n.feed.Publish(ctx, Notification{
		Kind:      KindChat,
		Message:   message,
		CreatedAt: n.nowFunc(),
	})
}

func (n *Notifier) Celebrate(ctx context.Context, celebration domain.Celebration) {
	kind := KindLevelUp
	if celebration.IsMaxLevel() {
		kind = KindMaxLevel
	}

	n.feed.Publish(ctx, Notification{
		Kind:      kind,
		Message:   fmt.Sprintf("%s level %d", celebration.Boss.Name, celebration.Level),
		BossKey:   celebration.Boss.Key,
		Level:     celebration.Level,
		CreatedAt: n.nowFunc(),
	})
}

// Panel tracks when the summary panel must be rebuilt and which boss it should show
type Panel struct {
	mu       sync.Mutex
	revision uint64
	focus    string
}

func NewPanel() *Panel {
	return &Panel{}
}

func (p *Panel) Refresh(ctx context.Context, bossKey string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.revision++
	p.focus = bossKey

	logging.FromContext(ctx).DebugContext(
		ctx,
		"Panel refresh requested",
		slog.Uint64("revision", p.revision),
		slog.String("focus", bossKey),
	)
}

// State returns the current revision and the boss the panel should focus on
func (p *Panel) State() (uint64, string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.revision, p.focus
}

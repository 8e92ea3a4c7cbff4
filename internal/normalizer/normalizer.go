package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/strutils"
)

// Event is a single chat line as delivered by the game client
type Event struct {
	// Message is the detagged chat line
	Message string
	// Sender is the originating actor as reported by the client, if any
	Sender string
}

type KillCount struct {
	Boss  domain.Boss
	Count int64
	// Grammar is the name of the message format that matched
	Grammar string
}

type senderSource int

const (
	// The grammar only matches messages about the local player
	senderImplicit senderSource = iota
	// The sender is captured by the grammar itself
	senderCaptured
	// The sender is taken from the event
	senderFromEvent
)

type grammar struct {
	name    string
	pattern *regexp.Regexp
	sender  senderSource

	senderGroup int
	bossGroup   int
	countGroup  int
}

// Ordered by priority. The first grammar that matches structurally decides the outcome.
var grammars = []grammar{
	{
		name:       "game",
		pattern:    regexp.MustCompile(`^Your (.+) kill count is: (\d+)\.$`),
		sender:     senderImplicit,
		bossGroup:  1,
		countGroup: 2,
	},
	{
		name:        "prefixed",
		pattern:     regexp.MustCompile(`^(.+?):\s*(.+?)\s+kill count:\s*(\d+)\s*$`),
		sender:      senderCaptured,
		senderGroup: 1,
		bossGroup:   2,
		countGroup:  3,
	},
	{
		name:       "body",
		pattern:    regexp.MustCompile(`^(.+?)\s+kill count:\s*(\d+)\s*$`),
		sender:     senderFromEvent,
		bossGroup:  1,
		countGroup: 2,
	},
}

type bossFinder interface {
	FindByName(name string) (domain.Boss, bool)
}

type Normalizer struct {
	bosses bossFinder
}

func New(bosses bossFinder) *Normalizer {
	return &Normalizer{bosses: bosses}
}

// Normalize extracts a kill count of the local player from a chat event.
// Lines that are not kill count messages, are about another player, name an unknown boss,
// or carry a count that does not parse are ignored by returning false.
func (n *Normalizer) Normalize(event Event, localPlayerName string) (KillCount, bool) {
	message := strings.TrimSpace(event.Message)

	for _, g := range grammars {
		match := g.pattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}

		switch g.sender {
		case senderCaptured:
			if !strutils.NamesEqual(match[g.senderGroup], localPlayerName) {
				return KillCount{}, false
			}
		case senderFromEvent:
			if !strutils.NamesEqual(event.Sender, localPlayerName) {
				return KillCount{}, false
			}
		}

		boss, ok := n.bosses.FindByName(match[g.bossGroup])
		if !ok {
			return KillCount{}, false
		}

		count, err := strconv.ParseInt(match[g.countGroup], 10, 64)
		if err != nil {
			return KillCount{}, false
		}

		return KillCount{Boss: boss, Count: count, Grammar: g.name}, true
	}

	return KillCount{}, false
}

package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Amund211/bosslevels/internal/adapters/celebration"
	"github.com/Amund211/bosslevels/internal/adapters/kvstore"
	"github.com/Amund211/bosslevels/internal/adapters/notifier"
	"github.com/Amund211/bosslevels/internal/adapters/terminal"
	"github.com/Amund211/bosslevels/internal/app"
	"github.com/Amund211/bosslevels/internal/config"
	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/dropqueue"
	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/normalizer"
	"github.com/Amund211/bosslevels/internal/overlay"
	"github.com/Amund211/bosslevels/internal/progression"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval  = time.Second / 60
	cellWidth      = 8
	cellHeight     = 16
	chimeVolume    = 0.6
	defaultLogPath = "bosslevels-tui.log"
)

// parseLine reads "sender<TAB>message", or a bare message without a sender
func parseLine(line string) normalizer.Event {
	line = strings.TrimRight(line, "\r\n")
	if sender, message, ok := strings.Cut(line, "\t"); ok {
		return normalizer.Event{Sender: sender, Message: message}
	}
	return normalizer.Event{Message: line}
}

func readLines(r io.Reader, lines chan<- normalizer.Event) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- parseLine(scanner.Text())
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func pollEvents(screen tcell.Screen, quit chan<- struct{}) {
	defer close(quit)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if isQuit(ev) {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func main() {
	ctx := context.Background()

	logPath := os.Getenv("BOSSLEVELS_TUI_LOG")
	if logPath == "" {
		logPath = defaultLogPath
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, nil))
	ctx = logging.AddToContext(ctx, logger)

	// The overlay is a local tool, default to a development setup
	if _, ok := os.LookupEnv("BOSSLEVELS_ENVIRONMENT"); !ok {
		os.Setenv("BOSSLEVELS_ENVIRONMENT", "development")
	}

	conf, err := config.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Info("Loaded config", "config", conf.NonSensitiveString())

	settings, err := config.SettingsFromEnv()
	if err != nil {
		log.Fatalf("Failed to load overlay settings: %v", err)
	}

	store, closeStore, err := kvstore.Open(ctx, conf, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	registry := domain.NewDefaultRegistry()
	progressStore := progression.Load(ctx, registry, store)

	dropQueue := dropqueue.New()
	renderer := overlay.NewRenderer(registry, overlay.MarkerIcons{}, overlay.DefaultAscent)

	feed, stopFeed := notifier.NewFeed[notifier.Notification](10*time.Minute, 256)
	defer stopFeed()
	chatNotifier := notifier.New(feed, time.Now)
	panel := notifier.NewPanel()

	celebrator := celebration.NewMulti(celebration.NewLogCelebrator(), chatNotifier)
	chime, err := celebration.NewChime(chimeVolume)
	if err != nil {
		logger.Warn("Failed to initialize chime, celebrating in the log only", "error", err.Error())
	} else {
		celebrator = celebration.NewMulti(celebration.NewLogCelebrator(), chatNotifier, chime)
	}

	getSettings := app.StaticSettings(settings)

	handleChatLine := app.BuildHandleChatLine(
		normalizer.New(registry),
		progressStore,
		dropQueue,
		panel,
		chatNotifier,
		celebrator,
		getSettings,
		conf.PlayerName,
		time.Now,
	)
	renderFrame := app.BuildRenderFrame(dropQueue, renderer, getSettings, time.Now)

	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	err = tcellScreen.Init()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer tcellScreen.Fini()

	screen := terminal.New(tcellScreen, cellWidth, cellHeight)

	lines := make(chan normalizer.Event)
	go readLines(os.Stdin, lines)

	quit := make(chan struct{})
	go pollEvents(tcellScreen, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	logger.Info("Init complete")
	for {
		select {
		case <-quit:
			logger.Info("Quitting")
			return
		case event, ok := <-lines:
			if !ok {
				// Keep showing the overlay until the user quits
				lines = nil
				continue
			}
			handleChatLine(ctx, event)
		case <-ticker.C:
			ops := renderFrame(screen.Canvas())
			_, focus := panel.State()
			screen.Draw(ops, progressStore.Snapshot(), focus)
		}
	}
}

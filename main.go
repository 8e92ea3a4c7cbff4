package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/Amund211/bosslevels/internal/adapters/celebration"
	"github.com/Amund211/bosslevels/internal/adapters/kvstore"
	"github.com/Amund211/bosslevels/internal/adapters/notifier"
	"github.com/Amund211/bosslevels/internal/app"
	"github.com/Amund211/bosslevels/internal/config"
	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/dropqueue"
	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/normalizer"
	"github.com/Amund211/bosslevels/internal/overlay"
	"github.com/Amund211/bosslevels/internal/ports"
	"github.com/Amund211/bosslevels/internal/progression"
	"github.com/Amund211/bosslevels/internal/reporting"
	"github.com/Amund211/bosslevels/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	_ "golang.org/x/crypto/x509roots/fallback"
)

const serviceName = "bosslevels"

func release() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return "unknown"
}

func main() {
	ctx := context.Background()
	instanceID := uuid.New().String()
	baseHandler := slog.NewJSONHandler(os.Stdout, nil)
	logger := slog.New(baseHandler).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	conf, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}

	logger = slog.New(logging.NewTracingLogHandler(baseHandler, conf.GoogleCloudProject())).With("instanceID", instanceID)
	logger.Info("Loaded config", "config", conf.NonSensitiveString())

	settings, err := config.SettingsFromEnv()
	if err != nil {
		fail("Failed to load overlay settings", "error", err.Error())
	}

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(conf, release())
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	if conf.OTLPEnabled() {
		shutdown, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			fail("Failed to initialize OpenTelemetry", "error", err.Error())
		}
		defer func() {
			err := shutdown(context.Background())
			if err != nil {
				logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
			}
		}()
		logger.Info("Initialized OpenTelemetry")
	}

	ctx = logging.AddToContext(ctx, logger)

	store, closeStore, err := kvstore.Open(ctx, conf, logger)
	if err != nil {
		fail("Failed to initialize storage", "error", err.Error())
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

	getSettings := app.StaticSettings(settings)

	handleChatLine := app.BuildHandleChatLine(
		normalizer.New(registry),
		progressStore,
		dropQueue,
		panel,
		chatNotifier,
		celebration.NewMulti(celebration.NewLogCelebrator(), chatNotifier),
		getSettings,
		conf.PlayerName,
		time.Now,
	)
	renderFrame := app.BuildRenderFrame(dropQueue, renderer, getSettings, time.Now)
	getOverview := app.BuildGetOverview(progressStore)
	getBossDetail := app.BuildGetBossDetail(progressStore)

	allowedOrigins, err := ports.NewDomainSuffixes(conf.CORSDomainSuffixes()...)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}

	mux := http.NewServeMux()

	mux.HandleFunc("OPTIONS /v1/chat", ports.BuildCORSHandler(allowedOrigins))
	mux.HandleFunc(
		"POST /v1/chat",
		ports.MakePostChatHandler(
			handleChatLine,
			allowedOrigins,
			logger.With("port", "chat"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc("OPTIONS /v1/overlay/frame", ports.BuildCORSHandler(allowedOrigins))
	mux.HandleFunc(
		"GET /v1/overlay/frame",
		ports.MakeGetOverlayFrameHandler(
			renderFrame,
			allowedOrigins,
			logger.With("port", "overlayframe"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc("OPTIONS /v1/bosses", ports.BuildCORSHandler(allowedOrigins))
	mux.HandleFunc(
		"GET /v1/bosses",
		ports.MakeGetBossesHandler(
			getOverview,
			panel.State,
			allowedOrigins,
			logger.With("port", "bosses"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc("OPTIONS /v1/bosses/{key}", ports.BuildCORSHandler(allowedOrigins))
	mux.HandleFunc(
		"GET /v1/bosses/{key}",
		ports.MakeGetBossDetailHandler(
			getBossDetail,
			allowedOrigins,
			logger.With("port", "bossdetail"),
			sentryMiddleware,
		),
	)

	mux.HandleFunc("OPTIONS /v1/notifications", ports.BuildCORSHandler(allowedOrigins))
	mux.HandleFunc(
		"GET /v1/notifications",
		ports.MakeGetNotificationsHandler(
			feed.Drain,
			allowedOrigins,
			logger.With("port", "notifications"),
			sentryMiddleware,
		),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", conf.Port()), otelhttp.NewHandler(mux, serviceName))
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/CedricFinance/thought_catcher/config"
	"github.com/CedricFinance/thought_catcher/model"
	"github.com/CedricFinance/thought_catcher/notify"
	"github.com/CedricFinance/thought_catcher/notion"
	"github.com/CedricFinance/thought_catcher/parser"
	"github.com/CedricFinance/thought_catcher/repository"
)

const serviceName = "thought_catcher"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logx.Must(fmt.Errorf("configuration error: %w", err))
	}

	logx.MustSetup(logx.LogConf{
		ServiceName: serviceName,
		Mode:        cfg.Log.Mode,
		Encoding:    cfg.Log.Encoding,
		Level:       cfg.Log.Level,
	})
	defer logx.Close()

	if err := cfg.Validate(); err != nil {
		logx.Must(fmt.Errorf("configuration error: %w", err))
	}

	location, _ := cfg.TimeLocation()

	ctx := context.Background()

	writer, closeWriter, err := newWriter(ctx, cfg)
	if err != nil {
		logx.Must(err)
	}
	defer closeWriter()

	capture := &Capture{
		Parser: parser.New(parser.WithLocation(location)),
		Writer: writer,
	}
	if cfg.Slack.WebhookURL != "" {
		capture.Notifier = notify.NewSlackNotifier(cfg.Slack.WebhookURL)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(capture),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logx.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logx.Errorf("Server shutdown error: %v", err)
		}
	}()

	logx.Infof("Listening on port %s (sink: %s, location: %s)", cfg.Port, cfg.Sink, location)
	logx.Infof("  Twilio: http://localhost:%s/sms/twilio", cfg.Port)
	logx.Infof("  Nexmo:  http://localhost:%s/sms/nexmo", cfg.Port)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logx.Must(fmt.Errorf("server error: %w", err))
	}

	logx.Info("Server stopped")
}

func newRouter(capture *Capture) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Method(http.MethodPost, "/sms/twilio", WebhookHandler[model.SMS]{
		Parser:  ParseTwilioSMS,
		Handler: capture.Handle,
		Reply:   TwimlReply,
	})

	nexmo := WebhookHandler[model.SMS]{
		Parser:  ParseNexmoSMS,
		Handler: capture.Handle,
		Reply:   PlainReply,
	}
	r.Method(http.MethodPost, "/sms/nexmo", nexmo)
	r.Method(http.MethodGet, "/sms/nexmo", nexmo)

	return r
}

func newWriter(ctx context.Context, cfg *config.Config) (ThoughtWriter, func(), error) {
	switch cfg.Sink {
	case config.SinkMySQL:
		repo, err := repository.Open(cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}

		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, nil, err
		}

		logx.Info("Writing thoughts to MySQL")
		return repo, func() { repo.Close() }, nil
	default:
		logx.Infof("Writing thoughts to Notion database %s", cfg.Notion.DatabaseID)
		return notion.NewClient(notion.Config{
			DatabaseID: cfg.Notion.DatabaseID,
			TimeZone:   cfg.Notion.TimeZone,
			BaseURL:    cfg.Notion.BaseURL,
			Version:    cfg.Notion.Version,
		}), func() {}, nil
	}
}

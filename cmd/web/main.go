//go:build js && wasm

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/IlianBuh/Blog-service/internal/config/duration"
	"github.com/IlianBuh/Blog-service/internal/config/frontend"
	"github.com/IlianBuh/Blog-service/internal/frontend/controller"
	"github.com/IlianBuh/Blog-service/internal/frontend/dom/jsdom"
	"github.com/IlianBuh/Blog-service/internal/frontend/editor"
	"github.com/IlianBuh/Blog-service/internal/frontend/editor/quill"
	"github.com/IlianBuh/Blog-service/internal/frontend/remote"
	"github.com/IlianBuh/Blog-service/internal/frontend/render"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
)

const bootstrapTimeout = 5 * time.Second

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := loadConfig(log)

	ctrl, err := controller.New(
		log,
		jsdom.New(),
		editor.New(quill.New("#editor")),
		remote.New(cfg.APIBaseURL, cfg.Timeout.Duration),
		render.New(cfg.DateLayout, time.Local),
		controller.DefaultIDs(),
	)
	if err != nil {
		log.Error("failed to start page", sl.Err(err))
		return
	}

	ctrl.Bind()
	go func() {
		_ = ctrl.LoadPosts(context.Background())
	}()

	log.Info("page is ready")

	select {}
}

// loadConfig fetches page configuration from the serving origin and falls
// back to defaults when it is unavailable
func loadConfig(log *slog.Logger) frontend.Config {
	cfg := frontend.Config{
		Timeout:    duration.Duration{Duration: bootstrapTimeout},
		DateLayout: frontend.DefaultDateLayout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	if err := remote.New("", bootstrapTimeout).Config(ctx, &cfg); err != nil {
		log.Warn("failed to load config, using defaults", sl.Err(err))
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = frontend.DefaultDateLayout
	}

	return cfg
}

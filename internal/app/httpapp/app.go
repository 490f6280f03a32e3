package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/IlianBuh/Blog-service/internal/config/frontend"
	e "github.com/IlianBuh/Blog-service/internal/lib/errors"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
	httpserver "github.com/IlianBuh/Blog-service/internal/transport/http-server"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	log     *slog.Logger
	port    int
	httpsrv *http.Server
}

func New(
	log *slog.Logger,
	port int,
	post httpserver.PostService,
	timeout time.Duration,
	front frontend.Config,
	staticDir string,
) *App {
	srv := &http.Server{
		Handler:           httpserver.Handler(log, post, timeout, front, staticDir),
		ReadHeaderTimeout: timeout,
	}

	return &App{
		log:     log,
		port:    port,
		httpsrv: srv,
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic("failed to run http application: " + err.Error())
	}
}

func (a *App) Run() error {
	const op = "httpapp.Run"

	l, err := net.Listen("tcp", fmt.Sprintf(":%d", a.port))
	if err != nil {
		return e.Fail(op, err)
	}

	return a.Serve(l)
}

// Serve accepts connections on l until Stop is called
func (a *App) Serve(l net.Listener) error {
	const op = "httpapp.Serve"
	log := a.log.With(slog.String("op", op))
	log.Info("http server is started", slog.String("addr", l.Addr().String()))

	err := a.httpsrv.Serve(l)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return e.Fail(op, err)
	}

	return nil
}

func (a *App) Stop() {
	const op = "httpapp.Stop"
	log := a.log.With(slog.String("op", op))
	log.Info("stop http application")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpsrv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown http server", sl.Err(err))
		return
	}

	log.Info("http application stopped")
}

package grpcapp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/IlianBuh/Blog-service/internal/lib/errors"
	grpcserver "github.com/IlianBuh/Blog-service/internal/transport/grpc-server"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type App struct {
	log      *slog.Logger
	port     int
	grpcsrvr *grpc.Server
}

func New(
	log *slog.Logger,
	port int,
	post grpcserver.PostService,
	timeout time.Duration,
) *App {
	recoveryOpt := []recovery.Option{
		recovery.WithRecoveryHandler(
			func(p any) error {
				log.Error("recover panic", slog.Any("panic", p))

				return status.Errorf(codes.Internal, "internal error")
			},
		),
	}

	loggingOpt := []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
	}

	grpcsrvr := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt...),
			logging.UnaryServerInterceptor(interceptorLogger(log), loggingOpt...),
		),
	)

	grpcserver.Register(grpcsrvr, post, timeout)

	return &App{
		log:      log,
		port:     port,
		grpcsrvr: grpcsrvr,
	}
}

// interceptorLogger adapts slog logger to the middleware logger
func interceptorLogger(l *slog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic("failed to run application: " + err.Error())
	}
}

func (a *App) Run() error {
	const op = "grpcapp.Run"

	l, err := net.Listen("tcp", fmt.Sprintf(":%d", a.port))
	if err != nil {
		return errors.Fail(op, err)
	}

	return a.Serve(l)
}

// Serve accepts connections on l until Stop is called
func (a *App) Serve(l net.Listener) error {
	const op = "grpcapp.Serve"
	log := a.log.With(slog.String("op", op))
	log.Info("grpc server is started", slog.String("addr", l.Addr().String()))

	if err := a.grpcsrvr.Serve(l); err != nil {
		return errors.Fail(op, err)
	}

	return nil
}

func (a *App) Stop() {
	const op = "grpcapp.Stop"

	a.log.Info("stop grpc application", slog.String("op", op))

	a.grpcsrvr.GracefulStop()

	a.log.Info("grpc application stopped", slog.String("op", op))
}

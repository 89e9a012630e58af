package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/auth"
	"github.com/sj9102001/workly/internal/config"
	"github.com/sj9102001/workly/internal/infra/persistence"
	"github.com/sj9102001/workly/internal/outbox"
	"github.com/sj9102001/workly/internal/transport/http/handlers"
	"github.com/sj9102001/workly/internal/transport/http/middleware"
	"github.com/sj9102001/workly/internal/usecase"
)

func Run(ctx context.Context, cfg config.Config) error {
	start := time.Now()
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth: jwt_secret is required")
	}

	conn, err := OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	log.Infof("bootstrap: db init in %s", time.Since(start))
	defer conn.Close()

	userRepo := persistence.NewUserRepository(conn)
	orgRepo := persistence.NewOrganizationRepository(conn)
	inviteRepo := persistence.NewInviteRepository(conn)
	projectRepo := persistence.NewProjectRepository(conn)
	boardRepo := persistence.NewBoardRepository(conn)
	issueRepo := persistence.NewIssueRepository(conn)
	commentRepo := persistence.NewCommentRepository(conn)
	notificationRepo := persistence.NewNotificationRepository(conn)
	outboxRepo := persistence.NewOutboxRepository(conn)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	writer := outbox.NewWriter(outboxRepo, cfg.NATS.OrgEventsSubject)

	userUC := usecase.NewUser(userRepo, tokens, log)
	orgUC := usecase.NewOrganization(conn, orgRepo, writer, log)
	inviteUC := usecase.NewInvite(conn, inviteRepo, orgRepo, userRepo, writer, log)
	projectUC := usecase.NewProject(conn, projectRepo, boardRepo, issueRepo, orgRepo, log)
	commentUC := usecase.NewComment(conn, commentRepo, issueRepo, projectRepo, userRepo, writer, log)
	notificationUC := usecase.NewNotification(notificationRepo, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery())
	handler := handlers.NewHandler(conn, userUC, orgUC, inviteUC, projectUC, commentUC, notificationUC, log)
	routerBuilder := handlers.NewRouter(handler)
	routerBuilder.RegisterRoutes(router, middleware.Auth(tokens))

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("bootstrap: server listening on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.WithError(err).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown error")
	}

	return nil
}

// OpenDB connects to postgres with the configured pools and verifies the
// connection before returning.
func OpenDB(ctx context.Context, cfg config.Config) (*persistence.DB, error) {
	conn, err := persistence.New(ctx, persistence.Config{
		WriteDSN:          cfg.Database.WriteDSN,
		ReadDSN:           cfg.Database.ReadDSN,
		MaxConns:          cfg.Database.MaxConns,
		MinConns:          cfg.Database.MinConns,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
	})
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if cfg.Database.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()
	}
	if err := conn.Ping(pingCtx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func buildLogger(cfg config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	switch cfg.Log.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "console", "":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		return nil, errors.New("log format error: supported values are console or json")
	}
	return log, nil
}

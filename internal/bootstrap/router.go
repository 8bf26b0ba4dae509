package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vibecodes/vibecodes-api/config"
	"github.com/vibecodes/vibecodes-api/internal/agents"
	httpapi "github.com/vibecodes/vibecodes-api/internal/api/http"
	"github.com/vibecodes/vibecodes-api/internal/api/http/middleware"
	authmw "github.com/vibecodes/vibecodes-api/internal/auth/middleware"
	"github.com/vibecodes/vibecodes-api/internal/board"
	"github.com/vibecodes/vibecodes-api/internal/comments"
	discussionshttp "github.com/vibecodes/vibecodes-api/internal/discussions/http"
	discussionsrepo "github.com/vibecodes/vibecodes-api/internal/discussions/repository"
	discussionssvc "github.com/vibecodes/vibecodes-api/internal/discussions/service"
	"github.com/vibecodes/vibecodes-api/internal/enhance"
	ideashttp "github.com/vibecodes/vibecodes-api/internal/ideas/http"
	ideasrepo "github.com/vibecodes/vibecodes-api/internal/ideas/repository"
	ideassvc "github.com/vibecodes/vibecodes-api/internal/ideas/service"
	"github.com/vibecodes/vibecodes-api/internal/notifications"
	"github.com/vibecodes/vibecodes-api/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	SQL         *sql.DB
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	// Verifier checks Firebase ID tokens. Nil selects X-User-Id dev auth.
	Verifier authmw.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	metrics := middleware.NewMetrics()
	r.Use(metrics.Middleware())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-User-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	var dbPing, redisPing httpapi.Pinger
	if dep.Pool != nil {
		dbPing = dep.Pool
	}
	if dep.Redis != nil {
		redisPing = httpapi.PingFunc(func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() })
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dbPing, redisPing).RegisterRoutes(r)

	api := r.Group("/api/v1")
	if dep.Verifier != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.Verifier))
	} else {
		api.Use(authmw.DevAuthMiddleware())
	}

	userSvc := users.NewService(users.NewRepo(dep.Pool))
	api.Use(users.WithUser(userSvc))
	users.Register(api, userSvc)

	var publisher *notifications.Publisher
	if dep.Redis != nil {
		publisher = notifications.NewPublisher(dep.Redis)
	}
	notifySvc := notifications.NewService(notifications.NewRepo(dep.SQL), publisher)
	notifications.NewHandler(notifySvc, publisher).Register(api.Group("/notifications"))

	ideaSvc := ideassvc.NewIdeaService(ideasrepo.NewIdeaRepository(dep.SQL), notifySvc)
	ideashttp.New(ideaSvc).Register(api)

	comments.Register(api, comments.NewService(comments.NewRepo(dep.SQL), notifySvc))
	board.Register(api, board.NewService(board.NewRepo(dep.SQL)))

	discussionSvc := discussionssvc.NewDiscussionService(discussionsrepo.NewDiscussionRepository(dep.SQL), notifySvc)
	discussionshttp.New(discussionSvc).Register(api)

	agents.Register(api.Group("/bots"), agents.NewService(agents.NewRepo(dep.Pool)))

	ai := dep.Config.AI
	var client enhance.Enhancer
	if ai.APIKey != "" {
		client = enhance.NewClient(ai.BaseURL, ai.APIKey, ai.Timeout)
	}
	enhance.Register(api, enhance.NewService(ideaSvc, client, enhance.NewLimiter(ai.RatePerMinute, ai.Burst)))

	return r
}

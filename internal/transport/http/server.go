package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"linkup/internal/config"
	"linkup/internal/database"
	"linkup/internal/handler"
	"linkup/internal/redis"
	"linkup/internal/repository"
	"linkup/internal/service"
	"linkup/internal/session"
	"linkup/internal/view"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	// 2. Connect to Database and apply schema
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 3. Connect to Redis (session store)
	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()

	if err := redis.Ping(context.Background(), redisClient); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// 4. Sessions
	maxAge := time.Duration(cfg.SessionMaxAge) * time.Second
	sessionStore := session.NewRedisStore(redisClient, maxAge)
	sessionCodec := session.NewCodec(cfg.SessionSecret, maxAge)
	sessions := session.NewManager(sessionStore, sessionCodec)

	// 5. Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	historyRepo := repository.NewSearchHistoryRepository(db)

	// 6. Services
	userService := service.NewUserService(userRepo, linkRepo)
	postService := service.NewPostService(postRepo)
	commentService := service.NewCommentService(commentRepo)
	searchService := service.NewSearchService(userRepo, historyRepo)
	mediaService, err := service.NewMediaService(cfg)
	if err != nil {
		return fmt.Errorf("failed to init media storage: %w", err)
	}

	// 7. Views
	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	// 8. Handlers
	routerCfg := RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, sessions, renderer),
		PostHandler:    handler.NewPostHandler(postService, commentService, userService, mediaService, sessions, renderer),
		CommentHandler: handler.NewCommentHandler(commentService, sessions, renderer),
		ProfileHandler: handler.NewProfileHandler(userService, postService, mediaService, sessions, renderer),
		SearchHandler:  handler.NewSearchHandler(searchService, userService, sessions, renderer),
		MediaHandler:   handler.NewMediaHandler(mediaService),
		Sessions:       sessions,
	}

	router := NewRouter(routerCfg)

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}

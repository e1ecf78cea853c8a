package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"doodleparty/analysis"
	"doodleparty/auth"
	"doodleparty/canvas"
	"doodleparty/config"
	"doodleparty/crypto"
	"doodleparty/game"
	"doodleparty/logger"
	"doodleparty/migrations"
	"doodleparty/prompt"
	"doodleparty/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetTrustedProxies([]string{"127.0.0.1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("loading config")
	}
	logger.Setup(cfg.LogLevel, cfg.Pretty())
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if err := migrations.Migrate(cfg.PostgresURL); err != nil {
		log.Fatal().Err(err).Msg("running migrations")
	}

	// Dependencies
	pgRepo, err := storage.NewPostgresRepo(context.Background(), cfg.PostgresURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to postgres")
	}
	defer pgRepo.Close()

	passcodeHasher := crypto.NewArgon2idHasher(3, 1024*64, 32, 16, 1)
	tokenManager := crypto.NewJWTManager(cfg.JWTKey, cfg.SessionMaxAge)
	sessionHandler := auth.NewSessionHandler(tokenManager, cfg.SessionMaxAge)

	translator, err := prompt.NewTranslator()
	if err != nil {
		log.Fatal().Err(err).Msg("loading prompt catalogs")
	}
	deps := game.DrawingDeps{
		Scorer:     analysis.NewEngine(),
		Prompts:    prompt.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), translator),
		Recorder:   pgRepo,
		Compositor: canvas.NewCompositor(canvas.DefaultCellWidth, canvas.DefaultCellHeight),
		Hasher:     passcodeHasher,
		Timings:    game.DefaultTimings(),
	}

	r := CreateServer(cfg.AllowedOrigins)

	{
		session := r.Group("/session")
		session.POST("", sessionHandler.CreateSessionHandler)
		session.POST("/end", sessionHandler.EndSessionHandler)
	}

	idGen := game.NewIdGen()
	tickerGen := game.NewTickerGen()
	wg := sync.WaitGroup{}
	lobby := game.NewLobby(idGen, tickerGen, &wg)

	lobbyStarted := make(chan struct{})
	go lobby.LobbyActor(lobbyStarted)
	<-lobbyStarted

	gameHandler := game.NewGameHandler(lobby, deps, pgRepo, cfg.AllowedOrigins, cfg.PublicURL)
	{
		gameGroup := r.Group("/game")
		gameGroup.Use(sessionHandler.RequireSessionMiddleware(time.Second * 2))

		gameGroup.GET("/create", gameHandler.CreateGameHandler)
		gameGroup.GET("/join/:roomid", gameHandler.JoinGameHandler)
		gameGroup.GET("/games", gameHandler.GetPublicGamesHandler)
		gameGroup.GET("/results", gameHandler.ResultsHandler)
		gameGroup.GET("/results/:resultid", gameHandler.ResultHandler)
		gameGroup.GET("/qr/:roomid", gameHandler.QRHandler)
		gameGroup.GET("/options", gameHandler.OptionsHandler)
	}

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, os.Interrupt)
	log.Info().Str("addr", cfg.Addr()).Msg("server started")
	<-sigCh
	log.Info().Msg("SIGTERM or SIGINT received, waiting for rooms to finish before shutting down")

	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutting down server")
	}
	log.Info().Msg("shutting down now")
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/configs"
	database "ecole_backend/internals/databases"
	authService "ecole_backend/internals/features/users/auth/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/media"
	middlewares "ecole_backend/internals/middlewares"
	"ecole_backend/internals/realtime"
	"ecole_backend/internals/revalidate"
	routes "ecole_backend/internals/route"
	routeDetails "ecole_backend/internals/route/details"
)

func main() {
	configs.LoadEnv()
	cfg := configs.App

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               8 * 1024 * 1024, // photos
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + warm-up + schema
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	bootCtx, bootCancel := context.WithTimeout(context.Background(), time.Minute)
	if err := database.Migrate(bootCtx, database.DB); err != nil {
		log.Fatalf("❌ migrations: %v", err)
	}
	bootCancel()

	reg := revalidate.NewRegistry(nil)

	// 📷 photo host
	host := mediaHost(cfg)
	var photos *media.Photos
	if host != nil {
		photos = media.NewPhotos(host, cfg.CloudinaryFolder)
	}

	// 📡 realtime: one LISTEN connection for the whole process
	runCtx, stopRun := context.WithCancel(context.Background())
	defer stopRun()
	listener := realtime.NewListener(cfg.DirectDSN(), cfg.RealtimeChannel, reg)
	go func() {
		if err := listener.Start(runCtx); err != nil && runCtx.Err() == nil {
			log.Printf("[REALTIME] arrêté: %v", err)
		}
	}()
	hub := realtime.NewHub()

	svc := routeDetails.NewServices(routeDetails.Deps{
		DB:       database.DB,
		Registry: reg,
		Photos:   photos,
		GoTrue: &authService.GoTrue{
			BaseURL: cfg.SupabaseURL,
			AnonKey: cfg.SupabaseAnonKey,
			Timeout: 10 * time.Second,
		},
		Changes:    listener,
		MaxLookups: cfg.RealtimeLookupMax,
	})

	// 🧹 orphan photos
	if host != nil && cfg.ReaperSchedule != "" {
		reaper := &media.OrphanReaper{
			Host:       host,
			Folder:     cfg.CloudinaryFolder,
			Grace:      cfg.ReaperGrace,
			DryRun:     cfg.ReaperDryRun,
			Referenced: svc.Students.PhotoURLs,
		}
		if c, err := reaper.Start(cfg.ReaperSchedule); err != nil {
			log.Printf("[MEDIA-REAPER] planification invalide %q: %v", cfg.ReaperSchedule, err)
		} else {
			defer c.Stop()
		}
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, svc, reg, hub)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopRun()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// mediaHost picks the photo host from MEDIA_PROVIDER. A host that cannot be
// configured disables photo uploads instead of stopping the server.
func mediaHost(cfg *configs.AppConfig) media.MediaHost {
	switch cfg.MediaProvider {
	case "cloudinary":
		h, err := media.NewCloudinaryHost(cfg.CloudinaryURL)
		if err != nil {
			log.Printf("⚠️ Cloudinary indisponible: %v", err)
			return nil
		}
		return h
	case "oss":
		h, err := media.NewOSSHostFromEnv()
		if err != nil {
			log.Printf("⚠️ OSS indisponible: %v", err)
			return nil
		}
		return h
	case "mock":
		log.Println("⚠️ MEDIA_PROVIDER=mock, photos gardées en mémoire")
		return media.NewMockHost()
	case "", "none":
		return nil
	default:
		log.Printf("⚠️ MEDIA_PROVIDER inconnu %q, photos désactivées", cfg.MediaProvider)
		return nil
	}
}

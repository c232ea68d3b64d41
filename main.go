package main

import (
	"context"
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"gorm.io/gorm/logger"

	"innovateai/internal/config"
	"innovateai/internal/database"
	"innovateai/internal/export"
	"innovateai/internal/llm/client"
	"innovateai/internal/repositories"
	"innovateai/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	keyringService, err := services.NewKeyringService()
	if err != nil {
		log.Printf("Keyring unavailable, using environment only: %v", err)
	}

	var secrets config.SecretSource
	if keyringService != nil {
		secrets = keyringService
	}
	cfg, err := config.Load(secrets)
	if err != nil {
		log.Printf("AI features disabled: %v", err)
	}

	db, err := database.Init(database.Config{
		Path:     cfg.DBPath,
		LogLevel: logger.Warn,
	})
	if err != nil {
		log.Println("Error opening database:", err)
		return
	}

	kv := repositories.NewKVRepository(db)
	catalog, err := services.NewModelCatalogService()
	if err != nil {
		log.Println("Error loading model catalog:", err)
		return
	}

	svc := services.NewServices(kv, buildGateway(context.Background(), cfg, kv, catalog), catalog)

	var save export.SaveFunc
	if cfg.ExportDir != "" {
		save = export.DirSaver(cfg.ExportDir)
	}
	app, err := NewApp(svc, save)
	if err != nil {
		log.Println("Error creating app:", err)
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	bind := []interface{}{app}
	if keyringService != nil {
		bind = append(bind, keyringService)
	}

	err = wails.Run(&options.App{
		Title:  "InnovateAI",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "InnovateAI",
		},
		BackgroundColour: &options.RGBA{R: 17, G: 24, B: 39, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind:             bind,
	})

	if err != nil {
		println("Error:", err.Error())
	}
}

// buildGateway returns nil when AI is not configured so the services report
// client.ErrAIUnavailable instead of calling out.
func buildGateway(ctx context.Context, cfg config.Config, kv repositories.KVRepository, catalog services.ModelCatalogService) services.AIGateway {
	if cfg.GeminiAPIKey == "" {
		return nil
	}

	settings, err := services.NewAppSettingsService(kv, catalog).Get(ctx)
	if err == nil && settings.ChatModelKey != "" {
		if mdl, err := catalog.GetModel(settings.ChatModelKey); err == nil {
			cfg.ChatProvider = mdl.ProviderID
			cfg.ChatModel = mdl.APIName
		}
	}
	if cfg.ChatModel == "" && cfg.ChatProvider != client.ProviderGemini {
		if mdl, err := catalog.DefaultModel(cfg.ChatProvider); err == nil {
			cfg.ChatModel = mdl.APIName
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Chat provider %s unusable, falling back to Gemini: %v", cfg.ChatProvider, err)
		cfg.ChatProvider = client.ProviderGemini
		cfg.ChatModel = ""
	}

	gateway, err := client.NewGeminiGateway(ctx, cfg.GatewayOptions())
	if err != nil {
		log.Printf("Failed to create AI gateway: %v", err)
		return nil
	}
	return gateway
}

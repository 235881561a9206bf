package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"hospihub/adminkit/internal/config"
	"hospihub/adminkit/internal/cookie"
	"hospihub/adminkit/internal/dom"
	"hospihub/adminkit/internal/httpclient"
	"hospihub/adminkit/internal/loading"
	"hospihub/adminkit/internal/notify"
	"hospihub/adminkit/internal/shell"
	"hospihub/adminkit/internal/state"
)

// Minimal shell page used when no rendered page is configured.
const defaultPage = `<html><head><title>Admin</title></head><body>
<header><button id="login-btn">Login</button><button id="signup-btn">Sign Up</button></header>
<main></main>
</body></html>`

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Cookie jar (tokens land here after login)
	jar := cookie.NewJar()
	if tok := os.Getenv("ADMINKIT_AUTH_TOKEN"); tok != "" {
		jar.Set(cfg.Cookies.AuthToken, tok)
	}

	// 4. Page-lifetime state store
	store := state.NewStore()
	store.Subscribe("auth.redirect_url", func(v interface{}) {
		logger.Debug("state changed", zap.Any("auth.redirect_url", v))
	})

	// 5. Load the page document
	page := defaultPage
	if cfg.Page.File != "" {
		raw, err := os.ReadFile(cfg.Page.File)
		if err != nil {
			logger.Fatal("failed to read page file", zap.Error(err))
		}
		page = string(raw)
	}
	doc, err := dom.Parse(page, logger)
	if err != nil {
		logger.Fatal("failed to parse page", zap.Error(err))
	}

	// 6. Loading tracker, API client, notifier
	tracker := loading.NewTracker(doc)
	client := httpclient.New(*cfg, jar, tracker, logger)
	notifier := notify.NewNotifier(doc, logger)

	// 7. Bind forms and delete buttons declared on the page
	binder := shell.NewBinder(doc, client, notifier, tracker, logger)
	binder.BindAll()

	// 8. Resolve the header login redirect
	header := shell.NewHeaderController(client, logger)
	redirect := header.Login(context.Background())
	store.Set("auth.redirect_url", redirect)
	logger.Info("login redirect resolved", zap.String("url", redirect))
}

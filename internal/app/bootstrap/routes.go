// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	accountsfeature "github.com/dalemusser/civichub/internal/app/features/accounts"
	bookmarksfeature "github.com/dalemusser/civichub/internal/app/features/bookmarks"
	clubsfeature "github.com/dalemusser/civichub/internal/app/features/clubs"
	commentsfeature "github.com/dalemusser/civichub/internal/app/features/comments"
	contentsfeature "github.com/dalemusser/civichub/internal/app/features/contents"
	feedfeature "github.com/dalemusser/civichub/internal/app/features/feedapi"
	healthfeature "github.com/dalemusser/civichub/internal/app/features/health"
	nodesfeature "github.com/dalemusser/civichub/internal/app/features/nodes"
	"github.com/dalemusser/civichub/internal/app/realtime"
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/dalemusser/civichub/internal/app/system/mailer"
	"github.com/dalemusser/civichub/internal/app/system/uploads"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app. WAFFLE calls it after configuration, DB connections,
// schema setup, and Startup have completed.
//
// CivicHub is a JSON API: tokens instead of session cookies, and a
// WebSocket endpoint for the realtime relay instead of server-rendered
// pages.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewTokens(appCfg.JWTSecret, appCfg.JWTExpiry)

	var uploader uploads.Uploader
	if appCfg.StorageType == "s3" {
		s3, err := uploads.NewS3(context.Background(), uploads.S3Config{
			Region:          appCfg.StorageS3Region,
			Bucket:          appCfg.StorageS3Bucket,
			Prefix:          appCfg.StorageS3Prefix,
			AccessKeyID:     appCfg.StorageS3AccessKey,
			SecretAccessKey: appCfg.StorageS3SecretKey,
		}, logger)
		if err != nil {
			logger.Error("s3 uploader init failed", zap.Error(err))
			return nil, err
		}
		uploader = s3
	} else {
		uploader = uploads.Disabled{}
	}

	mail := mailer.New(
		appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName,
		logger,
	)

	hub := realtime.NewHub(logger)
	go hub.Run()

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts: registration, login, current user
	accountsHandler := accountsfeature.NewHandler(deps.MongoDatabase, tokens, mail, appCfg.SiteName, appCfg.BaseURL, logger)
	r.Mount("/accounts", accountsfeature.Routes(accountsHandler, tokens))

	// Club and node directories
	clubsHandler := clubsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/clubs", clubsfeature.Routes(clubsHandler, tokens))

	nodesHandler := nodesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/nodes", nodesfeature.Routes(nodesHandler, tokens))

	// Content lifecycle: create, adopt, publish, vote, view
	contentsHandler := contentsfeature.NewHandler(deps.MongoClient, deps.MongoDatabase, uploader, logger)
	r.Mount("/contents", contentsfeature.Routes(contentsHandler, tokens))

	// Comments push realtime events through the hub
	commentsHandler := commentsfeature.NewHandler(deps.MongoDatabase, hub, logger)
	r.Mount("/comments", commentsfeature.Routes(commentsHandler, tokens))

	bookmarksHandler := bookmarksfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/bookmarks", bookmarksfeature.Routes(bookmarksHandler, tokens))

	// Merged club/node feed
	feedHandler := feedfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/feed", feedfeature.Routes(feedHandler))

	// Realtime relay
	r.Get("/ws", hub.ServeWS)

	return r, nil
}

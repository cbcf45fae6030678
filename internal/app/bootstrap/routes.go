// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	contactfeature "github.com/wekezagroup/wekeza/internal/app/features/contact"
	contributionsfeature "github.com/wekezagroup/wekeza/internal/app/features/contributions"
	documentsfeature "github.com/wekezagroup/wekeza/internal/app/features/documents"
	eventsfeature "github.com/wekezagroup/wekeza/internal/app/features/events"
	healthfeature "github.com/wekezagroup/wekeza/internal/app/features/health"
	identitywebhookfeature "github.com/wekezagroup/wekeza/internal/app/features/identitywebhook"
	investmentsfeature "github.com/wekezagroup/wekeza/internal/app/features/investments"
	messagesfeature "github.com/wekezagroup/wekeza/internal/app/features/messages"
	usersfeature "github.com/wekezagroup/wekeza/internal/app/features/users"
	userstore "github.com/wekezagroup/wekeza/internal/app/store/users"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/mailer"
	"github.com/wekezagroup/wekeza/internal/app/system/webhooksig"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app. WAFFLE calls it after configuration, DB connections,
// schema setup, and Startup hooks have completed.
//
// Wekeza is a JSON API: every feature router returns JSON, identity
// arrives as a bearer token resolved by the global LoadAuthUser
// middleware, and member rows are maintained by the identity provider's
// webhook rather than a login flow.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.WekezaMongoDatabase

	authn, err := auth.New(userstore.New(db), appCfg.TokenSecret, appCfg.TokenIssuer, logger)
	if err != nil {
		logger.Error("authenticator init failed", zap.Error(err))
		return nil, err
	}

	verifier, err := webhooksig.NewVerifier(appCfg.WebhookSecret)
	if err != nil {
		logger.Error("webhook verifier init failed", zap.Error(err))
		return nil, err
	}

	blobs, err := buildStorage(appCfg)
	if err != nil {
		logger.Error("document storage init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: resolves the bearer token to a user row so
	// handlers can read auth.CurrentUser(r). Unauthenticated requests
	// pass through; rejection is per-route.
	r.Use(authn.LoadAuthUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.WekezaMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Identity provider webhook; authenticated by signature, not token.
	webhookHandler := identitywebhookfeature.NewHandler(db, verifier, logger)
	r.Mount("/webhooks/identity", identitywebhookfeature.Routes(webhookHandler))

	// Public contact form (rate limited) and admin inquiry list. New
	// inquiries are mailed to the configured inbox when SMTP is set up.
	var notifier mailer.Sender
	if appCfg.MailSMTPHost != "" {
		notifier = mailer.NewSMTP(mailer.Config{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			Username: appCfg.MailSMTPUser,
			Password: appCfg.MailSMTPPass,
			From:     appCfg.MailFrom,
			FromName: appCfg.MailFromName,
		})
	}
	contactHandler := contactfeature.NewHandler(db, notifier, appCfg.ContactNotifyEmail, logger)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	// Member directory and roles
	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	// Contribution ledger and rollup summaries
	contributionsHandler := contributionsfeature.NewHandler(db, logger)
	r.Mount("/contributions", contributionsfeature.Routes(contributionsHandler))

	// Group chat
	messagesHandler := messagesfeature.NewHandler(db, logger)
	r.Mount("/messages", messagesfeature.Routes(messagesHandler))

	// Event calendar
	eventsHandler := eventsfeature.NewHandler(db, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	// Document library. Local blobs get a static file mount; S3 blobs are
	// served via presigned/CloudFront URLs from the download handler.
	documentsHandler := documentsfeature.NewHandler(db, blobs, appCfg.StorageLocalURL, logger)
	r.Mount("/documents", documentsfeature.Routes(documentsHandler))
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Investment portfolio
	investmentsHandler := investmentsfeature.NewHandler(db, logger)
	r.Mount("/investments", investmentsfeature.Routes(investmentsHandler))

	return r, nil
}

// buildStorage constructs the blob backend selected by storage_type.
func buildStorage(appCfg AppConfig) (storage.Store, error) {
	switch appCfg.StorageType {
	case "s3":
		return storage.NewS3(context.Background(), storage.S3Config{
			Bucket:                   appCfg.StorageS3Bucket,
			Region:                   appCfg.StorageS3Region,
			Prefix:                   appCfg.StorageS3Prefix,
			CloudFrontURL:            appCfg.StorageCFURL,
			CloudFrontKeyPairID:      appCfg.StorageCFKeyPairID,
			CloudFrontPrivateKeyPath: appCfg.StorageCFKeyPath,
		})
	default:
		return storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	}
}

// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Wekeza. They are
// loaded via WAFFLE's config system with support for config files,
// WEKEZA_* environment variables, and command-line flags.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "wekeza", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Identity provider
	{Name: "token_secret", Default: "", Desc: "HMAC secret for identity bearer tokens"},
	{Name: "token_issuer", Default: "", Desc: "Expected issuer claim on identity tokens"},
	{Name: "webhook_secret", Default: "", Desc: "Signing secret for identity provisioning webhooks (whsec_...)"},

	// Document storage
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads/documents", Desc: "Local storage path for uploaded documents"},
	{Name: "storage_local_url", Default: "/files/documents", Desc: "URL prefix for serving local documents"},

	// S3/CloudFront (only used when storage_type is 's3')
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "documents/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	// Email/SMTP (blank host disables outbound mail)
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@wekeza.example", Desc: "From address for outbound mail"},
	{Name: "mail_from_name", Default: "Wekeza", Desc: "From display name for outbound mail"},
	{Name: "contact_notify_email", Default: "", Desc: "Admin inbox notified of new contact inquiries"},
}

// LoadConfig loads WAFFLE core config and app-specific config. Core
// config comes from the shared WAFFLE layer (WAFFLE_* env vars); app
// config uses the WEKEZA_ prefix.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "WEKEZA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret:   appValues.String("token_secret"),
		TokenIssuer:   appValues.String("token_issuer"),
		WebhookSecret: appValues.String("webhook_secret"),

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),

		MailSMTPHost:       appValues.String("mail_smtp_host"),
		MailSMTPPort:       appValues.Int("mail_smtp_port"),
		MailSMTPUser:       appValues.String("mail_smtp_user"),
		MailSMTPPass:       appValues.String("mail_smtp_pass"),
		MailFrom:           appValues.String("mail_from"),
		MailFromName:       appValues.String("mail_from_name"),
		ContactNotifyEmail: appValues.String("contact_notify_email"),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig enforces required fields before any backend connects.
// The token and webhook secrets have no safe defaults, so startup fails
// fast without them.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.TokenSecret == "" {
		return fmt.Errorf("token_secret is required (WEKEZA_TOKEN_SECRET)")
	}
	if appCfg.WebhookSecret == "" {
		return fmt.Errorf("webhook_secret is required (WEKEZA_WEBHOOK_SECRET)")
	}
	switch appCfg.StorageType {
	case "local":
	case "s3":
		if appCfg.StorageS3Bucket == "" {
			return fmt.Errorf("storage_s3_bucket is required when storage_type is 's3'")
		}
	default:
		return fmt.Errorf("storage_type must be 'local' or 's3', got %q", appCfg.StorageType)
	}
	return nil
}

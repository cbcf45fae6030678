// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to
// Wekeza: backends, the identity provider's secrets, and storage.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Identity provider configuration. Bearer tokens are verified with
	// TokenSecret/TokenIssuer; provisioning webhooks with WebhookSecret.
	TokenSecret   string // HMAC secret for identity bearer tokens
	TokenIssuer   string // Expected token issuer claim
	WebhookSecret string // Signing secret for provisioning webhooks (whsec_...)

	// File storage configuration for the document library
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads/documents")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/documents")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "documents/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file

	// Email/SMTP configuration for contact-inquiry notifications.
	// Leaving MailSMTPHost empty disables outbound mail.
	MailSMTPHost       string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort       int    // SMTP server port (587 for STARTTLS)
	MailSMTPUser       string // SMTP username
	MailSMTPPass       string // SMTP password
	MailFrom           string // From address (e.g., noreply@wekeza.example)
	MailFromName       string // From display name
	ContactNotifyEmail string // Admin inbox for new contact inquiries
}

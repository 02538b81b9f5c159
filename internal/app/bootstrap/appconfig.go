// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to CivicHub:
// database connection strings, token signing, storage, and mail.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	// File storage configuration. "s3" uploads attachments to the
	// configured bucket; "none" rejects uploads (API-only deploys).
	StorageType        string
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageS3AccessKey string
	StorageS3SecretKey string

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Site identity used in emails
	SiteName string
	BaseURL  string

	// Mongo keep-alive ping interval; zero disables the worker.
	KeepAliveInterval time.Duration
}

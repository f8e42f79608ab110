// Package storage provides object storage for generated report artifacts.
//
// Two implementations of the Storage interface:
// - LocalStorage: filesystem storage for development
// - R2Storage: Cloudflare R2 (S3-compatible) storage for production
package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Storage defines the operations the report flow needs.
//
// All methods are context-aware for timeout and cancellation support.
type Storage interface {
	// Put stores data at the specified key, overwriting any existing object.
	Put(ctx context.Context, key string, data io.Reader, contentType string) error

	// URL returns a URL for downloading the object at the specified key,
	// valid for at least the given duration where the backend signs URLs.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Delete removes the object at the specified key.
	// Idempotent: no error if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// =============================================================================
// Configuration Types
// =============================================================================

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	// BasePath is the root directory where files are stored.
	BasePath string

	// BaseURL is the public URL prefix for accessing files.
	BaseURL string
}

// R2Config holds configuration for Cloudflare R2 storage.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string

	// PublicURL is the public URL for the bucket (custom domain).
	// If empty, presigned URLs are used for all access.
	PublicURL string
}

// Provider identifiers for config validation.
const (
	ProviderLocal = "local"
	ProviderR2    = "r2"
)

// =============================================================================
// Key Generation
// =============================================================================

// ReportKey is the storage key for a document's generated report.
// Format: inspections/{documentID}/report.{format}
//
// Deterministic: regenerating a report overwrites the previous artifact, and
// deleting a document can locate its report without a listing call.
func ReportKey(documentID, format string) string {
	return fmt.Sprintf("inspections/%s/report.%s", documentID, format)
}

// internal/app/system/limits/limits.go
package limits

// Request body size limits. These keep oversized payloads from
// exhausting memory before validation runs.
const (
	// MaxJSONBody caps JSON request bodies (content, comments, memberships).
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxUploadMemory is the in-memory portion of multipart content
	// submissions; larger file parts spill to temporary files.
	MaxUploadMemory = 32 << 20 // 32 MB
)

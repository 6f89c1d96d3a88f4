package storage

// BlobStore persists opaque file content and returns a URL under which it can
// be served. The core never deals with paths or serving, only URLs.
type BlobStore interface {
	Save(data []byte, contentType string) (string, error)
}

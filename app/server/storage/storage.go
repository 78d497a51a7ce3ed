// Package storage proxies file and folder operations to an external
// object-storage provider. Clients are built per call from the credentials
// stored on the requesting user's record; nothing is shared between users.
package storage

import (
	"context"
	"errors"
	"fmt"
)

const (
	TagFile   = "file"
	TagFolder = "folder"
)

var (
	// ErrMissingPath rejects an operation before any provider call is made.
	ErrMissingPath = errors.New("the path parameter is required")
	// ErrNotLinked means the user has no external storage account attached.
	// It maps to an authorization failure, not a server error.
	ErrNotLinked = errors.New("storage credentials not found")
)

// ProviderError carries an upstream storage failure. Provider failures are
// always surfaced, never converted to an empty success.
type ProviderError struct {
	Op      string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Entry is one record of a folder listing. Tag discriminates files from
// folders.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Tag  string `json:"tag"`
}

// Page is one slice of a paged listing. Cursor is provider-opaque and must be
// passed back unmodified to continue.
type Page struct {
	Entries []Entry
	Cursor  string
	HasMore bool
}

type Upload struct {
	Path      string
	PublicURL string // set only by providers that expose one
}

type File struct {
	Name    string
	Content []byte
}

// Client is the capability a storage backend provides. Implementations are
// cheap to construct and live for a single request.
type Client interface {
	// Folders lists the folder entries at the provider root.
	Folders(ctx context.Context) ([]Entry, error)
	// List returns one page of a folder's contents. A non-empty cursor
	// continues a prior listing; otherwise a fresh bounded page starts.
	List(ctx context.Context, path, cursor string) (*Page, error)
	CreateFolder(ctx context.Context, path string) error
	Upload(ctx context.Context, path string, content []byte) (*Upload, error)
	Download(ctx context.Context, path string) (*File, error)
	// GetURL resolves a path to a URL the file can be fetched from directly.
	GetURL(ctx context.Context, path string) (string, error)
}

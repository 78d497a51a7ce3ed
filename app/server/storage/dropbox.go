package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	gopath "path"
	"strings"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/constants"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"golang.org/x/oauth2"
)

// Dropbox talks to the Dropbox HTTP API v2 with one user's credentials. The
// oauth2 transport refreshes the access token from the stored refresh token
// when the provider rejects it as expired.
type Dropbox struct {
	httpc      *http.Client
	apiURL     string
	contentURL string
}

var _ Client = (*Dropbox)(nil)

func NewDropbox(ctx context.Context, creds *models.StorageAuth, apiURL, contentURL string) *Dropbox {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: apiURL + "/oauth2/token",
		},
	}
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
	}

	return &Dropbox{
		httpc:      conf.Client(ctx, token),
		apiURL:     strings.TrimRight(apiURL, "/"),
		contentURL: strings.TrimRight(contentURL, "/"),
	}
}

type dropboxEntry struct {
	Tag       string `json:".tag"`
	Name      string `json:"name"`
	PathLower string `json:"path_lower"`
}

func (e *dropboxEntry) toEntry() Entry {
	return Entry{
		Name: e.Name,
		Path: e.PathLower,
		Tag:  e.Tag,
	}
}

type dropboxListResult struct {
	Entries []dropboxEntry `json:"entries"`
	Cursor  string         `json:"cursor"`
	HasMore bool           `json:"has_more"`
}

func (d *Dropbox) Folders(ctx context.Context) ([]Entry, error) {
	var result dropboxListResult
	if err := d.rpc(ctx, "/2/files/list_folder", map[string]any{
		"path": "",
	}, &result); err != nil {
		return nil, err
	}

	var folders []Entry
	for _, entry := range result.Entries {
		if entry.Tag == TagFolder {
			folders = append(folders, entry.toEntry())
		}
	}

	return folders, nil
}

func (d *Dropbox) List(ctx context.Context, path, cursor string) (*Page, error) {
	if path == "" {
		return nil, ErrMissingPath
	}

	var result dropboxListResult
	if cursor != "" {
		if err := d.rpc(ctx, "/2/files/list_folder/continue", map[string]any{
			"cursor": cursor,
		}, &result); err != nil {
			return nil, err
		}
	} else {
		if err := d.rpc(ctx, "/2/files/list_folder", map[string]any{
			"path":  normalizePath(path),
			"limit": constants.ListPageSize,
		}, &result); err != nil {
			return nil, err
		}
	}

	page := &Page{
		Cursor:  result.Cursor,
		HasMore: result.HasMore,
	}
	for _, entry := range result.Entries {
		page.Entries = append(page.Entries, entry.toEntry())
	}

	return page, nil
}

func (d *Dropbox) CreateFolder(ctx context.Context, path string) error {
	if path == "" {
		return ErrMissingPath
	}

	return d.rpc(ctx, "/2/files/create_folder_v2", map[string]any{
		"path":       normalizePath(path),
		"autorename": false,
	}, nil)
}

func (d *Dropbox) Upload(ctx context.Context, path string, content []byte) (*Upload, error) {
	if path == "" {
		return nil, ErrMissingPath
	}

	arg, err := json.Marshal(map[string]any{
		"path":       normalizePath(path),
		"mode":       "add",
		"autorename": false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload arg: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.contentURL+"/2/files/upload", bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Dropbox-API-Arg", string(arg))

	res, err := d.httpc.Do(req)
	if err != nil {
		return nil, &ProviderError{Op: "upload", Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, providerFailure("upload", res)
	}

	var uploaded dropboxEntry
	if err := json.NewDecoder(res.Body).Decode(&uploaded); err != nil {
		return nil, &ProviderError{Op: "upload", Message: err.Error()}
	}

	return &Upload{Path: uploaded.PathLower}, nil
}

func (d *Dropbox) Download(ctx context.Context, path string) (*File, error) {
	if path == "" {
		return nil, ErrMissingPath
	}

	arg, err := json.Marshal(map[string]any{
		"path": normalizePath(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode download arg: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.contentURL+"/2/files/download", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	req.Header.Set("Dropbox-API-Arg", string(arg))

	res, err := d.httpc.Do(req)
	if err != nil {
		return nil, &ProviderError{Op: "download", Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, providerFailure("download", res)
	}

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &ProviderError{Op: "download", Message: err.Error()}
	}

	// File metadata rides in a response header on content endpoints.
	name := gopath.Base(normalizePath(path))
	if meta := res.Header.Get("Dropbox-API-Result"); meta != "" {
		var entry dropboxEntry
		if err := json.Unmarshal([]byte(meta), &entry); err == nil && entry.Name != "" {
			name = entry.Name
		}
	}

	return &File{Name: name, Content: content}, nil
}

// GetURL asks the provider for a short-lived direct link. Dropbox has no
// permanent public URLs, so a temporary one is the closest equivalent.
func (d *Dropbox) GetURL(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", ErrMissingPath
	}

	var result struct {
		Link string `json:"link"`
	}
	if err := d.rpc(ctx, "/2/files/get_temporary_link", map[string]any{
		"path": normalizePath(path),
	}, &result); err != nil {
		return "", err
	}

	return result.Link, nil
}

// rpc posts a JSON body to an api-endpoint method and decodes the response
// into result when result is non-nil.
func (d *Dropbox) rpc(ctx context.Context, method string, body, result any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.apiURL+method, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := d.httpc.Do(req)
	if err != nil {
		return &ProviderError{Op: method, Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return providerFailure(method, res)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		return &ProviderError{Op: method, Message: err.Error()}
	}

	return nil
}

func providerFailure(op string, res *http.Response) error {
	summary, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	msg := strings.TrimSpace(string(summary))
	if msg == "" {
		msg = res.Status
	}
	return &ProviderError{Op: op, Message: msg}
}

// normalizePath gives the provider the single-leading-slash form it expects.
func normalizePath(path string) string {
	return "/" + strings.Trim(path, "/")
}

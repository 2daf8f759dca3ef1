package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

// Provider identifies one of the supported video hosts.
type Provider string

const (
	Vimeo        Provider = "vimeo"
	BunnyStorage Provider = "bunny-storage"
	BunnyStream  Provider = "bunny-stream"
	Wistia       Provider = "wistia"
	VdoCipher    Provider = "vdocipher"
	Zoom         Provider = "zoom"
)

// Parse validates a provider name from user input.
func Parse(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case Vimeo, BunnyStorage, BunnyStream, Wistia, VdoCipher, Zoom:
		return p, nil
	default:
		return "", model.ValidationErr(fmt.Sprintf("unknown provider %q", s))
	}
}

// Credentials carries every credential shape the six providers need.
// Each adapter validates the fields it requires before any network call.
type Credentials struct {
	Token     string `json:"token,omitempty"`     // Vimeo, Wistia bearer token
	Key       string `json:"key,omitempty"`       // Bunny AccessKey, VdoCipher secret, Zoom client ID
	Secret    string `json:"secret,omitempty"`    // Zoom client secret
	LibraryID string `json:"libraryId,omitempty"` // Bunny Stream library / Bunny Storage zone
	AccountID string `json:"accountId,omitempty"` // Zoom Server-to-Server account
	Host      string `json:"host,omitempty"`      // Bunny pull-zone / CDN hostname
}

// Termination selects how the paginator decides it has seen the last page.
type Termination int

const (
	// TerminateShortPage stops when a page holds fewer items than requested.
	TerminateShortPage Termination = iota
	// TerminateCursor stops when the provider returns no next-page token.
	TerminateCursor
	// TerminateSingle stops after the first response (no paging at all).
	TerminateSingle
)

// Cursor addresses one page of a provider listing. Page-number providers
// use Page; cursor providers carry the opaque Token from the prior page.
type Cursor struct {
	Page  int
	Token string
}

// Page is one translated page of results.
type Page struct {
	Videos    []model.Video
	NextToken string // cursor providers only; empty means exhausted
}

// Adapter translates one provider's paginated listing API into canonical
// video records. FetchPage must be pure with respect to the cursor: the
// paginator drives pages strictly sequentially.
type Adapter interface {
	Provider() Provider
	Termination() Termination
	PageSize() int
	FetchPage(ctx context.Context, cursor Cursor) (*Page, error)
}

// ContainerLister is implemented by adapters whose provider exposes a
// grouping construct (folders, collections, projects).
type ContainerLister interface {
	ListContainers(ctx context.Context) ([]model.Container, error)
}

// DateBounded is implemented by adapters whose provider accepts a
// creation-time constraint on the listing itself. For everyone else a
// date window narrows nothing.
type DateBounded interface {
	SetDateWindow(from, to time.Time)
}

// httpClient is shared by all adapters. Timeout semantics are the
// client's; the adapters impose no layer of their own.
var httpClient = &http.Client{Timeout: 60 * time.Second}

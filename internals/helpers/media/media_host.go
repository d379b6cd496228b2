// Package media stores student photos on an external host (Cloudinary or
// Aliyun OSS) behind a single interface.
package media

import (
	"context"
	"errors"
	"io"
	"regexp"
	"time"
)

var ErrUnsupportedImage = errors.New("format d'image non supporté (jpg/png/webp)")

type UploadResult struct {
	SecureURL string
	PublicID  string
}

type Asset struct {
	PublicID  string
	URL       string
	CreatedAt time.Time
}

type MediaHost interface {
	Upload(ctx context.Context, folder, name string, r io.Reader) (UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
	// PublicIDFromURL recovers the asset identifier from a stored URL.
	// ok is false when the URL does not belong to this host's scheme.
	PublicIDFromURL(url string) (publicID string, ok bool)
	List(ctx context.Context, folder string) ([]Asset, error)
}

// version segment, then the path up to the extension:
// https://res.cloudinary.com/demo/image/upload/v1712345678/eleves/abc.webp → eleves/abc
var versionedPath = regexp.MustCompile(`/v\d+/(.+?)\.\w{3,4}$`)

func ExtractPublicID(url string) (string, bool) {
	m := versionedPath.FindStringSubmatch(url)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

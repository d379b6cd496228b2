package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
)

// Photos is the two-phase photo lifecycle around a database write: stage the
// asset, write the row, and undo the staged asset when the write fails.
// Undo and cleanup failures are logged and never replace the write's error.
type Photos struct {
	Host    MediaHost
	Folder  string
	Options WebPOptions
}

func NewPhotos(host MediaHost, folder string) *Photos {
	return &Photos{Host: host, Folder: folder, Options: DefaultWebPOptions()}
}

// Stage re-encodes r to WebP and uploads it.
func (p *Photos) Stage(ctx context.Context, r io.Reader) (UploadResult, error) {
	data, err := ToWebP(r, p.Options)
	if err != nil {
		return UploadResult{}, err
	}
	res, err := p.Host.Upload(ctx, p.Folder, uuid.NewString(), bytes.NewReader(data))
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload photo: %w", err)
	}
	return res, nil
}

// Compensate removes an asset staged for a write that did not happen.
func (p *Photos) Compensate(ctx context.Context, staged UploadResult) {
	if staged.PublicID == "" {
		return
	}
	if err := p.Host.Destroy(ctx, staged.PublicID); err != nil {
		log.Printf("[MEDIA] compensation destroy %s échoué: %v", staged.PublicID, err)
	}
}

// Discard destroys the asset behind a stored URL. A URL the host cannot
// parse is skipped.
func (p *Photos) Discard(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	id, ok := p.Host.PublicIDFromURL(url)
	if !ok {
		log.Printf("[MEDIA] public id introuvable dans %q, suppression ignorée", url)
		return nil
	}
	return p.Host.Destroy(ctx, id)
}

package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryHost struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryHost expects cloudinary://<key>:<secret>@<cloud>.
func NewCloudinaryHost(url string) (*CloudinaryHost, error) {
	if url == "" {
		return nil, errors.New("CLOUDINARY_URL manquant")
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryHost{cld: cld}, nil
}

func (h *CloudinaryHost) Upload(ctx context.Context, folder, name string, r io.Reader) (UploadResult, error) {
	resp, err := h.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     name,
		ResourceType: "image",
	})
	if err != nil {
		return UploadResult{}, err
	}
	if resp.Error.Message != "" {
		return UploadResult{}, errors.New(resp.Error.Message)
	}
	return UploadResult{SecureURL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (h *CloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	resp, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	// "not found" is fine: the asset is already gone.
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Result)
	}
	return nil
}

func (h *CloudinaryHost) PublicIDFromURL(url string) (string, bool) {
	return ExtractPublicID(url)
}

func (h *CloudinaryHost) List(ctx context.Context, folder string) ([]Asset, error) {
	var (
		out    []Asset
		cursor string
	)
	for {
		resp, err := h.cld.Admin.Assets(ctx, admin.AssetsParams{
			DeliveryType: "upload",
			Prefix:       folder + "/",
			MaxResults:   500,
			NextCursor:   cursor,
		})
		if err != nil {
			return nil, err
		}
		if resp.Error.Message != "" {
			return nil, errors.New(resp.Error.Message)
		}
		for _, a := range resp.Assets {
			out = append(out, Asset{PublicID: a.PublicID, URL: a.SecureURL, CreatedAt: a.CreatedAt})
		}
		if resp.NextCursor == "" {
			return out, nil
		}
		cursor = resp.NextCursor
	}
}

package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSHost keeps photos in an Aliyun bucket. The object key doubles as the
// public id, so a stored URL maps back to the object by stripping the host.
type OSSHost struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func NewOSSHostFromEnv() (*OSSHost, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	log.Printf("[OSS] bucket %s prêt", bucketName)

	return &OSSHost{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		PublicBase: strings.TrimRight(getEnv("ALI_OSS_PUBLIC_BASE"), "/"),
	}, nil
}

func (h *OSSHost) Upload(ctx context.Context, folder, name string, r io.Reader) (UploadResult, error) {
	if name == "" {
		name = randHex(8)
	}
	key := strings.Trim(folder, "/") + "/" + name + ".webp"
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := h.Bucket.PutObject(key, r, opts...); err != nil {
		return UploadResult{}, fmt.Errorf("put object: %w", err)
	}
	return UploadResult{SecureURL: h.PublicURL(key), PublicID: key}, nil
}

func (h *OSSHost) Destroy(ctx context.Context, publicID string) error {
	err := h.Bucket.DeleteObject(publicID, oss.WithContext(ctx))
	if e, ok := err.(oss.ServiceError); ok && e.StatusCode == 404 {
		return nil
	}
	return err
}

func (h *OSSHost) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if h.PublicBase != "" {
		return h.PublicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(h.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", h.BucketName, end, key)
}

func (h *OSSHost) PublicIDFromURL(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	if h.PublicBase != "" && strings.HasPrefix(url, h.PublicBase+"/") {
		return strings.TrimPrefix(url, h.PublicBase+"/"), true
	}
	prefix := h.PublicURL("x")
	prefix = prefix[:len(prefix)-1]
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix), true
	}
	return "", false
}

func (h *OSSHost) List(ctx context.Context, folder string) ([]Asset, error) {
	var out []Asset
	marker := oss.Marker("")
	for {
		lor, err := h.Bucket.ListObjects(oss.Prefix(strings.Trim(folder, "/")+"/"), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, obj := range lor.Objects {
			if obj.Key == "" {
				continue
			}
			out = append(out, Asset{PublicID: obj.Key, URL: h.PublicURL(obj.Key), CreatedAt: obj.LastModified})
		}
		if !lor.IsTruncated {
			return out, nil
		}
		marker = oss.Marker(lor.NextMarker)
	}
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

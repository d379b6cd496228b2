package media

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MockHost keeps uploads in memory. Used by tests and by MEDIA_PROVIDER=mock
// for local runs without credentials.
type MockHost struct {
	mu        sync.Mutex
	assets    map[string]Asset
	seq       int
	Now       func() time.Time
	FailWith  error // every call fails when set
	Destroyed []string
}

func NewMockHost() *MockHost {
	return &MockHost{assets: map[string]Asset{}, Now: time.Now}
}

func (m *MockHost) Upload(ctx context.Context, folder, name string, r io.Reader) (UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return UploadResult{}, m.FailWith
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return UploadResult{}, err
	}
	m.seq++
	if name == "" {
		name = fmt.Sprintf("img%d", m.seq)
	}
	id := folder + "/" + name
	url := fmt.Sprintf("https://media.test/v%d/%s.webp", m.seq, id)
	m.assets[id] = Asset{PublicID: id, URL: url, CreatedAt: m.Now()}
	return UploadResult{SecureURL: url, PublicID: id}, nil
}

func (m *MockHost) Destroy(ctx context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	delete(m.assets, publicID)
	m.Destroyed = append(m.Destroyed, publicID)
	return nil
}

func (m *MockHost) PublicIDFromURL(url string) (string, bool) {
	return ExtractPublicID(url)
}

func (m *MockHost) List(ctx context.Context, folder string) ([]Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	out := make([]Asset, 0, len(m.assets))
	for _, a := range m.assets {
		out = append(out, a)
	}
	return out, nil
}

// Put registers an asset directly, bypassing Upload.
func (m *MockHost) Put(a Asset) {
	m.mu.Lock()
	m.assets[a.PublicID] = a
	m.mu.Unlock()
}

func (m *MockHost) Has(publicID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.assets[publicID]
	return ok
}

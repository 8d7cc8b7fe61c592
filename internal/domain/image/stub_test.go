package image

import (
	"bytes"
	"context"
	stdimage "image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/familytree/gallery-api/internal/domain/events"
	"github.com/familytree/gallery-api/internal/pkg/imaging"
	"github.com/familytree/gallery-api/internal/pkg/lock"
	"github.com/familytree/gallery-api/internal/pkg/storage"
)

// repoStub keeps images in memory
type repoStub struct {
	mu     sync.Mutex
	images map[uuid.UUID]*Image
}

func newRepoStub() *repoStub {
	return &repoStub{images: make(map[uuid.UUID]*Image)}
}

func (r *repoStub) add(img *Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *img
	r.images[img.ID] = &copied
}

func (r *repoStub) get(id uuid.UUID) *Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.images[id]; ok {
		copied := *img
		return &copied
	}
	return nil
}

func (r *repoStub) GetByID(_ context.Context, id uuid.UUID) (*Image, error) {
	return r.get(id), nil
}

func (r *repoStub) GetByFilename(_ context.Context, filename string) (*Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.Filename == filename {
			copied := *img
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *repoStub) ListActive(_ context.Context) ([]*Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Image
	for _, img := range r.images {
		if img.IsActive {
			copied := *img
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *repoStub) Create(_ context.Context, img *Image) error {
	r.add(img)
	return nil
}

func (r *repoStub) UpdateFileInfo(_ context.Context, img *Image) error {
	r.add(img)
	return nil
}

func (r *repoStub) UpdateMetadata(_ context.Context, img *Image) error {
	r.add(img)
	return nil
}

func (r *repoStub) SetActive(_ context.Context, id uuid.UUID, active bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return false, nil
	}
	img.IsActive = active
	return true, nil
}

func (r *repoStub) DeactivateMissing(_ context.Context, present []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keep := make(map[string]bool, len(present))
	for _, name := range present {
		keep[name] = true
	}
	var n int64
	for _, img := range r.images {
		if img.IsActive && !keep[img.Filename] {
			img.IsActive = false
			n++
		}
	}
	return n, nil
}

func (r *repoStub) Stats(_ context.Context) (*Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &Stats{}
	for _, img := range r.images {
		stats.Total++
		if img.IsActive {
			stats.Active++
			stats.TotalSize += img.Size
		} else {
			stats.Inactive++
		}
	}
	return stats, nil
}

// publisherStub records published event types
type publisherStub struct {
	mu    sync.Mutex
	types []events.Type
}

func (p *publisherStub) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, e.Type)
}

// mirrorStub counts uploads
type mirrorStub struct {
	keys []string
}

func (m *mirrorStub) Put(_ context.Context, key string, _ io.Reader, _, _ string) error {
	m.keys = append(m.keys, key)
	return nil
}

type fixture struct {
	dir       string
	repo      *repoStub
	publisher *publisherStub
	mirror    *mirrorStub
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.NewImageDir(dir, nil)
	if err != nil {
		t.Fatalf("image dir: %v", err)
	}
	repo := newRepoStub()
	pub := &publisherStub{}
	mirror := &mirrorStub{}
	svc := NewService(repo, files, imaging.NewProcessor(imaging.DefaultConfig()), lock.NewLocal(), pub, mirror, Config{DeactivateMissing: true})
	return &fixture{dir: dir, repo: repo, publisher: pub, mirror: mirror, service: svc}
}

func (f *fixture) writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(f.dir, name), data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func (f *fixture) readFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

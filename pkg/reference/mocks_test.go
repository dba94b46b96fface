package reference

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
)

// --- Mocks ---

type mockSelfieProvider struct {
	data  map[string][]byte
	calls []string
}

func (m *mockSelfieProvider) FetchSelfie(ctx context.Context, key string) ([]byte, error) {
	m.calls = append(m.calls, key)
	data, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("not found: %s", key)
	}
	return data, nil
}

type mockAssetDownloader struct {
	assets map[string]*domain.DownloadedAsset
	err    error
	calls  []string
}

func (m *mockAssetDownloader) DownloadAsset(ctx context.Context, key string) (*domain.DownloadedAsset, error) {
	m.calls = append(m.calls, key)
	if m.err != nil {
		return nil, m.err
	}
	return m.assets[key], nil
}

type mockSink struct {
	writes map[string][]byte
	err    error
}

func (m *mockSink) WriteComposite(ctx context.Context, generationID string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.writes == nil {
		m.writes = make(map[string][]byte)
	}
	m.writes[generationID] = data
	return nil
}

var errSinkBroken = errors.New("disk full")

// --- Helpers ---

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// selfieSet は 200x200 のセルフィーを n 枚用意し、キー一覧と Provider を返す
func selfieSet(t *testing.T, n int) ([]string, *mockSelfieProvider) {
	t.Helper()
	p := &mockSelfieProvider{data: make(map[string][]byte)}
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("selfies/%d.png", i+1)
		p.data[keys[i]] = pngBytes(t, 200, 200, color.NRGBA{R: uint8(40 * i), G: 120, B: 200, A: 255})
	}
	return keys, p
}

func downloaded(t *testing.T, w, h int) *domain.DownloadedAsset {
	t.Helper()
	return &domain.DownloadedAsset{
		Base64:   base64.StdEncoding.EncodeToString(pngBytes(t, w, h, color.Black)),
		MimeType: "image/png",
	}
}

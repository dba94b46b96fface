package reference

import (
	"context"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
)

// SelfieProvider はキーからセルフィー画像のバイト列を取得します。
// タイムアウトやキャンセルは実装側の責務です。
type SelfieProvider interface {
	FetchSelfie(ctx context.Context, key string) ([]byte, error)
}

// SelfieProviderFunc は関数を SelfieProvider として扱うためのアダプターです。
type SelfieProviderFunc func(ctx context.Context, key string) ([]byte, error)

func (f SelfieProviderFunc) FetchSelfie(ctx context.Context, key string) ([]byte, error) {
	return f(ctx, key)
}

// AssetDownloader はロゴや背景などの任意素材を取得します。
// 素材が無い場合は (nil, nil) を返します。
type AssetDownloader interface {
	DownloadAsset(ctx context.Context, key string) (*domain.DownloadedAsset, error)
}

// AssetDownloaderFunc は関数を AssetDownloader として扱うためのアダプターです。
type AssetDownloaderFunc func(ctx context.Context, key string) (*domain.DownloadedAsset, error)

func (f AssetDownloaderFunc) DownloadAsset(ctx context.Context, key string) (*domain.DownloadedAsset, error) {
	return f(ctx, key)
}

// DiagnosticSink は合成済み参照シートの診断用書き出し先です。
// 失敗してもビルドは止めません。
type DiagnosticSink interface {
	WriteComposite(ctx context.Context, generationID string, data []byte) error
}

// Strategy は参照ペイロードの組み立て方式です。
type Strategy interface {
	Mode() domain.Mode
	Compose(ctx context.Context, m *Materials) (*domain.ReferencePayload, error)
}

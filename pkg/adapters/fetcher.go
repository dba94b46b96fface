package adapters

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const cacheKeyAsset = "asset_bytes:"

// ImageCacher は画像データのキャッシュ操作を抽象化するインターフェースです。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// AssetFetcher はセルフィーとブランド素材を取得するアダプターです。
// http(s) のキーは httpClient で、それ以外（gs:// やローカルパス）は reader で読み込みます。
// reference.SelfieProvider と reference.AssetDownloader の両方を満たします。リトライはしません。
type AssetFetcher struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	cache      ImageCacher
	cacheTTL   time.Duration
	lookupIP   lookupIPFunc
}

// NewAssetFetcher は依存関係を注入して AssetFetcher を初期化します。
// httpClient と reader はどちらか一方があれば動作し、cache は nil を許容します。
func NewAssetFetcher(httpClient httpkit.ClientInterface, reader remoteio.InputReader, cache ImageCacher, cacheTTL time.Duration) (*AssetFetcher, error) {
	if httpClient == nil && reader == nil {
		return nil, fmt.Errorf("httpClient or reader is required")
	}
	return &AssetFetcher{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		cacheTTL:   cacheTTL,
		lookupIP:   net.LookupIP,
	}, nil
}

// FetchSelfie はセルフィーのバイト列を返します。失敗はそのままエラーとして返します。
func (f *AssetFetcher) FetchSelfie(ctx context.Context, key string) ([]byte, error) {
	return f.fetch(ctx, key)
}

// DownloadAsset は素材を Base64 で返します。画像でないデータの場合は (nil, nil) を返します。
func (f *AssetFetcher) DownloadAsset(ctx context.Context, key string) (*domain.DownloadedAsset, error) {
	data, err := f.fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		slog.WarnContext(ctx, "MIMEタイプが画像ではないため素材として扱いません", "key", key, "detected_mime_type", mimeType)
		return nil, nil
	}

	return &domain.DownloadedAsset{
		Base64:   base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}, nil
}

func (f *AssetFetcher) fetch(ctx context.Context, key string) ([]byte, error) {
	if f.cache != nil {
		if cached, found := f.cache.Get(cacheKeyAsset + key); found {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "key", key, "type", fmt.Sprintf("%T", cached))
		}
	}

	var (
		data []byte
		err  error
	)
	if isHTTPURL(key) {
		data, err = f.fetchHTTP(ctx, key)
	} else {
		data, err = f.fetchReader(ctx, key)
	}
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Set(cacheKeyAsset+key, data, f.cacheTTL)
	}
	return data, nil
}

func (f *AssetFetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	if f.httpClient == nil {
		return nil, fmt.Errorf("HTTPクライアントが設定されていません: %s", rawURL)
	}
	// SSRF対策のバリデーション
	if err := checkURL(rawURL, f.lookupIP); err != nil {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	data, err := f.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("ダウンロードに失敗しました (%s): %w", rawURL, err)
	}
	return data, nil
}

func (f *AssetFetcher) fetchReader(ctx context.Context, uri string) ([]byte, error) {
	if f.reader == nil {
		return nil, fmt.Errorf("リーダーが設定されていません: %s", uri)
	}
	rc, err := f.reader.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("読み込みに失敗しました (%s): %w", uri, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func isHTTPURL(key string) bool {
	return strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://")
}

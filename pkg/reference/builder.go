package reference

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/gemini-reference-kit/pkg/imgutil"
	"github.com/shouni/gemini-reference-kit/pkg/layout"
)

// Option は Builder の設定を変更します。
type Option func(*options)

type options struct {
	sink    DiagnosticSink
	maxEdge int
	spacing layout.Spacing
	styles  layout.Styles
}

// WithDiagnosticSink は参照シートの診断用書き出し先を設定します。
func WithDiagnosticSink(sink DiagnosticSink) Option {
	return func(o *options) {
		if sink != nil {
			o.sink = sink
		}
	}
}

// WithMaxEdge は入力画像の長辺の上限を設定します。0 なら縮小しません。
func WithMaxEdge(px int) Option {
	return func(o *options) { o.maxEdge = px }
}

// WithSpacing は参照シートの余白を上書きします。
func WithSpacing(sp layout.Spacing) Option {
	return func(o *options) { o.spacing = sp }
}

// WithLabelStyles はタイトルとラベルの見た目を上書きします。
func WithLabelStyles(st layout.Styles) Option {
	return func(o *options) { o.styles = st }
}

// Builder はセルフィーと任意素材から参照ペイロードを組み立てます。
// 保持するのは不変の依存関係だけなので、Build は並行に呼び出せます。
type Builder struct {
	selfies    SelfieProvider
	assets     AssetDownloader
	normalizer *imgutil.Normalizer
	composite  Strategy
	flat       Strategy
}

// NewBuilder は依存関係を注入して Builder を初期化します。
// assets は nil を許容します（任意素材なしで動作）。
func NewBuilder(selfies SelfieProvider, assets AssetDownloader, opts ...Option) (*Builder, error) {
	if selfies == nil {
		return nil, fmt.Errorf("selfie provider is required")
	}

	o := options{
		sink:    NopSink{},
		spacing: layout.DefaultSpacing,
		styles:  layout.DefaultStyles,
	}
	for _, opt := range opts {
		opt(&o)
	}

	text, err := imgutil.NewTextRenderer()
	if err != nil {
		return nil, err
	}
	engine, err := layout.NewEngine(text, o.spacing, o.styles)
	if err != nil {
		return nil, err
	}

	return &Builder{
		selfies:    selfies,
		assets:     assets,
		normalizer: imgutil.NewNormalizer(o.maxEdge),
		composite:  &compositeStrategy{engine: engine, text: text, sink: o.sink},
		flat:       flatStrategy{},
	}, nil
}

// Build は参照ペイロードを組み立てます。
//
// セルフィーの取得失敗やデコード失敗はビルド全体を中断します。
// ロゴと背景は取得できなければ省略して続行します。
func (b *Builder) Build(ctx context.Context, req domain.BuildRequest) (*domain.ReferencePayload, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	selfies, err := b.loadSelfies(ctx, req.SelfieKeys)
	if err != nil {
		return nil, err
	}

	m := &Materials{
		Request:    req,
		Selfies:    selfies,
		Logo:       b.loadOptional(ctx, domain.RoleLogo, req.Style.LogoKey),
		Background: b.loadOptional(ctx, domain.RoleBackground, req.Style.BackgroundKey),
	}

	strategy := b.StrategyFor(req.UseComposite)
	payload, err := strategy.Compose(ctx, m)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "参照ペイロードを組み立てました",
		"generation_id", req.GenerationID,
		"mode", strategy.Mode(),
		"selfies", len(selfies),
		"logo", m.Logo != nil,
		"background", m.Background != nil,
		"images", len(payload.Images))

	return payload, nil
}

// StrategyFor は useComposite に対応する Strategy を返します。
func (b *Builder) StrategyFor(useComposite bool) Strategy {
	if useComposite {
		return b.composite
	}
	return b.flat
}

func validate(req domain.BuildRequest) error {
	if len(nonEmpty(req.SelfieKeys)) == 0 {
		return fmt.Errorf("%w: セルフィーが1枚以上必要です", domain.ErrInvalidInput)
	}
	if req.UseComposite && (req.AspectSize.Width <= 0 || req.AspectSize.Height <= 0) {
		return fmt.Errorf("%w: フォーマットフレームのサイズが不正です (%dx%d)",
			domain.ErrInvalidInput, req.AspectSize.Width, req.AspectSize.Height)
	}
	return nil
}

func nonEmpty(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) != "" {
			out = append(out, k)
		}
	}
	return out
}

// loadSelfies はキーの順にひとつずつ取得・正規化します。ラベルの番号はこの順序で決まります。
func (b *Builder) loadSelfies(ctx context.Context, keys []string) ([]*domain.ImageAsset, error) {
	keys = nonEmpty(keys)
	selfies := make([]*domain.ImageAsset, 0, len(keys))
	for i, key := range keys {
		raw, err := b.selfies.FetchSelfie(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("セルフィーの取得に失敗しました (%s): %w", key, err)
		}
		asset, err := b.normalizer.NormalizeNamed(SelfieLabel(i+1), raw)
		if err != nil {
			return nil, err
		}
		selfies = append(selfies, asset)
	}
	return selfies, nil
}

// loadOptional は任意素材を取得します。取得できない場合は nil を返し、ビルドは続行します。
func (b *Builder) loadOptional(ctx context.Context, role domain.Role, key string) *domain.ImageAsset {
	if b.assets == nil || strings.TrimSpace(key) == "" {
		return nil
	}

	asset, err := b.downloadAsset(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "任意素材を省略します", "role", role, "key", key, "error", err)
		return nil
	}
	return asset
}

func (b *Builder) downloadAsset(ctx context.Context, key string) (*domain.ImageAsset, error) {
	downloaded, err := b.assets.DownloadAsset(ctx, key)
	if err != nil {
		return nil, errors.Join(domain.ErrAssetUnavailable, err)
	}
	if downloaded == nil || downloaded.Base64 == "" {
		return nil, domain.ErrAssetUnavailable
	}
	if mt := downloaded.MimeType; mt != "" && !strings.HasPrefix(mt, "image/") {
		return nil, fmt.Errorf("%w: MIMEタイプが画像ではありません (%s)", domain.ErrAssetUnavailable, mt)
	}

	raw, err := base64.StdEncoding.DecodeString(stripDataURLPrefix(downloaded.Base64))
	if err != nil {
		return nil, fmt.Errorf("%w: Base64のデコードに失敗しました: %v", domain.ErrAssetUnavailable, err)
	}
	asset, err := b.normalizer.NormalizeNamed(key, raw)
	if err != nil {
		return nil, errors.Join(domain.ErrAssetUnavailable, err)
	}
	return asset, nil
}

// stripDataURLPrefix は "data:image/png;base64," のような接頭辞を取り除きます。
func stripDataURLPrefix(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "data:") {
		if idx := strings.IndexByte(value, ','); idx >= 0 {
			return value[idx+1:]
		}
	}
	return value
}

package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/shouni/gemini-reference-kit/pkg/domain"
	_ "golang.org/x/image/webp"
)

// Normalizer は任意フォーマットの画像バイト列を正規の ImageAsset に変換します。
type Normalizer struct {
	// MaxEdge が正の値の場合、長辺がそれを超える画像を縮小します。0 なら縮小しません。
	MaxEdge int
}

// NewNormalizer は Normalizer を作成します。
func NewNormalizer(maxEdge int) *Normalizer {
	if maxEdge < 0 {
		maxEdge = 0
	}
	return &Normalizer{MaxEdge: maxEdge}
}

// Normalize は raw をデコードし（EXIF の向きを反映）、NRGBA に揃えて PNG に再エンコードします。
// 画像として解釈できない場合は *domain.DecodeError を返します。リトライはしません。
func (n *Normalizer) Normalize(raw []byte) (*domain.ImageAsset, error) {
	return n.NormalizeNamed("", raw)
}

// NormalizeNamed は Normalize と同じですが、エラーに入力の識別名を含めます。
func (n *Normalizer) NormalizeNamed(source string, raw []byte) (*domain.ImageAsset, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &domain.DecodeError{Source: source, Err: err}
	}

	var canonical image.Image
	b := img.Bounds()
	if n.MaxEdge > 0 && (b.Dx() > n.MaxEdge || b.Dy() > n.MaxEdge) {
		canonical = imaging.Fit(img, n.MaxEdge, n.MaxEdge, imaging.Lanczos)
	} else {
		canonical = imaging.Clone(img)
	}

	return NewAsset(canonical)
}

package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/shouni/gemini-reference-kit/pkg/domain"
)

// EncodePNG は画像を正規フォーマット（PNG）にエンコードします。
// 同じ画像からは常に同じバイト列が得られます。
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return nil, fmt.Errorf("PNGエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// NewAsset は画像から ImageAsset を作成します。
func NewAsset(img image.Image) (*domain.ImageAsset, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &domain.ImageAsset{
		Image:    img,
		Data:     data,
		Width:    b.Dx(),
		Height:   b.Dy(),
		MimeType: domain.MimeTypePNG,
	}, nil
}

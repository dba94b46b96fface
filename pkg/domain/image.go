package domain

import (
	"encoding/base64"
	"image"
)

// MimeTypePNG は参照ペイロード内のすべての画像が従う正規フォーマットです。
const MimeTypePNG = "image/png"

// ImageAsset はデコード済みのピクセルと、その正規エンコード（PNG）を保持します。
// 生成後は変更しない前提で扱います。
type ImageAsset struct {
	Image    image.Image
	Data     []byte
	Width    int
	Height   int
	MimeType string
}

// Size は画像の幅と高さを image.Point として返します。
func (a *ImageAsset) Size() image.Point {
	return image.Pt(a.Width, a.Height)
}

// ReferenceGenerationRequest は参照画像付きの画像生成要求です。
type ReferenceGenerationRequest struct {
	Prompt       string
	SystemPrompt string
	AspectRatio  string // "2:3" などモデルに渡す比率
	Seed         *int64
	Build        BuildRequest
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}

// DataBase64 は画像データを標準 Base64 文字列で返します。
func (r ReferenceImage) DataBase64() string {
	return base64.StdEncoding.EncodeToString(r.Data)
}

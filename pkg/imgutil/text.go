package imgutil

import (
	"fmt"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// labelMinWidth と labelMinHeight はラベルタイルの最小サイズです。
	labelMinWidth  = 100
	labelMinHeight = 28
	// labelCharWidthRatio は1文字あたりの推定幅（フォントサイズ比）です。
	labelCharWidthRatio = 0.6
	labelBorderWidth    = 2.0
	labelCornerRadius   = 8.0

	frameOuterInset   = 4.0
	frameInnerInset   = 32.0
	frameMinFontSize  = 32
	frameFontDivisor  = 14.0
	frameCaptionLabel = "FORMAT "
)

var (
	labelFill   = color.NRGBA{R: 255, G: 255, B: 255, A: 217}
	frameBorder = color.NRGBA{R: 156, G: 163, B: 175, A: 255}
	frameText   = color.NRGBA{R: 75, G: 85, B: 99, A: 255}
)

// LabelStyle はラベルタイルの見た目です。
type LabelStyle struct {
	FontSize          float64
	Color             color.Color
	HorizontalPadding int
}

// TextRenderer はラベルタイルとフォーマットフレームを描画します。
// 保持するのはパース済みフォントだけなので、複数 goroutine から同時に使えます。
type TextRenderer struct {
	font *truetype.Font
}

// NewTextRenderer は埋め込みの Go Regular フォントで TextRenderer を作成します。
func NewTextRenderer() (*TextRenderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("フォントの読み込みに失敗しました: %w", err)
	}
	return &TextRenderer{font: f}, nil
}

// LabelSize はラベルタイルのサイズを推定式で求めます。
// 実際のグリフ幅は使わないため、文字数が増えても幅が縮むことはありません。
func LabelSize(text string, fontSize float64, horizontalPadding int) (width, height int) {
	textWidth := int(math.Ceil(float64(utf8.RuneCountInString(text)) * fontSize * labelCharWidthRatio))
	width = max(labelMinWidth, textWidth) + 2*max(0, horizontalPadding)
	height = max(labelMinHeight, int(math.Ceil(fontSize+16)))
	return width, height
}

// FrameFontSize はフォーマットフレームのキャプションに使うフォントサイズです。
func FrameFontSize(width, height int) float64 {
	return math.Max(frameMinFontSize, math.Round(float64(min(width, height))/frameFontDivisor))
}

// RenderLabel は text を枠付きのラベルタイルとして描画します。
// エラーになるのはエンコードに失敗した場合だけで、空文字でも最小サイズのタイルを返します。
func (r *TextRenderer) RenderLabel(text string, style LabelStyle) (*domain.ImageAsset, error) {
	w, h := LabelSize(text, style.FontSize, style.HorizontalPadding)
	dc := gg.NewContext(w, h)

	inset := labelBorderWidth / 2
	dc.DrawRoundedRectangle(inset, inset, float64(w)-labelBorderWidth, float64(h)-labelBorderWidth, labelCornerRadius)
	dc.SetColor(labelFill)
	dc.FillPreserve()
	dc.SetColor(style.Color)
	dc.SetLineWidth(labelBorderWidth)
	dc.Stroke()

	if text != "" {
		inner := float64(w - 2*max(0, style.HorizontalPadding))
		r.drawCentered(dc, text, style.FontSize, inner, float64(w)/2, float64(h)/2)
	}

	return NewAsset(dc.Image())
}

// RenderFrame は width x height ちょうどの空のフォーマットフレームを描画します。
// 生成モデルに出力範囲を伝えるための参照画像で、最終出力には現れない想定です。
func (r *TextRenderer) RenderFrame(width, height int, aspectLabel string) (*domain.ImageAsset, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: フレームサイズが不正です (%dx%d)", domain.ErrInvalidInput, width, height)
	}

	w, h := float64(width), float64(height)
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(frameBorder)
	dc.SetLineWidth(2)
	dc.DrawRectangle(frameOuterInset, frameOuterInset, w-2*frameOuterInset, h-2*frameOuterInset)
	dc.Stroke()

	dc.SetDash(16, 12)
	dc.DrawRectangle(frameInnerInset, frameInnerInset, w-2*frameInnerInset, h-2*frameInnerInset)
	dc.Stroke()
	dc.SetDash()

	dc.SetColor(frameText)
	r.drawCentered(dc, frameCaptionLabel+aspectLabel, FrameFontSize(width, height), w-2*frameInnerInset, w/2, h/2)

	return NewAsset(dc.Image())
}

// drawCentered は (cx, cy) を中心に text を描きます。maxWidth に収まらない場合は描画時のみ縮小します。
func (r *TextRenderer) drawCentered(dc *gg.Context, text string, size, maxWidth, cx, cy float64) {
	face := r.face(size)
	dc.SetFontFace(face)
	if tw, _ := dc.MeasureString(text); maxWidth > 0 && tw > maxWidth {
		face.Close()
		face = r.face(math.Max(1, math.Floor(size*maxWidth/tw)))
		dc.SetFontFace(face)
	}
	defer face.Close()
	dc.DrawStringAnchored(text, cx, cy, 0.5, 0.35)
}

func (r *TextRenderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size, Hinting: font.HintingNone})
}

package layout

import (
	"image"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
)

// Spacing は縦積みレイアウトの余白ポリシーです。
type Spacing struct {
	Margin   int // キャンバス外周の余白
	Gap      int // 要素（タイトル、画像+ラベル）同士の間隔
	LabelGap int // 画像とその直下のラベルの間隔
}

// DefaultSpacing は参照シートで使う標準の余白です。
var DefaultSpacing = Spacing{Margin: 20, Gap: 10, LabelGap: 5}

// Kind はプレースメントが画像本体かラベルタイルかを表します。
type Kind int

const (
	KindImage Kind = iota
	KindLabel
	KindTitle
)

// Tile はレイアウト計算の入力です。サイズだけを見るので、計算はピクセルに依存しません。
// Label は Kind == KindImage の場合だけ使います。
type Tile struct {
	Role  domain.Role
	Kind  Kind
	Size  image.Point
	Label image.Point
}

// Placement は1要素の配置先です。Index は入力 Tile の位置を指します。
type Placement struct {
	Index int
	Role  domain.Role
	Kind  Kind
	Rect  image.Rectangle
}

// Plan は配置の一覧とキャンバスサイズです。計算後は変更しません。
type Plan struct {
	Width        int
	Height       int
	ContentWidth int
	Placements   []Placement
}

// ComputePlan は tiles を上から順に縦積みし、すべてを共通の幅の中で水平中央に揃えます。
// 同じ入力からは常に同じ Plan を返します。
func ComputePlan(tiles []Tile, sp Spacing) Plan {
	contentWidth := 0
	for _, t := range tiles {
		contentWidth = max(contentWidth, t.Size.X)
		if t.Kind == KindImage {
			contentWidth = max(contentWidth, t.Label.X)
		}
	}

	plan := Plan{ContentWidth: contentWidth}
	centered := func(w int) int {
		return sp.Margin + (contentWidth-w)/2
	}

	y := sp.Margin
	for i, t := range tiles {
		x := centered(t.Size.X)
		plan.Placements = append(plan.Placements, Placement{
			Index: i,
			Role:  t.Role,
			Kind:  t.Kind,
			Rect:  image.Rect(x, y, x+t.Size.X, y+t.Size.Y),
		})

		if t.Kind != KindImage {
			y += t.Size.Y + sp.Gap
			continue
		}

		ly := y + t.Size.Y + sp.LabelGap
		lx := centered(t.Label.X)
		plan.Placements = append(plan.Placements, Placement{
			Index: i,
			Role:  t.Role,
			Kind:  KindLabel,
			Rect:  image.Rect(lx, ly, lx+t.Label.X, ly+t.Label.Y),
		})
		y += t.Size.Y + t.Label.Y + sp.Gap + sp.LabelGap
	}

	// 最後の要素の後ろの Gap は下余白に含めない
	if len(tiles) > 0 {
		y -= sp.Gap
	}

	plan.Width = 2*sp.Margin + contentWidth
	plan.Height = y + sp.Margin
	return plan
}

package layout

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/gemini-reference-kit/pkg/imgutil"
	"golang.org/x/image/draw"
)

const (
	SubjectTitle = "SUBJECT"
	AssetTitle   = "ADDITIONAL REFERENCES"
)

// Element は画像と、その直下に置くラベル文字列の組です。
type Element struct {
	Asset *domain.ImageAsset
	Label string
	Role  domain.Role
}

// Sheet は参照シートの内容です。Subjects は必須、Extras は任意です。
type Sheet struct {
	Subjects []Element
	Extras   []Element
}

// Styles はタイトルとラベルの見た目です。
type Styles struct {
	Title        imgutil.LabelStyle
	SubjectLabel imgutil.LabelStyle
	AssetLabel   imgutil.LabelStyle
}

// DefaultStyles は参照シートの標準スタイルです。
var DefaultStyles = Styles{
	Title:        imgutil.LabelStyle{FontSize: 30, Color: color.NRGBA{R: 17, G: 24, B: 39, A: 255}, HorizontalPadding: 16},
	SubjectLabel: imgutil.LabelStyle{FontSize: 22, Color: color.NRGBA{R: 29, G: 78, B: 216, A: 255}, HorizontalPadding: 12},
	AssetLabel:   imgutil.LabelStyle{FontSize: 22, Color: color.NRGBA{R: 180, G: 83, B: 9, A: 255}, HorizontalPadding: 12},
}

// Composite は描画済みの参照シートと、その配置計画です。
type Composite struct {
	Asset *domain.ImageAsset
	Plan  Plan
}

// Engine は Sheet を1枚の縦積みキャンバスに描画します。
type Engine struct {
	text    *imgutil.TextRenderer
	spacing Spacing
	styles  Styles
}

// NewEngine は依存関係を注入して Engine を初期化します。
func NewEngine(text *imgutil.TextRenderer, spacing Spacing, styles Styles) (*Engine, error) {
	if text == nil {
		return nil, fmt.Errorf("text renderer is required")
	}
	return &Engine{text: text, spacing: spacing, styles: styles}, nil
}

// Compose はタイトル → セルフィー → （任意）追加参照タイトル → 追加素材 の順に積み、
// 白背景のキャンバスへ一括で描画します。
func (e *Engine) Compose(ctx context.Context, sheet Sheet) (*Composite, error) {
	if len(sheet.Subjects) == 0 {
		return nil, fmt.Errorf("%w: 参照シートにはセルフィーが1枚以上必要です", domain.ErrInvalidInput)
	}

	// 1. ラベルを先にすべて描画して幅を確定させる
	var (
		tiles  []Tile
		images []image.Image
		labels []image.Image
	)
	addTitle := func(text string, role domain.Role) error {
		title, err := e.text.RenderLabel(text, e.styles.Title)
		if err != nil {
			return err
		}
		tiles = append(tiles, Tile{Role: role, Kind: KindTitle, Size: title.Size()})
		images = append(images, title.Image)
		labels = append(labels, nil)
		return nil
	}
	addElement := func(el Element, style imgutil.LabelStyle) error {
		if el.Asset == nil {
			return fmt.Errorf("%w: %s の画像がありません", domain.ErrInvalidInput, el.Label)
		}
		label, err := e.text.RenderLabel(el.Label, style)
		if err != nil {
			return err
		}
		tiles = append(tiles, Tile{Role: el.Role, Kind: KindImage, Size: el.Asset.Size(), Label: label.Size()})
		images = append(images, el.Asset.Image)
		labels = append(labels, label.Image)
		return nil
	}

	if err := addTitle(SubjectTitle, domain.RoleSubjectTitle); err != nil {
		return nil, err
	}
	for _, el := range sheet.Subjects {
		if err := addElement(el, e.styles.SubjectLabel); err != nil {
			return nil, err
		}
	}
	if len(sheet.Extras) > 0 {
		if err := addTitle(AssetTitle, domain.RoleAssetTitle); err != nil {
			return nil, err
		}
		for _, el := range sheet.Extras {
			if err := addElement(el, e.styles.AssetLabel); err != nil {
				return nil, err
			}
		}
	}

	// 2. 配置計算
	plan := ComputePlan(tiles, e.spacing)

	// 3. 一括描画
	canvas := imaging.New(plan.Width, plan.Height, color.White)
	for _, p := range plan.Placements {
		src := images[p.Index]
		if p.Kind == KindLabel {
			src = labels[p.Index]
		}
		draw.Draw(canvas, p.Rect, src, src.Bounds().Min, draw.Over)
	}

	asset, err := imgutil.NewAsset(canvas)
	if err != nil {
		return nil, fmt.Errorf("参照シートのエンコードに失敗しました: %w", err)
	}

	slog.DebugContext(ctx, "参照シートを合成しました",
		"width", plan.Width, "height", plan.Height,
		"subjects", len(sheet.Subjects), "extras", len(sheet.Extras))

	return &Composite{Asset: asset, Plan: plan}, nil
}

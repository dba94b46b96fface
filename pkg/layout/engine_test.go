package layout

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/gemini-reference-kit/pkg/imgutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidAsset(t *testing.T, w, h int, c color.Color) *domain.ImageAsset {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	asset, err := imgutil.NewAsset(img)
	require.NoError(t, err)
	return asset
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	text, err := imgutil.NewTextRenderer()
	require.NoError(t, err)
	e, err := NewEngine(text, DefaultSpacing, DefaultStyles)
	require.NoError(t, err)
	return e
}

func subjects(t *testing.T, n int) []Element {
	els := make([]Element, n)
	for i := range els {
		els[i] = Element{
			Asset: solidAsset(t, 200, 200, color.NRGBA{R: 255, A: 255}),
			Label: "SUBJECT1-SELFIE" + string(rune('1'+i)),
			Role:  domain.RoleSelfie,
		}
	}
	return els
}

func TestNewEngine(t *testing.T) {
	_, err := NewEngine(nil, DefaultSpacing, DefaultStyles)
	assert.Error(t, err)
}

func TestEngine_Compose(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	t.Run("セルフィー3枚を縦に積んだキャンバスになる", func(t *testing.T) {
		c, err := e.Compose(ctx, Sheet{Subjects: subjects(t, 3)})
		require.NoError(t, err)

		assert.Equal(t, c.Plan.Width, c.Asset.Width)
		assert.Equal(t, c.Plan.Height, c.Asset.Height)
		assert.GreaterOrEqual(t, c.Asset.Width, 200+2*20)
		assert.GreaterOrEqual(t, c.Asset.Height, 3*200+3*(5+28+10))

		// タイトル1 + (画像 + ラベル) * 3
		require.Len(t, c.Plan.Placements, 7)
		assert.Equal(t, domain.RoleSubjectTitle, c.Plan.Placements[0].Role)
	})

	t.Run("画像は指定位置に描かれ、余白は白のまま", func(t *testing.T) {
		c, err := e.Compose(ctx, Sheet{Subjects: subjects(t, 1)})
		require.NoError(t, err)

		img := c.Plan.Placements[1].Rect
		center := image.Pt((img.Min.X+img.Max.X)/2, (img.Min.Y+img.Max.Y)/2)
		got := color.NRGBAModel.Convert(c.Asset.Image.At(center.X, center.Y)).(color.NRGBA)
		assert.Equal(t, color.NRGBA{R: 255, A: 255}, got)

		corner := color.NRGBAModel.Convert(c.Asset.Image.At(0, 0)).(color.NRGBA)
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, corner)
	})

	t.Run("追加素材がある場合のみ追加参照タイトルが入る", func(t *testing.T) {
		logo := Element{Asset: solidAsset(t, 80, 40, color.Black), Label: "LOGO", Role: domain.RoleLogo}

		with, err := e.Compose(ctx, Sheet{Subjects: subjects(t, 1), Extras: []Element{logo}})
		require.NoError(t, err)
		without, err := e.Compose(ctx, Sheet{Subjects: subjects(t, 1)})
		require.NoError(t, err)

		roles := func(c *Composite) []domain.Role {
			var rs []domain.Role
			for _, p := range c.Plan.Placements {
				if p.Kind != KindLabel {
					rs = append(rs, p.Role)
				}
			}
			return rs
		}
		assert.Equal(t, []domain.Role{domain.RoleSubjectTitle, domain.RoleSelfie, domain.RoleAssetTitle, domain.RoleLogo}, roles(with))
		assert.Equal(t, []domain.Role{domain.RoleSubjectTitle, domain.RoleSelfie}, roles(without))
		assert.Greater(t, with.Asset.Height, without.Asset.Height)
	})

	t.Run("同じ入力からはバイト単位で同じ画像になる", func(t *testing.T) {
		sheet := Sheet{Subjects: subjects(t, 2)}
		a, err := e.Compose(ctx, sheet)
		require.NoError(t, err)
		b, err := e.Compose(ctx, sheet)
		require.NoError(t, err)
		assert.Equal(t, a.Asset.Data, b.Asset.Data)
	})

	t.Run("セルフィーが無い場合はErrInvalidInput", func(t *testing.T) {
		_, err := e.Compose(ctx, Sheet{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

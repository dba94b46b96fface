package layout

import (
	"image"
	"testing"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfieTiles(n int, size image.Point) []Tile {
	tiles := []Tile{{Role: domain.RoleSubjectTitle, Kind: KindTitle, Size: image.Pt(150, 46)}}
	for i := 0; i < n; i++ {
		tiles = append(tiles, Tile{Role: domain.RoleSelfie, Kind: KindImage, Size: size, Label: image.Pt(240, 38)})
	}
	return tiles
}

func TestComputePlan(t *testing.T) {
	t.Run("タイトル1つと画像1枚の配置とキャンバスサイズ", func(t *testing.T) {
		plan := ComputePlan(selfieTiles(1, image.Pt(200, 200)), DefaultSpacing)

		// 最大幅はラベルの 240
		assert.Equal(t, 240, plan.ContentWidth)
		assert.Equal(t, 280, plan.Width)
		// 20 + 46 + 10 + 200 + 5 + 38 + 20
		assert.Equal(t, 339, plan.Height)

		require.Len(t, plan.Placements, 3)
		assert.Equal(t, image.Rect(65, 20, 215, 66), plan.Placements[0].Rect)
		assert.Equal(t, image.Rect(40, 76, 240, 276), plan.Placements[1].Rect)
		assert.Equal(t, KindLabel, plan.Placements[2].Kind)
		assert.Equal(t, image.Rect(20, 281, 260, 319), plan.Placements[2].Rect)
	})

	t.Run("すべての要素が共通幅の中で水平中央に揃う", func(t *testing.T) {
		tiles := []Tile{
			{Kind: KindTitle, Size: image.Pt(151, 46)},
			{Kind: KindImage, Size: image.Pt(333, 120), Label: image.Pt(124, 38)},
			{Kind: KindImage, Size: image.Pt(97, 80), Label: image.Pt(501, 38)},
		}
		plan := ComputePlan(tiles, DefaultSpacing)

		for _, p := range plan.Placements {
			left := p.Rect.Min.X - DefaultSpacing.Margin
			assert.Equal(t, (plan.ContentWidth-p.Rect.Dx())/2, left, "placement %+v", p)
		}
	})

	t.Run("ラベルは画像の直下にLabelGapを空けて置かれる", func(t *testing.T) {
		plan := ComputePlan(selfieTiles(3, image.Pt(200, 200)), DefaultSpacing)
		for i, p := range plan.Placements {
			if p.Kind != KindLabel {
				continue
			}
			img := plan.Placements[i-1]
			assert.Equal(t, KindImage, img.Kind)
			assert.Equal(t, img.Rect.Max.Y+DefaultSpacing.LabelGap, p.Rect.Min.Y)
		}
	})

	t.Run("上下の余白が等しくキャンバスに収まる", func(t *testing.T) {
		plan := ComputePlan(selfieTiles(2, image.Pt(200, 150)), DefaultSpacing)
		last := plan.Placements[len(plan.Placements)-1]
		assert.Equal(t, DefaultSpacing.Margin, plan.Placements[0].Rect.Min.Y)
		assert.Equal(t, plan.Height-DefaultSpacing.Margin, last.Rect.Max.Y)
		for _, p := range plan.Placements {
			assert.True(t, p.Rect.In(image.Rect(0, 0, plan.Width, plan.Height)))
		}
	})

	t.Run("セルフィーが増えるほど高さが増える", func(t *testing.T) {
		prev := 0
		for n := 1; n <= 5; n++ {
			plan := ComputePlan(selfieTiles(n, image.Pt(200, 200)), DefaultSpacing)
			assert.Greater(t, plan.Height, prev)
			prev = plan.Height
		}
	})

	t.Run("同じ入力からは同じPlanになる", func(t *testing.T) {
		tiles := selfieTiles(3, image.Pt(120, 90))
		assert.Equal(t, ComputePlan(tiles, DefaultSpacing), ComputePlan(tiles, DefaultSpacing))
	})
}

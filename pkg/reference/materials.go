package reference

import (
	"fmt"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
)

// Materials は正規化済みの入力素材一式です。Strategy はこれだけを見てペイロードを組み立てます。
type Materials struct {
	Request    domain.BuildRequest
	Selfies    []*domain.ImageAsset // 取得順
	Logo       *domain.ImageAsset   // 取得できなかった場合は nil
	Background *domain.ImageAsset   // 取得できなかった場合は nil
}

// SelfieLabel は n 番目（1始まり）のセルフィーのラベルです。
func SelfieLabel(n int) string {
	return fmt.Sprintf("SUBJECT1-SELFIE%d", n)
}

// SelfieLabels は取得済みセルフィーのラベル一覧を返します。
func (m *Materials) SelfieLabels() []string {
	labels := make([]string, len(m.Selfies))
	for i := range m.Selfies {
		labels[i] = SelfieLabel(i + 1)
	}
	return labels
}

// AspectLabel はフレームに表示する比率ラベルです。未指定なら幅と高さを約分して作ります。
func AspectLabel(size domain.AspectSize) string {
	if size.Label != "" {
		return size.Label
	}
	if size.Width <= 0 || size.Height <= 0 {
		return ""
	}
	g := gcd(size.Width, size.Height)
	return fmt.Sprintf("%d:%d", size.Width/g, size.Height/g)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

package reference

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/gemini-reference-kit/pkg/imgutil"
	"github.com/shouni/gemini-reference-kit/pkg/layout"
)

// compositeStrategy はセルフィーとロゴを1枚の参照シートに積み、背景とフォーマットフレームを添えます。
type compositeStrategy struct {
	engine *layout.Engine
	text   *imgutil.TextRenderer
	sink   DiagnosticSink
}

func (s *compositeStrategy) Mode() domain.Mode { return domain.ModeComposite }

func (s *compositeStrategy) Compose(ctx context.Context, m *Materials) (*domain.ReferencePayload, error) {
	sheet := layout.Sheet{Subjects: make([]layout.Element, len(m.Selfies))}
	for i, selfie := range m.Selfies {
		sheet.Subjects[i] = layout.Element{Asset: selfie, Label: SelfieLabel(i + 1), Role: domain.RoleSelfie}
	}
	if m.Logo != nil {
		sheet.Extras = append(sheet.Extras, layout.Element{Asset: m.Logo, Label: logoLabel, Role: domain.RoleLogo})
	}

	composite, err := s.engine.Compose(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("参照シートの合成に失敗しました: %w", err)
	}

	// 診断用の書き出しは失敗してもログだけ残して続行する
	if err := s.sink.WriteComposite(ctx, m.Request.GenerationID, composite.Asset.Data); err != nil {
		slog.WarnContext(ctx, "参照シートの診断用書き出しに失敗しました",
			"generation_id", m.Request.GenerationID, "error", err)
	}

	size := m.Request.AspectSize
	aspect := AspectLabel(size)
	frame, err := s.text.RenderFrame(size.Width, size.Height, aspect)
	if err != nil {
		return nil, fmt.Errorf("フォーマットフレームの描画に失敗しました: %w", err)
	}

	desc := fmt.Sprintf("REFERENCE SHEET: %d selfie(s) of the subject (%s)", len(m.Selfies), selfieRange(m.SelfieLabels()))
	if m.Logo != nil {
		desc += " and the " + logoLabel + " under ADDITIONAL REFERENCES"
	}
	images := []domain.ReferenceImage{toReferenceImage(domain.RoleComposite, composite.Asset, desc)}
	if m.Background != nil {
		images = append(images, toReferenceImage(domain.RoleBackground, m.Background,
			backgroundLabel+": environment to place the subject in"))
	}
	images = append(images, toReferenceImage(domain.RoleFormatFrame, frame,
		fmt.Sprintf("FORMAT FRAME %dx%d (%s): output bounds only, do not render", size.Width, size.Height, aspect)))

	return &domain.ReferencePayload{
		Mode:        domain.ModeComposite,
		Images:      images,
		Instruction: compositeInstruction(m, size.Width, size.Height, aspect),
	}, nil
}

// flatStrategy はセルフィーと素材をそれぞれ個別のラベル付き画像として並べます。フレームは付けません。
type flatStrategy struct{}

func (flatStrategy) Mode() domain.Mode { return domain.ModeFlat }

func (flatStrategy) Compose(_ context.Context, m *Materials) (*domain.ReferencePayload, error) {
	images := make([]domain.ReferenceImage, 0, len(m.Selfies)+2)
	for i, selfie := range m.Selfies {
		images = append(images, toReferenceImage(domain.RoleSelfie, selfie, SelfieLabel(i+1)))
	}
	if m.Logo != nil {
		images = append(images, toReferenceImage(domain.RoleLogo, m.Logo, logoLabel))
	}
	if m.Background != nil {
		images = append(images, toReferenceImage(domain.RoleBackground, m.Background, backgroundLabel))
	}

	return &domain.ReferencePayload{
		Mode:        domain.ModeFlat,
		Images:      images,
		Instruction: flatInstruction(m),
	}, nil
}

func toReferenceImage(role domain.Role, asset *domain.ImageAsset, description string) domain.ReferenceImage {
	return domain.ReferenceImage{
		Role:        role,
		MimeType:    asset.MimeType,
		Data:        asset.Data,
		Description: description,
	}
}

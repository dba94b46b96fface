package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// ReferenceGenerator は参照ペイロードの組み立てと、Gemini への生成リクエストをまとめて行います。
type ReferenceGenerator struct {
	builder PayloadBuilder
	model   ReferenceModel
	name    string
}

// NewReferenceGenerator は ReferenceGenerator を初期化するのだ。
func NewReferenceGenerator(builder PayloadBuilder, model ReferenceModel, modelName string) (*ReferenceGenerator, error) {
	if builder == nil {
		return nil, fmt.Errorf("builder (PayloadBuilder) is required")
	}
	if model == nil {
		return nil, fmt.Errorf("model (ReferenceModel) is required")
	}

	return &ReferenceGenerator{
		builder: builder,
		model:   model,
		name:    modelName,
	}, nil
}

// GenerateWithReferences は参照ペイロードを組み立て、それを添えて1枚の画像を生成するのだ。
func (g *ReferenceGenerator) GenerateWithReferences(ctx context.Context, req domain.ReferenceGenerationRequest) (*domain.ImageResponse, error) {
	payload, err := g.builder.Build(ctx, req.Build)
	if err != nil {
		return nil, fmt.Errorf("参照ペイロードの組み立てに失敗しました: %w", err)
	}

	parts := ToParts(req.Prompt, payload)
	slog.InfoContext(ctx, "Geminiに画像生成をリクエストします",
		"model", g.name, "mode", payload.Mode, "images", len(payload.Images), "total_parts", len(parts))

	opts := gemini.GenerateOptions{
		AspectRatio:  req.AspectRatio,
		SystemPrompt: req.SystemPrompt,
		Seed:         req.Seed,
	}

	resp, err := g.model.GenerateWithParts(ctx, g.name, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("Geminiでの参照画像付き生成に失敗しました: %w", err)
	}

	out, err := parseToResponse(resp, dereferenceSeed(req.Seed))
	if err != nil {
		return nil, fmt.Errorf("レスポンスパースに失敗しました: %w", err)
	}

	return &domain.ImageResponse{
		Data:     out.Data,
		MimeType: out.MimeType,
		UsedSeed: out.UsedSeed,
	}, nil
}

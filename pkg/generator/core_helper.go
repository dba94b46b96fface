package generator

import (
	"fmt"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ImageOutput はレスポンス解析の内部結果です。
type ImageOutput struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}

// ToParts は参照ペイロードをモデルへ送るパーツ列に変換します。
// 並びは プロンプト → 指示文 → (説明テキスト, 画像) の繰り返し です。
func ToParts(prompt string, payload *domain.ReferencePayload) []*genai.Part {
	parts := make([]*genai.Part, 0, 2+2*len(payload.Images))
	if prompt != "" {
		parts = append(parts, &genai.Part{Text: prompt})
	}
	if payload.Instruction != "" {
		parts = append(parts, &genai.Part{Text: payload.Instruction})
	}
	for _, img := range payload.Images {
		if len(img.Data) == 0 {
			continue
		}
		if img.Description != "" {
			parts = append(parts, &genai.Part{Text: img.Description})
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MimeType,
				Data:     img.Data,
			},
		})
	}
	return parts
}

// parseToResponse は Gemini のレスポンスから最初の画像を取り出します。
func parseToResponse(resp *gemini.Response, seed int64) (*ImageOutput, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}

	// 現在の仕様では、Geminiからの最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageOutput{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
					UsedSeed: seed,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}

	return nil, fmt.Errorf("画像データが見つかりませんでした")
}

// dereferenceSeed は *int64 を安全に int64 に変換するのだ。nil の場合は 0 を返すのだよ。
func dereferenceSeed(s *int64) int64 {
	if s == nil {
		return 0
	}
	return *s
}

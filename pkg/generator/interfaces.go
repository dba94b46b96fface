package generator

import (
	"context"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// PayloadBuilder は参照ペイロードを組み立てるコンポーネントです。reference.Builder が満たします。
type PayloadBuilder interface {
	Build(ctx context.Context, req domain.BuildRequest) (*domain.ReferencePayload, error)
}

// ReferenceModel はパーツ列を受け取って生成を行うモデルクライアントです。
// gemini.GenerativeModel が満たします。
type ReferenceModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ImageGenerator はビジネスロジック層が利用する統合窓口です。
type ImageGenerator interface {
	GenerateWithReferences(ctx context.Context, req domain.ReferenceGenerationRequest) (*domain.ImageResponse, error)
}

package generator

import (
	"context"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockBuilder struct {
	payload *domain.ReferencePayload
	err     error
	lastReq domain.BuildRequest
}

func (m *mockBuilder) Build(ctx context.Context, req domain.BuildRequest) (*domain.ReferencePayload, error) {
	m.lastReq = req
	return m.payload, m.err
}

type mockModel struct {
	generateFunc func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
	called       bool
}

func (m *mockModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.called = true
	if m.generateFunc != nil {
		return m.generateFunc(model, parts, opts)
	}
	return imageResponse([]byte("fake")), nil
}

func imageResponse(data []byte) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}}},
				},
			}},
		},
	}
}

func samplePayload() *domain.ReferencePayload {
	return &domain.ReferencePayload{
		Mode: domain.ModeComposite,
		Images: []domain.ReferenceImage{
			{Role: domain.RoleComposite, MimeType: "image/png", Data: []byte("sheet"), Description: "REFERENCE SHEET"},
			{Role: domain.RoleFormatFrame, MimeType: "image/png", Data: []byte("frame"), Description: "FORMAT FRAME"},
		},
		Instruction: "Use the attached reference images as follows.",
	}
}

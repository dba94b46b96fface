package reference

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
)

// NopSink は何も書き出さない DiagnosticSink です。
type NopSink struct{}

func (NopSink) WriteComposite(context.Context, string, []byte) error { return nil }

// FileSink は参照シートを <Dir>/<generationID>-composite.png に書き出します。
type FileSink struct {
	Dir string // 空なら os.TempDir()
}

// NewFileSink は FileSink を作成します。
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Path は generationID に対応する書き出し先のパスです。
func (s *FileSink) Path(generationID string) string {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, sanitizeID(generationID)+"-composite.png")
}

func (s *FileSink) WriteComposite(ctx context.Context, generationID string, data []byte) error {
	path := s.Path(generationID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDiagnosticWrite, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDiagnosticWrite, err)
	}
	return nil
}

// sanitizeID はパス区切りなどを取り除き、ファイル名に使える ID にします。
func sanitizeID(id string) string {
	id = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(id))
	if strings.Trim(id, "_") == "" {
		return "unknown"
	}
	return id
}

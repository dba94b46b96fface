package adapters

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

var _ remoteio.InputReader = (*LocalReader)(nil)

// LocalReader はローカルファイルシステムを remoteio.InputReader として扱うリーダーです。
// 相対パスは Root を起点に解決します。"file://" 接頭辞は取り除きます。
type LocalReader struct {
	Root string
}

// NewLocalReader は LocalReader を作成します。
func NewLocalReader(root string) *LocalReader {
	return &LocalReader{Root: root}
}

func (r *LocalReader) resolve(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	if r.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.Root, path)
	}
	return path
}

// Open はファイルを開きます。
func (r *LocalReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.resolve(uri))
	if err != nil {
		return nil, fmt.Errorf("ファイルを開けませんでした: %w", err)
	}
	return f, nil
}

// List は uri 配下のファイルを辞書順に fn へ渡します。
func (r *LocalReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return filepath.WalkDir(r.resolve(uri), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return fn(path)
	})
}

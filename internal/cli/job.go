package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"gopkg.in/yaml.v3"
)

// loadJob は YAML のジョブファイルを BuildRequest として読み込みます。
func loadJob(path string) (domain.BuildRequest, error) {
	var req domain.BuildRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("ジョブファイルを読み込めませんでした: %w", err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("ジョブファイルの解析に失敗しました (%s): %w", path, err)
	}
	return req, nil
}

// parseSize は "1024x1536" 形式のサイズを解析します。
func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("サイズは WIDTHxHEIGHT 形式で指定してください: %q", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("幅が不正です: %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("高さが不正です: %q", s)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("サイズは正の値で指定してください: %q", s)
	}
	return width, height, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

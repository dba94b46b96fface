package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd は refkit のルートコマンドを作成します。
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refkit",
		Short: "Compose reference images for image generation models",
		Long: `refkit builds the reference payload (images + instruction text) that is sent
to an image generation model alongside a prompt.

It stacks selfies and brand assets into one labeled reference sheet with a
format frame, or lays them out as individually labeled images.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env があれば読み込む（エラーは無視）
			_ = godotenv.Load()
			setupLogger(os.Getenv("LOG_LEVEL"))
		},
	}

	cmd.AddCommand(newBuildCmd())

	return cmd
}

func setupLogger(level string) {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shouni/gemini-reference-kit/pkg/adapters"
	"github.com/shouni/gemini-reference-kit/pkg/domain"
	"github.com/shouni/gemini-reference-kit/pkg/reference"
	"github.com/spf13/cobra"
)

type buildFlags struct {
	job           string
	selfies       []string
	logo          string
	background    string
	logoPlacement string
	composite     bool
	size          string
	aspectLabel   string
	shot          string
	aspect        string
	id            string
	root          string
	out           string
	diagnosticDir string
	maxEdge       int
}

func newBuildCmd() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a reference payload from local selfies and brand assets",
		Long: `Builds the reference payload and writes every image plus instruction.txt
into the output directory.

Values from --job are used first; flags given on the command line override them.`,
		Example: `  # Composite sheet with a 2:3 format frame
  refkit build --selfie me1.jpg --selfie me2.jpg --logo logo.png --size 1024x1536

  # Individually labeled images
  refkit build --job job.yaml --composite=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}
			return runBuild(cmd, f, req)
		},
	}

	bindBuildFlags(cmd, &f)
	return cmd
}

func bindBuildFlags(cmd *cobra.Command, f *buildFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.job, "job", "", "YAML job file describing the build request")
	flags.StringArrayVarP(&f.selfies, "selfie", "s", nil, "Selfie path (repeatable, order sets the label numbers)")
	flags.StringVar(&f.logo, "logo", "", "Logo image path")
	flags.StringVar(&f.background, "background", "", "Custom background image path")
	flags.StringVar(&f.logoPlacement, "logo-placement", "", "Where the logo should appear in the final image")
	flags.BoolVar(&f.composite, "composite", true, "Stack everything into one reference sheet with a format frame")
	flags.StringVar(&f.size, "size", "1024x1536", "Output size for the format frame (WIDTHxHEIGHT)")
	flags.StringVar(&f.aspectLabel, "aspect-label", "", "Aspect label on the format frame (default: reduced WIDTH:HEIGHT)")
	flags.StringVar(&f.shot, "shot", "", "Shot type guidance")
	flags.StringVar(&f.aspect, "aspect", "", "Aspect ratio guidance")
	flags.StringVar(&f.id, "id", "", "Generation id used for diagnostic file names")
	flags.StringVar(&f.root, "root", getEnv("REFKIT_ROOT", "."), "Base directory for relative asset paths")
	flags.StringVarP(&f.out, "out", "o", getEnv("REFKIT_OUT_DIR", "refkit-out"), "Output directory")
	flags.StringVar(&f.diagnosticDir, "diagnostic-dir", getEnv("REFKIT_DIAGNOSTIC_DIR", ""), "Also write the composite sheet here for diagnostics")
	flags.IntVar(&f.maxEdge, "max-edge", 0, "Downscale inputs whose longer side exceeds this (0 = keep)")
}

// request はジョブファイルとフラグから BuildRequest を組み立てます。
func (f buildFlags) request(cmd *cobra.Command) (domain.BuildRequest, error) {
	var req domain.BuildRequest
	if f.job != "" {
		loaded, err := loadJob(f.job)
		if err != nil {
			return req, err
		}
		req = loaded
	} else {
		req.UseComposite = f.composite
	}

	changed := cmd.Flags().Changed
	if changed("selfie") {
		req.SelfieKeys = f.selfies
	}
	if changed("logo") {
		req.Style.LogoKey = f.logo
	}
	if changed("background") {
		req.Style.BackgroundKey = f.background
	}
	if changed("logo-placement") {
		req.Style.LogoPlacement = f.logoPlacement
	}
	if changed("composite") {
		req.UseComposite = f.composite
	}
	if changed("shot") {
		req.ShotDescription = f.shot
	}
	if changed("aspect") {
		req.AspectRatioDescription = f.aspect
	}
	if changed("aspect-label") {
		req.AspectSize.Label = f.aspectLabel
	}
	if changed("id") {
		req.GenerationID = f.id
	}
	if changed("size") || req.AspectSize.Width == 0 || req.AspectSize.Height == 0 {
		w, h, err := parseSize(f.size)
		if err != nil {
			return req, err
		}
		req.AspectSize.Width, req.AspectSize.Height = w, h
	}
	if req.GenerationID == "" {
		req.GenerationID = time.Now().UTC().Format("20060102T150405")
	}
	return req, nil
}

func runBuild(cmd *cobra.Command, f buildFlags, req domain.BuildRequest) error {
	ctx := cmd.Context()

	fetcher, err := adapters.NewAssetFetcher(nil, adapters.NewLocalReader(f.root), nil, 0)
	if err != nil {
		return err
	}

	opts := []reference.Option{reference.WithMaxEdge(f.maxEdge)}
	if f.diagnosticDir != "" {
		opts = append(opts, reference.WithDiagnosticSink(reference.NewFileSink(f.diagnosticDir)))
	}

	builder, err := reference.NewBuilder(fetcher, fetcher, opts...)
	if err != nil {
		return err
	}

	payload, err := builder.Build(ctx, req)
	if err != nil {
		return err
	}

	if err := writePayload(f.out, payload); err != nil {
		return err
	}

	slog.InfoContext(ctx, "参照ペイロードを書き出しました", "dir", f.out, "mode", payload.Mode, "images", len(payload.Images))
	return nil
}

// writePayload は画像を NN-role.png として、指示文を instruction.txt として書き出します。
func writePayload(dir string, payload *domain.ReferencePayload) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力ディレクトリを作成できませんでした: %w", err)
	}

	for i, img := range payload.Images {
		name := fmt.Sprintf("%02d-%s.png", i+1, img.Role)
		if err := os.WriteFile(filepath.Join(dir, name), img.Data, 0o644); err != nil {
			return fmt.Errorf("画像を書き出せませんでした (%s): %w", name, err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "instruction.txt"), []byte(payload.Instruction+"\n"), 0o644); err != nil {
		return fmt.Errorf("指示文を書き出せませんでした: %w", err)
	}
	return nil
}

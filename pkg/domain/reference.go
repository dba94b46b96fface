package domain

// Role はペイロードやレイアウト上の要素が果たす役割です。
type Role string

const (
	RoleSelfie       Role = "selfie"
	RoleLogo         Role = "logo"
	RoleBackground   Role = "background"
	RoleAssetTitle   Role = "asset-title"
	RoleSubjectTitle Role = "subject-title"
	RoleFormatFrame  Role = "format-frame"
	RoleComposite    Role = "composite"
)

// Mode は参照ペイロードの組み立て方式です。
type Mode string

const (
	ModeComposite Mode = "composite"
	ModeFlat      Mode = "flat"
)

// StyleSettings はブランド素材の指定です。キーが空の素材は使いません。
type StyleSettings struct {
	LogoKey       string `yaml:"logo_key" json:"logo_key"`
	BackgroundKey string `yaml:"background_key" json:"background_key"`
	// LogoPlacement はロゴを置く場所のヒントです（例: "on the jacket chest"）。
	LogoPlacement string `yaml:"logo_placement" json:"logo_placement"`
}

// AspectSize は最終出力のピクセルサイズと、その比率の表示ラベルです。
type AspectSize struct {
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Label  string `yaml:"label" json:"label"` // "2:3" など。空なら Width:Height から作ります
}

// BuildRequest は参照ペイロード1件分の入力です。
type BuildRequest struct {
	Style                  StyleSettings `yaml:"style" json:"style"`
	SelfieKeys             []string      `yaml:"selfie_keys" json:"selfie_keys"`
	UseComposite           bool          `yaml:"use_composite" json:"use_composite"`
	ShotDescription        string        `yaml:"shot_description" json:"shot_description"`
	AspectRatioDescription string        `yaml:"aspect_ratio_description" json:"aspect_ratio_description"`
	AspectSize             AspectSize    `yaml:"aspect_size" json:"aspect_size"`
	GenerationID           string        `yaml:"generation_id" json:"generation_id"`
}

// DownloadedAsset はアセットダウンローダーが返す Base64 データです。
type DownloadedAsset struct {
	Base64   string
	MimeType string
}

// ReferenceImage は生成モデルへ渡す画像1枚分のエントリです。
type ReferenceImage struct {
	Role        Role
	MimeType    string
	Data        []byte
	Description string
}

// ReferencePayload は画像群と指示文のセットです。
//
// composite モードでは composite 1枚、任意で background 1枚、format-frame 1枚の順に並びます。
// flat モードではセルフィーごとに1枚、その後に任意の logo と background が続き、フレームは含みません。
type ReferencePayload struct {
	Mode        Mode
	Images      []ReferenceImage
	Instruction string
}

// CountRole は指定した役割のエントリ数を返します。
func (p *ReferencePayload) CountRole(role Role) int {
	n := 0
	for _, img := range p.Images {
		if img.Role == role {
			n++
		}
	}
	return n
}

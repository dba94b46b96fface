package reference

import (
	"fmt"
	"strings"
)

const (
	backgroundLabel      = "CUSTOM BACKGROUND"
	logoLabel            = "LOGO"
	defaultLogoPlacement = "on a natural surface such as the clothing or a prop"
)

func selfieRange(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return labels[0] + " to " + labels[len(labels)-1]
	}
}

func logoPlacement(m *Materials) string {
	if p := strings.TrimSpace(m.Request.Style.LogoPlacement); p != "" {
		return p
	}
	return defaultLogoPlacement
}

// compositeInstruction は参照シート方式の指示文です。
// 項目は 顔の選び方 → 背景 → ロゴ → フォーマット の順に番号付きで並びます。
func compositeInstruction(m *Materials, frameWidth, frameHeight int, aspect string) string {
	labels := m.SelfieLabels()
	var items []string

	items = append(items, fmt.Sprintf(
		"SUBJECT LIKENESS: The reference sheet stacks %d selfie(s) of the same person under the \"SUBJECT\" heading, labeled %s. "+
			"Pick the selfie that shows the face most clearly as the primary likeness. "+
			"Use the remaining selfies only for structural detail such as face shape, hairline, skin tone and proportions. "+
			"Do not blend different faces and do not reproduce the sheet, its headings or its labels.",
		len(labels), selfieRange(labels)))

	if m.Background != nil {
		items = append(items, fmt.Sprintf(
			"BACKGROUND: Place the subject in the environment shown in the image labeled %s. "+
				"Keep its setting and match its lighting and perspective on the subject.",
			backgroundLabel))
	}

	if m.Logo != nil {
		items = append(items, fmt.Sprintf(
			"LOGO: The tile labeled %s under \"ADDITIONAL REFERENCES\" is a brand logo. "+
				"Apply it exactly once, %s, keeping its shapes, colors and proportions. "+
				"Do not repeat it and do not invent other branding.",
			logoLabel, logoPlacement(m)))
	}

	items = append(items, fmt.Sprintf(
		"FORMAT: The format frame is %dx%d pixels (%s). Compose the final image to fill exactly these bounds. "+
			"The frame is only a size reference: do not draw its borders or its caption.",
		frameWidth, frameHeight, aspect))

	var b strings.Builder
	b.WriteString("Use the attached reference images as follows.\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	writeGuidance(&b, m)
	return strings.TrimRight(b.String(), "\n")
}

// flatInstruction は個別画像方式の指示文です。
func flatInstruction(m *Materials) string {
	labels := m.SelfieLabels()

	var b strings.Builder
	fmt.Fprintf(&b, "The attached selfies of the subject are labeled %s. ", strings.Join(labels, ", "))
	b.WriteString("Use all of them together to reproduce the person's likeness faithfully.\n")
	if m.Logo != nil {
		fmt.Fprintf(&b, "The image labeled %s is a brand logo. Apply it exactly once, %s.\n", logoLabel, logoPlacement(m))
	}
	if m.Background != nil {
		fmt.Fprintf(&b, "Place the subject in the environment shown in the image labeled %s.\n", backgroundLabel)
	}
	b.WriteString("HARD REQUIREMENT: The final image must be portrait-oriented (taller than it is wide).\n")
	writeGuidance(&b, m)
	return strings.TrimRight(b.String(), "\n")
}

func writeGuidance(b *strings.Builder, m *Materials) {
	if s := strings.TrimSpace(m.Request.ShotDescription); s != "" {
		fmt.Fprintf(b, "Shot type: %s\n", s)
	}
	if s := strings.TrimSpace(m.Request.AspectRatioDescription); s != "" {
		fmt.Fprintf(b, "Aspect ratio: %s\n", s)
	}
}

package insight

import (
	"fmt"
	"strings"
)

// ProductAttributes describes the product a packshot is generated for.
type ProductAttributes struct {
	Name     string
	Category string
	Material string
	Color    string
	Finish   string
}

const packshotTemplate = `Generate a high-accuracy e-commerce catalog product image.

STRICT REQUIREMENTS:
- Show ONLY the product itself
- NO humans, NO hands, NO models
- NO lifestyle or usage context
- NO environment props
- NO text, NO watermark, NO branding overlay
- Product must be centered and fully visible

PRODUCT DETAILS:
Product name: %s
Category: %s
Material: %s
Color: %s
Finish: %s
Shape & proportions: realistic, manufacturing-accurate

IMAGE STYLE:
- Background: pure white (#FFFFFF)
- Lighting: soft studio lighting, shadow-free
- Camera: straight-on front view
- Resolution: ultra-high resolution, sharp edges
- Style: professional catalog / packshot photography
- Neutral color balance, true-to-life colors

DO NOT:
- Add people or hands
- Show the product being used
- Add accessories not mentioned
- Change colors or proportions`

// ProductImagePrompt builds the studio packshot prompt for a product.
// Missing material, color and finish get neutral defaults.
func ProductImagePrompt(attrs ProductAttributes) string {
	return strings.TrimSpace(fmt.Sprintf(packshotTemplate,
		attrs.Name,
		attrs.Category,
		orDefault(attrs.Material, "Premium Quality"),
		orDefault(attrs.Color, "True to life"),
		orDefault(attrs.Finish, "Matte"),
	))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

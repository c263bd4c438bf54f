package domain

import (
	"strings"

	"github.com/gosimple/slug"
)

// NormalizeMaterialCode canonicalizes a caller-supplied material type so
// "Plastic (PET)", "plastic pet" and "PLASTIC_PET" all hit the same row.
// slug.Make keeps underscores, so they are folded to spaces first.
func NormalizeMaterialCode(materialType string) string {
	return slug.Make(strings.ReplaceAll(materialType, "_", " "))
}

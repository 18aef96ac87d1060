package pipeline

import (
	"strings"

	"curadoria/internal/util"
)

// Unmatched non-empty text becomes its own single tag.
func (v Vocabulary) DetectRegions(text string) []string {
	t := util.Normalize(text)
	regions := []string{}
	seen := map[string]struct{}{}

	for _, rule := range v.Regions {
		if _, dup := seen[rule.Tag]; dup {
			continue
		}
		for _, p := range rule.Patterns {
			pattern := util.Normalize(p)
			if pattern != "" && strings.Contains(t, pattern) {
				regions = append(regions, rule.Tag)
				seen[rule.Tag] = struct{}{}
				break
			}
		}
	}

	if len(regions) == 0 {
		if raw := strings.TrimSpace(text); raw != "" {
			regions = append(regions, raw)
		}
	}
	return regions
}

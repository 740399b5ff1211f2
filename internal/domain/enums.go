package domain

import "fmt"

// UsageCategory is the mnemonic role a picture word can play.
type UsageCategory string

const (
	UsagePerson UsageCategory = "person"
	UsageJob    UsageCategory = "job"
	UsageAdj    UsageCategory = "adj"
	UsageImage  UsageCategory = "image"
)

func (c UsageCategory) String() string { return string(c) }

func (c UsageCategory) IsValid() bool {
	switch c {
	case UsagePerson, UsageJob, UsageAdj, UsageImage:
		return true
	}
	return false
}

// ParseUsageCategory converts free text (as found in catalog files) into a
// UsageCategory.
func ParseUsageCategory(s string) (UsageCategory, error) {
	c := UsageCategory(NormalizeText(s))
	if !c.IsValid() {
		return "", NewValidationError("usage_category", fmt.Sprintf("unknown category %q", s))
	}
	return c, nil
}

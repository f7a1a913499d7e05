package matching

import (
	"fmt"
	"strings"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// catalogSummaryLimit caps the description excerpt in catalog meaning text.
const catalogSummaryLimit = 1200

func skillsLine(skills []string) string {
	if len(skills) == 0 {
		return "None"
	}
	return strings.Join(skills, ", ")
}

// BuildResumeMeaning renders the canonical text embedded for a parsed resume.
func BuildResumeMeaning(p model.ParsedResume) string {
	return strings.Join([]string{
		"Domain: " + string(p.Domain),
		fmt.Sprintf("Experience: %d", p.ExperienceYears),
		"Skills: " + skillsLine(p.Skills),
		"Summary: " + p.Summary,
	}, "\n")
}

// BuildCatalogMeaning renders the canonical text embedded for a catalog entry.
func BuildCatalogMeaning(e *model.CatalogEntry) string {
	domain := string(e.Domain)
	if e.Subdomain != "" {
		domain += " / " + e.Subdomain
	}
	summary := e.Description
	if r := []rune(summary); len(r) > catalogSummaryLimit {
		summary = string(r[:catalogSummaryLimit])
	}
	return strings.Join([]string{
		"Title: " + e.Title,
		"Domain: " + domain,
		fmt.Sprintf("Experience: %d+ years", e.ExperienceMin),
		"Skills: " + skillsLine(e.SkillsRequired),
		"Summary: " + summary,
	}, "\n")
}

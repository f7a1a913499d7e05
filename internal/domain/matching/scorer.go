package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// Scorer computes sub-scores, the composite and the explanation for one entry.
// It is stateless and safe for concurrent use.
type Scorer struct {
	window  int
	weights Weights
}

// NewScorer constructs a Scorer from cfg.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{window: cfg.Window, weights: cfg.Weights}
}

// CanonicalSkill lowercases and trims a skill for comparison.
func CanonicalSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// canonicalSet maps canonical form to the last original spelling seen.
func canonicalSet(skills []string) map[string]string {
	out := make(map[string]string, len(skills))
	for _, s := range skills {
		c := CanonicalSkill(s)
		if c == "" {
			continue
		}
		out[c] = strings.TrimSpace(s)
	}
	return out
}

// SkillsOverlap is the outcome of comparing resume skills to required skills.
type SkillsOverlap struct {
	Score    float64
	Matched  []string
	Missing  []string
	Required int
}

// SkillsScore returns the percentage of required skills the resume covers.
// Entries with no requirements score 0 with nothing matched or missing.
func SkillsScore(resumeSkills, required []string) SkillsOverlap {
	req := canonicalSet(required)
	if len(req) == 0 {
		return SkillsOverlap{Matched: []string{}, Missing: []string{}}
	}
	have := canonicalSet(resumeSkills)

	matched := make([]string, 0, len(req))
	missing := make([]string, 0, len(req))
	for canon, original := range req {
		if _, ok := have[canon]; ok {
			matched = append(matched, original)
		} else {
			missing = append(missing, original)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	score := 100 * float64(len(matched)) / float64(len(req))
	return SkillsOverlap{
		Score:    math.Min(score, 100),
		Matched:  matched,
		Missing:  missing,
		Required: len(req),
	}
}

// ExperienceFit scores how close years is to the centre of [lo, hi]. The score is
// 100 at the centre and decays linearly to 0 at window years beyond either edge.
func ExperienceFit(years, lo, hi, window int) float64 {
	center := float64(lo+hi) / 2
	maxDistance := float64(window) + float64(hi-lo)/2
	if maxDistance == 0 {
		return 100
	}
	distance := math.Abs(float64(years) - center)
	return 100 * math.Max(0, 1-distance/maxDistance)
}

// Composite blends the three sub-scores with w and clamps to [0, 100].
func Composite(w Weights, skills, semantic, experience float64) float64 {
	return clampScore(w.Skills*skills + w.Semantic*semantic + w.Experience*experience)
}

// SkillsSummary renders the explanation sentence for a skills overlap.
func SkillsSummary(o SkillsOverlap) string {
	if o.Required == 0 {
		return "No required skills listed."
	}
	summary := fmt.Sprintf("You match %d of %d required skills.", len(o.Matched), o.Required)
	if len(o.Missing) > 0 {
		summary += " Missing: " + strings.Join(o.Missing, ", ") + "."
	}
	return summary
}

// Score produces the MatchResult for one retrieved entry. similarity is the
// retriever's cosine similarity in [0, 1].
func (s *Scorer) Score(resumeSkills []string, years int, entry *model.CatalogEntry, similarity float64) model.MatchResult {
	overlap := SkillsScore(resumeSkills, entry.SkillsRequired)
	semantic := clampScore(similarity * 100)
	fit := ExperienceFit(years, entry.ExperienceMin, entry.ExperienceMax, s.window)
	composite := Composite(s.weights, overlap.Score, semantic, fit)

	return model.MatchResult{
		Job:   entry.Summary(),
		Score: round1(composite),
		Breakdown: model.ScoreBreakdown{
			Skills:   round1(overlap.Score),
			Semantic: round1(semantic),
			YOE:      round1(fit),
		},
		Explanation: model.MatchExplanation{
			MatchedSkills:   overlap.Matched,
			MissingRequired: overlap.Missing,
			Summary:         SkillsSummary(overlap),
		},
	}
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

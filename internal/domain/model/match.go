package model

// ParsedResume is the structured profile returned by the resume parser.
type ParsedResume struct {
	Domain          Domain   `json:"domain"`
	ExperienceYears int      `json:"yoe"`
	Country         string   `json:"country"`
	Skills          []string `json:"skills"`
	Summary         string   `json:"summary"`
}

// CountryPtr returns the parsed country or nil when it is unknown.
func (p *ParsedResume) CountryPtr() *string {
	if p.Country == "" {
		return nil
	}
	c := p.Country
	return &c
}

// EphemeralCandidateID identifies resume contexts that are never persisted.
const EphemeralCandidateID = "ephemeral"

// ResumeContext is the candidate profile for one matching run.
type ResumeContext struct {
	ID              string
	Domain          Domain
	ExperienceYears int
	Country         *string
	Skills          []string
	Embedding       []float32
}

// Neighbor is one ranked hit from the nearest-neighbor index.
type Neighbor struct {
	ID         string
	Similarity float64
}

// ScoreBreakdown holds the per-factor sub-scores, each in [0, 100].
type ScoreBreakdown struct {
	Skills   float64 `json:"skills"`
	Semantic float64 `json:"semantic"`
	YOE      float64 `json:"yoe"`
}

// MatchExplanation is the human-readable reasoning attached to a match.
type MatchExplanation struct {
	MatchedSkills   []string `json:"matched_skills"`
	MissingRequired []string `json:"missing_required"`
	Summary         string   `json:"summary"`
}

// MatchResult is one scored catalog entry.
type MatchResult struct {
	Job         CatalogSummary   `json:"job"`
	Score       float64          `json:"score"`
	Breakdown   ScoreBreakdown   `json:"breakdown"`
	Explanation MatchExplanation `json:"explanation"`
}

// MatchResponse is the output of one pipeline run.
type MatchResponse struct {
	CandidateID  string        `json:"candidate_profile_id"`
	TotalMatches int           `json:"total_matches"`
	Matches      []MatchResult `json:"matches"`
}

// EmptyMatchResponse returns a well-formed response with no matches.
func EmptyMatchResponse(candidateID string) MatchResponse {
	return MatchResponse{CandidateID: candidateID, Matches: []MatchResult{}}
}

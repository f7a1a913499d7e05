// Package model defines the core data types shared by the matching pipeline, the job queue and the HTTP API.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain is the top-level job category used by the candidate filter.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type Domain string

const (
	DomainEngineering    Domain = "Engineering"
	DomainFinance        Domain = "Finance"
	DomainHealthcare     Domain = "Healthcare"
	DomainDesign         Domain = "Design"
	DomainLegal          Domain = "Legal"
	DomainSalesMarketing Domain = "Sales & Marketing"
)

// DefaultDomain is assigned to resumes whose parser output names no domain.
const DefaultDomain = DomainEngineering

// Domains returns the known catalog domains in display order.
func Domains() []Domain {
	return []Domain{
		DomainEngineering,
		DomainFinance,
		DomainHealthcare,
		DomainDesign,
		DomainLegal,
		DomainSalesMarketing,
	}
}

// Valid returns true if the domain is part of the taxonomy.
func (d Domain) Valid() bool {
	for _, known := range Domains() {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDomain resolves a domain name case-insensitively.
func ParseDomain(raw string) (Domain, error) {
	v := strings.TrimSpace(raw)
	for _, known := range Domains() {
		if strings.EqualFold(v, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid domain: %q", raw)
}

// UnmarshalText implements encoding.TextUnmarshaler for Domain.
func (d *Domain) UnmarshalText(text []byte) error {
	parsed, err := ParseDomain(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Experience range bounds applied when ingestion leaves them unset.
const (
	DefaultExperienceMin = 0
	DefaultExperienceMax = 99
)

// CatalogEntry is a job posting in the catalog. Entries are written by ingestion
// and are read-only to the matching pipeline.
type CatalogEntry struct {
	ID             string    `json:"id"                   db:"id"`
	Source         string    `json:"source"               db:"source"`
	Title          string    `json:"title"                db:"title"`
	CompanyName    string    `json:"company_name"         db:"company_name"`
	Description    string    `json:"description"          db:"description"`
	Domain         Domain    `json:"domain"               db:"domain"`
	Subdomain      string    `json:"subdomain"            db:"subdomain"`
	ExperienceMin  int       `json:"years_experience_min" db:"years_experience_min"`
	ExperienceMax  int       `json:"years_experience_max" db:"years_experience_max"`
	SkillsRequired []string  `json:"skills_required"      db:"skills_required"`
	Location       string    `json:"location"             db:"location"`
	Country        *string   `json:"country,omitempty"    db:"country"`
	Remote         string    `json:"remote"               db:"remote"`
	SalaryMin      *int      `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax      *int      `json:"salary_max,omitempty" db:"salary_max"`
	Meaning        *string   `json:"-"                    db:"job_meaning"`
	Embedding      []float32 `json:"-"                    db:"-"`
	CreatedAt      time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"           db:"updated_at"`
}

// Validate checks the range invariants of a catalog entry.
func (e *CatalogEntry) Validate() error {
	if e.ID == "" {
		return errors.New("id is required")
	}
	if e.ExperienceMin < 0 || e.ExperienceMax < 0 {
		return errors.New("experience range must be non-negative")
	}
	if e.ExperienceMin > e.ExperienceMax {
		return errors.New("years_experience_min must be <= years_experience_max")
	}
	if e.SalaryMin != nil && e.SalaryMax != nil && *e.SalaryMin > *e.SalaryMax {
		return errors.New("salary_min must be <= salary_max")
	}
	return nil
}

// HasEmbedding reports whether the entry is eligible for semantic retrieval.
func (e *CatalogEntry) HasEmbedding() bool {
	return len(e.Embedding) > 0
}

// Summary projects the entry into the shape embedded in match results.
func (e *CatalogEntry) Summary() CatalogSummary {
	skills := e.SkillsRequired
	if skills == nil {
		skills = []string{}
	}
	return CatalogSummary{
		ID:             e.ID,
		Title:          e.Title,
		CompanyName:    e.CompanyName,
		Domain:         e.Domain,
		Subdomain:      e.Subdomain,
		Location:       e.Location,
		Remote:         e.Remote,
		SalaryMin:      e.SalaryMin,
		SalaryMax:      e.SalaryMax,
		SkillsRequired: skills,
		ExperienceMin:  e.ExperienceMin,
		ExperienceMax:  e.ExperienceMax,
	}
}

// CatalogSummary is the subset of a catalog entry carried inside a MatchResult.
type CatalogSummary struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	CompanyName    string   `json:"company_name"`
	Domain         Domain   `json:"domain"`
	Subdomain      string   `json:"subdomain"`
	Location       string   `json:"location"`
	Remote         string   `json:"remote"`
	SalaryMin      *int     `json:"salary_min,omitempty"`
	SalaryMax      *int     `json:"salary_max,omitempty"`
	SkillsRequired []string `json:"skills_required"`
	ExperienceMin  int      `json:"years_experience_min"`
	ExperienceMax  int      `json:"years_experience_max"`
}

// CatalogFilter holds the structured predicates applied before semantic retrieval.
type CatalogFilter struct {
	Domain          Domain
	ExperienceYears int
	// Country is nil when the candidate's country is unknown, which disables the country predicate.
	Country *string
	// Window is the symmetric experience tolerance in years.
	Window int
}

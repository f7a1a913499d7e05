package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// CatalogEntryBuilder assembles catalog rows for tests.
type CatalogEntryBuilder struct {
	entry model.CatalogEntry
}

// NewCatalogEntry starts an Engineering entry for 0 to 99 years with a random id.
func NewCatalogEntry() *CatalogEntryBuilder {
	now := TestTime()
	return &CatalogEntryBuilder{entry: model.CatalogEntry{
		ID:             uuid.NewString(),
		Source:         "test",
		Title:          "Software Engineer",
		Domain:         model.DomainEngineering,
		ExperienceMin:  model.DefaultExperienceMin,
		ExperienceMax:  model.DefaultExperienceMax,
		SkillsRequired: []string{},
		Remote:         "onsite",
		CreatedAt:      now,
		UpdatedAt:      now,
	}}
}

func (b *CatalogEntryBuilder) WithID(id string) *CatalogEntryBuilder {
	b.entry.ID = id
	return b
}

func (b *CatalogEntryBuilder) WithTitle(title string) *CatalogEntryBuilder {
	b.entry.Title = title
	return b
}

func (b *CatalogEntryBuilder) WithDomain(d model.Domain) *CatalogEntryBuilder {
	b.entry.Domain = d
	return b
}

func (b *CatalogEntryBuilder) WithExperience(lo, hi int) *CatalogEntryBuilder {
	b.entry.ExperienceMin, b.entry.ExperienceMax = lo, hi
	return b
}

func (b *CatalogEntryBuilder) WithSkills(skills ...string) *CatalogEntryBuilder {
	b.entry.SkillsRequired = skills
	return b
}

func (b *CatalogEntryBuilder) WithCountry(country string) *CatalogEntryBuilder {
	b.entry.Country = &country
	return b
}

func (b *CatalogEntryBuilder) WithCreatedAt(at time.Time) *CatalogEntryBuilder {
	b.entry.CreatedAt, b.entry.UpdatedAt = at, at
	return b
}

func (b *CatalogEntryBuilder) WithEmbedding(v []float32) *CatalogEntryBuilder {
	b.entry.Embedding = v
	return b
}

// Build returns a copy of the assembled entry.
func (b *CatalogEntryBuilder) Build() *model.CatalogEntry {
	e := b.entry
	return &e
}

// InsertCatalogEntry writes e to the jobs table, including its embedding when set.
func InsertCatalogEntry(t TestingTB, db *sql.DB, e *model.CatalogEntry) {
	t.Helper()

	var emb any
	if len(e.Embedding) > 0 {
		emb = pgvector.NewVector(e.Embedding)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := db.ExecContext(ctx, `
		INSERT INTO jobs (
			id, source, title, company_name, description, domain, subdomain,
			years_experience_min, years_experience_max, skills_required,
			location, country, remote, salary_min, salary_max,
			job_meaning, job_embedding, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		e.ID, e.Source, e.Title, e.CompanyName, e.Description, string(e.Domain), e.Subdomain,
		e.ExperienceMin, e.ExperienceMax, e.SkillsRequired,
		e.Location, e.Country, e.Remote, e.SalaryMin, e.SalaryMax,
		e.Meaning, emb, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("insert catalog entry %s: %v", e.ID, fmt.Errorf("exec: %w", err))
	}
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

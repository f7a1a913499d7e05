package resumeparser

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/matching"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

type fakeGenerator struct {
	reply    string
	err      error
	model    string
	prompt   string
	cfg      *genai.GenerateContentConfig
	deadline bool
}

func (f *fakeGenerator) GenerateContent(
	ctx context.Context,
	modelName string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.model = modelName
	f.cfg = cfg
	_, f.deadline = ctx.Deadline()
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: f.reply},
			}},
		}},
	}, nil
}

func newTestParser(t *testing.T, gen *fakeGenerator, maxChars int) *GeminiParser {
	t.Helper()
	p, err := NewGeminiParser(context.Background(), GeminiParserOptions{
		Config: config.ParserConfig{
			Model:        "gemini-2.5-flash",
			Timeout:      time.Minute,
			MaxTextChars: maxChars,
		},
		Generator: gen,
	})
	require.NoError(t, err)
	return p
}

func TestGeminiParser_Parse(t *testing.T) {
	gen := &fakeGenerator{reply: `{
		"domain": "engineering",
		"yoe": 4,
		"country": " Canada ",
		"skills": ["Python", "python", " AWS ", ""],
		"summary": "Backend engineer."
	}`}
	p := newTestParser(t, gen, 20000)

	got, err := p.Parse(context.Background(), []byte("Jane Doe, Python developer"), "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, model.ParsedResume{
		Domain:          model.DomainEngineering,
		ExperienceYears: 4,
		Country:         "CAN",
		Skills:          []string{"Python", "AWS"},
		Summary:         "Backend engineer.",
	}, got)

	assert.Equal(t, "gemini-2.5-flash", gen.model)
	assert.Equal(t, "Jane Doe, Python developer", gen.prompt)
	assert.True(t, gen.deadline)
	require.NotNil(t, gen.cfg)
	assert.Equal(t, "application/json", gen.cfg.ResponseMIMEType)
	assert.Contains(t, gen.cfg.ResponseSchema.Properties["domain"].Enum, "Sales & Marketing")
	assert.Contains(t, gen.cfg.ResponseSchema.Properties["country"].Description, "alpha-3")
}

func TestDecodeProfile_CountryPassesCatalogFilter(t *testing.T) {
	usa := "USA"
	gbr := "GBR"
	entry := &model.CatalogEntry{ID: "eng-1", Domain: model.DomainEngineering, ExperienceMin: 2, ExperienceMax: 5, Country: &usa}
	elsewhere := &model.CatalogEntry{ID: "eng-2", Domain: model.DomainEngineering, ExperienceMin: 2, ExperienceMax: 5, Country: &gbr}

	for _, country := range []string{"United States", "usa", "US", "USA"} {
		t.Run(country, func(t *testing.T) {
			parsed, err := decodeProfile(`{"domain":"Engineering","yoe":3,"country":"` + country + `","skills":["Go"],"summary":""}`)
			require.NoError(t, err)
			require.Equal(t, "USA", parsed.Country)

			f := model.CatalogFilter{
				Domain:          parsed.Domain,
				ExperienceYears: parsed.ExperienceYears,
				Country:         parsed.CountryPtr(),
				Window:          matching.DefaultWindow,
			}
			assert.True(t, matching.MatchesFilter(entry, f))
			assert.False(t, matching.MatchesFilter(elsewhere, f))
		})
	}

	t.Run("unrecognized country skips the predicate", func(t *testing.T) {
		parsed, err := decodeProfile(`{"domain":"Engineering","yoe":3,"country":"Remote","skills":[],"summary":""}`)
		require.NoError(t, err)
		assert.Empty(t, parsed.Country)
		assert.Nil(t, parsed.CountryPtr())
		f := model.CatalogFilter{Domain: parsed.Domain, ExperienceYears: parsed.ExperienceYears, Window: matching.DefaultWindow}
		assert.True(t, matching.MatchesFilter(elsewhere, f))
	})
}

func TestGeminiParser_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		p, err := NewGeminiParser(ctx, GeminiParserOptions{})
		require.NoError(t, err)
		_, err = p.Parse(ctx, []byte("text"), "a.txt")
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("extraction failure", func(t *testing.T) {
		p := newTestParser(t, &fakeGenerator{reply: "{}"}, 0)
		_, err := p.Parse(ctx, []byte(" "), "a.txt")
		require.ErrorIs(t, err, ErrNoText)
	})

	t.Run("provider failure", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		p := newTestParser(t, &fakeGenerator{err: boom}, 0)
		_, err := p.Parse(ctx, []byte("text"), "a.txt")
		require.ErrorIs(t, err, boom)
	})

	t.Run("empty response", func(t *testing.T) {
		p := newTestParser(t, &fakeGenerator{reply: "  "}, 0)
		_, err := p.Parse(ctx, []byte("text"), "a.txt")
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		p := newTestParser(t, &fakeGenerator{reply: "domain: Engineering"}, 0)
		_, err := p.Parse(ctx, []byte("text"), "a.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode parser response")
	})
}

func TestGeminiParser_TruncatesLongText(t *testing.T) {
	gen := &fakeGenerator{reply: `{"domain":"Legal","yoe":1,"country":"","skills":[],"summary":""}`}
	p := newTestParser(t, gen, 1000)

	long := strings.Repeat("é", 600) // 1200 bytes
	_, err := p.Parse(context.Background(), []byte(long), "a.txt")
	require.NoError(t, err)
	assert.Len(t, gen.prompt, 1000)
	assert.True(t, strings.HasSuffix(gen.prompt, "é"))
}

func TestNormalizeProfile(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.ParsedResume
	}{
		{
			name: "unknown domain and negative years",
			in:   `{"domain":"Astronomy","yoe":-3,"skills":null}`,
			want: model.ParsedResume{Domain: model.DomainEngineering, Skills: []string{}},
		},
		{
			name: "string years and comma separated skills",
			in:   `{"domain":"Sales & Marketing","yoe":"7.9","skills":"SEO, CRM ,"}`,
			want: model.ParsedResume{Domain: model.DomainSalesMarketing, ExperienceYears: 7, Skills: []string{"SEO", "CRM"}},
		},
		{
			name: "absurd years are capped",
			in:   `{"domain":"Finance","yoe":400,"skills":["Excel"]}`,
			want: model.ParsedResume{Domain: model.DomainFinance, ExperienceYears: 80, Skills: []string{"Excel"}},
		},
		{
			name: "non-numeric years",
			in:   `{"domain":"Design","yoe":"a decade","skills":[]}`,
			want: model.ParsedResume{Domain: model.DomainDesign, Skills: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw rawProfile
			require.NoError(t, json.Unmarshal([]byte(tt.in), &raw))
			assert.Equal(t, tt.want, normalizeProfile(raw))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(` {"a":1} `))
}

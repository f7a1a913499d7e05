package resumeparser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"

	"github.com/Sakshamyadav19/HireMe-Backend/config"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// ErrNotConfigured is returned by Parse when no Gemini API key is set.
var ErrNotConfigured = errors.New("resume parser API key is not configured")

const systemInstruction = `You extract a candidate profile from resume text.
Return JSON with exactly these fields:
- domain: one of the allowed domains that best fits the candidate's career
- yoe: total years of professional experience as a whole number
- country: the ISO 3166-1 alpha-3 code (for example USA, GBR, IND) of the country
  the candidate is based in, or an empty string if unknown
- skills: technical and professional skills, each a short noun phrase
- summary: two or three sentences describing the candidate
Do not invent information that is not present in the resume.`

// ContentGenerator is the subset of the genai Models service the parser calls.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiParserOptions configures a GeminiParser.
type GeminiParserOptions struct {
	Config    config.ParserConfig
	Extractor *TextExtractor // Optional: defaults to NewTextExtractor()
	Logger    *slog.Logger

	// Generator replaces the genai client. Used by tests.
	Generator ContentGenerator
}

// GeminiParser implements core.ResumeParser.
type GeminiParser struct {
	generator ContentGenerator
	extractor *TextExtractor
	model     string
	timeout   time.Duration
	maxChars  int
	logger    *slog.Logger
}

var _ core.ResumeParser = (*GeminiParser)(nil)

// NewGeminiParser creates a parser backed by the Gemini API. Without an API key the
// parser is still returned and every Parse fails with ErrNotConfigured.
func NewGeminiParser(ctx context.Context, opts GeminiParserOptions) (*GeminiParser, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = NewTextExtractor()
	}
	cfg := opts.Config

	generator := opts.Generator
	if generator == nil && cfg.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		generator = client.Models
	}

	return &GeminiParser{
		generator: generator,
		extractor: extractor,
		model:     cfg.Model,
		timeout:   cfg.Timeout,
		maxChars:  cfg.MaxTextChars,
		logger:    logger.With("component", "resume_parser", "model", cfg.Model),
	}, nil
}

// Parse extracts text from content and asks Gemini for the structured profile.
func (p *GeminiParser) Parse(ctx context.Context, content []byte, filename string) (model.ParsedResume, error) {
	if p.generator == nil {
		return model.ParsedResume{}, ErrNotConfigured
	}

	text, err := p.extractor.Extract(filename, content)
	if err != nil {
		return model.ParsedResume{}, fmt.Errorf("extract resume text: %w", err)
	}
	if p.maxChars > 0 && len(text) > p.maxChars {
		text = truncateUTF8(text, p.maxChars)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := p.generator.GenerateContent(ctx, p.model, genai.Text(text), generateConfig())
	if err != nil {
		return model.ParsedResume{}, fmt.Errorf("generate content: %w", err)
	}

	out := responseText(resp)
	if out == "" {
		return model.ParsedResume{}, errors.New("gemini api returned empty response")
	}
	parsed, err := decodeProfile(out)
	if err != nil {
		return model.ParsedResume{}, err
	}

	p.logger.DebugContext(ctx, "resume parsed",
		"filename", filename,
		"text_chars", len(text),
		"domain", parsed.Domain,
		"skills", len(parsed.Skills),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return parsed, nil
}

func generateConfig() *genai.GenerateContentConfig {
	domains := make([]string, 0, len(model.Domains()))
	for _, d := range model.Domains() {
		domains = append(domains, string(d))
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"domain":  {Type: genai.TypeString, Enum: domains},
				"yoe":     {Type: genai.TypeInteger},
				"country": {
					Type:        genai.TypeString,
					Description: "ISO 3166-1 alpha-3 country code, or empty when unknown",
				},
				"skills":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"summary": {Type: genai.TypeString},
			},
			Required: []string{"domain", "yoe", "country", "skills", "summary"},
		},
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(b.String())
}

// rawProfile tolerates the loose types models sometimes emit.
type rawProfile struct {
	Domain  string          `json:"domain"`
	YOE     json.RawMessage `json:"yoe"`
	Country string          `json:"country"`
	Skills  json.RawMessage `json:"skills"`
	Summary string          `json:"summary"`
}

func decodeProfile(out string) (model.ParsedResume, error) {
	out = stripCodeFence(out)
	var raw rawProfile
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return model.ParsedResume{}, fmt.Errorf("decode parser response: %w", err)
	}
	return normalizeProfile(raw), nil
}

// normalizeProfile maps unknown domains to the default, clamps experience to a
// non-negative integer, resolves the country to an alpha-3 code and dedupes
// skills case-insensitively.
func normalizeProfile(raw rawProfile) model.ParsedResume {
	domain, err := model.ParseDomain(raw.Domain)
	if err != nil {
		domain = model.DefaultDomain
	}
	return model.ParsedResume{
		Domain:          domain,
		ExperienceYears: parseYears(raw.YOE),
		Country:         model.NormalizeCountry(raw.Country),
		Skills:          parseSkills(raw.Skills),
		Summary:         strings.TrimSpace(raw.Summary),
	}
}

func parseYears(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0
		}
	}
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f > 80 {
		return 80
	}
	return int(math.Floor(f))
}

func parseSkills(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var joined string
		if json.Unmarshal(raw, &joined) != nil {
			return []string{}
		}
		list = strings.Split(joined, ",")
	}

	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

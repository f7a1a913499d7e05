package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/matching"
)

// MatchingConfig parameterizes the filter, retrieval and scoring stages.
type MatchingConfig struct {
	// ExperienceWindow is the symmetric tolerance, in years, used by the filter and the fit score.
	ExperienceWindow int `env:"MATCH_EXPERIENCE_WINDOW" envDefault:"2"`

	// TopK bounds the number of entries returned by semantic retrieval.
	TopK int `env:"MATCH_ANN_TOP_K" envDefault:"200"`

	SkillsWeight     float64 `env:"MATCH_WEIGHT_SKILLS"     envDefault:"0.45"`
	SemanticWeight   float64 `env:"MATCH_WEIGHT_SEMANTIC"   envDefault:"0.40"`
	ExperienceWeight float64 `env:"MATCH_WEIGHT_EXPERIENCE" envDefault:"0.15"`
}

// Pipeline converts the env values into the matching package configuration.
func (m MatchingConfig) Pipeline() matching.Config {
	return matching.Config{
		Window: m.ExperienceWindow,
		TopK:   m.TopK,
		Weights: matching.Weights{
			Skills:     m.SkillsWeight,
			Semantic:   m.SemanticWeight,
			Experience: m.ExperienceWeight,
		},
	}
}

// Validate rejects a window, top-k or weight set the scorer cannot use.
func (m MatchingConfig) Validate() error {
	if err := m.Pipeline().Validate(); err != nil {
		return fmt.Errorf("matching config: %w", err)
	}
	return nil
}

// EmbeddingConfig selects the OpenAI-compatible embeddings endpoint.
type EmbeddingConfig struct {
	// APIKey authenticates against the provider. EMBEDDING_API_KEY wins over OPENROUTER_API_KEY.
	APIKey           string `env:"EMBEDDING_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`

	BaseURL   string        `env:"EMBEDDING_BASE_URL"  envDefault:"https://openrouter.ai/api/v1"`
	Model     string        `env:"EMBEDDING_MODEL"     envDefault:"openai/text-embedding-3-small"`
	Dimension int           `env:"EMBEDDING_DIMENSION" envDefault:"1536"`
	BatchSize int           `env:"EMBEDDING_BATCH_SIZE" envDefault:"64"`
	Timeout   time.Duration `env:"EMBEDDING_TIMEOUT"   envDefault:"30s"`
}

// Sanitize resolves the effective API key and clamps numeric settings.
func (e *EmbeddingConfig) Sanitize() {
	e.APIKey = strings.TrimSpace(e.APIKey)
	if e.APIKey == "" {
		e.APIKey = strings.TrimSpace(e.OpenRouterAPIKey)
	}
	e.BaseURL = strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	if e.Dimension <= 0 {
		e.Dimension = 1536
	}
	if e.BatchSize < 1 {
		e.BatchSize = 1
	}
	if e.Timeout <= 0 {
		e.Timeout = 30 * time.Second
	}
}

// ParserConfig configures the Gemini resume parser.
type ParserConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"PARSER_MODEL"   envDefault:"gemini-2.5-flash"`
	Timeout time.Duration `env:"PARSER_TIMEOUT" envDefault:"60s"`
	// MaxTextChars caps the extracted resume text sent to the model.
	MaxTextChars int `env:"PARSER_MAX_TEXT_CHARS" envDefault:"20000"`
}

// Sanitize applies guardrails to parser configuration values.
func (p *ParserConfig) Sanitize() {
	p.APIKey = strings.TrimSpace(p.APIKey)
	if p.Model = strings.TrimSpace(p.Model); p.Model == "" {
		p.Model = "gemini-2.5-flash"
	}
	if p.Timeout <= 0 {
		p.Timeout = 60 * time.Second
	}
	if p.MaxTextChars < 1000 {
		p.MaxTextChars = 1000
	}
}

// StorageConfig configures the optional S3-compatible resume archive.
type StorageConfig struct {
	Enabled   bool   `env:"ENABLED"    envDefault:"false"`
	Endpoint  string `env:"ENDPOINT"   envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"     envDefault:"resumes"`
	UseSSL    bool   `env:"USE_SSL"    envDefault:"false"`
	Region    string `env:"REGION"     envDefault:""`
}

// Sanitize disables the archive when it cannot possibly connect.
func (s *StorageConfig) Sanitize() {
	s.Endpoint = strings.TrimSpace(s.Endpoint)
	s.Bucket = strings.TrimSpace(s.Bucket)
	if s.Endpoint == "" || s.Bucket == "" {
		s.Enabled = false
	}
}

// QueueConfig controls the in-memory match queue.
type QueueConfig struct {
	// Capacity is the number of jobs that may wait behind the running one.
	Capacity int `env:"MATCH_QUEUE_CAPACITY" envDefault:"100"`

	// JobTimeout bounds one job from dequeue to its terminal status.
	JobTimeout time.Duration `env:"MATCH_JOB_TIMEOUT" envDefault:"3m"`
}

// Sanitize applies guardrails to queue configuration values.
func (q *QueueConfig) Sanitize() {
	if q.Capacity < 1 {
		q.Capacity = 1
	}
	if q.JobTimeout < 10*time.Second {
		q.JobTimeout = 10 * time.Second
	}
}

package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
)

// PipelineOptions configure a Pipeline.
type PipelineOptions struct {
	Filter  CandidateFilter
	Index   NearestNeighborIndex
	Catalog CatalogLoader
	Config  Config
	Logger  *slog.Logger
}

// Pipeline composes filter, retrieval and scoring into a single ranking call.
// It performs no I/O beyond its collaborators and is safe for concurrent use.
type Pipeline struct {
	filter  CandidateFilter
	index   NearestNeighborIndex
	catalog CatalogLoader
	scorer  *Scorer
	cfg     Config
	logger  *slog.Logger
}

// NewPipeline validates opts and constructs a Pipeline.
func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	if opts.Filter == nil {
		return nil, errors.New("candidate filter is required")
	}
	if opts.Index == nil {
		return nil, errors.New("nearest-neighbor index is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("catalog loader is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("matching config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		filter:  opts.Filter,
		index:   opts.Index,
		catalog: opts.Catalog,
		scorer:  NewScorer(opts.Config),
		cfg:     opts.Config,
		logger:  logger.With("component", "matching_pipeline"),
	}, nil
}

// Window returns the configured experience tolerance.
func (p *Pipeline) Window() int { return p.cfg.Window }

// FilterFor builds the structured filter for a resume.
func (p *Pipeline) FilterFor(domain model.Domain, years int, country *string) model.CatalogFilter {
	return model.CatalogFilter{Domain: domain, ExperienceYears: years, Country: country, Window: p.cfg.Window}
}

// Run filters the catalog for rc and ranks the survivors.
func (p *Pipeline) Run(ctx context.Context, rc model.ResumeContext) (model.MatchResponse, error) {
	ids, err := p.filter.Filter(ctx, p.FilterFor(rc.Domain, rc.ExperienceYears, rc.Country))
	if err != nil {
		return model.MatchResponse{}, fmt.Errorf("filter catalog: %w", err)
	}
	return p.RunFiltered(ctx, rc, ids)
}

// RunFiltered ranks the entries in ids, which the caller has already filtered for rc.
func (p *Pipeline) RunFiltered(ctx context.Context, rc model.ResumeContext, ids []string) (model.MatchResponse, error) {
	empty := model.EmptyMatchResponse(rc.ID)
	if len(rc.Embedding) == 0 {
		p.logger.WarnContext(ctx, "resume has no embedding; semantic ranking skipped", "candidates", len(ids))
		return empty, nil
	}
	if len(ids) == 0 {
		p.logger.DebugContext(ctx, "no catalog entries passed filter", "domain", rc.Domain, "yoe", rc.ExperienceYears)
		return empty, nil
	}

	neighbors, err := p.index.Search(ctx, rc.Embedding, ids, p.cfg.TopK)
	if err != nil {
		return model.MatchResponse{}, fmt.Errorf("semantic search: %w", err)
	}
	if len(neighbors) == 0 {
		return empty, nil
	}

	hitIDs := make([]string, len(neighbors))
	for i, n := range neighbors {
		hitIDs[i] = n.ID
	}
	entries, err := p.catalog.GetByIDs(ctx, hitIDs)
	if err != nil {
		return model.MatchResponse{}, fmt.Errorf("load catalog entries: %w", err)
	}
	byID := make(map[string]*model.CatalogEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	matches := make([]model.MatchResult, 0, len(neighbors))
	for _, n := range neighbors {
		e, ok := byID[n.ID]
		if !ok {
			continue
		}
		matches = append(matches, p.scorer.Score(rc.Skills, rc.ExperienceYears, e, n.Similarity))
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	p.logger.DebugContext(ctx, "ranked catalog entries",
		"filtered", len(ids),
		"retrieved", len(neighbors),
		"scored", len(matches),
	)
	return model.MatchResponse{CandidateID: rc.ID, TotalMatches: len(matches), Matches: matches}, nil
}

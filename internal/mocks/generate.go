// Package mocks provides mock implementations of the internal/core ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the repository
// and provider interfaces. To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockRepo := mocks.NewMockMatchJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any(), "user-1").Return(job, nil)
package mocks

// CatalogRepository: Filter, GetByID, GetByIDs, ListMissingEmbeddings, ListPage, UpdateEmbedding
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=catalog_repository_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core CatalogRepository

// MatchJobRepository: Create, GetByID, GetForUser, UpdateStatus
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=match_job_repository_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core MatchJobRepository

// ReaperRepository: DeleteOldMatchJobs
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=reaper_repository_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core ReaperRepository

// MatchResultCacheRepository: Save, Get, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=match_result_cache_repository_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core MatchResultCacheRepository

// SavedJobRepository: Add, Remove, List
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=saved_job_repository_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core SavedJobRepository

// ResumeParser: Parse
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=resume_parser_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core ResumeParser

// Embedder: Embed, EmbedBatch
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=embedder_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core Embedder

// ResumeStore: Put
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=resume_store_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core ResumeStore

// CacheRepository: Set, Get, Delete, Health
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/Sakshamyadav19/HireMe-Backend/internal/core CacheRepository

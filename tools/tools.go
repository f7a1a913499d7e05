//go:build tools

// Package tools lists the development tools used by this repository. They are run
// with `go run`/`go install` at pinned versions and are not imported by the module.
package tools

// mockgen regenerates internal/mocks from the internal/core ports:
//
//	go generate ./internal/mocks
//
// The directives in internal/mocks/generate.go pin go.uber.org/mock/mockgen@v0.6.0,
// matching the go.uber.org/mock version in go.mod.
//
// Air reloads cmd/hireme on source changes during local development:
//
//	go install github.com/air-verse/air@v1.63.0
//	air --build.cmd "go build -o ./tmp/hireme ./cmd/hireme" --build.bin ./tmp/hireme

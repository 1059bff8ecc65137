package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// SearchOps handles search and filtering operations. These walk the host
// filesystem directly for speed, so they only see disk-backed trees.
type SearchOps struct {
	*FilesystemOps
}

// GetTools returns search operation tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.find",
			Name:        "Find Files",
			Description: "Find files by pattern (fast recursive)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "File pattern (e.g., '*.go')", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.glob",
			Name:        "Advanced Glob",
			Description: "Advanced glob with ** patterns (gitignore-style)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob pattern (e.g., '**/*.go')", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.filter_by_extension",
			Name:        "Filter by Extension",
			Description: "Filter files by extensions (fast parallel)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "extensions", Type: "array", Description: "Extensions (e.g., ['.go', '.js'])", Required: true},
			},
			Returns: "array",
		},
	}
}

// Find finds files by name pattern under path
func (s *SearchOps) Find(ctx context.Context, path, pattern string) (*types.Result, error) {
	if info, err := os.Stat(path); err != nil {
		return Failure(types.ErrNotFound, fmt.Sprintf("find: not found: %s", path), err)
	} else if !info.IsDir() {
		return Failure(types.ErrNotADirectory, fmt.Sprintf("find: not a directory: %s", path), nil)
	}

	// fastwalk runs the callback from multiple goroutines.
	var mu sync.Mutex
	matches := []string{}
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, path, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		matched, _ := filepath.Match(pattern, filepath.Base(p))
		if matched {
			relPath, _ := filepath.Rel(path, p)
			mu.Lock()
			matches = append(matches, relPath)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("find in %s", path), err)
	}

	return Success(map[string]interface{}{"path": path, "matches": matches, "count": len(matches)})
}

// Glob performs advanced glob matching under path
func (s *SearchOps) Glob(ctx context.Context, path, pattern string) (*types.Result, error) {
	if info, err := os.Stat(path); err != nil {
		return Failure(types.ErrNotFound, fmt.Sprintf("glob: not found: %s", path), err)
	} else if !info.IsDir() {
		return Failure(types.ErrNotADirectory, fmt.Sprintf("glob: not a directory: %s", path), nil)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(path, pattern))
	if err != nil {
		return Failure(types.ErrInvalidInput, fmt.Sprintf("glob: bad pattern: %s", pattern), err)
	}

	relMatches := []string{}
	for _, match := range matches {
		if relPath, err := filepath.Rel(path, match); err == nil {
			relMatches = append(relMatches, relPath)
		}
	}

	return Success(map[string]interface{}{"path": path, "matches": relMatches, "count": len(relMatches)})
}

// FilterByExtension filters files under path by extension set
func (s *SearchOps) FilterByExtension(ctx context.Context, path string, extensions []string) (*types.Result, error) {
	if info, err := os.Stat(path); err != nil {
		return Failure(types.ErrNotFound, fmt.Sprintf("filter: not found: %s", path), err)
	} else if !info.IsDir() {
		return Failure(types.ErrNotADirectory, fmt.Sprintf("filter: not a directory: %s", path), nil)
	}

	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted[ext] = true
	}

	var mu sync.Mutex
	matches := []string{}
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, path, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		if wanted[filepath.Ext(p)] {
			relPath, _ := filepath.Rel(path, p)
			mu.Lock()
			matches = append(matches, relPath)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("filter in %s", path), err)
	}

	return Success(map[string]interface{}{"path": path, "matches": matches, "count": len(matches)})
}

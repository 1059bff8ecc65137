package filesystem

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*FilesystemOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.dir.list",
			Name:        "List Directory",
			Description: "List contents of a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.dir.create",
			Name:        "Create Directory",
			Description: "Create a new directory (recursive)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.dir.delete",
			Name:        "Delete Directory",
			Description: "Delete directory recursively",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.dir.exists",
			Name:        "Check Directory Exists",
			Description: "Check if directory exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// List lists directory contents
func (d *DirectoryOps) List(ctx context.Context, path string) (*types.Result, error) {
	info, err := d.Store.Stat(path)
	if err != nil {
		return Failure(types.ErrNotFound, fmt.Sprintf("list: not found: %s", path), err)
	}
	if !info.IsDir {
		return Failure(types.ErrNotADirectory, fmt.Sprintf("list: not a directory: %s", path), nil)
	}

	children, err := d.Store.List(path)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("list %s", path), err)
	}

	entries := make([]map[string]interface{}, 0, len(children))
	files := make([]string, 0, len(children))
	for _, child := range children {
		name := filepath.Base(child)
		files = append(files, name)
		childInfo, err := d.Store.Stat(child)
		if err != nil {
			continue
		}
		entries = append(entries, map[string]interface{}{
			"name":   name,
			"is_dir": childInfo.IsDir,
			"size":   childInfo.Size,
		})
	}

	return Success(map[string]interface{}{
		"path":    path,
		"files":   files,
		"entries": entries,
		"count":   len(files),
	})
}

// Create creates a directory (and missing parents)
func (d *DirectoryOps) Create(ctx context.Context, path string) (*types.Result, error) {
	if err := d.Store.MkdirAll(path); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("mkdir %s", path), err)
	}
	return Success(map[string]interface{}{"created": true, "path": path})
}

// Delete deletes a directory recursively
func (d *DirectoryOps) Delete(ctx context.Context, path string) (*types.Result, error) {
	if !d.Store.Exists(path) {
		return Failure(types.ErrNotFound, fmt.Sprintf("delete: not found: %s", path), nil)
	}
	if err := d.Store.RemoveAll(path); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("delete %s", path), err)
	}
	return Success(map[string]interface{}{"deleted": true, "path": path})
}

// Exists checks if directory exists
func (d *DirectoryOps) Exists(ctx context.Context, path string) (*types.Result, error) {
	info, err := d.Store.Stat(path)
	exists := err == nil && info.IsDir
	return Success(map[string]interface{}{"exists": exists, "path": path})
}

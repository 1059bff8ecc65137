package filesystem

import (
	"context"
	"fmt"
	"io"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// BasicOps handles basic file operations
type BasicOps struct {
	*FilesystemOps
}

// GetTools returns basic file operation tool definitions
func (b *BasicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.read",
			Name:        "Read File",
			Description: "Read file contents as text",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write",
			Name:        "Write File",
			Description: "Write data to file (overwrites existing)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "string", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.append",
			Name:        "Append to File",
			Description: "Append data to end of file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "string", Description: "Data to append", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.exists",
			Name:        "Check Existence",
			Description: "Check if a file or directory exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.delete",
			Name:        "Delete File",
			Description: "Delete a file or empty directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.copy",
			Name:        "Copy File",
			Description: "Copy a file to a new path",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.stat",
			Name:        "File Info",
			Description: "Get file or directory metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "object",
		},
	}
}

// Read reads file contents as text
func (b *BasicOps) Read(ctx context.Context, path string) (*types.Result, error) {
	info, err := b.Store.Stat(path)
	if err != nil {
		return Failure(types.ErrNotFound, fmt.Sprintf("read: not found: %s", path), err)
	}
	if info.IsDir {
		return Failure(types.ErrIsADirectory, fmt.Sprintf("read: is a directory: %s", path), nil)
	}

	src, err := b.Store.OpenRead(path)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("read: open %s", path), err)
	}
	data, err := io.ReadAll(src)
	if cerr := src.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("read %s", path), err)
	}

	return Success(map[string]interface{}{
		"path":    path,
		"content": string(data),
		"size":    len(data),
	})
}

// Write writes data to file (overwrites)
func (b *BasicOps) Write(ctx context.Context, path, data string) (*types.Result, error) {
	if err := b.writeBytes(path, []byte(data)); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("write %s", path), err)
	}
	return Success(map[string]interface{}{
		"written": true,
		"path":    path,
		"size":    len(data),
	})
}

// Append appends data to file, creating it if absent
func (b *BasicOps) Append(ctx context.Context, path, data string) (*types.Result, error) {
	existing := []byte{}
	if src, err := b.Store.OpenRead(path); err == nil {
		existing, err = io.ReadAll(src)
		src.Close()
		if err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("append: read %s", path), err)
		}
	}

	combined := append(existing, []byte(data)...)
	if err := b.writeBytes(path, combined); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("append %s", path), err)
	}
	return Success(map[string]interface{}{
		"appended": true,
		"path":     path,
		"size":     len(combined),
	})
}

// Exists checks if file/directory exists
func (b *BasicOps) Exists(ctx context.Context, path string) (*types.Result, error) {
	return Success(map[string]interface{}{
		"exists": b.Store.Exists(path),
		"path":   path,
	})
}

// Delete deletes a file or empty directory
func (b *BasicOps) Delete(ctx context.Context, path string) (*types.Result, error) {
	if !b.Store.Exists(path) {
		return Failure(types.ErrNotFound, fmt.Sprintf("delete: not found: %s", path), nil)
	}
	if err := b.Store.Remove(path); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("delete %s", path), err)
	}
	return Success(map[string]interface{}{"deleted": true, "path": path})
}

// Copy copies a single file using the bounded transfer buffer
func (b *BasicOps) Copy(ctx context.Context, source, destination string) (*types.Result, error) {
	info, err := b.Store.Stat(source)
	if err != nil {
		return Failure(types.ErrNotFound, fmt.Sprintf("copy: source not found: %s", source), err)
	}
	if info.IsDir {
		return Failure(types.ErrIsADirectory, fmt.Sprintf("copy: source is a directory: %s", source), nil)
	}

	src, err := b.Store.OpenRead(source)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("copy: open %s", source), err)
	}
	defer src.Close()

	dst, err := b.Store.OpenWrite(destination)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("copy: create %s", destination), err)
	}
	size, err := io.CopyBuffer(dst, src, make([]byte, copyBufferSize))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("copy %s to %s", source, destination), err)
	}

	return Success(map[string]interface{}{
		"copied":      true,
		"source":      source,
		"destination": destination,
		"size":        size,
	})
}

// Stat returns file or directory metadata
func (b *BasicOps) Stat(ctx context.Context, path string) (*types.Result, error) {
	info, err := b.Store.Stat(path)
	if err != nil {
		return Failure(types.ErrNotFound, fmt.Sprintf("stat: not found: %s", path), err)
	}
	return Success(map[string]interface{}{
		"name":     info.Name,
		"path":     path,
		"size":     info.Size,
		"is_dir":   info.IsDir,
		"modified": info.Modified.Unix(),
	})
}

func (b *BasicOps) writeBytes(path string, data []byte) error {
	dst, err := b.Store.OpenWrite(path)
	if err != nil {
		return err
	}
	_, err = dst.Write(data)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return err
}

package filesystem

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// MetadataOps handles file type detection
type MetadataOps struct {
	*FilesystemOps
}

// GetTools returns metadata operation tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.mime_type",
			Name:        "MIME Type",
			Description: "Detect MIME type from content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.is_text",
			Name:        "Is Text File",
			Description: "Check if file is text based on content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// MIMEType detects MIME type from file content
func (m *MetadataOps) MIMEType(ctx context.Context, path string) (*types.Result, error) {
	mtype, res := m.detect(path)
	if res != nil {
		return failure(res)
	}
	return Success(map[string]interface{}{
		"path":      path,
		"mime_type": mtype.String(),
		"extension": mtype.Extension(),
	})
}

// IsText reports whether the file content is text
func (m *MetadataOps) IsText(ctx context.Context, path string) (*types.Result, error) {
	mtype, res := m.detect(path)
	if res != nil {
		return failure(res)
	}
	isText := strings.HasPrefix(mtype.String(), "text/")
	for t := mtype; t != nil && !isText; t = t.Parent() {
		isText = t.Is("text/plain")
	}
	return Success(map[string]interface{}{
		"path":      path,
		"is_text":   isText,
		"mime_type": mtype.String(),
	})
}

func (m *MetadataOps) detect(path string) (*mimetype.MIME, *types.Error) {
	info, err := m.Store.Stat(path)
	if err != nil {
		return nil, types.NewError(types.ErrNotFound, fmt.Sprintf("detect: not found: %s", path), err)
	}
	if info.IsDir {
		return nil, types.NewError(types.ErrIsADirectory, fmt.Sprintf("detect: is a directory: %s", path), nil)
	}
	src, err := m.Store.OpenRead(path)
	if err != nil {
		return nil, types.NewError(types.ErrIOFailure, fmt.Sprintf("detect: open %s", path), err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, types.NewError(types.ErrIOFailure, fmt.Sprintf("detect: read %s", path), err)
	}
	return mtype, nil
}

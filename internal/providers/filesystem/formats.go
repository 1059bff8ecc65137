package filesystem

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// FormatsOps handles structured file format operations
type FormatsOps struct {
	*FilesystemOps
}

// GetTools returns format operation tool definitions
func (f *FormatsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.yaml.read",
			Name:        "Read YAML",
			Description: "Parse YAML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.yaml.write",
			Name:        "Write YAML",
			Description: "Write data as YAML",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.toml.read",
			Name:        "Read TOML",
			Description: "Parse TOML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.toml.write",
			Name:        "Write TOML",
			Description: "Write data as TOML",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.json.merge",
			Name:        "Merge JSON Files",
			Description: "Merge multiple JSON object files into one",
			Parameters: []types.Parameter{
				{Name: "files", Type: "array", Description: "Array of file paths", Required: true},
				{Name: "output", Type: "string", Description: "Output file path", Required: true},
			},
			Returns: "object",
		},
	}
}

// YAMLRead parses a YAML file
func (f *FormatsOps) YAMLRead(ctx context.Context, path string) (*types.Result, error) {
	data, res := f.readAll(path, "yaml read")
	if res != nil {
		return failure(res)
	}

	var parsed interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Failure(types.ErrInvalidInput, fmt.Sprintf("yaml read: parse %s", path), err)
	}
	return Success(map[string]interface{}{"path": path, "data": parsed})
}

// YAMLWrite writes data as YAML
func (f *FormatsOps) YAMLWrite(ctx context.Context, path string, data interface{}) (*types.Result, error) {
	encoded, err := yaml.Marshal(data)
	if err != nil {
		return Failure(types.ErrInvalidInput, "yaml write: encode data", err)
	}
	if err := f.writeAll(path, encoded); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("yaml write %s", path), err)
	}
	return Success(map[string]interface{}{"written": true, "path": path, "size": len(encoded)})
}

// TOMLRead parses a TOML file
func (f *FormatsOps) TOMLRead(ctx context.Context, path string) (*types.Result, error) {
	data, res := f.readAll(path, "toml read")
	if res != nil {
		return failure(res)
	}

	var parsed interface{}
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return Failure(types.ErrInvalidInput, fmt.Sprintf("toml read: parse %s", path), err)
	}
	return Success(map[string]interface{}{"path": path, "data": parsed})
}

// TOMLWrite writes data as TOML
func (f *FormatsOps) TOMLWrite(ctx context.Context, path string, data interface{}) (*types.Result, error) {
	encoded, err := toml.Marshal(data)
	if err != nil {
		return Failure(types.ErrInvalidInput, "toml write: encode data", err)
	}
	if err := f.writeAll(path, encoded); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("toml write %s", path), err)
	}
	return Success(map[string]interface{}{"written": true, "path": path, "size": len(encoded)})
}

// JSONMerge merges JSON object files in order; later keys win
func (f *FormatsOps) JSONMerge(ctx context.Context, files []string, output string) (*types.Result, error) {
	if len(files) == 0 || output == "" {
		return Failure(types.ErrInvalidInput, "json merge: files and output required", nil)
	}

	merged := map[string]interface{}{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Failure(types.ErrIOFailure, "json merge cancelled", err)
		}
		data, res := f.readAll(path, "json merge")
		if res != nil {
			return failure(res)
		}
		var parsed map[string]interface{}
		if err := sonic.Unmarshal(data, &parsed); err != nil {
			return Failure(types.ErrInvalidInput, fmt.Sprintf("json merge: parse %s", path), err)
		}
		for k, v := range parsed {
			merged[k] = v
		}
	}

	encoded, err := sonic.MarshalIndent(merged, "", "  ")
	if err != nil {
		return Failure(types.ErrIOFailure, "json merge: encode result", err)
	}
	if err := f.writeAll(output, encoded); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("json merge: write %s", output), err)
	}

	return Success(map[string]interface{}{
		"written": true,
		"path":    output,
		"keys":    len(merged),
		"size":    len(encoded),
	})
}

func (f *FormatsOps) readAll(path, op string) ([]byte, *types.Error) {
	info, err := f.Store.Stat(path)
	if err != nil {
		return nil, types.NewError(types.ErrNotFound, fmt.Sprintf("%s: not found: %s", op, path), err)
	}
	if info.IsDir {
		return nil, types.NewError(types.ErrIsADirectory, fmt.Sprintf("%s: is a directory: %s", op, path), nil)
	}
	src, err := f.Store.OpenRead(path)
	if err != nil {
		return nil, types.NewError(types.ErrIOFailure, fmt.Sprintf("%s: open %s", op, path), err)
	}
	data, err := io.ReadAll(src)
	if cerr := src.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, types.NewError(types.ErrIOFailure, fmt.Sprintf("%s: read %s", op, path), err)
	}
	return data, nil
}

func (f *FormatsOps) writeAll(path string, data []byte) error {
	dst, err := f.Store.OpenWrite(path)
	if err != nil {
		return err
	}
	_, err = dst.Write(data)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return err
}

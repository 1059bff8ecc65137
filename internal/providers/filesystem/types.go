package filesystem

import (
	"github.com/parcelfs/parcelfs/internal/archive"
	"github.com/parcelfs/parcelfs/internal/logging"
	"github.com/parcelfs/parcelfs/internal/shared/paths"
	"github.com/parcelfs/parcelfs/internal/shared/types"
	"github.com/parcelfs/parcelfs/internal/storage"
)

// copyBufferSize bounds the transfer buffer used when streaming file bytes,
// so whole files are never buffered in memory.
const copyBufferSize = 8 * 1024

// FilesystemOps provides the shared collaborators for all operation groups.
type FilesystemOps struct {
	Store storage.PathStore
	Zip   archive.Container
	Dirs  paths.Dirs
	Log   *logging.Logger
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(kind types.ErrorKind, message string, cause error) (*types.Result, error) {
	return failure(types.NewError(kind, message, cause))
}

func failure(e *types.Error) (*types.Result, error) {
	return &types.Result{Success: false, Error: e}, nil
}

// wrapPhase prefixes an error's message with the calling phase, keeping the
// kind and underlying cause intact.
func wrapPhase(e *types.Error, phase string) *types.Error {
	return &types.Error{Kind: e.Kind, Message: phase + ": " + e.Message, Cause: e.Cause}
}

func stringParam(params map[string]interface{}, name string) (string, *types.Error) {
	value, ok := params[name].(string)
	if !ok || value == "" {
		return "", types.NewError(types.ErrInvalidInput, name+" parameter required", nil)
	}
	return value, nil
}

func optionalString(params map[string]interface{}, name string) string {
	value, _ := params[name].(string)
	return value
}

func optionalBool(params map[string]interface{}, name string, fallback bool) bool {
	if value, ok := params[name].(bool); ok {
		return value
	}
	return fallback
}

func stringSliceParam(params map[string]interface{}, name string) ([]string, *types.Error) {
	raw, ok := params[name].([]interface{})
	if !ok {
		if typed, ok := params[name].([]string); ok && len(typed) > 0 {
			return typed, nil
		}
		return nil, types.NewError(types.ErrInvalidInput, name+" array required", nil)
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return nil, types.NewError(types.ErrInvalidInput, name+" array required", nil)
	}
	return values, nil
}

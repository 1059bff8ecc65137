package filesystem

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// scratchSuffixRange bounds the random numeric suffix of scratch directory
// names. Wide enough to make same-process collisions negligible; there is no
// uniqueness check or retry on collision.
const scratchSuffixRange = 1_000_000

// ReadStringFromZip extracts archivePath into a fresh scratch directory under
// the platform temp directory, reads one file out of the extracted tree as
// UTF-8 text, and returns its content.
//
// The file is located by precedence: the exact path scratch/target when
// target is given and exists; otherwise the first regular file (depth-first)
// whose name component equals target's name component; when target is empty,
// the first regular file in traversal order. The name-only fallback can mask
// a wrong directory in target, so the match is intentionally loose.
//
// When deleteAfter is true the scratch directory is deleted recursively on
// every exit path; cleanup is best-effort and never overrides the operation
// outcome.
func (a *ArchivesOps) ReadStringFromZip(ctx context.Context, archivePath, target string, deleteAfter bool) (*types.Result, error) {
	if archivePath == "" {
		return Failure(types.ErrInvalidInput, "read from zip: archive path required", nil)
	}
	if !a.Store.Exists(archivePath) {
		return Failure(types.ErrNotFound, fmt.Sprintf("read from zip: archive not found: %s", archivePath), nil)
	}

	scratch := filepath.Join(a.Dirs.Temp, fmt.Sprintf("unzip-%06d", rand.IntN(scratchSuffixRange)))
	if err := a.Store.MkdirAll(scratch); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("read from zip: create scratch directory %s", scratch), err)
	}
	if deleteAfter {
		defer func() {
			_ = a.Store.RemoveAll(scratch)
		}()
	}

	if res, _ := a.Decompress(ctx, archivePath, scratch); !res.Success {
		return failure(wrapPhase(res.Error, fmt.Sprintf("read from zip: extract %s", archivePath)))
	}

	located, lerr := a.locate(ctx, scratch, target)
	if lerr != nil {
		return failure(lerr)
	}

	src, err := a.Store.OpenRead(located)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("read from zip: open %s", located), err)
	}
	data, err := io.ReadAll(src)
	if cerr := src.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("read from zip: read %s", located), err)
	}

	return Success(map[string]interface{}{
		"content": string(data),
		"file":    located,
		"size":    len(data),
	})
}

// locate resolves the file to read out of the extracted tree.
func (a *ArchivesOps) locate(ctx context.Context, scratch, target string) (string, *types.Error) {
	if target != "" {
		exact := filepath.Join(scratch, filepath.FromSlash(target))
		if info, err := a.Store.Stat(exact); err == nil && !info.IsDir {
			return exact, nil
		}
		// Exact miss: fall back to matching the name component anywhere in
		// the extracted tree.
		want := filepath.Base(filepath.FromSlash(target))
		found, err := a.firstFile(ctx, scratch, want)
		if err != nil {
			return "", types.NewError(types.ErrIOFailure, "read from zip: search extracted tree", err)
		}
		if found == "" {
			return "", types.NewError(types.ErrNotFound, fmt.Sprintf("file not found in archive: %s", target), nil)
		}
		return found, nil
	}

	found, err := a.firstFile(ctx, scratch, "")
	if err != nil {
		return "", types.NewError(types.ErrIOFailure, "read from zip: search extracted tree", err)
	}
	if found == "" {
		return "", types.NewError(types.ErrNotFound, "archive contains no files", nil)
	}
	return found, nil
}

// firstFile walks dir depth-first in enumerator order and returns the first
// regular file named want, or the first regular file at all when want is
// empty. Directories are recursed into, never matched.
func (a *ArchivesOps) firstFile(ctx context.Context, dir, want string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	children, err := a.Store.List(dir)
	if err != nil {
		return "", err
	}
	for _, child := range children {
		info, err := a.Store.Stat(child)
		if err != nil {
			return "", err
		}
		if info.IsDir {
			found, err := a.firstFile(ctx, child, want)
			if err != nil || found != "" {
				return found, err
			}
			continue
		}
		if want == "" || filepath.Base(child) == want {
			return child, nil
		}
	}
	return "", nil
}

package filesystem

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

// TarCreate packs source into a tar archive at archivePath. Compression is
// one of "none", "gzip" (default), or "zstd". Unlike zip entries, tar entry
// names are relative to source itself, not its parent.
func (a *ArchivesOps) TarCreate(ctx context.Context, source, archivePath, compression string) (*types.Result, error) {
	if source == "" || archivePath == "" {
		return Failure(types.ErrInvalidInput, "tar: source and archive paths required", nil)
	}
	if compression == "" {
		compression = "gzip"
	}
	if !a.Store.Exists(source) {
		return Failure(types.ErrNotFound, fmt.Sprintf("tar: source not found: %s", source), nil)
	}

	if parent := filepath.Dir(archivePath); parent != "" && parent != "." {
		if err := a.Store.MkdirAll(parent); err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("tar: create archive directory %s", parent), err)
		}
	}
	out, err := a.Store.OpenWrite(archivePath)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("tar: create archive %s", archivePath), err)
	}

	var tw *tar.Writer
	closers := []io.Closer{}
	switch compression {
	case "gzip":
		gz := gzip.NewWriter(out)
		tw = tar.NewWriter(gz)
		closers = append(closers, tw, gz, out)
	case "zstd":
		zw, err := zstd.NewWriter(out)
		if err != nil {
			out.Close()
			return Failure(types.ErrIOFailure, "tar: create zstd encoder", err)
		}
		tw = tar.NewWriter(zw)
		closers = append(closers, tw, zw, out)
	case "none":
		tw = tar.NewWriter(out)
		closers = append(closers, tw, out)
	default:
		out.Close()
		return Failure(types.ErrInvalidInput, fmt.Sprintf("tar: unsupported compression: %s", compression), nil)
	}

	buf := make([]byte, copyBufferSize)
	root := filepath.Clean(source)
	files, total, walkErr := a.tarTree(ctx, tw, root, root, buf)

	var closeErr error
	for _, c := range closers {
		if err := c.Close(); closeErr == nil {
			closeErr = err
		}
	}
	if walkErr != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("tar %s", source), walkErr)
	}
	if closeErr != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("tar: finalize archive %s", archivePath), closeErr)
	}

	return Success(map[string]interface{}{
		"created":     true,
		"archive":     archivePath,
		"files":       files,
		"total_size":  total,
		"compression": compression,
	})
}

func (a *ArchivesOps) tarTree(ctx context.Context, tw *tar.Writer, node, root string, buf []byte) (int, int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	info, err := a.Store.Stat(node)
	if err != nil {
		return 0, 0, err
	}

	name := filepath.Base(node)
	if node != root {
		rel, err := filepath.Rel(root, node)
		if err != nil {
			return 0, 0, err
		}
		name = filepath.ToSlash(rel)
	}

	if info.IsDir {
		if node != root {
			hdr := &tar.Header{
				Name:     name + "/",
				Mode:     0o755,
				ModTime:  info.Modified,
				Typeflag: tar.TypeDir,
			}
			if err := tw.WriteHeader(hdr); err != nil {
				return 0, 0, err
			}
		}
		children, err := a.Store.List(node)
		if err != nil {
			return 0, 0, err
		}
		files := 0
		var total int64
		for _, child := range children {
			n, size, err := a.tarTree(ctx, tw, child, root, buf)
			files += n
			total += size
			if err != nil {
				return files, total, err
			}
		}
		return files, total, nil
	}

	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     info.Size,
		ModTime:  info.Modified,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return 0, 0, err
	}
	src, err := a.Store.OpenRead(node)
	if err != nil {
		return 0, 0, err
	}
	size, err := io.CopyBuffer(tw, src, buf)
	if cerr := src.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, 0, fmt.Errorf("write entry %s: %w", node, err)
	}
	return 1, size, nil
}

// TarExtract extracts a tar archive into destination, detecting gzip and
// zstd compression from the archive suffix.
func (a *ArchivesOps) TarExtract(ctx context.Context, archivePath, destination string) (*types.Result, error) {
	if archivePath == "" || destination == "" {
		return Failure(types.ErrInvalidInput, "untar: archive and destination paths required", nil)
	}
	if !a.Store.Exists(archivePath) {
		return Failure(types.ErrNotFound, fmt.Sprintf("untar: archive not found: %s", archivePath), nil)
	}

	src, err := a.Store.OpenRead(archivePath)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("untar: open archive %s", archivePath), err)
	}
	defer src.Close()

	tr, cleanup, terr := tarReaderFor(archivePath, src)
	if terr != nil {
		return Failure(types.ErrInvalidArchive, fmt.Sprintf("untar: read archive %s", archivePath), terr)
	}
	defer cleanup()

	if err := a.Store.MkdirAll(destination); err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("untar: create destination %s", destination), err)
	}

	cleanDest := filepath.Clean(destination)
	buf := make([]byte, copyBufferSize)
	files := 0

	for {
		if err := ctx.Err(); err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("untar %s cancelled", archivePath), err)
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Failure(types.ErrInvalidArchive, fmt.Sprintf("untar: read archive %s", archivePath), err)
		}

		target := filepath.Join(cleanDest, filepath.FromSlash(hdr.Name))
		if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := a.Store.MkdirAll(target); err != nil {
				return Failure(types.ErrIOFailure, fmt.Sprintf("untar: create directory %s", target), err)
			}
		case tar.TypeReg:
			if err := a.Store.MkdirAll(filepath.Dir(target)); err != nil {
				return Failure(types.ErrIOFailure, fmt.Sprintf("untar: create directory %s", filepath.Dir(target)), err)
			}
			dst, err := a.Store.OpenWrite(target)
			if err != nil {
				return Failure(types.ErrIOFailure, fmt.Sprintf("untar: create %s", target), err)
			}
			_, err = io.CopyBuffer(dst, tr, buf)
			if cerr := dst.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return Failure(types.ErrIOFailure, fmt.Sprintf("untar: extract %s", hdr.Name), err)
			}
			files++
		}
	}

	return Success(map[string]interface{}{
		"extracted":   true,
		"destination": destination,
		"files":       files,
	})
}

// TarList lists tar archive contents, detecting compression from the suffix.
func (a *ArchivesOps) TarList(ctx context.Context, archivePath string) (*types.Result, error) {
	if archivePath == "" {
		return Failure(types.ErrInvalidInput, "tar list: archive path required", nil)
	}
	if !a.Store.Exists(archivePath) {
		return Failure(types.ErrNotFound, fmt.Sprintf("tar list: archive not found: %s", archivePath), nil)
	}

	src, err := a.Store.OpenRead(archivePath)
	if err != nil {
		return Failure(types.ErrIOFailure, fmt.Sprintf("tar list: open archive %s", archivePath), err)
	}
	defer src.Close()

	tr, cleanup, terr := tarReaderFor(archivePath, src)
	if terr != nil {
		return Failure(types.ErrInvalidArchive, fmt.Sprintf("tar list: read archive %s", archivePath), terr)
	}
	defer cleanup()

	entries := []map[string]interface{}{}
	for {
		if err := ctx.Err(); err != nil {
			return Failure(types.ErrIOFailure, fmt.Sprintf("tar list %s cancelled", archivePath), err)
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Failure(types.ErrInvalidArchive, fmt.Sprintf("tar list: read archive %s", archivePath), err)
		}
		entries = append(entries, map[string]interface{}{
			"name":     hdr.Name,
			"size":     hdr.Size,
			"is_dir":   hdr.Typeflag == tar.TypeDir,
			"modified": hdr.ModTime.Unix(),
		})
	}

	return Success(map[string]interface{}{
		"archive": archivePath,
		"entries": entries,
		"count":   len(entries),
	})
}

// ExtractAuto dispatches extraction on the archive extension.
func (a *ArchivesOps) ExtractAuto(ctx context.Context, archivePath, destination string) (*types.Result, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return a.Decompress(ctx, archivePath, destination)
	case ".tar", ".tgz", ".gz", ".zst":
		return a.TarExtract(ctx, archivePath, destination)
	default:
		return Failure(types.ErrInvalidInput, fmt.Sprintf("unsupported archive format: %s", filepath.Ext(archivePath)), nil)
	}
}

// tarReaderFor wraps src with the decompressor implied by the archive name.
func tarReaderFor(archivePath string, src io.Reader) (*tar.Reader, func(), error) {
	switch {
	case strings.HasSuffix(archivePath, ".gz") || strings.HasSuffix(archivePath, ".tgz"):
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, nil, err
		}
		return tar.NewReader(gz), func() { gz.Close() }, nil
	case strings.HasSuffix(archivePath, ".zst"):
		zr, err := zstd.NewReader(src)
		if err != nil {
			return nil, nil, err
		}
		return tar.NewReader(zr), zr.Close, nil
	default:
		return tar.NewReader(src), func() {}, nil
	}
}

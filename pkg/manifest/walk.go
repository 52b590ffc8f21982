package manifest

import (
	"context"
	"path"
	"path/filepath"

	"github.com/sdejongh/hashcompare/pkg/models"
	"github.com/sdejongh/hashcompare/pkg/storage"
)

// entry is one regular file reachable from an input root
type entry struct {
	rel  string
	size int64
}

// walk enumerates every regular file under root, depth-first. Directories
// contribute only their descendants; symlinks and special files are skipped.
// The result is in listing order, not sorted.
func walk(ctx context.Context, backend storage.Backend, root string) ([]entry, error) {
	info, err := backend.Stat(ctx, root)
	if err != nil {
		return nil, models.WrapPathError("stat", root, err)
	}

	switch {
	case info.IsRegular():
		return []entry{{rel: filepath.Base(root), size: info.Size}}, nil
	case info.IsDir():
		return walkDir(ctx, backend, root, "")
	default:
		return nil, nil
	}
}

func walkDir(ctx context.Context, backend storage.Backend, dir, rel string) ([]entry, error) {
	children, err := backend.ReadDir(ctx, dir)
	if err != nil {
		return nil, models.WrapPathError("read directory", dir, err)
	}

	var entries []entry
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return nil, models.ErrCancelled
		}

		childRel := path.Join(rel, child.Name)
		switch {
		case child.IsRegular():
			entries = append(entries, entry{rel: childRel, size: child.Size})
		case child.IsDir():
			sub, err := walkDir(ctx, backend, child.Path, childRel)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)
		}
	}

	return entries, nil
}

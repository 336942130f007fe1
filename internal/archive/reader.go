// Package archive reads compressed tabular inputs. Each archive holds one
// table; the table is decoded straight from the decompressed stream, so no
// decompressed bytes reach the disk.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"campaign/internal/datasource/file"
	"campaign/internal/etlerr"
	"campaign/internal/parser"
	"campaign/pkg/records"
)

// DefaultExtensions are the archive suffixes discovered when none are
// configured.
var DefaultExtensions = []string{".zip"}

// Reader discovers archives and decodes their selected member.
type Reader struct {
	parser  parser.Parser
	policy  MemberPolicy
	verbose bool
}

// NewReader returns a Reader that decodes members with p and selects them
// with policy.
func NewReader(p parser.Parser, policy MemberPolicy, verbose bool) *Reader {
	if policy == "" {
		policy = MemberFirst
	}
	return &Reader{parser: p, policy: policy, verbose: verbose}
}

// Discover lists the archives in dir matching exts (DefaultExtensions when
// empty). A missing directory and a directory without archives both fail
// with a KindNotFound error; any other listing failure is KindIO.
func (r *Reader) Discover(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	paths, err := file.List(dir, exts)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, etlerr.NotFound("archive.discover", dir, err)
		}
		return nil, etlerr.IO("archive.discover", dir, err)
	}
	if len(paths) == 0 {
		return nil, etlerr.NotFound("archive.discover", dir, fmt.Errorf("no archives matching %v", exts))
	}
	return paths, nil
}

// ReadTable decodes the selected member of the archive at path. The archive
// and member handles are released before ReadTable returns, on success and
// on failure alike.
func (r *Reader) ReadTable(ctx context.Context, path string) (records.Table, error) {
	open, ok := formatFor(path)
	if !ok {
		return records.Table{}, etlerr.Parse("archive.read", path, errors.New("unsupported archive format"))
	}

	m, err := open(ctx, file.NewLocal(path), r.policy)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return records.Table{}, ctxErr
		}
		if errors.Is(err, os.ErrNotExist) {
			return records.Table{}, etlerr.NotFound("archive.read", path, err)
		}
		return records.Table{}, etlerr.Parse("archive.read", path, err)
	}
	defer m.Close()

	t, err := r.parser.Parse(m)
	if err != nil {
		return records.Table{}, etlerr.Parse("archive.read", path+":"+m.name, err)
	}
	if r.verbose {
		log.Printf("archive: read path=%s member=%s rows=%d cols=%d", path, m.name, t.Len(), len(t.Columns))
	}
	return t, nil
}

// ReadAll discovers the archives in dir and decodes each in discovery
// order. The first failure aborts the read.
func (r *Reader) ReadAll(ctx context.Context, dir string, exts []string) ([]records.Table, error) {
	paths, err := r.Discover(dir, exts)
	if err != nil {
		return nil, err
	}
	tables := make([]records.Table, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := r.ReadTable(ctx, p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

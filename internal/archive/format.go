package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/snappy"

	"campaign/internal/datasource/file"
)

// MemberPolicy selects which archive entry holds the table when an archive
// lists more than one. Entries beyond the selected one are ignored.
type MemberPolicy string

const (
	// MemberFirst picks the first file entry in the archive's own listing.
	MemberFirst MemberPolicy = "first"
	// MemberFirstCSV picks the first file entry whose name ends in ".csv".
	MemberFirstCSV MemberPolicy = "first-csv"
)

// ParseMemberPolicy maps a config value to a MemberPolicy. The empty string
// selects MemberFirst.
func ParseMemberPolicy(s string) (MemberPolicy, error) {
	switch MemberPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MemberFirst:
		return MemberFirst, nil
	case MemberFirstCSV:
		return MemberFirstCSV, nil
	default:
		return "", fmt.Errorf("unknown member policy %q (want %q or %q)", s, MemberFirst, MemberFirstCSV)
	}
}

// member is an opened archive entry. Close releases the entry and the
// archive file beneath it.
type member struct {
	name string
	io.Reader
	closers []io.Closer
}

func (m *member) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// errNoMember reports an archive without a usable entry.
var errNoMember = errors.New("archive has no tabular member")

// openFunc opens the selected member of the archive at src.
type openFunc func(ctx context.Context, src *file.Local, policy MemberPolicy) (*member, error)

// formats maps a lowercase file extension to its opener.
var formats = map[string]openFunc{
	".zip": openZip,
	".sz":  openSnappy,
}

// Extensions returns the registered archive extensions in sorted order.
func Extensions() []string {
	out := make([]string, 0, len(formats))
	for ext := range formats {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Supported reports whether ext names a registered archive format.
func Supported(ext string) bool {
	_, ok := formats[strings.ToLower(ext)]
	return ok
}

func formatFor(p string) (openFunc, bool) {
	open, ok := formats[strings.ToLower(filepath.Ext(p))]
	return open, ok
}

// openZip opens a zip container and selects one entry by policy.
func openZip(ctx context.Context, src *file.Local, policy MemberPolicy) (*member, error) {
	ra, size, err := src.OpenAt(ctx)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		ra.Close()
		return nil, fmt.Errorf("zip: %w", err)
	}
	f := selectMember(zr.File, policy)
	if f == nil {
		ra.Close()
		return nil, errNoMember
	}
	rc, err := f.Open()
	if err != nil {
		ra.Close()
		return nil, fmt.Errorf("zip: open %s: %w", f.Name, err)
	}
	return &member{name: f.Name, Reader: rc, closers: []io.Closer{ra, rc}}, nil
}

// selectMember applies policy to the entries in listing order. Directory
// entries never qualify.
func selectMember(files []*zip.File, policy MemberPolicy) *zip.File {
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if policy == MemberFirstCSV && !strings.EqualFold(path.Ext(f.Name), ".csv") {
			continue
		}
		return f
	}
	return nil
}

// openSnappy opens a snappy framed stream. The stream is a single document,
// so every policy selects it; its member name is the file name without the
// ".sz" suffix.
func openSnappy(ctx context.Context, src *file.Local, _ MemberPolicy) (*member, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(src.Path())
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return &member{name: name, Reader: snappy.NewReader(rc), closers: []io.Closer{rc}}, nil
}

// SPDX-License-Identifier: MPL-2.0

// Package consumer edits the import list of a project consuming a Unistylus
// collection: src/unistylus.scss, a file of `@import '<collection>/...';`
// lines naming skins and parts.
package consumer

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/unistylus/unistylus/internal/fsutil"

	"github.com/spf13/afero"
)

const (
	// FileName is the consumer file inside the source directory.
	FileName = "unistylus.scss"

	skinPrefix = "skins/"
	// collectionMarker keeps the collection of a file whose last import
	// was removed.
	collectionMarker = "// unistylus collection: "
)

var (
	// ErrInvalidConsumerFile is returned when the file has no import to
	// infer the collection from.
	ErrInvalidConsumerFile = errors.New("invalid consumer file")
	// ErrConsumerFileNotFound is returned when the file does not exist.
	ErrConsumerFileNotFound = errors.New("consumer file not found")

	importPattern = regexp.MustCompile(`@import '(.*?)';`)
	markerPattern = regexp.MustCompile(`(?m)^` + collectionMarker + `(\S+)\s*$`)
)

// Info is the parsed content of a consumer file.
type Info struct {
	Collection string
	Skins      []string
	Parts      []string
}

// Path returns the consumer file path under srcDir.
func Path(srcDir string) string { return filepath.Join(srcDir, FileName) }

// Parse reads the collection from the first import, then every skin and
// part imported from that collection. Scoped collections ("@org/name")
// keep both segments. A file without imports falls back to the
// collection marker written by Build.
func Parse(content string) (Info, error) {
	m := importPattern.FindStringSubmatch(content)
	if m == nil || m[1] == "" {
		if mk := markerPattern.FindStringSubmatch(content); mk != nil {
			return Info{Collection: mk[1], Skins: []string{}, Parts: []string{}}, nil
		}
		return Info{}, fmt.Errorf("%w: no import found", ErrInvalidConsumerFile)
	}

	segments := strings.Split(m[1], "/")
	collection := segments[0]
	if strings.Contains(m[1], "@") && len(segments) > 1 {
		collection = segments[0] + "/" + segments[1]
	}

	info := Info{Collection: collection, Skins: []string{}, Parts: []string{}}
	prefix := collection + "/"
	for _, imp := range importPattern.FindAllStringSubmatch(content, -1) {
		path, ok := strings.CutPrefix(imp[1], prefix)
		if !ok || path == "" {
			continue
		}
		if skin, isSkin := strings.CutPrefix(path, skinPrefix); isSkin {
			if skin != "" {
				info.Skins = append(info.Skins, skin)
			}
			continue
		}
		info.Parts = append(info.Parts, path)
	}
	return info, nil
}

// Build renders the file: skins first, then parts, one import per line.
// With nothing to import, only the collection marker is written.
func (i Info) Build() string {
	if len(i.Skins) == 0 && len(i.Parts) == 0 {
		return collectionMarker + i.Collection + "\n"
	}
	var sb strings.Builder
	for _, s := range i.Skins {
		fmt.Fprintf(&sb, "@import '%s/%s%s';\n", i.Collection, skinPrefix, s)
	}
	for _, p := range i.Parts {
		fmt.Fprintf(&sb, "@import '%s/%s';\n", i.Collection, p)
	}
	return sb.String()
}

// Add returns a copy with name appended. "skins/<x>" adds a skin; anything
// else is a part. Present names are left in place.
func (i Info) Add(name string) Info {
	out := i.clone()
	if skin, ok := strings.CutPrefix(name, skinPrefix); ok {
		if !slices.Contains(out.Skins, skin) {
			out.Skins = append(out.Skins, skin)
		}
		return out
	}
	if !slices.Contains(out.Parts, name) {
		out.Parts = append(out.Parts, name)
	}
	return out
}

// Remove returns a copy without name. Unknown names are ignored.
func (i Info) Remove(name string) Info {
	out := i.clone()
	if skin, ok := strings.CutPrefix(name, skinPrefix); ok {
		out.Skins = slices.DeleteFunc(out.Skins, func(s string) bool { return s == skin })
		return out
	}
	out.Parts = slices.DeleteFunc(out.Parts, func(p string) bool { return p == name })
	return out
}

// Use returns a copy importing from collection. Parts are kept as named;
// the new collection may not provide all of them.
func (i Info) Use(collection string) Info {
	out := i.clone()
	out.Collection = collection
	return out
}

func (i Info) clone() Info {
	return Info{
		Collection: i.Collection,
		Skins:      slices.Clone(i.Skins),
		Parts:      slices.Clone(i.Parts),
	}
}

// Load parses the consumer file at path.
func Load(fsys afero.Fs, path string) (Info, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, fmt.Errorf("%w: %s", ErrConsumerFileNotFound, path)
	}
	if err != nil {
		return Info{}, fmt.Errorf("read %s: %w", path, err)
	}
	info, err := Parse(string(data))
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// Edit loads the file at path, applies fn and writes the result back.
func Edit(fsys afero.Fs, path string, fn func(Info) Info) (Info, error) {
	info, err := Load(fsys, path)
	if err != nil {
		return Info{}, err
	}
	info = fn(info)
	if err := fsutil.WriteFile(fsys, path, []byte(info.Build())); err != nil {
		return Info{}, err
	}
	return info, nil
}

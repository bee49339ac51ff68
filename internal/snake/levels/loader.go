// Package levels locates snake level resources by numeric id. Levels are
// read from a directory on disk, or from the built-in set when no
// directory is configured.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

//go:embed data/*.txt
var builtin embed.FS

// ErrNotFound is returned when no resource exists for a level id.
var ErrNotFound = errors.New("no such level")

// Source loads levels from a file system. Level n is stored as a file
// named "n" or "n.txt".
type Source struct {
	fsys   fs.FS
	name   string
	limits snake.Limits
}

// NewSource returns a source reading from dir, or from the built-in levels
// when dir is empty.
func NewSource(dir string, limits snake.Limits) *Source {
	if dir == "" {
		return Builtin(limits)
	}
	return &Source{fsys: os.DirFS(dir), name: dir, limits: limits}
}

// Builtin returns a source over the levels compiled into the binary.
func Builtin(limits snake.Limits) *Source {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded data: %v", err))
	}
	return &Source{fsys: sub, name: "built-in", limits: limits}
}

// FromFS returns a source over an arbitrary file system.
func FromFS(fsys fs.FS, limits snake.Limits) *Source {
	return &Source{fsys: fsys, name: "fs", limits: limits}
}

// Name describes where levels come from.
func (s *Source) Name() string {
	return s.name
}

// Load reads and validates level id.
func (s *Source) Load(id int) (*snake.Level, error) {
	data, err := s.read(id)
	if err != nil {
		return nil, err
	}
	return snake.ParseLevel(id, data, s.limits)
}

func (s *Source) read(id int) ([]byte, error) {
	base := strconv.Itoa(id)
	for _, name := range []string{base, base + ".txt"} {
		data, err := fs.ReadFile(s.fsys, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("levels: reading level %d from %s: %w", id, s.name, err)
		}
	}
	return nil, fmt.Errorf("levels: level %d in %s: %w", id, s.name, ErrNotFound)
}

// IDs returns the ids of all level files in ascending order. Files whose
// names are not level ids are ignored.
func (s *Source) IDs() ([]int, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: listing %s: %w", s.name, err)
	}

	seen := make(map[int]bool)
	var ids []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".txt")
		id, err := strconv.Atoi(base)
		// Load only finds canonical names, so "01" or "+1" are not level 1.
		if err != nil || id < 1 || strconv.Itoa(id) != base || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// Result is the outcome of validating one level file.
type Result struct {
	ID    int
	Level *snake.Level
	Err   error
}

// CheckAll loads every level file and reports each outcome in id order.
func (s *Source) CheckAll() ([]Result, error) {
	ids, err := s.IDs()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		lvl, err := s.Load(id)
		results = append(results, Result{ID: id, Level: lvl, Err: err})
	}
	return results, nil
}

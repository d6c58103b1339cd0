package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/spirograph/internal/geom"
)

// Store writes exported images and trace dumps into one directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes data to name inside the store directory and returns the full
// path. The file appears atomically.
func (s *Store) Save(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, name)
	tmp, err := os.CreateTemp(s.baseDir, "."+name+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveTrace writes the trace as an x,y CSV next to the images.
func (s *Store) SaveTrace(name string, pts []geom.Vec) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"x", "y"}); err != nil {
		return "", err
	}
	for _, p := range pts {
		row := []string{
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return s.Save(name, []byte(sb.String()))
}

func (s *Store) LoadTrace(name string) ([]geom.Vec, error) {
	file, err := os.Open(filepath.Join(s.baseDir, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []geom.Vec{}, nil
	}

	pts := make([]geom.Vec, 0, len(records)-1)
	for i, record := range records[1:] {
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		pts = append(pts, geom.V(x, y))
	}
	return pts, nil
}

// List returns the names of stored files with the given extension, sorted.
func (s *Store) List(ext string) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if filepath.Ext(entry.Name()) == ext {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

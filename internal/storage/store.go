package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang/geo/r3"
	"github.com/san-kum/armkin/internal/kinematics"
	"github.com/san-kum/armkin/internal/sweep"
)

var ErrMalformedRun = errors.New("storage: malformed run data")

const (
	metadataFile = "metadata.json"
	posesFile    = "poses.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Arm       string             `json:"arm"`
	Timestamp time.Time          `json:"timestamp"`
	Lengths   []float64          `json:"lengths"`
	Angles    []float64          `json:"angles"`
	Joint     int                `json:"joint"`
	From      float64            `json:"from"`
	To        float64            `json:"to"`
	Steps     int                `json:"steps"`
	Dimension int                `json:"dimension"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a sweep as metadata.json plus one CSV row per pose:
// the swept value followed by the coordinates of every joint.
func (s *Store) Save(arm string, cfg sweep.Config, result *sweep.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", runName(arm), time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Arm:       arm,
		Timestamp: time.Now(),
		Lengths:   cfg.Lengths,
		Angles:    cfg.Angles,
		Joint:     cfg.Joint,
		From:      cfg.From,
		To:        cfg.To,
		Steps:     cfg.Steps,
		Dimension: int(cfg.Dim),
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, posesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := writePoses(w, cfg.Dim, result); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// runName keeps run directories directly under the store root.
func runName(arm string) string {
	name := filepath.Base(filepath.Clean("/" + strings.TrimSpace(arm)))
	if name == "/" || name == "." {
		return "arm"
	}
	return name
}

func writePoses(w *csv.Writer, dim kinematics.Dimension, result *sweep.Result) error {
	if len(result.Poses) == 0 {
		return nil
	}

	axes := []string{"x", "y"}
	if dim == kinematics.Spatial {
		axes = append(axes, "z")
	}
	header := []string{"value"}
	for i := range result.Poses[0].Points {
		for _, a := range axes {
			header = append(header, fmt.Sprintf("%s%d", a, i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, pose := range result.Poses {
		row := []string{strconv.FormatFloat(result.Values[i], 'f', 6, 64)}
		for _, c := range pose.Coords() {
			for _, v := range c {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPoses reads the swept values and joint positions of a run.
func (s *Store) LoadPoses(runID string) ([]float64, []kinematics.Positions, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	dim := kinematics.Dimension(meta.Dimension)
	if !dim.Valid() {
		return nil, nil, fmt.Errorf("%w: dimension %d", ErrMalformedRun, meta.Dimension)
	}
	arity := int(dim)

	file, err := os.Open(filepath.Join(s.baseDir, runID, posesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []kinematics.Positions{}, nil
	}

	values := make([]float64, 0, len(records)-1)
	poses := make([]kinematics.Positions, 0, len(records)-1)
	for n, record := range records[1:] {
		if (len(record)-1)%arity != 0 {
			return nil, nil, fmt.Errorf("%w: row %d has %d columns", ErrMalformedRun, n+1, len(record))
		}
		nums := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRun, n+1, err)
			}
			nums[j] = v
		}

		pts := make([]r3.Vector, 0, (len(nums)-1)/arity)
		for j := 1; j < len(nums); j += arity {
			p := r3.Vector{X: nums[j], Y: nums[j+1]}
			if arity == 3 {
				p.Z = nums[j+2]
			}
			pts = append(pts, p)
		}
		values = append(values, nums[0])
		poses = append(poses, kinematics.Positions{Dim: dim, Points: pts})
	}

	return values, poses, nil
}

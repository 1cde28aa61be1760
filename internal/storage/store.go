package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dynvec/internal/vector"
	"github.com/san-kum/dynvec/internal/workload"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
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
	ID              string             `json:"id"`
	Workload        string             `json:"workload"`
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	Ops             int                `json:"ops"`
	InitialCapacity int                `json:"initial_capacity"`
	GrowthFactor    float64            `json:"growth_factor"`
	FinalLen        int                `json:"final_len"`
	Errors          int                `json:"errors"`
	Stats           vector.Stats       `json:"stats"`
	Metrics         map[string]float64 `json:"metrics"`
}

// TracePoint is one row of trace.csv.
type TracePoint struct {
	Step int
	Op   string
	Len  int
	Cap  int
}

func (s *Store) Save(meta RunMetadata, result *workload.Result) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runID := fmt.Sprintf("%s_%d", meta.Workload, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Ops = len(result.Ops)
	meta.FinalLen = len(result.Final)
	meta.Errors = len(result.Errors)
	meta.Stats = result.Stats
	meta.Metrics = result.Metrics

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

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"step", "op", "len", "cap"}); err != nil {
		return "", err
	}
	for i := range result.Sizes {
		op := ""
		if i < len(result.Ops) {
			op = result.Ops[i].String()
		}
		row := []string{
			strconv.Itoa(i),
			op,
			strconv.Itoa(result.Sizes[i]),
			strconv.Itoa(result.Capacities[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every saved run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

func (s *Store) LoadTrace(runID string) ([]TracePoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []TracePoint{}, nil
	}

	points := make([]TracePoint, 0, len(records)-1)
	for _, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("trace %s: bad step %q: %w", runID, record[0], err)
		}
		n, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("trace %s: bad len %q: %w", runID, record[2], err)
		}
		c, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("trace %s: bad cap %q: %w", runID, record[3], err)
		}
		points = append(points, TracePoint{Step: step, Op: record[1], Len: n, Cap: c})
	}

	return points, nil
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"

	"github.com/san-kum/skidsteer/internal/drive"
	"github.com/san-kum/skidsteer/internal/session"
)

var ErrRunNotFound = errors.New("run not found")

var stepsHeader = []string{"index", "symbol", "left", "right", "motion"}

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
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Limits    drive.Limits       `json:"limits"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
	Errors    []string           `json:"errors,omitempty"`
}

// Save writes the trace under a new run directory and returns its ID.
func (s *Store) Save(name string, trace *session.Trace) (string, error) {
	runID := fmt.Sprintf("%s_%s", name, xid.New().String())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Limits:    trace.Limits,
		Steps:     len(trace.Steps),
		Metrics:   trace.Metrics,
	}
	for _, err := range trace.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "steps.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(stepsHeader); err != nil {
		return "", err
	}
	for _, st := range trace.Steps {
		row := []string{
			strconv.Itoa(st.Index),
			st.Symbol.String(),
			strconv.Itoa(st.Left),
			strconv.Itoa(st.Right),
			st.Motion.String(),
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

// List returns saved runs, oldest first. Unreadable entries are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSteps reads back the steps recorded for a run.
func (s *Store) LoadSteps(runID string) ([]session.Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "steps.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stepsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []session.Step{}, nil
	}

	steps := make([]session.Step, 0, len(records)-1)
	for i, record := range records[1:] {
		st, err := parseStep(record)
		if err != nil {
			return nil, fmt.Errorf("steps.csv row %d: %w", i+2, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// LoadTrace rebuilds a trace from a saved run.
func (s *Store) LoadTrace(runID string) (*RunMetadata, *session.Trace, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	steps, err := s.LoadSteps(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &session.Trace{
		Limits:  meta.Limits,
		Steps:   steps,
		Metrics: meta.Metrics,
	}, nil
}

func parseStep(record []string) (session.Step, error) {
	index, err := strconv.Atoi(record[0])
	if err != nil {
		return session.Step{}, err
	}
	sym, err := drive.ParseSymbol(record[1])
	if err != nil {
		return session.Step{}, err
	}
	left, err := strconv.Atoi(record[2])
	if err != nil {
		return session.Step{}, err
	}
	right, err := strconv.Atoi(record[3])
	if err != nil {
		return session.Step{}, err
	}
	motion, err := drive.ParseMotion(record[4])
	if err != nil {
		return session.Step{}, err
	}
	return session.Step{
		Index:  index,
		Symbol: sym,
		Left:   left,
		Right:  right,
		Motion: motion,
	}, nil
}

type ExportData struct {
	ID      string             `json:"id,omitempty"`
	Name    string             `json:"name"`
	Limits  drive.Limits       `json:"limits"`
	Steps   []ExportStep       `json:"steps"`
	Metrics map[string]float64 `json:"metrics"`
}

type ExportStep struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol"`
	Left   int    `json:"left"`
	Right  int    `json:"right"`
	Motion string `json:"motion"`
}

// ExportJSON writes a trace as indented JSON.
func ExportJSON(w io.Writer, id, name string, trace *session.Trace) error {
	data := ExportData{
		ID:      id,
		Name:    name,
		Limits:  trace.Limits,
		Steps:   make([]ExportStep, len(trace.Steps)),
		Metrics: trace.Metrics,
	}
	for i, st := range trace.Steps {
		data.Steps[i] = ExportStep{
			Index:  st.Index,
			Symbol: st.Symbol.String(),
			Left:   st.Left,
			Right:  st.Right,
			Motion: st.Motion.String(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

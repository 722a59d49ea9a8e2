package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/asvsim/internal/asv"
	"github.com/san-kum/asvsim/internal/experiment"
	"github.com/san-kum/asvsim/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var stepsHeader = []string{
	"episode", "step", "time",
	"x", "y", "vx", "vy",
	"target_x", "target_y",
	"action_x", "action_y",
	"reward", "done",
}

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
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	ActionType      string             `json:"action_type"`
	Trajectory      string             `json:"trajectory"`
	Agent           string             `json:"agent"`
	Interval        float64            `json:"interval"`
	MaxVelocity     float64            `json:"max_velocity"`
	MaxAcceleration float64            `json:"max_acceleration"`
	Episodes        int                `json:"episodes"`
	MaxSteps        int                `json:"max_steps"`
	StepsTaken      int                `json:"steps_taken"`
	Reward          metrics.Summary    `json:"reward"`
	EpisodeRewards  []float64          `json:"episode_rewards"`
	Metrics         map[string]float64 `json:"metrics"`
}

func (s *Store) Save(cfg experiment.Config, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", cfg.Trajectory, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:              runID,
		Timestamp:       time.Now(),
		Seed:            cfg.Seed,
		ActionType:      string(cfg.ActionType),
		Trajectory:      cfg.Trajectory,
		Agent:           cfg.Agent,
		Interval:        cfg.Interval,
		MaxVelocity:     cfg.MaxVelocity,
		MaxAcceleration: cfg.MaxAcceleration,
		Episodes:        len(result.Episodes),
		MaxSteps:        cfg.MaxSteps,
		StepsTaken:      result.StepsTaken,
		Reward:          result.Reward,
		EpisodeRewards:  make([]float64, len(result.Episodes)),
		Metrics:         result.Metrics,
	}
	for i, ep := range result.Episodes {
		meta.EpisodeRewards[i] = ep.Reward
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSteps(filepath.Join(runDir, stepsFile), result.Records()); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSteps(path string, records []experiment.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(stepsHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Episode),
			strconv.Itoa(r.Step),
			formatFloat(r.Time),
			formatFloat(r.Vehicle.X), formatFloat(r.Vehicle.Y),
			formatFloat(r.Velocity.X), formatFloat(r.Velocity.Y),
			formatFloat(r.Target.X), formatFloat(r.Target.Y),
			formatFloat(r.Action.X), formatFloat(r.Action.Y),
			formatFloat(r.Reward),
			strconv.FormatBool(r.Done),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns all readable runs, oldest first.
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

func (s *Store) LoadRecords(runID string) ([]experiment.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stepsHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []experiment.Record{}, nil
	}

	records := make([]experiment.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", stepsFile, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (experiment.Record, error) {
	var rec experiment.Record
	var err error
	if rec.Episode, err = strconv.Atoi(row[0]); err != nil {
		return rec, err
	}
	if rec.Step, err = strconv.Atoi(row[1]); err != nil {
		return rec, err
	}

	vals := make([]float64, 10)
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(row[i+2], 64); err != nil {
			return rec, err
		}
	}
	rec.Time = vals[0]
	rec.Vehicle = asv.Vector2{X: vals[1], Y: vals[2]}
	rec.Velocity = asv.Vector2{X: vals[3], Y: vals[4]}
	rec.Target = asv.Vector2{X: vals[5], Y: vals[6]}
	rec.Action = asv.Vector2{X: vals[7], Y: vals[8]}
	rec.Reward = vals[9]

	if rec.Done, err = strconv.ParseBool(row[12]); err != nil {
		return rec, err
	}
	return rec, nil
}

type ExportData struct {
	Metadata *RunMetadata        `json:"metadata"`
	Records  []experiment.Record `json:"records,omitempty"`
}

// Export writes a run as indented JSON. Records are included when
// withRecords is set.
func (s *Store) Export(w io.Writer, runID string, withRecords bool) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	data := ExportData{Metadata: meta}
	if withRecords {
		if data.Records, err = s.LoadRecords(runID); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type AgentConfig struct {
	ID           int
	Kind         string // random, greedy, policy
	StrategyPath string // Strategy table for policy agents
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
	runID   uuid.UUID
}

// NewWriter creates <root>/<name>/<timestamp>_<run id> to hold the CSV files of one run.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.New()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"_"+runID.String()[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		runID:   runID,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) RunID() uuid.UUID {
	return w.runID
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, len(configs))
	for i, config := range configs {
		rows[i] = []string{
			strconv.Itoa(config.ID),
			config.Kind,
			config.StrategyPath,
		}
	}
	return w.write("agent_configs.csv", []string{"id", "kind", "strategy_path"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			strconv.Itoa(record.Winnings[0]),
			strconv.Itoa(record.Winnings[1]),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
	}
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "winnings1", "winnings2", "start_time", "end_time", "duration", "total_moves"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Action,
		}
	}
	return w.write("move_records.csv", []string{"game", "step", "player", "action"}, rows)
}

func (w *Writer) WriteIterations(records []IterationMetric) error {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Iteration),
			strconv.FormatFloat(record.Utility[0], 'f', -1, 64),
			strconv.FormatFloat(record.Utility[1], 'f', -1, 64),
			strconv.Itoa(record.TableSize),
			record.Elapsed.String(),
		}
	}
	return w.write("iterations.csv", []string{"iteration", "utility1", "utility2", "table_size", "elapsed"}, rows)
}

func (w *Writer) WriteTrainingMetric(metric TrainingMetric) error {
	row := []string{
		w.runID.String(),
		strconv.Itoa(metric.Iterations),
		metric.Sampling,
		metric.Duration.String(),
		strconv.Itoa(metric.NodeVisits),
		strconv.Itoa(metric.TableSize),
		strconv.FormatFloat(metric.MeanUtility[0], 'f', -1, 64),
		strconv.FormatFloat(metric.MeanUtility[1], 'f', -1, 64),
	}
	header := []string{"run", "iterations", "sampling", "duration", "node_visits", "table_size", "mean_utility1", "mean_utility2"}
	return w.write("training.csv", header, [][]string{row})
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

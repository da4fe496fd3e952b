package metrics

import (
	"sync/atomic"
	"time"
)

type TrainingMetric struct {
	Iterations  int
	Sampling    string
	Duration    time.Duration
	NodeVisits  int
	TableSize   int
	MeanUtility [2]float64 // Per trained player, averaged over iterations
}

type IterationMetric struct {
	Iteration int
	Utility   [2]float64
	TableSize int
	Elapsed   time.Duration
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Action string
}

type GameMetric struct {
	StartingPlayer int    // Player ID
	Winner         string // Player name, "none" for a drawn hand
	Winnings       [2]int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(iterations int, sampling string)
	AddNodeVisit()
	AddIteration(utility [2]float64, tableSize int)
	Iterations() []IterationMetric
	Complete() TrainingMetric
}

type collector struct {
	iterations int
	sampling   string
	startTime  time.Time
	nodeVisits atomic.Int64
	tableSize  atomic.Int64
	utilitySum [2]float64
	history    []IterationMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(iterations int, sampling string) {
	m.startTime = time.Now()
	m.iterations = iterations
	m.sampling = sampling
	m.history = make([]IterationMetric, 0, iterations)
}

func (m *collector) AddNodeVisit() {
	m.nodeVisits.Add(1)
}

func (m *collector) AddIteration(utility [2]float64, tableSize int) {
	m.tableSize.Store(int64(tableSize))
	m.utilitySum[0] += utility[0]
	m.utilitySum[1] += utility[1]
	m.history = append(m.history, IterationMetric{
		Iteration: len(m.history) + 1,
		Utility:   utility,
		TableSize: tableSize,
		Elapsed:   time.Since(m.startTime),
	})
}

func (m *collector) Iterations() []IterationMetric {
	return m.history
}

func (m *collector) Complete() TrainingMetric {
	metric := TrainingMetric{
		Iterations: len(m.history),
		Sampling:   m.sampling,
		Duration:   time.Since(m.startTime),
		NodeVisits: int(m.nodeVisits.Load()),
		TableSize:  int(m.tableSize.Load()),
	}
	if n := len(m.history); n > 0 {
		metric.MeanUtility = [2]float64{m.utilitySum[0] / float64(n), m.utilitySum[1] / float64(n)}
	}
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int, sampling string)          {}
func (m *dummyCollector) AddNodeVisit()                                  {}
func (m *dummyCollector) AddIteration(utility [2]float64, tableSize int) {}
func (m *dummyCollector) Iterations() []IterationMetric                  { return nil }
func (m *dummyCollector) Complete() TrainingMetric                       { return TrainingMetric{} }

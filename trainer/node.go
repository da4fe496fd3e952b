package trainer

import "gostop/utils"

// Node accumulates regrets and strategy weights for one information set. Both vectors are
// indexed by the position of the action in the state's LegalActions.
type Node struct {
	RegretSum   []float64
	StrategySum []float64
}

func NewNode(actions int) *Node {
	return &Node{
		RegretSum:   make([]float64, actions),
		StrategySum: make([]float64, actions),
	}
}

func (n *Node) Actions() int {
	return len(n.RegretSum)
}

// Current is the regret-matching strategy: positive regrets normalized, uniform when none.
func (n *Node) Current() []float64 {
	return utils.Normalize(n.RegretSum)
}

// Strategy returns the current strategy and adds it, weighted by reach, to the strategy sum.
func (n *Node) Strategy(reach float64) []float64 {
	strategy := n.Current()
	for i, p := range strategy {
		n.StrategySum[i] += reach * p
	}
	return strategy
}

// AverageStrategy is the trained output: the normalized strategy sum.
func (n *Node) AverageStrategy() []float64 {
	return utils.Normalize(n.StrategySum)
}

package network

import (
	"fmt"
	"strings"
)

// StageSummary describes one stage of a network.
type StageSummary struct {
	Name        string // e.g. "Dense(2 -> 4)", "ReLU"
	OutputWidth int    // features produced by the stage, 0 when unknown
	Parameters  int    // trainable scalars owned by the stage
}

// Summary is a structural description of a network.
type Summary struct {
	Stages          []StageSummary
	NumDense        int
	TotalParameters int
}

// NumStages returns the number of stages.
func (s Summary) NumStages() int {
	return len(s.Stages)
}

// Summary describes the network's stages and parameter counts.
func (n *Network) Summary() Summary {
	summary := Summary{
		Stages:   make([]StageSummary, 0, len(n.stages)),
		NumDense: len(n.dense),
	}

	width := 0
	for _, s := range n.stages {
		stage := StageSummary{Name: s.kind.String()}
		if s.kind == StageDense {
			d := n.dense[s.denseIndex]
			stage.Name = fmt.Sprintf("Dense(%d -> %d)", d.InFeatures(), d.OutFeatures())
			stage.Parameters = d.NumParameters()
			width = d.OutFeatures()
		}
		stage.OutputWidth = width

		summary.Stages = append(summary.Stages, stage)
		summary.TotalParameters += stage.Parameters
	}
	return summary
}

// String renders the summary as a fixed-width table.
func (s Summary) String() string {
	var b strings.Builder

	b.WriteString("======== Network Summary ========\n")
	fmt.Fprintf(&b, "Total stages: %d\n", s.NumStages())
	fmt.Fprintf(&b, "Dense layers: %d\n", s.NumDense)
	for i, stage := range s.Stages {
		width := "-"
		if stage.OutputWidth > 0 {
			width = fmt.Sprint(stage.OutputWidth)
		}
		fmt.Fprintf(&b, "Stage %-3d %-16s out=%-5s params=%d\n", i+1, stage.Name, width, stage.Parameters)
	}
	fmt.Fprintf(&b, "Total parameters: %d\n", s.TotalParameters)
	b.WriteString("=================================")

	return b.String()
}

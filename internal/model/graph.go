package model

// FlowEdge is a weighted directed edge between two node indices.
// Source and Target reference positions in EvidenceFlowGraph.Nodes.
type FlowEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight int `json:"weight"`
}

// EvidenceFlowGraph is the three-tier directed multigraph
// (Requirement -> Disclosure -> Drift tier) built once per audit run.
// Node identity is by exact label string; a node is created at most
// once even when referenced by multiple edges. Node and edge order is
// deterministic across runs and is part of the output contract.
type EvidenceFlowGraph struct {
	Nodes []string   `json:"nodes"`
	Edges []FlowEdge `json:"edges"`
}

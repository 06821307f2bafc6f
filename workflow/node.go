package workflow

// Node identifies a step in the graph.
type Node string

const (
	NodeClassify     Node = "initial_validator"
	NodeFetchContent Node = "email_content_validator"
	NodeSummarize    Node = "summarize"
	NodeGeneral      Node = "general"
	NodeNotify       Node = "send_to_pipedream"

	// End is the terminal pseudo-node. It has no step.
	End Node = "__end__"
)

// Start is the entry node of every run.
const Start = NodeClassify

func (n Node) String() string { return string(n) }

// Decision is the classifier's branch label.
type Decision string

const (
	DecisionSummarize Decision = "summarize"
	DecisionGeneral   Decision = "general"
)

func (d Decision) String() string { return string(d) }

// Valid reports whether d is one of the defined labels.
func (d Decision) Valid() bool {
	return d == DecisionSummarize || d == DecisionGeneral
}

// Labels returns the closed label set offered to the classifier, in order.
func Labels() []string {
	return []string{string(DecisionSummarize), string(DecisionGeneral)}
}

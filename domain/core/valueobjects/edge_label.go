package valueobjects

// LabelType classifies the outcome an edge represents
type LabelType string

const (
	LabelSuccess LabelType = "success"
	LabelFailure LabelType = "failure"
	LabelTimeout LabelType = "timeout"
	LabelNone    LabelType = "none"
)

// EdgeLabel is the display label attached to an edge when it is created
type EdgeLabel struct {
	Text string
	Type LabelType
}

// NoLabel is the label of an edge that carries no outcome
var NoLabel = EdgeLabel{Type: LabelNone}

// IsEmpty reports whether the label has no text
func (l EdgeLabel) IsEmpty() bool {
	return l.Text == ""
}

// Well-known source handles
const (
	HandleYes     = "yes"
	HandleNo      = "no"
	HandleTrue    = "true"
	HandleFalse   = "false"
	HandleDefault = "default"
)

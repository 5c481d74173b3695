package organogram

// Label is a node label in the organogram taxonomy.
type Label string

const (
	LabelDomain        Label = "Domain"
	LabelComponent     Label = "Component"
	LabelTask          Label = "Task"
	LabelSpecification Label = "Specification"
	LabelTestCriteria  Label = "TestCriteria"
	LabelDiaryEntry    Label = "DiaryEntry"
	LabelMessage       Label = "Message"
	LabelRFC           Label = "RFC"
	LabelDecision      Label = "Decision"
)

var allLabels = []Label{
	LabelDomain,
	LabelComponent,
	LabelTask,
	LabelSpecification,
	LabelTestCriteria,
	LabelDiaryEntry,
	LabelMessage,
	LabelRFC,
	LabelDecision,
}

// Labels returns every label in the taxonomy in a stable order.
func Labels() []Label {
	out := make([]Label, len(allLabels))
	copy(out, allLabels)
	return out
}

// Valid reports whether l belongs to the taxonomy. Only valid labels may be
// spliced into Cypher text.
func (l Label) Valid() bool {
	for _, known := range allLabels {
		if l == known {
			return true
		}
	}
	return false
}

func (l Label) String() string {
	return string(l)
}

// Status values stored on organogram nodes.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusComplete   = "Complete"

	MessageUnread = "Unread"
	RFCOpen       = "Open"
)

package session

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFileSelected
	PhasePreviewing
	PhaseUploading
	PhaseReviewing
	PhaseEditing
	PhaseRecalculating
)

var phaseNames = map[Phase]string{
	PhaseIdle:          "idle",
	PhaseFileSelected:  "file-selected",
	PhasePreviewing:    "previewing",
	PhaseUploading:     "uploading",
	PhaseReviewing:     "reviewing",
	PhaseEditing:       "editing",
	PhaseRecalculating: "recalculating",
}

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return "unknown"
}

// Busy reports whether a service call is in flight.
func (p Phase) Busy() bool {
	return p == PhaseUploading || p == PhaseRecalculating
}

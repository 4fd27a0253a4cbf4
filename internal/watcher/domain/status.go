package domain

// ReviewStatus is the moderation outcome for a watcher's field-observer
// eligibility. The set is closed; anything else is rejected at the boundary.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
	StatusProblem  ReviewStatus = "problem"
	StatusBlocked  ReviewStatus = "blocked"
	StatusNone     ReviewStatus = "none"
)

// ReviewStatuses enumerates every valid review status.
var ReviewStatuses = []ReviewStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusProblem,
	StatusBlocked,
	StatusNone,
}

// ParseReviewStatus validates a raw status value against the closed set.
func ParseReviewStatus(raw string) (ReviewStatus, error) {
	status := ReviewStatus(raw)
	for _, s := range ReviewStatuses {
		if status == s {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s ReviewStatus) String() string { return string(s) }

// Kind classifies the watcher's role at the polling station. Labels are
// presentation concerns and live outside this service; only the code is
// stored. Mobile clients send the kind as a positional index.
type Kind string

const (
	KindVoter    Kind = "voter"
	KindObserver Kind = "observer"
	KindPECPSG   Kind = "pec_psg"
	KindPECPRG   Kind = "pec_prg"
	KindTECPSG   Kind = "tec_psg"
	KindTECPRG   Kind = "tec_prg"
	KindPress    Kind = "press"
)

var kinds = []Kind{
	KindVoter,
	KindObserver,
	KindPECPSG,
	KindPECPRG,
	KindTECPSG,
	KindTECPRG,
	KindPress,
}

// KindByIndex maps the positional kind index sent by mobile clients.
func KindByIndex(index int) (Kind, error) {
	if index < 0 || index >= len(kinds) {
		return "", ErrInvalidKind
	}
	return kinds[index], nil
}

package domain

type SwitchErrorCode string

const (
	SwitchErrAccessDenied SwitchErrorCode = "ACCESS_DENIED"
	SwitchErrFailed       SwitchErrorCode = "SWITCH_FAILED"
)

// SwitchError is the typed failure of one switch attempt. Callers branch on
// Code to pick a recovery path (request-access flow vs retry).
type SwitchError struct {
	Code    SwitchErrorCode `bson:"code" json:"code"`
	Message string          `bson:"message" json:"message"`
	Details string          `bson:"details,omitempty" json:"details,omitempty"`
}

func (e *SwitchError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// SwitchResult is the outcome of SwitchPlatform. State is the restored
// target-platform aggregate; nil means no preserved document was found, which
// callers treat as a first visit.
type SwitchResult struct {
	Success bool         `json:"success"`
	Err     *SwitchError `json:"error,omitempty"`
	State   *State       `json:"state,omitempty"`
}

// SwitchAudit is one appended row of the switch audit log.
type SwitchAudit struct {
	Id     string   `bson:"_id"`
	UserId string   `bson:"userId"`
	From   Platform `bson:"from,omitempty"`
	To     Platform `bson:"to"`
	Time   int64    `bson:"time"`
}

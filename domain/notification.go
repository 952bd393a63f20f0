package domain

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Notification is a cross-platform notification row. It is mutated only by
// the one-way unread→read transition; retention is an external concern.
type Notification struct {
	Id        string     `bson:"_id" json:"id"`
	UserId    string     `bson:"userId" json:"userId"`
	Source    Platform   `bson:"source" json:"source"`
	Targets   []Platform `bson:"targets" json:"targets"`
	Title     string     `bson:"title" json:"title"`
	Body      string     `bson:"body" json:"body"`
	ActionUrl string     `bson:"actionUrl,omitempty" json:"actionUrl,omitempty"`
	Priority  Priority   `bson:"priority" json:"priority"`
	Read      bool       `bson:"read" json:"read"`
	Created   int64      `bson:"created" json:"created"`
}

// TargetsAny reports whether the notification addresses at least one of the
// given platforms.
func (n Notification) TargetsAny(platforms []Platform) bool {
	for _, t := range n.Targets {
		for _, p := range platforms {
			if t == p {
				return true
			}
		}
	}
	return false
}

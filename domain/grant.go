package domain

type AccessLevel string

const (
	AccessMember AccessLevel = "member"
	AccessAdmin  AccessLevel = "admin"
)

// AccessGrant authorizes a user to enter a platform. Presence of a non-expired
// row is the sole authorization signal for switching.
type AccessGrant struct {
	Id        string      `bson:"_id"`
	UserId    string      `bson:"userId"`
	Platform  Platform    `bson:"platform"`
	Level     AccessLevel `bson:"level"`
	ExpiresAt int64       `bson:"expiresAt,omitempty"`
	Created   int64       `bson:"created"`
}

func GrantKey(userId string, platform Platform) string {
	return userId + "/" + string(platform)
}

// Active reports whether the grant is usable at the given unix time.
// ExpiresAt == 0 means no expiry.
func (g AccessGrant) Active(now int64) bool {
	return g.ExpiresAt == 0 || g.ExpiresAt > now
}

package domain

type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

type DigestFrequency string

const (
	DigestDaily  DigestFrequency = "daily"
	DigestWeekly DigestFrequency = "weekly"
	DigestNever  DigestFrequency = "never"
)

// Preferences is the per (user, platform) preference document. A document
// conceptually always exists: absence in the store reads as DefaultPreferences.
type Preferences struct {
	Theme         ThemeMode       `bson:"theme" json:"theme"`
	Notifications bool            `bson:"notifications" json:"notifications"`
	EmailDigest   DigestFrequency `bson:"emailDigest" json:"emailDigest"`
	Language      string          `bson:"language" json:"language"`
	Timezone      string          `bson:"timezone" json:"timezone"`
	ReduceMotion  bool            `bson:"reduceMotion" json:"reduceMotion"`
	HighContrast  bool            `bson:"highContrast" json:"highContrast"`
	LargeText     bool            `bson:"largeText" json:"largeText"`
	Custom        Document        `bson:"custom" json:"custom"`
	Updated       int64           `bson:"updated" json:"updated"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         ThemeSystem,
		Notifications: true,
		EmailDigest:   DigestWeekly,
		Language:      "en",
		Timezone:      "UTC",
		Custom:        Document{},
	}
}

// Merge applies a partial update over p and returns the result. Known fields
// overwrite in place; the "custom" key merges shallowly; unknown keys land in
// Custom so platform-specific flags survive round trips.
func (p Preferences) Merge(partial Document) Preferences {
	if p.Custom == nil {
		p.Custom = Document{}
	} else {
		custom := make(Document, len(p.Custom))
		for k, v := range p.Custom {
			custom[k] = v
		}
		p.Custom = custom
	}
	for k, v := range partial {
		switch k {
		case "theme":
			if s, ok := v.(string); ok {
				p.Theme = ThemeMode(s)
			}
		case "notifications":
			if b, ok := v.(bool); ok {
				p.Notifications = b
			}
		case "emailDigest":
			if s, ok := v.(string); ok {
				p.EmailDigest = DigestFrequency(s)
			}
		case "language":
			if s, ok := v.(string); ok {
				p.Language = s
			}
		case "timezone":
			if s, ok := v.(string); ok {
				p.Timezone = s
			}
		case "reduceMotion":
			if b, ok := v.(bool); ok {
				p.ReduceMotion = b
			}
		case "highContrast":
			if b, ok := v.(bool); ok {
				p.HighContrast = b
			}
		case "largeText":
			if b, ok := v.(bool); ok {
				p.LargeText = b
			}
		case "custom":
			// Document is an alias, so this also matches plain map[string]any
			if m, ok := v.(Document); ok {
				for ck, cv := range m {
					p.Custom[ck] = cv
				}
			}
		default:
			p.Custom[k] = v
		}
	}
	return p
}

// PrefsDoc is the stored preferences row, one per user×platform.
type PrefsDoc struct {
	Id       string      `bson:"_id"`
	UserId   string      `bson:"userId"`
	Platform Platform    `bson:"platform"`
	Prefs    Preferences `bson:"prefs"`
}

func PrefsKey(userId string, platform Platform) string {
	return userId + "/" + string(platform)
}

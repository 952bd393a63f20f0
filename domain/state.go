package domain

// Document is an open-ended string-keyed payload. Per-platform state shapes
// are intentionally platform-specific; only the aggregate's top-level fields
// are validated.
type Document = map[string]any

// State is the whole-user aggregate: one stored row per user holding every
// platform's sub-document. All four platform keys are always present, possibly
// as empty documents.
type State struct {
	UserId          string                   `bson:"_id" json:"userId"`
	CurrentPlatform Platform                 `bson:"currentPlatform" json:"currentPlatform"`
	Platforms       map[Platform]Document    `bson:"platforms" json:"platforms"`
	LastVisited     map[Platform]int64       `bson:"lastVisited" json:"lastVisited"`
	Preferences     map[Platform]Preferences `bson:"preferences" json:"preferences"`
	RecentItems     map[Platform][]string    `bson:"recentItems" json:"recentItems"`
	Profiles        map[Platform]Document    `bson:"profiles" json:"profiles"`
	Updated         int64                    `bson:"updated" json:"updated"`
}

func DefaultState(userId string) *State {
	s := &State{
		UserId:          userId,
		CurrentPlatform: PlatformHub,
		Platforms:       map[Platform]Document{},
		LastVisited:     map[Platform]int64{},
		Preferences:     map[Platform]Preferences{},
		RecentItems:     map[Platform][]string{},
		Profiles:        map[Platform]Document{},
	}
	for _, p := range AllPlatforms() {
		s.Platforms[p] = Document{}
		s.Preferences[p] = DefaultPreferences()
	}
	return s
}

// Normalize restores the all-platform-keys-present invariant after a decode
// from the store or a partial construction.
func (s *State) Normalize() {
	if s.Platforms == nil {
		s.Platforms = map[Platform]Document{}
	}
	if s.LastVisited == nil {
		s.LastVisited = map[Platform]int64{}
	}
	if s.Preferences == nil {
		s.Preferences = map[Platform]Preferences{}
	}
	if s.RecentItems == nil {
		s.RecentItems = map[Platform][]string{}
	}
	if s.Profiles == nil {
		s.Profiles = map[Platform]Document{}
	}
	if !s.CurrentPlatform.Valid() {
		s.CurrentPlatform = PlatformHub
	}
	for _, p := range AllPlatforms() {
		if s.Platforms[p] == nil {
			s.Platforms[p] = Document{}
		}
		if _, ok := s.Preferences[p]; !ok {
			s.Preferences[p] = DefaultPreferences()
		}
	}
}

// Clone copies the aggregate and its top-level maps so the copy can be
// mutated without touching the original. Nested document values are shared;
// writers replace keys rather than mutating values in place.
func (s *State) Clone() *State {
	c := *s
	c.Platforms = make(map[Platform]Document, len(s.Platforms))
	for p, doc := range s.Platforms {
		d := make(Document, len(doc))
		for k, v := range doc {
			d[k] = v
		}
		c.Platforms[p] = d
	}
	c.LastVisited = make(map[Platform]int64, len(s.LastVisited))
	for p, ts := range s.LastVisited {
		c.LastVisited[p] = ts
	}
	c.Preferences = make(map[Platform]Preferences, len(s.Preferences))
	for p, prefs := range s.Preferences {
		c.Preferences[p] = prefs
	}
	c.RecentItems = make(map[Platform][]string, len(s.RecentItems))
	for p, items := range s.RecentItems {
		c.RecentItems[p] = append([]string(nil), items...)
	}
	c.Profiles = make(map[Platform]Document, len(s.Profiles))
	for p, doc := range s.Profiles {
		d := make(Document, len(doc))
		for k, v := range doc {
			d[k] = v
		}
		c.Profiles[p] = d
	}
	return &c
}

// Doc returns the per-platform document, never nil.
func (s *State) Doc(platform Platform) Document {
	if s.Platforms == nil {
		s.Platforms = map[Platform]Document{}
	}
	doc := s.Platforms[platform]
	if doc == nil {
		doc = Document{}
		s.Platforms[platform] = doc
	}
	return doc
}

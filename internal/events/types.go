package events

// ScopeGlobal marks events visible to every caller. Events carrying an empty
// owner are indexed under this scope.
const ScopeGlobal = "global"

// Category classifies an event.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Organizer identifies who runs an event.
type Organizer struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Event is the catalog record pulled from the upstream events API.
// Price is kept as a string because the upstream mixes numeric strings
// with placeholders like "TBD".
type Event struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Tags          []string  `json:"tags"`
	Location      string    `json:"location"`
	CreatedAt     string    `json:"createdAt"`
	ImageURL      string    `json:"imageUrl"`
	StartDateTime string    `json:"startDateTime"`
	EndDateTime   string    `json:"endDateTime"`
	Price         string    `json:"price"`
	IsFree        bool      `json:"isFree"`
	URL           string    `json:"url"`
	Category      Category  `json:"category"`
	Organizer     Organizer `json:"organizer"`
	OwnerID       string    `json:"user_id,omitempty"`
}

// OrganizerName returns the organizer's full name, trimmed of the extra
// space when a name part is missing.
func (e Event) OrganizerName() string {
	switch {
	case e.Organizer.FirstName == "":
		return e.Organizer.LastName
	case e.Organizer.LastName == "":
		return e.Organizer.FirstName
	default:
		return e.Organizer.FirstName + " " + e.Organizer.LastName
	}
}

// Scope returns the ownership partition the event is indexed under.
func (e Event) Scope() string {
	if e.OwnerID == "" {
		return ScopeGlobal
	}
	return e.OwnerID
}

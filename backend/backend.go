// Package backend declares the abstract data-access capability the
// orchestration core queries: identity, schedule, attendee, business and
// organization lookups. Implementations live in sub-packages (sqlite) or in
// test fakes; all operations take a context and report not-found as a nil
// record with a nil error.
package backend

import "context"

// Identity is a resolved user/account record used to seed a conversation
// context and to answer identity pass-through reads.
type Identity struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	RegistrationID    string `json:"registration_id,omitempty"`
	OrganizationID    string `json:"organization_id,omitempty"`
	IsAttendee        bool   `json:"is_conference_attendee"`
	ConferenceName    string `json:"conference_name,omitempty"`
	Location          string `json:"location,omitempty"`
	ConferencePackage string `json:"conference_package,omitempty"`
	PrimaryStream     string `json:"primary_stream,omitempty"`
	SecondaryStream   string `json:"secondary_stream,omitempty"`
	Company           string `json:"company,omitempty"`
}

// ScheduleFilter narrows a conference-session query. Zero-valued fields are
// ignored; an all-zero filter returns every session.
type ScheduleFilter struct {
	Speaker string
	Topic   string
	Room    string
	Track   string
	Date    string // YYYY-MM-DD
}

// IsZero reports whether no filter criteria are set.
func (f ScheduleFilter) IsZero() bool {
	return f == ScheduleFilter{}
}

// ConferenceSession is one scheduled talk. Start and end times are RFC 3339
// timestamps as stored by the data layer.
type ConferenceSession struct {
	ID          string `json:"id"`
	Topic       string `json:"topic"`
	Speaker     string `json:"speaker_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Room        string `json:"conference_room_name"`
	Track       string `json:"track_name"`
	Date        string `json:"conference_date"`
	Description string `json:"description,omitempty"`
}

// AttendeeFilter narrows an attendee search. A zero Limit means the
// implementation default.
type AttendeeFilter struct {
	Name     string
	Location string
	Limit    int
}

// Attendee is one conference participant profile.
type Attendee struct {
	ID                string `json:"id"`
	Name              string `json:"user_name"`
	Company           string `json:"company,omitempty"`
	Location          string `json:"location,omitempty"`
	PrimaryStream     string `json:"primary_stream,omitempty"`
	SecondaryStream   string `json:"secondary_stream,omitempty"`
	ConferencePackage string `json:"conference_package,omitempty"`
}

// BusinessFilter narrows a business search. Sector and Location may both be
// set; zero-valued fields are ignored.
type BusinessFilter struct {
	Query    string
	Sector   string
	Location string
}

// BusinessDetails are the registration fields of one listed business.
type BusinessDetails struct {
	CompanyName        string `json:"company_name"`
	IndustrySector     string `json:"industry_sector"`
	SubSector          string `json:"sub_sector"`
	Location           string `json:"location"`
	PositionTitle      string `json:"position_title"`
	LegalStructure     string `json:"legal_structure"`
	EstablishmentYear  string `json:"establishment_year"`
	ProductsOrServices string `json:"products_or_services"`
	BriefDescription   string `json:"brief_description"`
	Website            string `json:"website,omitempty"`
}

// Business is one directory entry owned by a user.
type Business struct {
	ID      string          `json:"id"`
	UserID  string          `json:"user_id"`
	Details BusinessDetails `json:"details"`
}

// Organization is a looked-up organization record.
type Organization struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Details map[string]string `json:"details,omitempty"`
}

// DataAccess is the asynchronous data-access capability the orchestration
// core dispatches against. Every operation may fail with a generic fault;
// the dispatch layer treats all faults identically and never lets them
// propagate to the orchestrator. Lookups that find nothing return a nil
// record and a nil error.
type DataAccess interface {
	LookupIdentity(ctx context.Context, identifier string) (*Identity, error)
	QuerySessions(ctx context.Context, f ScheduleFilter) ([]ConferenceSession, error)
	SearchAttendees(ctx context.Context, f AttendeeFilter) ([]Attendee, error)
	SearchBusinesses(ctx context.Context, f BusinessFilter) ([]Business, error)
	UserBusinesses(ctx context.Context, userID string) ([]Business, error)
	AddBusiness(ctx context.Context, userID string, details BusinessDetails) (bool, error)
	Organization(ctx context.Context, id string) (*Organization, error)
}

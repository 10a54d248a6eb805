// Package testutil provides a configurable in-memory DataAccess fake with
// call recording for dispatch and engine tests.
package testutil

import (
	"context"
	"sync"

	"github.com/confmesh/confmesh/backend"
)

// StubBackend implements backend.DataAccess with canned return values and
// records the filters it was called with. The zero value returns empty
// results for every operation.
type StubBackend struct {
	mu sync.Mutex

	Identity    *backend.Identity
	Sessions    []backend.ConferenceSession
	Attendees   []backend.Attendee
	Businesses  []backend.Business
	Owned       []backend.Business
	Org         *backend.Organization
	AddAccepted bool
	Err         error

	IdentityCalls []string
	SessionCalls  []backend.ScheduleFilter
	AttendeeCalls []backend.AttendeeFilter
	BusinessCalls []backend.BusinessFilter
	OwnedCalls    []string
	AddCalls      []AddBusinessCall
	OrgCalls      []string
}

// AddBusinessCall captures one AddBusiness invocation.
type AddBusinessCall struct {
	UserID  string
	Details backend.BusinessDetails
}

var _ backend.DataAccess = (*StubBackend)(nil)

func (s *StubBackend) LookupIdentity(_ context.Context, identifier string) (*backend.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IdentityCalls = append(s.IdentityCalls, identifier)
	return s.Identity, s.Err
}

func (s *StubBackend) QuerySessions(_ context.Context, f backend.ScheduleFilter) ([]backend.ConferenceSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SessionCalls = append(s.SessionCalls, f)
	return s.Sessions, s.Err
}

func (s *StubBackend) SearchAttendees(_ context.Context, f backend.AttendeeFilter) ([]backend.Attendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AttendeeCalls = append(s.AttendeeCalls, f)
	return s.Attendees, s.Err
}

func (s *StubBackend) SearchBusinesses(_ context.Context, f backend.BusinessFilter) ([]backend.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BusinessCalls = append(s.BusinessCalls, f)
	return s.Businesses, s.Err
}

func (s *StubBackend) UserBusinesses(_ context.Context, userID string) ([]backend.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OwnedCalls = append(s.OwnedCalls, userID)
	return s.Owned, s.Err
}

func (s *StubBackend) AddBusiness(_ context.Context, userID string, details backend.BusinessDetails) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AddCalls = append(s.AddCalls, AddBusinessCall{UserID: userID, Details: details})
	return s.AddAccepted, s.Err
}

func (s *StubBackend) Organization(_ context.Context, id string) (*backend.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OrgCalls = append(s.OrgCalls, id)
	return s.Org, s.Err
}

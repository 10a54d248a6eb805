package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultConferenceName is used when no identity record supplies one.
const DefaultConferenceName = "Business Conference 2025"

// ConversationContext is the mutable per-session record shared by all agents.
// It is populated once at session creation from a looked-up identity record
// (when an account reference is supplied) and is otherwise only read.
//
// Invariant: identifier fields that may arrive as numbers from the data layer
// (account number, registration id) are normalized to text via CoerceText
// before being stored or compared.
type ConversationContext struct {
	DisplayName       string `json:"display_name,omitempty"`
	CustomerID        string `json:"customer_id,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	CustomerEmail     string `json:"customer_email,omitempty"`
	OrganizationID    string `json:"organization_id,omitempty"`
	IsAttendee        bool   `json:"is_attendee"`
	ConferenceName    string `json:"conference_name,omitempty"`
	RegistrationID    string `json:"registration_id,omitempty"`
	ConferencePackage string `json:"conference_package,omitempty"`
	PrimaryStream     string `json:"primary_stream,omitempty"`
	SecondaryStream   string `json:"secondary_stream,omitempty"`
	Location          string `json:"location,omitempty"`
	Company           string `json:"company,omitempty"`

	// Free-form extension maps for profile data that has no dedicated field.
	SocialLinks map[string]string `json:"social_links,omitempty"`
	ContactInfo map[string]string `json:"contact_info,omitempty"`
}

// NewConversationContext returns the default context assigned to a freshly
// created session.
func NewConversationContext() ConversationContext {
	return ConversationContext{
		IsAttendee:     true,
		ConferenceName: DefaultConferenceName,
		SocialLinks:    map[string]string{},
		ContactInfo:    map[string]string{},
	}
}

// Clone returns a deep copy safe for independent mutation.
func (c ConversationContext) Clone() ConversationContext {
	clone := c
	clone.SocialLinks = make(map[string]string, len(c.SocialLinks))
	for k, v := range c.SocialLinks {
		clone.SocialLinks[k] = v
	}
	clone.ContactInfo = make(map[string]string, len(c.ContactInfo))
	for k, v := range c.ContactInfo {
		clone.ContactInfo[k] = v
	}
	return clone
}

// CoerceText normalizes a value that may arrive as a number from the data
// layer (JSON detail blobs decode integers as json.Number or float64) into
// its textual form. Nil yields the empty string.
func CoerceText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

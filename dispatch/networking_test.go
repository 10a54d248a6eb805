package dispatch

import (
	"context"
	"strings"
	"testing"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/core"
	"github.com/confmesh/confmesh/internal/testutil"
	"github.com/confmesh/confmesh/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullForm = `Here are my business registration details:
Company Name: Acme Robotics
Industry Sector: Technology
Sub-sector: Automation
Location: Mumbai
Position Title: Founder
Legal Structure: Private Limited
Establishment Year: 2019
Products or Services: Warehouse robots
Brief Description: Robotics for logistics.
Website: https://acme-robotics.example`

func networkingContext() *core.ConversationContext {
	convCtx := core.NewConversationContext()
	convCtx.CustomerID = "user-1"
	convCtx.OrganizationID = "org-1"
	return &convCtx
}

func anonymousContext() *core.ConversationContext {
	convCtx := core.NewConversationContext()
	return &convCtx
}

func TestAddBusinessRequestReturnsFormSentinel(t *testing.T) {
	stub := &testutil.StubBackend{}
	d := New(stub, nil)

	for _, message := range []string{
		"I want to add my business",
		"how do I register my business?",
		"add a business to the directory",
	} {
		res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), message)
		assert.Equal(t, FormDisplaySentinel, res.Reply, message)
		assert.Equal(t, registry.ToolDisplayBusinessForm, res.Tool, message)
	}
	assert.Empty(t, stub.AddCalls, "a form request must not hit the backend")
}

func TestFormSubmissionAddsBusiness(t *testing.T) {
	stub := &testutil.StubBackend{AddAccepted: true}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), fullForm)

	assert.Equal(t, "Successfully added business 'Acme Robotics' to your profile. The business is now listed in the business directory and available for networking.", res.Reply)
	assert.Equal(t, registry.ToolAddBusiness, res.Tool)

	require.Len(t, stub.AddCalls, 1)
	call := stub.AddCalls[0]
	assert.Equal(t, "user-1", call.UserID)
	assert.Equal(t, backend.BusinessDetails{
		CompanyName:        "Acme Robotics",
		IndustrySector:     "Technology",
		SubSector:          "Automation",
		Location:           "Mumbai",
		PositionTitle:      "Founder",
		LegalStructure:     "Private Limited",
		EstablishmentYear:  "2019",
		ProductsOrServices: "Warehouse robots",
		BriefDescription:   "Robotics for logistics.",
		Website:            "https://acme-robotics.example",
	}, call.Details)
}

func TestFormSubmissionWithEightFieldsStillAdds(t *testing.T) {
	lines := strings.Split(fullForm, "\n")
	// Drop website and brief description, leaving eight fields.
	form := strings.Join(lines[:len(lines)-2], "\n")

	stub := &testutil.StubBackend{AddAccepted: true}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), form)

	assert.Contains(t, res.Reply, "Successfully added business 'Acme Robotics'")
	require.Len(t, stub.AddCalls, 1)
	assert.Empty(t, stub.AddCalls[0].Details.Website)
}

func TestIncompleteFormFallsThrough(t *testing.T) {
	form := "business registration details:\nCompany Name: Acme Robotics\nLocation: Mumbai"

	stub := &testutil.StubBackend{}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), form)

	assert.Empty(t, stub.AddCalls)
	// "business" still matches the directory-search rule.
	assert.Equal(t, registry.ToolSearchBusinesses, res.Tool)
}

func TestFormSubmissionWithoutUserContext(t *testing.T) {
	stub := &testutil.StubBackend{AddAccepted: true}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, anonymousContext(), fullForm)

	assert.Equal(t, "Unable to add business: No user context available.", res.Reply)
	assert.Empty(t, stub.AddCalls)
}

func TestFormSubmissionRejectedByBackend(t *testing.T) {
	stub := &testutil.StubBackend{AddAccepted: false}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), fullForm)

	assert.Equal(t, "Failed to add business 'Acme Robotics'. Please try again or contact support.", res.Reply)
}

func TestMyBusinessListsOwnEntries(t *testing.T) {
	stub := &testutil.StubBackend{
		Owned: []backend.Business{{
			ID:     "b1",
			UserID: "user-1",
			Details: backend.BusinessDetails{
				CompanyName:    "Acme Robotics",
				IndustrySector: "Technology",
				Location:       "Mumbai",
			},
		}},
	}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "show my business listings")

	assert.Equal(t, registry.ToolGetUserBusinesses, res.Tool)
	assert.Contains(t, res.Reply, "Found 1 business(es) for the current user:\n\n**Acme Robotics**\n")
	assert.Contains(t, res.Reply, "Industry: Technology\n")
	require.Len(t, stub.OwnedCalls, 1)
	assert.Equal(t, "user-1", stub.OwnedCalls[0])
}

func TestMyBusinessWithoutUserContext(t *testing.T) {
	d := New(&testutil.StubBackend{}, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, anonymousContext(), "my business")

	assert.Equal(t, "No user specified and no current user context available.", res.Reply)
}

func TestMyBusinessEmpty(t *testing.T) {
	d := New(&testutil.StubBackend{}, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "my business")

	assert.Equal(t, "No businesses found for the current user.", res.Reply)
}

func TestOrganizationLookup(t *testing.T) {
	stub := &testutil.StubBackend{
		Org: &backend.Organization{
			ID:   "org-1",
			Name: "TechCorp",
			Details: map[string]string{
				"contact_email": "info@techcorp.example",
				"address":       "Bandra, Mumbai",
			},
		},
	}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "tell me about my organization")

	assert.Equal(t, registry.ToolGetOrganizationInfo, res.Tool)
	want := "**Organization Information**\n\n" +
		"Name: TechCorp\n" +
		"Address: Bandra, Mumbai\n" +
		"Contact Email: info@techcorp.example\n"
	assert.Equal(t, want, res.Reply)
}

func TestOrganizationNotFound(t *testing.T) {
	d := New(&testutil.StubBackend{}, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "my organization")

	assert.Equal(t, "No organization found with ID 'org-1'.", res.Reply)
}

func TestBusinessSearchFilters(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    backend.BusinessFilter
	}{
		{"sector keyword", "find healthcare businesses", backend.BusinessFilter{Sector: "Healthcare"}},
		{"it needs a word boundary", "show me IT companies", backend.BusinessFilter{Sector: "Technology"}},
		{"no sector from embedded it", "visit some companies", backend.BusinessFilter{}},
		{"city keyword", "businesses in Chennai", backend.BusinessFilter{Location: "Chennai"}},
		{"sector and city combine", "finance companies in Delhi", backend.BusinessFilter{Sector: "Finance", Location: "Delhi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &testutil.StubBackend{}
			d := New(stub, nil)

			res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), tt.message)

			assert.Equal(t, registry.ToolSearchBusinesses, res.Tool)
			require.Len(t, stub.BusinessCalls, 1)
			assert.Equal(t, tt.want, stub.BusinessCalls[0])
		})
	}
}

func TestBusinessSearchEmpty(t *testing.T) {
	d := New(&testutil.StubBackend{}, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "find healthcare businesses")

	assert.Equal(t, "No businesses found for sector 'Healthcare'.", res.Reply)
}

func TestAttendeeSearchEmpty(t *testing.T) {
	d := New(&testutil.StubBackend{}, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "find attendees from Chennai")
	assert.Equal(t, "No attendees found from 'Chennai'.", res.Reply)

	res = d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "show me attendees")
	assert.Equal(t, "No attendees found in the conference.", res.Reply)
}

func TestAttendeeSearchLimits(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    backend.AttendeeFilter
	}{
		{"default limit", "find attendees from Chennai", backend.AttendeeFilter{Location: "Chennai", Limit: 10}},
		{"all raises the limit", "show me all attendees", backend.AttendeeFilter{Limit: 50}},
		{"embedded all keeps the default", "find tall people", backend.AttendeeFilter{Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &testutil.StubBackend{}
			d := New(stub, nil)

			res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), tt.message)

			assert.Equal(t, registry.ToolSearchAttendees, res.Tool)
			require.Len(t, stub.AttendeeCalls, 1)
			assert.Equal(t, tt.want, stub.AttendeeCalls[0])
		})
	}
}

func TestAttendeeFormatting(t *testing.T) {
	stub := &testutil.StubBackend{
		Attendees: []backend.Attendee{{
			Name:              "Ravi Patel",
			Company:           "DataWorks",
			Location:          "Bangalore",
			PrimaryStream:     "Data",
			ConferencePackage: "Premium",
		}},
	}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "find attendees")

	want := "Found 1 attendee(s):\n\n" +
		"**Ravi Patel**\n" +
		"Company: DataWorks\n" +
		"Location: Bangalore\n" +
		"Primary Stream: Data\n" +
		"Conference Package: Premium\n\n"
	assert.Equal(t, want, res.Reply)
}

func TestNetworkingOverviewFallback(t *testing.T) {
	d := New(&testutil.StubBackend{}, nil)

	res := d.Dispatch(context.Background(), core.AgentNetworking, networkingContext(), "can you help me connect?")

	assert.Contains(t, res.Reply, "I can help you with networking and business connections.")
	assert.Empty(t, res.Tool)
}

func TestTriageOverviewUsesConferenceName(t *testing.T) {
	d := New(&testutil.StubBackend{}, nil)

	res := d.Dispatch(context.Background(), core.AgentTriage, anonymousContext(), "hello")

	assert.Contains(t, res.Reply, "I'm your conference assistant for Business Conference 2025.")
	assert.Empty(t, res.Tool)
}

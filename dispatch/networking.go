package dispatch

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/core"
	"github.com/confmesh/confmesh/registry"
)

// Phrases that request the business registration form. Checked before the
// generic "my business" listing rule so "I want to add my business" opens
// the form instead of listing existing entries.
var addBusinessPhrases = []string{
	"add my business", "register my business",
	"add a business", "register a business",
	"add business", "register business",
}

var businessTerms = []string{"business", "company", "companies", "industry", "sector"}

var attendeeTerms = []string{"attendee", "people", "participant", "delegate"}

var cityNames = []struct {
	keyword string
	city    string
}{
	{"mumbai", "Mumbai"},
	{"chennai", "Chennai"},
	{"delhi", "Delhi"},
	{"bangalore", "Bangalore"},
}

// sectorKeywords maps canonical sector names to the keywords that select
// them. "it" is handled separately with a word-boundary pattern since as a
// substring it matches far too much.
var sectorKeywords = []struct {
	sector   string
	keywords []string
}{
	{"Healthcare", []string{"healthcare", "health"}},
	{"Technology", []string{"technology", "tech", "software"}},
	{"Finance", []string{"finance", "financial", "banking"}},
	{"Manufacturing", []string{"manufacturing", "manufacturer"}},
}

var itPattern = regexp.MustCompile(`\bit\b`)

var allPattern = regexp.MustCompile(`\ball\b`)

// networking resolves a networking-agent message against the ordered rule
// set: form submission, form request, own listings, organization lookup,
// business search, attendee search, then the capability overview.
func (d *Dispatcher) networking(ctx context.Context, convCtx *core.ConversationContext, message string) Result {
	lowered := strings.ToLower(message)

	if strings.Contains(lowered, core.FormSubmissionMarker) {
		details, fields := parseBusinessForm(message)
		if fields >= minFormFields {
			return d.addBusiness(ctx, convCtx, details)
		}
		// An incomplete submission falls through to the remaining rules.
	}

	if containsAny(lowered, addBusinessPhrases) {
		return Result{Reply: FormDisplaySentinel, Tool: registry.ToolDisplayBusinessForm}
	}

	if strings.Contains(lowered, "my business") {
		return d.userBusinesses(ctx, convCtx)
	}

	if strings.Contains(lowered, "organization") {
		return d.organization(ctx, convCtx)
	}

	if containsAny(lowered, businessTerms) {
		return d.searchBusinesses(ctx, lowered)
	}

	if containsAny(lowered, attendeeTerms) {
		return d.searchAttendees(ctx, lowered)
	}

	return Result{Reply: networkingOverview()}
}

func (d *Dispatcher) addBusiness(ctx context.Context, convCtx *core.ConversationContext, details backend.BusinessDetails) Result {
	result := Result{Tool: registry.ToolAddBusiness}

	if convCtx == nil || convCtx.CustomerID == "" {
		result.Reply = "Unable to add business: No user context available."
		return result
	}

	added, err := d.data.AddBusiness(ctx, convCtx.CustomerID, details)
	if err != nil {
		d.logger.Error("dispatch.networking.add_business_failed", "error", err.Error())
		result.Reply = fmt.Sprintf("Failed to add business '%s'. Please try again or contact support.", details.CompanyName)
		return result
	}
	if !added {
		result.Reply = fmt.Sprintf("Failed to add business '%s'. Please try again or contact support.", details.CompanyName)
		return result
	}

	result.Reply = fmt.Sprintf("Successfully added business '%s' to your profile. The business is now listed in the business directory and available for networking.", details.CompanyName)
	return result
}

func (d *Dispatcher) userBusinesses(ctx context.Context, convCtx *core.ConversationContext) Result {
	result := Result{Tool: registry.ToolGetUserBusinesses}

	if convCtx == nil || convCtx.CustomerID == "" {
		result.Reply = "No user specified and no current user context available."
		return result
	}

	businesses, err := d.data.UserBusinesses(ctx, convCtx.CustomerID)
	if err != nil {
		d.logger.Error("dispatch.networking.user_businesses_failed", "error", err.Error())
		result.Reply = "Sorry, I couldn't retrieve your businesses right now. Please try again."
		return result
	}
	if len(businesses) == 0 {
		result.Reply = "No businesses found for the current user."
		return result
	}

	result.Reply = formatOwnedBusinesses(businesses)
	return result
}

func (d *Dispatcher) organization(ctx context.Context, convCtx *core.ConversationContext) Result {
	result := Result{Tool: registry.ToolGetOrganizationInfo}

	if convCtx == nil || convCtx.OrganizationID == "" {
		result.Reply = "No organization specified and no current organization context available."
		return result
	}

	org, err := d.data.Organization(ctx, convCtx.OrganizationID)
	if err != nil {
		d.logger.Error("dispatch.networking.organization_failed", "error", err.Error())
		result.Reply = "Sorry, I couldn't retrieve the organization information right now. Please try again."
		return result
	}
	if org == nil {
		result.Reply = fmt.Sprintf("No organization found with ID '%s'.", convCtx.OrganizationID)
		return result
	}

	result.Reply = formatOrganization(org)
	return result
}

func (d *Dispatcher) searchBusinesses(ctx context.Context, lowered string) Result {
	result := Result{Tool: registry.ToolSearchBusinesses}

	filter := backend.BusinessFilter{
		Sector:   detectSector(lowered),
		Location: detectCity(lowered),
	}

	businesses, err := d.data.SearchBusinesses(ctx, filter)
	if err != nil {
		d.logger.Error("dispatch.networking.search_businesses_failed", "error", err.Error())
		result.Reply = "Sorry, I couldn't search the business directory right now. Please try again."
		return result
	}
	if len(businesses) == 0 {
		result.Reply = emptyBusinessReply(filter)
		return result
	}

	result.Reply = formatBusinesses(businesses)
	return result
}

func emptyBusinessReply(f backend.BusinessFilter) string {
	var filters []string
	if f.Query != "" {
		filters = append(filters, fmt.Sprintf("query '%s'", f.Query))
	}
	if f.Sector != "" {
		filters = append(filters, fmt.Sprintf("sector '%s'", f.Sector))
	}
	if f.Location != "" {
		filters = append(filters, fmt.Sprintf("location '%s'", f.Location))
	}

	criteria := "your criteria"
	if len(filters) > 0 {
		criteria = strings.Join(filters, " and ")
	}
	return fmt.Sprintf("No businesses found for %s.", criteria)
}

func (d *Dispatcher) searchAttendees(ctx context.Context, lowered string) Result {
	result := Result{Tool: registry.ToolSearchAttendees}

	filter := backend.AttendeeFilter{Location: detectCity(lowered), Limit: 10}
	if allPattern.MatchString(lowered) {
		filter.Limit = 50
	}

	attendees, err := d.data.SearchAttendees(ctx, filter)
	if err != nil {
		d.logger.Error("dispatch.networking.search_attendees_failed", "error", err.Error())
		result.Reply = "Sorry, I couldn't search the attendee directory right now. Please try again."
		return result
	}
	if len(attendees) == 0 {
		scope := "in the conference"
		if filter.Location != "" {
			scope = fmt.Sprintf("from '%s'", filter.Location)
		}
		result.Reply = fmt.Sprintf("No attendees found %s.", scope)
		return result
	}

	result.Reply = formatAttendees(attendees)
	return result
}

func detectSector(lowered string) string {
	for _, entry := range sectorKeywords {
		if containsAny(lowered, entry.keywords) {
			return entry.sector
		}
	}
	if itPattern.MatchString(lowered) {
		return "Technology"
	}
	return ""
}

func detectCity(lowered string) string {
	for _, entry := range cityNames {
		if strings.Contains(lowered, entry.keyword) {
			return entry.city
		}
	}
	return ""
}

// formatBusinesses renders directory search results.
func formatBusinesses(businesses []backend.Business) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d business(es):\n\n", len(businesses))

	for _, biz := range businesses {
		fmt.Fprintf(&b, "**%s**\n", companyName(biz.Details))
		if biz.Details.IndustrySector != "" {
			fmt.Fprintf(&b, "Industry: %s\n", biz.Details.IndustrySector)
		}
		if biz.Details.SubSector != "" {
			fmt.Fprintf(&b, "Sub-sector: %s\n", biz.Details.SubSector)
		}
		if biz.Details.Location != "" {
			fmt.Fprintf(&b, "Location: %s\n", biz.Details.Location)
		}
		if biz.Details.BriefDescription != "" {
			fmt.Fprintf(&b, "Description: %s\n", biz.Details.BriefDescription)
		}
		if biz.Details.ProductsOrServices != "" {
			fmt.Fprintf(&b, "Products/Services: %s\n", biz.Details.ProductsOrServices)
		}
		if biz.Details.Website != "" {
			fmt.Fprintf(&b, "Website: %s\n", biz.Details.Website)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatOwnedBusinesses renders the caller's own listings; unlike the
// directory view it shows the position held instead of products/services.
func formatOwnedBusinesses(businesses []backend.Business) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d business(es) for the current user:\n\n", len(businesses))

	for _, biz := range businesses {
		fmt.Fprintf(&b, "**%s**\n", companyName(biz.Details))
		if biz.Details.IndustrySector != "" {
			fmt.Fprintf(&b, "Industry: %s\n", biz.Details.IndustrySector)
		}
		if biz.Details.SubSector != "" {
			fmt.Fprintf(&b, "Sub-sector: %s\n", biz.Details.SubSector)
		}
		if biz.Details.Location != "" {
			fmt.Fprintf(&b, "Location: %s\n", biz.Details.Location)
		}
		if biz.Details.PositionTitle != "" {
			fmt.Fprintf(&b, "Position: %s\n", biz.Details.PositionTitle)
		}
		if biz.Details.BriefDescription != "" {
			fmt.Fprintf(&b, "Description: %s\n", biz.Details.BriefDescription)
		}
		if biz.Details.Website != "" {
			fmt.Fprintf(&b, "Website: %s\n", biz.Details.Website)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func companyName(d backend.BusinessDetails) string {
	if d.CompanyName == "" {
		return "Unknown Company"
	}
	return d.CompanyName
}

func formatAttendees(attendees []backend.Attendee) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d attendee(s):\n\n", len(attendees))

	for _, a := range attendees {
		fmt.Fprintf(&b, "**%s**\n", a.Name)
		if a.Company != "" {
			fmt.Fprintf(&b, "Company: %s\n", a.Company)
		}
		if a.Location != "" {
			fmt.Fprintf(&b, "Location: %s\n", a.Location)
		}
		if a.PrimaryStream != "" {
			fmt.Fprintf(&b, "Primary Stream: %s\n", a.PrimaryStream)
		}
		if a.SecondaryStream != "" {
			fmt.Fprintf(&b, "Secondary Stream: %s\n", a.SecondaryStream)
		}
		if a.ConferencePackage != "" {
			fmt.Fprintf(&b, "Conference Package: %s\n", a.ConferencePackage)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatOrganization renders the organization record; detail keys are sorted
// so the reply is stable across calls.
func formatOrganization(org *backend.Organization) string {
	var b strings.Builder
	b.WriteString("**Organization Information**\n\n")
	name := org.Name
	if name == "" {
		name = "Unknown"
	}
	fmt.Fprintf(&b, "Name: %s\n", name)

	keys := make([]string, 0, len(org.Details))
	for k := range org.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if org.Details[k] == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", titleCaseKey(k), org.Details[k])
	}
	return b.String()
}

// titleCaseKey turns a snake_case detail key into a display label
// ("contact_email" becomes "Contact Email").
func titleCaseKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func networkingOverview() string {
	return "I can help you with networking and business connections. You can ask me to:\n\n" +
		"• Find attendees - \"Find attendees from Chennai\" or \"Show me all attendees\"\n" +
		"• Search businesses - \"Find healthcare businesses\" or \"Show me IT companies\"\n" +
		"• Add your business - \"I want to add my business\"\n" +
		"• Get business info - \"Show me businesses in Mumbai\"\n\n" +
		"What networking assistance do you need?"
}

package dispatch

import (
	"strings"

	"github.com/confmesh/confmesh/backend"
)

// minFormFields is the number of distinct recognized fields a submission
// must carry before it is treated as a complete registration.
const minFormFields = 8

// formFieldKeys maps the label variants accepted on a form line to a
// canonical field name. Labels are matched case-insensitively after
// trimming.
var formFieldKeys = map[string]string{
	"company name":         "company_name",
	"industry sector":      "industry_sector",
	"sub-sector":           "sub_sector",
	"sub sector":           "sub_sector",
	"location":             "location",
	"position title":       "position_title",
	"legal structure":      "legal_structure",
	"establishment year":   "establishment_year",
	"products or services": "products_services",
	"products/services":    "products_services",
	"brief description":    "description",
	"description":          "description",
	"website":              "website",
}

// parseBusinessForm extracts business registration fields from a submitted
// form message. Each line is expected as "Label: value"; unknown labels and
// empty values are ignored. It returns the populated details and the count
// of distinct fields found.
func parseBusinessForm(message string) (backend.BusinessDetails, int) {
	var details backend.BusinessDetails
	seen := make(map[string]bool)

	for _, line := range strings.Split(message, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(label))
		key = strings.TrimLeft(key, "-* \t")
		canonical, known := formFieldKeys[key]
		if !known || seen[canonical] {
			continue
		}
		seen[canonical] = true

		switch canonical {
		case "company_name":
			details.CompanyName = value
		case "industry_sector":
			details.IndustrySector = value
		case "sub_sector":
			details.SubSector = value
		case "location":
			details.Location = value
		case "position_title":
			details.PositionTitle = value
		case "legal_structure":
			details.LegalStructure = value
		case "establishment_year":
			details.EstablishmentYear = value
		case "products_services":
			details.ProductsOrServices = value
		case "description":
			details.BriefDescription = value
		case "website":
			details.Website = value
		}
	}
	return details, len(seen)
}

// Package geocode turns a maps geocoder result into the postal fields stored on an address.
package geocode

import "strings"

// Component mirrors one entry of a geocoder result's address_components.
type Component struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Fields are the plain-text address parts before encryption.
type Fields struct {
	LineOne    string `json:"lineOne"`
	LineTwo    string `json:"lineTwo"`
	City       string `json:"city"`
	County     string `json:"county"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

var lineTwoTypes = []string{"premise", "subpremise", "sublocality", "neighborhood"}

// ParseComponents maps address components onto Fields. Street number and route form line one;
// premise, subpremise, sublocality and neighbourhood are joined into line two.
func ParseComponents(components []Component) Fields {
	var (
		fields       Fields
		streetNumber string
		route        string
		lineTwo      []string
		postalTown   string
	)

	for _, c := range components {
		switch {
		case has(c.Types, "street_number"):
			streetNumber = c.LongName
		case has(c.Types, "route"):
			route = c.LongName
		case hasAny(c.Types, lineTwoTypes):
			lineTwo = append(lineTwo, c.LongName)
		case has(c.Types, "locality"):
			fields.City = c.LongName
		case has(c.Types, "postal_town"):
			postalTown = c.LongName
		case has(c.Types, "administrative_area_level_1"):
			fields.County = c.LongName
		case has(c.Types, "country"):
			fields.Country = c.LongName
		case has(c.Types, "postal_code"):
			fields.PostalCode = c.LongName
		}
	}

	fields.LineOne = strings.TrimSpace(streetNumber + " " + route)
	fields.LineTwo = strings.Join(lineTwo, ", ")
	if fields.City == "" {
		fields.City = postalTown
	}
	return fields
}

func has(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func hasAny(types []string, wants []string) bool {
	for _, w := range wants {
		if has(types, w) {
			return true
		}
	}
	return false
}

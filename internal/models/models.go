package models

// FilterAll is the type filter sentinel meaning no restriction on scheme type.
const FilterAll = "All"

const (
	TypeCentral = "Central"
	TypeState   = "State"
)

// FilterTypes lists the type filters offered by the toolbar, sentinel first.
var FilterTypes = []string{FilterAll, TypeCentral, TypeState}

// EducationLevels are the qualifications the backend ranks, lowest first.
var EducationLevels = []string{"None", "Primary", "10th Pass", "12th Pass", "Graduate", "Post Graduate"}

type UserProfile struct {
	Age        int    `json:"age"`
	Income     int    `json:"income"`
	State      string `json:"state"`
	Occupation string `json:"occupation"`
	Gender     string `json:"gender"`
	Education  string `json:"education"`
}

type Scheme struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	ApplyLink   string   `json:"apply_link"`
	WhyEligible []string `json:"why_eligible,omitempty"`
	WhyNot      []string `json:"why_not,omitempty"`
}

// SchemeResultSet is the outcome of one /check call.
type SchemeResultSet struct {
	Eligible    []Scheme
	NotEligible []Scheme
}

// Total returns the number of schemes across both partitions.
func (r SchemeResultSet) Total() int {
	return len(r.Eligible) + len(r.NotEligible)
}

// CheckResponse is the wire shape of a successful /check response.
type CheckResponse struct {
	EligibleSchemes    []Scheme `json:"eligible_schemes"`
	NotEligibleSchemes []Scheme `json:"not_eligible_schemes"`
}

func (r CheckResponse) ResultSet() SchemeResultSet {
	return SchemeResultSet{
		Eligible:    nonNil(r.EligibleSchemes),
		NotEligible: nonNil(r.NotEligibleSchemes),
	}
}

func nonNil(s []Scheme) []Scheme {
	if s == nil {
		return []Scheme{}
	}
	return s
}

package models

import (
	"strconv"
	"strings"
)

// ProfileFields are the form field names, in display order.
var ProfileFields = []string{"age", "income", "state", "occupation", "gender", "education"}

var validEducation = func() map[string]bool {
	m := make(map[string]bool, len(EducationLevels))
	for _, e := range EducationLevels {
		m[e] = true
	}
	return m
}()

// ParseProfile builds a profile from raw form values keyed by ProfileFields.
// It returns a user-facing message and false when the input is unusable.
func ParseProfile(get func(field string) string) (UserProfile, string, bool) {
	age, err := strconv.Atoi(strings.TrimSpace(get("age")))
	if err != nil {
		return UserProfile{}, "Age must be a whole number", false
	}
	income, err := strconv.Atoi(strings.TrimSpace(get("income")))
	if err != nil {
		return UserProfile{}, "Annual income must be a whole number", false
	}
	p := UserProfile{
		Age:        age,
		Income:     income,
		State:      strings.TrimSpace(get("state")),
		Occupation: strings.TrimSpace(get("occupation")),
		Gender:     strings.TrimSpace(get("gender")),
		Education:  strings.TrimSpace(get("education")),
	}
	if msg, ok := ValidateProfile(p); !ok {
		return UserProfile{}, msg, false
	}
	return p, "", true
}

func ValidateProfile(p UserProfile) (string, bool) {
	if p.Age < 0 || p.Age > 120 {
		return "Age must be between 0 and 120", false
	}
	if p.Income < 0 {
		return "Annual income cannot be negative", false
	}
	if p.State == "" {
		return "State is required", false
	}
	if p.Occupation == "" {
		return "Occupation is required", false
	}
	if p.Gender == "" {
		return "Gender is required", false
	}
	if !validEducation[p.Education] {
		return "Education must be one of: " + strings.Join(EducationLevels, ", "), false
	}
	return "", true
}

package models

import (
	"encoding/json"
	"testing"
)

func formOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseProfile_Valid(t *testing.T) {
	p, msg, ok := ParseProfile(formOf(map[string]string{
		"age": " 34 ", "income": "250000", "state": "Kerala",
		"occupation": "Student", "gender": "Female", "education": "Graduate",
	}))
	if !ok {
		t.Fatalf("expected valid profile, got %q", msg)
	}
	if p.Age != 34 || p.Income != 250000 || p.State != "Kerala" {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestParseProfile_Invalid(t *testing.T) {
	base := map[string]string{
		"age": "34", "income": "250000", "state": "Kerala",
		"occupation": "Student", "gender": "Female", "education": "Graduate",
	}
	cases := map[string]map[string]string{
		"age not a number": {"age": "thirty"},
		"age out of range": {"age": "130"},
		"negative income":  {"income": "-1"},
		"missing state":    {"state": " "},
		"missing gender":   {"gender": ""},
		"unknown level":    {"education": "PhD"},
	}
	for name, override := range cases {
		t.Run(name, func(t *testing.T) {
			form := map[string]string{}
			for k, v := range base {
				form[k] = v
			}
			for k, v := range override {
				form[k] = v
			}
			if _, msg, ok := ParseProfile(formOf(form)); ok || msg == "" {
				t.Errorf("expected rejection with a message, got ok=%v msg=%q", ok, msg)
			}
		})
	}
}

func TestUserProfile_WireKeys(t *testing.T) {
	data, err := json.Marshal(UserProfile{Age: 20, Income: 1, State: "Goa", Occupation: "Other", Gender: "Male", Education: "None"})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	json.Unmarshal(data, &m)
	for _, k := range ProfileFields {
		if _, ok := m[k]; !ok {
			t.Errorf("missing wire key %q in %s", k, data)
		}
	}
	if len(m) != len(ProfileFields) {
		t.Errorf("unexpected extra keys in %s", data)
	}
}

func TestCheckResponse_ResultSetNeverNil(t *testing.T) {
	set := CheckResponse{}.ResultSet()
	if set.Eligible == nil || set.NotEligible == nil {
		t.Error("partitions should be empty slices, not nil")
	}
	if set.Total() != 0 {
		t.Errorf("Total = %d", set.Total())
	}
}

package domain

import (
	"sort"
	"strings"
	"time"
)

// Role is the kind of account a user onboards as.
type Role string

const (
	RoleArtist              Role = "artist"
	RoleCastingProfessional Role = "casting_professional"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleArtist || r == RoleCastingProfessional
}

// Label is the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleArtist:
		return "Artist"
	case RoleCastingProfessional:
		return "Casting Professional"
	}
	return ""
}

// StoredValue is the value written to the role column of the profiles table.
func (r Role) StoredValue() string {
	return strings.ToLower(r.Label())
}

// RoleFromStored parses a stored role column value.
func RoleFromStored(v string) Role {
	switch v {
	case RoleArtist.StoredValue():
		return RoleArtist
	case RoleCastingProfessional.StoredValue():
		return RoleCastingProfessional
	}
	return ""
}

// StringSet is a sorted set of non-empty strings.
type StringSet []string

// NewStringSet trims values, drops empty ones and removes duplicates.
func NewStringSet(values ...string) StringSet {
	seen := make(map[string]struct{}, len(values))
	out := make(StringSet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether v is in the set.
func (s StringSet) Contains(v string) bool {
	i := sort.SearchStrings(s, v)
	return i < len(s) && s[i] == v
}

// Equal reports whether both sets hold the same members.
func (s StringSet) Equal(other StringSet) bool {
	a, b := NewStringSet(s...), NewStringSet(other...)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Picture is an uploaded, not yet encoded, profile picture.
type Picture struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// ProfileData accumulates the answers given during onboarding. Fields of the
// role that was not selected are never read.
type ProfileData struct {
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Role             Role       `json:"role,omitempty"`
	EmploymentStatus *string    `json:"employment_status,omitempty"`

	PrimaryRoles    StringSet `json:"primary_roles,omitempty"`
	CareerStage     *string   `json:"career_stage,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	ExperienceYears *string   `json:"experience_years,omitempty"`
	TravelWilling   bool      `json:"travel_willing"`

	SpecificRole      *string   `json:"specific_role,omitempty"`
	CompanyName       *string   `json:"company_name,omitempty"`
	CastingTypes      StringSet `json:"casting_types,omitempty"`
	CastingRadius     *int      `json:"casting_radius,omitempty"`
	ContactPreference *string   `json:"contact_preference,omitempty"`

	LocationState *string `json:"location_state,omitempty"`
	PostalCode    *string `json:"postal_code,omitempty"`
	LocationCity  *string `json:"location_city,omitempty"`

	ProfilePicture *Picture `json:"profile_picture,omitempty"`
}

// ArtistDetails is the role details screen for artists.
type ArtistDetails struct {
	EmploymentStatus string   `json:"employment_status" validate:"required"`
	PrimaryRoles     []string `json:"primary_roles"     validate:"required,min=1,dive,required"`
	CareerStage      string   `json:"career_stage"      validate:"required"`
	Skills           []string `json:"skills"`
	ExperienceYears  string   `json:"experience_years"  validate:"required"`
	TravelWilling    bool     `json:"travel_willing"`
}

// CastingDetails is the role details screen for casting professionals.
type CastingDetails struct {
	EmploymentStatus  string   `json:"employment_status"  validate:"required"`
	SpecificRole      string   `json:"specific_role"      validate:"required"`
	CompanyName       string   `json:"company_name"       validate:"required"`
	CastingTypes      []string `json:"casting_types"      validate:"required,min=1,dive,required"`
	CastingRadius     *int     `json:"casting_radius"     validate:"omitempty,gte=0"`
	ContactPreference string   `json:"contact_preference"`
}

// Location is the location screen.
type Location struct {
	State      string `json:"location_state" validate:"required"`
	PostalCode string `json:"postal_code"    validate:"required"`
	City       string `json:"location_city"  validate:"required"`
}

// Normalized returns d with text trimmed and blank list entries dropped, so
// that whitespace-only answers fail validation.
func (d ArtistDetails) Normalized() ArtistDetails {
	d.EmploymentStatus = strings.TrimSpace(d.EmploymentStatus)
	d.PrimaryRoles = NewStringSet(d.PrimaryRoles...)
	d.CareerStage = strings.TrimSpace(d.CareerStage)
	d.ExperienceYears = strings.TrimSpace(d.ExperienceYears)
	skills := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	d.Skills = skills
	return d
}

// Normalized returns d with text trimmed and blank list entries dropped.
func (d CastingDetails) Normalized() CastingDetails {
	d.EmploymentStatus = strings.TrimSpace(d.EmploymentStatus)
	d.SpecificRole = strings.TrimSpace(d.SpecificRole)
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.CastingTypes = NewStringSet(d.CastingTypes...)
	d.ContactPreference = strings.TrimSpace(d.ContactPreference)
	return d
}

// Normalized returns l with every field trimmed.
func (l Location) Normalized() Location {
	l.State = strings.TrimSpace(l.State)
	l.PostalCode = strings.TrimSpace(l.PostalCode)
	l.City = strings.TrimSpace(l.City)
	return l
}

// MissingFields lists the required answers p lacks for its selected role,
// named as on the screens that collect them.
func (p ProfileData) MissingFields() []string {
	var missing []string
	need := func(name string, ok bool) {
		if !ok {
			missing = append(missing, name)
		}
	}

	need("date_of_birth", p.DateOfBirth != nil)
	switch p.Role {
	case RoleArtist:
		need("employment_status", p.EmploymentStatus != nil)
		need("primary_roles", len(p.PrimaryRoles) > 0)
		need("career_stage", p.CareerStage != nil)
		need("experience_years", p.ExperienceYears != nil)
	case RoleCastingProfessional:
		need("employment_status", p.EmploymentStatus != nil)
		need("specific_role", p.SpecificRole != nil)
		need("company_name", p.CompanyName != nil)
		need("casting_types", len(p.CastingTypes) > 0)
	default:
		need("role", false)
	}
	need("location_state", p.LocationState != nil)
	need("postal_code", p.PostalCode != nil)
	need("location_city", p.LocationCity != nil)
	return missing
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// WithBirthday returns a copy of p with the date of birth set.
func (p ProfileData) WithBirthday(dob time.Time) ProfileData {
	d := dob.UTC()
	p.DateOfBirth = &d
	return p
}

// WithRole returns a copy of p with the role set.
func (p ProfileData) WithRole(r Role) ProfileData {
	p.Role = r
	return p
}

// WithArtistDetails returns a copy of p with the artist fields set.
func (p ProfileData) WithArtistDetails(d ArtistDetails) ProfileData {
	p.EmploymentStatus = optional(d.EmploymentStatus)
	p.PrimaryRoles = NewStringSet(d.PrimaryRoles...)
	p.CareerStage = optional(d.CareerStage)
	p.Skills = nil
	for _, s := range d.Skills {
		if s = strings.TrimSpace(s); s != "" {
			p.Skills = append(p.Skills, s)
		}
	}
	p.ExperienceYears = optional(d.ExperienceYears)
	p.TravelWilling = d.TravelWilling
	return p
}

// WithCastingDetails returns a copy of p with the casting fields set.
func (p ProfileData) WithCastingDetails(d CastingDetails) ProfileData {
	p.EmploymentStatus = optional(d.EmploymentStatus)
	p.SpecificRole = optional(d.SpecificRole)
	p.CompanyName = optional(d.CompanyName)
	p.CastingTypes = NewStringSet(d.CastingTypes...)
	p.CastingRadius = nil
	if d.CastingRadius != nil {
		r := *d.CastingRadius
		p.CastingRadius = &r
	}
	p.ContactPreference = optional(d.ContactPreference)
	return p
}

// WithLocation returns a copy of p with the location fields set.
func (p ProfileData) WithLocation(l Location) ProfileData {
	p.LocationState = optional(l.State)
	p.PostalCode = optional(l.PostalCode)
	p.LocationCity = optional(l.City)
	return p
}

// WithPicture returns a copy of p with the picture replaced. A nil picture
// clears it.
func (p ProfileData) WithPicture(pic *Picture) ProfileData {
	p.ProfilePicture = pic
	return p
}

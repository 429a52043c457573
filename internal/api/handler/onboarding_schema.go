package handler

import "time"

// --- Request types ---

type birthdayRequest struct {
	// DateOfBirth is either YYYY-MM-DD or RFC 3339.
	DateOfBirth string `json:"date_of_birth" validate:"required"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=artist casting_professional"`
}

type artistDetailsRequest struct {
	EmploymentStatus string   `json:"employment_status"`
	PrimaryRoles     []string `json:"primary_roles"`
	CareerStage      string   `json:"career_stage"`
	Skills           []string `json:"skills"`
	ExperienceYears  string   `json:"experience_years"`
	TravelWilling    bool     `json:"travel_willing"`
}

type castingDetailsRequest struct {
	EmploymentStatus  string   `json:"employment_status"`
	SpecificRole      string   `json:"specific_role"`
	CompanyName       string   `json:"company_name"`
	CastingTypes      []string `json:"casting_types"`
	CastingRadius     *int     `json:"casting_radius"`
	ContactPreference string   `json:"contact_preference"`
}

// roleDetailsRequest carries the block matching the selected role.
type roleDetailsRequest struct {
	Artist  *artistDetailsRequest  `json:"artist,omitempty"`
	Casting *castingDetailsRequest `json:"casting,omitempty"`
}

type locationRequest struct {
	State      string `json:"location_state"`
	PostalCode string `json:"postal_code"`
	City       string `json:"location_city"`
}

// --- Response types ---

type profileDataResponse struct {
	DateOfBirth      *string `json:"date_of_birth,omitempty"`
	Role             string  `json:"role,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`

	PrimaryRoles    []string `json:"primary_roles,omitempty"`
	CareerStage     *string  `json:"career_stage,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears *string  `json:"experience_years,omitempty"`
	TravelWilling   bool     `json:"travel_willing"`

	SpecificRole      *string  `json:"specific_role,omitempty"`
	CompanyName       *string  `json:"company_name,omitempty"`
	CastingTypes      []string `json:"casting_types,omitempty"`
	CastingRadius     *int     `json:"casting_radius,omitempty"`
	ContactPreference *string  `json:"contact_preference,omitempty"`

	LocationState *string `json:"location_state,omitempty"`
	PostalCode    *string `json:"postal_code,omitempty"`
	LocationCity  *string `json:"location_city,omitempty"`

	HasProfilePicture bool `json:"has_profile_picture"`
}

type onboardingLinks struct {
	Self     string `json:"self"`
	Next     string `json:"next,omitempty"`
	Complete string `json:"complete,omitempty"`
}

type onboardingResponse struct {
	Step       string              `json:"step"`
	StepNumber int                 `json:"step_number"`
	TotalSteps int                 `json:"total_steps"`
	Profile    profileDataResponse `json:"profile"`
	StartedAt  time.Time           `json:"started_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	Links      onboardingLinks     `json:"_links"`
}

type uploadWarningResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type submitResponse struct {
	UserID            string                 `json:"user_id"`
	ProfilePictureURL *string                `json:"profile_picture_url"`
	Tables            []string               `json:"tables"`
	Warning           *uploadWarningResponse `json:"warning,omitempty"`
}

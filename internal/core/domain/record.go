package domain

import "time"

// Remote table and bucket names.
const (
	TableProfiles         = "profiles"
	TableArtistProfiles   = "artist_profiles"
	TableCastingProfiles  = "casting_profiles"
	BucketProfilePictures = "profile-pictures"
)

// RoleTable returns the role-specific table for r, or "" when r is unset.
func RoleTable(r Role) string {
	switch r {
	case RoleArtist:
		return TableArtistProfiles
	case RoleCastingProfessional:
		return TableCastingProfiles
	}
	return ""
}

// ProfileRecord is the common profile row keyed by user id.
type ProfileRecord struct {
	ID                string  `json:"id"                  bson:"_id"`
	DateOfBirth       *string `json:"date_of_birth"       bson:"date_of_birth"`
	Role              string  `json:"role"                bson:"role"`
	EmploymentStatus  string  `json:"employment_status"   bson:"employment_status"`
	LocationState     *string `json:"location_state"      bson:"location_state"`
	PostalCode        *string `json:"postal_code"         bson:"postal_code"`
	LocationCity      *string `json:"location_city"       bson:"location_city"`
	ProfilePictureURL *string `json:"profile_picture_url" bson:"profile_picture_url"`
}

// ArtistProfileRecord is the role-specific row for artists.
type ArtistProfileRecord struct {
	ID              string   `json:"id"               bson:"_id"`
	PrimaryRoles    []string `json:"primary_roles"    bson:"primary_roles"`
	CareerStage     *string  `json:"career_stage"     bson:"career_stage"`
	Skills          []string `json:"skills"           bson:"skills"`
	ExperienceYears *string  `json:"experience_years" bson:"experience_years"`
	TravelWilling   bool     `json:"travel_willing"   bson:"travel_willing"`
}

// CastingProfileRecord is the role-specific row for casting professionals.
type CastingProfileRecord struct {
	ID                string   `json:"id"                 bson:"_id"`
	SpecificRole      *string  `json:"specific_role"      bson:"specific_role"`
	CompanyName       *string  `json:"company_name"       bson:"company_name"`
	CastingTypes      []string `json:"casting_types"      bson:"casting_types"`
	CastingRadius     *int     `json:"casting_radius"     bson:"casting_radius"`
	ContactPreference *string  `json:"contact_preference" bson:"contact_preference"`
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}

// NewProfileRecord builds the profiles row for userID.
func NewProfileRecord(userID string, p ProfileData, pictureURL *string) ProfileRecord {
	rec := ProfileRecord{
		ID:                userID,
		Role:              p.Role.StoredValue(),
		EmploymentStatus:  derefOr(p.EmploymentStatus, ""),
		LocationState:     p.LocationState,
		PostalCode:        p.PostalCode,
		LocationCity:      p.LocationCity,
		ProfilePictureURL: pictureURL,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.UTC().Format(time.RFC3339)
		rec.DateOfBirth = &dob
	}
	return rec
}

// NewArtistProfileRecord builds the artist_profiles row for userID.
func NewArtistProfileRecord(userID string, p ProfileData) ArtistProfileRecord {
	return ArtistProfileRecord{
		ID:              userID,
		PrimaryRoles:    nonNil(p.PrimaryRoles),
		CareerStage:     p.CareerStage,
		Skills:          nonNil(p.Skills),
		ExperienceYears: p.ExperienceYears,
		TravelWilling:   p.TravelWilling,
	}
}

// NewCastingProfileRecord builds the casting_profiles row for userID.
func NewCastingProfileRecord(userID string, p ProfileData) CastingProfileRecord {
	return CastingProfileRecord{
		ID:                userID,
		SpecificRole:      p.SpecificRole,
		CompanyName:       p.CompanyName,
		CastingTypes:      nonNil(p.CastingTypes),
		CastingRadius:     p.CastingRadius,
		ContactPreference: p.ContactPreference,
	}
}

// UploadWarning describes a picture upload that failed without failing the
// profile save. Kind is ErrImageCompressionFailed or ErrStorageUploadFailed.
type UploadWarning struct {
	Kind error
	Err  error
}

func (w *UploadWarning) Error() string {
	if w.Err != nil {
		return w.Err.Error()
	}
	return w.Kind.Error()
}

func (w *UploadWarning) Unwrap() []error {
	return []error{w.Kind, w.Err}
}

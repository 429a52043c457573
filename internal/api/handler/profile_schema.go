package handler

import (
	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

type profileResponse struct {
	ID                string   `json:"id"`
	DateOfBirth       *string  `json:"date_of_birth"`
	Role              string   `json:"role"`
	EmploymentStatus  string   `json:"employment_status"`
	LocationState     *string  `json:"location_state"`
	PostalCode        *string  `json:"postal_code"`
	LocationCity      *string  `json:"location_city"`
	ProfilePictureURL *string  `json:"profile_picture_url"`
	Tables            []string `json:"tables"`

	Artist  *domain.ArtistProfileRecord  `json:"artist,omitempty"`
	Casting *domain.CastingProfileRecord `json:"casting,omitempty"`
}

type pictureResponse struct {
	ProfilePictureURL string `json:"profile_picture_url"`
}

func toProfileResponse(v *ports.ProfileView) profileResponse {
	p := v.Profile
	resp := profileResponse{
		ID:                p.ID,
		DateOfBirth:       p.DateOfBirth,
		Role:              p.Role,
		EmploymentStatus:  p.EmploymentStatus,
		LocationState:     p.LocationState,
		PostalCode:        p.PostalCode,
		LocationCity:      p.LocationCity,
		ProfilePictureURL: p.ProfilePictureURL,
		Tables:            []string{domain.TableProfiles},
	}
	if v.Artist != nil {
		resp.Artist = v.Artist
		resp.Tables = append(resp.Tables, domain.TableArtistProfiles)
	}
	if v.Casting != nil {
		resp.Casting = v.Casting
		resp.Tables = append(resp.Tables, domain.TableCastingProfiles)
	}
	return resp
}

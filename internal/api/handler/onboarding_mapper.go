package handler

import (
	"errors"
	"time"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

// stepPaths maps each step to the route that submits it.
var stepPaths = map[domain.Step]string{
	domain.StepBirthday:       "/v1/onboarding/birthday",
	domain.StepRoleSelection:  "/v1/onboarding/role",
	domain.StepRoleDetails:    "/v1/onboarding/details",
	domain.StepLocation:       "/v1/onboarding/location",
	domain.StepProfilePicture: "/v1/onboarding/picture",
}

// --- Request → Service input ---

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toRoleDetailsInput(req roleDetailsRequest) ports.RoleDetailsInput {
	var in ports.RoleDetailsInput
	if a := req.Artist; a != nil {
		in.Artist = &domain.ArtistDetails{
			EmploymentStatus: a.EmploymentStatus,
			PrimaryRoles:     a.PrimaryRoles,
			CareerStage:      a.CareerStage,
			Skills:           a.Skills,
			ExperienceYears:  a.ExperienceYears,
			TravelWilling:    a.TravelWilling,
		}
	}
	if cd := req.Casting; cd != nil {
		in.Casting = &domain.CastingDetails{
			EmploymentStatus:  cd.EmploymentStatus,
			SpecificRole:      cd.SpecificRole,
			CompanyName:       cd.CompanyName,
			CastingTypes:      cd.CastingTypes,
			CastingRadius:     cd.CastingRadius,
			ContactPreference: cd.ContactPreference,
		}
	}
	return in
}

func toLocation(req locationRequest) domain.Location {
	return domain.Location{
		State:      req.State,
		PostalCode: req.PostalCode,
		City:       req.City,
	}
}

// --- Service result → HTTP response ---

func toOnboardingResponse(c *domain.Coordinator) onboardingResponse {
	links := onboardingLinks{Self: "/v1/onboarding", Next: stepPaths[c.Step]}
	if c.Step.Terminal() {
		links.Complete = "/v1/onboarding/complete"
	}
	return onboardingResponse{
		Step:       string(c.Step),
		StepNumber: c.Step.Index() + 1,
		TotalSteps: len(domain.Steps()),
		Profile:    toProfileDataResponse(c.Profile),
		StartedAt:  c.StartedAt.UTC(),
		UpdatedAt:  c.UpdatedAt.UTC(),
		Links:      links,
	}
}

func toProfileDataResponse(p domain.ProfileData) profileDataResponse {
	resp := profileDataResponse{
		Role:              string(p.Role),
		EmploymentStatus:  p.EmploymentStatus,
		PrimaryRoles:      p.PrimaryRoles,
		CareerStage:       p.CareerStage,
		Skills:            p.Skills,
		ExperienceYears:   p.ExperienceYears,
		TravelWilling:     p.TravelWilling,
		SpecificRole:      p.SpecificRole,
		CompanyName:       p.CompanyName,
		CastingTypes:      p.CastingTypes,
		CastingRadius:     p.CastingRadius,
		ContactPreference: p.ContactPreference,
		LocationState:     p.LocationState,
		PostalCode:        p.PostalCode,
		LocationCity:      p.LocationCity,
		HasProfilePicture: p.ProfilePicture != nil,
	}
	if p.DateOfBirth != nil {
		d := p.DateOfBirth.UTC().Format(time.DateOnly)
		resp.DateOfBirth = &d
	}
	return resp
}

func toSubmitResponse(r *ports.SubmitResult) submitResponse {
	resp := submitResponse{
		UserID:            r.UserID,
		ProfilePictureURL: r.ProfilePictureURL,
		Tables:            r.Written,
	}
	if w := r.Warning; w != nil {
		kind := "storage_upload_failed"
		if errors.Is(w.Kind, domain.ErrImageCompressionFailed) {
			kind = "image_compression_failed"
		}
		resp.Warning = &uploadWarningResponse{
			Kind:    kind,
			Message: "profile saved without picture",
		}
	}
	return resp
}

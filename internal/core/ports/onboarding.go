package ports

import (
	"context"
	"time"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// OnboardingRepository keeps the in-progress wizard of each user.
type OnboardingRepository interface {
	Save(ctx context.Context, userID string, c *domain.Coordinator) error
	// Load returns domain.ErrOnboardingNotFound when no wizard is in progress.
	Load(ctx context.Context, userID string) (*domain.Coordinator, error)
	Delete(ctx context.Context, userID string) error
}

// BirthdayInput is the birthday screen.
type BirthdayInput struct {
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
}

// RoleDetailsInput is the role details screen. Exactly the block matching the
// selected role is read.
type RoleDetailsInput struct {
	Artist  *domain.ArtistDetails
	Casting *domain.CastingDetails
}

// OnboardingService drives the onboarding wizard of the caller.
type OnboardingService interface {
	Start(ctx context.Context, userID string) (*domain.Coordinator, error)
	Get(ctx context.Context, userID string) (*domain.Coordinator, error)
	SubmitBirthday(ctx context.Context, userID string, in BirthdayInput) (*domain.Coordinator, error)
	SelectRole(ctx context.Context, userID string, role domain.Role) (*domain.Coordinator, error)
	SubmitRoleDetails(ctx context.Context, userID string, in RoleDetailsInput) (*domain.Coordinator, error)
	SubmitLocation(ctx context.Context, userID string, in domain.Location) (*domain.Coordinator, error)
	SubmitProfilePicture(ctx context.Context, userID string, pic domain.Picture) (*domain.Coordinator, error)
	SkipProfilePicture(ctx context.Context, userID string) (*domain.Coordinator, error)
	Complete(ctx context.Context, userID string) (*SubmitResult, error)
}

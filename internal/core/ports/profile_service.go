package ports

import (
	"context"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

// SubmitResult is returned by ProfileService.Submit.
type SubmitResult struct {
	UserID            string
	ProfilePictureURL *string
	// Warning is set when the picture could not be stored; the profile was
	// saved without it.
	Warning *domain.UploadWarning
	// Written lists the tables upserted, in order.
	Written []string
}

// ProfileView is a saved profile with its role-specific record.
type ProfileView struct {
	Profile domain.ProfileRecord
	Artist  *domain.ArtistProfileRecord
	Casting *domain.CastingProfileRecord
}

// ImageEncoder turns an uploaded picture into the stored encoding.
type ImageEncoder interface {
	Encode(pic domain.Picture) (data []byte, contentType, ext string, err error)
}

// ProfileService persists completed onboarding profiles.
type ProfileService interface {
	Submit(ctx context.Context, data domain.ProfileData) (*SubmitResult, error)
	UploadPicture(ctx context.Context, pic domain.Picture) (string, error)
	Get(ctx context.Context) (*ProfileView, error)
}

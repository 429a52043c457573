package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
	"github.com/cinemyst/onboarding-service/internal/pkg/metrics"
)

// ProfileService saves onboarding profiles to the remote store. Each write is
// its own remote call: a failure after the profiles row was written leaves it
// in place.
type ProfileService struct {
	sessions ports.SessionProvider
	storage  ports.ObjectStorage
	tables   ports.TableStore
	encoder  ports.ImageEncoder
	log      zerolog.Logger
}

func NewProfileService(
	sessions ports.SessionProvider,
	storage ports.ObjectStorage,
	tables ports.TableStore,
	encoder ports.ImageEncoder,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		sessions: sessions,
		storage:  storage,
		tables:   tables,
		encoder:  encoder,
		log:      log,
	}
}

// Submit uploads the picture, if any, then upserts the profiles row and the
// row of the selected role. Picture failures are reported in the result's
// Warning; write failures are returned.
func (s *ProfileService) Submit(ctx context.Context, data domain.ProfileData) (*ports.SubmitResult, error) {
	start := time.Now()
	role := string(data.Role)
	if role == "" {
		role = "none"
	}

	// 1. Session.
	session, ok := s.sessions.CurrentSession(ctx)
	if !ok {
		metrics.ProfileSubmissionsTotal.WithLabelValues(role, "session_invalid").Inc()
		return nil, domain.ErrSessionInvalid
	}
	userID := session.UserID
	log := s.log.With().Str("user_id", userID).Str("role", role).Logger()

	result := &ports.SubmitResult{UserID: userID}

	// 2. Picture, non-fatal.
	if data.ProfilePicture != nil {
		url, err := s.storePicture(ctx, userID, *data.ProfilePicture)
		if err != nil {
			warning := toUploadWarning(err)
			log.Warn().Err(err).Msg("profile picture upload failed, continuing without picture")
			metrics.PictureUploadsTotal.WithLabelValues(uploadReason(warning)).Inc()
			result.Warning = warning
		} else {
			metrics.PictureUploadsTotal.WithLabelValues("ok").Inc()
			result.ProfilePictureURL = &url
		}
	}

	// 3. Common profile row.
	profile := domain.NewProfileRecord(userID, data, result.ProfilePictureURL)
	if err := s.upsert(ctx, domain.TableProfiles, userID, profile); err != nil {
		log.Error().Err(err).Msg("profile save failed")
		metrics.ProfileSubmissionsTotal.WithLabelValues(role, "profile_write_failed").Inc()
		return nil, err
	}
	result.Written = append(result.Written, domain.TableProfiles)

	// 4. Role row.
	var roleRecord any
	switch data.Role {
	case domain.RoleArtist:
		roleRecord = domain.NewArtistProfileRecord(userID, data)
	case domain.RoleCastingProfessional:
		roleRecord = domain.NewCastingProfileRecord(userID, data)
	}
	if roleRecord != nil {
		table := domain.RoleTable(data.Role)
		if err := s.upsert(ctx, table, userID, roleRecord); err != nil {
			log.Error().Err(err).Str("table", table).Msg("role profile save failed after profile row was written")
			metrics.ProfileSubmissionsTotal.WithLabelValues(role, "role_write_failed").Inc()
			return nil, err
		}
		result.Written = append(result.Written, table)
	}

	metrics.ProfileSubmissionsTotal.WithLabelValues(role, "ok").Inc()
	metrics.ProfileSubmissionDuration.WithLabelValues(role).Observe(time.Since(start).Seconds())
	log.Info().Strs("tables", result.Written).Bool("picture", result.ProfilePictureURL != nil).Msg("profile saved")

	return result, nil
}

// UploadPicture stores a new profile picture for the caller and returns its
// public URL. Unlike Submit, failures are returned.
func (s *ProfileService) UploadPicture(ctx context.Context, pic domain.Picture) (string, error) {
	session, ok := s.sessions.CurrentSession(ctx)
	if !ok {
		return "", domain.ErrSessionInvalid
	}

	url, err := s.storePicture(ctx, session.UserID, pic)
	if err != nil {
		metrics.PictureUploadsTotal.WithLabelValues(uploadReason(toUploadWarning(err))).Inc()
		return "", err
	}
	metrics.PictureUploadsTotal.WithLabelValues("ok").Inc()

	s.log.Info().Str("user_id", session.UserID).Str("url", url).Msg("profile picture uploaded")
	return url, nil
}

// Get reads back the caller's profile and its role record.
func (s *ProfileService) Get(ctx context.Context) (*ports.ProfileView, error) {
	session, ok := s.sessions.CurrentSession(ctx)
	if !ok {
		return nil, domain.ErrSessionInvalid
	}
	userID := session.UserID

	view := &ports.ProfileView{}
	if err := s.tables.Find(ctx, domain.TableProfiles, userID, &view.Profile); err != nil {
		return nil, err
	}

	switch domain.RoleFromStored(view.Profile.Role) {
	case domain.RoleArtist:
		var rec domain.ArtistProfileRecord
		if err := s.tables.Find(ctx, domain.TableArtistProfiles, userID, &rec); err == nil {
			view.Artist = &rec
		} else if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
	case domain.RoleCastingProfessional:
		var rec domain.CastingProfileRecord
		if err := s.tables.Find(ctx, domain.TableCastingProfiles, userID, &rec); err == nil {
			view.Casting = &rec
		} else if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
	}

	return view, nil
}

// storePicture encodes pic and uploads it under <userID>/profile.<ext>,
// replacing any previous picture.
func (s *ProfileService) storePicture(ctx context.Context, userID string, pic domain.Picture) (string, error) {
	data, contentType, ext, err := s.encoder.Encode(pic)
	if err != nil {
		if !errors.Is(err, domain.ErrImageCompressionFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrImageCompressionFailed, err)
		}
		return "", err
	}

	path := fmt.Sprintf("%s/profile.%s", userID, ext)
	if err := s.storage.Upload(ctx, domain.BucketProfilePictures, path, data, contentType, true); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUploadFailed, err)
	}

	url, err := s.storage.PublicURL(domain.BucketProfilePictures, path)
	if err != nil {
		return "", fmt.Errorf("%w: public url: %v", domain.ErrStorageUploadFailed, err)
	}
	return url, nil
}

func (s *ProfileService) upsert(ctx context.Context, table, id string, record any) error {
	if err := s.tables.Upsert(ctx, table, id, record); err != nil {
		return fmt.Errorf("%w: upsert %s: %v", domain.ErrDatabaseWriteFailed, table, err)
	}
	return nil
}

func toUploadWarning(err error) *domain.UploadWarning {
	kind := domain.ErrStorageUploadFailed
	if errors.Is(err, domain.ErrImageCompressionFailed) {
		kind = domain.ErrImageCompressionFailed
	}
	return &domain.UploadWarning{Kind: kind, Err: err}
}

func uploadReason(w *domain.UploadWarning) string {
	if errors.Is(w.Kind, domain.ErrImageCompressionFailed) {
		return "compression_failed"
	}
	return "upload_failed"
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "fitcloset/internal/errors"
	"fitcloset/internal/model"
	"fitcloset/internal/repository"
)

const (
	defaultPublicLimit = 20
	maxPublicLimit     = 100
)

var (
	// ErrAvatarExists is returned when a user already has an avatar.
	ErrAvatarExists = errors.New("avatar already exists for this user")
	// ErrAvatarNotFound is returned when a user has no avatar, or an avatar id
	// does not exist.
	ErrAvatarNotFound = errors.New("avatar not found")
	// ErrAvatarPrivate is returned when reading a non-public avatar by id.
	ErrAvatarPrivate = errors.New("avatar is not public")
)

// BodyMeasurementsInput carries optional measurement values for setup and
// upsert flows.
type BodyMeasurementsInput struct {
	Chest         *float64
	Waist         *float64
	Hips          *float64
	ShoulderWidth *float64
	Inseam        *float64
	ArmLength     *float64
	NeckSize      *float64
}

func (in BodyMeasurementsInput) patch() model.BodyMeasurementPatch {
	return model.BodyMeasurementPatch{
		Chest:         in.Chest,
		Waist:         in.Waist,
		Hips:          in.Hips,
		ShoulderWidth: in.ShoulderWidth,
		Inseam:        in.Inseam,
		ArmLength:     in.ArmLength,
		NeckSize:      in.NeckSize,
	}
}

func (in BodyMeasurementsInput) row(avatarID uint) *model.BodyMeasurement {
	return &model.BodyMeasurement{
		AvatarID:      avatarID,
		Chest:         in.Chest,
		Waist:         in.Waist,
		Hips:          in.Hips,
		ShoulderWidth: in.ShoulderWidth,
		Inseam:        in.Inseam,
		ArmLength:     in.ArmLength,
		NeckSize:      in.NeckSize,
	}
}

// AvatarSetupInput is the validated shape of the avatar setup flow.
type AvatarSetupInput struct {
	FullName                 string
	Bio                      string
	Age                      int
	Height                   float64
	HeightUnit               string
	Weight                   float64
	WeightUnit               string
	AvatarType               string
	GenericAvatarStyle       string
	BiometricVerified        bool
	MeasurementMode          string
	AutoEstimated            bool
	ShareWithWorld           bool
	CreateAssistant          bool
	CreateGreetingCards      bool
	PublicProfile            bool
	AllowConnections         *bool
	SelectedGreetingTemplate string
	Measurements             *BodyMeasurementsInput
	SelectedGarments         []uint
}

// AvatarProfile is an avatar together with its dependent records.
type AvatarProfile struct {
	Avatar       *model.Avatar
	Measurements *model.BodyMeasurement
	Wardrobe     []model.AvatarGarment
}

// AvatarService handles avatar profile, measurement and wardrobe operations.
type AvatarService interface {
	Setup(ctx context.Context, userID uint, in AvatarSetupInput) (*AvatarProfile, error)
	Profile(ctx context.Context, userID uint) (*AvatarProfile, error)
	UpdateProfile(ctx context.Context, userID uint, patch model.AvatarPatch) (*model.Avatar, error)
	DeleteProfile(ctx context.Context, userID uint) error
	UpsertMeasurements(ctx context.Context, userID uint, in BodyMeasurementsInput) (*model.BodyMeasurement, error)
	AddGarment(ctx context.Context, userID, garmentID uint) (*model.AvatarGarment, error)
	RemoveGarment(ctx context.Context, userID, garmentID uint) error
	Wardrobe(ctx context.Context, userID uint) ([]model.AvatarGarment, error)
	PublicAvatars(ctx context.Context, limit, offset int) ([]model.Avatar, error)
	PublicAvatarByID(ctx context.Context, avatarID uint) (*model.Avatar, *model.BodyMeasurement, error)
}

type avatarService struct {
	avatarRepo      repository.AvatarRepository
	measurementRepo repository.BodyMeasurementRepository
	wardrobeRepo    repository.AvatarGarmentRepository
	tx              repository.TxManager
}

// NewAvatarService creates a new avatar service.
func NewAvatarService(
	avatarRepo repository.AvatarRepository,
	measurementRepo repository.BodyMeasurementRepository,
	wardrobeRepo repository.AvatarGarmentRepository,
	tx repository.TxManager,
) AvatarService {
	return &avatarService{
		avatarRepo:      avatarRepo,
		measurementRepo: measurementRepo,
		wardrobeRepo:    wardrobeRepo,
		tx:              tx,
	}
}

func validateSetup(in AvatarSetupInput) error {
	switch {
	case in.FullName == "":
		return apperrors.Validation("fullName is required")
	case in.Age <= 0:
		return apperrors.Validation("age is required")
	case in.Height <= 0:
		return apperrors.Validation("height is required")
	case in.HeightUnit == "":
		return apperrors.Validation("heightUnit is required")
	case in.Weight <= 0:
		return apperrors.Validation("weight is required")
	case in.WeightUnit == "":
		return apperrors.Validation("weightUnit is required")
	case in.AvatarType == "":
		return apperrors.Validation("avatarType is required")
	case in.MeasurementMode == "":
		return apperrors.Validation("measurementMode is required")
	}

	if in.AvatarType == model.AvatarTypeGeneric && in.GenericAvatarStyle == "" {
		return apperrors.Validation("Generic avatar style is required")
	}
	if in.AvatarType == model.AvatarTypeBiometric && !in.BiometricVerified {
		return apperrors.Validation("Biometric verification is required")
	}
	return nil
}

// Setup creates the avatar with its optional measurement set and initial
// wardrobe in a single transaction. The whole write rolls back on any
// failure. Validation runs before any store mutation; the existing-avatar
// check is check-then-act and its race window is accepted.
func (s *avatarService) Setup(ctx context.Context, userID uint, in AvatarSetupInput) (*AvatarProfile, error) {
	if err := validateSetup(in); err != nil {
		return nil, err
	}

	existing, err := s.avatarRepo.FindByUserID(ctx, userID)
	if err == nil && existing != nil {
		return nil, ErrAvatarExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check avatar existence: %w", err)
	}

	allowConnections := true
	if in.AllowConnections != nil {
		allowConnections = *in.AllowConnections
	}

	avatar := &model.Avatar{
		UserID:                   userID,
		FullName:                 in.FullName,
		Bio:                      in.Bio,
		Age:                      in.Age,
		Height:                   in.Height,
		HeightUnit:               in.HeightUnit,
		Weight:                   in.Weight,
		WeightUnit:               in.WeightUnit,
		AvatarType:               in.AvatarType,
		GenericAvatarStyle:       in.GenericAvatarStyle,
		BiometricVerified:        in.BiometricVerified,
		MeasurementMode:          in.MeasurementMode,
		AutoEstimated:            in.AutoEstimated,
		ShareWithWorld:           in.ShareWithWorld,
		CreateAssistant:          in.CreateAssistant,
		CreateGreetingCards:      in.CreateGreetingCards,
		PublicProfile:            in.PublicProfile,
		AllowConnections:         allowConnections,
		SelectedGreetingTemplate: in.SelectedGreetingTemplate,
	}

	var measurements *model.BodyMeasurement
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, stores repository.AvatarStores) error {
		if err := stores.Avatars.Create(ctx, avatar); err != nil {
			return fmt.Errorf("create avatar: %w", err)
		}
		if in.Measurements != nil {
			measurements = in.Measurements.row(avatar.ID)
			if err := stores.Measurements.Create(ctx, measurements); err != nil {
				return fmt.Errorf("create measurements: %w", err)
			}
		}
		for _, garmentID := range in.SelectedGarments {
			if _, err := stores.Wardrobe.Add(ctx, avatar.ID, garmentID); err != nil {
				return fmt.Errorf("add garment %d: %w", garmentID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AvatarProfile{Avatar: avatar, Measurements: measurements}, nil
}

// Profile returns the caller's avatar with measurements and wardrobe.
func (s *avatarService) Profile(ctx context.Context, userID uint) (*AvatarProfile, error) {
	avatar, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	measurements, err := s.measurementRepo.FindByAvatarID(ctx, avatar.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find measurements: %w", err)
	}

	wardrobe, err := s.wardrobeRepo.ListForAvatar(ctx, avatar.ID)
	if err != nil {
		return nil, fmt.Errorf("list wardrobe: %w", err)
	}

	return &AvatarProfile{Avatar: avatar, Measurements: measurements, Wardrobe: wardrobe}, nil
}

// UpdateProfile applies a partial update to the caller's avatar. An all-nil
// patch returns the avatar unchanged.
func (s *avatarService) UpdateProfile(ctx context.Context, userID uint, patch model.AvatarPatch) (*model.Avatar, error) {
	avatar, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.avatarRepo.Update(ctx, avatar.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	if updated == nil {
		return avatar, nil
	}
	return updated, nil
}

// DeleteProfile removes the caller's avatar. Measurements and wardrobe edges
// go with it via the storage-level cascade.
func (s *avatarService) DeleteProfile(ctx context.Context, userID uint) error {
	avatar, err := s.findOwned(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.avatarRepo.Delete(ctx, avatar.ID); err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}

// UpsertMeasurements updates the caller's measurement set, creating it when
// absent. Updates set only non-nil values; nil never clears a stored field.
func (s *avatarService) UpsertMeasurements(ctx context.Context, userID uint, in BodyMeasurementsInput) (*model.BodyMeasurement, error) {
	avatar, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.measurementRepo.FindByAvatarID(ctx, avatar.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find measurements: %w", err)
	}

	if existing == nil {
		row := in.row(avatar.ID)
		if err := s.measurementRepo.Create(ctx, row); err != nil {
			return nil, fmt.Errorf("create measurements: %w", err)
		}
		return row, nil
	}

	updated, err := s.measurementRepo.Update(ctx, avatar.ID, in.patch())
	if err != nil {
		return nil, fmt.Errorf("update measurements: %w", err)
	}
	if updated == nil {
		return existing, nil
	}
	return updated, nil
}

// AddGarment links a garment into the caller's wardrobe. Repeated adds are
// idempotent.
func (s *avatarService) AddGarment(ctx context.Context, userID, garmentID uint) (*model.AvatarGarment, error) {
	avatar, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	edge, err := s.wardrobeRepo.Add(ctx, avatar.ID, garmentID)
	if err != nil {
		return nil, fmt.Errorf("add garment: %w", err)
	}
	return edge, nil
}

// RemoveGarment unlinks a garment from the caller's wardrobe.
func (s *avatarService) RemoveGarment(ctx context.Context, userID, garmentID uint) error {
	avatar, err := s.findOwned(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.wardrobeRepo.Remove(ctx, avatar.ID, garmentID); err != nil {
		return fmt.Errorf("remove garment: %w", err)
	}
	return nil
}

// Wardrobe lists the caller's wardrobe with joined garment data.
func (s *avatarService) Wardrobe(ctx context.Context, userID uint) ([]model.AvatarGarment, error) {
	avatar, err := s.findOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.wardrobeRepo.ListForAvatar(ctx, avatar.ID)
}

// ClampPublicWindow normalizes a public-listing window: limit defaults to 20
// and is clamped to 100, a negative offset becomes 0. The API echoes the
// effective values back alongside the page.
func ClampPublicWindow(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPublicLimit
	}
	if limit > maxPublicLimit {
		limit = maxPublicLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PublicAvatars returns public avatars newest-first. An offset beyond the
// result count yields an empty list.
func (s *avatarService) PublicAvatars(ctx context.Context, limit, offset int) ([]model.Avatar, error) {
	limit, offset = ClampPublicWindow(limit, offset)
	return s.avatarRepo.ListPublic(ctx, limit, offset)
}

// PublicAvatarByID returns an avatar by id with its measurements, failing
// with ErrAvatarPrivate when the profile is not public.
func (s *avatarService) PublicAvatarByID(ctx context.Context, avatarID uint) (*model.Avatar, *model.BodyMeasurement, error) {
	avatar, err := s.avatarRepo.FindByID(ctx, avatarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAvatarNotFound
		}
		return nil, nil, fmt.Errorf("find avatar: %w", err)
	}
	if !avatar.PublicProfile {
		return nil, nil, ErrAvatarPrivate
	}

	measurements, err := s.measurementRepo.FindByAvatarID(ctx, avatar.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("find measurements: %w", err)
	}
	return avatar, measurements, nil
}

func (s *avatarService) findOwned(ctx context.Context, userID uint) (*model.Avatar, error) {
	avatar, err := s.avatarRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvatarNotFound
		}
		return nil, fmt.Errorf("find avatar: %w", err)
	}
	return avatar, nil
}

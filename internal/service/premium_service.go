package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/repository"
)

// PremiumDuration is what a redeemed code grants, regardless of the code's
// own expiry (that one only bounds when the code may still be redeemed).
const PremiumDuration = 365 * 24 * time.Hour

type PremiumService struct {
	profiles repository.ProfilesRepositoryI
	codes    repository.PremiumCodesRepositoryI
	now      func() time.Time
}

func NewPremiumService(profilesRepo repository.ProfilesRepositoryI, codesRepo repository.PremiumCodesRepositoryI) *PremiumService {
	return NewPremiumServiceWithClock(profilesRepo, codesRepo, time.Now)
}

func NewPremiumServiceWithClock(profilesRepo repository.ProfilesRepositoryI, codesRepo repository.PremiumCodesRepositoryI, clock func() time.Time) *PremiumService {
	if profilesRepo == nil || codesRepo == nil {
		log.Fatal("on premium service provided nil repos")
	}
	return &PremiumService{
		profiles: profilesRepo,
		codes:    codesRepo,
		now:      clock,
	}
}

// NormalizeCode applies the storage form: uppercase, surrounding space trimmed.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Redeem runs the code state machine. Every rejection is a distinct
// sentinel so the client can surface the exact reason. The code is marked
// used via a conditional update before the grant: under concurrent
// redemption of one code exactly one caller wins, the rest get
// ErrCodeAlreadyUsed.
func (serv *PremiumService) Redeem(ctx context.Context, uid uuid.UUID, rawCode string) (*RedeemResult, error) {
	profile, err := serv.profiles.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	now := serv.now()
	if profile.IsPremium && profile.PremiumUntil != nil && profile.PremiumUntil.After(now) {
		return nil, errorvalues.ErrAlreadyPremium
	}
	code, err := serv.codes.GetByCode(ctx, NormalizeCode(rawCode))
	if err != nil {
		if errors.Is(err, errorvalues.ErrCodeNotFound) {
			return nil, errorvalues.ErrCodeNotFound
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if code.IsUsed {
		return nil, errorvalues.ErrCodeAlreadyUsed
	}
	if code.ExpiresAt.Before(now) {
		return nil, errorvalues.ErrCodeExpired
	}
	err = serv.codes.MarkUsed(ctx, code.ID, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCodeAlreadyUsed) {
			return nil, errorvalues.ErrCodeAlreadyUsed
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	until := now.Add(PremiumDuration)
	err = serv.profiles.SetPremium(ctx, uid, until)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return &RedeemResult{
		PremiumUntil: until,
	}, nil
}

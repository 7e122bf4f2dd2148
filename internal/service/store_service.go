package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/repository"
)

// Fixed catalog, matching the in-app store.
var storeItems = []StoreItem{
	{ID: "streak_freeze", Name: "Streak Freeze", Description: "Protect your streak for one day", Price: 50},
	{ID: "xp_boost", Name: "XP Boost", Description: "5 uses of double XP", Price: 100},
	{ID: "premium_avatar", Name: "Premium Avatar", Description: "Exclusive animated avatar", Price: 200},
}

type StoreService struct {
	repo repository.ProfilesRepositoryI
}

func NewStoreService(profilesRepo repository.ProfilesRepositoryI) *StoreService {
	if profilesRepo == nil {
		log.Fatal("on store service provided nil repo")
	}
	return &StoreService{
		repo: profilesRepo,
	}
}

func (serv *StoreService) Items() []StoreItem {
	items := make([]StoreItem, len(storeItems))
	copy(items, storeItems)
	return items
}

// Purchase deducts coins conditionally on the balance covering the price,
// so a concurrent double-spend cannot drive the balance negative. XP is
// never touched here.
func (serv *StoreService) Purchase(ctx context.Context, uid uuid.UUID, itemID string) (*StoreItem, error) {
	var item *StoreItem
	for i := range storeItems {
		if storeItems[i].ID == itemID {
			item = &storeItems[i]
			break
		}
	}
	if item == nil {
		return nil, errorvalues.ErrUnknownItem
	}
	var err error
	if item.ID == "streak_freeze" {
		err = serv.repo.PurchaseFreeze(ctx, uid, item.Price)
	} else {
		err = serv.repo.SpendCoins(ctx, uid, item.Price)
	}
	if err != nil {
		if errors.Is(err, errorvalues.ErrInsufficientCoins) {
			return nil, errorvalues.ErrInsufficientCoins
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	return item, nil
}

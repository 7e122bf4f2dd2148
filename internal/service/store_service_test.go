package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStoreItems(t *testing.T) {
	t.Parallel()
	serv := service.NewStoreService(&profilesRepoMock{})
	items := serv.Items()
	assert.Len(t, items, 3)
	assert.Equal(t, "streak_freeze", items[0].ID)
	assert.Equal(t, 50, items[0].Price)
	// callers get a copy, not the catalog itself
	items[0].Price = 1
	assert.Equal(t, 50, serv.Items()[0].Price)
}

func TestPurchase(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	testCases := []struct {
		Desc        string
		ItemID      string
		Error       error
		WantFreeze  bool
		RepoError   error
		WantedPrice int
	}{
		{
			Desc:        "streak freeze goes through the token path",
			ItemID:      "streak_freeze",
			WantFreeze:  true,
			WantedPrice: 50,
		},
		{
			Desc:        "xp boost is a plain coin spend",
			ItemID:      "xp_boost",
			WantedPrice: 100,
		},
		{
			Desc:   "error unknown item",
			ItemID: "golden_toilet",
			Error:  errorvalues.ErrUnknownItem,
		},
		{
			Desc:        "error insufficient coins",
			ItemID:      "premium_avatar",
			RepoError:   errorvalues.ErrInsufficientCoins,
			Error:       errorvalues.ErrInsufficientCoins,
			WantedPrice: 200,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			froze := false
			spent := false
			repo := &profilesRepoMock{
				purchaseFreeze: func(ctx context.Context, uid uuid.UUID, price int) error {
					assert.Equal(t, tc.WantedPrice, price)
					froze = true
					return tc.RepoError
				},
				spendCoins: func(ctx context.Context, uid uuid.UUID, price int) error {
					assert.Equal(t, tc.WantedPrice, price)
					spent = true
					return tc.RepoError
				},
			}
			serv := service.NewStoreService(repo)
			item, err := serv.Purchase(context.Background(), userID, tc.ItemID)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.ItemID, item.ID)
			assert.Equal(t, tc.WantFreeze, froze)
			assert.Equal(t, !tc.WantFreeze, spent)
		})
	}
}

package repository

import (
	"context"
	"testing"
	"time"

	"foodshare/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testFoodRepository exercises behaviour both backends must share.
func testFoodRepository(t *testing.T, repo FoodRepository) {
	ctx := context.Background()

	bread := newListing("Bread", "a@x.com")
	require.NoError(t, repo.Create(ctx, bread))
	require.False(t, bread.ID.IsZero())

	brioche := newListing("brioche", "c@x.com")
	require.NoError(t, repo.Create(ctx, brioche))

	rice := newListing("Rice (50%_off)", "a@x.com")
	require.NoError(t, repo.Create(ctx, rice))

	t.Run("GetByID returns the stored listing", func(t *testing.T) {
		got, err := repo.GetByID(ctx, bread.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, bread.ID, got.ID)
		assert.Equal(t, "Bread", got.Name())
		assert.Equal(t, model.Donor{Name: "Alice", Email: "a@x.com"}, got.Donor)
		assert.Equal(t, model.FoodStatusAvailable, got.FoodStatus)
		assert.True(t, bread.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, "2 loaves", got.Fields["quantity"])
	})

	t.Run("GetByID unknown returns nil", func(t *testing.T) {
		got, err := repo.GetByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	listTests := []struct {
		name     string
		filter   model.FoodFilter
		expected []string
	}{
		{
			name:     "No filter",
			filter:   model.FoodFilter{},
			expected: []string{"Bread", "brioche", "Rice (50%_off)"},
		},
		{
			name:     "Donor email",
			filter:   model.FoodFilter{DonorEmail: "a@x.com"},
			expected: []string{"Bread", "Rice (50%_off)"},
		},
		{
			name:     "Case-insensitive prefix",
			filter:   model.FoodFilter{NamePrefix: "br"},
			expected: []string{"Bread", "brioche"},
		},
		{
			name:     "Prefix with metacharacters matched literally",
			filter:   model.FoodFilter{NamePrefix: "rice (50%_"},
			expected: []string{"Rice (50%_off)"},
		},
		{
			name:     "Wildcard characters do not match anything",
			filter:   model.FoodFilter{NamePrefix: "%"},
			expected: []string{},
		},
		{
			name:     "Unknown donor",
			filter:   model.FoodFilter{DonorEmail: "nobody@x.com"},
			expected: []string{},
		},
	}

	for _, tt := range listTests {
		t.Run("List "+tt.name, func(t *testing.T) {
			listings, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			require.NotNil(t, listings)

			names := make([]string, 0, len(listings))
			for _, l := range listings {
				names = append(names, l.Name())
			}
			assert.Equal(t, tt.expected, names)
		})
	}

	t.Run("Update merges fields", func(t *testing.T) {
		got, err := repo.Update(ctx, bread.ID, map[string]any{"quantity": "1 loaf", "expiry": "tomorrow"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "1 loaf", got.Fields["quantity"])
		assert.Equal(t, "tomorrow", got.Fields["expiry"])
		assert.Equal(t, "Bread", got.Name())
		assert.Equal(t, "a@x.com", got.Donor.Email)
		assert.True(t, bread.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("Update of managed fields keeps listings decodable", func(t *testing.T) {
		target := newListing("Soup", "soup@x.com")
		require.NoError(t, repo.Create(ctx, target))

		for _, payload := range []map[string]any{
			{"donor": "bob"},
			{"foodStatus": float64(5)},
			{"donor": map[string]any{"name": float64(7)}},
			{"donor.email": "x@y.com"},
			{"$inc": float64(1)},
		} {
			_, err := model.FoodUpdateFields(payload)
			require.ErrorIs(t, err, model.ErrValidation, "payload %v", payload)
		}

		fields, err := model.FoodUpdateFields(map[string]any{
			"donor":      map[string]any{"name": "Bob", "email": "bob@x.com"},
			"foodStatus": "Donated",
		})
		require.NoError(t, err)

		got, err := repo.Update(ctx, target.ID, fields)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.Donor{Name: "Bob", Email: "bob@x.com"}, got.Donor)
		assert.Equal(t, model.FoodStatusDonated, got.FoodStatus)
		assert.NotContains(t, got.Fields, "donor")
		assert.NotContains(t, got.Fields, "foodStatus")

		all, err := repo.List(ctx, model.FoodFilter{DonorEmail: "bob@x.com"})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, target.ID, all[0].ID)
	})

	t.Run("Update with no fields returns current listing", func(t *testing.T) {
		got, err := repo.Update(ctx, brioche.ID, map[string]any{})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "brioche", got.Name())
	})

	t.Run("Update unknown returns nil", func(t *testing.T) {
		got, err := repo.Update(ctx, primitive.NewObjectID(), map[string]any{"a": "b"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SetStatus", func(t *testing.T) {
		matched, err := repo.SetStatus(ctx, bread.ID, model.FoodStatusDonated)
		require.NoError(t, err)
		assert.True(t, matched)

		got, err := repo.GetByID(ctx, bread.ID)
		require.NoError(t, err)
		assert.Equal(t, model.FoodStatusDonated, got.FoodStatus)

		matched, err = repo.SetStatus(ctx, primitive.NewObjectID(), model.FoodStatusDonated)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, rice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		deleted, err = repo.Delete(ctx, rice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)

		got, err := repo.GetByID(ctx, rice.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func testRequestRepository(t *testing.T, repo RequestRepository) {
	ctx := context.Background()
	foodA := primitive.NewObjectID()
	foodB := primitive.NewObjectID()

	t.Run("Empty list is not nil", func(t *testing.T) {
		requests, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, requests)
		assert.Empty(t, requests)
	})

	first := model.NewFoodRequest(foodA, map[string]any{"requesterEmail": "b@y.com"}, time.Now())
	require.NoError(t, repo.Create(ctx, first))
	require.False(t, first.ID.IsZero())

	second := model.NewFoodRequest(foodA, map[string]any{"requesterEmail": "c@y.com"}, time.Now())
	require.NoError(t, repo.Create(ctx, second))

	other := model.NewFoodRequest(foodB, map[string]any{"requesterEmail": "d@y.com"}, time.Now())
	require.NoError(t, repo.Create(ctx, other))

	t.Run("List returns every request", func(t *testing.T) {
		requests, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, requests, 3)
	})

	t.Run("ListByFood returns only matching requests", func(t *testing.T) {
		requests, err := repo.ListByFood(ctx, foodA.Hex())
		require.NoError(t, err)
		require.Len(t, requests, 2)
		for _, r := range requests {
			assert.Equal(t, foodA.Hex(), r.FoodID)
			assert.Equal(t, model.RequestStatusPending, r.Status)
		}
		assert.Equal(t, "b@y.com", requests[0].Fields["requesterEmail"])
	})

	t.Run("ListByFood unknown food is empty", func(t *testing.T) {
		requests, err := repo.ListByFood(ctx, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.NotNil(t, requests)
		assert.Empty(t, requests)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		got, err := repo.UpdateStatus(ctx, foodA.Hex(), first.ID, model.RequestStatusAccepted)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, model.RequestStatusAccepted, got.Status)
		assert.Equal(t, foodA.Hex(), got.FoodID)
		assert.True(t, first.RequestDate.Equal(got.RequestDate))
		assert.Equal(t, "b@y.com", got.Fields["requesterEmail"])
	})

	t.Run("UpdateStatus with mismatched food returns nil", func(t *testing.T) {
		got, err := repo.UpdateStatus(ctx, foodB.Hex(), second.ID, model.RequestStatusRejected)
		require.NoError(t, err)
		assert.Nil(t, got)

		requests, err := repo.ListByFood(ctx, foodA.Hex())
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusPending, requests[1].Status)
	})
}

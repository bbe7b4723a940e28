package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(center string, bt BloodType, available int, distance float64) BloodBankListing {
	return BloodBankListing{
		BloodInventory: BloodInventory{
			BloodType:      bt,
			UnitsAvailable: available,
			Location:       center + " St, City, ST 12345",
		},
		CenterName: center,
		DistanceKm: distance,
	}
}

func centers(ls []BloodBankListing) []string {
	var out []string
	for _, l := range ls {
		out = append(out, l.CenterName)
	}
	return out
}

func TestSearchInventory(t *testing.T) {
	records := []BloodBankListing{
		listing("Regional", BloodTypeAPos, 18, 4.7),
		listing("City", BloodTypeAPos, 25, 2.3),
		listing("Harbor", BloodTypeONeg, 4, 1.1),
		listing("Community", BloodTypeAPos, 8, 6.1),
		listing("Far", BloodTypeAPos, 30, 42),
	}

	t.Run("Blood type filter sorts by distance", func(t *testing.T) {
		got, err := SearchInventory(records[:3], SearchFilter{BloodType: BloodTypeAPos})
		require.NoError(t, err)
		assert.Equal(t, []string{"City", "Regional"}, centers(got))
	})

	t.Run("No filters returns everything nearest first", func(t *testing.T) {
		got, err := SearchInventory(records, SearchFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Harbor", "City", "Regional", "Community", "Far"}, centers(got))
	})

	t.Run("Radius uses precomputed distance", func(t *testing.T) {
		got, err := SearchInventory(records, SearchFilter{RadiusKm: 10})
		require.NoError(t, err)
		assert.NotContains(t, centers(got), "Far")
		assert.Len(t, got, 4)
	})

	t.Run("Availability buckets", func(t *testing.T) {
		got, err := SearchInventory(records, SearchFilter{Availability: AvailabilityAvailable})
		require.NoError(t, err)
		assert.Equal(t, []string{"City", "Regional", "Far"}, centers(got))

		got, err = SearchInventory(records, SearchFilter{Availability: AvailabilityLow})
		require.NoError(t, err)
		assert.Equal(t, []string{"Harbor", "Community"}, centers(got))

		got, err = SearchInventory(records, SearchFilter{Availability: AvailabilityAll})
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})

	t.Run("Location substring is case insensitive", func(t *testing.T) {
		got, err := SearchInventory(records, SearchFilter{Location: "regional"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Regional"}, centers(got))
	})

	t.Run("Ties keep input order", func(t *testing.T) {
		tied := []BloodBankListing{
			listing("First", BloodTypeBPos, 12, 3),
			listing("Second", BloodTypeBPos, 12, 3),
			listing("Closer", BloodTypeBPos, 12, 1),
		}
		got, err := SearchInventory(tied, SearchFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Closer", "First", "Second"}, centers(got))
	})

	t.Run("Input is not reordered", func(t *testing.T) {
		_, err := SearchInventory(records, SearchFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Regional", records[0].CenterName)
	})

	t.Run("Invalid filters", func(t *testing.T) {
		for _, f := range []SearchFilter{
			{BloodType: "Q+"},
			{RadiusKm: -1},
			{Availability: "plenty"},
		} {
			_, err := SearchInventory(records, f)
			assert.True(t, IsValidation(err), "%+v", f)
		}
	})
}

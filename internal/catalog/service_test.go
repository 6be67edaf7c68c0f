package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

func TestServiceLookup(t *testing.T) {
	svc := NewService(context.Background(), &Config{
		BusinessTypes: []domain.BusinessType{validType()},
	})

	bt, ok := svc.GetBusinessType("bakery")
	require.True(t, ok)
	assert.Equal(t, "Corner Bakery", bt.DisplayName)

	_, ok = svc.GetBusinessType("arcade")
	assert.False(t, ok)
}

func TestServiceListIsACopy(t *testing.T) {
	svc := NewService(context.Background(), &Config{
		BusinessTypes: []domain.BusinessType{validType()},
	})

	listed := svc.ListBusinessTypes()
	require.Len(t, listed, 1)
	listed[0].DisplayName = "mutated"

	bt, ok := svc.GetBusinessType("bakery")
	require.True(t, ok)
	assert.Equal(t, "Corner Bakery", bt.DisplayName)
}

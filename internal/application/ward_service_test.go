package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ward-admin/internal/infrastructure/memtest"
)

func TestReplaceAssignedWardsIsDeclarative(t *testing.T) {
	wards := memtest.NewWardRepository()
	svc := NewWardService(wards, quietLogger())
	ctx := context.Background()

	_, err := svc.ReplaceAssignedWards(ctx, 7, []string{"A", "B"}, 1)
	require.NoError(t, err)
	got, err := svc.AssignedWards(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, got)

	_, err = svc.ReplaceAssignedWards(ctx, 7, []string{"B", "C"}, 2)
	require.NoError(t, err)
	got, _ = svc.AssignedWards(ctx, 7)
	assert.ElementsMatch(t, []string{"B", "C"}, got)

	_, err = svc.ReplaceAssignedWards(ctx, 7, []string{"C", "B"}, 2)
	require.NoError(t, err)
	got, _ = svc.AssignedWards(ctx, 7)
	assert.ElementsMatch(t, []string{"B", "C"}, got)

	// creator reflects the call that re-established the row
	row, ok := wards.Get(7, "B")
	require.True(t, ok)
	assert.Equal(t, int64(2), row.CreatorID)

	_, err = svc.ReplaceAssignedWards(ctx, 7, nil, 2)
	require.NoError(t, err)
	got, _ = svc.AssignedWards(ctx, 7)
	assert.Empty(t, got)
}

func TestReplaceAssignedWardsLeavesOtherUsersAlone(t *testing.T) {
	svc := NewWardService(memtest.NewWardRepository(), quietLogger())
	ctx := context.Background()
	_, _ = svc.ReplaceAssignedWards(ctx, 1, []string{"A"}, 9)
	_, _ = svc.ReplaceAssignedWards(ctx, 2, []string{"B"}, 9)

	got, _ := svc.AssignedWards(ctx, 1)
	assert.Equal(t, []string{"A"}, got)
}

func TestReplaceAssignedWardsReturnsStoreError(t *testing.T) {
	wards := memtest.NewWardRepository()
	wards.Err = errors.New("deadlock detected")
	svc := NewWardService(wards, quietLogger())

	_, err := svc.ReplaceAssignedWards(context.Background(), 1, []string{"A"}, 9)
	assert.EqualError(t, err, "deadlock detected")
}

func TestNormalizeWardCodes(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, NormalizeWardCodes([]string{" A", "", "B", "A ", "  "}))
	assert.NotNil(t, NormalizeWardCodes(nil))
}

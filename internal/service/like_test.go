package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike_TwiceRestoresCount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user("owner@example.com", "Owner")
	bob := f.user("bob@example.com", "Bob")
	inv := f.inventoryOf(owner.ID, "Tools", "")
	item, err := f.items.Create(ctx, inv.ID, owner.ID, "Hammer", "")
	require.NoError(t, err)

	// A like from someone else is already there.
	n, err := f.likes.Toggle(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = f.likes.Toggle(ctx, item.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.likes.Toggle(ctx, item.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestToggleLike_MissingItem(t *testing.T) {
	f := newFixture()
	_, err := f.likes.Toggle(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmutua/metertrack/internal/user"
)

func TestService_Names(t *testing.T) {
	ctx := context.Background()

	idA := uuid.New()
	idB := uuid.New()

	t.Run("deduplicates ids before fetching", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		repo.EXPECT().
			GetProfiles(ctx, []uuid.UUID{idA, idB}).
			Return([]*user.Profile{
				{ID: idA, Name: "Wanjiru"},
				{ID: idB, Name: "Otieno"},
			}, nil)

		names, err := svc.Names(ctx, []uuid.UUID{idA, idB, idA, idB, idA})
		require.NoError(t, err)

		assert.Equal(t, map[uuid.UUID]string{idA: "Wanjiru", idB: "Otieno"}, names)
	})

	t.Run("unknown ids are absent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		repo.EXPECT().
			GetProfiles(ctx, []uuid.UUID{idA, idB}).
			Return([]*user.Profile{{ID: idA, Name: "Wanjiru"}}, nil)

		names, err := svc.Names(ctx, []uuid.UUID{idA, idB})
		require.NoError(t, err)

		assert.Equal(t, "Wanjiru", names[idA])
		_, ok := names[idB]
		assert.False(t, ok)
	})

	t.Run("empty input skips the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		names, err := svc.Names(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

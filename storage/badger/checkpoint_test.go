package badger

import (
	"context"
	"testing"

	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRepository(t *testing.T) {
	recordRepo, checkpointRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		recordRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	t.Run("missing checkpoint", func(t *testing.T) {
		checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, "ingestion")
		require.NoError(t, err)
		assert.Nil(t, checkpoint)
	})

	t.Run("save and load", func(t *testing.T) {
		err := checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: "ingestion", LastIndex: 500})
		require.NoError(t, err)

		checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, "ingestion")
		require.NoError(t, err)
		require.NotNil(t, checkpoint)
		assert.Equal(t, uint64(500), checkpoint.LastIndex)
		assert.False(t, checkpoint.UpdatedAt.IsZero())
	})

	t.Run("checkpoints do not leak into the corpus", func(t *testing.T) {
		corpus, err := recordRepo.Corpus(ctx)
		require.NoError(t, err)
		assert.Empty(t, corpus)
	})

	t.Run("invalid checkpoint", func(t *testing.T) {
		err := checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{})
		assert.ErrorIs(t, err, core.ErrEmptyProcessorType)
	})

	t.Run("repository methods", func(t *testing.T) {
		var repo storage.CheckpointRepository = checkpointRepo
		called := false
		err := repo.WithTransaction(ctx, func(ctx context.Context) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)
		assert.NoError(t, repo.Close())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, checkpointRepo.DeleteCheckpoint(ctx, "ingestion"))
		require.NoError(t, checkpointRepo.DeleteCheckpoint(ctx, "ingestion"))

		checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, "ingestion")
		require.NoError(t, err)
		assert.Nil(t, checkpoint)
	})
}

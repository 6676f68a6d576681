package goroutine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManager(t *testing.T) {
	t.Run("CollectsErrors", func(t *testing.T) {
		// Arrange
		errBoom := errors.New("boom")
		g := NewManager(2)

		// Act
		assert.True(t, g.Go(context.Background(), "ok", func(context.Context) error { return nil }))
		assert.True(t, g.Go(context.Background(), "fails", func(context.Context) error { return errBoom }))
		err := g.Wait()

		// Assert
		assert.ErrorIs(t, err, errBoom)
		assert.ErrorContains(t, err, "fails: boom")
	})

	t.Run("RecoversPanic", func(t *testing.T) {
		g := NewManager(1)

		g.Go(context.Background(), "panics", func(context.Context) error { panic("kaboom") })

		assert.ErrorIs(t, g.Wait(), ErrPanic)
	})

	t.Run("CanceledJobIsNotAnError", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		g := NewManager(1)

		g.Go(ctx, "consumer", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		cancel()

		assert.NoError(t, g.Wait())
	})

	t.Run("RefusesWhenFull", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		g := NewManager(1)
		block := func(ctx context.Context) error { <-ctx.Done(); return nil }

		assert.True(t, g.Go(ctx, "first", block))
		assert.False(t, g.Go(ctx, "second", block))

		cancel()
		assert.NoError(t, g.Wait())
	})

	t.Run("RefusesAfterWait", func(t *testing.T) {
		g := NewManager(1)
		assert.NoError(t, g.Wait())

		assert.False(t, g.Go(context.Background(), "late", func(context.Context) error { return nil }))
	})

	t.Run("RefusesDoneContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		g := NewManager(1)

		assert.False(t, g.Go(ctx, "late", func(context.Context) error { return nil }))
		assert.NoError(t, g.Wait())
	})

	t.Run("NilManager", func(t *testing.T) {
		var g *Manager

		assert.False(t, g.Go(context.Background(), "x", func(context.Context) error { return nil }))
		assert.NoError(t, g.Wait())
	})
}

package reviews_test

import (
	"testing"

	"github.com/nfrund/reviewboard/internal/domain"
	"github.com/nfrund/reviewboard/internal/reviews"
	"github.com/stretchr/testify/assert"
)

var (
	ana = domain.Review{ID: "1", UserName: "Ana", ProductName: "Soap", ProductReview: "Great!", CreatedAt: "2024-01-05T15:47:00Z", ContactNumber: "+15550001"}
	ben = domain.Review{ID: "2", UserName: "Ben", ProductName: "Tea", ProductReview: "Too hot", CreatedAt: "2024-01-04T09:05:00Z", ContactNumber: "+15550002"}
)

func TestInitialState(t *testing.T) {
	s := reviews.Initial()
	assert.True(t, s.Loading)
	assert.Empty(t, s.Err)
	assert.NotNil(t, s.Reviews)
	assert.Empty(t, s.Reviews)
	assert.Equal(t, reviews.PhaseLoading, s.Phase())
}

func TestStateTransitions(t *testing.T) {
	t.Run("begin clears error and keeps reviews", func(t *testing.T) {
		s := reviews.State{Reviews: []domain.Review{ana}, Err: reviews.FetchFailureMessage}
		next := s.Begin()
		assert.True(t, next.Loading)
		assert.Empty(t, next.Err)
		assert.Equal(t, []domain.Review{ana}, next.Reviews)
	})

	t.Run("succeed replaces wholesale", func(t *testing.T) {
		s := reviews.State{Reviews: []domain.Review{ana}, Loading: true}
		next := s.Succeed([]domain.Review{ben})
		assert.False(t, next.Loading)
		assert.Empty(t, next.Err)
		assert.Equal(t, []domain.Review{ben}, next.Reviews)
	})

	t.Run("succeed with nil gives empty collection", func(t *testing.T) {
		next := reviews.Initial().Succeed(nil)
		assert.NotNil(t, next.Reviews)
		assert.Equal(t, reviews.PhaseEmpty, next.Phase())
	})

	t.Run("fail keeps previous reviews", func(t *testing.T) {
		s := reviews.State{Reviews: []domain.Review{ana}, Loading: true}
		next := s.Fail()
		assert.False(t, next.Loading)
		assert.Equal(t, reviews.FetchFailureMessage, next.Err)
		assert.Equal(t, []domain.Review{ana}, next.Reviews)
	})
}

func TestPhasePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		state reviews.State
		want  reviews.Phase
	}{
		{"loading wins over error and data", reviews.State{Loading: true, Err: "x", Reviews: []domain.Review{ana}}, reviews.PhaseLoading},
		{"error wins over data", reviews.State{Err: "x", Reviews: []domain.Review{ana}}, reviews.PhaseError},
		{"empty collection", reviews.State{Reviews: []domain.Review{}}, reviews.PhaseEmpty},
		{"nil collection", reviews.State{}, reviews.PhaseEmpty},
		{"ready", reviews.State{Reviews: []domain.Review{ana, ben}}, reviews.PhaseReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Phase())
		})
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", reviews.PhaseLoading.String())
	assert.Equal(t, "error", reviews.PhaseError.String())
	assert.Equal(t, "empty", reviews.PhaseEmpty.String())
	assert.Equal(t, "ready", reviews.PhaseReady.String())
	assert.Equal(t, "unknown", reviews.Phase(42).String())
}

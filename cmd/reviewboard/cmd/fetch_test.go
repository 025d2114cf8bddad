package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nfrund/reviewboard/internal/domain"
	"github.com/nfrund/reviewboard/internal/reviews"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFetcher(list []domain.Review, err error) reviews.Fetcher {
	return reviews.FetcherFunc(func(ctx context.Context) ([]domain.Review, error) {
		return list, err
	})
}

func TestRunFetch_Table(t *testing.T) {
	var out bytes.Buffer
	list := []domain.Review{
		{ID: "1", UserName: "Ana", ProductName: "Soap", ProductReview: "Great!", CreatedAt: "2024-01-05T15:47:00Z", ContactNumber: "+15550001"},
	}

	require.NoError(t, runFetch(context.Background(), &out, stubFetcher(list, nil), time.UTC, false))

	assert.Contains(t, out.String(), "USER NAME")
	assert.Contains(t, out.String(), "Ana")
	assert.Contains(t, out.String(), "Jan 5, 2024, 3:47 PM")
}

func TestRunFetch_JSON(t *testing.T) {
	var out bytes.Buffer
	list := []domain.Review{{ID: "1", UserName: "Ana"}}

	require.NoError(t, runFetch(context.Background(), &out, stubFetcher(list, nil), time.UTC, true))

	var got []domain.Review
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, list, got)
}

func TestRunFetch_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runFetch(context.Background(), &out, stubFetcher(nil, nil), time.UTC, false))
	assert.Contains(t, out.String(), reviews.EmptyHeading)

	out.Reset()
	require.NoError(t, runFetch(context.Background(), &out, stubFetcher([]domain.Review{}, nil), time.UTC, true))
	assert.Equal(t, "[]\n", out.String())
}

func TestRunFetch_Failure(t *testing.T) {
	var out bytes.Buffer
	cause := &domain.FetchError{Op: "status", URL: "http://backend/api/reviews", Status: 500}

	err := runFetch(context.Background(), &out, stubFetcher(nil, cause), time.UTC, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
	assert.Contains(t, err.Error(), reviews.FetchFailureMessage)
	assert.Empty(t, out.String())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "reviewboard v"+version+"\n", out.String())
}

package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Software Engineer", CleanText("  Software  Engineer \n"))
	assert.Equal(t, "", CleanText("    "))
}

func TestNormalizeLocation(t *testing.T) {
	assert.Equal(t, "London, UK", NormalizeLocation("Location: London , london, UK"))
	assert.Equal(t, "", NormalizeLocation("  "))
}

func TestPacerRespectsContext(t *testing.T) {
	p := NewPacer(time.Hour, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPacerZeroDelay(t *testing.T) {
	p := NewPacer(0, 0)
	require.NoError(t, p.Wait(context.Background()))
}

func TestFailureStreak(t *testing.T) {
	fs := NewFailureStreak(3)
	fs.Failure()
	fs.Failure()
	assert.False(t, fs.Tripped())

	fs.Failure()
	assert.True(t, fs.Tripped())

	fs.Success()
	assert.False(t, fs.Tripped())
	assert.Zero(t, fs.Count())
}

func TestSearchTerms(t *testing.T) {
	got := SearchTerms(
		[]string{"Acme", "  ", "Globex"},
		[]string{"software engineer UK", ""},
		"software engineer UK")
	assert.Equal(t, []string{"Acme", "Globex", "software engineer UK"}, got)

	assert.Equal(t, []string{"software engineer UK"}, SearchTerms(nil, nil, "software engineer UK"))
	assert.Empty(t, SearchTerms(nil, nil, ""))
}

func TestHostLimiterSeparatesHosts(t *testing.T) {
	hl := NewHostLimiter(1000, 1)
	ctx := context.Background()
	require.NoError(t, hl.WaitURL(ctx, "https://api.example.com/a"))
	require.NoError(t, hl.WaitURL(ctx, "https://other.example.com/b"))
	require.NoError(t, hl.WaitURL(ctx, "not a url"))
}

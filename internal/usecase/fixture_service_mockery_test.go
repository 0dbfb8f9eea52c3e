package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-mcp/internal/domain/fixture"
	fixturemock "github.com/riskibarqy/fpl-mcp/internal/mocks/domain/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestFixtureService_ListByGameweekUsingMockery(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, testSnapshot())
	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(c, fixtureRepo)

	saturday := time.Date(2025, 9, 20, 14, 0, 0, 0, time.UTC)
	fixtureRepo.
		On("ListAll", mock.Anything).
		Return([]fixture.Fixture{
			{ID: 41, Event: intPtr(5), TeamH: 12, TeamA: 13},
			{ID: 42, Event: intPtr(5), KickoffTime: timePtr(saturday.Add(2 * time.Hour)), TeamH: 1, TeamA: 14},
			{ID: 43, Event: intPtr(6), KickoffTime: timePtr(saturday.Add(-time.Hour)), TeamH: 1, TeamA: 12},
			{ID: 44, Event: intPtr(5), KickoffTime: timePtr(saturday), TeamH: 13, TeamA: 1, TeamHScore: intPtr(2), TeamAScore: intPtr(2), Finished: true, Started: true},
			{ID: 45, Event: nil, TeamH: 14, TeamA: 12},
		}, nil).
		Once()

	got, err := service.ListByGameweek(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 3, got.Count)

	ids := []int{got.Fixtures[0].ID, got.Fixtures[1].ID, got.Fixtures[2].ID}
	assert.Equal(t, []int{44, 42, 41}, ids, "kickoff ascending, TBD last")
	assert.Equal(t, "Man City", got.Fixtures[0].HomeTeam)
	assert.Equal(t, "Arsenal", got.Fixtures[0].AwayTeam)
	assert.Equal(t, "2025-09-20T14:00:00Z", got.Fixtures[0].KickoffTime)
	assert.Equal(t, "TBD", got.Fixtures[2].KickoffTime)
	require.NotNil(t, got.Fixtures[0].HomeScore)
	assert.Equal(t, 2, *got.Fixtures[0].HomeScore)
}

func TestFixtureService_EmptyGameweekUsingMockery(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, testSnapshot())
	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(c, fixtureRepo)

	fixtureRepo.On("ListAll", mock.Anything).Return([]fixture.Fixture{{ID: 1, Event: intPtr(1)}}, nil).Once()

	got, err := service.ListByGameweek(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)
	assert.NotNil(t, got.Fixtures)
	assert.Equal(t, "No fixtures scheduled for gameweek 30 yet", got.Message)
}

func TestFixtureService_UpstreamFailureUsingMockery(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, testSnapshot())
	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(c, fixtureRepo)

	fixtureRepo.On("ListAll", mock.Anything).Return(nil, &UpstreamError{Endpoint: "/fixtures/", StatusCode: 429}).Once()

	_, err := service.ListByGameweek(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, CodeAPIRateLimited, Classify(err).Code)
}

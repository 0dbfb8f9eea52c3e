package fpl

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-mcp/internal/domain/bootstrap"
	"github.com/riskibarqy/fpl-mcp/internal/domain/fixture"
	"github.com/riskibarqy/fpl-mcp/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-mcp/internal/domain/manager"
	"github.com/riskibarqy/fpl-mcp/internal/domain/player"
	"github.com/riskibarqy/fpl-mcp/internal/domain/position"
	"github.com/riskibarqy/fpl-mcp/internal/domain/team"
)

var (
	_ bootstrap.Repository = (*Client)(nil)
	_ fixture.Repository   = (*Client)(nil)
	_ manager.Repository   = (*Client)(nil)
)

func (c *Client) FetchBootstrap(ctx context.Context) (*bootstrap.Snapshot, error) {
	var payload bootstrapPayload
	if err := c.getJSON(ctx, "/bootstrap-static/", &payload); err != nil {
		return nil, errors.Wrap(err, "fetch bootstrap")
	}

	players := make([]player.Player, 0, len(payload.Elements))
	for _, item := range payload.Elements {
		players = append(players, item.toDomain())
	}
	teams := make([]team.Team, 0, len(payload.Teams))
	for _, item := range payload.Teams {
		teams = append(teams, item.toDomain())
	}
	types := make([]position.Type, 0, len(payload.ElementTypes))
	for _, item := range payload.ElementTypes {
		types = append(types, item.toDomain())
	}
	events := make([]gameweek.Event, 0, len(payload.Events))
	for _, item := range payload.Events {
		events = append(events, item.toDomain())
	}

	return bootstrap.NewSnapshot(players, teams, types, events), nil
}

func (c *Client) ListAll(ctx context.Context) ([]fixture.Fixture, error) {
	var payload []fixturePayload
	if err := c.getJSON(ctx, "/fixtures/", &payload); err != nil {
		return nil, errors.Wrap(err, "fetch fixtures")
	}

	out := make([]fixture.Fixture, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) GetSummary(ctx context.Context, managerID int) (manager.Summary, error) {
	var payload entryPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/entry/%d/", managerID), &payload); err != nil {
		if isNotFound(err) {
			return manager.Summary{}, errors.Wrapf(manager.ErrManagerNotFound, "manager_id=%d", managerID)
		}
		return manager.Summary{}, errors.Wrapf(err, "fetch manager summary manager_id=%d", managerID)
	}
	return payload.toDomain(), nil
}

func (c *Client) GetPicks(ctx context.Context, managerID, gameweek int) (manager.Picks, error) {
	var payload picksPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/entry/%d/event/%d/picks/", managerID, gameweek), &payload); err != nil {
		if isNotFound(err) {
			return manager.Picks{}, errors.Wrapf(manager.ErrPicksNotFound, "manager_id=%d gameweek=%d", managerID, gameweek)
		}
		return manager.Picks{}, errors.Wrapf(err, "fetch picks manager_id=%d gameweek=%d", managerID, gameweek)
	}
	return payload.toDomain(), nil
}

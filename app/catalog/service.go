package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/models"
)

// service implements the Service interface
type service struct {
	repo   Repository
	logger logger.Logger
}

// NewService creates a new catalog service
func NewService(repo Repository, log logger.Logger) Service {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{repo: repo, logger: log}
}

func (s *service) ListSports(ctx context.Context) ([]SportResponse, error) {
	sports, err := s.repo.GetSports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sports: %w", err)
	}

	out := make([]SportResponse, len(sports))
	for i := range sports {
		out[i] = ToSportResponse(&sports[i])
	}
	return out, nil
}

func (s *service) ListTeams(ctx context.Context, sportID uuid.UUID) ([]TeamResponse, error) {
	if _, err := s.repo.GetSportByID(ctx, sportID); err != nil {
		return nil, err
	}

	teams, err := s.repo.GetTeamsBySport(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	out := make([]TeamResponse, len(teams))
	for i := range teams {
		out[i] = ToTeamResponse(&teams[i])
	}
	return out, nil
}

func (s *service) ListGames(ctx context.Context, filters *GameFilters) ([]GameResponse, int64, error) {
	filters.normalize()

	games, total, err := s.repo.GetGames(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get games: %w", err)
	}
	return ToGameResponses(games), total, nil
}

func (s *service) GetGame(ctx context.Context, id uuid.UUID) (*GameResponse, error) {
	game, err := s.repo.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToGameResponse(game), nil
}

// CreateGame lists a new upcoming game. Both teams must belong to the sport.
func (s *service) CreateGame(ctx context.Context, req *CreateGameRequest) (*GameResponse, error) {
	sport, err := s.repo.GetSportByID(ctx, req.SportID)
	if err != nil {
		return nil, err
	}

	teams, err := s.repo.GetTeamsByIDs(ctx, []uuid.UUID{req.HomeTeamID, req.AwayTeamID})
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}
	byID := make(map[uuid.UUID]*models.Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}
	home, away := byID[req.HomeTeamID], byID[req.AwayTeamID]
	if home == nil || away == nil || home.SportID != sport.ID || away.SportID != sport.ID {
		return nil, fmt.Errorf("%w: both teams must play %s", models.ErrInvalidGameTeams, sport.Name)
	}

	game := &models.Game{
		SportID:     sport.ID,
		HomeTeamID:  home.ID,
		AwayTeamID:  away.ID,
		HomeOdds:    req.HomeOdds,
		AwayOdds:    req.AwayOdds,
		ScheduledAt: req.ScheduledAt,
		Status:      models.GameStatusUpcoming,
		ExternalID:  req.ExternalID,
	}
	if err := game.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.logger.Info("game created", logger.Fields{"game_id": game.ID, "sport": sport.Code})

	game.Sport, game.HomeTeam, game.AwayTeam = sport, home, away
	return ToGameResponse(game), nil
}

// UpdateOdds reprices an upcoming game. Bets already placed keep the odds
// they were taken at.
func (s *service) UpdateOdds(ctx context.Context, id uuid.UUID, req *UpdateOddsRequest) (*GameResponse, error) {
	if req.HomeOdds == 0 || req.AwayOdds == 0 {
		return nil, models.ErrInvalidOdds
	}

	game, err := s.repo.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Status != models.GameStatusUpcoming {
		return nil, fmt.Errorf("%w: game #%s is %s", models.ErrGameNotBettable, game.ID, game.Status)
	}

	game.HomeOdds, game.AwayOdds = req.HomeOdds, req.AwayOdds
	if err := s.repo.UpdateOdds(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("odds updated", logger.Fields{"game_id": game.ID, "home_odds": game.HomeOdds, "away_odds": game.AwayOdds})
	return ToGameResponse(game), nil
}

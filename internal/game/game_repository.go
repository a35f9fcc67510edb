package game

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
)

// GameRepository is the storage adapter for games, rosters, join requests and ratings.
type GameRepository interface {
	// Game operations
	CreateGame(ctx context.Context, g *Game) error
	GetGameByID(ctx context.Context, id uint) (*Game, error)
	GetGamesByIDs(ctx context.Context, ids []uint) ([]Game, error)
	LatestGames(ctx context.Context, limit int) ([]Game, error)
	FilterGames(ctx context.Context, criteria FilterCriteria) ([]Game, error)
	NearestGames(ctx context.Context, p models.Point, count int) ([]NearestGame, error)
	GamesByOrganiser(ctx context.Context, organiserID string) ([]Game, error)
	GamesParticipatingIn(ctx context.Context, playerID string) ([]Game, error)
	LocationInUse(ctx context.Context, addressID uint) (bool, error)

	// Roster operations
	AddPlayer(ctx context.Context, gameID uint, playerID string) error
	RemovePlayer(ctx context.Context, gameID uint, playerID string) error
	CountPlayers(ctx context.Context, gameID uint) (int64, error)

	// RequestToJoin operations
	CreateRequest(ctx context.Context, r *RequestToJoin) error
	GetRequestByID(ctx context.Context, id uint) (*RequestToJoin, error)
	GetRequest(ctx context.Context, gameID uint, playerID string) (*RequestToJoin, error)
	SetRequestAccepted(ctx context.Context, id uint, accepted bool) error
	DeleteRequest(ctx context.Context, gameID uint, playerID string) error
	OpenRequestsForGame(ctx context.Context, gameID uint) ([]RequestToJoin, error)
	OpenRequestsForOrganiser(ctx context.Context, organiserID string) ([]RequestToJoin, error)

	// Rating operations
	GetRating(ctx context.Context, playerID string, gameID uint) (*Rating, error)
	CreateRating(ctx context.Context, r *Rating) error
	UpdateRating(ctx context.Context, playerID string, gameID uint, value int) error
	RatingsForPlayers(ctx context.Context, playerIDs []string) ([]Rating, error)

	WithTransaction(ctx context.Context, txFunc func(GameRepository) error) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

// withGraph eager loads the roster and location of each game.
func withGraph(db *gorm.DB) *gorm.DB {
	return db.Preload("Players").Preload("Location")
}

// --- Game Operations ---

func (r *gameRepository) CreateGame(ctx context.Context, g *Game) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error
}

func (r *gameRepository) GetGameByID(ctx context.Context, id uint) (*Game, error) {
	var g Game
	if err := withGraph(r.db.WithContext(ctx)).First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) GetGamesByIDs(ctx context.Context, ids []uint) ([]Game, error) {
	var games []Game
	if len(ids) == 0 {
		return games, nil
	}
	err := withGraph(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&games).Error
	return games, err
}

func (r *gameRepository) LatestGames(ctx context.Context, limit int) ([]Game, error) {
	var games []Game
	err := withGraph(r.db.WithContext(ctx)).Order("created_on desc").Limit(limit).Find(&games).Error
	return games, err
}

func (r *gameRepository) FilterGames(ctx context.Context, criteria FilterCriteria) ([]Game, error) {
	var games []Game
	query := withGraph(r.db.WithContext(ctx)).Model(&Game{})

	if criteria.Day != nil {
		query = query.Where("day = ?", *criteria.Day)
	}
	if criteria.Level != nil {
		query = query.Where("level = ?", *criteria.Level)
	}
	if criteria.NumberOfPlayers != nil {
		query = query.Where("number_of_players = ?", *criteria.NumberOfPlayers)
	}

	err := query.Order("created_on desc").Find(&games).Error
	return games, err
}

// NearestGames orders active games by KNN distance between their address point and p.
func (r *gameRepository) NearestGames(ctx context.Context, p models.Point, count int) ([]NearestGame, error) {
	var rows []NearestGame
	err := r.db.WithContext(ctx).Raw(
		`WITH ref AS (SELECT ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography AS point)
		 SELECT g.id, ST_AsGeoJSON(c.location) AS location, ST_Distance(c.location, ref.point) AS distance
		 FROM games g
		 JOIN addresses a ON a.id = g.location_id
		 JOIN coordinates c ON c.id = a.coordinates_id
		 CROSS JOIN ref
		 WHERE g.active
		 ORDER BY c.location <-> ref.point
		 LIMIT ?`,
		p.Longitude, p.Latitude, count,
	).Scan(&rows).Error
	return rows, err
}

func (r *gameRepository) GamesByOrganiser(ctx context.Context, organiserID string) ([]Game, error) {
	var games []Game
	err := withGraph(r.db.WithContext(ctx)).Where("organiser_id = ?", organiserID).
		Order("created_on desc").Find(&games).Error
	return games, err
}

func (r *gameRepository) GamesParticipatingIn(ctx context.Context, playerID string) ([]Game, error) {
	var games []Game
	err := withGraph(r.db.WithContext(ctx)).
		Where("organiser_id <> ?", playerID).
		Where("id IN (?)", r.db.WithContext(ctx).Model(&GamePlayer{}).Select("game_id").Where("player_id = ?", playerID)).
		Order("created_on desc").Find(&games).Error
	return games, err
}

func (r *gameRepository) LocationInUse(ctx context.Context, addressID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Game{}).Where("location_id = ?", addressID).Count(&count).Error
	return count > 0, err
}

// --- Roster Operations ---

func (r *gameRepository) AddPlayer(ctx context.Context, gameID uint, playerID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&GamePlayer{GameID: gameID, PlayerID: playerID}).Error
}

func (r *gameRepository) RemovePlayer(ctx context.Context, gameID uint, playerID string) error {
	return r.db.WithContext(ctx).Where("game_id = ? AND player_id = ?", gameID, playerID).
		Delete(&GamePlayer{}).Error
}

func (r *gameRepository) CountPlayers(ctx context.Context, gameID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&GamePlayer{}).Where("game_id = ?", gameID).Count(&count).Error
	return count, err
}

// --- RequestToJoin Operations ---

func (r *gameRepository) CreateRequest(ctx context.Context, req *RequestToJoin) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
}

func (r *gameRepository) GetRequestByID(ctx context.Context, id uint) (*RequestToJoin, error) {
	var req RequestToJoin
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *gameRepository) GetRequest(ctx context.Context, gameID uint, playerID string) (*RequestToJoin, error) {
	var req RequestToJoin
	err := r.db.WithContext(ctx).Where("game_id = ? AND player_id = ?", gameID, playerID).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *gameRepository) SetRequestAccepted(ctx context.Context, id uint, accepted bool) error {
	return r.db.WithContext(ctx).Model(&RequestToJoin{}).Where("id = ?", id).Update("accepted", accepted).Error
}

func (r *gameRepository) DeleteRequest(ctx context.Context, gameID uint, playerID string) error {
	return r.db.WithContext(ctx).Where("game_id = ? AND player_id = ?", gameID, playerID).
		Delete(&RequestToJoin{}).Error
}

func (r *gameRepository) OpenRequestsForGame(ctx context.Context, gameID uint) ([]RequestToJoin, error) {
	var requests []RequestToJoin
	err := r.db.WithContext(ctx).Preload("Player").
		Where("game_id = ? AND accepted IS NULL", gameID).
		Order("created_at asc").Find(&requests).Error
	return requests, err
}

func (r *gameRepository) OpenRequestsForOrganiser(ctx context.Context, organiserID string) ([]RequestToJoin, error) {
	var requests []RequestToJoin
	err := r.db.WithContext(ctx).Preload("Player").Preload("Game").
		Joins("JOIN games ON games.id = request_to_joins.game_id").
		Where("games.organiser_id = ? AND request_to_joins.accepted IS NULL", organiserID).
		Order("request_to_joins.created_at asc").Find(&requests).Error
	return requests, err
}

// --- Rating Operations ---

func (r *gameRepository) GetRating(ctx context.Context, playerID string, gameID uint) (*Rating, error) {
	var rating Rating
	err := r.db.WithContext(ctx).Where("player_id = ? AND game_id = ?", playerID, gameID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *gameRepository) CreateRating(ctx context.Context, rating *Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *gameRepository) UpdateRating(ctx context.Context, playerID string, gameID uint, value int) error {
	return r.db.WithContext(ctx).Model(&Rating{}).
		Where("player_id = ? AND game_id = ?", playerID, gameID).
		Update("rating", value).Error
}

func (r *gameRepository) RatingsForPlayers(ctx context.Context, playerIDs []string) ([]Rating, error) {
	var ratings []Rating
	if len(playerIDs) == 0 {
		return ratings, nil
	}
	err := r.db.WithContext(ctx).Where("player_id IN ?", playerIDs).Find(&ratings).Error
	return ratings, err
}

func (r *gameRepository) WithTransaction(ctx context.Context, txFunc func(GameRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&gameRepository{db: tx})
	})
}

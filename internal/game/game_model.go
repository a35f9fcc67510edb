package game

import (
	"time"

	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
)

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelRecreational Level = "RECREATIONAL"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelCompetitive  Level = "COMPETITIVE"
	LevelAdvanced     Level = "ADVANCED"
)

var Levels = []string{
	string(LevelBeginner),
	string(LevelRecreational),
	string(LevelIntermediate),
	string(LevelCompetitive),
	string(LevelAdvanced),
}

var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const (
	MinPlayers = 8
	MaxPlayers = 14
)

// Game is a weekly fixture at an address. The organiser is always on the roster and the
// location belongs to this game alone.
type Game struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Day             string           `gorm:"size:9;not null" json:"day"`
	Active          bool             `gorm:"not null;default:true" json:"active"`
	Time            string           `gorm:"size:8;not null" json:"time"`
	Level           Level            `gorm:"size:16;not null" json:"level"`
	NumberOfPlayers int              `gorm:"not null" json:"numberOfPlayers"`
	OrganiserID     string           `gorm:"size:24;not null;index" json:"organiserId"`
	Organiser       *user.User       `gorm:"foreignKey:OrganiserID" json:"-"`
	LocationID      uint             `gorm:"not null;uniqueIndex" json:"locationId"`
	Location        *address.Address `gorm:"foreignKey:LocationID" json:"-"`
	Players         []user.User      `gorm:"many2many:game_players;joinForeignKey:GameID;joinReferences:PlayerID" json:"-"`
	CreatedOn       time.Time        `gorm:"autoCreateTime" json:"createdOn"`
}

func (Game) TableName() string { return "games" }

// HasPlayer reports whether userID is on the loaded roster.
func (g *Game) HasPlayer(userID string) bool {
	for _, p := range g.Players {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// GamePlayer is a roster row.
type GamePlayer struct {
	GameID   uint   `gorm:"primaryKey"`
	PlayerID string `gorm:"primaryKey;size:24"`
}

func (GamePlayer) TableName() string { return "game_players" }

// RequestToJoin tracks one player's application to one game. Accepted is nil while pending.
type RequestToJoin struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	GameID    uint       `gorm:"not null;uniqueIndex:idx_request_game_player" json:"gameId"`
	Game      *Game      `gorm:"foreignKey:GameID" json:"-"`
	PlayerID  string     `gorm:"size:24;not null;uniqueIndex:idx_request_game_player" json:"playerId"`
	Player    *user.User `gorm:"foreignKey:PlayerID" json:"-"`
	Accepted  *bool      `json:"accepted"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (RequestToJoin) TableName() string { return "request_to_joins" }

// Pending reports whether the organiser has not decided yet.
func (r *RequestToJoin) Pending() bool { return r.Accepted == nil }

// Rating is an organiser's score for a player in one game.
type Rating struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PlayerID string `gorm:"size:24;not null;uniqueIndex:idx_rating_player_game" json:"playerId"`
	GameID   uint   `gorm:"not null;uniqueIndex:idx_rating_player_game" json:"gameId"`
	Rating   int    `gorm:"not null" json:"rating"`
}

func (Rating) TableName() string { return "ratings" }

// NearestGame is one row of the distance query. Location is the raw ST_AsGeoJSON payload.
type NearestGame struct {
	ID       uint           `json:"id"`
	Location datatypes.JSON `json:"location"`
	Distance float64        `json:"distance"`
}

// FilterCriteria matches exactly on each field that is set.
type FilterCriteria struct {
	Day             *string `json:"day" binding:"omitempty,weekday"`
	Level           *string `json:"level" binding:"omitempty,gamelevel"`
	NumberOfPlayers *int    `json:"numberOfPlayers" binding:"omitempty,min=8,max=14"`
}

type CreateGameRequest struct {
	Day             string `json:"day" binding:"required,weekday" example:"Tuesday"`
	Active          *bool  `json:"active" example:"true"`
	Time            string `json:"time" binding:"required,clocktime" example:"19:30"`
	NumberOfPlayers int    `json:"numberOfPlayers" binding:"required,min=8,max=14" example:"10"`
	Level           string `json:"level" binding:"required,gamelevel" example:"INTERMEDIATE"`
	AddressID       uint   `json:"addressId" binding:"required" example:"1"`
}

type RateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5" example:"4"`
}

// MapData is what the map view needs for a marker. It never carries address fields.
type MapData struct {
	ID              uint         `json:"id"`
	Level           Level        `json:"level"`
	Day             string       `json:"day"`
	Time            string       `json:"time"`
	Coordinates     models.Point `json:"coordinates"`
	NumberOfPlayers int          `json:"numberOfPlayers"`
	PlayerCount     int          `json:"playerCount"`
}

// NearestGameData is a map marker with its distance in metres from the caller's address.
type NearestGameData struct {
	MapData
	Distance float64 `json:"distance"`
}

// Detail is the single-game view with the decrypted location.
type Detail struct {
	MapData
	Active          bool                 `json:"active"`
	Organiser       user.PlayerSummary   `json:"organiser"`
	Players         []user.PlayerSummary `json:"players"`
	Location        address.Fields       `json:"location"`
	IsOwner         bool                 `json:"isOwner"`
	IsCurrentPlayer bool                 `json:"isCurrentPlayer"`
	HasOpenRequest  bool                 `json:"hasOpenRequest"`
}

// OpenRequest is a pending request as shown to the organiser.
type OpenRequest struct {
	ID            uint               `json:"id"`
	GameID        uint               `json:"gameId"`
	Player        user.PlayerSummary `json:"player"`
	AverageRating *float64           `json:"averageRating"`
}

// Dashboard collects the caller's games and pending moderation.
type Dashboard struct {
	ManagedGames       []MapData     `json:"managedGames"`
	ParticipatingGames []MapData     `json:"participatingGames"`
	OpenRequests       []OpenRequest `json:"openRequests"`
	AverageRating      *float64      `json:"averageRating"`
}

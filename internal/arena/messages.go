package arena

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Message types, carried in the "type" field of every frame.
const (
	TypeCreateRoom  = "CREATE_ROOM"
	TypeJoinRoom    = "JOIN_ROOM"
	TypeLeaveRoom   = "LEAVE_ROOM"
	TypeUpdate      = "PLAYER_UPDATE"
	TypeShoot       = "PLAYER_SHOOT"
	TypeDamage      = "PLAYER_DAMAGE"
	TypeDeath       = "PLAYER_DEATH"
	TypeLevelUp     = "PLAYER_LEVEL_UP"
	TypeChat        = "CHAT_MESSAGE"
	TypeRoomCreated = "ROOM_CREATED"
	TypeRoomJoined  = "ROOM_JOINED"
	TypeExisting    = "EXISTING_PLAYERS"
	TypeJoined      = "PLAYER_JOINED"
	TypeLeft        = "PLAYER_LEFT"
	TypeError       = "ERROR"
)

// Vec3 is a world position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Upgrades is the client-defined upgrade tree of a player. The server
// stores and relays it without interpreting it.
type Upgrades struct {
	s *structpb.Struct
}

// Field returns the upgrade named key.
func (u Upgrades) Field(key string) (*structpb.Value, bool) {
	if u.s == nil {
		return nil, false
	}
	v, ok := u.s.Fields[key]
	return v, ok
}

func (u Upgrades) MarshalJSON() ([]byte, error) {
	if u.s == nil {
		return []byte("{}"), nil
	}
	return protojson.Marshal(u.s)
}

func (u *Upgrades) UnmarshalJSON(b []byte) error {
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(b, s); err != nil {
		return err
	}
	u.s = s
	return nil
}

// inbound is the union of every client message. Pointer fields are nil
// when the client left them out.
type inbound struct {
	Type       string `json:"type"`
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
	Team       string `json:"team"`
	Message    string `json:"message"`

	Position *Vec3     `json:"position"`
	Rotation *float64  `json:"rotation"`
	Health   *float64  `json:"health"`
	Level    *float64  `json:"level"`
	XP       *float64  `json:"xp"`
	Upgrades *Upgrades `json:"upgrades"`

	// Relayed verbatim.
	Direction    json.RawMessage `json:"direction"`
	ProjectileID json.RawMessage `json:"projectileId"`
	Damage       json.RawMessage `json:"damage"`
	AttackerID   json.RawMessage `json:"attackerId"`
	KillerID     json.RawMessage `json:"killerId"`
}

// PlayerState is the snapshot of a player shared with the rest of a room.
type PlayerState struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	Position Vec3     `json:"position"`
	Rotation float64  `json:"rotation"`
	Health   float64  `json:"health"`
	Level    float64  `json:"level"`
	XP       float64  `json:"xp"`
	Upgrades Upgrades `json:"upgrades"`
}

type roomMsg struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type errorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type existingMsg struct {
	Type    string        `json:"type"`
	Players []PlayerState `json:"players"`
}

type joinedMsg struct {
	Type   string      `json:"type"`
	Player PlayerState `json:"player"`
}

type leftMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type updateMsg struct {
	Type     string   `json:"type"`
	PlayerID string   `json:"playerId"`
	Position Vec3     `json:"position"`
	Rotation float64  `json:"rotation"`
	Health   float64  `json:"health"`
	Level    float64  `json:"level"`
	XP       float64  `json:"xp"`
	Upgrades Upgrades `json:"upgrades"`
}

type shootMsg struct {
	Type         string          `json:"type"`
	PlayerID     string          `json:"playerId"`
	Position     *Vec3           `json:"position,omitempty"`
	Direction    json.RawMessage `json:"direction,omitempty"`
	ProjectileID json.RawMessage `json:"projectileId,omitempty"`
}

type damageMsg struct {
	Type       string          `json:"type"`
	PlayerID   string          `json:"playerId"`
	Damage     json.RawMessage `json:"damage,omitempty"`
	Health     *float64        `json:"health,omitempty"`
	AttackerID json.RawMessage `json:"attackerId,omitempty"`
}

type deathMsg struct {
	Type     string          `json:"type"`
	PlayerID string          `json:"playerId"`
	KillerID json.RawMessage `json:"killerId,omitempty"`
}

type levelUpMsg struct {
	Type     string   `json:"type"`
	PlayerID string   `json:"playerId"`
	Level    float64  `json:"level"`
	XP       float64  `json:"xp"`
	Upgrades Upgrades `json:"upgrades"`
}

type chatMsg struct {
	Type       string `json:"type"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
}

package arena

import (
	"math/rand"
	"time"
)

const (
	// MaxPlayers is the room capacity.
	MaxPlayers = 4

	codeLen      = 6
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O, 1/I
)

func generateCode() string {
	b := make([]byte, codeLen)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// Player is a room member and the connection it plays from.
type Player struct {
	PlayerState
	client *Client
}

func newPlayer(c *Client, name, team string) *Player {
	if name == "" {
		name = "Player"
	}
	if team == "" {
		team = "Red Phoenix"
	}
	return &Player{
		PlayerState: PlayerState{
			ID:     c.ID,
			Name:   name,
			Team:   team,
			Health: 100,
			Level:  1,
		},
		client: c,
	}
}

// Room is a game session of up to MaxPlayers players.
type Room struct {
	Code    string
	HostID  string
	Created time.Time

	players []*Player // join order
}

func newRoom(code, hostID string, now time.Time) *Room {
	return &Room{Code: code, HostID: hostID, Created: now}
}

func (r *Room) Len() int { return len(r.players) }

func (r *Room) full() bool { return len(r.players) >= MaxPlayers }

func (r *Room) add(p *Player) { r.players = append(r.players, p) }

func (r *Room) remove(id string) {
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return
		}
	}
}

func (r *Room) player(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// others returns the snapshots of everyone except id.
func (r *Room) others(id string) []PlayerState {
	states := make([]PlayerState, 0, len(r.players))
	for _, p := range r.players {
		if p.ID != id {
			states = append(states, p.PlayerState)
		}
	}
	return states
}

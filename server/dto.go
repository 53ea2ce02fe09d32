package server

import "connectn/game"

// CreateGameRequest overrides the configured defaults for a new game. Zero values keep them.
type CreateGameRequest struct {
	Rows            int   `json:"rows" binding:"omitempty,min=1,max=100"`
	Cols            int   `json:"cols" binding:"omitempty,min=1,max=100"`
	WinLength       int   `json:"win_length" binding:"omitempty,min=1"`
	PlayerGoesFirst *bool `json:"player_goes_first"`
	Depth           int   `json:"depth" binding:"omitempty,min=1"`
}

type MoveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type DepthRequest struct {
	Depth int `json:"depth" binding:"required"`
}

type Hint struct {
	Row    int   `json:"row"`
	Col    int   `json:"col"`
	Weight int64 `json:"weight"`
}

type AIMoveResponse struct {
	Move  *game.Position `json:"move"` // null when the AI had nothing to play
	State State          `json:"state"`
}

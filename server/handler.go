package server

import (
	"errors"
	"net/http"

	"connectn/engine"
	"connectn/game"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func CreateGameHandler(store *Store, defaults engine.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		settings := defaults
		if req.Rows > 0 {
			settings.Rows = req.Rows
		}
		if req.Cols > 0 {
			settings.Cols = req.Cols
		}
		if req.WinLength > 0 {
			settings.WinLength = req.WinLength
		}
		if req.PlayerGoesFirst != nil {
			settings.PlayerGoesFirst = *req.PlayerGoesFirst
		}
		if req.Depth > 0 {
			settings.Depth = req.Depth
		}

		session, err := store.Create(settings)
		if err != nil {
			writeError(c, err)
			return
		}
		log.Info().Msgf("created game %s: %dx%d, %d to win, depth %d",
			session.ID, settings.Rows, settings.Cols, settings.WinLength, settings.Depth)
		c.JSON(http.StatusCreated, session.State())
	}
}

func GetGameHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, session.State())
	}
}

func LegalMovesHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		moves, err := session.LegalMoves()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"moves": moves})
	}
}

func HintsHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		candidates, err := session.Hints()
		if err != nil {
			writeError(c, err)
			return
		}
		hints := make([]Hint, 0, len(candidates))
		for _, candidate := range candidates {
			hints = append(hints, Hint{Row: candidate.Position.Row, Col: candidate.Position.Col, Weight: candidate.Weight})
		}
		c.JSON(http.StatusOK, gin.H{"candidates": hints})
	}
}

func MoveHandler(store *Store, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		state, err := session.Play(game.Position{Row: *req.Row, Col: *req.Col})
		if err != nil {
			writeError(c, err)
			return
		}
		hub.Broadcast(session.ID, "move", state)
		c.JSON(http.StatusOK, state)
	}
}

func AIMoveHandler(store *Store, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}

		move, ok, state, err := session.PlayAI(func() {
			hub.Broadcast(session.ID, "thinking", session.State())
		})
		if err != nil {
			writeError(c, err)
			return
		}

		resp := AIMoveResponse{State: state}
		if ok {
			resp.Move = &move
		}
		hub.Broadcast(session.ID, "ai_move", resp)
		c.JSON(http.StatusOK, resp)
	}
}

func UndoHandler(store *Store, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		state, err := session.Undo()
		if err != nil {
			writeError(c, err)
			return
		}
		hub.Broadcast(session.ID, "undo", state)
		c.JSON(http.StatusOK, state)
	}
}

func DepthHandler(store *Store, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		var req DepthRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": engine.ErrInvalidDepth.Error()})
			return
		}
		state, err := session.SetDepth(req.Depth)
		if err != nil {
			writeError(c, err)
			return
		}
		hub.Broadcast(session.ID, "depth", state)
		c.JSON(http.StatusOK, state)
	}
}

func DeleteGameHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := store.Get(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		store.Delete(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrOutOfBounds),
		errors.Is(err, game.ErrEmptyHistory),
		errors.Is(err, game.ErrInvalidDimensions),
		errors.Is(err, game.ErrInvalidWinLength),
		errors.Is(err, game.ErrBoardTooLarge),
		errors.Is(err, engine.ErrInvalidDepth):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

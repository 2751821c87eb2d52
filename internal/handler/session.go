package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RichardSen18/boardgame-store/internal/queue"
	"github.com/RichardSen18/boardgame-store/internal/repository"
	publisher "github.com/RichardSen18/boardgame-store/internal/service"
)

// SessionHandler drives the play-session lifecycle and the participant
// roster. The operator opening a session is the authenticated caller.
type SessionHandler struct {
	Sessions     *repository.SessionRepo
	Participants *repository.ParticipantRepo
	Games        *repository.GameRepo
	Users        *repository.UserRepo
}

func NewSessionHandler(sessions *repository.SessionRepo, participants *repository.ParticipantRepo, games *repository.GameRepo, users *repository.UserRepo) *SessionHandler {
	if sessions == nil || participants == nil || games == nil || users == nil {
		panic("nil repository passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions, Participants: participants, Games: games, Users: users}
}

// StartSession handles POST /v1/sessions. The body names the game either
// by id or by title (the floor staff usually knows the box, not the id).
func (h *SessionHandler) StartSession(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		GameID    uint64 `json:"game_id"`
		GameTitle string `json:"game_title"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	gameID := body.GameID
	if gameID == 0 && body.GameTitle != "" {
		g, err := h.Games.GetByTitle(ctx, body.GameTitle)
		if err != nil {
			if err == repository.ErrGameNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		gameID = g.ID
	}
	if gameID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "game_id or game_title is required"})
	}

	s, err := h.Sessions.Start(ctx, gameID, operatorID)
	if err != nil {
		if err == repository.ErrGameNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start session"})
	}
	return c.JSON(http.StatusCreated, s)
}

// FinalizeSession handles POST /v1/sessions/:id/finalize. Closing is
// single-use; a second call gets 409.
func (h *SessionHandler) FinalizeSession(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	s, err := h.Sessions.Finalize(ctx, id)
	if err != nil {
		switch err {
		case repository.ErrSessionNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		case repository.ErrSessionClosed:
			return c.JSON(http.StatusConflict, echo.Map{"error": "session already finalized"})
		case repository.ErrGameNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "finalize failed"})
	}

	title := ""
	if g, err := h.Games.GetByID(ctx, s.GameID); err == nil {
		title = g.Title
	}
	if err := publisher.SessionClosed(ctx, queue.SessionClosedEvent{
		SessionID:     s.ID,
		GameID:        s.GameID,
		GameTitle:     title,
		OperatorID:    s.OperatorID,
		DurationHours: *s.DurationHours,
		TotalPrice:    *s.TotalPrice,
		ClosedAt:      s.EndTime.Format(time.RFC3339),
	}); err != nil {
		log.Printf("session %d: publish event failed: %v", s.ID, err)
	}

	return c.JSON(http.StatusOK, s)
}

// GetSession handles GET /v1/sessions/:id.
func (h *SessionHandler) GetSession(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrSessionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, s)
}

// ListSessions handles GET /v1/sessions and returns open and closed
// sessions ordered by start time.
func (h *SessionHandler) ListSessions(c echo.Context) error {
	sessions, err := h.Sessions.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, sessions)
}

// DeleteSession handles DELETE /v1/sessions/:id; the roster cascades away.
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Sessions.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrSessionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterParticipant handles POST /v1/sessions/:id/participants. The body
// names the user by id or by name. Joining a closed session is allowed.
func (h *SessionHandler) RegisterParticipant(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		UserID   uint64 `json:"user_id"`
		UserName string `json:"user_name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	userID := body.UserID
	if userID == 0 && body.UserName != "" {
		u, err := h.Users.GetByName(ctx, body.UserName)
		if err != nil {
			if err == repository.ErrUserNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		userID = u.ID
	}
	if userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id or user_name is required"})
	}

	p, err := h.Participants.Register(ctx, id, userID)
	if err != nil {
		switch err {
		case repository.ErrSessionNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		case repository.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not register participant"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListParticipants handles GET /v1/sessions/:id/participants and returns
// user ids in insertion order.
func (h *SessionHandler) ListParticipants(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ids, err := h.Participants.ListBySession(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_ids": ids})
}

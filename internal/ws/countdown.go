// Package ws streams the live quiz countdown to connected clients.
package ws

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"milyoner_webapp/internal/logger"
	"milyoner_webapp/internal/quiz"
	"milyoner_webapp/internal/service"
)

// tick is one countdown frame pushed to the client.
type tick struct {
	State            quiz.State `json:"state"`
	Position         int        `json:"position"`
	Prize            int64      `json:"prize"`
	RemainingSeconds int        `json:"remaining_seconds"`
}

// Countdown upgrades the connection and pushes one frame per second while the
// user has an active session. The token travels as a query parameter because
// browsers cannot set headers on websocket upgrades.
func Countdown(quizService *service.QuizService) gin.HandlerFunc {
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}
		userID, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		go stream(conn, quizService, userID)
	}
}

func stream(conn *websocket.Conn, quizService *service.QuizService, userID int64) {
	defer conn.Close()

	// drain reads so close frames are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			session, err := quizService.Get(userID)
			if err != nil {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "no active session"),
					time.Now().Add(time.Second))
				return
			}

			frame := tick{
				State:            session.State,
				Position:         session.Position,
				Prize:            quiz.Prize(session.Position),
				RemainingSeconds: int(session.Remaining(time.Now()).Seconds()),
			}
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}

			if !session.Active() {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(session.State)),
					time.Now().Add(time.Second))
				return
			}
		}
	}
}

package server

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ChaseHandler starts a chase on the current level and streams a snapshot
// as JSON every tick until the client goes away. The optional frames query
// parameter ends the stream with a normal close after that many snapshots.
func (s *Server) ChaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.Session == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "chase streaming is disabled"})
			return
		}
		frames := 0
		if v := c.Query("frames"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "frames must be a non-negative integer"})
				return
			}
			frames = n
		}
		sess, err := s.opts.Session(s.Layout())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer sess.Close()

		conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade has already answered the client
			s.opts.Logger.WithError(err).Warn("server: websocket upgrade failed")
			return
		}
		defer conn.Close()

		log := s.opts.Logger.WithField("remote", c.Request.RemoteAddr)
		log.Info("server: chase stream opened")
		conn.SetPingHandler(func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			var ne net.Error
			if errors.Is(err, websocket.ErrCloseSent) || (errors.As(err, &ne) && ne.Timeout()) {
				return nil
			}
			return err
		})

		gone := make(chan struct{})
		go readUntilClosed(conn, gone)

		ticker := time.NewTicker(s.opts.Tick)
		defer ticker.Stop()
		for sent := 0; frames == 0 || sent < frames; sent++ {
			select {
			case <-gone:
				log.Info("server: chase stream closed by client")
				return
			case <-ticker.C:
			}
			sess.Step(s.opts.Tick)
			if err := conn.WriteJSON(sess.Snapshot()); err != nil {
				log.WithError(err).Warn("server: chase stream write failed")
				return
			}
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
		if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
			log.WithError(err).Debug("server: close frame not sent")
		}
		log.WithFields(logrus.Fields{"frames": frames}).Info("server: chase stream finished")
	}
}

// readUntilClosed drains client frames so control frames are handled, and
// closes gone when the connection fails.
func readUntilClosed(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

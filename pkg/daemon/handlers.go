package daemon

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/config"
	"github.com/hesapmakinesi/hesap/pkg/events"
	"github.com/hesapmakinesi/hesap/pkg/version"
)

func (s *Server) getState(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.session.Status())
}

func (s *Server) press(c *gin.Context) {
	var b calculator.Button
	if err := c.BindJSON(&b); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	c.IndentedJSON(http.StatusOK, s.session.Press(b))
}

func (s *Server) clear(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.session.Press(calculator.ButtonClear))
}

func (s *Server) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func (s *Server) getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

// streamEvents sends the current display first, then every change, as
// server-sent events until the client goes away.
func (s *Server) streamEvents(c *gin.Context) {
	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	if s.metrics != nil {
		s.metrics.EventSubscribers.Inc()
		defer s.metrics.EventSubscribers.Dec()
	}

	logrus.Debug("event subscriber connected")
	defer logrus.Debug("event subscriber disconnected")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	st := s.session.Status()
	c.SSEvent(events.DisplayChanged, events.DisplayChangedEvent{
		Value:          st.Value,
		Screen:         st.Screen,
		OperatorSymbol: st.OperatorSymbol,
		Phase:          string(st.Phase),
	})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		}
	})
}

package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hesapmakinesi/hesap/pkg/config"
	"github.com/hesapmakinesi/hesap/pkg/events"
	"github.com/hesapmakinesi/hesap/pkg/observability"
)

// Server serves one calculator session over HTTP.
type Server struct {
	conf    config.Config
	session *Session
	hub     *events.EventHub
	metrics *observability.Metrics
}

// NewServer creates a server with a fresh session. Metrics are collected only
// when the config enables them.
func NewServer(conf config.Config) *Server {
	hub := events.NewEventHub()

	var metrics *observability.Metrics
	if conf.MetricsEnabled() {
		metrics = observability.NewMetrics()
	}

	return &Server{
		conf:    conf,
		session: NewSession(hub, metrics),
		hub:     hub,
		metrics: metrics,
	}
}

// Session returns the session served by s.
func (s *Server) Session() *Session {
	return s.session
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/state", s.getState)
	router.POST("/press", s.press)
	router.POST("/clear", s.clear)
	router.GET("/config", s.getConfig)
	router.GET("/version", s.getVersion)
	router.GET("/events", s.streamEvents)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	return router
}

// Run starts the daemon on unixSocketPath and blocks until SIGINT or SIGTERM.
func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
		}
	}()

	s := NewServer(conf)

	// Request contexts derive from baseCtx so open event streams end on shutdown.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	// A socket left behind by a crashed daemon would make Listen fail.
	if fi, err := os.Stat(unixSocketPath); err == nil && fi.Mode()&os.ModeSocket != 0 {
		logrus.Warnf("removing stale socket %s", unixSocketPath)
		if err := os.Remove(unixSocketPath); err != nil {
			return pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
		}
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			_ = l.Close()
			return pkgerrors.Wrapf(err, "failed to chmod %s", unixSocketPath)
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	select {
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
	case err := <-serveErr:
		if err != nil {
			return pkgerrors.Wrapf(err, "http server failed")
		}
	}

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	logrus.WithField("screen", s.session.Status().Screen).Info("exiting")
	return nil
}

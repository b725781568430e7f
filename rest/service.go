package rest

import (
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/deadpool"
	"github.com/pkg/errors"
)

// StatusService exposes the state of a pool over HTTP.
type StatusService struct {
	pool deadpool.Pool
	app  *gimlet.APIApp
}

// WorkersStatus is the response body of the workers route.
type WorkersStatus struct {
	Pool    string `json:"pool"`
	Size    int    `json:"size"`
	Workers int    `json:"workers"`
	Closed  bool   `json:"closed"`
}

// NewStatusService constructs a service reporting on the given pool.
func NewStatusService(p deadpool.Pool) (*StatusService, error) {
	if p == nil {
		return nil, errors.New("cannot build a status service without a pool")
	}

	return &StatusService{pool: p}, nil
}

// App returns the service's gimlet application, building it on first
// use. The status routes are registered under /v1; resolve the app and
// serve its handler, or merge it into a larger application.
func (s *StatusService) App() *gimlet.APIApp {
	if s.app == nil {
		s.app = gimlet.NewApp()

		s.app.AddRoute("/status").Version(1).Get().Handler(s.Status)
		s.app.AddRoute("/status/workers").Version(1).Get().Handler(s.Workers)
	}

	return s.app
}

// Status writes the pool's stats as JSON.
func (s *StatusService) Status(rw http.ResponseWriter, r *http.Request) {
	gimlet.WriteJSON(rw, s.pool.Stats())
}

// Workers reports the number of live workers against the pool's size.
func (s *StatusService) Workers(rw http.ResponseWriter, r *http.Request) {
	stats := s.pool.Stats()

	gimlet.WriteJSON(rw, WorkersStatus{
		Pool:    stats.ID,
		Size:    stats.Size,
		Workers: stats.Workers,
		Closed:  stats.Closed,
	})
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fako1024/foodscale/pkg/device"
	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// StatusProvider denotes anything that can report what the scale currently shows
type StatusProvider interface {
	Status() device.Status
}

// EdgeHandler denotes anything that accepts button edges
type EdgeHandler interface {
	Handle(action scale.Action) bool
}

// Status denotes the JSON representation of the scale status
type Status struct {
	Weight        int    `json:"weight"`
	FoodType      string `json:"foodtype"`
	CategoryIndex int    `json:"category_index"`
	Session       string `json:"session"`
	SendPending   bool   `json:"send_pending"`
}

// ButtonResult denotes the JSON response to a soft button press
type ButtonResult struct {
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
}

// API denotes a REST API for the scale
type API struct {
	status  StatusProvider
	buttons EdgeHandler
	metrics http.Handler
	router  *fiber.App

	logger scale.Logger
}

// New instantiates a new API, executing functional options, if any
func New(status StatusProvider, buttons EdgeHandler, options ...func(*API)) (*API, error) {
	if status == nil || buttons == nil {
		return nil, errors.New("api requires a status provider and an edge handler")
	}

	api := &API{
		status:  status,
		buttons: buttons,
		router: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		logger: &scale.NullLogger{},
	}

	for _, option := range options {
		option(api)
	}

	// Setup routes
	api.router.Get("/", api.handlePage())
	api.router.Get("/status", api.handleStatus())
	api.router.Post("/buttons/:action", api.handleButton())
	if api.metrics != nil {
		api.router.Get("/metrics", adaptor.HTTPHandler(api.metrics))
	}

	return api, nil
}

// WithMetrics serves the given metrics handler on /metrics
func WithMetrics(h http.Handler) func(*API) {
	return func(api *API) {
		api.metrics = h
	}
}

// WithLogger sets the logger
func WithLogger(logger scale.Logger) func(*API) {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Listen serves the API on the given address, blocking until it is shut down
func (api *API) Listen(addr string) error {
	api.logger.Infof("serving api on %s", addr)
	return api.router.Listen(addr)
}

// Shutdown gracefully stops serving
func (api *API) Shutdown() error {
	return api.router.Shutdown()
}

// App returns the underlying router
func (api *API) App() *fiber.App {
	return api.router
}

////////////////////////////////////////////////////////////////////////////////

func (api *API) snapshot() Status {
	st := api.status.Status()
	return Status{
		Weight:        st.Weight,
		FoodType:      st.Category.Name,
		CategoryIndex: st.Category.Index,
		Session:       st.Session.String(),
		SendPending:   st.Pending,
	}
}

func (api *API) handlePage() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		st := api.snapshot()
		return c.SendString(fmt.Sprintf("Food Scale\nThe scale measurement is currently %dg\nThe food type selected is %s\n", st.Weight, st.FoodType))
	}
}

func (api *API) handleStatus() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		return c.JSON(api.snapshot())
	}
}

func (api *API) handleButton() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		action, err := scale.ParseAction(c.Params("action"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		accepted := api.buttons.Handle(action)
		api.logger.Debugf("soft button `%s` pressed, accepted: %v", action, accepted)

		return c.JSON(ButtonResult{
			Action:   action.String(),
			Accepted: accepted,
		})
	}
}

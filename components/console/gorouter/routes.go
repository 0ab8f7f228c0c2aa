package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	console "github.com/everkeep/go-admin-console/components/console"
	"github.com/everkeep/go-admin-console/components/console/commands"
	"github.com/everkeep/go-admin-console/components/console/httpapi"
	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

// Config wires go-router with the console controller, API executor, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *console.Controller
	API        httpapi.Executor
	Broadcast  *console.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	Overview  string
	Activity  string
	Health    string
	Users     string
	UserID    string
	Reset     string
	Recovery  string
	Ops       string
	Refresh   string
	Panels    string
	WebSocket string
}

// Register mounts console routes (JSON REST + WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/api/admin"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Overview, router.WrapHandler(func(ctx router.Context) error {
		snap, err := cfg.API.Overview(ctx.Context())
		if err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, snap)
	}))

	group.Get(routes.Activity, router.WrapHandler(func(ctx router.Context) error {
		query := adminapi.ActivityQuery{
			Limit:  intQuery(ctx, "limit", 10),
			Offset: intQuery(ctx, "offset", 0),
		}
		page, err := cfg.API.Activity(ctx.Context(), query)
		if err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, page)
	}))

	group.Get(routes.Health, router.WrapHandler(func(ctx router.Context) error {
		report, err := cfg.API.Health(ctx.Context())
		if err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, report)
	}))

	group.Get(routes.Users, router.WrapHandler(func(ctx router.Context) error {
		query := adminapi.UserQuery{
			Page:      intQuery(ctx, "page", 1),
			Limit:     intQuery(ctx, "limit", 20),
			Search:    ctx.Query("search"),
			SortBy:    ctx.Query("sortBy"),
			SortOrder: ctx.Query("sortOrder"),
		}
		page, err := cfg.API.Users(ctx.Context(), query)
		if err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, page)
	}))

	group.Post(routes.UserID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("user id is required"))
		}
		if err := cfg.API.Toggle(ctx.Context(), commands.ToggleUserStatusInput{UserID: id}); err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, map[string]string{"userId": id})
	}))

	group.Post(routes.Reset, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("user id is required"))
		}
		var payload struct {
			SendEmail bool   `json:"sendEmail"`
			Reason    string `json:"reason"`
		}
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		input := commands.ResetUserPasswordInput{
			UserID:    id,
			SendEmail: payload.SendEmail,
			Reason:    payload.Reason,
		}
		if err := cfg.API.Reset(ctx.Context(), input); err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, map[string]string{"userId": id})
	}))

	group.Post(routes.Recovery, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			ActionID     string   `json:"actionId"`
			Context      string   `json:"context"`
			ErrorDetails []string `json:"errorDetails"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.ExecuteRecoveryInput{
			ActionID:     payload.ActionID,
			Context:      payload.Context,
			ErrorDetails: payload.ErrorDetails,
		}
		if err := cfg.API.Recovery(ctx.Context(), input); err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, map[string]string{"actionId": payload.ActionID})
	}))

	group.Post(routes.Ops, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Op string `json:"op"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cfg.API.RunOp(ctx.Context(), commands.RunOpInput{Op: payload.Op}); err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, map[string]string{"op": payload.Op})
	}))

	group.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshPanelInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cfg.API.Refresh(ctx.Context(), payload); err != nil {
			return respondFailure(ctx, err)
		}
		return respondData(ctx, map[string]string{"panel": payload.Code})
	}))

	if cfg.Controller != nil {
		group.Get(routes.Panels, router.WrapHandler(func(ctx router.Context) error {
			return respondData(ctx, cfg.Controller.Definitions(ctx.Context()))
		}))
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerWebSocket[T any](r router.Router[T], hook *console.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func intQuery(ctx router.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// respondData serves the success envelope.
func respondData(ctx router.Context, data any) error {
	return ctx.JSON(http.StatusOK, map[string]any{"success": true, "data": data})
}

// respondFailure serves an application-level failure: HTTP 200 with
// success=false, per the platform's response contract.
func respondFailure(ctx router.Context, err error) error {
	return ctx.JSON(http.StatusOK, map[string]any{"success": false, "error": err.Error()})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]any{"success": false, "error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Overview == "" {
		routes.Overview = "/overview"
	}
	if routes.Activity == "" {
		routes.Activity = "/activity"
	}
	if routes.Health == "" {
		routes.Health = "/health/detailed"
	}
	if routes.Users == "" {
		routes.Users = "/users"
	}
	if routes.UserID == "" {
		routes.UserID = "/users/:id/status"
	}
	if routes.Reset == "" {
		routes.Reset = "/users/:id/reset-password"
	}
	if routes.Recovery == "" {
		routes.Recovery = "/recovery/execute"
	}
	if routes.Ops == "" {
		routes.Ops = "/ops"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/panels/refresh"
	}
	if routes.Panels == "" {
		routes.Panels = "/panels"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}

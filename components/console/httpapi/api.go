package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	gocommand "github.com/goliatone/go-command"

	console "github.com/everkeep/go-admin-console/components/console"
	"github.com/everkeep/go-admin-console/components/console/commands"
	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

// envelope is the response shape every endpoint serves: success with data, or
// failure with an error message. HTTP 200 carries both; transport-level
// failures use non-2xx statuses.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: message})
}

func writeBadRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: err.Error()})
}

// Overviewer resolves the combined overview round.
type Overviewer interface {
	Refresh(ctx context.Context) (*console.OverviewSnapshot, error)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Overview Overviewer
	Health   gocommand.Querier[struct{}, *adminapi.HealthReport]
	Activity gocommand.Querier[adminapi.ActivityQuery, *adminapi.ActivityPage]
	Users    gocommand.Querier[adminapi.UserQuery, *adminapi.UserPage]

	Toggle   gocommand.Commander[commands.ToggleUserStatusInput]
	Reset    gocommand.Commander[commands.ResetUserPasswordInput]
	Recovery gocommand.Commander[commands.ExecuteRecoveryInput]
	RunOp    gocommand.Commander[commands.RunOpInput]
	Refresh  gocommand.Commander[commands.RefreshPanelInput]
}

// HandleOverview serves the combined metrics/activity/health round.
func (h *Handlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Overview.Refresh(r.Context())
	if err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, snap)
}

// HandleHealth serves the system health report.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	report, err := h.Health.Query(r.Context(), struct{}{})
	if err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, report)
}

// HandleActivity serves one page of the activity feed.
func (h *Handlers) HandleActivity(w http.ResponseWriter, r *http.Request) {
	query := adminapi.ActivityQuery{
		Limit:  intParam(r, "limit", 10),
		Offset: intParam(r, "offset", 0),
	}
	page, err := h.Activity.Query(r.Context(), query)
	if err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, page)
}

// HandleUsers serves one page of the user directory.
func (h *Handlers) HandleUsers(w http.ResponseWriter, r *http.Request) {
	query := adminapi.UserQuery{
		Page:      intParam(r, "page", 1),
		Limit:     intParam(r, "limit", 20),
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortOrder"),
	}
	page, err := h.Users.Query(r.Context(), query)
	if err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, page)
}

// HandleToggleUser flips a user's active flag.
func (h *Handlers) HandleToggleUser(w http.ResponseWriter, r *http.Request, userID string) {
	input := commands.ToggleUserStatusInput{UserID: userID}
	if err := h.Toggle.Execute(r.Context(), input); err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, map[string]any{"userId": userID})
}

// HandleResetPassword triggers a password reset for a user.
func (h *Handlers) HandleResetPassword(w http.ResponseWriter, r *http.Request, userID string) {
	var payload struct {
		SendEmail bool   `json:"sendEmail"`
		Reason    string `json:"reason"`
	}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && err != io.EOF {
			writeBadRequest(w, err)
			return
		}
	}
	input := commands.ResetUserPasswordInput{
		UserID:    userID,
		SendEmail: payload.SendEmail,
		Reason:    payload.Reason,
	}
	if err := h.Reset.Execute(r.Context(), input); err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, map[string]any{"userId": userID})
}

// HandleExecuteRecovery runs a remediation action.
func (h *Handlers) HandleExecuteRecovery(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ActionID     string   `json:"actionId"`
		Context      string   `json:"context"`
		ErrorDetails []string `json:"errorDetails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	input := commands.ExecuteRecoveryInput{
		ActionID:     payload.ActionID,
		Context:      payload.Context,
		ErrorDetails: payload.ErrorDetails,
	}
	if err := h.Recovery.Execute(r.Context(), input); err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, map[string]any{"actionId": payload.ActionID})
}

// HandleRunOp executes a quick action.
func (h *Handlers) HandleRunOp(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Op string `json:"op"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := h.RunOp.Execute(r.Context(), commands.RunOpInput{Op: payload.Op}); err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, map[string]any{"op": payload.Op})
}

// HandleRefreshPanel pushes a refresh notification for a panel.
func (h *Handlers) HandleRefreshPanel(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshPanelInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := h.Refresh.Execute(r.Context(), payload); err != nil {
		writeError(w, err.Error())
		return
	}
	writeData(w, map[string]any{"panel": payload.Code})
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

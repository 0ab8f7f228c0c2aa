package console

// Panel codes for the built-in console panels. Manifests and transports
// address panels by these codes.
const (
	PanelOverviewMetrics = "admin.panel.overview_metrics"
	PanelActivityFeed    = "admin.panel.activity_feed"
	PanelSystemHealth    = "admin.panel.system_health"
	PanelUserDirectory   = "admin.panel.user_directory"
	PanelRecoveryActions = "admin.panel.recovery_actions"
	PanelQuickActions    = "admin.panel.quick_actions"
)

var defaultPanelDefinitions = []PanelDefinition{
	{
		Code:        PanelOverviewMetrics,
		Name:        "Overview Metrics",
		Description: "User, engagement, training, and retention summaries",
		Category:    "metrics",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"trend_days": map[string]any{
					"type":    "integer",
					"minimum": 7,
					"maximum": 90,
					"default": 30,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        PanelActivityFeed,
		Name:        "Recent Activity",
		Description: "Latest platform activity events",
		Category:    "activity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 50,
					"default": 10,
				},
				"event_types": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
						"enum": []string{
							"user_registration",
							"response_submitted",
							"training_job",
							"system_backup",
							"system_maintenance",
						},
					},
					"uniqueItems": true,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        PanelSystemHealth,
		Name:        "System Health",
		Description: "Database, error-rate, training, and host indicators",
		Category:    "status",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"poll_seconds": map[string]any{
					"type":    "integer",
					"minimum": 5,
					"maximum": 300,
					"default": 60,
				},
				"show_alerts": map[string]any{
					"type":    "boolean",
					"default": true,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        PanelUserDirectory,
		Name:        "User Directory",
		Description: "Server-paginated user management table",
		Category:    "management",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"page_size": map[string]any{
					"type":    "integer",
					"minimum": 5,
					"maximum": 100,
					"default": 20,
				},
				"sort_by": map[string]any{
					"type":    "string",
					"enum":    []string{"created_at", "name", "email", "last_login_at", "response_count"},
					"default": "created_at",
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        PanelRecoveryActions,
		Name:        "Recovery Actions",
		Description: "Grouped remediation actions for active error contexts",
		Category:    "operations",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"contexts": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        PanelQuickActions,
		Name:        "Quick Actions",
		Description: "One-shot operational shortcuts",
		Category:    "actions",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"actions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"label", "op"},
						"properties": map[string]any{
							"label": map[string]any{"type": "string"},
							"op":    map[string]any{"type": "string"},
							"icon":  map[string]any{"type": "string"},
						},
					},
				},
			},
			"additionalProperties": false,
		},
	},
}

// DefaultPanelDefinitions returns copies of the built-in panel definitions.
func DefaultPanelDefinitions() []PanelDefinition {
	out := make([]PanelDefinition, len(defaultPanelDefinitions))
	copy(out, defaultPanelDefinitions)
	return out
}

// DefaultQuickActions returns the standard operational shortcuts.
func DefaultQuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Start Training", Op: OpStartTraining, Icon: "play"},
		{Label: "Pause Training", Op: OpPauseTraining, Icon: "pause"},
		{Label: "Trigger Backup", Op: OpTriggerBackup, Icon: "archive"},
	}
}

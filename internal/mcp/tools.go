package mcp

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	nodeSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": "Node identifier, unique within the canonical graph",
			},
			"type": map[string]any{
				"type":        "string",
				"description": "Semantic node type (e.g., 'service', 'database', 'gateway')",
			},
			"label": map[string]any{
				"type":        "string",
				"description": "Human-readable label",
			},
			"meta": map[string]any{
				"type":        "object",
				"description": "Arbitrary attribute bag",
			},
		},
		"required": []string{"id", "type"},
	}
	edgeSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"from": map[string]any{
				"type":        "string",
				"description": "Source node ID",
			},
			"to": map[string]any{
				"type":        "string",
				"description": "Target node ID",
			},
			"label": map[string]any{
				"type":        "string",
				"description": "Edge label",
			},
			"meta": map[string]any{
				"type":        "object",
				"description": "Arbitrary attribute bag",
			},
		},
		"required": []string{"from", "to"},
	}

	return []ToolDefinition{
		// Projects
		{
			Name:        "create_project",
			Description: "Create a new project to hold modules and canonical snapshots",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Unique project identifier (optional, will be generated if not provided)",
					},
					"name": map[string]any{
						"type":        "string",
						"description": "Project display name",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Project description",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "list_projects",
			Description: "List all projects for the current tenant",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get_project",
			Description: "Get details for a specific project or the default project",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to get default project)",
					},
				},
			},
		},
		{
			Name:        "get_project_overview",
			Description: "Get a project overview: active snapshot summary, modules, and pending review count",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
				},
			},
		},

		// Module workflow
		{
			Name:        "propose_module",
			Description: "Propose a module of nodes and edges toward a project's architecture graph",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Module identifier (optional, will be generated if not provided)",
					},
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
					"order": map[string]any{
						"type":        "integer",
						"description": "Submission order within the project",
					},
					"confidence": map[string]any{
						"type":        "string",
						"description": "Confidence grade of the module's content",
						"enum":        []string{"high", "medium", "low"},
					},
					"nodes": map[string]any{
						"type":        "array",
						"description": "Nodes contributed by this module",
						"items":       nodeSchema,
					},
					"edges": map[string]any{
						"type":        "array",
						"description": "Directed edges contributed by this module",
						"items":       edgeSchema,
					},
					"author": map[string]any{
						"type":        "string",
						"description": "Who proposed the module",
					},
				},
				"required": []string{"order", "confidence", "nodes"},
			},
		},
		{
			Name:        "list_modules",
			Description: "List modules in a project, optionally filtered by status",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
					"statuses": map[string]any{
						"type":        "array",
						"description": "Filter by module statuses",
						"items": map[string]any{
							"type": "string",
							"enum": []string{"proposed", "approved", "modified", "rejected"},
						},
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results",
					},
					"offset": map[string]any{
						"type":        "integer",
						"description": "Offset for pagination",
					},
				},
			},
		},
		{
			Name:        "get_module",
			Description: "Get a module's full content by ID",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Module ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "approve_module",
			Description: "Approve a proposed or modified module, making it eligible to merge",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Module ID",
					},
					"actor": map[string]any{
						"type":        "string",
						"description": "Who approved the module",
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Reason for the decision",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "reject_module",
			Description: "Reject a proposed or modified module",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Module ID",
					},
					"actor": map[string]any{
						"type":        "string",
						"description": "Who rejected the module",
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Reason for the decision",
					},
				},
				"required": []string{"id"},
			},
		},

		// Merge path
		{
			Name:        "submit_module",
			Description: "Fold one approved module into the canonical graph, producing a new snapshot version or raising review items on conflict",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Module ID",
					},
					"actor": map[string]any{
						"type":        "string",
						"description": "Who triggered the merge",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "merge_approved",
			Description: "Fold all approved modules of a project in order; conflicted modules are recorded for review and skipped",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
					"actor": map[string]any{
						"type":        "string",
						"description": "Who triggered the merge",
					},
				},
			},
		},
		{
			Name:        "resubmit_module",
			Description: "Resubmit a conflicted module with an explicit resolution action",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Module ID",
					},
					"resolution": map[string]any{
						"type":        "string",
						"description": "How to resolve the conflicts",
						"enum":        []string{"apply_incoming", "keep_canonical", "merge_meta", "rename_and_keep_both"},
					},
					"actor": map[string]any{
						"type":        "string",
						"description": "Who resolved the conflicts",
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Reason for the resolution choice",
					},
				},
				"required": []string{"id", "resolution"},
			},
		},
		{
			Name:        "list_reviews",
			Description: "List pending review items for a project, optionally narrowed to one module",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
					"module_id": map[string]any{
						"type":        "string",
						"description": "Module ID to filter by",
					},
				},
			},
		},

		// Snapshots and history
		{
			Name:        "get_snapshot",
			Description: "Get the active canonical snapshot, or a specific version",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
					"version": map[string]any{
						"type":        "integer",
						"description": "Snapshot version (omit for the active snapshot)",
					},
				},
			},
		},
		{
			Name:        "list_history",
			Description: "List all snapshot versions for a project, newest first",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
				},
			},
		},
		{
			Name:        "diff_versions",
			Description: "Compute the structural difference between two snapshot versions",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
					"from_version": map[string]any{
						"type":        "integer",
						"description": "Baseline version",
					},
					"to_version": map[string]any{
						"type":        "integer",
						"description": "Target version",
					},
				},
				"required": []string{"from_version", "to_version"},
			},
		},
		{
			Name:        "rollback",
			Description: "Restore an earlier snapshot's content as a new version; history is never rewritten",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID (omit to use default project)",
					},
					"version": map[string]any{
						"type":        "integer",
						"description": "Version to restore",
					},
					"actor": map[string]any{
						"type":        "string",
						"description": "Who triggered the rollback",
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Reason for the rollback",
					},
				},
				"required": []string{"version"},
			},
		},

		// Audit
		{
			Name:        "get_recent_audit",
			Description: "Get recent audit entries for a project or specific module",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_id": map[string]any{
						"type":        "string",
						"description": "Project ID to filter by",
					},
					"module_id": map[string]any{
						"type":        "string",
						"description": "Module ID to filter by",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of entries",
					},
					"offset": map[string]any{
						"type":        "integer",
						"description": "Offset for pagination",
					},
				},
			},
		},
	}
}

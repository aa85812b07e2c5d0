package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `canon merges incrementally produced architecture diagrams into one canonical, versioned graph per project.

Core concepts (keep this mental model small):
- Project: container for modules and the canonical graph's snapshot history.
- Module: a proposed batch of nodes and edges, graded with a confidence (high/medium/low) and gated by an approval workflow (proposed → approved → merged).
- Canonical graph: the deduplicated union of all merged modules. Nodes dedupe by id, edges by (from, to).
- Snapshot: an immutable copy of the canonical graph at one version. Versions count up from 1; exactly one is active.
- Conflict: a semantic incompatibility (type mismatch, low confidence, incompatible singletons). Conflicts block the merge and raise review items; they never corrupt the canonical graph.

Rules of engagement (default workflow):
1) Orient: call get_project_overview (default project unless project_id provided).
2) Contribute: propose_module with nodes/edges, then approve_module once reviewed.
3) Merge: submit_module for one module, or merge_approved to fold everything approved in order.
4) If a merge is blocked: list_reviews to see why, then resubmit_module with an explicit resolution (apply_incoming, keep_canonical, merge_meta, rename_and_keep_both).
5) Inspect history: list_history, get_snapshot, diff_versions.
6) Undo: rollback restores an old version's content as a NEW version; history is never rewritten.

Docs (progressive disclosure):
- canon://docs/index (what to read when)
- canon://docs/concepts (glossary + invariants)
- canon://docs/workflows/merge
- canon://docs/workflows/conflicts
- canon://docs/module-writing
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "canon://docs/index",
		Name:        "docs_index",
		Title:       "canon docs index",
		Description: "Entry point for agent-facing docs: what exists, what to read, and known limitations.",
		Content: `# canon: Agent Docs Index

This server is designed for **progressive disclosure**: keep your baseline context small and load deeper docs only when needed.

## Quick start (no deep docs)

1. ` + "`get_project_overview`" + ` to orient (active version, modules, pending reviews).
2. ` + "`propose_module`" + ` to contribute nodes and edges.
3. ` + "`approve_module`" + ` then ` + "`submit_module`" + ` (or ` + "`merge_approved`" + ` for a batch).
4. On a blocked merge: ` + "`list_reviews`" + ` then ` + "`resubmit_module`" + ` with a resolution.
5. Inspect with ` + "`get_snapshot`" + `, ` + "`list_history`" + `, ` + "`diff_versions`" + `.
6. Undo with ` + "`rollback`" + ` (forward-only; creates a new version).

## Docs (read on demand)

- ` + "`canon://docs/concepts`" + ` — glossary + invariants (dedup rules, version monotonicity, conflict semantics).
- ` + "`canon://docs/module-writing`" + ` — how to shape modules that merge cleanly.
- ` + "`canon://docs/workflows/merge`" + ` — the normal propose → approve → merge loop.
- ` + "`canon://docs/workflows/conflicts`" + ` — what blocks a merge and how each resolution behaves.

## Capabilities & intentional limitations

- Diffs compare membership only (node ids, edge endpoints); attribute-level changes inside surviving elements are not reported.
- Edges referencing nodes absent from the canonical graph are dropped silently during merge — double-check endpoint ids.

## Where sizes live

` + "`resources/list`" + ` returns each doc resource with a ` + "`size`" + ` (bytes) estimate so clients can budget context.
`,
	},
	{
		URI:         "canon://docs/concepts",
		Name:        "docs_concepts",
		Title:       "Concepts and invariants",
		Description: "Mental model + invariant rules: dedup semantics, version monotonicity, and conflict-as-value.",
		Content: `# Concepts and invariants

## Glossary

- **Project**: container for modules and snapshot history.
- **Module**: a batch of nodes and edges with a ` + "`confidence`" + ` grade and an approval ` + "`status`" + `.
- **Canonical graph**: the accumulated, deduplicated union of merged modules.
- **Snapshot**: immutable copy of the canonical graph at one version.
- **Review item**: a persisted conflict awaiting an explicit resolution.

## Dedup rules (what happens on merge)

- Nodes dedupe by ` + "`id`" + `. A high-confidence module overwrites the existing type and label; lower confidence keeps them. Meta bags shallow-merge with incoming keys winning.
- Edges dedupe by the ordered ` + "`(from, to)`" + ` pair. Meta bags union; an empty label is filled from the incoming edge.
- Edges whose endpoints don't exist after the module folds in are dropped silently.

## Version invariants

- Versions are consecutive integers per project starting at 1.
- Exactly one snapshot per project is active once any exists.
- Snapshots are never updated or deleted. Rollback copies an old version's content into a NEW, later version.

## Conflicts are values, not errors

Detection runs before a module folds in. Any conflict blocks the whole module, raises review items, and leaves the active snapshot untouched. Conflict types:

- ` + "`low_confidence`" + `: the module is graded low; always routed to review.
- ` + "`node_type_mismatch`" + `: a node id exists canonically with a different type.
- ` + "`database_plurality`" + ` / ` + "`gateway_plurality`" + `: two distinct singleton attribute values (database ` + "`engine`" + `, gateway ` + "`provider`" + `) would coexist.
`,
	},
	{
		URI:         "canon://docs/workflows/merge",
		Name:        "docs_workflow_merge",
		Title:       "Workflow: propose, approve, merge",
		Description: "Playbook for the normal contribution loop.",
		Content: `# Workflow: propose, approve, merge

## 1) Orient (one call)

Call ` + "`get_project_overview`" + ` (optionally with ` + "`project_id`" + `).

Use it to answer:
- What's the active snapshot version, and how big is the graph?
- Which modules exist, and in what status?
- Are reviews pending?

## 2) Contribute

` + "`propose_module`" + ` with ` + "`order`" + `, ` + "`confidence`" + `, ` + "`nodes`" + `, and ` + "`edges`" + `. Reuse canonical node ids on purpose when you mean the same component — dedup is how the graph grows coherently.

## 3) Approve and merge

- ` + "`approve_module`" + ` moves a proposed module into the mergeable state.
- ` + "`submit_module`" + ` folds one module; ` + "`merge_approved`" + ` folds every approved module in submission order, skipping conflicted ones.
- Each clean fold produces a new snapshot version.

## 4) Verify

- ` + "`diff_versions`" + ` between the prior and new version shows exactly what the module added.
- ` + "`get_snapshot`" + ` returns the full active graph when you need to reason over it.
`,
	},
	{
		URI:         "canon://docs/workflows/conflicts",
		Name:        "docs_workflow_conflicts",
		Title:       "Workflow: conflicts and resolutions",
		Description: "What blocks a merge and how each resolution action behaves.",
		Content: `# Workflow: conflicts and resolutions

## What a blocked merge means

` + "`submit_module`" + ` (or a module within ` + "`merge_approved`" + `) can come back with ` + "`merged: false`" + ` and a list of conflicts. The canonical graph is unchanged; review items were created.

Treat this as: **stop, inspect, and resolve explicitly**.

## Resolution protocol

1) ` + "`list_reviews`" + ` (narrow by ` + "`module_id`" + `) to see every pending conflict.
2) ` + "`get_snapshot`" + ` and ` + "`get_module`" + ` to compare both sides.
3) ` + "`resubmit_module`" + ` with one resolution action:

- ` + "`apply_incoming`" + `: the module's version of colliding nodes wins (type, label, meta keys).
- ` + "`keep_canonical`" + `: the canonical version wins; only novel incoming meta keys land.
- ` + "`merge_meta`" + `: canonical type and label stay, meta bags merge with incoming keys winning.
- ` + "`rename_and_keep_both`" + `: colliding incoming nodes are renamed (suffixed with the module id) so both versions coexist; the module's own edges follow the rename.

Resubmitting resolves the module's pending reviews and produces a new snapshot version.

## Choosing a resolution

Prefer ` + "`keep_canonical`" + ` or ` + "`merge_meta`" + ` when the canonical graph is trusted. Use ` + "`rename_and_keep_both`" + ` when the collision is two genuinely different components sharing an id — renaming preserves both for a human to reconcile later.
`,
	},
	{
		URI:         "canon://docs/module-writing",
		Name:        "docs_module_writing",
		Title:       "Module writing guide",
		Description: "How to shape modules that merge cleanly and keep the canonical graph coherent.",
		Content: `# Module writing guide

Modules should merge cleanly and leave the canonical graph self-explaining.

## Field guidance

- Node ` + "`id`" + `: stable and meaningful (e.g. ` + "`api_gateway`" + `, ` + "`orders_db`" + `). Reuse an existing id only when you mean the same component.
- Node ` + "`type`" + `: one of the project's semantic vocabulary (service, database, gateway, queue, cache, ...). A type mismatch on an existing id blocks the merge.
- ` + "`meta`" + `: put identifying attributes here (database ` + "`engine`" + `, gateway ` + "`provider`" + `). Singleton rules read these keys.
- ` + "`confidence`" + `: grade honestly. Low confidence always routes to review — that is the point, not a penalty.

## Keep merges clean

- Reference only node ids that exist, either in the module itself or already in the canonical graph. Dangling edges are dropped without warning.
- Prefer several small, coherent modules over one sprawling one; conflicts block whole modules.
- Keep ` + "`order`" + ` meaningful: batch merges fold modules in order, and later modules see earlier ones' contributions.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

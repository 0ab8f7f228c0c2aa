package console

import (
	"context"
	"errors"
	"sync"
)

// ErrActionPending rejects a second mutating action for a row that already
// has one in flight.
var ErrActionPending = errors.New("console: action already pending for row")

// Row is an entity rendered as one management-table row.
type Row interface {
	RowID() string
}

// SortOrder is a server-side sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// TableQuery mirrors the server-side list parameters. The client holds no
// full dataset; every change of search, sort, or page is a refetch.
type TableQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder SortOrder
}

// TablePage is one page of rows plus the server's pagination verdict.
type TablePage[R Row] struct {
	Rows       []R
	TotalPages int
	TotalRows  int
}

// PageLoader fetches one page of rows for the given query.
type PageLoader[R Row] func(ctx context.Context, query TableQuery) (TablePage[R], error)

// ActionGate serializes row-level mutations: one in-flight action per row.
type ActionGate struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

// NewActionGate builds an empty gate.
func NewActionGate() *ActionGate {
	return &ActionGate{pending: make(map[string]struct{})}
}

// Begin marks a row action as in flight, rejecting double submission.
func (g *ActionGate) Begin(rowID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.pending[rowID]; busy {
		return ErrActionPending
	}
	g.pending[rowID] = struct{}{}
	return nil
}

// End clears the in-flight marker for a row.
func (g *ActionGate) End(rowID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, rowID)
}

// Pending reports whether a row currently has an action in flight.
func (g *ActionGate) Pending(rowID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.pending[rowID]
	return busy
}

// Table is a server-driven list view: search, sort, and pagination are query
// parameters resolved by the backend, row mutations are fire-and-refetch, and
// bulk actions run over an explicit selection set scoped to the current page.
type Table[R Row] struct {
	load      PageLoader[R]
	gate      *ActionGate
	telemetry Telemetry

	mu        sync.Mutex
	query     TableQuery
	page      TablePage[R]
	err       string
	loading   bool
	fetched   bool
	selection map[string]struct{}
}

// TableOption customizes table construction.
type TableOption[R Row] func(*Table[R])

// WithTableQuery overrides the initial query.
func WithTableQuery[R Row](query TableQuery) TableOption[R] {
	return func(t *Table[R]) {
		t.query = query
	}
}

// WithTableTelemetry wires a telemetry recorder.
func WithTableTelemetry[R Row](tel Telemetry) TableOption[R] {
	return func(t *Table[R]) {
		t.telemetry = tel
	}
}

// NewTable builds a table over a page loader. The default query is page 1,
// twenty rows, sorted by created_at descending.
func NewTable[R Row](load PageLoader[R], opts ...TableOption[R]) *Table[R] {
	t := &Table[R]{
		load: load,
		gate: NewActionGate(),
		query: TableQuery{
			Page:      1,
			Limit:     20,
			SortBy:    "created_at",
			SortOrder: SortDesc,
		},
		selection: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.telemetry = normalizeTelemetry(t.telemetry)
	if t.query.Page <= 0 {
		t.query.Page = 1
	}
	return t
}

// Query returns the current server-side query.
func (t *Table[R]) Query() TableQuery {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.query
}

// Page returns the last fetched page.
func (t *Table[R]) Page() TablePage[R] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// Err returns the last fetch error message, empty when the fetch succeeded.
func (t *Table[R]) Err() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Loading reports whether a non-silent fetch is in flight.
func (t *Table[R]) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Reload fetches the current page. Success replaces the rows and clears the
// selection; failure records the error and keeps the previously loaded rows.
func (t *Table[R]) Reload(ctx context.Context) error {
	t.mu.Lock()
	query := t.query
	t.loading = true
	t.mu.Unlock()

	page, err := t.load(ctx, query)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if err != nil {
		t.err = err.Error()
		return err
	}
	t.page = page
	t.err = ""
	t.fetched = true
	t.selection = make(map[string]struct{})
	return nil
}

// SetSearch updates the search filter. A changed filter resets to page 1 and
// refetches.
func (t *Table[R]) SetSearch(ctx context.Context, search string) error {
	t.mu.Lock()
	if t.query.Search == search {
		t.mu.Unlock()
		return nil
	}
	t.query.Search = search
	t.query.Page = 1
	t.mu.Unlock()
	return t.Reload(ctx)
}

// SortByColumn applies the sort toggle rule: re-selecting the active column
// flips the direction, selecting a new column starts it descending. Either
// way the page resets to 1 before the refetch.
func (t *Table[R]) SortByColumn(ctx context.Context, column string) error {
	t.mu.Lock()
	if t.query.SortBy == column {
		if t.query.SortOrder == SortDesc {
			t.query.SortOrder = SortAsc
		} else {
			t.query.SortOrder = SortDesc
		}
	} else {
		t.query.SortBy = column
		t.query.SortOrder = SortDesc
	}
	t.query.Page = 1
	t.mu.Unlock()
	return t.Reload(ctx)
}

// SetPage moves to the requested page, clamped to the known page range.
func (t *Table[R]) SetPage(ctx context.Context, page int) error {
	t.mu.Lock()
	if page < 1 {
		page = 1
	}
	if t.fetched && t.page.TotalPages > 0 && page > t.page.TotalPages {
		page = t.page.TotalPages
	}
	if page == t.query.Page {
		t.mu.Unlock()
		return nil
	}
	t.query.Page = page
	t.mu.Unlock()
	return t.Reload(ctx)
}

// Row looks up a row on the current page by id.
func (t *Table[R]) Row(rowID string) (R, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range t.page.Rows {
		if row.RowID() == rowID {
			return row, true
		}
	}
	var zero R
	return zero, false
}

// Select adds a row id to the selection set.
func (t *Table[R]) Select(rowID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection[rowID] = struct{}{}
}

// Deselect removes a row id from the selection set.
func (t *Table[R]) Deselect(rowID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.selection, rowID)
}

// Selected returns the currently selected row ids.
func (t *Table[R]) Selected() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.selection))
	for id := range t.selection {
		ids = append(ids, id)
	}
	return ids
}

// ClearSelection empties the selection set.
func (t *Table[R]) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = make(map[string]struct{})
}

// ActionPending reports whether a row has a mutation in flight.
func (t *Table[R]) ActionPending(rowID string) bool {
	return t.gate.Pending(rowID)
}

// RunRowAction executes a row-level mutation under the action gate, then
// refetches the whole page so the view reflects server truth. A failed action
// is returned without refetching; no optimistic state exists to roll back.
func (t *Table[R]) RunRowAction(ctx context.Context, rowID string, action func(ctx context.Context) error) error {
	if err := t.gate.Begin(rowID); err != nil {
		return err
	}
	defer t.gate.End(rowID)
	if err := action(ctx); err != nil {
		t.telemetry.Record(ctx, "console.table.action_error", map[string]any{
			"row":   rowID,
			"error": err.Error(),
		})
		return err
	}
	return t.Reload(ctx)
}

// BulkMutate runs a mutation concurrently over the selected rows, skipping
// rows the skip predicate rejects (already in the target state, protected).
// All issued calls settle before the page is refetched and the selection
// cleared. The number of issued mutations and any joined errors are returned.
func (t *Table[R]) BulkMutate(ctx context.Context, skip func(R) bool, mutate func(ctx context.Context, rowID string) error) (int, error) {
	ids := t.Selected()
	targets := make([]string, 0, len(ids))
	for _, id := range ids {
		row, ok := t.Row(id)
		if !ok {
			continue
		}
		if skip != nil && skip(row) {
			continue
		}
		targets = append(targets, id)
	}

	var (
		wg     sync.WaitGroup
		errMu  sync.Mutex
		joined error
	)
	for _, id := range targets {
		wg.Add(1)
		go func(rowID string) {
			defer wg.Done()
			if err := mutate(ctx, rowID); err != nil {
				errMu.Lock()
				joined = errors.Join(joined, err)
				errMu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if err := t.Reload(ctx); err != nil {
		joined = errors.Join(joined, err)
	}
	t.ClearSelection()
	return len(targets), joined
}

package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	humanize "github.com/dustin/go-humanize"

	"github.com/mobanhawi/dux/internal/config"
	"github.com/mobanhawi/dux/internal/insights"
	"github.com/mobanhawi/dux/internal/scanner"
)

// SortMode controls how children are ordered. It's a thin alias over the
// scanner's own SortMode so the browse-time sort toggle and the
// finalize-time sort share one vocabulary instead of needing a translation
// layer at every call site.
type SortMode = scanner.SortMode

const (
	// SortBySize sorts items by descending size.
	SortBySize = scanner.BySize
	// SortByName sorts items alphabetically.
	SortByName = scanner.ByName
)

// scanDoneMsg is sent when scanning (and the insight pass that follows it)
// completes.
type scanDoneMsg struct {
	snapshot *scanner.ScanSnapshot
	bundle   *insights.InsightBundle
	err      error
}

// Node is a local alias for the scanner node.
type Node = scanner.ScanNode

// AppState controls what the model is showing.
type AppState int

const (
	// StateScanning is the initial scanning progress view.
	StateScanning AppState = iota
	// StateBrowsing is the interactive file browser.
	StateBrowsing
	// StateConfirmDelete shows the deletion prompt overlay.
	StateConfirmDelete
	// StateError displays any unrecoverable errors.
	StateError
)

// Model is the Bubble Tea application model.
type Model struct {
	// Navigation state
	root   *Node
	stack  []*Node // breadcrumb stack; current dir = stack[len-1]
	cursor int
	sort   SortMode

	// sortGen is incremented each time the sort mode changes so that nodes
	// detect staleness in O(1) instead of walking the entire tree.
	sortGen uint64

	// Scan state
	state    AppState
	rootPath string
	absRoot  string // resolved once — avoids filepath.Abs on every View()
	scanErr  error
	cfg      config.AppConfig

	// bundle holds the generated insights for the current tree; nil until
	// scanning finishes. showInsights toggles the overlay panel.
	bundle        *insights.InsightBundle
	showInsights  bool
	insightCursor int

	// UI dimensions
	width  int
	height int

	// Widgets
	sp spinner.Model

	// Confirm-delete state
	confirmPath string

	// Live scan progress, updated directly from the scanner's progress
	// callback as it reports cumulative approximate files/directories.
	scanProgress   *progressState
	diskTotalBytes int64 // filesystem capacity, shown alongside scan progress

	// Purgeable space state
	purgeableSpace  int64
	purgeableReady  bool
	purgeableString string

	// Render caches — recomputed only when their inputs change.
	cachedDivider      string // "─" × width
	cachedDividerWidth int
	cachedHints        string // key-hint footer (static after init)
	cachedHintsWidth   int
	// cachedStatus caches the formatted humanize string for the status bar.
	cachedStatusSize  int64
	cachedStatusHuman string
}

// New constructs a fresh model targeting the given root path with cfg
// controlling scan depth/workers and the insight ruleset.
func New(rootPath string, cfg config.AppConfig) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleScanning

	return Model{
		rootPath:       rootPath,
		absRoot:        rootPath, // refined to the absolute path when scanDoneMsg arrives
		state:          StateScanning,
		sp:             sp,
		cfg:            cfg,
		scanProgress:   &progressState{},
		diskTotalBytes: diskTotal(rootPath),
		sortGen:        1, // start at 1 so zero-value nodes are always stale
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sp.Tick,
		startScan(m.rootPath, m.cfg, m.scanProgress),
		fetchPurgeable(m.rootPath),
	)
}

// purgeableSpaceMsg is sent when the background purgeable space fetch completes.
type purgeableSpaceMsg struct {
	space int64
	str   string
}

// fetchPurgeable computes the volume's purgeable space asynchronously.
func fetchPurgeable(path string) tea.Cmd {
	return func() tea.Msg {
		space := scanner.GetPurgeableSpace(path)
		if space < 0 {
			space = 0
		}
		return purgeableSpaceMsg{
			space: space,
			str:   humanize.Bytes(uint64(space)),
		}
	}
}

// progressState holds the latest scan progress reported from the scanner's
// worker goroutines, guarded by a mutex since callbacks may arrive
// concurrently with no ordering guarantee.
type progressState struct {
	mu    sync.Mutex
	path  string
	files int64
	dirs  int64
}

func (p *progressState) update(path string, files, dirs int64) {
	p.mu.Lock()
	p.path = path
	p.files = files
	p.dirs = dirs
	p.mu.Unlock()
}

func (p *progressState) snapshot() (path string, files, dirs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path, p.files, p.dirs
}

// startScan runs the concurrent scanner to completion, then builds the
// insight bundle from its result — both steps happen on tea's command
// goroutine, off the Update loop, so the spinner keeps ticking.
func startScan(root string, cfg config.AppConfig, prog *progressState) tea.Cmd {
	return func() tea.Msg {
		fs := scanner.NewOSFileSystem()
		opts := scanner.ScanOptions{MaxDepth: cfg.MaxDepth, Workers: cfg.ScanWorkers}

		progress := func(path string, files, dirs int64) {
			prog.update(path, files, dirs)
		}

		snapshot, scanErr := scanner.Scan(fs, root, opts, progress, nil)
		if scanErr != nil {
			return scanDoneMsg{err: scanErr}
		}

		// Scan's size finalization has already sorted every directory by
		// size; this re-sorts the root level only (not recursive).
		sortNode(snapshot.Root, SortBySize)

		bundle, err := insights.GenerateInsights(snapshot.Root, cfg)
		if err != nil {
			return scanDoneMsg{err: err}
		}

		return scanDoneMsg{snapshot: snapshot, bundle: bundle}
	}
}

// sortNode sorts a single node's children (not recursive).
// The sortGen/sortMode fields are NOT updated here — the caller (visibleChildren)
// stamps the generation after sorting to keep the contract simple.
func sortNode(n *Node, mode SortMode) {
	if n == nil {
		return
	}
	n.SortChildren(mode)
}

// currentDir returns the directory currently being browsed.
func (m *Model) currentDir() *Node {
	if len(m.stack) == 0 {
		return m.root
	}
	return m.stack[len(m.stack)-1]
}

// visibleChildren returns the sorted children of the current dir, sorting
// them lazily on first access using the generation counter so that a sort
// toggle is O(1) (just bumps sortGen) rather than O(N) (tree walk).
func (m *Model) visibleChildren() []*Node {
	d := m.currentDir()
	if d == nil {
		return nil
	}
	if !d.IsSorted(m.sortGen, m.sort) {
		sortNode(d, m.sort)
		d.MarkSorted(m.sortGen, m.sort)
	}
	return d.Children
}

// clampCursor ensures the cursor is within bounds.
func (m *Model) clampCursor() {
	n := len(m.visibleChildren())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the currently highlighted node (may be nil).
func (m *Model) selected() *Node {
	children := m.visibleChildren()
	if len(children) == 0 || m.cursor >= len(children) {
		return nil
	}
	return children[m.cursor]
}

// divider returns a cached "─" × m.width string, refreshing only when width
// changes to avoid a strings.Repeat allocation on every frame.
func (m *Model) divider() string {
	if m.cachedDividerWidth != m.width {
		m.cachedDivider = styleDivider.Render(strings.Repeat("─", m.width))
		m.cachedDividerWidth = m.width
	}
	return m.cachedDivider
}

// keyHints returns the cached footer key-hint string, rebuilding only when
// the terminal width changes (which is rare).
func (m *Model) keyHints() string {
	if m.cachedHintsWidth != m.width {
		k := func(key, desc string) string {
			return styleKey.Render(key) + " " + desc + "  "
		}
		raw := " " +
			k("↑↓/jk", "move") +
			k("→/enter", "enter") +
			k("←/bsp", "back") +
			k("o", "open") +
			k("r", "reveal") +
			k("d", "delete") +
			k("s", "sort") +
			k("i", "insights") +
			k("q", "quit")
		m.cachedHints = styleFooter.Width(m.width).Render(raw)
		m.cachedHintsWidth = m.width
	}
	return m.cachedHints
}

// humanSize returns a cached humanize.Bytes string for sz, refreshing only
// when sz changes. This avoids the humanize allocation on every render frame
// for the status-bar total-size display.
func (m *Model) humanSize(sz int64) string {
	if sz != m.cachedStatusSize || m.cachedStatusHuman == "" {
		m.cachedStatusSize = sz
		if sz < 0 {
			sz = 0
		}
		m.cachedStatusHuman = humanize.Bytes(uint64(sz)) // #nosec G115 -- sz is file size, non-negative
	}
	return m.cachedStatusHuman
}

// Sorted flag for root after init.
func (m *Model) markRootSorted() {
	if m.root != nil {
		m.root.MarkSorted(m.sortGen, m.sort)
	}
}

// itoa is a tiny allocation-free int→string for small non-negative values.
// For large N it falls back to humanize.Comma.
func itoa(n int) string {
	if n < len(itoaTable) {
		return itoaTable[n]
	}
	return humanize.Comma(int64(n))
}

// itoaTable holds pre-formatted strings for the most common item counts.
// Directories rarely have > 10k direct children, so 10 000 entries covers > 99 % of cases.
var itoaTable = func() []string {
	t := make([]string, 10001)
	for i := range t {
		t[i] = humanize.Comma(int64(i))
	}
	return t
}()

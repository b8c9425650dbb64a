package header

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
)

// ErrHeaderNotFound is returned when a matching strategy finds no header row.
var ErrHeaderNotFound = errors.New("header row not found")

// Strategy selects how the end of the header region is detected.
type Strategy string

const (
	// StrategyMaxFill picks the first row with the most non-blank resolved cells.
	StrategyMaxFill Strategy = "max-fill"
	// StrategyMergeExtent ends the header at the lowest row covered by a merge.
	StrategyMergeExtent Strategy = "merge-extent"
	// StrategyKeyword picks the first row containing a configured keyword.
	StrategyKeyword Strategy = "keyword"
	// StrategyExpr picks the first row matching a boolean expression.
	StrategyExpr Strategy = "expr"
)

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyMaxFill, StrategyMergeExtent, StrategyKeyword, StrategyExpr:
		return st, nil
	default:
		return "", fmt.Errorf("invalid strategy: %s (must be max-fill, merge-extent, keyword, or expr)", s)
	}
}

// BoundaryOptions configures Detect.
type BoundaryOptions struct {
	Strategy Strategy
	// Keywords are matched as case-sensitive substrings (keyword strategy).
	Keywords []string
	// Expr is the row predicate source (expr strategy).
	Expr string
	// LeafRow makes merge-extent include the row right under the merges.
	LeafRow bool
	// Matcher is a precompiled Expr. When set, Expr is not compiled again.
	Matcher *RowMatcher
}

// Boundary is the detected header region.
type Boundary struct {
	// H is the row chosen by the strategy.
	H int
	// LastHeaderRow is the last row that contributes header fragments.
	// Data starts at LastHeaderRow+1.
	LastHeaderRow int
}

// DataStartRow returns the first data row.
func (b Boundary) DataStartRow() int {
	return b.LastHeaderRow + 1
}

// Detect determines the header boundary of a grid. An empty grid yields the
// zero Boundary without scanning.
func Detect(g *models.Grid, idx *MergeIndex, opts BoundaryOptions) (Boundary, error) {
	if g.Empty() {
		return Boundary{}, nil
	}

	switch opts.Strategy {
	case StrategyMaxFill:
		h := maxFillRow(g, idx)
		return Boundary{H: h, LastHeaderRow: h}, nil
	case StrategyMergeExtent:
		return mergeExtent(g, idx, opts.LeafRow), nil
	case StrategyKeyword:
		h, err := keywordRow(g, opts.Keywords)
		if err != nil {
			return Boundary{}, err
		}
		return Boundary{H: h, LastHeaderRow: h}, nil
	case StrategyExpr:
		m := opts.Matcher
		if m == nil {
			var err error
			if m, err = CompileRowMatcher(opts.Expr); err != nil {
				return Boundary{}, err
			}
		}
		h, err := m.FirstMatch(g, idx)
		if err != nil {
			return Boundary{}, err
		}
		return Boundary{H: h, LastHeaderRow: h}, nil
	default:
		return Boundary{}, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}
}

// maxFillRow returns the first row holding the strictly largest number of
// non-blank resolved cells.
func maxFillRow(g *models.Grid, idx *MergeIndex) int {
	best, bestCount := 1, -1
	for r := 1; r <= g.MaxRow; r++ {
		count := 0
		for c := 1; c <= g.MaxCol; c++ {
			if !idx.ResolvedCell(g, r, c).IsBlank() {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = r, count
		}
	}
	return best
}

func mergeExtent(g *models.Grid, idx *MergeIndex, leafRow bool) Boundary {
	if idx.Len() == 0 {
		return Boundary{H: 1, LastHeaderRow: 1}
	}
	h := 1
	for _, m := range idx.Ranges() {
		h = max(h, m.MaxRow)
	}
	last := h
	if leafRow {
		last = h + 1
	}
	return Boundary{H: h, LastHeaderRow: min(last, g.MaxRow)}
}

func keywordRow(g *models.Grid, keywords []string) (int, error) {
	if len(keywords) == 0 {
		return 0, errors.New("keyword strategy requires at least one keyword")
	}
	for r := 1; r <= g.MaxRow; r++ {
		for c := 1; c <= g.MaxCol; c++ {
			text := strings.TrimSpace(g.Cell(r, c).String())
			if text == "" {
				continue
			}
			for _, kw := range keywords {
				if kw != "" && strings.Contains(text, kw) {
					return r, nil
				}
			}
		}
	}
	return 0, fmt.Errorf("%w: no cell contains any of %q", ErrHeaderNotFound, keywords)
}

// RowMatcher evaluates a compiled row predicate.
//
// The expression sees: row (int, 1-based), cells ([]string, trimmed resolved
// text of each column), filled (int, non-blank cells) and max_col (int).
type RowMatcher struct {
	source  string
	program *vm.Program
}

func rowEnv(row int, cells []string, filled, maxCol int) map[string]any {
	return map[string]any{
		"row":     row,
		"cells":   cells,
		"filled":  filled,
		"max_col": maxCol,
	}
}

// CompileRowMatcher compiles a boolean row predicate.
func CompileRowMatcher(source string) (*RowMatcher, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("expr strategy requires an expression")
	}
	program, err := expr.Compile(source, expr.Env(rowEnv(0, []string{}, 0, 0)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile row expression %q: %w", source, err)
	}
	return &RowMatcher{source: source, program: program}, nil
}

// Match evaluates the predicate against one sheet row.
func (m *RowMatcher) Match(g *models.Grid, idx *MergeIndex, row int) (bool, error) {
	cells := make([]string, g.MaxCol)
	filled := 0
	for c := 1; c <= g.MaxCol; c++ {
		cells[c-1] = strings.TrimSpace(idx.ResolvedCell(g, row, c).String())
		if cells[c-1] != "" {
			filled++
		}
	}
	out, err := expr.Run(m.program, rowEnv(row, cells, filled, g.MaxCol))
	if err != nil {
		return false, fmt.Errorf("evaluate row expression %q at row %d: %w", m.source, row, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// FirstMatch returns the first row satisfying the predicate.
func (m *RowMatcher) FirstMatch(g *models.Grid, idx *MergeIndex) (int, error) {
	for r := 1; r <= g.MaxRow; r++ {
		ok, err := m.Match(g, idx, r)
		if err != nil {
			return 0, err
		}
		if ok {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: no row matches %q", ErrHeaderNotFound, m.source)
}

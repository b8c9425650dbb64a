// Package sheetflat flattens multi-row, merged-cell spreadsheet headers into
// a single header row and removes fully empty data rows.
package sheetflat

import (
	"fmt"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/header"
)

// Strategy aliases the header boundary strategies.
type Strategy = header.Strategy

const (
	StrategyMaxFill     = header.StrategyMaxFill
	StrategyMergeExtent = header.StrategyMergeExtent
	StrategyKeyword     = header.StrategyKeyword
	StrategyExpr        = header.StrategyExpr
)

// Policy aliases the header combine policies.
type Policy = header.Policy

const (
	PolicyJoin  = header.PolicyJoin
	PolicyDedup = header.PolicyDedup
)

// Logger receives progress messages. *logging.Logger satisfies it.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
}

// Options configures a cleaning run.
type Options struct {
	// Strategy selects header boundary detection.
	Strategy Strategy
	// HeaderPolicy selects how header fragments are combined.
	HeaderPolicy Policy
	// Keywords are used by StrategyKeyword.
	Keywords []string
	// Expr is the row predicate used by StrategyExpr.
	Expr string
	// LeafRow makes StrategyMergeExtent treat the row right below the
	// merges as part of the header. Defaults to true.
	LeafRow bool
	// Sheet names the worksheet to process. Empty means the first sheet.
	Sheet string
	// PrintArea restricts processing to the sheet's print area, if defined.
	PrintArea bool
	// Logger receives stage timings. Nil disables logging.
	Logger Logger
}

// DefaultOptions returns default cleaning options.
func DefaultOptions() Options {
	return Options{
		Strategy:     StrategyMergeExtent,
		HeaderPolicy: PolicyJoin,
		LeafRow:      true,
	}
}

// Validate checks that the options select a usable strategy and policy.
func (o Options) Validate() error {
	_, err := o.prepare()
	return err
}

// prepare validates the options and returns the boundary options for Detect,
// with the expr strategy's predicate compiled.
func (o Options) prepare() (header.BoundaryOptions, error) {
	bopts := header.BoundaryOptions{
		Strategy: o.Strategy,
		Keywords: o.Keywords,
		Expr:     o.Expr,
		LeafRow:  o.LeafRow,
	}

	switch o.Strategy {
	case StrategyMaxFill, StrategyMergeExtent:
	case StrategyKeyword:
		if len(o.Keywords) == 0 {
			return bopts, fmt.Errorf("%w: keyword strategy requires at least one keyword", ErrInvalidOptions)
		}
	case StrategyExpr:
		m, err := header.CompileRowMatcher(o.Expr)
		if err != nil {
			return bopts, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
		bopts.Matcher = m
	default:
		return bopts, fmt.Errorf("%w: unknown strategy %q", ErrInvalidOptions, o.Strategy)
	}

	switch o.HeaderPolicy {
	case PolicyJoin, PolicyDedup:
	default:
		return bopts, fmt.Errorf("%w: unknown header policy %q", ErrInvalidOptions, o.HeaderPolicy)
	}
	return bopts, nil
}

func (o Options) debugf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Debug(format, args...)
	}
}

func (o Options) infof(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Info(format, args...)
	}
}

package nabo

import (
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Config controls index construction.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Kind is the search strategy. "brute_force" scans the whole cloud on
	// every query and costs nothing to build; "kdtree" builds a k-d tree
	// once and prunes most of the cloud on each query. "auto" picks brute
	// force for clouds of at most 32 points or more than 60 dimensions and
	// the k-d tree otherwise. Default: "kdtree".
	Kind Kind

	// Logger receives a debug record for each index built. Default: a
	// logger that discards everything.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Kind:   KindKDTree,
		Logger: discardLogger(),
	}
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Kind == "" {
		cfg.Kind = KindKDTree
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	switch cfg.Kind {
	case KindAuto, KindBruteForce, KindKDTree:
		// valid
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, cfg.Kind)
	}
	return nil
}

// NewIndex builds an index of the given kind over the columns of cloud.
func NewIndex(cloud mat.Matrix, kind Kind) (Index, error) {
	cfg := DefaultConfig()
	cfg.Kind = kind
	return NewIndexWithConfig(cloud, cfg)
}

// NewIndexWithConfig builds an index over the columns of cloud as cfg
// describes.
func NewIndexWithConfig(cloud mat.Matrix, cfg Config) (Index, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	kind := selectKind(cfg.Kind, cloud)
	start := time.Now()
	var (
		idx   Index
		nodes int
	)
	switch kind {
	case KindBruteForce:
		b, err := NewBruteForce(cloud)
		if err != nil {
			return nil, err
		}
		idx = b
	default:
		t, err := NewKDTree(cloud)
		if err != nil {
			return nil, err
		}
		idx, nodes = t, len(t.nodes)
	}

	cfg.Logger.Debug("index built",
		"kind", string(kind),
		"points", idx.Len(),
		"dim", idx.Dim(),
		"nodes", nodes,
		"elapsed", time.Since(start),
	)
	return idx, nil
}

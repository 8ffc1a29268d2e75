package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// SymbolLister lists every ticker the provider knows about.
type SymbolLister interface {
	ListSymbols(ctx context.Context) ([]string, error)
}

// SymbolUniverse is the process-lifetime set of known tickers. It is loaded
// on first use, at most once, and never refreshed. A failed load leaves the
// universe empty forever, and an empty universe accepts every symbol.
type SymbolUniverse struct {
	lister  SymbolLister
	logger  *zap.Logger
	once    sync.Once
	symbols map[string]struct{}
}

// NewSymbolUniverse creates a universe backed by lister. Nothing is fetched
// until the first Contains call.
func NewSymbolUniverse(lister SymbolLister, logger *zap.Logger) *SymbolUniverse {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SymbolUniverse{lister: lister, logger: logger}
}

// Contains reports whether symbol is a known ticker. It fails open: when the
// universe could not be loaded every symbol is reported as known.
func (u *SymbolUniverse) Contains(ctx context.Context, symbol string) bool {
	u.once.Do(func() { u.load(ctx) })

	if len(u.symbols) == 0 {
		u.logger.Warn("symbol universe unavailable, accepting symbol", zap.String("symbol", symbol))
		return true
	}
	_, ok := u.symbols[strings.ToUpper(symbol)]
	return ok
}

func (u *SymbolUniverse) load(ctx context.Context) {
	// the universe outlives the request that happens to load it
	symbols, err := u.lister.ListSymbols(context.WithoutCancel(ctx))
	if err != nil {
		u.logger.Error("failed to load symbol universe", zap.Error(err))
		return
	}

	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[strings.ToUpper(s)] = struct{}{}
	}
	u.symbols = set
	u.logger.Info("loaded symbol universe", zap.Int("count", len(set)))
}

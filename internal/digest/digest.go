package digest

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"signalist-api/internal/repo"
	"signalist-api/internal/watchlist"
)

// SymbolSource resolves watchlist symbols for a user's email, fail-soft.
type SymbolSource interface {
	SymbolsByEmail(ctx context.Context, email string) []string
}

// Digest is the per-user market summary rendered into the daily email.
type Digest struct {
	Email   string
	Lines   []string
	Summary string // optional AI-written paragraph, empty when no summarizer
}

// Builder assembles per-user digests from watchlist membership and cached quotes.
type Builder struct {
	symbols    SymbolSource
	quotes     *repo.QuoteRepo
	summarizer *Summarizer
}

// NewBuilder wires a digest builder. summarizer may be nil.
func NewBuilder(symbols SymbolSource, quotes *repo.QuoteRepo, summarizer *Summarizer) *Builder {
	return &Builder{symbols: symbols, quotes: quotes, summarizer: summarizer}
}

// Build renders the digest for one user. A user with no symbols or no
// retrievable quotes gets a nil digest, which callers skip. Per-symbol fetch
// failures drop the symbol, mirroring the interactive aggregation contract.
func (b *Builder) Build(ctx context.Context, email string) (*Digest, error) {
	symbols := b.symbols.SymbolsByEmail(ctx, email)
	if len(symbols) == 0 {
		return nil, nil
	}

	lines := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		snapshot, err := b.quotes.Snapshot(ctx, symbol)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logx.WithContext(ctx).Infof("digest: skipping %s for %s: %v", symbol, email, err)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %s, %s",
			snapshot.Symbol,
			snapshot.Company,
			watchlist.FormatPrice(snapshot.Price.Current),
			watchlist.FormatChangePercent(snapshot.Change.Percent)))
	}
	if len(lines) == 0 {
		return nil, nil
	}

	d := &Digest{Email: email, Lines: lines}
	if b.summarizer != nil {
		summary, err := b.summarizer.Summarize(ctx, lines)
		if err != nil {
			logx.WithContext(ctx).Errorf("digest: summarize for %s: %v", email, err)
		} else {
			d.Summary = summary
		}
	}
	return d, nil
}

// Render returns the plain-text body for the digest email.
func (d *Digest) Render() string {
	var sb strings.Builder
	if d.Summary != "" {
		sb.WriteString(d.Summary)
		sb.WriteString("\n\n")
	}
	for _, line := range d.Lines {
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Package gateway exposes the server's generic dataset surface:
// search_read, read, create, write and unlink over the call_kw endpoint.
// Every operation requires an authenticated session; the guard lives in
// the session manager this gateway calls through.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/odooclock/internal/logging"
)

const datasetEndpoint = "/web/dataset/call_kw"

// Caller is the authenticated call surface; *session.Manager satisfies it.
type Caller interface {
	Call(ctx context.Context, endpoint string, params any) (json.RawMessage, error)
}

// Options are the paging and ordering knobs for search operations.
// Order is forwarded to the server unmodified; server ordering is
// authoritative and no client-side sorting is performed.
type Options struct {
	Limit  int
	Offset int
	Order  string
}

// Gateway issues generic model operations through an authenticated caller.
type Gateway struct {
	caller Caller
	log    logging.Logger
}

func New(caller Caller, log logging.Logger) *Gateway {
	return &Gateway{caller: caller, log: log.With("component", "gateway")}
}

func (g *Gateway) call(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	result, err := g.caller.Call(ctx, datasetEndpoint, map[string]any{
		"model":  model,
		"method": method,
		"args":   args,
		"kwargs": kwargs,
	})
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", model, method, err)
	}
	return result, nil
}

// SearchRead returns records matching domain, as a raw JSON array for the
// caller to decode into its model type. An empty fields slice requests all
// fields (server default).
func (g *Gateway) SearchRead(ctx context.Context, model string, domain Domain, fields []string, opts *Options) (json.RawMessage, error) {
	if domain == nil {
		domain = Domain{}
	}
	if fields == nil {
		fields = []string{}
	}

	kwargs := map[string]any{
		"domain": domain,
		"fields": fields,
	}
	applyOptions(kwargs, opts)

	return g.call(ctx, model, "search_read", nil, kwargs)
}

// Search returns only the ids of matching records.
func (g *Gateway) Search(ctx context.Context, model string, domain Domain, opts *Options) ([]int64, error) {
	if domain == nil {
		domain = Domain{}
	}

	kwargs := map[string]any{}
	applyOptions(kwargs, opts)

	result, err := g.call(ctx, model, "search", []any{domain}, kwargs)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(result, &ids); err != nil {
		return nil, fmt.Errorf("%s.search: decoding ids: %w", model, err)
	}
	return ids, nil
}

// Read fetches records by id, preserving server order. Ids with no match
// are skipped by the server; an empty result is not a failure.
func (g *Gateway) Read(ctx context.Context, model string, ids []int64, fields []string) (json.RawMessage, error) {
	if fields == nil {
		fields = []string{}
	}
	return g.call(ctx, model, "read", []any{ids}, map[string]any{"fields": fields})
}

// Create inserts one record and returns its server-assigned id.
func (g *Gateway) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	result, err := g.call(ctx, model, "create", []any{values}, nil)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := json.Unmarshal(result, &id); err != nil {
		return 0, fmt.Errorf("%s.create: decoding id: %w", model, err)
	}
	return id, nil
}

// Write updates the given records. Failures are surfaced, not retried.
func (g *Gateway) Write(ctx context.Context, model string, ids []int64, values map[string]any) (bool, error) {
	result, err := g.call(ctx, model, "write", []any{ids, values}, nil)
	if err != nil {
		return false, err
	}
	return decodeBool(model, "write", result)
}

// Unlink deletes the given records.
func (g *Gateway) Unlink(ctx context.Context, model string, ids []int64) (bool, error) {
	result, err := g.call(ctx, model, "unlink", []any{ids}, nil)
	if err != nil {
		return false, err
	}
	return decodeBool(model, "unlink", result)
}

func applyOptions(kwargs map[string]any, opts *Options) {
	if opts == nil {
		return
	}
	if opts.Limit > 0 {
		kwargs["limit"] = opts.Limit
	}
	if opts.Offset > 0 {
		kwargs["offset"] = opts.Offset
	}
	if opts.Order != "" {
		kwargs["order"] = opts.Order
	}
}

func decodeBool(model, method string, result json.RawMessage) (bool, error) {
	var ok bool
	if err := json.Unmarshal(result, &ok); err != nil {
		return false, fmt.Errorf("%s.%s: decoding result: %w", model, method, err)
	}
	return ok, nil
}

// Package services contains the business logic layered on the dataset
// gateway: attendance state reconciliation and partner lookups.
package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/odooclock/internal/client/gateway"
)

// DatasetGateway is the generic record surface the services build on.
// *gateway.Gateway satisfies it; tests substitute fakes.
type DatasetGateway interface {
	SearchRead(ctx context.Context, model string, domain gateway.Domain, fields []string, opts *gateway.Options) (json.RawMessage, error)
	Read(ctx context.Context, model string, ids []int64, fields []string) (json.RawMessage, error)
	Create(ctx context.Context, model string, values map[string]any) (int64, error)
	Write(ctx context.Context, model string, ids []int64, values map[string]any) (bool, error)
	Unlink(ctx context.Context, model string, ids []int64) (bool, error)
}

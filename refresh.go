package tnda

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/retry"
	"github.com/shimmeringbee/tnda/ha"
	"github.com/shimmeringbee/tnda/ha/capabilities"
	"github.com/shimmeringbee/tnda/middleware"
	"strconv"
	"time"
)

const DefaultNetworkTimeout = 3000 * time.Millisecond
const DefaultNetworkRetries = 5

// gatewayRefresh is the gateway level Refresh capability, forcing an
// immediate refresh of all categories rather than waiting for the poller.
type gatewayRefresh struct {
	gw *TNDA
}

func (g *gatewayRefresh) Capability() ha.Capability {
	return capabilities.RefreshFlag
}

func (g *gatewayRefresh) Name() string {
	return capabilities.StandardNames[capabilities.RefreshFlag]
}

func (g *gatewayRefresh) Refresh(ctx context.Context) error {
	var firstErr error

	for _, c := range g.gw.getCategories() {
		if err := g.gw.refreshCategory(ctx, c); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (z *TNDA) refreshCategory(pctx context.Context, c *category) error {
	if !c.refreshSem.TryAcquire(1) {
		z.logger.LogWarn(pctx, "Refresh already in progress.", logwrap.Datum("Category", c.name))
		return nil
	}
	defer c.refreshSem.Release(1)

	ctx, end := z.logger.Segment(pctx, "Category refresh.", logwrap.Datum("Category", c.name))
	defer end()

	records, err := z.fetchRecords(ctx, c.name)
	if err != nil {
		z.logger.LogError(ctx, "Failed to fetch records from middleware.", logwrap.Err(err))
		return err
	}

	missing := make(map[string]bool)

	for _, d := range z.getDevicesOnCategory(c) {
		missing[d.address.Key] = true
	}

	for key, record := range records {
		delete(missing, key)

		d := z.getDevice(ObjectIdentifier{Category: c.name, Key: key})
		if d == nil {
			d = z.createSpecificDevice(c, key)
		}

		if err := z.enumerateDevice(ctx, d, record); err != nil {
			z.logger.LogError(ctx, "Failed to enumerate device.", logwrap.Datum("Identifier", d.address.String()), logwrap.Err(err))
			continue
		}

		if err := z.callbacks.Call(ctx, internalRecordUpdate{device: d, record: record}); err != nil {
			z.logger.LogError(ctx, "Failed calling record update callbacks.", logwrap.Datum("Identifier", d.address.String()), logwrap.Err(err))
		}
	}

	for key := range missing {
		identifier := ObjectIdentifier{Category: c.name, Key: key}

		z.logger.LogInfo(ctx, "Removing device no longer present on appliance.", logwrap.Datum("Identifier", identifier.String()))
		z.removeDevice(ctx, identifier)
	}

	return nil
}

// fetchRecords queries the middleware for the current records of one
// category, keyed ready for the device table. The system category always
// results in a single record under the fixed system key.
func (z *TNDA) fetchRecords(pctx context.Context, name string) (map[string]map[string]any, error) {
	var method string

	switch name {
	case CategorySystem:
		method = middleware.SystemInfo
	case CategoryDataset:
		method = middleware.PoolDatasetQuery
	case CategoryCloudSync:
		method = middleware.CloudSyncQuery
	default:
		return nil, fmt.Errorf("unknown category: %s", name)
	}

	var raw any

	if err := retry.Retry(pctx, DefaultNetworkTimeout, DefaultNetworkRetries, func(ctx context.Context) error {
		var err error
		raw, err = z.requester.Call(ctx, method, nil)
		return err
	}); err != nil {
		return nil, err
	}

	records := make(map[string]map[string]any)

	if name == CategorySystem {
		record, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed response to %s", method)
		}

		records[SystemKey] = record
		return records, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("malformed response to %s", method)
	}

	for _, entry := range list {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		if key, ok := recordKey(record); ok {
			records[key] = record
		}
	}

	return records, nil
}

// recordKey extracts the identifying key of a record, datasets use string
// identifiers and cloud sync jobs numeric ones.
func recordKey(record map[string]any) (string, bool) {
	switch id := record["id"].(type) {
	case string:
		return id, true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case float64:
		return strconv.FormatInt(int64(id), 10), true
	default:
		return "", false
	}
}

package pluginregistry

import (
	"fmt"

	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/facility"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
)

// RegisterBuiltins registers the three in-tree facility kinds
// (RecipeReactor, SourceFacility, SinkFacility) under k. A scenario that
// never declares one of these kinds never pays for it; a host that only
// serves hosted kinds over internal/domain/pluginhost can skip this
// call entirely.
func RegisterBuiltins(k *KindRegistry) error {
	if err := k.Register("RecipeReactor", func(ctx *registry.SimulationContext, name string, parent agent.Capability, params map[string]any) (agent.Capability, error) {
		in, err := requireCommodity(ctx, params, "in_commodity")
		if err != nil {
			return nil, err
		}
		out, err := requireCommodity(ctx, params, "out_commodity")
		if err != nil {
			return nil, err
		}
		inventoryCap, err := requireFloat(params, "inventory_capacity")
		if err != nil {
			return nil, err
		}
		monthlyCapacity, err := requireFloat(params, "monthly_capacity")
		if err != nil {
			return nil, err
		}
		return facility.NewRecipeReactor(ctx, name, parent, in, out, inventoryCap, monthlyCapacity)
	}); err != nil {
		return err
	}

	if err := k.Register("SourceFacility", func(ctx *registry.SimulationContext, name string, parent agent.Capability, params map[string]any) (agent.Capability, error) {
		out, err := requireCommodity(ctx, params, "out_commodity")
		if err != nil {
			return nil, err
		}
		unitTag, _ := params["unit_tag"].(string)
		perTick, err := requireFloat(params, "per_tick_output")
		if err != nil {
			return nil, err
		}
		return facility.NewSourceFacility(ctx, name, parent, out, unitTag, perTick)
	}); err != nil {
		return err
	}

	if err := k.Register("SinkFacility", func(ctx *registry.SimulationContext, name string, parent agent.Capability, params map[string]any) (agent.Capability, error) {
		in, err := requireCommodity(ctx, params, "in_commodity")
		if err != nil {
			return nil, err
		}
		perTick, err := requireFloat(params, "per_tick_demand")
		if err != nil {
			return nil, err
		}
		return facility.NewSinkFacility(ctx, name, parent, in, perTick)
	}); err != nil {
		return err
	}

	return nil
}

func requireFloat(params map[string]any, key string) (float64, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("pluginregistry: missing parameter %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("pluginregistry: parameter %q is not numeric: %v", key, v)
	}
}

func requireCommodity(ctx *registry.SimulationContext, params map[string]any, key string) (registry.CommodityID, error) {
	name, ok := params[key].(string)
	if !ok || name == "" {
		return 0, fmt.Errorf("pluginregistry: missing parameter %q", key)
	}
	commodity, err := ctx.CommodityByName(name)
	if err != nil {
		return 0, err
	}
	return commodity.ID, nil
}

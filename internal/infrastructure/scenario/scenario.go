// Package scenario loads the tree-structured scenario document spec.md
// §6 describes: simulation horizon, commodity declarations, market
// declarations, and a region/institution/facility forest, each facility
// carrying a kind-tag and a kind-specific parameter block. YAML is this
// core's equivalent of the "tree-structured document" language, in the
// same spirit as the teacher loading its own declarative fixtures, and
// is parsed with the same gopkg.in/yaml.v3 the teacher's config layer
// already pulls in via viper.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/clearing"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/infrastructure/pluginregistry"
)

// Document is the raw, unmarshaled scenario tree.
type Document struct {
	Horizon     int                  `yaml:"horizon"`
	Commodities []CommodityDecl      `yaml:"commodities"`
	Markets     []MarketDecl         `yaml:"markets"`
	Regions     []RegionDecl         `yaml:"regions"`
}

// CommodityDecl names a commodity and the market that clears it;
// MarketKind holds the name of one declared market.
type CommodityDecl struct {
	Name       string `yaml:"name"`
	MarketKind string `yaml:"market_kind"`
}

// MarketDecl names one clearing market. It has no kind field: every
// market in this core uses the single clearing algorithm of
// internal/domain/clearing.
type MarketDecl struct {
	Name string `yaml:"name"`
}

// RegionDecl is a region and the institutions beneath it.
type RegionDecl struct {
	Name         string            `yaml:"name"`
	Institutions []InstitutionDecl `yaml:"institutions"`
}

// InstitutionDecl is an institution and the facilities beneath it.
type InstitutionDecl struct {
	Name       string         `yaml:"name"`
	Facilities []FacilityDecl `yaml:"facilities"`
}

// FacilityDecl carries a kind-tag (resolved against a
// pluginregistry.KindRegistry) and its kind-specific parameter block.
type FacilityDecl struct {
	Name   string         `yaml:"name"`
	Kind   string          `yaml:"kind"`
	Params map[string]any `yaml:"params"`
}

// Simulation is the fully wired runtime graph a Document resolves to.
type Simulation struct {
	Context *registry.SimulationContext
	Roots   []agent.Capability
	Markets []*clearing.Market
	Horizon int
}

// Load reads and parses a scenario file at path. A parse error is the
// fatal IOError spec.md §7 names, surfaced as exit code 1 per §6's CLI
// contract.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	if doc.Horizon < 0 {
		return nil, fmt.Errorf("scenario: horizon must be >= 0, got %d", doc.Horizon)
	}
	return &doc, nil
}

// Build constructs the agent hierarchy, markets, and commodity registry
// a Document describes, calling into kinds for every facility
// declaration. The returned SimulationContext is not yet frozen; the
// caller (normally the Timekeeper's owner) freezes it once construction
// is complete, per spec.md §5's "registries are frozen once, before
// tick 0."
func Build(doc *Document, kinds *pluginregistry.KindRegistry) (*Simulation, error) {
	ctx := registry.NewSimulationContext()

	markets := make(map[string]*clearing.Market, len(doc.Markets))
	for _, m := range doc.Markets {
		market, err := clearing.NewMarket(ctx, m.Name)
		if err != nil {
			return nil, fmt.Errorf("scenario: market %q: %w", m.Name, err)
		}
		markets[m.Name] = market
	}

	for _, c := range doc.Commodities {
		market, ok := markets[c.MarketKind]
		if !ok {
			return nil, fmt.Errorf("scenario: commodity %q references unknown market %q", c.Name, c.MarketKind)
		}
		if _, err := ctx.RegisterCommodity(c.Name, market.ID()); err != nil {
			return nil, fmt.Errorf("scenario: commodity %q: %w", c.Name, err)
		}
	}

	roots := make([]agent.Capability, 0, len(doc.Regions))
	for _, r := range doc.Regions {
		region, err := agent.NewRegion(ctx, r.Name)
		if err != nil {
			return nil, fmt.Errorf("scenario: region %q: %w", r.Name, err)
		}

		for _, i := range r.Institutions {
			institution, err := agent.NewInstitution(ctx, i.Name, region)
			if err != nil {
				return nil, fmt.Errorf("scenario: institution %q: %w", i.Name, err)
			}

			for _, f := range i.Facilities {
				if _, err := kinds.Construct(f.Kind, ctx, f.Name, institution, f.Params); err != nil {
					return nil, fmt.Errorf("scenario: facility %q (kind %q): %w", f.Name, f.Kind, err)
				}
			}
		}

		roots = append(roots, region)
	}

	marketList := make([]*clearing.Market, 0, len(markets))
	for _, m := range markets {
		marketList = append(marketList, m)
	}

	return &Simulation{Context: ctx, Roots: roots, Markets: marketList, Horizon: doc.Horizon}, nil
}

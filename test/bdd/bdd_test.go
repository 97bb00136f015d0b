package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/cyclus-go/cyclus/test/bdd/steps"
)

func TestMarketClearing(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: steps.InitializeMarketClearingScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/market_clearing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run market clearing tests")
	}
}

func TestMessageRouting(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: steps.InitializeRoutingScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/routing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run message routing tests")
	}
}

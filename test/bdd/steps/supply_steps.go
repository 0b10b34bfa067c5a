package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

// scenarioGalaxy is the galaxy built by the current scenario, shared with the
// application layer steps
var scenarioGalaxy *galaxy.Galaxy

type supplyContext struct {
	manager   *supply.Manager
	updateErr error
}

func (sc *supplyContext) reset() {
	scenarioGalaxy = galaxy.NewGalaxy()
	sc.manager = supply.NewManager()
	sc.updateErr = nil
}

// Given steps

func (sc *supplyContext) aChainOfSystemsJoinedByStarlanesOfLength(n int, length float64) error {
	for id := 1; id <= n; id++ {
		scenarioGalaxy.AddSystem(&galaxy.System{
			ID:    id,
			Name:  fmt.Sprintf("S%d", id),
			X:     float64(id-1) * length,
			Owner: galaxy.NoOwner,
		})
	}
	for id := 1; id < n; id++ {
		scenarioGalaxy.AddStarlane(id, id+1, length)
	}
	return nil
}

func (sc *supplyContext) empireOwnsSystemWithSupplyMeter(empireID, systemID int, meter float64) error {
	s := scenarioGalaxy.System(systemID)
	if s == nil {
		return fmt.Errorf("system %d does not exist", systemID)
	}
	s.Owner = empireID
	s.SupplyMeter = meter
	return nil
}

func (sc *supplyContext) systemIsBlockadedAgainstEmpire(systemID, empireID int) error {
	scenarioGalaxy.AddBlockade(systemID, empireID)
	return nil
}

func (sc *supplyContext) aStarlaneFromSystemToUnknownSystem(from, to int) error {
	scenarioGalaxy.AddStarlane(from, to, 1)
	return nil
}

// When steps

func (sc *supplyContext) supplyIsUpdated() error {
	sc.updateErr = sc.manager.Update(scenarioGalaxy)
	return nil
}

// Then steps

func (sc *supplyContext) empireShouldHaveConductingTraversals(empireID int, expected string) error {
	if err := sc.requireUpdated(); err != nil {
		return err
	}
	actual := formatTraversals(sc.manager.SupplyStarlaneTraversalsFor(empireID).Sorted())
	return expectEqual("conducting traversals", expected, actual)
}

func (sc *supplyContext) empireShouldHaveObstructedTraversals(empireID int, expected string) error {
	if err := sc.requireUpdated(); err != nil {
		return err
	}
	actual := formatTraversals(sc.manager.SupplyObstructedStarlaneTraversalsFor(empireID).Sorted())
	return expectEqual("obstructed traversals", expected, actual)
}

func (sc *supplyContext) empireShouldHaveFleetSupplyableSystems(empireID int, expected string) error {
	if err := sc.requireUpdated(); err != nil {
		return err
	}
	actual := formatSystems(sc.manager.FleetSupplyableSystemIDsFor(empireID).Sorted())
	return expectEqual("fleet-supplyable systems", expected, actual)
}

func (sc *supplyContext) empireShouldHaveResourceGroups(empireID int, expected string) error {
	if err := sc.requireUpdated(); err != nil {
		return err
	}
	actual := formatGroups(sc.manager.ResourceSupplyGroupsFor(empireID))
	return expectEqual("resource groups", expected, actual)
}

func (sc *supplyContext) systemShouldHaveFleetSupplyForEmpire(systemID, empireID int) error {
	if !sc.manager.SystemHasFleetSupply(systemID, empireID) {
		return fmt.Errorf("expected system %d to have fleet supply for empire %d", systemID, empireID)
	}
	return nil
}

func (sc *supplyContext) systemShouldNotHaveFleetSupplyForEmpire(systemID, empireID int) error {
	if sc.manager.SystemHasFleetSupply(systemID, empireID) {
		return fmt.Errorf("expected system %d not to have fleet supply for empire %d", systemID, empireID)
	}
	return nil
}

func (sc *supplyContext) thereShouldBeNoSupplyResultsForEmpire(empireID int) error {
	if err := sc.requireUpdated(); err != nil {
		return err
	}
	if _, ok := sc.manager.SupplyStarlaneTraversals()[empireID]; ok {
		return fmt.Errorf("expected no supply results for empire %d", empireID)
	}
	if len(sc.manager.FleetSupplyableSystemIDsFor(empireID)) != 0 {
		return fmt.Errorf("expected empire %d to have no fleet-supplyable systems", empireID)
	}
	return nil
}

func (sc *supplyContext) requireUpdated() error {
	if sc.updateErr != nil {
		return fmt.Errorf("supply update failed: %w", sc.updateErr)
	}
	return nil
}

func expectEqual(what, expected, actual string) error {
	if expected != actual {
		return fmt.Errorf("expected %s '%s', got '%s'", what, expected, actual)
	}
	return nil
}

func formatTraversals(ts []supply.Traversal) string {
	if len(ts) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%d->%d", t.From, t.To)
	}
	return strings.Join(parts, ", ")
}

func formatSystems(ids []int) string {
	if len(ids) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func formatGroups(groups supply.ResourceGroups) string {
	if len(groups) == 0 {
		return "(none)"
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprint(g)
	}
	return strings.Join(parts, " ")
}

func InitializeSupplyScenario(ctx *godog.ScenarioContext) {
	sc := &supplyContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return c, nil
	})

	ctx.Step(`^a chain of (\d+) systems joined by starlanes of length (\d+(?:\.\d+)?)$`, sc.aChainOfSystemsJoinedByStarlanesOfLength)
	ctx.Step(`^empire (\d+) owns system (\d+) with supply meter (\d+(?:\.\d+)?)$`, sc.empireOwnsSystemWithSupplyMeter)
	ctx.Step(`^system (\d+) is blockaded against empire (\d+)$`, sc.systemIsBlockadedAgainstEmpire)
	ctx.Step(`^a starlane from system (\d+) to unknown system (\d+)$`, sc.aStarlaneFromSystemToUnknownSystem)

	ctx.Step(`^supply is updated$`, sc.supplyIsUpdated)

	ctx.Step(`^empire (\d+) should have conducting traversals "([^"]*)"$`, sc.empireShouldHaveConductingTraversals)
	ctx.Step(`^empire (\d+) should have obstructed traversals "([^"]*)"$`, sc.empireShouldHaveObstructedTraversals)
	ctx.Step(`^empire (\d+) should have fleet-supplyable systems "([^"]*)"$`, sc.empireShouldHaveFleetSupplyableSystems)
	ctx.Step(`^empire (\d+) should have resource groups "([^"]*)"$`, sc.empireShouldHaveResourceGroups)
	ctx.Step(`^system (\d+) should have fleet supply for empire (\d+)$`, sc.systemShouldHaveFleetSupplyForEmpire)
	ctx.Step(`^system (\d+) should not have fleet supply for empire (\d+)$`, sc.systemShouldNotHaveFleetSupplyForEmpire)
	ctx.Step(`^there should be no supply results for empire (\d+)$`, sc.thereShouldBeNoSupplyResultsForEmpire)
}

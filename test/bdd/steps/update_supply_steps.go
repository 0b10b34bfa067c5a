package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starlane-supply/internal/adapters/persistence"
	"github.com/andrescamacho/starlane-supply/internal/application/mediator"
	"github.com/andrescamacho/starlane-supply/internal/application/supply/commands"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
	"github.com/andrescamacho/starlane-supply/test/helpers"
)

type updateSupplyContext struct {
	mediator  mediator.Mediator
	snapshots *persistence.GormSnapshotRepository
	importErr error
	response  *commands.UpdateSupplyResponse
	updateErr error
}

func (uc *updateSupplyContext) reset() error {
	uc.importErr = nil
	uc.response = nil
	uc.updateErr = nil

	galaxies := persistence.NewGormGalaxyRepository(helpers.SharedTestDB)
	uc.snapshots = persistence.NewGormSnapshotRepository(helpers.SharedTestDB)
	uc.mediator = mediator.NewMediator()

	if err := mediator.RegisterHandler[*commands.ImportGalaxyCommand](uc.mediator,
		commands.NewImportGalaxyHandler(galaxies)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*commands.UpdateSupplyCommand](uc.mediator,
		commands.NewUpdateSupplyHandler(galaxies, uc.snapshots, supply.NewManager(), nil, nil))
}

// Given steps

func (uc *updateSupplyContext) aCleanSupplyDatabase() error {
	return helpers.TruncateAllTables()
}

// When steps

func (uc *updateSupplyContext) theGalaxyIsImportedAsTurn(turn int) error {
	_, uc.importErr = uc.mediator.Send(context.Background(), &commands.ImportGalaxyCommand{
		Turn:   turn,
		Galaxy: scenarioGalaxy,
	})
	return nil
}

func (uc *updateSupplyContext) supplyIsUpdatedForTheLatestTurn() error {
	resp, err := uc.mediator.Send(context.Background(), &commands.UpdateSupplyCommand{})
	uc.updateErr = err
	if err == nil {
		uc.response = resp.(*commands.UpdateSupplyResponse)
	}
	return nil
}

// Then steps

func (uc *updateSupplyContext) theUpdateShouldSucceedForTurn(turn int) error {
	if uc.updateErr != nil {
		return fmt.Errorf("expected update to succeed, got: %v", uc.updateErr)
	}
	if uc.response.Turn != turn {
		return fmt.Errorf("expected update for turn %d, got turn %d", turn, uc.response.Turn)
	}
	return nil
}

func (uc *updateSupplyContext) theUpdateShouldFailWith(expected string) error {
	return expectFailure("update", uc.updateErr, expected)
}

func (uc *updateSupplyContext) theImportShouldFailWith(expected string) error {
	return expectFailure("import", uc.importErr, expected)
}

func (uc *updateSupplyContext) theSnapshotStoredForTurnShouldGiveEmpireFleetSupplyableSystems(turn, empireID int, expected string) error {
	snap, err := uc.snapshots.FindByTurn(context.Background(), turn)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	e := snap.Empire(empireID)
	if e == nil {
		return fmt.Errorf("snapshot for turn %d has no entry for empire %d", turn, empireID)
	}
	return expectEqual("fleet-supplyable systems", expected, formatSystems(e.FleetSupplyable))
}

func expectFailure(what string, err error, expected string) error {
	if err == nil {
		return fmt.Errorf("expected %s to fail with '%s', but it succeeded", what, expected)
	}
	if !strings.Contains(err.Error(), expected) {
		return fmt.Errorf("expected %s error containing '%s', got '%s'", what, expected, err.Error())
	}
	return nil
}

func InitializeUpdateSupplyScenario(ctx *godog.ScenarioContext) {
	uc := &updateSupplyContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		return c, uc.reset()
	})

	ctx.Step(`^a clean supply database$`, uc.aCleanSupplyDatabase)
	ctx.Step(`^the galaxy is imported as turn (\d+)$`, uc.theGalaxyIsImportedAsTurn)
	ctx.Step(`^supply is updated for the latest turn$`, uc.supplyIsUpdatedForTheLatestTurn)
	ctx.Step(`^the update should succeed for turn (\d+)$`, uc.theUpdateShouldSucceedForTurn)
	ctx.Step(`^the update should fail with "([^"]*)"$`, uc.theUpdateShouldFailWith)
	ctx.Step(`^the import should fail with "([^"]*)"$`, uc.theImportShouldFailWith)
	ctx.Step(`^the snapshot stored for turn (\d+) should give empire (\d+) fleet-supplyable systems "([^"]*)"$`,
		uc.theSnapshotStoredForTurnShouldGiveEmpireFleetSupplyableSystems)
}

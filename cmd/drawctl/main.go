package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"

	"github.com/luckydraw/draw-backend/internal/config"
	"github.com/luckydraw/draw-backend/internal/engine"
	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
	mongorepo "github.com/luckydraw/draw-backend/internal/repositories/mongodb"
	"github.com/luckydraw/draw-backend/internal/services"
	"github.com/luckydraw/draw-backend/internal/utils"
	"github.com/luckydraw/draw-backend/pkg/mongodb"
)

// drawctl drives draws from the terminal against the same database the API
// server uses, for operators who prefer a shell over the dashboard.
type drawctl struct {
	configs *config.Config
	client  *mongodb.Client

	drawService   services.DrawService
	rosterService services.RosterService
	prizeService  services.PrizeService
}

var ctl drawctl

func main() {
	app := cli.NewApp()
	app.Name = "drawctl"
	app.Usage = "Run and inspect prize draws from the command line"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Directory containing the config file",
			Value: ".",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "Override the configured random seed (0 keeps config)",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action: ctl.draw,
			Name:   "draw",
			Usage:  "Draw winners for one prize",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "prize", Usage: "Prize id to draw", Required: true},
				&cli.IntFlag{Name: "count", Usage: "Winners to draw now (0 = full remaining quota)"},
				&cli.BoolFlag{Name: "include-excluded", Usage: "Lift the excluded-list gate for this draw"},
			},
		},
		{
			Action: ctl.drawAll,
			Name:   "draw-all",
			Usage:  "Draw every prize with open slots, in configured order",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "include-excluded", Usage: "Lift the excluded-list gate for this draw"},
			},
		},
		{
			Action: ctl.show,
			Name:   "show",
			Usage:  "Show prizes with open slots and the winner history",
		},
		{
			Action: ctl.importRoster,
			Name:   "import",
			Usage:  "Replace the participant roster from a CSV file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "file", Usage: "CSV file with id,name,department columns", Required: true},
				&cli.BoolFlag{Name: "excluded", Usage: "Import into the excluded list instead of the roster"},
			},
		},
		{
			Action: ctl.importPrizes,
			Name:   "prizes",
			Usage:  "Replace the prize configuration from a JSON file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "file", Usage: "JSON array of prize configs", Required: true},
			},
		},
		{
			Action: ctl.export,
			Name:   "export",
			Usage:  "Export the winner history as CSV",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Usage: "Output file (stdout when omitted)"},
			},
		},
		{
			Action: ctl.reset,
			Name:   "reset",
			Usage:  "Clear all recorded winners",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "yes", Usage: "Skip the confirmation prompt"},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (c *drawctl) load(ct *cli.Context) error {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.configs = cfg

	client, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	c.client = client
	db := client.Database(cfg.MongoDB.Database)

	var rosterRepo repositories.RosterRepository = mongorepo.NewRosterRepository(db)
	var prizeRepo repositories.PrizeRepository = mongorepo.NewPrizeRepository(db)
	var exclusionRepo repositories.ExclusionRepository = mongorepo.NewExclusionRepository(db)
	var stateRepo repositories.StateRepository = mongorepo.NewStateRepository(db)

	seed := cfg.Draw.Seed
	if override := ct.Int64("seed"); override != 0 {
		seed = override
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := engine.New(rand.New(rand.NewSource(seed)))

	min, max := cfg.Draw.ExcludedRange()
	defaults := services.DrawDefaults{IncludeExcluded: cfg.Draw.IncludeExcluded}
	if min != nil || max != nil {
		defaults.ExcludedRange = &engine.Range{Min: min, Max: max}
	}

	c.drawService = services.NewDrawService(rosterRepo, prizeRepo, exclusionRepo, stateRepo, eng, defaults)
	c.rosterService = services.NewRosterService(rosterRepo, exclusionRepo)
	c.prizeService = services.NewPrizeService(prizeRepo)
	return nil
}

func (c *drawctl) close() {
	if c.client != nil {
		if err := c.client.Disconnect(context.Background()); err != nil {
			slog.Warn("Failed to disconnect from MongoDB", "error", err)
		}
	}
}

func (c *drawctl) draw(ct *cli.Context) error {
	if err := c.load(ct); err != nil {
		return err
	}
	defer c.close()

	req := services.DrawRequest{
		DrawCount:       ct.Int("count"),
		IncludeExcluded: ct.Bool("include-excluded"),
	}
	winners, err := c.drawService.DrawPrize(ct.Context, ct.String("prize"), req)
	if err != nil {
		return err
	}
	printWinners(winners)
	return nil
}

func (c *drawctl) drawAll(ct *cli.Context) error {
	if err := c.load(ct); err != nil {
		return err
	}
	defer c.close()

	req := services.DrawRequest{IncludeExcluded: ct.Bool("include-excluded")}
	winners, err := c.drawService.DrawAll(ct.Context, req)
	if len(winners) > 0 {
		printWinners(winners)
	}
	return err
}

func (c *drawctl) show(ct *cli.Context) error {
	if err := c.load(ct); err != nil {
		return err
	}
	defer c.close()

	prizes, err := c.drawService.AvailablePrizes(ct.Context)
	if err != nil {
		return err
	}
	state, err := c.drawService.GetState(ct.Context)
	if err != nil {
		return err
	}

	fmt.Println("Prizes with open slots:")
	if len(prizes) == 0 {
		fmt.Println("  (none)")
	}
	for _, prize := range prizes {
		drawn := 0
		if ps, ok := state.Prizes[prize.PrizeID]; ok {
			drawn = len(ps.Winners)
		}
		fmt.Printf("  %-12s %-24s %d/%d drawn\n", prize.PrizeID, prize.Name, drawn, prize.Count)
	}

	fmt.Printf("\nWinner history (%d):\n", len(state.Winners))
	printWinners(state.Winners)
	return nil
}

func (c *drawctl) importRoster(ct *cli.Context) error {
	if err := c.load(ct); err != nil {
		return err
	}
	defer c.close()

	data, err := os.ReadFile(ct.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read roster file: %w", err)
	}
	if ct.Bool("excluded") {
		people, err := utils.ParseRosterCSV(data)
		if err != nil {
			return err
		}
		if err := c.rosterService.ReplaceExcluded(ct.Context, people); err != nil {
			return err
		}
		fmt.Printf("Imported %d excluded participants\n", len(people))
		return nil
	}
	count, err := c.rosterService.ImportRosterCSV(ct.Context, data)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d participants\n", count)
	return nil
}

func (c *drawctl) importPrizes(ct *cli.Context) error {
	if err := c.load(ct); err != nil {
		return err
	}
	defer c.close()

	data, err := os.ReadFile(ct.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read prize file: %w", err)
	}
	var prizes []*models.PrizeConfig
	if err := json.Unmarshal(data, &prizes); err != nil {
		return fmt.Errorf("failed to parse prize file: %w", err)
	}
	if err := c.prizeService.ReplacePrizes(ct.Context, prizes); err != nil {
		return err
	}
	fmt.Printf("Imported %d prizes\n", len(prizes))
	return nil
}

func (c *drawctl) export(ct *cli.Context) error {
	if err := c.load(ct); err != nil {
		return err
	}
	defer c.close()

	winners, err := c.drawService.GetWinners(ct.Context)
	if err != nil {
		return err
	}
	data, err := utils.WinnersCSV(winners)
	if err != nil {
		return err
	}
	if out := ct.String("out"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("Wrote %d winners to %s\n", len(winners), out)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

func (c *drawctl) reset(ct *cli.Context) error {
	if err := c.load(ct); err != nil {
		return err
	}
	defer c.close()

	if !ct.Bool("yes") {
		fmt.Print("Clear all recorded winners? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}
	if err := c.drawService.Reset(ct.Context); err != nil {
		return err
	}
	fmt.Println("Draw state cleared")
	return nil
}

func printWinners(winners []models.WinnerRecord) {
	for _, w := range winners {
		fmt.Printf("  %s  %-12s %-10s %-20s %-16s %s\n",
			w.Timestamp.Format("2006-01-02 15:04:05"),
			w.PrizeID, w.PersonID, w.PersonName, w.Department, w.Source)
	}
}

// Command pokerctl inspects and settles games on a pokernight server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"connectrpc.com/connect"
	"github.com/pterm/pterm"

	"github.com/mmynk/pokernight/pkg/api"
)

const usage = `usage: pokerctl [-server URL] <command> [args]

commands:
  games          list games, newest first
  show <id>      show players and stats of a game
  settle <id>    preview the settlement of a game
  close <id>     settle and close a game
  convert <id> <participant> <amount>
                 pay off a cashed-out player's debt in cash
`

func main() {
	server := flag.String("server", envOr("POKERNIGHT_URL", "http://localhost:8080"), "pokernight server URL")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := api.NewLedgerServiceClient(http.DefaultClient, *server)
	if err := run(ctx, client, flag.Args()); err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) {
			pterm.Error.Printfln("%s: %s", connectErr.Code(), connectErr.Message())
		} else {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid arguments, run pokerctl -h")

func run(ctx context.Context, client api.LedgerServiceClient, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "games":
	case "convert":
		if len(rest) != 3 {
			return errUsage
		}
	default:
		if len(rest) != 1 {
			return errUsage
		}
	}

	switch cmd {
	case "games":
		resp, err := client.ListGames(ctx, connect.NewRequest(&api.ListGamesRequest{}))
		if err != nil {
			return err
		}
		return pterm.DefaultTable.WithHasHeader().WithData(gamesTable(resp.Msg.Games)).Render()

	case "show":
		resp, err := client.GetGame(ctx, connect.NewRequest(&api.GetGameRequest{GameID: rest[0]}))
		if err != nil {
			return err
		}
		return renderGame(resp.Msg.Game)

	case "settle":
		resp, err := client.PreviewSettlement(ctx, connect.NewRequest(&api.PreviewSettlementRequest{GameID: rest[0]}))
		if err != nil {
			return err
		}
		if !resp.Msg.Balanced {
			pterm.Warning.Printfln("Settlement leaves %.2f unassigned", resp.Msg.Imbalance)
		}
		return renderTransfers(resp.Msg.Transfers)

	case "close":
		resp, err := client.CloseGame(ctx, connect.NewRequest(&api.CloseGameRequest{GameID: rest[0]}))
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Closed %s", resp.Msg.Game.Name)
		return renderTransfers(resp.Msg.Game.Transfers)

	case "convert":
		amount, err := strconv.ParseFloat(rest[2], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", rest[2], err)
		}
		resp, err := client.ConvertDebt(ctx, connect.NewRequest(&api.ConvertDebtRequest{
			GameID:        rest[0],
			ParticipantID: rest[1],
			Amount:        amount,
		}))
		if err != nil {
			return err
		}
		return pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(playersTable([]api.Participant{*resp.Msg.Participant})).Render()

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func renderGame(game *api.Game) error {
	pterm.DefaultSection.Printfln("%s (%s)", game.Name, game.State)

	if err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(playersTable(game.Participants)).Render(); err != nil {
		return err
	}

	if game.Stats != nil {
		pterm.Info.Printfln("Invested %s, returned %s, %d/%d cashed out",
			money(game.Stats.Invested), money(game.Stats.Returned),
			game.Stats.CashedOutCount, game.Stats.PlayerCount)
	}
	if len(game.Transfers) > 0 {
		return renderTransfers(game.Transfers)
	}
	return nil
}

func renderTransfers(transfers []api.Transfer) error {
	if len(transfers) == 0 {
		pterm.Info.Println("Nothing to settle")
		return nil
	}
	pterm.DefaultSection.Println("Transfers")
	return pterm.DefaultTable.WithHasHeader().WithData(transfersTable(transfers)).Render()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

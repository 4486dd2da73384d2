package main

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/mmynk/pokernight/pkg/api"
)

func gamesTable(games []api.GameSummary) pterm.TableData {
	data := pterm.TableData{{"ID", "Name", "State", "Players", "Created"}}
	for _, g := range games {
		data = append(data, []string{
			g.ID,
			g.Name,
			g.State,
			fmt.Sprint(g.PlayerCount),
			time.Unix(g.CreatedAt, 0).Format("Jan 2, 2006 15:04"),
		})
	}
	return data
}

func playersTable(participants []api.Participant) pterm.TableData {
	data := pterm.TableData{{"Player", "Cash in", "Debt in", "Returned", "Total", "Status"}}
	for _, p := range participants {
		status := "playing"
		if p.CashedOut {
			status = "cashed out"
		}
		var stats api.ParticipantStats
		if p.Stats != nil {
			stats = *p.Stats
		}
		data = append(data, []string{
			p.Name,
			money(stats.CashIn),
			money(stats.DebtIn),
			money(stats.Returned),
			money(stats.Total),
			status,
		})
	}
	return data
}

func transfersTable(transfers []api.Transfer) pterm.TableData {
	data := pterm.TableData{{"From", "To", "Amount"}}
	for _, t := range transfers {
		data = append(data, []string{t.GiverName, t.ReceiverName, money(t.Amount)})
	}
	return data
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"mission-tracker/internal/client"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func renderMilestones(milestones []client.Milestone) error {
	if len(milestones) == 0 {
		printInfo("No milestones yet. Run `missionctl bootstrap` first.")
		return nil
	}

	accent.Println("\n== MILESTONE CATALOG ==")
	fmt.Printf("%-8s %-6s %s\n", "ID", "ORDER", "TITLE")
	for _, m := range milestones {
		fmt.Printf("%-8s %-6d %s\n", m.MilestoneID, m.Order, m.Title)
	}
	return nil
}

func renderCompletion(out *client.CompleteResult) error {
	if out.CoinsAwarded > 0 {
		printSuccess(fmt.Sprintf("+%d AV coins awarded.", out.CoinsAwarded))
	} else {
		printWarn("Milestone already completed; no coins awarded.")
	}
	fmt.Printf("Revenue: $%.2f\n", out.Revenue)
	if out.UnlockedWorld != nil {
		printSuccess(fmt.Sprintf("World unlocked: %s", *out.UnlockedWorld))
	}
	printInfo(out.Message)
	return nil
}

func renderStatus(summary *client.PlayerSummary, milestones []client.Milestone) error {
	accent.Printf("\n== %s (%s) ==\n", summary.Name, summary.Email)
	fmt.Printf("AV Coins: %d\n", summary.Coins)
	fmt.Printf("Revenue:  $%.2f\n", summary.Revenue)

	worlds := "none yet"
	if len(summary.UnlockedWorlds) > 0 {
		worlds = strings.Join(summary.UnlockedWorlds, ", ")
	}
	fmt.Printf("Worlds:   %s\n", worlds)

	completed := make(map[string]struct{}, len(summary.CompletedMilestones))
	for _, id := range summary.CompletedMilestones {
		completed[id] = struct{}{}
	}

	fmt.Println()
	accent.Println("Milestones")
	if len(milestones) == 0 {
		printInfo("No milestones yet. Run `missionctl bootstrap` first.")
		return nil
	}
	done := 0
	for _, m := range milestones {
		marker := "[ ]"
		if _, ok := completed[m.MilestoneID]; ok {
			marker = "[x]"
			done++
		}
		fmt.Printf("%s %-8s %s\n", marker, m.MilestoneID, m.Title)
	}
	fmt.Printf("\nProgress: %d/%d milestones\n", done, len(milestones))
	return nil
}

func renderHealth(out *client.HealthStatus) error {
	accent.Println("\n== HEALTH ==")
	fmt.Printf("Backend:    %s\n", out.Backend)
	fmt.Printf("Database:   %s\n", out.Database)
	fmt.Printf("Path:       %s\n", out.DatabasePath)
	fmt.Printf("Connection: %s\n", out.ConnectionStatus)
	if len(out.Collections) > 0 {
		fmt.Printf("Collections: %s\n", strings.Join(out.Collections, ", "))
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/marcelsud/booking-pulse/rules"
)

/* validate-rules - Standalone CLI tool to validate rules.yaml
 * Usage: go run cmd/validate-rules/main.go [rules.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	rulesFile := "rules.yaml"
	if len(os.Args) > 1 {
		rulesFile = os.Args[1]
	}

	fmt.Printf("Validating rules file: %s\n\n", rulesFile)

	loader := rules.NewLoader()
	if err := loader.Load(rulesFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	r := loader.Rules()
	fmt.Printf("✓ VALIDATION PASSED\n\n")

	fmt.Println("Risk scoring table:")
	fmt.Printf("   Baseline:          %d\n", r.Risk.Baseline)
	fmt.Printf("   Lead < 2h:         +%d\n", r.Risk.LeadUnder2h)
	fmt.Printf("   Lead < 6h:         +%d\n", r.Risk.LeadUnder6h)
	fmt.Printf("   Lead < 24h:        +%d\n", r.Risk.LeadUnder24h)
	fmt.Printf("   Lead > 7d:         +%d\n", r.Risk.LeadOver7d)
	fmt.Printf("   Friday afternoon:  +%d\n", r.Risk.FridayAfternoon)
	fmt.Printf("   Monday morning:    +%d\n", r.Risk.MondayMorning)
	fmt.Printf("   Repeat booker:     %d\n", r.Risk.RepeatBooker)
	fmt.Printf("   Tiers:             high >= %d, medium >= %d\n", r.Risk.HighTier, r.Risk.MediumTier)

	fmt.Println("\nRecommendation tuning:")
	fmt.Printf("   Window:            %d days\n", r.Recommend.WindowDays)
	fmt.Printf("   Minimum sample:    %d bookings\n", r.Recommend.MinSample)
	fmt.Printf("   Blend:             %.0f overall / %.0f day\n", r.Recommend.OverallWeight, r.Recommend.DayWeight)
	fmt.Printf("   Labels:            popular >= %d, recommended >= %d\n", r.Recommend.PopularCutoff, r.Recommend.RecommendedCutoff)
	fmt.Printf("   Fallback days:     %v\n", r.Recommend.FallbackDays)
	fmt.Printf("   Fallback hours:    %v\n", r.Recommend.FallbackHours)

	fmt.Printf("\n✓ Rules are valid!\n")
	os.Exit(0)
}

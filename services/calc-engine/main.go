// calc-engine is a small sidecar: it takes a deal as a JSON payload on the
// command line and either validates the inputs or runs the full model,
// printing JSON results. Host processes shell out to it instead of linking
// the model.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/model"
	"mbo_model/pkg/core/validate"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "JSON deal payload; empty runs the demo deal")
	flag.Parse()

	var deal *assumptions.Deal
	if *dataStr == "" {
		deal = assumptions.Demo()
	} else {
		d, err := assumptions.LoadJSON([]byte(*dataStr))
		if err != nil {
			fmt.Printf("Error unmarshaling data: %v\n", err)
			os.Exit(1)
		}
		deal = d
	}

	switch *mode {
	case "check":
		runChecks(deal)
	case "calculate":
		runCalculations(deal)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func runChecks(deal *assumptions.Deal) {
	if err := deal.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if gap := deal.FundingShortfall(); gap > 0 {
		fmt.Printf("Error: Funding shortfall at close (%.2f EUR)\n", gap)
		os.Exit(1)
	}
	fmt.Println("Success: inputs are consistent")
}

func runCalculations(deal *assumptions.Deal) {
	res, err := model.Run(context.Background(), deal)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if issues := validate.CheckRun(res); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "FAIL %s\n", issue)
		}
		os.Exit(1)
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

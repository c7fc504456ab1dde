package assumptions

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// Load reads a deal file, picking the decoder by extension:
// .yaml/.yml, .hjson, or .json (JSON goes through a repair pass first, so
// hand-edited files with trailing commas or comments still load).
// Missing horizon and scenario fields fall back to defaults before validation.
func Load(path string) (*Deal, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deal file: %w", err)
	}

	var deal Deal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &deal); err != nil {
			return nil, fmt.Errorf("parse yaml deal: %w", err)
		}
	case ".hjson":
		if err := hjson.Unmarshal(raw, &deal); err != nil {
			return nil, fmt.Errorf("parse hjson deal: %w", err)
		}
	case ".json":
		repaired, rerr := jsonrepair.RepairJSON(string(raw))
		if rerr != nil {
			repaired = string(raw)
		}
		if err := json.Unmarshal([]byte(repaired), &deal); err != nil {
			return nil, fmt.Errorf("parse json deal: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported deal file extension '%s'", filepath.Ext(path))
	}

	ApplyDefaults(&deal)
	if err := deal.Validate(); err != nil {
		return nil, err
	}
	return &deal, nil
}

// LoadJSON parses a deal from a raw JSON payload (API surface). The payload
// goes through the same repair pass as file loading.
func LoadJSON(raw []byte) (*Deal, error) {
	repaired, err := jsonrepair.RepairJSON(string(raw))
	if err != nil {
		repaired = string(raw)
	}
	var deal Deal
	if err := json.Unmarshal([]byte(repaired), &deal); err != nil {
		return nil, fmt.Errorf("parse deal payload: %w", err)
	}
	ApplyDefaults(&deal)
	if err := deal.Validate(); err != nil {
		return nil, err
	}
	return &deal, nil
}

// ApplyDefaults fills the optional deal fields (horizon, scenario,
// amortization mode) and clamps the driver series to their valid ranges.
// Every entry path runs it before validation, file loads and posted
// payloads alike.
func ApplyDefaults(d *Deal) {
	if d.HorizonYears == 0 {
		d.HorizonYears = DefaultHorizon
	}
	if d.Scenario == "" {
		d.Scenario = ScenarioBase
	}
	if d.Financing.Amortization == "" {
		d.Financing.Amortization = AmortizationLinear
	}

	// Floors and clamps mirror what the planning surface enforces on entry.
	for _, drv := range d.Revenue {
		if drv == nil {
			continue
		}
		drv.ReferenceRevenue = NonNegative(drv.ReferenceRevenue)
		for i := range drv.Utilization {
			drv.Utilization[i] = ClampPct(drv.Utilization[i])
		}
		for i := range drv.GuaranteePct {
			drv.GuaranteePct[i] = ClampPct(drv.GuaranteePct[i])
		}
		for i := range drv.GroupShare {
			drv.GroupShare[i] = ClampPct(drv.GroupShare[i])
		}
		for i := range drv.ExternalShare {
			drv.ExternalShare[i] = ClampPct(drv.ExternalShare[i])
		}
		for i := range drv.GroupDayRate {
			drv.GroupDayRate[i] = NonNegative(drv.GroupDayRate[i])
		}
		for i := range drv.ExternalDayRate {
			drv.ExternalDayRate[i] = NonNegative(drv.ExternalDayRate[i])
		}
		for i := range drv.ConsultantFTE {
			drv.ConsultantFTE[i] = NonNegative(drv.ConsultantFTE[i])
		}
		for i := range drv.Workdays {
			drv.Workdays[i] = NonNegative(drv.Workdays[i])
		}
	}
}

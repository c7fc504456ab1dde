package report

import (
	"context"
	"strings"
	"testing"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/model"
)

func demoResults(t *testing.T) *model.Results {
	t.Helper()
	res, err := model.Run(context.Background(), assumptions.Demo())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}

func TestMarkdownCarriesAllSections(t *testing.T) {
	md := Markdown(demoResults(t))

	for _, section := range []string{
		"## Headline",
		"## Profit and Loss",
		"## Cashflow",
		"## Debt Schedule",
		"## Balance Sheet",
		"## Equity Case",
	} {
		if !strings.Contains(md, section) {
			t.Errorf("report missing section %q", section)
		}
	}
	if !strings.Contains(md, "| FY1 |") {
		t.Error("report missing year rows")
	}
}

func TestHTMLRendersTables(t *testing.T) {
	html, err := HTML(demoResults(t))
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Error("HTML export should render Markdown tables")
	}
	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Error("HTML export should be a standalone document")
	}
}

func TestEURFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 €"},
		{950, "950 €"},
		{16000000, "16,000,000 €"},
		{-1730500, "-1,730,500 €"},
	}
	for _, tt := range tests {
		if got := eur(tt.in); got != tt.want {
			t.Errorf("eur(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package research

import (
	"context"
	"errors"
	"testing"

	"github.com/brfialho/pesquisa/internal/common"
)

func TestCleanTicker(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"AAPL", "AAPL"},
		{"**AAPL** (Apple Inc.)", "AAPL"},
		{"`MSFT`", "MSFT"},
		{"  PETR4.SA\n", "PETR4.SA"},
		{"O ticker é VALE3.SA", "O"},
		{"", ""},
		{"***", ""},
		{"  \n\t ", ""},
	}

	for _, tc := range cases {
		if got := CleanTicker(tc.raw); got != tc.want {
			t.Errorf("CleanTicker(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestResolve_CleansBackendAnswer(t *testing.T) {
	client := &fakeGemini{fn: func(prompt string) (string, error) {
		return "**AAPL** (Apple Inc.)", nil
	}}

	resolver := NewTickerResolver(client, common.NewSilentLogger())
	ticker := resolver.Resolve(context.Background(), mustQuery(t, "Apple"))

	if ticker.Value != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", ticker.Value)
	}
}

func TestResolve_GenerationFailureYieldsEmpty(t *testing.T) {
	client := &fakeGemini{fn: func(prompt string) (string, error) {
		return "", errors.New("backend unavailable")
	}}

	resolver := NewTickerResolver(client, common.NewSilentLogger())
	ticker := resolver.Resolve(context.Background(), mustQuery(t, "Padaria do Zé"))

	if !ticker.IsEmpty() {
		t.Errorf("expected empty ticker, got %q", ticker.Value)
	}
}

func TestResolve_PromptNamesCompany(t *testing.T) {
	var captured string
	client := &fakeGemini{fn: func(prompt string) (string, error) {
		captured = prompt
		return "VALE3.SA", nil
	}}

	resolver := NewTickerResolver(client, common.NewSilentLogger())
	resolver.Resolve(context.Background(), mustQuery(t, "Vale"))

	if !containsAll(captured, "Vale", "TICKER", "PETR4.SA", "AAPL") {
		t.Errorf("prompt missing expected content:\n%s", captured)
	}
}

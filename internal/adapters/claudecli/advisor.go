package claudecli

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"debloat/internal/domain"
	"debloat/internal/ports"
)

// Advisor implements ports.Advisor using Claude Code CLI
type Advisor struct {
	model string
}

// Ensure Advisor implements the port
var _ ports.Advisor = (*Advisor)(nil)

// Option configures the Advisor
type Option func(*Advisor)

// WithModel sets the Claude model to use
func WithModel(model string) Option {
	return func(a *Advisor) {
		a.model = model
	}
}

// NewAdvisor creates a new Claude CLI advisor
func NewAdvisor(opts ...Option) *Advisor {
	a := &Advisor{
		model: "haiku", // Default to haiku for speed
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// claudeResponse represents the JSON output from claude CLI
type claudeResponse struct {
	Type         string  `json:"type"`
	Subtype      string  `json:"subtype"`
	CostUSD      float64 `json:"cost_usd"`
	DurationMS   int     `json:"duration_ms"`
	DurationAPI  int     `json:"duration_api_ms"`
	IsError      bool    `json:"is_error"`
	NumTurns     int     `json:"num_turns"`
	Result       string  `json:"result"`
	SessionID    string  `json:"session_id"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// adviceJSON represents the expected JSON format from Claude's response
type adviceJSON struct {
	PackageID      string `json:"packageID"`
	Category       string `json:"category"`
	Summary        string `json:"summary"`
	Recommendation string `json:"recommendation"`
}

// Advise analyzes packages and returns a safety assessment per package
func (a *Advisor) Advise(pkgs []domain.Package) ([]ports.Advice, error) {
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages to analyze")
	}

	prompt := buildAdvicePrompt(pkgs)

	// Call claude CLI with JSON output
	args := []string{
		"-p", prompt,
		"--output-format", "json",
		"--model", a.model,
	}

	cmd := exec.Command("claude", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("claude CLI error: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("claude CLI error: %w", err)
	}

	// Parse the claude CLI JSON response
	var response claudeResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return nil, fmt.Errorf("failed to parse claude response: %w", err)
	}

	if response.IsError {
		return nil, fmt.Errorf("claude returned an error: %s", response.Result)
	}

	return parseAdvice(response.Result)
}

func buildAdvicePrompt(pkgs []domain.Package) string {
	var list strings.Builder
	for _, p := range pkgs {
		fmt.Fprintf(&list, "- %s (%s)\n", p.ID, p.DisplayName())
	}

	return fmt.Sprintf(`You are advising a user who is removing preinstalled packages from an Android device.

Assess these packages:
%s
For EACH package classify removal risk as one of: Safe, Caution, Expert, Dangerous.
- Safe: removable without side effects
- Caution: removable but some features degrade
- Expert: only remove if you understand the consequences
- Dangerous: removal can break core device functionality

Return ONLY a JSON array (no markdown, no code blocks):
[
  {"packageID": "com.vendor.weather", "category": "Safe", "summary": "Preinstalled weather widget", "recommendation": "Remove if unused"},
  {"packageID": "com.android.systemui", "category": "Dangerous", "summary": "Status bar and navigation", "recommendation": "Keep"}
]`, list.String())
}

// parseAdvice extracts the advice JSON array from Claude's response
func parseAdvice(result string) ([]ports.Advice, error) {
	result = strings.TrimSpace(result)

	// Try to extract JSON from markdown code blocks if present
	codeBlockRe := regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")
	if matches := codeBlockRe.FindStringSubmatch(result); len(matches) > 1 {
		result = strings.TrimSpace(matches[1])
	}

	// Find JSON array in the text (handles surrounding text)
	jsonStartIdx := strings.Index(result, "[")
	jsonEndIdx := strings.LastIndex(result, "]")
	if jsonStartIdx == -1 || jsonEndIdx == -1 || jsonEndIdx <= jsonStartIdx {
		return nil, fmt.Errorf("no valid JSON array found in response")
	}

	jsonStr := result[jsonStartIdx : jsonEndIdx+1]

	var raw []adviceJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse advice JSON: %w (json: %s)", err, jsonStr)
	}

	// Convert to ports.Advice, validating each has required fields
	var advice []ports.Advice
	for _, r := range raw {
		if r.PackageID == "" {
			continue // Skip invalid entries
		}
		category := domain.ParseCategory(r.Category)
		if category == domain.CategoryUnknown {
			category = domain.CategoryExpert
		}
		advice = append(advice, ports.Advice{
			PackageID:      r.PackageID,
			Category:       category,
			Summary:        r.Summary,
			Recommendation: r.Recommendation,
		})
	}

	if len(advice) == 0 {
		return nil, fmt.Errorf("no valid advice found in response")
	}

	return advice, nil
}

// IsAvailable checks if the claude CLI is installed and accessible
func (a *Advisor) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

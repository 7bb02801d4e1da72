package claudecli

import (
	"strings"
	"testing"

	"debloat/internal/domain"
)

func TestParseAdvice(t *testing.T) {
	tests := []struct {
		name         string
		result       string
		wantCount    int
		wantFirstID  string
		wantFirstCat domain.Category
		wantErr      bool
	}{
		{
			name: "valid JSON array",
			result: `[
				{"packageID": "com.vendor.weather", "category": "Safe", "summary": "Weather widget", "recommendation": "Remove if unused"},
				{"packageID": "com.android.systemui", "category": "Dangerous", "summary": "System UI", "recommendation": "Keep"}
			]`,
			wantCount:    2,
			wantFirstID:  "com.vendor.weather",
			wantFirstCat: domain.CategorySafe,
		},
		{
			name:         "JSON in markdown code block",
			result:       "```json\n[{\"packageID\": \"com.vendor.mail\", \"category\": \"Caution\", \"summary\": \"Mail client\", \"recommendation\": \"Keep\"}]\n```",
			wantCount:    1,
			wantFirstID:  "com.vendor.mail",
			wantFirstCat: domain.CategoryCaution,
		},
		{
			name:         "JSON with surrounding text",
			result:       "Here is my assessment:\n[{\"packageID\": \"com.x.y\", \"category\": \"Expert\", \"summary\": \"Vendor service\", \"recommendation\": \"Research first\"}]\nHope that helps.",
			wantCount:    1,
			wantFirstID:  "com.x.y",
			wantFirstCat: domain.CategoryExpert,
		},
		{
			name:         "unknown category maps to Expert",
			result:       `[{"packageID": "com.a.b", "category": "Mystery", "summary": "s", "recommendation": "r"}]`,
			wantCount:    1,
			wantFirstID:  "com.a.b",
			wantFirstCat: domain.CategoryExpert,
		},
		{
			name:         "entry without packageID skipped",
			result:       `[{"category": "Safe"}, {"packageID": "com.ok", "category": "Safe", "summary": "s", "recommendation": "r"}]`,
			wantCount:    1,
			wantFirstID:  "com.ok",
			wantFirstCat: domain.CategorySafe,
		},
		{
			name:    "no JSON array found",
			result:  "I cannot assess these packages.",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			result:  `[{"packageID": "com.a",]`,
			wantErr: true,
		},
		{
			name:    "all entries invalid",
			result:  `[{"category": "Safe"}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, err := parseAdvice(tt.result)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAdvice: %v", err)
			}
			if len(advice) != tt.wantCount {
				t.Fatalf("got %d advice entries, want %d", len(advice), tt.wantCount)
			}
			if advice[0].PackageID != tt.wantFirstID {
				t.Errorf("PackageID = %q, want %q", advice[0].PackageID, tt.wantFirstID)
			}
			if advice[0].Category != tt.wantFirstCat {
				t.Errorf("Category = %v, want %v", advice[0].Category, tt.wantFirstCat)
			}
		})
	}
}

func TestBuildAdvicePromptListsAllPackages(t *testing.T) {
	pkgs := []domain.Package{
		{ID: "com.vendor.weather", Name: "Weather"},
		{ID: "com.vendor.mail"},
	}

	prompt := buildAdvicePrompt(pkgs)
	for _, want := range []string{"com.vendor.weather", "Weather", "com.vendor.mail", "Safe, Caution, Expert, Dangerous"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

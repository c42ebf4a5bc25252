package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"pathways-backend-go/internal/models"
)

func strPtr(s string) *string { return &s }

func containsMessage(errs []string, fragment string) bool {
	for _, e := range errs {
		if strings.Contains(e, fragment) {
			return true
		}
	}
	return false
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"2023-01-31", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2023-02-30", false},
		{"02/30/2023", false},
		{"2023-1-05", false},
		{"2023-13-01", false},
		{"not a date", false},
	}
	for _, tt := range tests {
		if got := ValidateDate(tt.in); got != tt.want {
			t.Errorf("ValidateDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		start, end string
		want       bool
	}{
		{"2023-01-10", "2023-01-01", false},
		{"2023-01-01", "2023-01-10", true},
		{"2023-01-01", "2023-01-01", true},
		{"", "2023-01-01", true},
		{"2023-01-01", "", true},
		{"2023-02-30", "2023-03-01", false},
	}
	for _, tt := range tests {
		if got := ValidateDateRange(tt.start, tt.end); got != tt.want {
			t.Errorf("ValidateDateRange(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"https://linkedin.com/in/someone", true},
		{"http://localhost:8080/path?q=1", true},
		{"linkedin.com/in/someone", false},
		{"://missing-scheme", false},
		{"mailto:", false},
	}
	for _, tt := range tests {
		if got := ValidateURL(tt.in); got != tt.want {
			t.Errorf("ValidateURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateText(t *testing.T) {
	if !ValidateText("", 0, 10) {
		t.Fatal("empty text should pass when min is 0")
	}
	if ValidateText("", 1, 10) {
		t.Fatal("empty text should fail when min > 0")
	}
	if !ValidateText("héllo", 5, 5) {
		t.Fatal("length should be measured in characters, not bytes")
	}
	if ValidateText("ab", 3, 255) {
		t.Fatal("short text should fail")
	}
	if ValidateText(strings.Repeat("a", 256), 3, 255) {
		t.Fatal("long text should fail")
	}
}

func TestValidateNumber(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"0", true},
		{"10000", true},
		{"10001", false},
		{"-1", false},
		{"12.5", false},
		{"ten", false},
	}
	for _, tt := range tests {
		if got := ValidateNumber(tt.in, 0, 10000); got != tt.want {
			t.Errorf("ValidateNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func validGoal() models.GoalInput {
	return models.GoalInput{
		Title:       "Finish capstone",
		Description: "Ship the capstone project before graduation",
		Category:    "project",
		TargetDate:  "2025-05-01",
		Priority:    "high",
		Status:      "active",
	}
}

func TestValidateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res := ValidateGoal(validGoal())
		if !res.IsValid || len(res.Errors) != 0 {
			t.Fatalf("expected valid goal, got %v", res.Errors)
		}
	})

	t.Run("title bounds", func(t *testing.T) {
		for _, title := range []string{"", "ab", strings.Repeat("x", 256)} {
			g := validGoal()
			g.Title = title
			res := ValidateGoal(g)
			if res.IsValid {
				t.Fatalf("title %q should be rejected", title)
			}
			if !containsMessage(res.Errors, "3-255") {
				t.Fatalf("expected 3-255 message for %q, got %v", title, res.Errors)
			}
		}
	})

	t.Run("reports every violation", func(t *testing.T) {
		res := ValidateGoal(models.GoalInput{Priority: "whenever", Status: "done", TargetDate: "tomorrow"})
		if res.IsValid {
			t.Fatal("expected invalid goal")
		}
		if len(res.Errors) != 6 {
			t.Fatalf("expected 6 errors, got %d: %v", len(res.Errors), res.Errors)
		}
	})
}

func TestValidateActivity(t *testing.T) {
	hours := json.Number("40")
	base := models.ActivityInput{
		Title:     "Robotics club",
		Category:  "academic",
		StartDate: "2024-01-01",
		EndDate:   "2024-06-01",
		Hours:     &hours,
	}
	if res := ValidateActivity(base); !res.IsValid {
		t.Fatalf("expected valid activity, got %v", res.Errors)
	}

	reversed := base
	reversed.StartDate = "2024-06-01"
	reversed.EndDate = "2024-01-01"
	res := ValidateActivity(reversed)
	if res.IsValid {
		t.Fatal("expected reversed dates to fail")
	}
	if !containsMessage(res.Errors, "Start date must be before or equal to end date") {
		t.Fatalf("missing ordering error: %v", res.Errors)
	}

	tooMany := json.Number("10001")
	bad := base
	bad.Hours = &tooMany
	bad.Category = "gaming"
	res = ValidateActivity(bad)
	if len(res.Errors) != 2 {
		t.Fatalf("expected hours and category errors, got %v", res.Errors)
	}
}

func TestValidateStudentProfile(t *testing.T) {
	ok := models.ProfileUpdate{
		StudentIDNum: strPtr("S12345"),
		YearLevel:    strPtr("Junior"),
		Major:        strPtr("Computer Science"),
		DateOfBirth:  strPtr("2003-04-05"),
		LinkedInURL:  strPtr("https://linkedin.com/in/student"),
	}
	if res := ValidateStudentProfile(ok); !res.IsValid {
		t.Fatalf("expected valid profile, got %v", res.Errors)
	}

	bad := models.ProfileUpdate{
		StudentIDNum: strPtr("S1"),
		YearLevel:    strPtr("Fifth year"),
		Major:        strPtr("X"),
		DateOfBirth:  strPtr("2003-02-30"),
		Bio:          strPtr(strings.Repeat("b", 1001)),
		GithubURL:    strPtr("github.com/student"),
	}
	res := ValidateStudentProfile(bad)
	if res.IsValid || len(res.Errors) != 6 {
		t.Fatalf("expected 6 errors, got %v", res.Errors)
	}

	contact := models.ProfileUpdate{
		FirstName: strPtr(""),
		LastName:  strPtr(strings.Repeat("n", 51)),
		Phone:     strPtr("call me maybe"),
		Major:     strPtr("X"),
	}
	res = ValidateStudentProfile(contact)
	for _, want := range []string{"First name must be 2-50 characters", "Last name must be 2-50 characters", "Phone must be", "Major must be"} {
		if !containsMessage(res.Errors, want) {
			t.Errorf("missing %q in %v", want, res.Errors)
		}
	}

	contactOK := models.ProfileUpdate{FirstName: strPtr("  Ada "), LastName: strPtr("Lovelace"), Phone: strPtr("+1 (555) 010-2030")}
	if res := ValidateStudentProfile(contactOK); !res.IsValid {
		t.Errorf("valid contact rejected: %v", res.Errors)
	}
	if res := ValidateStudentProfile(models.ProfileUpdate{Phone: strPtr("")}); !res.IsValid {
		t.Errorf("empty phone should clear, got %v", res.Errors)
	}

	if res := ValidateStudentProfile(models.ProfileUpdate{}); !res.IsValid || res.Errors == nil {
		t.Fatalf("empty update should be valid with an empty error list, got %+v", res)
	}
}

func TestValidateFileUpload(t *testing.T) {
	res := ValidateFileUpload(FileInfo{FileType: "application/zip", FileSize: 1000, FileName: "x.zip"}, 0)
	if res.IsValid || !containsMessage(res.Errors, "File type not allowed") {
		t.Fatalf("zip should be rejected, got %+v", res)
	}

	res = ValidateFileUpload(FileInfo{FileType: "application/pdf", FileSize: 1000, FileName: "x.pdf"}, 0)
	if !res.IsValid {
		t.Fatalf("pdf should pass, got %v", res.Errors)
	}

	res = ValidateFileUpload(FileInfo{FileType: "image/png", FileSize: 6 << 20, FileName: ""}, 0)
	if !containsMessage(res.Errors, "File size exceeds 5MB limit") || !containsMessage(res.Errors, "File name must be 1-255 characters") {
		t.Fatalf("expected size and name errors, got %v", res.Errors)
	}
}

func TestSanitizeText(t *testing.T) {
	if got := SanitizeText("  a   b  "); got != "a b" {
		t.Fatalf("SanitizeText = %q, want %q", got, "a b")
	}
	if got := SanitizeText("line\n\tbreak"); got != "line break" {
		t.Fatalf("SanitizeText = %q", got)
	}
	if got := SanitizeText(""); got != "" {
		t.Fatalf("empty should pass through, got %q", got)
	}
}

func TestSanitizeURL(t *testing.T) {
	if got := SanitizeURL("HTTPS://GitHub.com"); got == nil || *got != "https://github.com/" {
		t.Fatalf("unexpected canonical form: %v", got)
	}
	if got := SanitizeURL("not a url"); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
	if got := SanitizeURL(""); got == nil || *got != "" {
		t.Fatal("empty url should pass through")
	}
}

func TestSanitizeProfile(t *testing.T) {
	in := models.ProfileUpdate{
		Bio:          strPtr("  loves   robots "),
		PortfolioURL: strPtr("::bad::"),
		GithubURL:    strPtr("https://github.com/me"),
		TechnicalSkills: []models.SkillInput{
			{Name: " Go "}, {Name: "go"}, {Name: "  "}, {Name: "SQL"},
		},
	}
	out := SanitizeProfile(in)

	if out.Bio == nil || *out.Bio != "loves robots" {
		t.Fatalf("bio not sanitized: %v", out.Bio)
	}
	if out.PortfolioURL != nil {
		t.Fatal("unparseable url should be dropped")
	}
	if out.GithubURL == nil || *out.GithubURL != "https://github.com/me" {
		t.Fatalf("github url changed: %v", out.GithubURL)
	}
	if out.Major != nil || out.SoftSkills != nil {
		t.Fatal("absent fields must stay absent")
	}
	if len(out.TechnicalSkills) != 2 || out.TechnicalSkills[0].Name != "Go" || out.TechnicalSkills[1].Name != "SQL" {
		t.Fatalf("unexpected skills: %+v", out.TechnicalSkills)
	}
}

func TestCanTransitionGoal(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{"active", "completed", true},
		{"active", "paused", true},
		{"active", "cancelled", true},
		{"paused", "active", true},
		{"paused", "completed", false},
		{"completed", "active", false},
		{"cancelled", "active", false},
		{"completed", "completed", true},
	}
	for _, tt := range tests {
		if got := CanTransitionGoal(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionGoal(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

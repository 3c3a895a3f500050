package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	return WithLocalizer(context.Background(), NewLocalizer(lang))
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "ParagraphRequired"); got != "Paragraph is required" {
		t.Errorf("T(ParagraphRequired) = %q, want 'Paragraph is required'", got)
	}
	if got := T(ctx, "GenerationFailed"); got != "Failed to generate Q&A" {
		t.Errorf("T(GenerationFailed) = %q, want 'Failed to generate Q&A'", got)
	}
}

func TestTranslateTelugu(t *testing.T) {
	ctx := initLang(t, "te")

	if got := T(ctx, "ParagraphRequired"); got != "పేరాగ్రాఫ్ అవసరం" {
		t.Errorf("T(ParagraphRequired) = %q, want 'పేరాగ్రాఫ్ అవసరం'", got)
	}
	if got := T(ctx, "AppTitle"); got != "తెలుగు ప్రశ్నోత్తరాల జనరేటర్" {
		t.Errorf("T(AppTitle) = %q", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	if got := Tp(ctx, "QuestionsGenerated", 1); got != "1 question generated" {
		t.Errorf("Tp(QuestionsGenerated, 1) = %q, want '1 question generated'", got)
	}
	if got := Tp(ctx, "QuestionsGenerated", 5); got != "5 questions generated" {
		t.Errorf("Tp(QuestionsGenerated, 5) = %q, want '5 questions generated'", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "NotFound", map[string]any{"ID": "abc"})
	if got != "Generation abc not found" {
		t.Errorf("Td(NotFound, ID=abc) = %q, want 'Generation abc not found'", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "NonExistentKey"); got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestDefaultLanguageWithoutLocalizer(t *testing.T) {
	initLang(t, "te")

	if got := T(context.Background(), "Unauthorized"); got != "అనుమతి లేదు" {
		t.Errorf("T(Unauthorized) = %q, want Telugu default", got)
	}
}

func TestLanguages(t *testing.T) {
	initLang(t, "en")
	if n := len(Languages()); n != 2 {
		t.Errorf("loaded %d languages, want 2", n)
	}
}

func TestMiddlewareAcceptLanguage(t *testing.T) {
	initLang(t, "en")

	var got string
	h := Middleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "ParagraphRequired")
	}))

	tests := []struct {
		header string
		want   string
	}{
		{"", "Paragraph is required"},
		{"te-IN,te;q=0.9,en;q=0.8", "పేరాగ్రాఫ్ అవసరం"},
		{"fr", "Paragraph is required"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Accept-Language", tt.header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		if got != tt.want {
			t.Errorf("Accept-Language %q: got %q, want %q", tt.header, got, tt.want)
		}
	}
}

package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "AppTitle")
	if got != "Quizforge" {
		t.Errorf("T(AppTitle) = %q, want 'Quizforge'", got)
	}

	got = T(ctx, "SettingsSaved")
	if got != "Settings saved successfully" {
		t.Errorf("T(SettingsSaved) = %q, want 'Settings saved successfully'", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")

	got := T(ctx, "AppTitle")
	if got != "Квизфорж" {
		t.Errorf("T(AppTitle) = %q, want 'Квизфорж'", got)
	}

	got = T(ctx, "QuestionsCleared")
	if got != "Все вопросы удалены" {
		t.Errorf("T(QuestionsCleared) = %q, want 'Все вопросы удалены'", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got1 := Tp(ctx, "ImportedQuestions", 1)
	if got1 != "Successfully parsed 1 question" {
		t.Errorf("Tp(ImportedQuestions, 1) = %q, want 'Successfully parsed 1 question'", got1)
	}

	got5 := Tp(ctx, "ImportedQuestions", 5)
	if got5 != "Successfully parsed 5 questions" {
		t.Errorf("Tp(ImportedQuestions, 5) = %q, want 'Successfully parsed 5 questions'", got5)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "VideoGenerated", map[string]any{"File": "quiz_20240101_120000.mp4"})
	if got != "Video generated successfully: quiz_20240101_120000.mp4" {
		t.Errorf("Td(VideoGenerated) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

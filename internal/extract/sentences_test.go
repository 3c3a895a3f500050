package extract

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"only terminators", ". ! ? ।", []string{}},
		{
			"latin full stops",
			"రాముడు హైదరాబాద్ నగరం వెళ్ళాడు. అతను 2020లో తిరిగి వచ్చాడు.",
			[]string{"రాముడు హైదరాబాద్ నగరం వెళ్ళాడు", "అతను 2020లో తిరిగి వచ్చాడు"},
		},
		{
			"danda and double danda",
			"మొదటి వాక్యం। రెండవ వాక్యం॥ మూడవ వాక్యం",
			[]string{"మొదటి వాక్యం", "రెండవ వాక్యం", "మూడవ వాక్యం"},
		},
		{
			"question and exclamation",
			"  ఎవరు వచ్చారు?  అద్భుతం!  ",
			[]string{"ఎవరు వచ్చారు", "అద్భుతం"},
		},
		{
			"consecutive terminators",
			"ఒకటి...రెండు?!",
			[]string{"ఒకటి", "రెండు"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitSentencesNormalises(t *testing.T) {
	// U+0C46 U+0C56 composes to U+0C48 under NFC.
	decomposed := "కైలాసం. రెండవ"
	composed := "కైలాసం"

	got := SplitSentences(decomposed)
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got))
	}
	if got[0] != composed {
		t.Errorf("first sentence = %+q, want NFC form %+q", got[0], composed)
	}
}

func TestContainsTelugu(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"రాముడు", true},
		{"hello రా", true},
		{"hello world", false},
		{"", false},
		{"१२३ हिन्दी", false},
	}
	for _, tt := range tests {
		if got := ContainsTelugu(tt.in); got != tt.want {
			t.Errorf("ContainsTelugu(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

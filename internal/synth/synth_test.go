package synth

import (
	"reflect"
	"testing"

	"github.com/chaitu-2303/Q-A/internal/model"
)

func entities(persons, locations, dates []string) model.EntitySet {
	return model.EntitySet{Persons: persons, Locations: locations, Dates: dates, Organizations: []string{}}
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		entities model.EntitySet
		want     []model.Candidate
	}{
		{
			name:     "where",
			sentence: "రాముడు హైదరాబాద్ నగరం వెళ్ళాడు",
			entities: entities(nil, []string{"హైదరాబాద్ నగరం"}, nil),
			want: []model.Candidate{
				{Question: "రాముడు ఎక్కడ వెళ్ళాడు?", Answer: "హైదరాబాద్ నగరం", Type: model.TypeWhere},
			},
		},
		{
			name:     "when",
			sentence: "అతను 2020లో తిరిగి వచ్చాడు",
			entities: entities(nil, nil, []string{"2020"}),
			want: []model.Candidate{
				{Question: "అతను ఎప్పుడులో తిరిగి వచ్చాడు?", Answer: "2020", Type: model.TypeWhen},
			},
		},
		{
			name:     "who replaces first occurrence only",
			sentence: "వెంకటరావు మరియు వెంకటరావు",
			entities: entities([]string{"వెంకటరావు", "వెంకటరావు"}, nil, nil),
			want: []model.Candidate{
				{Question: "ఎవరు మరియు వెంకటరావు?", Answer: "వెంకటరావు", Type: model.TypeWho},
				{Question: "ఎవరు మరియు వెంకటరావు?", Answer: "వెంకటరావు", Type: model.TypeWho},
			},
		},
		{
			name:     "rule order who where when",
			sentence: "వెంకటరావు 1956లో ఆంధ్ర రాష్ట్రం చేరాడు",
			entities: entities([]string{"వెంకటరావు"}, []string{"ఆంధ్ర రాష్ట్రం"}, []string{"1956"}),
			want: []model.Candidate{
				{Question: "ఎవరు 1956లో ఆంధ్ర రాష్ట్రం చేరాడు?", Answer: "వెంకటరావు", Type: model.TypeWho},
				{Question: "వెంకటరావు 1956లో ఎక్కడ చేరాడు?", Answer: "ఆంధ్ర రాష్ట్రం", Type: model.TypeWhere},
				{Question: "వెంకటరావు ఎప్పుడులో ఆంధ్ర రాష్ట్రం చేరాడు?", Answer: "1956", Type: model.TypeWhen},
			},
		},
		{
			name:     "causal",
			sentence: "వర్షం కారణంగా పంటలు పండాయి",
			entities: entities(nil, nil, nil),
			want: []model.Candidate{
				{Question: "పంటలు పండాయికి కారణం ఏమిటి?", Answer: "వర్షం", Type: model.TypeWhy},
			},
		},
		{
			name:     "causal keyword declaration order wins over position",
			sentence: "అతను ఆలస్యం అయ్యాడు ఎందుకంటే బస్సు వల్ల ఇబ్బంది",
			entities: entities(nil, nil, nil),
			want: []model.Candidate{
				{Question: "ఇబ్బందికి కారణం ఏమిటి?", Answer: "అతను ఆలస్యం అయ్యాడు ఎందుకంటే బస్సు", Type: model.TypeWhy},
			},
		},
		{
			name:     "manner",
			sentence: "రైలు ద్వారా ప్రయాణం చేశారు",
			entities: entities(nil, nil, nil),
			want: []model.Candidate{
				{Question: "రైలు ఎలా జరిగింది?", Answer: "ద్వారాప్రయాణం చేశారు", Type: model.TypeHow},
			},
		},
		{
			name:     "causal with nothing before falls back",
			sentence: "కారణంగా ఆగిపోయింది",
			entities: entities(nil, nil, nil),
			want: []model.Candidate{
				{Question: "'కారణంగా ఆగిపోయింది' గురించి వివరించండి.", Answer: "కారణంగా ఆగిపోయింది", Type: model.TypeWhat},
			},
		},
		{
			name:     "fallback",
			sentence: "ఇది ఒక సాధారణ వాక్యం",
			entities: entities(nil, nil, nil),
			want: []model.Candidate{
				{Question: "'ఇది ఒక సాధారణ వాక్యం' గురించి వివరించండి.", Answer: "ఇది ఒక సాధారణ వాక్యం", Type: model.TypeWhat},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synthesize(tt.sentence, tt.entities)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Synthesize(%q)\n got  %+v\n want %+v", tt.sentence, got, tt.want)
			}
			for _, c := range got {
				if c.Answer == "" {
					t.Errorf("candidate %q has empty answer", c.Question)
				}
				if c.Context != "" {
					t.Errorf("candidate %q has context %q, want empty", c.Question, c.Context)
				}
			}
		})
	}
}

func TestReplaceFirst(t *testing.T) {
	tests := []struct {
		s, old, repl, want string
	}{
		{"a b a", "a", "x", "x b a"},
		{"no match", "z", "x", "no match"},
		{"రావు రావు", "రావు", "ఎవరు", "ఎవరు రావు"},
	}
	for _, tt := range tests {
		if got := replaceFirst(tt.s, tt.old, tt.repl); got != tt.want {
			t.Errorf("replaceFirst(%q, %q, %q) = %q, want %q", tt.s, tt.old, tt.repl, got, tt.want)
		}
	}
}

package session

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"remove-common", RemoveCommon, false},
		{"common", RemoveCommon, false},
		{"remove-infrequent", RemoveInfrequent, false},
		{"Infrequent", RemoveInfrequent, false},
		{" unshared ", RemoveUnshared, false},
		{"remove-unshared", RemoveUnshared, false},
		{"remove", 0, true},
		{"", 0, true},
		{"shared", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidAction) {
					t.Errorf("ParseAction(%q) err = %v, want %s", tt.input, err, errors.ErrCodeInvalidAction)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseActions(t *testing.T) {
	got, err := ParseActions([]string{"common", "unshared"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != RemoveCommon || got[1] != RemoveUnshared {
		t.Errorf("ParseActions() = %v", got)
	}

	if _, err := ParseActions([]string{"common", "bogus"}); err == nil {
		t.Error("ParseActions() accepted an unknown action")
	}
}

func TestActionStrings(t *testing.T) {
	for _, a := range Actions() {
		if a.String() == "unknown" || a.Label() == "unknown action" {
			t.Errorf("action %d has no name or label", a)
		}
		parsed, err := ParseAction(a.String())
		if err != nil || parsed != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), parsed, err)
		}
	}
	if Action(99).String() != "unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
	if RemoveUnshared.Label() != "remove un-shared words" {
		t.Errorf("Label() = %q", RemoveUnshared.Label())
	}
}

func TestActionJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Action `json:"a"`
	}{RemoveInfrequent})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":"remove-infrequent"}` {
		t.Errorf("json = %s", data)
	}

	var back struct {
		A Action `json:"a"`
	}
	if err := json.Unmarshal([]byte(`{"a":"common"}`), &back); err != nil {
		t.Fatal(err)
	}
	if back.A != RemoveCommon {
		t.Errorf("unmarshal = %v", back.A)
	}
}

package engine

import (
	"encoding/json"
	"testing"
)

func TestParseAction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{input: "fold", want: Fold},
		{input: "check", want: Check},
		{input: "call", want: Call},
		{input: "raise", want: Raise},
		{input: "all-in", want: AllIn},
		{input: "allin", want: AllIn},
		{input: "bet", wantErr: true},
		{input: "", wantErr: true},
		{input: "FOLD", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAction(%q) succeeded, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAction(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestActionRoundTripsThroughString(t *testing.T) {
	t.Parallel()
	for _, action := range []Action{Fold, Check, Call, Raise, AllIn} {
		got, err := ParseAction(action.String())
		if err != nil {
			t.Errorf("ParseAction(%q): %v", action.String(), err)
		}
		if got != action {
			t.Errorf("round trip %v -> %v", action, got)
		}
	}
}

func TestPhaseJSONRoundTrip(t *testing.T) {
	t.Parallel()
	for phase := Waiting; phase <= Showdown; phase++ {
		data, err := json.Marshal(phase)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", phase, err)
		}
		var back Phase
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != phase {
			t.Errorf("round trip %v -> %v", phase, back)
		}
	}

	var p Phase
	if err := json.Unmarshal([]byte(`"penultimate"`), &p); err == nil {
		t.Errorf("unknown phase decoded without error")
	}
}

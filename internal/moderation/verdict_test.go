package moderation_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/avismic/wrkbl/internal/moderation"
)

func TestParseVerdicts_RawObject(t *testing.T) {
	got := moderation.ParseVerdicts(`{"a1":"valid","a2":"spam"}`)
	want := map[string]string{"a1": "valid", "a2": "spam"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseVerdicts = %v, want %v", got, want)
	}
}

func TestParseVerdicts_FencedOutput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"plain fence", "```\n{\"a1\":\"valid\"}\n```"},
		{"json language tag", "```json\n{\"a1\":\"valid\"}\n```"},
		{"fence with trailing whitespace", "```json\n{\"a1\":\"valid\"}\n```   \n"},
	}
	want := map[string]string{"a1": "valid"}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := moderation.ParseVerdicts(c.raw); !reflect.DeepEqual(got, want) {
				t.Errorf("ParseVerdicts(%q) = %v, want %v", c.raw, got, want)
			}
		})
	}
}

func TestParseVerdicts_SurroundingCommentary(t *testing.T) {
	raw := `Sure! Here are the verdicts you asked for: {"a1":"spam","b2":"valid"} Let me know if you need anything else.`
	want := map[string]string{"a1": "spam", "b2": "valid"}
	if got := moderation.ParseVerdicts(raw); !reflect.DeepEqual(got, want) {
		t.Errorf("ParseVerdicts = %v, want %v", got, want)
	}
}

func TestParseVerdicts_FencedWithCommentary(t *testing.T) {
	raw := "```json\nHere is the result: {\"a1\":\"valid\"}\n```"
	want := map[string]string{"a1": "valid"}
	if got := moderation.ParseVerdicts(raw); !reflect.DeepEqual(got, want) {
		t.Errorf("ParseVerdicts = %v, want %v", got, want)
	}
}

func TestParseVerdicts_Unparseable(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no json at all", "I cannot complete this request."},
		{"empty string", ""},
		{"only a fence", "```\n```"},
		{"brace order reversed", "} nothing here {"},
		{"nested values", `{"a1":{"verdict":"valid"}}`},
		{"array not object", `["valid","spam"]`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := moderation.ParseVerdicts(c.raw); got != nil {
				t.Errorf("ParseVerdicts(%q) = %v, want nil", c.raw, got)
			}
		})
	}
}

// Any well-formed string-valued object must survive fencing and commentary.
func TestParseVerdicts_RoundTrip(t *testing.T) {
	obj := map[string]string{"x": "valid", "y": "spam", "z": "valid"}
	payload, err := json.Marshal(obj)
	if err != nil {
		t.Fatal(err)
	}
	wrapped := []string{
		string(payload),
		"```json\n" + string(payload) + "\n```",
		"some preamble text " + string(payload) + " trailing notes",
	}
	for _, raw := range wrapped {
		if got := moderation.ParseVerdicts(raw); !reflect.DeepEqual(got, obj) {
			t.Errorf("ParseVerdicts(%q) = %v, want %v", raw, got, obj)
		}
	}
}

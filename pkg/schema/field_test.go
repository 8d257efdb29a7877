package schema

import "testing"

func TestFieldHidden(t *testing.T) {
	cases := []struct {
		name    string
		visible bool
		public  bool
		hidden  bool
	}{
		{"visible public", true, true, false},
		{"invisible", false, true, true},
		{"not public", true, false, true},
		{"neither", false, false, true},
	}
	for _, tc := range cases {
		field := Field{Visible: tc.visible, Public: tc.public}
		if got := field.Hidden(); got != tc.hidden {
			t.Fatalf("%s: Hidden() = %v, want %v", tc.name, got, tc.hidden)
		}
	}
}

func TestFieldSettingIsCaseInsensitive(t *testing.T) {
	field := Field{Settings: map[string]string{"EditTime": "True"}}
	value, ok := field.Setting("edittime")
	if !ok || value != "True" {
		t.Fatalf("expected EditTime setting, got %q (%v)", value, ok)
	}
	if _, ok := field.Setting("missing"); ok {
		t.Fatalf("expected missing setting to report false")
	}
}

func TestFieldControlNameFallsBackToSettings(t *testing.T) {
	field := Field{Settings: map[string]string{"ControlName": " TextAreaControl "}}
	if got := field.ControlName(); got != "textareacontrol" {
		t.Fatalf("ControlName() = %q", got)
	}
}

func TestFieldCloneDoesNotAliasSettings(t *testing.T) {
	original := Field{Name: "a", Settings: map[string]string{"k": "v"}}
	clone := original.Clone()
	clone.Settings["k"] = "changed"
	if original.Settings["k"] != "v" {
		t.Fatalf("clone mutated original settings")
	}
}

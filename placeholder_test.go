package menu

import "testing"

func TestParsePlaceholderAction(t *testing.T) {
	cases := map[string]PlaceholderAction{
		"SUPERIOR":                   PlaceholderSuperior,
		"superior_or_equal":          PlaceholderSuperiorOrEqual,
		">=":                         PlaceholderSuperiorOrEqual,
		"<":                          PlaceholderLower,
		"==":                         PlaceholderEqualTo,
		" equals_string_ignore_case": PlaceholderEqualsStringIgnoreCase,
	}
	for raw, want := range cases {
		got, ok := ParsePlaceholderAction(raw)
		if !ok || got != want {
			t.Fatalf("ParsePlaceholderAction(%q) = %q, %v", raw, got, ok)
		}
	}
	for _, raw := range []string{"", "bigger", "=>"} {
		if _, ok := ParsePlaceholderAction(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestBuildPlaceholdersKeepsValidInOrder(t *testing.T) {
	doc := parseSection(t, `
button:
  placeholders:
    - action: SUPERIOR
      placeHolder: "%level%"
      value: 10
    - action: CONTAINS_STRING
      value: x
    - action: EQUALS_STRING
      placeholder: "%world%"
      value: lobby
  placeHolder: "%rank%"
  action: equals_string_ignore_case
  value: admin
`)
	logger, logs := newTestLogger()
	rules := buildPlaceholders(doc, "button", logger)

	want := []PlaceholderRule{
		{Action: PlaceholderSuperior, Placeholder: "%level%", Value: "10"},
		{Action: PlaceholderEqualsString, Placeholder: "%world%", Value: "lobby"},
		{Action: PlaceholderEqualsStringIgnoreCase, Placeholder: "%rank%", Value: "admin"},
	}
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %+v", len(want), rules)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Fatalf("rule %d = %+v, want %+v", i, rules[i], want[i])
		}
	}
	if got := logs.count("invalid placeholder in button placeholder list"); got != 1 {
		t.Fatalf("expected one warning, got %d", got)
	}
}

func TestBuildPlaceholdersIgnoresPartialShorthand(t *testing.T) {
	doc := parseSection(t, `
button:
  placeholder: "%rank%"
  action: EQUALS_STRING
`)
	logger, _ := newTestLogger()
	if rules := buildPlaceholders(doc, "button", logger); rules != nil {
		t.Fatalf("expected no rules, got %+v", rules)
	}
}

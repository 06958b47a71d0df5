// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package karma

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Op
	}{
		{"glued_increment", "cake++", OpIncrement},
		{"spaced_increment", "cake ++", OpIncrement},
		{"increment_with_flavor", "cake++ well deserved", OpIncrement},
		{"spaced_increment_with_flavor", "cake ++ well deserved", OpIncrement},
		{"glued_decrement", "mondays--", OpDecrement},
		{"spaced_decrement", "mondays --", OpDecrement},
		{"decrement_with_flavor", "mondays-- ugh", OpDecrement},
		{"mention_increment", "<@U123>++", OpIncrement},
		{"channel_increment", "#general++", OpIncrement},
		{"plain_text", "hello world", OpNone},
		{"empty", "", OpNone},
		{"operator_only_plus", "++", OpNone},
		{"operator_only_minus", "--", OpNone},
		{"double_space_before_operator", "cake  ++", OpNone},
		{"operator_not_on_first_token", "I like cake++", OpNone},
		{"single_plus", "cake+", OpNone},
		{"single_minus", "cake-", OpNone},
		{"operator_mid_token_counts", "a++b", OpIncrement},
		{"url_with_dashes_classifies_as_decrement", "https://example.com/a--b", OpDecrement},
		{"both_operators_prefers_increment", "a++--", OpIncrement},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.text); got != test.want {
				t.Errorf("Classify(%q) = %v, want %v", test.text, got, test.want)
			}
		})
	}
}

func TestExtractSubject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"glued_operator", "cake++", "cake"},
		{"spaced_operator", "cake ++ tasty", "cake"},
		{"decrement", "mondays--", "mondays"},
		{"leading_at", "@dave++", "dave"},
		{"leading_hash", "#general++", "general"},
		{"only_one_prefix_stripped", "@@dave++", "@dave"},
		{"mention_delimiters_preserved", "<@U123>++", "<@U123>"},
		{"broadcast_preserved", "<!here>++", "<!here>"},
		{"case_preserved", "CaKe++", "CaKe"},
		{"no_operator", "cake is great", "cake"},
		{"only_trailing_operator_stripped", "mid--dle++", "mid--dle"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ExtractSubject(test.text)
			if err != nil {
				t.Fatalf("ExtractSubject(%q): %v", test.text, err)
			}
			if got != test.want {
				t.Errorf("ExtractSubject(%q) = %q, want %q", test.text, got, test.want)
			}
		})
	}
}

func TestExtractSubjectInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace_only", "   "},
		{"prefix_only", "@++"},
		{"hash_only", "#--"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ExtractSubject(test.text)
			if !errors.Is(err, ErrNoSubject) {
				t.Fatalf("ExtractSubject(%q) = (%q, %v), want ErrNoSubject", test.text, got, err)
			}
		})
	}
}

func TestIsSelfReference(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		text   string
		want   bool
	}{
		{"mention_of_self", "U123", "<@U123>++", true},
		{"other_user", "U999", "<@U123>++", false},
		{"id_inside_longer_token", "U123", "<@U1234>++", true},
		{"plain_subject", "U123", "cake++", false},
		{"empty_sender", "", "cake++", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsSelfReference(test.userID, test.text); got != test.want {
				t.Errorf("IsSelfReference(%q, %q) = %v, want %v", test.userID, test.text, got, test.want)
			}
		})
	}
}

func TestLooksLikeURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"https_path_dashes", "https://example.com/a--b", true},
		{"http_path_dashes", "http://example.com/a--b", true},
		{"url_later_in_text", "see https://example.com/a--b for details", true},
		{"host_dashes", "https://my--host.example.com", true},
		{"port_and_path", "https://example.com:8080/a--b", true},
		{"query_dashes", "https://example.com?flag--value", true},
		{"url_without_dashes", "https://example.com/ab", false},
		{"no_scheme", "example.com/a--b", false},
		{"bare_decrement", "mondays--", false},
		{"plain_text", "nothing to see here", false},
		{"ftp_scheme", "ftp://example.com/a--b", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := LooksLikeURL(test.text); got != test.want {
				t.Errorf("LooksLikeURL(%q) = %v, want %v", test.text, got, test.want)
			}
		})
	}
}

package main

import (
	"reflect"
	"testing"
)

func TestRewriteRouteShortcutArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"quickcomm"},
			want: []string{"quickcomm"},
		},
		{
			name: "category ref first token",
			in:   []string{"quickcomm", "places/Gym"},
			want: []string{"quickcomm", "phrases", "places/Gym"},
		},
		{
			name: "scope ref lists categories",
			in:   []string{"quickcomm", "activities"},
			want: []string{"quickcomm", "categories", "activities"},
		},
		{
			name: "after value flag",
			in:   []string{"quickcomm", "--dir", "./tmp", "places/School Gate"},
			want: []string{"quickcomm", "--dir", "./tmp", "phrases", "places/School Gate"},
		},
		{
			name: "after equals flag",
			in:   []string{"quickcomm", "--format=text", "places/Gym"},
			want: []string{"quickcomm", "--format=text", "phrases", "places/Gym"},
		},
		{
			name: "after bool flag",
			in:   []string{"quickcomm", "--pretty", "activities/Exam"},
			want: []string{"quickcomm", "--pretty", "phrases", "activities/Exam"},
		},
		{
			name: "after double dash",
			in:   []string{"quickcomm", "--", "places/Gym"},
			want: []string{"quickcomm", "--", "phrases", "places/Gym"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"quickcomm", "phrases", "places/Gym"},
			want: []string{"quickcomm", "phrases", "places/Gym"},
		},
		{
			name: "non-category routes not rewritten",
			in:   []string{"quickcomm", "favorites", "list"},
			want: []string{"quickcomm", "favorites", "list"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"quickcomm", "wat"},
			want: []string{"quickcomm", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteRouteShortcutArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteRouteShortcutArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}

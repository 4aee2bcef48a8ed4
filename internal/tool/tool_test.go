package tool

import (
	"reflect"
	"testing"
)

func TestNewSplitsWords(t *testing.T) {
	tests := []struct {
		name       string
		command    string
		subcommand string
		extra      string
		wantSub    []string
		wantExtra  []string
	}{
		{
			name:       "single word subcommand",
			command:    "apptainer",
			subcommand: "build",
			wantSub:    []string{"build"},
			wantExtra:  []string{},
		},
		{
			name:       "multi word subcommand",
			command:    "conda",
			subcommand: "env create",
			wantSub:    []string{"env", "create"},
			wantExtra:  []string{},
		},
		{
			name:       "extra flags",
			command:    "apptainer",
			subcommand: "build",
			extra:      "--fakeroot --force",
			wantSub:    []string{"build"},
			wantExtra:  []string{"--fakeroot", "--force"},
		},
		{
			name:       "quoted extra flag",
			command:    "apptainer",
			subcommand: "build",
			extra:      `--build-arg "A B"`,
			wantSub:    []string{"build"},
			wantExtra:  []string{"--build-arg", "A B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := New(tt.command, tt.subcommand, tt.extra)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tl.Subcommand, tt.wantSub) {
				t.Fatalf("Subcommand = %v, want %v", tl.Subcommand, tt.wantSub)
			}
			if !reflect.DeepEqual(tl.Extra, tt.wantExtra) {
				t.Fatalf("Extra = %v, want %v", tl.Extra, tt.wantExtra)
			}
		})
	}
}

func TestImageInvocation(t *testing.T) {
	tl, err := New("apptainer", "build", "--fakeroot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := tl.ImageInvocation("build/base_image.sif", "base_image.def")
	if inv.Path != "apptainer" {
		t.Fatalf("path = %q, want apptainer", inv.Path)
	}
	want := []string{"build", "build/base_image.sif", "--fakeroot", "base_image.def"}
	if !reflect.DeepEqual(inv.Args, want) {
		t.Fatalf("args = %v, want %v", inv.Args, want)
	}
}

func TestEnvInvocation(t *testing.T) {
	tl, err := New("conda", "env create", "--yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := tl.EnvInvocation("build/code-server", "code-server.def")
	want := []string{"env", "create", "build/code-server", "-f", "code-server.def", "--yes"}
	if !reflect.DeepEqual(inv.Args, want) {
		t.Fatalf("args = %v, want %v", inv.Args, want)
	}
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Path: "apptainer", Args: []string{"build", "out.sif", "in.def"}}
	if got, want := inv.String(), "apptainer build out.sif in.def"; got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
}

func TestNewRejectsUnbalancedQuotes(t *testing.T) {
	if _, err := New("apptainer", "build", `--flag "unterminated`); err == nil {
		t.Fatal("expected error, got nil")
	}
}

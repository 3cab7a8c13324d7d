package main

import (
	"bytes"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/morozRed/mdtree/internal/cli"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := cli.NewRootCommand(version)

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	sort.Strings(names)

	want := []string{"annotations", "check", "docs", "doctor", "fix", "init", "install-hook", "version", "watch"}
	for _, name := range want {
		idx := sort.SearchStrings(names, name)
		if idx >= len(names) || names[idx] != name {
			t.Fatalf("expected subcommand %q, got %v", name, names)
		}
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root := cli.NewRootCommand(version)

	var got []string
	for _, name := range []string{"annotations", "listing-command", "jobs", "ignore", "log-level", "log-format"} {
		if root.PersistentFlags().Lookup(name) != nil {
			got = append(got, name)
		}
	}
	want := []string{"annotations", "listing-command", "jobs", "ignore", "log-level", "log-format"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected persistent flags (-want +got):\n%s", diff)
	}
}

func TestCheckRejectsUnknownFlag(t *testing.T) {
	root := cli.NewRootCommand(version)
	root.SetArgs([]string{"check", "--no-such-flag"})
	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetOut(&stderr)

	if err := root.Execute(); err == nil {
		t.Fatal("expected unknown flag to fail")
	}
}

package printer

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"oilshop/pos/domain"
)

func TestNewDisabled(t *testing.T) {
	if _, ok := New(nil).(NopSink); !ok {
		t.Fatal("empty command should disable printing")
	}
	sink, ok := New([]string{"lpr", "-P", "counter"}).(CommandSink)
	if !ok || sink.Name != "lpr" || len(sink.Args) != 2 {
		t.Fatalf("unexpected sink %+v", sink)
	}
}

func TestCommandSinkMissingBinary(t *testing.T) {
	err := CommandSink{Name: "definitely-not-a-print-command"}.Print(context.Background(), "/tmp/receipt.txt")
	var printErr *domain.PrintError
	if !errors.As(err, &printErr) {
		t.Fatalf("expected PrintError got %v", err)
	}
	if printErr.Path != "/tmp/receipt.txt" {
		t.Fatalf("path should be reported, got %q", printErr.Path)
	}
}

func TestCommandSinkRuns(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true(1) not available")
	}
	if err := (CommandSink{Name: "true"}).Print(context.Background(), "/tmp/receipt.txt"); err != nil {
		t.Fatalf("print: %v", err)
	}
}

func TestCommandSinkFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false(1) not available")
	}
	err := CommandSink{Name: "false"}.Print(context.Background(), "/tmp/receipt.txt")
	var printErr *domain.PrintError
	if !errors.As(err, &printErr) {
		t.Fatalf("expected PrintError got %v", err)
	}
}

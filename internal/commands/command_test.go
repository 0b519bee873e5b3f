package commands

import (
	"errors"
	"testing"
	"time"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent due:2025-01-01", TypeAdd},
		{"rm 1736000000000", TypeRemove},
		{"delete #12", TypeRemove},
		{"edit 12 new words here", TypeEdit},
		{"done 12", TypeDone},
		{"toggle 12", TypeDone},
		{"/clear", TypeClear},
		{"sort", TypeSort},
		{"filter", TypeSort},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddExtractsTextAndDate(t *testing.T) {
	cmd, err := Parse("/add Buy due:2025-01-01 milk")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Text != "Buy milk" {
		t.Fatalf("unexpected text: %q", cmd.Add.Text)
	}
	if !cmd.Add.DueDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected due date: %v", cmd.Add.DueDate)
	}
}

func TestParseAddRequiresBothFields(t *testing.T) {
	for _, in := range []string{"add", "add Buy milk", "add due:2025-01-01", "add milk due:tomorrow"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEditKeepsText(t *testing.T) {
	cmd, err := Parse("edit 42 Edited Todo")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Edit.ID != 42 || cmd.Edit.Text != "Edited Todo" {
		t.Fatalf("unexpected edit args: %+v", cmd.Edit)
	}
}

func TestParseKeepsInnerSpacing(t *testing.T) {
	cmd, err := Parse("edit 5 two  spaces\tand tab")
	if err != nil {
		t.Fatalf("parse edit failed: %v", err)
	}
	if cmd.Edit.Text != "two  spaces\tand tab" {
		t.Fatalf("edit text collapsed: %q", cmd.Edit.Text)
	}

	cmd, err = Parse("/add Buy  fresh milk due:2025-01-01")
	if err != nil {
		t.Fatalf("parse add failed: %v", err)
	}
	if cmd.Add.Text != "Buy  fresh milk" {
		t.Fatalf("add text collapsed: %q", cmd.Add.Text)
	}

	cmd, err = Parse("add overdue:x  bills DUE:2025-01-01 due:2025-02-01")
	if err != nil {
		t.Fatalf("parse add failed: %v", err)
	}
	if cmd.Add.Text != "overdue:x  bills" {
		t.Fatalf("unexpected add text: %q", cmd.Add.Text)
	}
	if !cmd.Add.DueDate.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected last due token to win, got %v", cmd.Add.DueDate)
	}
}

func TestParseEditRequiresText(t *testing.T) {
	for _, in := range []string{"edit", "edit 5", "edit 5   "} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseRejectsBadIDs(t *testing.T) {
	for _, in := range []string{"rm", "rm abc", "rm -4", "done 1 2", "edit x hello", "clear now"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs due:2025-02-01")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("sort")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}

package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/focusd/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add write report", TypeAdd},
		{"done 2", TypeDone},
		{"/rm 1", TypeRemove},
		{"/delete 1", TypeRemove},
		{"/move 1 3", TypeMove},
		{"/clear", TypeClear},
		{"/mode long", TypeMode},
		{"/custom 45", TypeCustom},
		{"/THEME", TypeTheme},
		{"/lang id", TypeLang},
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

func TestParseAddCategory(t *testing.T) {
	cmd, err := Parse("/add !URGENT  call the bank ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Category != model.CategoryUrgent || cmd.Add.Text != "call the bank" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("/add plain task")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Category != model.CategoryNormal {
		t.Fatalf("expected normal category, got %s", cmd.Add.Category)
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/move #2 4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Move.From != 2 || cmd.Move.To != 4 {
		t.Fatalf("unexpected move args: %+v", cmd.Move)
	}
	cmd, err = Parse("/mode s")
	if err != nil || cmd.Mode.Mode != model.ModeShortBreak {
		t.Fatalf("unexpected mode parse: %+v %v", cmd.Mode, err)
	}
	cmd, err = Parse("/custom 10")
	if err != nil || cmd.Custom.Minutes != 10 {
		t.Fatalf("unexpected custom parse: %+v %v", cmd.Custom, err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"/", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"/add", ErrCodeInvalidArgument},
		{"/add !someday later", ErrCodeInvalidArgument},
		{"/done", ErrCodeInvalidArgument},
		{"/done zero", ErrCodeInvalidArgument},
		{"/rm 0", ErrCodeInvalidArgument},
		{"/move 1", ErrCodeInvalidArgument},
		{"/mode nap", ErrCodeInvalidArgument},
		{"/custom -5", ErrCodeInvalidArgument},
		{"/lang", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Errorf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add !important write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" || a.Category != model.CategoryImportant {
				t.Fatalf("unexpected args: %+v", a)
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
	cmd, err := Parse("/theme")
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

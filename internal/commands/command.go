package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeRemove Type = "rm"
	TypeMove   Type = "move"
	TypeClear  Type = "clear"
	TypeMode   Type = "mode"
	TypeCustom Type = "custom"
	TypeTheme  Type = "theme"
	TypeLang   Type = "lang"
)

var aliases = map[string]Type{
	"delete": TypeRemove,
	"del":    TypeRemove,
	"toggle": TypeDone,
	"mv":     TypeMove,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text     string
	Category model.Category
}

// IndexArgs addresses a task by its 1-based position in the list.
type IndexArgs struct {
	Index int
}

type MoveArgs struct {
	From int
	To   int
}

type ModeArgs struct {
	Mode model.TimerMode
}

type CustomArgs struct {
	Minutes int
}

type LangArgs struct {
	Code string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Index  *IndexArgs
	Move   *MoveArgs
	Mode   *ModeArgs
	Custom *CustomArgs
	Lang   *LangArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := Type(strings.ToLower(parts[0]))
	if alias, ok := aliases[string(head)]; ok {
		head = alias
	}
	args := parts[1:]

	switch head {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeRemove:
		return parseIndex(input, head, args)
	case TypeMove:
		return parseMove(input, args)
	case TypeClear, TypeTheme:
		return Command{Type: head, Raw: input}, nil
	case TypeMode:
		return parseMode(input, args)
	case TypeCustom:
		return parseCustom(input, args)
	case TypeLang:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "lang requires a locale code"}
		}
		return Command{Type: TypeLang, Raw: input, Lang: &LangArgs{Code: args[0]}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	category := model.CategoryNormal
	if len(args) > 0 && strings.HasPrefix(args[0], "!") {
		c := model.Category(strings.ToLower(strings.TrimPrefix(args[0], "!")))
		if !c.IsValid() {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", args[0])}
		}
		category = c
		args = args[1:]
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text, Category: category}}, nil
}

func parseIndex(raw string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", t)}
	}
	n, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: t, Raw: raw, Index: &IndexArgs{Index: n}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires two task numbers"}
	}
	from, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from, To: to}}, nil
}

func parseMode(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mode requires focus, short or long"}
	}
	var mode model.TimerMode
	switch strings.ToLower(args[0]) {
	case "focus", "f":
		mode = model.ModeFocus
	case "short", "s", "shortbreak":
		mode = model.ModeShortBreak
	case "long", "l", "longbreak":
		mode = model.ModeLongBreak
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown mode: %s", args[0])}
	}
	return Command{Type: TypeMode, Raw: raw, Mode: &ModeArgs{Mode: mode}}, nil
}

func parseCustom(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "custom requires minutes"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid minutes: %s", args[0])}
	}
	return Command{Type: TypeCustom, Raw: raw, Custom: &CustomArgs{Minutes: n}}, nil
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", s)}
	}
	return n, nil
}

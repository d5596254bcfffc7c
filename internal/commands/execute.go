package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Done   func(IndexArgs) (Result, error)
	Remove func(IndexArgs) (Result, error)
	Move   func(MoveArgs) (Result, error)
	Clear  func() (Result, error)
	Mode   func(ModeArgs) (Result, error)
	Custom func(CustomArgs) (Result, error)
	Theme  func() (Result, error)
	Lang   func(LangArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return missing(cmd.Type)
		}
		return handlers.Done(*cmd.Index)
	case TypeRemove:
		if handlers.Remove == nil {
			return missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Index)
	case TypeMove:
		if handlers.Move == nil {
			return missing(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	case TypeClear:
		if handlers.Clear == nil {
			return missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeMode:
		if handlers.Mode == nil {
			return missing(cmd.Type)
		}
		return handlers.Mode(*cmd.Mode)
	case TypeCustom:
		if handlers.Custom == nil {
			return missing(cmd.Type)
		}
		return handlers.Custom(*cmd.Custom)
	case TypeTheme:
		if handlers.Theme == nil {
			return missing(cmd.Type)
		}
		return handlers.Theme()
	case TypeLang:
		if handlers.Lang == nil {
			return missing(cmd.Type)
		}
		return handlers.Lang(*cmd.Lang)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) (Result, error) {
	return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

// OutOfRange reports a task number that does not address a task.
func OutOfRange(n, total int) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("task %d out of range (1-%d)", n, total)}
}

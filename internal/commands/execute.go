package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	Sort   func(SortArgs) (Result, error)
	Share  func(ShareArgs) (Result, error)
	Theme  func(ThemeArgs) (Result, error)
	Export func(FileArgs) (Result, error)
	Import func(FileArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "filter handler not configured"}
		}
		return handlers.Filter(*cmd.Filter)
	case TypeSort:
		if handlers.Sort == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "sort handler not configured"}
		}
		return handlers.Sort(*cmd.Sort)
	case TypeShare:
		if handlers.Share == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "share handler not configured"}
		}
		return handlers.Share(*cmd.Share)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "theme handler not configured"}
		}
		return handlers.Theme(*cmd.Theme)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "export handler not configured"}
		}
		return handlers.Export(*cmd.Export)
	case TypeImport:
		if handlers.Import == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "import handler not configured"}
		}
		return handlers.Import(*cmd.Import)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

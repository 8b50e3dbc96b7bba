package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeFilter Type = "filter"
	TypeSort   Type = "sort"
	TypeShare  Type = "share"
	TypeTheme  Type = "theme"
	TypeExport Type = "export"
	TypeImport Type = "import"
)

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
	Title string
}

type FilterArgs struct {
	Mode string
}

type SortArgs struct {
	Key string
}

type ShareArgs struct {
	Email string
}

type ThemeArgs struct {
	Name string
}

type FileArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	Sort   *SortArgs
	Share  *ShareArgs
	Theme  *ThemeArgs
	Export *FileArgs
	Import *FileArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeShare:
		return parseShare(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeExport:
		return parseFile(input, TypeExport, args)
	case TypeImport:
		return parseFile(input, TypeImport, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of: all, active, completed"}
	}
	mode := strings.ToLower(args[0])
	switch mode {
	case "all", "active", "completed":
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Mode: mode}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter mode: %s", mode)}
	}
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires one of: duedate, priority"}
	}
	switch strings.ToLower(args[0]) {
	case "duedate":
		return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Key: "dueDate"}}, nil
	case "priority":
		return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Key: "priority"}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sort key: %s", args[0])}
	}
}

func parseShare(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "share requires an email"}
	}
	return Command{Type: TypeShare, Raw: raw, Share: &ShareArgs{Email: args[0]}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires a theme name"}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Name: strings.ToLower(args[0])}}, nil
}

func parseFile(raw string, kind Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a file path", kind)}
	}
	cmd := Command{Type: kind, Raw: raw}
	file := &FileArgs{Path: args[0]}
	if kind == TypeExport {
		cmd.Export = file
	} else {
		cmd.Import = file
	}
	return cmd, nil
}

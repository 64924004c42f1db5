package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeUndo   Type = "undo"
	TypeShow   Type = "show"
	TypeStats  Type = "stats"
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
	Title    string
	Quadrant string
	Subject  string
}

type DoneArgs struct {
	Target string
}

type UndoArgs struct {
	Target string
}

// ShowArgs filters the matrix. Filter is one of "due", "recurring",
// "interleaved" or a quadrant name; Subject narrows any of those.
type ShowArgs struct {
	Filter  string
	Subject string
}

type StatsArgs struct {
	Period string
}

type ExportArgs struct {
	Path string
}

type ImportArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *DoneArgs
	Undo   *UndoArgs
	Show   *ShowArgs
	Stats  *StatsArgs
	Export *ExportArgs
	Import *ImportArgs
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
	case TypeDone:
		return parseDone(input, args)
	case TypeUndo:
		return parseUndo(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeStats:
		return parseStats(input, args)
	case TypeExport:
		return parseExport(input, args)
	case TypeImport:
		return parseImport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func isQuadrantToken(s string) bool {
	switch s {
	case "q1", "q2", "q3", "q4":
		return true
	}
	return false
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}

	add := AddArgs{Quadrant: "q2"}
	titleParts := make([]string, 0, len(args))
	for i, arg := range args {
		lower := strings.ToLower(arg)
		if i == 0 && isQuadrantToken(lower) {
			add.Quadrant = lower
			continue
		}
		if strings.HasPrefix(lower, "subject:") {
			add.Subject = strings.TrimSpace(strings.TrimPrefix(arg, "subject:"))
			continue
		}
		titleParts = append(titleParts, arg)
	}
	add.Title = strings.TrimSpace(strings.Join(titleParts, " "))
	if add.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: strings.ToLower(args[0])}}, nil
}

func parseUndo(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "undo requires a task"}
	}
	return Command{Type: TypeUndo, Raw: raw, Undo: &UndoArgs{Target: strings.ToLower(args[0])}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a filter"}
	}
	filter := strings.ToLower(args[0])
	switch {
	case filter == "due", filter == "recurring", filter == "interleaved", isQuadrantToken(filter):
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", filter)}
	}
	subject := ""
	for _, arg := range args[1:] {
		if strings.HasPrefix(strings.ToLower(arg), "subject:") {
			subject = strings.TrimSpace(strings.TrimPrefix(arg, "subject:"))
		}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Filter: filter, Subject: subject}}, nil
}

func parseStats(raw string, args []string) (Command, error) {
	period := "weekly"
	if len(args) > 0 {
		period = strings.ToLower(args[0])
	}
	switch period {
	case "daily", "weekly", "monthly", "yearly":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown period: %s", period)}
	}
	return Command{Type: TypeStats, Raw: raw, Stats: &StatsArgs{Period: period}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a path"}
	}
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Path: args[0]}}, nil
}

func parseImport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a path"}
	}
	return Command{Type: TypeImport, Raw: raw, Import: &ImportArgs{Path: args[0]}}, nil
}

package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/sandeepkv93/todod/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeRemove Type = "rm"
	TypeEdit   Type = "edit"
	TypeDone   Type = "done"
	TypeClear  Type = "clear"
	TypeSort   Type = "sort"
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
	Text    string
	DueDate time.Time
}

type IDArgs struct {
	ID int64
}

type EditArgs struct {
	ID   int64
	Text string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	ID   *IDArgs
	Edit *EditArgs
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

	word, rest := cutWord(raw)
	head := strings.ToLower(word)

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeRemove, "remove", "delete":
		return parseID(input, TypeRemove, strings.Fields(rest))
	case TypeDone, "toggle":
		return parseID(input, TypeDone, strings.Fields(rest))
	case TypeEdit:
		return parseEdit(input, rest)
	case TypeClear:
		return parseBare(input, TypeClear, strings.Fields(rest))
	case TypeSort, "filter":
		return parseBare(input, TypeSort, strings.Fields(rest))
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// cutWord splits s after its first whitespace-delimited word. rest keeps
// its original spacing.
func cutWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

var dueToken = regexp.MustCompile(`(?i)(^|\s+)due:(\S*)`)

// parseAdd requires both a text and a due:YYYY-MM-DD argument, the same rule
// the add form enforces. The last due: token wins; the remaining text keeps
// its spacing.
func parseAdd(raw, rest string) (Command, error) {
	due := ""
	for _, m := range dueToken.FindAllStringSubmatch(rest, -1) {
		due = m[2]
	}
	text := strings.TrimSpace(dueToken.ReplaceAllString(rest, ""))
	if text == "" || due == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a text and due:YYYY-MM-DD"}
	}
	dueDate, err := model.ParseDueDate(due)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid due date %q", due)}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text, DueDate: dueDate}}, nil
}

func parseID(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one id", typ)}
	}
	id, err := parseTodoID(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, ID: &IDArgs{ID: id}}, nil
}

func parseEdit(raw, rest string) (Command, error) {
	word, text := cutWord(rest)
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	if word == "" || text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires an id and new text"}
	}
	id, err := parseTodoID(word)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{ID: id, Text: text}}, nil
}

func parseBare(raw string, typ Type, args []string) (Command, error) {
	if len(args) > 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", typ)}
	}
	return Command{Type: typ, Raw: raw}, nil
}

func parseTodoID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid todo id %q", s)}
	}
	return id, nil
}

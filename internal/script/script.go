// Package script interprets line-oriented scripts against a typed collection.
//
// Each non-blank line holds one operation. Lines starting with # are
// comments. Value arguments are JSON; anything that does not parse as JSON
// is taken as a bare string. Keys are parsed with types.ParseKey.
//
//	add V            append V
//	set K V          store V under K
//	put V            store V under a new UUID v7 key and print the key
//	get K            print the value under K
//	exists K         print true or false
//	remove K         delete K
//	first | last     print the first or last value
//	pop | shift      remove and print the last or first value
//	count            print the number of entries
//	clear            remove every entry
//	valid V          print whether V would be accepted
//	rekey OLD NEW    move OLD to NEW
//	rekey-many O=N.. move several keys in order
//	dump             render the collection
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/collection/internal/itemio"
	"github.com/mesh-intelligence/collection/pkg/types"
)

// Script errors.
var (
	ErrUnknownOp = errors.New("unknown operation")
	ErrUsage     = errors.New("wrong arguments")
)

const emptyResult = "(empty)"

// Interpreter runs script operations against one collection.
type Interpreter struct {
	coll      types.Collection
	out       io.Writer
	logger    *slog.Logger
	format    string
	keepGoing bool
	newKey    func() (string, error)
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for per-operation debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithFormat sets the output format used by dump.
func WithFormat(format string) Option {
	return func(in *Interpreter) { in.format = format }
}

// WithKeepGoing makes Run continue past failing lines and return all errors
// joined.
func WithKeepGoing(keepGoing bool) Option {
	return func(in *Interpreter) { in.keepGoing = keepGoing }
}

// WithKeyGenerator replaces the UUID v7 generator used by put.
func WithKeyGenerator(gen func() (string, error)) Option {
	return func(in *Interpreter) { in.newKey = gen }
}

// New returns an Interpreter that applies operations to coll and writes
// results to out.
func New(coll types.Collection, out io.Writer, opts ...Option) *Interpreter {
	in := &Interpreter{
		coll:   coll,
		out:    out,
		logger: slog.New(slog.DiscardHandler),
		newKey: newUUIDv7,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Run executes every line read from r. It stops at the first failing line
// unless the interpreter keeps going, in which case all failures are joined.
// Errors carry their line number.
func (in *Interpreter) Run(r io.Reader) error {
	var errs []error
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := in.Exec(scanner.Text()); err != nil {
			err = fmt.Errorf("line %d: %w", lineNo, err)
			if !in.keepGoing {
				return err
			}
			in.logger.Warn("operation failed", "line", lineNo, "error", err)
			errs = append(errs, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return errors.Join(errs...)
}

// Exec executes a single script line. Blank lines and comments are no-ops.
func (in *Interpreter) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	op, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	in.logger.Debug("exec", "op", op, "args", rest)

	switch op {
	case "add":
		if rest == "" {
			return usage(op, "V")
		}
		return in.coll.Add(itemio.ParseValue(rest))
	case "set":
		key, value, ok := strings.Cut(rest, " ")
		if !ok || key == "" {
			return usage(op, "K V")
		}
		return in.coll.Set(types.ParseKey(key), itemio.ParseValue(strings.TrimSpace(value)))
	case "put":
		if rest == "" {
			return usage(op, "V")
		}
		return in.put(itemio.ParseValue(rest))
	case "get":
		key, err := oneKey(op, rest)
		if err != nil {
			return err
		}
		v, err := in.coll.Get(key)
		if err != nil {
			return err
		}
		return in.println(itemio.FormatValue(v))
	case "exists":
		key, err := oneKey(op, rest)
		if err != nil {
			return err
		}
		return in.println(in.coll.Exists(key))
	case "remove":
		key, err := oneKey(op, rest)
		if err != nil {
			return err
		}
		return in.coll.Remove(key)
	case "first":
		return in.printOptional(in.coll.First())
	case "last":
		return in.printOptional(in.coll.Last())
	case "pop":
		return in.printOptional(in.coll.PopLast())
	case "shift":
		return in.printOptional(in.coll.ShiftFirst())
	case "count":
		return in.println(in.coll.Count())
	case "clear":
		in.coll.Clear()
		return nil
	case "valid":
		if rest == "" {
			return usage(op, "V")
		}
		return in.println(in.coll.IsValidType(itemio.ParseValue(rest)))
	case "rekey":
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return usage(op, "OLD NEW")
		}
		return in.coll.ChangeKey(types.ParseKey(fields[0]), types.ParseKey(fields[1]))
	case "rekey-many":
		changes, err := parseChanges(rest)
		if err != nil {
			return err
		}
		return in.coll.ChangeMultipleKeys(changes)
	case "dump":
		return itemio.Render(in.out, in.coll.ToArray(), in.format)
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, op)
	}
}

func (in *Interpreter) put(value any) error {
	id, err := in.newKey()
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	if err := in.coll.Set(types.StringKey(id), value); err != nil {
		return err
	}
	return in.println(id)
}

func (in *Interpreter) println(v any) error {
	_, err := fmt.Fprintln(in.out, v)
	return err
}

func (in *Interpreter) printOptional(v any, ok bool) error {
	if !ok {
		return in.println(emptyResult)
	}
	return in.println(itemio.FormatValue(v))
}

func oneKey(op, rest string) (types.Key, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return types.Key{}, usage(op, "K")
	}
	return types.ParseKey(fields[0]), nil
}

func parseChanges(rest string) ([]types.KeyChange, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, usage("rekey-many", "OLD=NEW ...")
	}
	changes := make([]types.KeyChange, 0, len(fields))
	for _, f := range fields {
		oldKey, newKey, ok := strings.Cut(f, "=")
		if !ok || oldKey == "" || newKey == "" {
			return nil, fmt.Errorf("%w: rekey-many expects OLD=NEW, got %q", ErrUsage, f)
		}
		changes = append(changes, types.KeyChange{Old: types.ParseKey(oldKey), New: types.ParseKey(newKey)})
	}
	return changes, nil
}

func usage(op, args string) error {
	return fmt.Errorf("%w: usage: %s %s", ErrUsage, op, args)
}

package script

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/collection/pkg/collection"
	"github.com/mesh-intelligence/collection/pkg/types"
)

func newInterpreter(t *testing.T, kind string, opts ...Option) (*Interpreter, *collection.TypedCollection, *bytes.Buffer) {
	t.Helper()
	c, err := collection.NewNamed(kind)
	require.NoError(t, err)
	var out bytes.Buffer
	return New(c, &out, opts...), c, &out
}

func TestRun_QueueAndStackOperations(t *testing.T) {
	in, c, out := newInterpreter(t, types.KindInteger)

	script := `
# build [1,2,3]
add 1
add 2
add 3
count
first
last
shift
pop
count
get 0
`
	require.NoError(t, in.Run(strings.NewReader(script)))
	assert.Equal(t, "3\n1\n3\n1\n3\n1\n2\n", out.String())
	assert.Equal(t, 1, c.Count())
}

func TestRun_EmptyEndpoints(t *testing.T) {
	in, _, out := newInterpreter(t, types.KindString)
	require.NoError(t, in.Run(strings.NewReader("first\nlast\npop\nshift\n")))
	assert.Equal(t, strings.Repeat("(empty)\n", 4), out.String())
}

func TestRun_StopsAtFirstError(t *testing.T) {
	in, c, _ := newInterpreter(t, types.KindInteger)

	err := in.Run(strings.NewReader("add 1\nadd \"a\"\nadd 2\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 1, c.Count())
}

func TestRun_KeepGoingJoinsErrors(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	in, c, _ := newInterpreter(t, types.KindInteger, WithKeepGoing(true), WithLogger(logger))

	err := in.Run(strings.NewReader("add x\nget 9\nadd 2\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTypeMismatch)
	assert.ErrorIs(t, err, types.ErrIndexNotFound)
	assert.Equal(t, 1, c.Count())
	assert.Contains(t, logs.String(), "operation failed")
	assert.Contains(t, logs.String(), "op=add")
}

func TestExec_SetAndRekey(t *testing.T) {
	in, c, out := newInterpreter(t, types.KindArray)

	require.NoError(t, in.Exec(`set cfg {"a": [1, 2]}`))
	require.NoError(t, in.Exec(`add [3]`))
	require.NoError(t, in.Exec(`rekey cfg 7`))
	require.NoError(t, in.Exec(`rekey-many 0=first 7=second`))
	require.NoError(t, in.Exec(`exists second`))
	require.NoError(t, in.Exec(`get second`))

	assert.Equal(t, "true\n{\"a\":[1,2]}\n", out.String())
	assert.Equal(t, 2, c.Count())
	assert.False(t, c.Exists(types.IntKey(0)))
}

func TestExec_RemoveMissingKey(t *testing.T) {
	in, _, _ := newInterpreter(t, types.KindString)
	err := in.Exec("remove nope")
	var notFound *types.IndexNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, types.StringKey("nope"), notFound.Key)
}

func TestExec_BareStringValues(t *testing.T) {
	in, c, out := newInterpreter(t, types.KindString)
	require.NoError(t, in.Exec("add hello world"))
	require.NoError(t, in.Exec("valid 5"))
	require.NoError(t, in.Exec("valid five"))

	got, err := c.Get(types.IntKey(0))
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "false\ntrue\n", out.String())
}

func TestExec_PutGeneratesUUIDv7(t *testing.T) {
	in, c, out := newInterpreter(t, types.KindBoolean)
	require.NoError(t, in.Exec("put true"))

	id := strings.TrimSpace(out.String())
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	got, err := c.Get(types.StringKey(id))
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestExec_PutKeyGeneratorError(t *testing.T) {
	boom := errors.New("entropy exhausted")
	in, c, _ := newInterpreter(t, types.KindBoolean, WithKeyGenerator(func() (string, error) { return "", boom }))
	err := in.Exec("put true")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Count())
}

func TestExec_DumpUsesFormat(t *testing.T) {
	in, _, out := newInterpreter(t, types.KindInteger, WithFormat(types.FormatYAML))
	require.NoError(t, in.Exec("add 1"))
	require.NoError(t, in.Exec("set name 2"))
	require.NoError(t, in.Exec("dump"))
	assert.Equal(t, "0: 1\nname: 2\n", out.String())
}

func TestExec_ClearAndCount(t *testing.T) {
	in, _, out := newInterpreter(t, types.KindInteger)
	require.NoError(t, in.Exec("add 1"))
	require.NoError(t, in.Exec("clear"))
	require.NoError(t, in.Exec("count"))
	assert.Equal(t, "0\n", out.String())
}

func TestExec_UsageErrors(t *testing.T) {
	in, _, _ := newInterpreter(t, types.KindInteger)
	tests := []struct {
		line    string
		wantErr error
	}{
		{"add", ErrUsage},
		{"set onlykey", ErrUsage},
		{"get", ErrUsage},
		{"get a b", ErrUsage},
		{"rekey 1", ErrUsage},
		{"rekey-many", ErrUsage},
		{"rekey-many 1:2", ErrUsage},
		{"valid", ErrUsage},
		{"put", ErrUsage},
		{"explode", ErrUnknownOp},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.ErrorIs(t, in.Exec(tt.line), tt.wantErr)
		})
	}
}

func TestExec_CommentsAndBlankLines(t *testing.T) {
	in, _, out := newInterpreter(t, types.KindInteger)
	require.NoError(t, in.Exec("   "))
	require.NoError(t, in.Exec("# add 1"))
	assert.Empty(t, out.String())
}

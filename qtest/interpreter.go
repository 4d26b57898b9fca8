package qtest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/arloliu/go-qlist/internal/refqueue"
	"github.com/arloliu/go-qlist/logger"
	"github.com/arloliu/go-qlist/queue"
)

// queueContext is a queue known to the interpreter together with its reference model.
type queueContext struct {
	id  uuid.UUID
	q   *queue.Queue
	ref *refqueue.Queue
}

// Interpreter executes queue commands and reports their results to its output.
// It is not safe for concurrent use.
type Interpreter struct {
	cfg    *Config
	out    io.Writer
	logger logger.Logger
	alloc  *queue.Allocator
	rnd    *rand.Rand

	commands map[string]*command

	// queues resolves ids to queues; order keeps the ids in creation order for prev/next.
	queues  *xsync.MapOf[uuid.UUID, *queueContext]
	order   []uuid.UUID
	current int

	sourceDepth int

	errCount int
	quit     bool
	finished bool
}

// New creates an interpreter writing its results to out.
func New(out io.Writer, opts ...Option) (*Interpreter, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	alloc, err := queue.NewAllocator(queue.WithFailPercent(cfg.failPercent), queue.WithSeed(cfg.seed))
	if err != nil {
		return nil, err
	}

	it := &Interpreter{
		cfg:     cfg,
		out:     out,
		logger:  cfg.logger.With("component", "qtest"),
		alloc:   alloc,
		rnd:     rand.New(rand.NewPCG(cfg.seed, ^cfg.seed)), //nolint:gosec
		queues:  xsync.NewMapOf[uuid.UUID, *queueContext](),
		current: -1,
	}
	it.commands = it.buildCommands()

	return it, nil
}

// Config returns the interpreter configuration.
func (it *Interpreter) Config() *Config { return it.cfg }

// Errors returns the number of errors reported so far.
func (it *Interpreter) Errors() int { return it.errCount }

// Allocated returns the number of blocks currently held by queues and removed elements.
func (it *Interpreter) Allocated() int64 { return it.alloc.Allocated() }

// Run executes the commands read from r until the input ends, "quit" is executed or the
// error limit is reached, then frees every queue.
//
// It returns an error wrapping the last failure when any command failed or a leak was detected.
func (it *Interpreter) Run(r io.Reader) error {
	it.logger.Info("interpreter started", "seed", it.cfg.seed, "verify", it.cfg.verify)

	lastErr := it.runLines(r)
	if err := it.Finish(); err != nil {
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("qtest: %d error(s): %w", it.errCount, lastErr)
	}

	return nil
}

// Finish frees every queue still registered and checks that no block is left allocated.
// It is called by Run; calling it again is a no-op.
func (it *Interpreter) Finish() error {
	if it.finished {
		return nil
	}
	it.finished = true

	for len(it.order) > 0 {
		it.current = len(it.order) - 1
		it.freeCurrent()
	}

	if n := it.alloc.Allocated(); n != 0 {
		return it.fail(fmt.Errorf("%w: %d block(s)", ErrLeak, n))
	}
	it.logger.Info("interpreter finished", "errors", it.errCount)

	return nil
}

func (it *Interpreter) runLines(r io.Reader) error {
	var lastErr error

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxStringLength+64)
	for !it.quit && scanner.Scan() {
		if err := it.Execute(scanner.Text()); err != nil {
			lastErr = err
		}
	}
	if err := scanner.Err(); err != nil {
		return it.fail(fmt.Errorf("read commands: %w", err))
	}

	return lastErr
}

// Execute runs a single command line. Blank lines and comments are ignored.
//
// A failed command is reported, counted, and returned. Once the error limit is reached the
// interpreter stops accepting commands and the returned error also wraps ErrTooManyErrors.
func (it *Interpreter) Execute(line string) error {
	if it.quit {
		return nil
	}
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	if it.cfg.echo {
		it.printf("cmd> %s\n", strings.Join(args, " "))
	}
	if it.cfg.verbose >= 2 {
		it.logger.Debug("execute command", "cmd", args[0], "args", args[1:])
	}

	cmd, ok := it.commands[args[0]]
	if !ok {
		return it.fail(fmt.Errorf("%w: %s", ErrUnknownCommand, args[0]))
	}
	if len(args)-1 < cmd.minArgs || (cmd.maxArgs >= 0 && len(args)-1 > cmd.maxArgs) {
		return it.fail(fmt.Errorf("%w: usage: %s %s", ErrInvalidArgument, cmd.name, cmd.params))
	}

	if err := cmd.run(args[1:]); err != nil {
		var reported reportedError
		if errors.As(err, &reported) {
			return err
		}
		return it.fail(err)
	}

	if it.cfg.verify {
		return it.verify()
	}

	return nil
}

// fail reports err and charges it against the error budget.
func (it *Interpreter) fail(err error) error {
	it.errCount++
	it.printf("ERROR: %v\n", err)
	it.logger.Error("command failed", "error", err, "count", it.errCount)

	if it.errCount >= it.cfg.errorLimit && !it.quit {
		it.quit = true
		it.printf("Error limit exceeded. Stopping command execution\n")
		return errors.Join(err, ErrTooManyErrors)
	}

	return err
}

func (it *Interpreter) verify() error {
	ctx := it.currentQueue()
	if ctx == nil {
		return nil
	}

	got, want := ctx.q.Values(), ctx.ref.Values()
	if len(got) != len(want) {
		return it.fail(fmt.Errorf("%w: size %d, want %d", ErrModelMismatch, len(got), len(want)))
	}
	for i := range got {
		if got[i] != want[i] {
			return it.fail(fmt.Errorf("%w: index %d holds %q, want %q", ErrModelMismatch, i, got[i], want[i]))
		}
	}

	return nil
}

func (it *Interpreter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(it.out, format, args...)
}

// report prints command results, suppressed at verbosity 0.
func (it *Interpreter) report(format string, args ...any) {
	if it.cfg.verbose > 0 {
		it.printf(format, args...)
	}
}

func (it *Interpreter) currentQueue() *queueContext {
	if it.current < 0 {
		return nil
	}
	ctx, _ := it.queues.Load(it.order[it.current])
	return ctx
}

func (it *Interpreter) addQueue(q *queue.Queue) *queueContext {
	ctx := &queueContext{
		id:  uuid.New(),
		q:   q,
		ref: refqueue.New(0),
	}
	it.queues.Store(ctx.id, ctx)
	it.order = append(it.order, ctx.id)
	it.current = len(it.order) - 1

	return ctx
}

// freeCurrent frees the current queue and selects the one before it.
func (it *Interpreter) freeCurrent() {
	ctx := it.currentQueue()
	if ctx == nil {
		return
	}
	ctx.q.Free()
	it.queues.Delete(ctx.id)
	it.order = append(it.order[:it.current], it.order[it.current+1:]...)

	if it.current > 0 || len(it.order) == 0 {
		it.current--
	}
}

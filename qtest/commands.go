package qtest

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/arloliu/go-qlist/internal/pool"
	"github.com/arloliu/go-qlist/internal/refqueue"
	"github.com/arloliu/go-qlist/queue"
)

// randValue is the argument of ih/it that asks for random values.
const randValue = "RAND"

const (
	minRandLength = 5
	maxRandLength = 10
)

type command struct {
	name    string
	params  string
	summary string
	minArgs int
	maxArgs int // -1: unlimited
	run     func(args []string) error
}

func (it *Interpreter) buildCommands() map[string]*command {
	cmds := []*command{
		{name: "new", summary: "Create new queue", run: it.cmdNew},
		{name: "free", summary: "Delete current queue", run: it.cmdFree},
		{name: "prev", summary: "Switch to previous queue", run: it.cmdPrev},
		{name: "next", summary: "Switch to next queue", run: it.cmdNext},
		{name: "ih", params: "str [n]", summary: "Insert string str at head of queue n times (RAND for random values)", minArgs: 1, maxArgs: 2, run: it.insertCmd(true)},
		{name: "it", params: "str [n]", summary: "Insert string str at tail of queue n times (RAND for random values)", minArgs: 1, maxArgs: 2, run: it.insertCmd(false)},
		{name: "rh", params: "[str]", summary: "Remove from head of queue, optionally compare to expected value str", maxArgs: 1, run: it.removeCmd(true, false)},
		{name: "rt", params: "[str]", summary: "Remove from tail of queue, optionally compare to expected value str", maxArgs: 1, run: it.removeCmd(false, false)},
		{name: "rhq", summary: "Remove from head of queue without reporting value", run: it.removeCmd(true, true)},
		{name: "size", params: "[n]", summary: "Compute queue size n times", maxArgs: 1, run: it.cmdSize},
		{name: "dm", summary: "Delete middle node in queue", run: it.cmdDeleteMid},
		{name: "dedup", summary: "Delete all nodes that have duplicate string", run: it.cmdDedup},
		{name: "swap", summary: "Swap every two adjacent nodes in queue", run: it.algorithmCmd("swap", (*queue.Queue).Swap, (*refqueue.Queue).Swap)},
		{name: "reverse", summary: "Reverse queue", run: it.algorithmCmd("reverse", (*queue.Queue).Reverse, (*refqueue.Queue).Reverse)},
		{name: "sort", summary: "Sort queue in ascending order", run: it.cmdSort},
		{name: "show", summary: "Show queue contents", run: it.cmdShow},
		{name: "option", params: "[name val]", summary: "Display or set options", maxArgs: 2, run: it.cmdOption},
		{name: "source", params: "file", summary: "Read commands from source file", minArgs: 1, maxArgs: 1, run: it.cmdSource},
		{name: "help", summary: "Show documentation", run: it.cmdHelp},
		{name: "quit", summary: "Exit program", run: it.cmdQuit},
	}

	m := make(map[string]*command, len(cmds))
	for _, c := range cmds {
		m[c.name] = c
	}

	return m
}

func (it *Interpreter) requireQueue() (*queueContext, error) {
	ctx := it.currentQueue()
	if ctx == nil {
		return nil, ErrNoQueue
	}
	return ctx, nil
}

// timed runs fn under the configured time limit. Queue operations cannot be interrupted,
// so an operation over the limit is waited for and then reported.
func (it *Interpreter) timed(name string, fn func()) error {
	limit := it.cfg.timeLimit
	if limit <= 0 {
		fn()
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	if pool.WaitTimeout(done, limit) {
		return nil
	}
	it.logger.Warn("operation over time limit", "cmd", name, "limit", limit)
	<-done

	return fmt.Errorf("%w: %s took longer than %v", ErrTimeLimit, name, limit)
}

func (it *Interpreter) cmdNew(_ []string) error {
	q := queue.New(queue.WithAllocator(it.alloc), queue.WithLogger(it.logger))
	if q == nil {
		if it.cfg.failPercent == 0 {
			return fmt.Errorf("%w: queue", ErrAllocFailed)
		}
		it.report("WARNING: queue allocation failed\n")
		return nil
	}
	it.addQueue(q)
	it.showQueue()

	return nil
}

func (it *Interpreter) cmdFree(_ []string) error {
	if _, err := it.requireQueue(); err != nil {
		return err
	}
	it.freeCurrent()
	it.showQueue()

	return nil
}

func (it *Interpreter) cmdPrev(_ []string) error {
	if _, err := it.requireQueue(); err != nil {
		return err
	}
	it.current = (it.current + len(it.order) - 1) % len(it.order)
	it.showQueue()

	return nil
}

func (it *Interpreter) cmdNext(_ []string) error {
	if _, err := it.requireQueue(); err != nil {
		return err
	}
	it.current = (it.current + 1) % len(it.order)
	it.showQueue()

	return nil
}

func (it *Interpreter) insertCmd(head bool) func(args []string) error {
	return func(args []string) error {
		ctx, err := it.requireQueue()
		if err != nil {
			return err
		}

		reps := 1
		if len(args) > 1 {
			reps, err = strconv.Atoi(args[1])
			if err != nil || reps < 1 {
				return fmt.Errorf("%w: count %q", ErrInvalidArgument, args[1])
			}
		}

		var failed int
		err = it.timed("insert", func() {
			for i := 0; i < reps; i++ {
				value := args[0]
				if value == randValue {
					value = it.randomValue()
				}

				var ok bool
				if head {
					ok = ctx.q.InsertHead(value)
				} else {
					ok = ctx.q.InsertTail(value)
				}
				switch {
				case !ok:
					failed++
				case head:
					ctx.ref.InsertHead(value)
				default:
					ctx.ref.InsertTail(value)
				}
			}
		})
		if err != nil {
			return err
		}

		if failed > 0 {
			if it.cfg.failPercent == 0 {
				return fmt.Errorf("%w: %d of %d", ErrInsertFailed, failed, reps)
			}
			it.report("WARNING: %d of %d insertion(s) failed on allocation\n", failed, reps)
		}
		it.showQueue()

		return nil
	}
}

func (it *Interpreter) removeCmd(head, quiet bool) func(args []string) error {
	return func(args []string) error {
		ctx, err := it.requireQueue()
		if err != nil {
			return err
		}

		buf := make([]byte, it.cfg.stringLength+1)
		wasEmpty := ctx.q.Size() == 0

		var e *queue.Element
		timeErr := it.timed("remove", func() {
			if head {
				e = ctx.q.RemoveHead(buf)
			} else {
				e = ctx.q.RemoveTail(buf)
			}
		})

		if e == nil {
			if timeErr != nil {
				return timeErr
			}
			if !wasEmpty {
				return ErrRemoveFailed
			}
			it.report("WARNING: removal from empty queue\n")
			return nil
		}
		e.Release()

		if head {
			_, _ = ctx.ref.RemoveHead()
		} else {
			_, _ = ctx.ref.RemoveTail()
		}

		if timeErr != nil {
			return timeErr
		}

		removed := string(buf[:bytes.IndexByte(buf, 0)])
		if !quiet {
			it.report("Removed %s from queue\n", removed)
		}
		if len(args) > 0 {
			expected := args[0]
			if len(expected) > it.cfg.stringLength {
				expected = expected[:it.cfg.stringLength]
			}
			if removed != expected {
				return fmt.Errorf("%w: removed %q, expected %q", ErrValueMismatch, removed, expected)
			}
		}
		it.showQueue()

		return nil
	}
}

func (it *Interpreter) cmdSize(args []string) error {
	ctx, err := it.requireQueue()
	if err != nil {
		return err
	}

	reps := 1
	if len(args) > 0 {
		reps, err = strconv.Atoi(args[0])
		if err != nil || reps < 1 {
			return fmt.Errorf("%w: count %q", ErrInvalidArgument, args[0])
		}
	}

	var size int
	err = it.timed("size", func() {
		for i := 0; i < reps; i++ {
			size = ctx.q.Size()
		}
	})
	if err != nil {
		return err
	}
	it.report("Queue size = %d\n", size)

	return nil
}

func (it *Interpreter) cmdDeleteMid(_ []string) error {
	ctx, err := it.requireQueue()
	if err != nil {
		return err
	}

	var ok bool
	timeErr := it.timed("dm", func() { ok = ctx.q.DeleteMid() })
	if ok {
		ctx.ref.DeleteMid()
	} else {
		it.report("WARNING: dm on empty queue\n")
	}
	if timeErr != nil {
		return timeErr
	}
	it.showQueue()

	return nil
}

func (it *Interpreter) cmdDedup(_ []string) error {
	ctx, err := it.requireQueue()
	if err != nil {
		return err
	}
	if !refqueue.IsSorted(ctx.q.Values()) {
		return fmt.Errorf("%w: dedup needs a sorted queue", ErrNotSorted)
	}

	timeErr := it.timed("dedup", func() { ctx.q.DeleteDup() })
	ctx.ref.DeleteDup()
	if timeErr != nil {
		return timeErr
	}
	it.showQueue()

	return nil
}

func (it *Interpreter) algorithmCmd(name string, fn func(*queue.Queue), model func(*refqueue.Queue)) func([]string) error {
	return func(_ []string) error {
		ctx, err := it.requireQueue()
		if err != nil {
			return err
		}
		timeErr := it.timed(name, func() { fn(ctx.q) })
		model(ctx.ref)
		if timeErr != nil {
			return timeErr
		}
		it.showQueue()

		return nil
	}
}

func (it *Interpreter) cmdSort(args []string) error {
	if err := it.algorithmCmd("sort", (*queue.Queue).Sort, (*refqueue.Queue).Sort)(args); err != nil {
		return err
	}
	if values := it.currentQueue().q.Values(); !refqueue.IsSorted(values) {
		return ErrNotSorted
	}

	return nil
}

func (it *Interpreter) cmdShow(_ []string) error {
	if it.currentQueue() == nil {
		it.report("No queue\n")
		return nil
	}
	it.showQueueAlways()

	return nil
}

func (it *Interpreter) cmdOption(args []string) error {
	switch len(args) {
	case 0:
		it.printf("Options:\n")
		for _, opt := range it.cfg.options() {
			it.printf("\t%s\t%s\n", opt[0], opt[1])
		}
		return nil
	case 1:
		return fmt.Errorf("%w: usage: option [name val]", ErrInvalidArgument)
	}

	if err := it.cfg.set(args[0], args[1]); err != nil {
		return err
	}
	if args[0] == "malloc" {
		if err := it.alloc.SetFailPercent(it.cfg.failPercent); err != nil {
			return err
		}
	}

	return nil
}

func (it *Interpreter) cmdSource(args []string) error {
	if it.sourceDepth >= MaxSourceDepth {
		return fmt.Errorf("%w: source nested deeper than %d", ErrInvalidArgument, MaxSourceDepth)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	defer f.Close()

	it.sourceDepth++
	defer func() { it.sourceDepth-- }()

	// nested commands already reported and counted their failures
	if err := it.runLines(f); err != nil {
		return reportedError{err: err}
	}

	return nil
}

func (it *Interpreter) cmdHelp(_ []string) error {
	names := make([]string, 0, len(it.commands))
	for name := range it.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	it.printf("Commands:\n")
	for _, name := range names {
		c := it.commands[name]
		usage := strings.TrimSpace(c.name + " " + c.params)
		it.printf("  %-16s | %s\n", usage, c.summary)
	}

	return nil
}

func (it *Interpreter) cmdQuit(_ []string) error {
	it.quit = true
	return nil
}

// showQueue prints the current queue after a command, depending on verbosity.
func (it *Interpreter) showQueue() {
	if it.cfg.verbose > 0 {
		it.showQueueAlways()
	}
}

func (it *Interpreter) showQueueAlways() {
	ctx := it.currentQueue()
	if ctx == nil {
		it.printf("l = NULL\n")
		return
	}

	values := ctx.q.Values()
	for i, v := range values {
		if len(v) > it.cfg.stringLength {
			values[i] = v[:it.cfg.stringLength]
		}
	}
	it.printf("l = [%s]\n", strings.Join(values, " "))
}

func (it *Interpreter) randomValue() string {
	n := minRandLength + it.rnd.IntN(maxRandLength-minRandLength+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + it.rnd.IntN(26))
	}

	return string(b)
}

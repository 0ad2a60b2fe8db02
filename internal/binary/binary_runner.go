package binary

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	. "github.com/cricklet/movegen/internal/helpers"
)

// BinaryRunner drives a line-oriented child process over stdin/stdout.
type BinaryRunner struct {
	cmdPath string
	cmd     *exec.Cmd

	stdin  io.WriteCloser
	stdout chan string

	// closed by Close; the stdout reader stops waiting on a full channel
	done       chan struct{}
	readerDone chan struct{}

	recordLock sync.Mutex
	record     []string

	Logger Logger
}

type BinaryRunnerOption func(*BinaryRunner)

func WithLogger(logger Logger) BinaryRunnerOption {
	return func(u *BinaryRunner) {
		u.Logger = logger
	}
}

func (u *BinaryRunner) CmdPath() string {
	return u.cmdPath
}

func (u *BinaryRunner) appendRecord(line string) {
	u.recordLock.Lock()
	defer u.recordLock.Unlock()
	u.record = append(u.record, line)
}

// Flush returns everything sent and received so far, for error reports.
func (u *BinaryRunner) Flush() string {
	u.recordLock.Lock()
	defer u.recordLock.Unlock()
	return "> " + strings.Join(u.record, "\n> ")
}

func wrapError(u *BinaryRunner, err error) Error {
	if !IsNil(err) {
		return Wrap(fmt.Errorf("%w\n%v", err, u.Flush()))
	}
	return NilError
}

func SetupBinaryRunner(cmdPath string, args []string, options ...BinaryRunnerOption) (*BinaryRunner, Error) {
	u := &BinaryRunner{
		cmdPath: cmdPath,
		stdout:     make(chan string, 1024),
		done:       make(chan struct{}),
		readerDone: make(chan struct{}),
		Logger:     SilentLogger,
	}
	for _, option := range options {
		option(u)
	}

	u.Logger.Println(cmdPath, args)
	u.cmd = exec.Command(cmdPath, args...)

	var err error
	u.stdin, err = u.cmd.StdinPipe()
	if !IsNil(err) {
		return u, wrapError(u, err)
	}
	stdout, err := u.cmd.StdoutPipe()
	if !IsNil(err) {
		return u, wrapError(u, err)
	}
	stderr, err := u.cmd.StderrPipe()
	if !IsNil(err) {
		return u, wrapError(u, err)
	}

	err = u.cmd.Start()
	if !IsNil(err) {
		u.cmd = nil
		return u, wrapError(u, err)
	}

	go func() {
		defer close(u.readerDone)
		defer close(u.stdout)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			u.appendRecord("out: " + line)
			select {
			case u.stdout <- line:
			case <-u.done:
				return
			}
		}
	}()

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			u.appendRecord("err: " + scanner.Text())
		}
	}()

	return u, NilError
}

// discardStale drops output nobody read, e.g. the tail of a command that
// timed out, so it isn't mistaken for the reply to the next command.
func (u *BinaryRunner) discardStale() int {
	discarded := 0
	for {
		select {
		case _, ok := <-u.stdout:
			if !ok {
				return discarded
			}
			discarded++
		default:
			return discarded
		}
	}
}

func (u *BinaryRunner) RunAsync(input string) Error {
	if u.cmd == nil {
		return wrapError(u, Errorf("cmd not setup: %v", u.cmdPath))
	}

	u.Logger.Println("stdin:", input)
	u.appendRecord("in:  " + input)

	_, err := u.stdin.Write([]byte(input + "\n"))
	return wrapError(u, err)
}

// RunSync sends input and feeds output lines to callback until it returns
// LoopBreak, the process exits, or timeout elapses.
func (u *BinaryRunner) RunSync(input string, callback func(string) (LoopResult, Error), timeout time.Duration) Error {
	if discarded := u.discardStale(); discarded > 0 {
		u.Logger.Printf("discarded %v stale lines from %v", discarded, u.cmdPath)
	}

	err := u.RunAsync(input)
	if !IsNil(err) {
		return err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-u.stdout:
			if !ok {
				return wrapError(u, Errorf("%v exited", u.cmdPath))
			}
			result, err := callback(line)
			if !IsNil(err) {
				return err
			}
			if result == LoopBreak {
				return NilError
			}
		case <-timer.C:
			return wrapError(u, Errorf("timeout after %v", timeout))
		}
	}
}

// Run collects output lines until one contains waitFor.
func (u *BinaryRunner) Run(input string, waitFor string, timeout time.Duration) ([]string, Error) {
	result := []string{}
	err := u.RunSync(input, func(line string) (LoopResult, Error) {
		result = append(result, line)
		if strings.Contains(line, waitFor) {
			return LoopBreak, NilError
		}
		return LoopContinue, NilError
	}, timeout)
	return result, err
}

func (u *BinaryRunner) Close() {
	if u.cmd != nil {
		close(u.done)
		_ = u.stdin.Close()
		_ = u.cmd.Process.Kill()
		_ = u.cmd.Wait()
		<-u.readerDone
		u.cmd = nil
	}
}

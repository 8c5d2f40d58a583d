package minecraft

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrGatewayClosed = errors.New("whitelist gateway is closed")

// Gateway is the only path to the server whitelist. A single worker goroutine
// owns the console; callers from any other goroutine submit a task and block
// until the console answered, because replies report post-mutation state.
type Gateway struct {
	console Console
	tasks   chan gatewayTask
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
}

type gatewayTask struct {
	command string
	result  chan gatewayResult
}

type gatewayResult struct {
	output string
	err    error
}

func NewGateway(console Console) *Gateway {
	return &Gateway{
		console: console,
		tasks:   make(chan gatewayTask),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the worker that owns the console.
func (g *Gateway) Start() {
	go g.loop()
}

// Stop waits for the in-flight task to finish, then closes the console.
// Pending submitters fail with ErrGatewayClosed.
func (g *Gateway) Stop() error {
	g.once.Do(func() { close(g.quit) })
	<-g.done
	return g.console.Close()
}

func (g *Gateway) loop() {
	defer close(g.done)
	for {
		select {
		case task := <-g.tasks:
			out, err := g.console.Execute(task.command)
			task.result <- gatewayResult{output: out, err: err}
		case <-g.quit:
			return
		}
	}
}

func (g *Gateway) submit(ctx context.Context, command string) (string, error) {
	task := gatewayTask{command: command, result: make(chan gatewayResult, 1)}

	select {
	case g.tasks <- task:
	case <-g.quit:
		return "", ErrGatewayClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}

	// The result channel is buffered, so the worker never blocks on a caller
	// that gave up.
	select {
	case res := <-task.result:
		return res.output, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Add whitelists the player. The server command is idempotent: adding an
// already whitelisted name succeeds without duplication.
func (g *Gateway) Add(ctx context.Context, username string) error {
	_, err := g.submit(ctx, "whitelist add "+username)
	return err
}

// Remove drops the player from the whitelist; removing an absent name is a
// no-op on the server side.
func (g *Gateway) Remove(ctx context.Context, username string) error {
	_, err := g.submit(ctx, "whitelist remove "+username)
	return err
}

func (g *Gateway) List(ctx context.Context) ([]string, error) {
	out, err := g.submit(ctx, "whitelist list")
	if err != nil {
		return nil, err
	}
	return parseWhitelist(out), nil
}

// parseWhitelist extracts names from the vanilla "whitelist list" response:
//
//	There are 2 whitelisted player(s): Alex, Steve
//	There are no whitelisted players
func parseWhitelist(output string) []string {
	_, list, found := strings.Cut(output, ":")
	if !found {
		return nil
	}

	var names []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tasktools/taskwarrior-mcp/completion"
)

// fakeConn feeds scripted inbound messages and records writes.
type fakeConn struct {
	inbound []jsonrpc.Message
	writes  []jsonrpc.Message
	closed  bool
}

func (c *fakeConn) Read(ctx context.Context) (jsonrpc.Message, error) {
	if len(c.inbound) == 0 {
		return nil, io.EOF
	}
	msg := c.inbound[0]
	c.inbound = c.inbound[1:]
	return msg, nil
}

func (c *fakeConn) Write(ctx context.Context, msg jsonrpc.Message) error {
	c.writes = append(c.writes, msg)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConn) SessionID() string { return "fake-session" }

type fakeTransport struct {
	conn *fakeConn
}

func (t *fakeTransport) Connect(ctx context.Context) (mcpsdk.Connection, error) {
	return t.conn, nil
}

func subscribeRequest(method, uri string) *jsonrpc.Request {
	params, _ := json.Marshal(map[string]string{"uri": uri})
	return &jsonrpc.Request{Method: method, Params: params}
}

func TestTransportRoutesSubscriptionRequests(t *testing.T) {
	h := newResourceHandler(newFakeTaskService())
	conn := &fakeConn{inbound: []jsonrpc.Message{
		subscribeRequest(methodSubscribe, TaskListURI),
		&jsonrpc.Request{Method: "ping"},
		subscribeRequest(methodUnsubscribe, TaskListURI),
	}}

	tr := newSubscriptionTransport(&fakeTransport{conn: conn}, h)
	c, err := tr.Connect(context.Background())
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}

	msg, err := c.Read(context.Background())
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	req, ok := msg.(*jsonrpc.Request)
	if !ok || req.Method != "ping" {
		t.Fatalf("Read = %+v, want the ping request", msg)
	}
	if got := h.Subscriptions(); !reflect.DeepEqual(got, []string{TaskListURI}) {
		t.Errorf("Subscriptions after subscribe = %v, want [%s]", got, TaskListURI)
	}

	if _, err := c.Read(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("Read at stream end = %v, want io.EOF", err)
	}
	if got := h.Subscriptions(); len(got) != 0 {
		t.Errorf("Subscriptions after unsubscribe = %v, want none", got)
	}
}

func TestTransportConnDelegation(t *testing.T) {
	conn := &fakeConn{}
	tr := newSubscriptionTransport(&fakeTransport{conn: conn}, newResourceHandler(newFakeTaskService()))
	c, err := tr.Connect(context.Background())
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}

	if got := c.SessionID(); got != "fake-session" {
		t.Errorf("SessionID = %q, want fake-session", got)
	}

	out := &jsonrpc.Request{Method: "notifications/progress"}
	if err := c.Write(context.Background(), out); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if len(conn.writes) != 1 || conn.writes[0] != jsonrpc.Message(out) {
		t.Errorf("writes = %+v, want the forwarded message", conn.writes)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if !conn.closed {
		t.Error("Close did not reach the underlying connection")
	}
}

func TestCompleteOverSession(t *testing.T) {
	fake := newFakeTaskService()
	fake.projects = []string{"development", "backend", "devops"}
	server := NewServer(fake, completion.NewService(fake))
	ctx := context.Background()

	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport)
	if err != nil {
		t.Fatalf("server Connect returned error: %v", err)
	}
	defer ss.Wait()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "0.1.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport)
	if err != nil {
		t.Fatalf("client Connect returned error: %v", err)
	}
	defer cs.Close()

	res, err := cs.Complete(ctx, &mcpsdk.CompleteParams{
		Ref:      &mcpsdk.CompleteReference{Type: "ref/prompt", Name: PromptTodayProject},
		Argument: mcpsdk.CompleteParamsArgument{Name: "project", Value: "dev"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	values := append([]string(nil), res.Completion.Values...)
	sort.Strings(values)
	if want := []string{"development", "devops"}; !reflect.DeepEqual(values, want) {
		t.Errorf("completion values = %v, want %v", values, want)
	}
	if res.Completion.Total != 2 {
		t.Errorf("completion total = %d, want 2", res.Completion.Total)
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tasktools/taskwarrior-mcp/completion"
	"github.com/tasktools/taskwarrior-mcp/taskwarrior"
)

// ServerName identifies this server to MCP clients.
const ServerName = "taskwarrior-mcp"

// Server couples the SDK server with the resource subscription registry so
// the transport layer can route subscription traffic to it.
type Server struct {
	sdk       *mcpsdk.Server
	resources *ResourceHandler
}

// NewServer assembles the MCP server: nine tools, four resources, four
// prompts, subscription bookkeeping, and argument completion.
func NewServer(tasks taskwarrior.TaskService, comp *completion.Service) *Server {
	resources := NewResourceHandler(tasks, comp)
	prompts := NewPromptHandler(comp)

	impl := &mcpsdk.Implementation{
		Name:    ServerName,
		Version: currentVersion(),
	}

	opts := &mcpsdk.ServerOptions{
		CompletionHandler: func(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CompleteParams) (*mcpsdk.CompleteResult, error) {
			result, err := routeCompletion(ctx, resources, prompts, params)
			if err != nil {
				logError(err)
				return nil, err
			}
			return &mcpsdk.CompleteResult{
				Completion: mcpsdk.CompletionResultDetails{
					Values:  result.Values,
					Total:   result.Total,
					HasMore: result.HasMore,
				},
			}, nil
		},
	}

	server := mcpsdk.NewServer(impl, opts)

	RegisterTools(server, tasks)
	resources.Register(server)
	prompts.Register(server)

	return &Server{sdk: server, resources: resources}
}

// Run serves MCP over stdin/stdout until the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.sdk.Run(ctx, newSubscriptionTransport(mcpsdk.NewStdioTransport(), s.resources))
}

// Connect serves MCP over the given transport and returns the session. The
// transport is wrapped the same way Run wraps stdio.
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.sdk.Connect(ctx, newSubscriptionTransport(t, s.resources))
}

// routeCompletion dispatches by reference type: prompt references go to the
// prompt handler, resource references to the resource handler. Unknown
// references complete to nothing rather than erroring.
func routeCompletion(ctx context.Context, resources *ResourceHandler, prompts *PromptHandler, params *mcpsdk.CompleteParams) (completion.Result, error) {
	if params.Ref == nil {
		return completion.Result{Values: []string{}}, nil
	}
	switch params.Ref.Type {
	case "ref/prompt":
		return prompts.Complete(ctx, params.Ref.Name, params.Argument.Name, params.Argument.Value)
	case "ref/resource":
		return resources.Complete(ctx, params.Ref.URI, params.Argument.Value)
	default:
		return completion.Result{Values: []string{}}, nil
	}
}

const (
	methodSubscribe   = "resources/subscribe"
	methodUnsubscribe = "resources/unsubscribe"
)

// subscriptionTransport answers resources/subscribe and resources/unsubscribe
// at the wire level. The SDK session dispatches only the methods it knows
// about, so these two are handled here before messages reach it.
type subscriptionTransport struct {
	base      mcpsdk.Transport
	resources *ResourceHandler
}

func newSubscriptionTransport(base mcpsdk.Transport, resources *ResourceHandler) *subscriptionTransport {
	return &subscriptionTransport{base: base, resources: resources}
}

func (t *subscriptionTransport) Connect(ctx context.Context) (mcpsdk.Connection, error) {
	conn, err := t.base.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return &subscriptionConn{conn: conn, resources: t.resources}, nil
}

// subscriptionConn filters subscription requests out of the inbound stream
// and acknowledges them itself. Acknowledgements are written from the read
// loop while the session writes concurrently, hence the write mutex.
type subscriptionConn struct {
	conn      mcpsdk.Connection
	resources *ResourceHandler

	writeMu sync.Mutex
}

func (c *subscriptionConn) Read(ctx context.Context) (jsonrpc.Message, error) {
	for {
		msg, err := c.conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		req, ok := msg.(*jsonrpc.Request)
		if !ok || (req.Method != methodSubscribe && req.Method != methodUnsubscribe) {
			return msg, nil
		}
		if err := c.handleSubscription(ctx, req); err != nil {
			return nil, err
		}
	}
}

func (c *subscriptionConn) handleSubscription(ctx context.Context, req *jsonrpc.Request) error {
	var params struct {
		URI string `json:"uri"`
	}
	if req.Params != nil && json.Unmarshal(req.Params, &params) == nil {
		switch req.Method {
		case methodSubscribe:
			c.resources.Subscribe(params.URI)
			logInfo("subscribed to " + params.URI)
		case methodUnsubscribe:
			c.resources.Unsubscribe(params.URI)
			logInfo("unsubscribed from " + params.URI)
		}
	}
	// Notifications get no reply.
	if !req.ID.IsValid() {
		return nil
	}
	return c.Write(ctx, &jsonrpc.Response{ID: req.ID, Result: json.RawMessage(`{}`)})
}

func (c *subscriptionConn) Write(ctx context.Context, msg jsonrpc.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.Write(ctx, msg)
}

func (c *subscriptionConn) Close() error {
	return c.conn.Close()
}

func (c *subscriptionConn) SessionID() string {
	return c.conn.SessionID()
}

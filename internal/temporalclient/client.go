// Package temporalclient wraps the Temporal Go SDK client with the
// workflow-id derivation and idempotent-submission semantics the ingress
// server and CLI both need.
package temporalclient

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/skssmd/golden-ci/internal/core/app"
)

// Client wraps a Temporal SDK client bound to a single task queue.
type Client struct {
	SDK       client.Client
	TaskQueue string
}

// Dial connects to the Temporal frontend at hostPort.
func Dial(hostPort, taskQueue string) (*Client, error) {
	sdk, err := client.Dial(client.Options{HostPort: hostPort})
	if err != nil {
		return nil, fmt.Errorf("dial temporal: %w", err)
	}
	return &Client{SDK: sdk, TaskQueue: taskQueue}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() {
	c.SDK.Close()
}

// WorkflowID derives the deterministic workflow id for a (name, revision)
// pair: the same push is always routed to the same workflow execution,
// which is what makes re-delivery of a webhook idempotent.
func WorkflowID(name, revision string) string {
	short := revision
	if len(short) > 12 {
		short = short[:12]
	}
	return fmt.Sprintf("golden-%s-%s", app.Sanitize(name), short)
}

// StartResult reports whether Start began a new execution or found one
// already running for this workflow id.
type StartResult struct {
	WorkflowID    string
	RunID         string
	AlreadyExists bool
}

// StartPushToDeploy submits the push_to_deploy workflow, treating
// WorkflowExecutionAlreadyStarted as a successful no-op rather than an
// error, so webhook re-delivery never double-submits a push.
func (c *Client) StartPushToDeploy(ctx context.Context, workflowID string, input any) (StartResult, error) {
	run, err := c.SDK.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: c.TaskQueue,
	}, "push_to_deploy", input)
	return c.interpretStart(workflowID, run, err)
}

// StartGoldenPath submits the build-and-publish-only golden_path workflow.
func (c *Client) StartGoldenPath(ctx context.Context, workflowID string, input any) (StartResult, error) {
	run, err := c.SDK.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: c.TaskQueue,
	}, "golden_path", input)
	return c.interpretStart(workflowID, run, err)
}

func (c *Client) interpretStart(workflowID string, run client.WorkflowRun, err error) (StartResult, error) {
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &alreadyStarted) {
		return StartResult{WorkflowID: workflowID, AlreadyExists: true}, nil
	}
	if err != nil {
		return StartResult{}, fmt.Errorf("start workflow %s: %w", workflowID, err)
	}
	return StartResult{WorkflowID: workflowID, RunID: run.GetRunID()}, nil
}

// Status is a terse summary of a workflow execution's state, used by the
// CLI's "status" subcommand.
type Status struct {
	WorkflowID string
	RunID      string
	Status     string
}

// Describe fetches the current status of a workflow execution.
func (c *Client) Describe(ctx context.Context, workflowID, runID string) (Status, error) {
	resp, err := c.SDK.DescribeWorkflowExecution(ctx, workflowID, runID)
	if err != nil {
		return Status{}, fmt.Errorf("describe workflow %s: %w", workflowID, err)
	}
	info := resp.GetWorkflowExecutionInfo()
	return Status{
		WorkflowID: workflowID,
		RunID:      info.GetExecution().GetRunId(),
		Status:     info.GetStatus().String(),
	}, nil
}

// Cancel requests cancellation of a running workflow execution. There is no
// rollback orchestration on top of this; an in-flight push can only be
// stopped, not unwound.
func (c *Client) Cancel(ctx context.Context, workflowID, runID string) error {
	if err := c.SDK.CancelWorkflow(ctx, workflowID, runID); err != nil {
		return fmt.Errorf("cancel workflow %s: %w", workflowID, err)
	}
	return nil
}

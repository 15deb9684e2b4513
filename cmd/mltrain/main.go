// Mltrain is the client CLI for the ML training job service.
//
// It communicates with an mltrain server over gRPC. The CLI supports the
// following commands:
//
//   - submit: submits a new training job.
//   - get: retrieves the metadata of a training job.
//   - list: lists an organization's training jobs.
//   - cancel: cancels a training job.
//
// Each command requires the address of the server and an API key. A server CA
// certificate can also be provided if it's not available as part of the
// system's trust store.
//
// The CLI optionally uses environment variables to configure the connection.
// The following environment variables are supported:
//
//   - MLTRAIN_ADDRESS: the address of the mltrain server.
//   - MLTRAIN_API_KEY: the API key sent with every call.
//   - MLTRAIN_SERVER_CA_CERT: the path to the server's CA certificate file.
//   - MLTRAIN_INSECURE: disable transport security (local development only).
//
// Example usage after environment setup:
//
//	mltrain submit --org org1 --model-type single_label_classification classifier v1 --tag prod
//	mltrain get <job_id>
//	mltrain list --org org1 --status pending
//	mltrain cancel <job_id>
//	mltrain [COMMAND] --help
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/modelkit/mltrain/pkg/mltraining"
	"github.com/modelkit/mltrain/pkg/trainpb"
)

const description = "Mltrain is a client CLI for managing ML training jobs."

type app struct {
	Submit submitCmd `cmd:"" help:"Submit a new training job."`
	Get    getCmd    `cmd:"" help:"Get the training job with given ID."`
	List   listCmd   `cmd:"" help:"List an organization's training jobs."`
	Cancel cancelCmd `cmd:"" help:"Cancel the training job with given ID."`
}

func main() {
	var writer io.Writer = os.Stdout
	opts := []kong.Option{
		kong.Bind(&writer),
		kong.Description(description),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}
	kctx := kong.Parse(&app{}, opts...)
	kctx.FatalIfErrorf(kctx.Run())
}

type submitCmd struct {
	cmd
	ModelName    string   `arg:"" required:"" help:"Model name."`
	ModelVersion string   `arg:"" required:"" help:"Model version."`
	Org          string   `required:"" short:"o" help:"Organization ID whose data is used for training."`
	ModelType    string   `required:"" help:"Model type: single_label_classification, multi_label_classification or object_detection."`
	Tag          []string `short:"t" help:"Tag to apply to the model output. Repeatable."`
	Filter       string   `help:"Data filter as a JSON object. Omit to train on all data."`
}

type getCmd struct {
	cmd
	ID         string `arg:"" required:"" help:"Training job ID, use 'list' to find IDs."`
	TimeFormat string `help:"Time format." default:"2006-01-02T15:04:05Z07:00" env:"MLTRAIN_TIME_FORMAT"`
}

type listCmd struct {
	cmd
	Org        string `required:"" short:"o" help:"Organization ID."`
	Status     string `short:"s" help:"Status to filter by, e.g. pending or completed. Omit for all statuses."`
	TimeFormat string `help:"Time format." default:"2006-01-02T15:04:05Z07:00" env:"MLTRAIN_TIME_FORMAT"`
}

type cancelCmd struct {
	cmd
	ID string `arg:"" required:"" help:"Training job ID."`
}

type cmd struct {
	Address      string `required:"" short:"A" help:"Server address." env:"MLTRAIN_ADDRESS"`
	APIKey       string `required:"" help:"API key." env:"MLTRAIN_API_KEY"`
	ServerCACert string `help:"Server CA certificate file." env:"MLTRAIN_SERVER_CA_CERT"`
	Insecure     bool   `help:"Disable transport security." env:"MLTRAIN_INSECURE"`

	conn *mltraining.Conn
	w    io.Writer // can be overridden for testing
}

// Run is called by [kong] when the CLI arguments contain the `submit` command.
func (c *submitCmd) Run() error {
	modelType, err := trainpb.ParseModelType(c.ModelType)
	if err != nil {
		return err
	}
	var filter *trainpb.Filter
	if c.Filter != "" {
		filter = &trainpb.Filter{}
		if err := json.Unmarshal([]byte(c.Filter), filter); err != nil {
			return fmt.Errorf("cannot parse filter: %w", err)
		}
	}
	id, err := c.conn.SubmitTrainingJob(context.Background(), c.Org, c.ModelName, c.ModelVersion, modelType, c.Tag, filter)
	if err != nil {
		return fmt.Errorf("failed to submit training job: %w", err)
	}
	if _, err := fmt.Fprintln(c.w, id); err != nil {
		return fmt.Errorf("failed to write job ID %q: %w", id, err)
	}
	return nil
}

// Run is called by [kong] when the CLI arguments contain the `get` command.
func (c *getCmd) Run() error {
	md, err := c.conn.GetTrainingJob(context.Background(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to get training job: %w", err)
	}
	return printJobs(c.w, []*trainpb.TrainingJobMetadata{md}, c.TimeFormat)
}

// Run is called by [kong] when the CLI arguments contain the `list` command.
func (c *listCmd) Run() error {
	var status *trainpb.TrainingStatus
	if c.Status != "" {
		st, err := trainpb.ParseTrainingStatus(c.Status)
		if err != nil {
			return err
		}
		status = &st
	}
	jobs, err := c.conn.ListTrainingJobs(context.Background(), c.Org, status)
	if err != nil {
		return fmt.Errorf("failed to list training jobs: %w", err)
	}
	return printJobs(c.w, jobs, c.TimeFormat)
}

// Run is called by [kong] when the CLI arguments contain the `cancel` command.
func (c *cancelCmd) Run() error {
	if err := c.conn.CancelTrainingJob(context.Background(), c.ID); err != nil {
		return fmt.Errorf("failed to cancel training job: %w", err)
	}
	return nil
}

// AfterApply is called by [kong] immediately after flag validation and
// assignment and _before_ a command's Run method. It is useful for setting up
// common resources like gRPC connections.
//
// The pointer to the io.Writer is required to keep the io.Writer type when
// passing through an `any` parameter on the [kong.Bind] function.
func (c *cmd) AfterApply(w *io.Writer) error {
	c.w = *w
	if c.w == nil {
		c.w = os.Stdout
	}
	opts := []mltraining.DialOption{
		mltraining.WithAPIKey(c.APIKey),
		mltraining.WithServerCA(c.ServerCACert),
	}
	if c.Insecure {
		opts = append(opts, mltraining.WithInsecure())
	}
	conn, err := mltraining.Dial(c.Address, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	c.conn = conn
	return nil
}

// AfterRun is called by [kong] immediately after a command's Run method
// completes. It is useful for cleaning up common resources like gRPC
// connections.
func (c *cmd) AfterRun() error {
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("after run: %w", err)
	}
	return nil
}

// printJobs writes the training job metadata to the provided writer in a
// tabular format, one row per job.
func printJobs(w io.Writer, jobs []*trainpb.TrainingJobMetadata, layout string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tMODEL\tVERSION\tTYPE\tSTATUS\tCREATED\tENDED"); err != nil {
		return fmt.Errorf("cannot write training job header: %w", err)
	}
	for _, job := range jobs {
		model, version, modelType := "", "", ""
		if job.Request != nil {
			model = job.Request.ModelName
			version = job.Request.ModelVersion
			modelType = job.Request.ModelType.String()
		}
		created := timeString(job.Created, layout)
		ended := timeString(job.TrainingEnded, layout)
		_, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", job.ID, model, version, modelType, job.Status, created, ended)
		if err != nil {
			return fmt.Errorf("cannot write training job content: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("cannot flush training job tab writer: %w", err)
	}
	return nil
}

// timeString formats a timestamp according to the provided layout. If the
// timestamp is zero, it returns an empty string.
func timeString(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(layout) //nolint:gosmopolitan // usage of time.Local in local client CLI makes timestamps more readable.
}

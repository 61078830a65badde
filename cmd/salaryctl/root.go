package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	companypb "github.com/ogurasousui/employee-salary/internal/adapters/grpc/api/company/v1"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const defaultAddr = "localhost:50051"

// dialFunc は CompanyService への接続を開きます。テストでは bufconn に差し替えます。
type dialFunc func(addr string) (*grpc.ClientConn, error)

type rootOptions struct {
	addr     string
	format   string
	timeZone string
	timeout  time.Duration
	dial     dialFunc
}

func dialCompanyService(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func newRootCmd(dial dialFunc) *cobra.Command {
	opts := &rootOptions{dial: dial}

	addr := os.Getenv("SALARYCTL_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	root := &cobra.Command{
		Use:   "salaryctl",
		Short: "Client for the employee salary CompanyService",
		Long: `salaryctl talks to a running employee-salary gRPC server.
It registers employees, reports worked hours and prints monthly salary reports.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatTable, formatJSON:
			default:
				return fmt.Errorf("unsupported format %q (want %s or %s)", opts.format, formatTable, formatJSON)
			}
			if _, err := time.LoadLocation(opts.timeZone); err != nil {
				return fmt.Errorf("unknown time zone %q: %w", opts.timeZone, err)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.addr, "addr", addr, "gRPC server address (env SALARYCTL_ADDR)")
	flags.StringVar(&opts.format, "format", formatTable, "Output format: table, json")
	flags.StringVar(&opts.timeZone, "tz", "UTC", "IANA time zone used to read dates and times")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-call timeout")

	root.AddCommand(
		newCompanyCmd(opts),
		newEmployeesCmd(opts),
		newAddCmd(opts),
		newRemoveCmd(opts),
		newReportHoursCmd(opts),
		newMonthlyReportCmd(opts),
	)

	return root
}

// call は接続を開き、タイムアウト付きのコンテキストで fn を実行します。
func (o *rootOptions) call(cmd *cobra.Command, fn func(ctx context.Context, client *companypb.CompanyServiceClient) error) error {
	conn, err := o.dial(o.addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", o.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	return fn(ctx, companypb.NewCompanyServiceClient(conn))
}

func (o *rootOptions) location() *time.Location {
	loc, err := time.LoadLocation(o.timeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

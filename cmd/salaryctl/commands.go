package main

import (
	"context"
	"fmt"
	"time"

	companypb "github.com/ogurasousui/employee-salary/internal/adapters/grpc/api/company/v1"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDateTime は日付または日時を loc の暦として解釈します。
func parseDateTime(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date (YYYY-MM-DD) or date-time (YYYY-MM-DDTHH:MM)", value)
}

func newCompanyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "company",
		Short: "Print the company name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, func(ctx context.Context, client *companypb.CompanyServiceClient) error {
				resp, err := client.GetCompany(ctx, &companypb.GetCompanyRequest{})
				if err != nil {
					return err
				}
				return printCompany(cmd.OutOrStdout(), opts.format, resp)
			})
		},
	}
}

func newEmployeesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List employees in the order they were first added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, func(ctx context.Context, client *companypb.CompanyServiceClient) error {
				resp, err := client.ListEmployees(ctx, &companypb.ListEmployeesRequest{})
				if err != nil {
					return err
				}
				return printEmployees(cmd.OutOrStdout(), opts.format, resp.Employees)
			})
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		id     int32
		name   string
		salary string
		start  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee or start a new contract for an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := decimal.NewFromString(salary); err != nil {
				return fmt.Errorf("invalid --salary %q: %w", salary, err)
			}
			startAt, err := parseDateTime(start, opts.location())
			if err != nil {
				return err
			}

			return opts.call(cmd, func(ctx context.Context, client *companypb.CompanyServiceClient) error {
				if _, err := client.AddEmployee(ctx, &companypb.AddEmployeeRequest{
					Employee:          &companypb.Employee{Id: id, FullName: name, HourlySalary: salary},
					ContractStartDate: timestamppb.New(startAt),
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "employee %d added\n", id)
				return nil
			})
		},
	}

	cmd.Flags().Int32Var(&id, "id", 0, "Employee id")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&salary, "salary", "", "Hourly salary, e.g. 20.50")
	cmd.Flags().StringVar(&start, "start", "", "Contract start date")
	for _, flag := range []string{"id", "salary", "start"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	var (
		id  int32
		end string
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "End the current contract of an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			endAt, err := parseDateTime(end, opts.location())
			if err != nil {
				return err
			}

			return opts.call(cmd, func(ctx context.Context, client *companypb.CompanyServiceClient) error {
				if _, err := client.RemoveEmployee(ctx, &companypb.RemoveEmployeeRequest{
					EmployeeId:      id,
					ContractEndDate: timestamppb.New(endAt),
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "employee %d removed\n", id)
				return nil
			})
		},
	}

	cmd.Flags().Int32Var(&id, "id", 0, "Employee id")
	cmd.Flags().StringVar(&end, "end", "", "Contract end date")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newReportHoursCmd(opts *rootOptions) *cobra.Command {
	var (
		id      int32
		at      string
		hours   int32
		minutes int32
	)

	cmd := &cobra.Command{
		Use:   "report-hours",
		Short: "Report hours worked starting at a date and time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := parseDateTime(at, opts.location())
			if err != nil {
				return err
			}

			return opts.call(cmd, func(ctx context.Context, client *companypb.CompanyServiceClient) error {
				if _, err := client.ReportHours(ctx, &companypb.ReportHoursRequest{
					EmployeeId:  id,
					DateAndTime: timestamppb.New(startAt),
					TimeZone:    wrapperspb.String(opts.timeZone),
					Hours:       hours,
					Minutes:     minutes,
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reported %dh%02dm for employee %d\n", hours, minutes, id)
				return nil
			})
		},
	}

	cmd.Flags().Int32Var(&id, "id", 0, "Employee id")
	cmd.Flags().StringVar(&at, "at", "", "Date and time the work started, e.g. 2022-07-31T23:30")
	cmd.Flags().Int32Var(&hours, "hours", 0, "Whole hours worked")
	cmd.Flags().Int32Var(&minutes, "minutes", 0, "Additional minutes worked (0-59)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newMonthlyReportCmd(opts *rootOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "monthly-report",
		Short: "Print salaries per employee and month for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDateTime(from, opts.location())
			if err != nil {
				return err
			}
			end, err := parseDateTime(to, opts.location())
			if err != nil {
				return err
			}

			return opts.call(cmd, func(ctx context.Context, client *companypb.CompanyServiceClient) error {
				resp, err := client.GetMonthlyReport(ctx, &companypb.GetMonthlyReportRequest{
					PeriodStartDate: timestamppb.New(start),
					PeriodEndDate:   timestamppb.New(end),
					TimeZone:        wrapperspb.String(opts.timeZone),
				})
				if err != nil {
					return err
				}
				return printMonthlyReports(cmd.OutOrStdout(), opts.format, resp.Reports)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Period start date")
	cmd.Flags().StringVar(&to, "to", "", "Period end date")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

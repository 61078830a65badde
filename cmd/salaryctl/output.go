package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	companypb "github.com/ogurasousui/employee-salary/internal/adapters/grpc/api/company/v1"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCompany(w io.Writer, format string, resp *companypb.GetCompanyResponse) error {
	if format == formatJSON {
		return writeJSON(w, resp)
	}
	_, err := fmt.Fprintln(w, resp.Name)
	return err
}

func printEmployees(w io.Writer, format string, employees []*companypb.Employee) error {
	if format == formatJSON {
		if employees == nil {
			employees = []*companypb.Employee{}
		}
		return writeJSON(w, employees)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tHOURLY SALARY")
	for _, e := range employees {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.Id, e.FullName, e.HourlySalary)
	}
	return tw.Flush()
}

func printMonthlyReports(w io.Writer, format string, reports []*companypb.MonthlyReport) error {
	if format == formatJSON {
		if reports == nil {
			reports = []*companypb.MonthlyReport{}
		}
		return writeJSON(w, reports)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tMONTH\tSALARY")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%04d-%02d\t%s\n", r.EmployeeId, r.Year, r.Month, r.Salary)
	}
	return tw.Flush()
}

package handler

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	companypb "github.com/ogurasousui/employee-salary/internal/adapters/grpc/api/company/v1"
	"github.com/ogurasousui/employee-salary/internal/core/company"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// CompanyGrpcHandler は CompanyService の gRPC 実装です。
type CompanyGrpcHandler struct {
	svc company.UseCase
	companypb.UnimplementedCompanyServiceServer
}

// NewCompanyGrpcHandler は CompanyGrpcHandler を生成します。
func NewCompanyGrpcHandler(svc company.UseCase) *CompanyGrpcHandler {
	return &CompanyGrpcHandler{svc: svc}
}

var _ companypb.CompanyServiceServer = (*CompanyGrpcHandler)(nil)

// GetCompany は会社名を返します。
func (h *CompanyGrpcHandler) GetCompany(ctx context.Context, req *companypb.GetCompanyRequest) (*companypb.GetCompanyResponse, error) {
	return &companypb.GetCompanyResponse{Name: h.svc.Name()}, nil
}

// ListEmployees は登録済みの社員を最初に登録された順で返します。
func (h *CompanyGrpcHandler) ListEmployees(ctx context.Context, req *companypb.ListEmployeesRequest) (*companypb.ListEmployeesResponse, error) {
	employees := h.svc.Employees()

	protoEmployees := make([]*companypb.Employee, 0, len(employees))
	for _, e := range employees {
		protoEmployees = append(protoEmployees, toProtoEmployee(e))
	}

	return &companypb.ListEmployeesResponse{Employees: protoEmployees}, nil
}

// AddEmployee は社員を追加、または契約を更新します。
func (h *CompanyGrpcHandler) AddEmployee(ctx context.Context, req *companypb.AddEmployeeRequest) (*companypb.AddEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.Employee == nil {
		return nil, status.Error(codes.InvalidArgument, "employee is required")
	}

	rate, err := decimal.NewFromString(req.Employee.HourlySalary)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "hourly_salary %q is not a decimal", req.Employee.HourlySalary)
	}

	start, err := requiredTime("contract_start_date", req.ContractStartDate)
	if err != nil {
		return nil, err
	}

	if err := h.svc.AddEmployee(ctx, company.AddEmployeeInput{
		Employee: company.Employee{
			ID:           int(req.Employee.Id),
			FullName:     req.Employee.FullName,
			HourlySalary: rate,
		},
		ContractStartDate: start,
	}); err != nil {
		return nil, toStatusError(err)
	}

	return &companypb.AddEmployeeResponse{}, nil
}

// RemoveEmployee は社員の契約を終了します。
func (h *CompanyGrpcHandler) RemoveEmployee(ctx context.Context, req *companypb.RemoveEmployeeRequest) (*companypb.RemoveEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	end, err := requiredTime("contract_end_date", req.ContractEndDate)
	if err != nil {
		return nil, err
	}

	if err := h.svc.RemoveEmployee(ctx, company.RemoveEmployeeInput{
		EmployeeID:      int(req.EmployeeId),
		ContractEndDate: end,
	}); err != nil {
		return nil, toStatusError(err)
	}

	return &companypb.RemoveEmployeeResponse{}, nil
}

// ReportHours は勤務時間を記録します。日付の境界は time_zone の暦で判定します。
func (h *CompanyGrpcHandler) ReportHours(ctx context.Context, req *companypb.ReportHoursRequest) (*companypb.ReportHoursResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	at, err := requiredTime("date_and_time", req.DateAndTime)
	if err != nil {
		return nil, err
	}

	loc, err := callerLocation(req.GetTimeZone())
	if err != nil {
		return nil, err
	}

	if err := h.svc.ReportHours(ctx, company.ReportHoursInput{
		EmployeeID:  int(req.EmployeeId),
		DateAndTime: at.In(loc),
		Hours:       int(req.Hours),
		Minutes:     int(req.Minutes),
	}); err != nil {
		return nil, toStatusError(err)
	}

	return &companypb.ReportHoursResponse{}, nil
}

// GetMonthlyReport は期間内の月次給与レポートを返します。期間の月は time_zone の暦で判定します。
func (h *CompanyGrpcHandler) GetMonthlyReport(ctx context.Context, req *companypb.GetMonthlyReportRequest) (*companypb.GetMonthlyReportResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	start, err := requiredTime("period_start_date", req.PeriodStartDate)
	if err != nil {
		return nil, err
	}
	end, err := requiredTime("period_end_date", req.PeriodEndDate)
	if err != nil {
		return nil, err
	}
	loc, err := callerLocation(req.GetTimeZone())
	if err != nil {
		return nil, err
	}

	reports, err := h.svc.GetMonthlyReport(ctx, company.GetMonthlyReportInput{
		PeriodStartDate: start.In(loc),
		PeriodEndDate:   end.In(loc),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	protoReports := make([]*companypb.MonthlyReport, 0, len(reports))
	for _, r := range reports {
		protoReports = append(protoReports, &companypb.MonthlyReport{
			EmployeeId: int32(r.EmployeeID),
			Year:       int32(r.Year),
			Month:      int32(r.Month),
			Salary:     r.Salary.String(),
		})
	}

	return &companypb.GetMonthlyReportResponse{Reports: protoReports}, nil
}

func toProtoEmployee(e company.Employee) *companypb.Employee {
	return &companypb.Employee{
		Id:           int32(e.ID),
		FullName:     e.FullName,
		HourlySalary: e.HourlySalary.String(),
	}
}

// callerLocation は time_zone を解決します。空の場合は UTC です。
func callerLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "time_zone %q is unknown", tz)
	}
	return loc, nil
}

func requiredTime(field string, ts *timestamppb.Timestamp) (time.Time, error) {
	if ts == nil {
		return time.Time{}, status.Error(codes.InvalidArgument, fmt.Sprintf("%s is required", field))
	}
	if err := ts.CheckValid(); err != nil {
		return time.Time{}, status.Error(codes.InvalidArgument, fmt.Sprintf("%s: %v", field, err))
	}
	return ts.AsTime(), nil
}

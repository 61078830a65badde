package companyv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Employee は社員のメッセージ表現です。時給は 10 進数の文字列で表します。
type Employee struct {
	Id           int32  `json:"id"`
	FullName     string `json:"full_name"`
	HourlySalary string `json:"hourly_salary"`
}

// MonthlyReport は社員ごと・月ごとの給与集計です。
type MonthlyReport struct {
	EmployeeId int32  `json:"employee_id"`
	Year       int32  `json:"year"`
	Month      int32  `json:"month"`
	Salary     string `json:"salary"`
}

type GetCompanyRequest struct{}

type GetCompanyResponse struct {
	Name string `json:"name"`
}

type ListEmployeesRequest struct{}

type ListEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}

type AddEmployeeRequest struct {
	Employee          *Employee              `json:"employee"`
	ContractStartDate *timestamppb.Timestamp `json:"contract_start_date"`
}

type AddEmployeeResponse struct{}

type RemoveEmployeeRequest struct {
	EmployeeId      int32                  `json:"employee_id"`
	ContractEndDate *timestamppb.Timestamp `json:"contract_end_date"`
}

type RemoveEmployeeResponse struct{}

// ReportHoursRequest は勤務時間報告のリクエストです。
// TimeZone (IANA 名) は日付の境界を決めるために使われ、未指定の場合は UTC です。
type ReportHoursRequest struct {
	EmployeeId  int32                   `json:"employee_id"`
	DateAndTime *timestamppb.Timestamp  `json:"date_and_time"`
	TimeZone    *wrapperspb.StringValue `json:"time_zone,omitempty"`
	Hours       int32                   `json:"hours"`
	Minutes     int32                   `json:"minutes"`
}

type ReportHoursResponse struct{}

// GetMonthlyReportRequest は月次レポートのリクエストです。
// 期間の月は TimeZone (IANA 名、未指定の場合は UTC) の暦で判定します。
type GetMonthlyReportRequest struct {
	PeriodStartDate *timestamppb.Timestamp  `json:"period_start_date"`
	PeriodEndDate   *timestamppb.Timestamp  `json:"period_end_date"`
	TimeZone        *wrapperspb.StringValue `json:"time_zone,omitempty"`
}

type GetMonthlyReportResponse struct {
	Reports []*MonthlyReport `json:"reports"`
}

func (x *ReportHoursRequest) GetTimeZone() string {
	if x == nil || x.TimeZone == nil {
		return ""
	}
	return x.TimeZone.GetValue()
}

func (x *GetMonthlyReportRequest) GetTimeZone() string {
	if x == nil || x.TimeZone == nil {
		return ""
	}
	return x.TimeZone.GetValue()
}

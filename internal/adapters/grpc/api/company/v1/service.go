package companyv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName は gRPC のサービス名です。
const ServiceName = "salary.v1.CompanyService"

const (
	methodGetCompany       = "GetCompany"
	methodListEmployees    = "ListEmployees"
	methodAddEmployee      = "AddEmployee"
	methodRemoveEmployee   = "RemoveEmployee"
	methodReportHours      = "ReportHours"
	methodGetMonthlyReport = "GetMonthlyReport"
)

// CompanyServiceServer は CompanyService のサーバー側インターフェースです。
type CompanyServiceServer interface {
	GetCompany(context.Context, *GetCompanyRequest) (*GetCompanyResponse, error)
	ListEmployees(context.Context, *ListEmployeesRequest) (*ListEmployeesResponse, error)
	AddEmployee(context.Context, *AddEmployeeRequest) (*AddEmployeeResponse, error)
	RemoveEmployee(context.Context, *RemoveEmployeeRequest) (*RemoveEmployeeResponse, error)
	ReportHours(context.Context, *ReportHoursRequest) (*ReportHoursResponse, error)
	GetMonthlyReport(context.Context, *GetMonthlyReportRequest) (*GetMonthlyReportResponse, error)
}

// UnimplementedCompanyServiceServer は未実装メソッドに Unimplemented を返す埋め込み用の実装です。
type UnimplementedCompanyServiceServer struct{}

func (UnimplementedCompanyServiceServer) GetCompany(context.Context, *GetCompanyRequest) (*GetCompanyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCompany not implemented")
}

func (UnimplementedCompanyServiceServer) ListEmployees(context.Context, *ListEmployeesRequest) (*ListEmployeesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEmployees not implemented")
}

func (UnimplementedCompanyServiceServer) AddEmployee(context.Context, *AddEmployeeRequest) (*AddEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddEmployee not implemented")
}

func (UnimplementedCompanyServiceServer) RemoveEmployee(context.Context, *RemoveEmployeeRequest) (*RemoveEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveEmployee not implemented")
}

func (UnimplementedCompanyServiceServer) ReportHours(context.Context, *ReportHoursRequest) (*ReportHoursResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReportHours not implemented")
}

func (UnimplementedCompanyServiceServer) GetMonthlyReport(context.Context, *GetMonthlyReportRequest) (*GetMonthlyReportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMonthlyReport not implemented")
}

// CompanyService_ServiceDesc は CompanyService の gRPC サービス定義です。
var CompanyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CompanyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: methodGetCompany, Handler: unaryHandler(methodGetCompany, CompanyServiceServer.GetCompany)},
		{MethodName: methodListEmployees, Handler: unaryHandler(methodListEmployees, CompanyServiceServer.ListEmployees)},
		{MethodName: methodAddEmployee, Handler: unaryHandler(methodAddEmployee, CompanyServiceServer.AddEmployee)},
		{MethodName: methodRemoveEmployee, Handler: unaryHandler(methodRemoveEmployee, CompanyServiceServer.RemoveEmployee)},
		{MethodName: methodReportHours, Handler: unaryHandler(methodReportHours, CompanyServiceServer.ReportHours)},
		{MethodName: methodGetMonthlyReport, Handler: unaryHandler(methodGetMonthlyReport, CompanyServiceServer.GetMonthlyReport)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "salary/v1/company.proto",
}

// RegisterCompanyServiceServer は srv を gRPC サーバーに登録します。
func RegisterCompanyServiceServer(s grpc.ServiceRegistrar, srv CompanyServiceServer) {
	s.RegisterService(&CompanyService_ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req, Resp any](method string, call func(CompanyServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CompanyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CompanyServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

package companyv1

import (
	"context"

	"google.golang.org/grpc"
)

// CompanyServiceClient は CompanyService のクライアントです。
type CompanyServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCompanyServiceClient は CompanyServiceClient を生成します。
func NewCompanyServiceClient(cc grpc.ClientConnInterface) *CompanyServiceClient {
	return &CompanyServiceClient{cc: cc}
}

func (c *CompanyServiceClient) GetCompany(ctx context.Context, in *GetCompanyRequest, opts ...grpc.CallOption) (*GetCompanyResponse, error) {
	out := new(GetCompanyResponse)
	if err := c.invoke(ctx, methodGetCompany, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) ListEmployees(ctx context.Context, in *ListEmployeesRequest, opts ...grpc.CallOption) (*ListEmployeesResponse, error) {
	out := new(ListEmployeesResponse)
	if err := c.invoke(ctx, methodListEmployees, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) AddEmployee(ctx context.Context, in *AddEmployeeRequest, opts ...grpc.CallOption) (*AddEmployeeResponse, error) {
	out := new(AddEmployeeResponse)
	if err := c.invoke(ctx, methodAddEmployee, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) RemoveEmployee(ctx context.Context, in *RemoveEmployeeRequest, opts ...grpc.CallOption) (*RemoveEmployeeResponse, error) {
	out := new(RemoveEmployeeResponse)
	if err := c.invoke(ctx, methodRemoveEmployee, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) ReportHours(ctx context.Context, in *ReportHoursRequest, opts ...grpc.CallOption) (*ReportHoursResponse, error) {
	out := new(ReportHoursResponse)
	if err := c.invoke(ctx, methodReportHours, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) GetMonthlyReport(ctx context.Context, in *GetMonthlyReportRequest, opts ...grpc.CallOption) (*GetMonthlyReportResponse, error) {
	out := new(GetMonthlyReportResponse)
	if err := c.invoke(ctx, methodGetMonthlyReport, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, fullMethod(method), in, out, callOpts...)
}

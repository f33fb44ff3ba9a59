package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "expenses.v1.ExpenseService"
	// AuthServiceName is the fully-qualified name of the AuthService service.
	AuthServiceName = "expenses.v1.AuthService"
)

// Procedure paths, in the "/<service>/<method>" form Connect routes on.
const (
	ExpenseServiceWriteProcedure            = "/" + ExpenseServiceName + "/Write"
	ExpenseServiceReadProcedure             = "/" + ExpenseServiceName + "/Read"
	ExpenseServiceLookupProcedure           = "/" + ExpenseServiceName + "/Lookup"
	ExpenseServiceFindByKeyProcedure        = "/" + ExpenseServiceName + "/FindByKey"
	ExpenseServiceListProcedure             = "/" + ExpenseServiceName + "/List"
	ExpenseServiceTransitionReportProcedure = "/" + ExpenseServiceName + "/TransitionReport"
	ExpenseServiceReportTotalsProcedure     = "/" + ExpenseServiceName + "/ReportTotals"
	ExpenseServiceHistoryProcedure          = "/" + ExpenseServiceName + "/History"

	AuthServiceRegisterProcedure = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure    = "/" + AuthServiceName + "/Login"
)

func handle[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// handlerOptions puts the JSON codec and request validation behind any
// caller-supplied interceptors, so auth runs before validation.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append(opts,
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(validationInterceptor()),
	)
}

// NewExpenseServiceHandler builds an HTTP handler for the ExpenseService.
// It returns the path on which to mount the handler and the handler itself.
func NewExpenseServiceHandler(svc *ExpenseService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, ExpenseServiceWriteProcedure, svc.Write, opts)
	handle(mux, ExpenseServiceReadProcedure, svc.Read, opts)
	handle(mux, ExpenseServiceLookupProcedure, svc.Lookup, opts)
	handle(mux, ExpenseServiceFindByKeyProcedure, svc.FindByKey, opts)
	handle(mux, ExpenseServiceListProcedure, svc.List, opts)
	handle(mux, ExpenseServiceTransitionReportProcedure, svc.TransitionReport, opts)
	handle(mux, ExpenseServiceReportTotalsProcedure, svc.ReportTotals, opts)
	handle(mux, ExpenseServiceHistoryProcedure, svc.History, opts)
	return "/" + ExpenseServiceName + "/", mux
}

// NewAuthServiceHandler builds an HTTP handler for the AuthService.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, AuthServiceRegisterProcedure, svc.Register, opts)
	handle(mux, AuthServiceLoginProcedure, svc.Login, opts)
	return "/" + AuthServiceName + "/", mux
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// ExpenseServiceClient is a client for the expenses.v1.ExpenseService service.
type ExpenseServiceClient struct {
	write            *connect.Client[WriteRequest, WriteResponse]
	read             *connect.Client[ReadRequest, ReadResponse]
	lookup           *connect.Client[LookupRequest, LookupResponse]
	findByKey        *connect.Client[FindByKeyRequest, FindByKeyResponse]
	list             *connect.Client[ListRequest, ListResponse]
	transitionReport *connect.Client[TransitionReportRequest, TransitionReportResponse]
	reportTotals     *connect.Client[ReportTotalsRequest, ReportTotalsResponse]
	history          *connect.Client[HistoryRequest, HistoryResponse]
}

// NewExpenseServiceClient constructs a client for the ExpenseService. The
// baseURL is the server root, e.g. http://localhost:8080.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		write:            connect.NewClient[WriteRequest, WriteResponse](httpClient, baseURL+ExpenseServiceWriteProcedure, opts...),
		read:             connect.NewClient[ReadRequest, ReadResponse](httpClient, baseURL+ExpenseServiceReadProcedure, opts...),
		lookup:           connect.NewClient[LookupRequest, LookupResponse](httpClient, baseURL+ExpenseServiceLookupProcedure, opts...),
		findByKey:        connect.NewClient[FindByKeyRequest, FindByKeyResponse](httpClient, baseURL+ExpenseServiceFindByKeyProcedure, opts...),
		list:             connect.NewClient[ListRequest, ListResponse](httpClient, baseURL+ExpenseServiceListProcedure, opts...),
		transitionReport: connect.NewClient[TransitionReportRequest, TransitionReportResponse](httpClient, baseURL+ExpenseServiceTransitionReportProcedure, opts...),
		reportTotals:     connect.NewClient[ReportTotalsRequest, ReportTotalsResponse](httpClient, baseURL+ExpenseServiceReportTotalsProcedure, opts...),
		history:          connect.NewClient[HistoryRequest, HistoryResponse](httpClient, baseURL+ExpenseServiceHistoryProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) Write(ctx context.Context, req *connect.Request[WriteRequest]) (*connect.Response[WriteResponse], error) {
	return c.write.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) Read(ctx context.Context, req *connect.Request[ReadRequest]) (*connect.Response[ReadResponse], error) {
	return c.read.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) Lookup(ctx context.Context, req *connect.Request[LookupRequest]) (*connect.Response[LookupResponse], error) {
	return c.lookup.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) FindByKey(ctx context.Context, req *connect.Request[FindByKeyRequest]) (*connect.Response[FindByKeyResponse], error) {
	return c.findByKey.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) List(ctx context.Context, req *connect.Request[ListRequest]) (*connect.Response[ListResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) TransitionReport(ctx context.Context, req *connect.Request[TransitionReportRequest]) (*connect.Response[TransitionReportResponse], error) {
	return c.transitionReport.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ReportTotals(ctx context.Context, req *connect.Request[ReportTotalsRequest]) (*connect.Response[ReportTotalsResponse], error) {
	return c.reportTotals.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) History(ctx context.Context, req *connect.Request[HistoryRequest]) (*connect.Response[HistoryResponse], error) {
	return c.history.CallUnary(ctx, req)
}

// AuthServiceClient is a client for the expenses.v1.AuthService service.
type AuthServiceClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthServiceClient constructs a client for the AuthService.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

package functions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/interviewqa/apiserver/internal/apperr"
	"github.com/interviewqa/apiserver/internal/services"
	"github.com/interviewqa/apiserver/types"
)

// Services are the use-cases the dispatcher routes to.
type Services struct {
	Jobs      *services.JobService
	SubJobs   *services.SubJobService
	Questions *services.QuestionService
	Auth      *services.AuthService
}

type operation struct {
	authenticated bool
	status        int
	run           func(ctx context.Context, inv Invocation, callerID string) (any, error)
}

// Dispatcher maps invocations onto services.
type Dispatcher struct {
	svc        Services
	logger     *slog.Logger
	operations map[string]operation
}

func NewDispatcher(svc Services, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{svc: svc, logger: logger}
	d.operations = d.routes()
	return d
}

// Invoke runs one invocation. Failures are reported in the response, never
// returned.
func (d *Dispatcher) Invoke(ctx context.Context, inv Invocation) Response {
	op, ok := d.operations[inv.Operation]
	if !ok {
		return Response{
			StatusCode: http.StatusNotFound,
			Body:       map[string]string{"message": "Unknown operation."},
		}
	}

	var callerID string
	if op.authenticated {
		id, err := d.svc.Auth.VerifyToken(inv.Token)
		if err != nil {
			return d.failure(inv, err)
		}
		callerID = id
	}

	body, err := op.run(ctx, inv, callerID)
	if err != nil {
		return d.failure(inv, err)
	}
	return Response{StatusCode: op.status, Body: body}
}

func (d *Dispatcher) failure(inv Invocation, err error) Response {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindStore {
		d.logger.Error("invocation failed", "operation", inv.Operation, "err", err)
	}
	return Response{
		StatusCode: apperr.Status(appErr),
		Body:       map[string]string{"message": appErr.Message},
	}
}

func decode[T any](inv Invocation) (T, error) {
	var v T
	if err := inv.decodeBody(&v); err != nil {
		return v, apperr.Validation("invalid request body")
	}
	return v, nil
}

func (d *Dispatcher) routes() map[string]operation {
	return map[string]operation{
		"listJobs": {status: http.StatusOK, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			jobs, err := d.svc.Jobs.List(ctx)
			return map[string]any{"jobs": jobs}, err
		}},
		"getJob": {status: http.StatusOK, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			job, err := d.svc.Jobs.Get(ctx, inv.PathParameters.JobID)
			return map[string]any{"job": job}, err
		}},
		"createJob": {status: http.StatusCreated, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			input, err := decode[types.JobInput](inv)
			if err != nil {
				return nil, err
			}
			job, err := d.svc.Jobs.Create(ctx, input)
			return map[string]any{"job": job}, err
		}},
		"listSubJobs": {status: http.StatusOK, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			subJobs, err := d.svc.SubJobs.List(ctx, inv.PathParameters.JobID)
			return map[string]any{"subJobs": subJobs}, err
		}},
		"getSubJob": {status: http.StatusOK, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			p := inv.PathParameters
			subJob, err := d.svc.SubJobs.Get(ctx, p.JobID, p.SubJobID)
			return map[string]any{"subJob": subJob}, err
		}},
		"createSubJob": {status: http.StatusCreated, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			input, err := decode[types.SubJobInput](inv)
			if err != nil {
				return nil, err
			}
			subJob, err := d.svc.SubJobs.Create(ctx, inv.PathParameters.JobID, input)
			return map[string]any{"subJob": subJob}, err
		}},
		"listQuestions": {status: http.StatusOK, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			p := inv.PathParameters
			questions, err := d.svc.Questions.List(ctx, p.JobID, p.SubJobID)
			return map[string]any{"questions": questions}, err
		}},
		"getQuestion": {status: http.StatusOK, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			p := inv.PathParameters
			question, err := d.svc.Questions.Get(ctx, p.JobID, p.SubJobID, p.QuestionID)
			return map[string]any{"question": question}, err
		}},
		"createQuestion": {authenticated: true, status: http.StatusCreated, run: func(ctx context.Context, inv Invocation, callerID string) (any, error) {
			input, err := decode[types.QuestionInput](inv)
			if err != nil {
				return nil, err
			}
			p := inv.PathParameters
			return d.svc.Questions.Create(ctx, p.JobID, p.SubJobID, callerID, input)
		}},
		"likeQuestion": {authenticated: true, status: http.StatusOK, run: func(ctx context.Context, inv Invocation, callerID string) (any, error) {
			p := inv.PathParameters
			favorites, err := d.svc.Questions.Like(ctx, p.JobID, p.SubJobID, p.QuestionID, callerID)
			return map[string]any{"favorites": favorites}, err
		}},
		"unlikeQuestion": {authenticated: true, status: http.StatusOK, run: func(ctx context.Context, inv Invocation, callerID string) (any, error) {
			p := inv.PathParameters
			favorites, err := d.svc.Questions.Unlike(ctx, p.JobID, p.SubJobID, p.QuestionID, callerID)
			return map[string]any{"favorites": favorites}, err
		}},
		"deleteQuestion": {authenticated: true, status: http.StatusOK, run: func(ctx context.Context, inv Invocation, callerID string) (any, error) {
			p := inv.PathParameters
			if err := d.svc.Questions.Delete(ctx, p.JobID, p.SubJobID, p.QuestionID, callerID); err != nil {
				return nil, err
			}
			return map[string]any{"deleted": true}, nil
		}},
		"signup": {status: http.StatusCreated, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			input, err := decode[types.SignupInput](inv)
			if err != nil {
				return nil, err
			}
			return d.svc.Auth.Signup(ctx, input)
		}},
		"login": {status: http.StatusOK, run: func(ctx context.Context, inv Invocation, _ string) (any, error) {
			input, err := decode[types.LoginInput](inv)
			if err != nil {
				return nil, err
			}
			return d.svc.Auth.Login(ctx, input)
		}},
		"me": {authenticated: true, status: http.StatusOK, run: func(ctx context.Context, inv Invocation, callerID string) (any, error) {
			user, err := d.svc.Auth.Me(ctx, callerID)
			return map[string]any{"user": user}, err
		}},
	}
}

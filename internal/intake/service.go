package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mind-engage/thesisgrade/internal/evallog"
	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/metrics"
)

// Submission is one evaluator's rubric form for one student and role.
type Submission struct {
	StudentID     string    `json:"student_id" validate:"required,max=64"`
	StudentName   string    `json:"student_name" validate:"required,max=200"`
	EvaluatorName string    `json:"evaluator_name" validate:"required,max=200"`
	Role          string    `json:"role"`
	Criteria      []float64 `json:"criteria" validate:"len=5,dive,gte=3,lte=4"`
}

// SeminarEvaluator is the evaluator name stamped on seminar scores carried
// over from the roster.
const SeminarEvaluator = "roster"

type Service struct {
	store    evallog.Store
	validate *validator.Validate
	now      func() time.Time
	log      *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store evallog.Store, opts ...Option) *Service {
	v := validator.New()
	// report json names so callers see the field they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	s := &Service{
		store:    store,
		validate: v,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit validates a submission, averages its criteria and appends the
// resulting record. Rejected submissions leave the log untouched.
func (s *Service) Submit(ctx context.Context, sub Submission) (grading.Record, error) {
	sub.StudentID = strings.TrimSpace(sub.StudentID)
	sub.StudentName = strings.TrimSpace(sub.StudentName)
	sub.EvaluatorName = strings.TrimSpace(sub.EvaluatorName)

	if err := s.validate.Struct(sub); err != nil {
		verr := toValidationError(err)
		s.reject(ctx, sub, metrics.OutcomeInvalid, verr)
		return grading.Record{}, verr
	}
	role, err := grading.ParseRole(sub.Role)
	if err != nil {
		s.reject(ctx, sub, metrics.OutcomeSchema, err)
		return grading.Record{}, err
	}
	avg, err := grading.ScoreRole(role, sub.Criteria)
	if err != nil {
		s.reject(ctx, sub, metrics.OutcomeInvalid, err)
		return grading.Record{}, err
	}
	return s.append(ctx, grading.Record{
		ID:            uuid.NewString(),
		Timestamp:     s.now(),
		StudentID:     sub.StudentID,
		StudentName:   sub.StudentName,
		EvaluatorName: sub.EvaluatorName,
		Role:          role,
		RoleAverage:   avg,
	})
}

// RecordSeminar appends a seminar score that was graded outside the rubric
// form and arrives already averaged.
func (s *Service) RecordSeminar(ctx context.Context, studentID, studentName string, score float64) (grading.Record, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		err := &grading.ValidationError{Field: "student_id", Reason: "required"}
		metrics.Submissions.WithLabelValues(string(grading.RoleSeminar), metrics.OutcomeInvalid).Inc()
		return grading.Record{}, err
	}
	if err := grading.CheckRoleAverage(score); err != nil {
		metrics.Submissions.WithLabelValues(string(grading.RoleSeminar), metrics.OutcomeInvalid).Inc()
		return grading.Record{}, err
	}
	return s.append(ctx, grading.Record{
		ID:            uuid.NewString(),
		Timestamp:     s.now(),
		StudentID:     studentID,
		StudentName:   strings.TrimSpace(studentName),
		EvaluatorName: SeminarEvaluator,
		Role:          grading.RoleSeminar,
		RoleAverage:   score,
	})
}

func (s *Service) append(ctx context.Context, rec grading.Record) (grading.Record, error) {
	out, err := s.store.Append(ctx, rec)
	if err != nil {
		metrics.Submissions.WithLabelValues(string(rec.Role), metrics.OutcomeError).Inc()
		s.log.ErrorContext(ctx, "append evaluation failed", "student_id", rec.StudentID, "role", rec.Role, "err", err)
		return grading.Record{}, err
	}
	metrics.Submissions.WithLabelValues(string(rec.Role), metrics.OutcomeAccepted).Inc()
	s.log.InfoContext(ctx, "evaluation recorded",
		"id", out.ID,
		"seq", out.Seq,
		"student_id", out.StudentID,
		"evaluator", out.EvaluatorName,
		"role", out.Role,
		"role_average", out.RoleAverage,
	)
	return out, nil
}

func (s *Service) reject(ctx context.Context, sub Submission, outcome string, err error) {
	role := sub.Role
	if _, perr := grading.ParseRole(role); perr != nil {
		role = "unknown"
	}
	metrics.Submissions.WithLabelValues(role, outcome).Inc()
	s.log.WarnContext(ctx, "evaluation rejected",
		"student_id", sub.StudentID,
		"evaluator", sub.EvaluatorName,
		"role", sub.Role,
		"err", err,
	)
}

// toValidationError reports the first violated constraint.
func toValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return &grading.ValidationError{Reason: err.Error()}
	}
	fe := ves[0]
	field := fe.Field()
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "required"
	case "max":
		reason = "longer than " + fe.Param() + " characters"
	case "len":
		reason = fmt.Sprintf("expected %s scores, got %d", fe.Param(), reflect.ValueOf(fe.Value()).Len())
	case "gte", "lte":
		reason = fmt.Sprintf("%v outside [%.2f, %.2f]", fe.Value(), grading.MinCriterion, grading.MaxCriterion)
	default:
		reason = "failed " + fe.Tag()
	}
	return &grading.ValidationError{Field: field, Reason: reason}
}

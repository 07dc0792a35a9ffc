package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lendcore/loan-pricing/internal/application/dto"
	"github.com/lendcore/loan-pricing/internal/domain/event"
	"github.com/lendcore/loan-pricing/internal/domain/port"
	"github.com/lendcore/loan-pricing/internal/domain/service"
	"github.com/lendcore/loan-pricing/pkg/observability"
)

// GenerateScheduleUseCase builds the payment schedule of an accepted loan.
type GenerateScheduleUseCase struct {
	engine    *service.AmortizationEngine
	publisher port.EventPublisher
	metrics   *observability.PricingMetrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewGenerateScheduleUseCase wires dependencies. metrics may be nil.
func NewGenerateScheduleUseCase(
	engine *service.AmortizationEngine,
	publisher port.EventPublisher,
	metrics *observability.PricingMetrics,
	logger *slog.Logger,
) *GenerateScheduleUseCase {
	return &GenerateScheduleUseCase{
		engine:    engine,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute generates and announces the schedule. The schedule ID is the loan
// ID when one is given.
func (uc *GenerateScheduleUseCase) Execute(
	ctx context.Context,
	req dto.GenerateScheduleRequest,
) (resp dto.ScheduleResponse, err error) {
	ctx, span := tracer.Start(ctx, "GenerateSchedule")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.Int("tenor_months", req.TenorMonths))

	schedule, err := uc.engine.GenerateSchedule(
		req.Principal, req.TenorMonths, req.MonthlyInterestRate,
		req.RequestDate, req.FirstDueDate,
	)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("generate schedule: %w", err)
	}

	scheduleID := req.LoanID
	if scheduleID == "" {
		scheduleID = uuid.NewString()
	}
	totalInterest, totalInstallment := schedule.TotalInterest(), schedule.TotalInstallment()

	evt := event.NewPaymentScheduleGenerated(scheduleID, req.Principal, req.TenorMonths,
		totalInterest, totalInstallment,
		schedule[0].DueDate, schedule[len(schedule)-1].DueDate, uc.now())
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.metrics.RecordSchedule(ctx, req.TenorMonths)
	uc.logger.DebugContext(ctx, "payment schedule generated",
		"schedule_id", scheduleID,
		"tenor_months", req.TenorMonths,
		"total_installment", totalInstallment.String(),
	)

	return dto.ScheduleResponse{
		ScheduleID:       scheduleID,
		Principal:        req.Principal,
		TenorMonths:      req.TenorMonths,
		TotalInterest:    totalInterest,
		TotalInstallment: totalInstallment,
		Lines:            toInstallmentResponses(schedule),
	}, nil
}

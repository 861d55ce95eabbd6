// Package usecase implements the dispute lifecycle.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"credit_backend/internal/feature/dispute/domain/entity"
	letter "credit_backend/internal/feature/letter/domain/entity"
	"credit_backend/internal/shared/apperror"
	"credit_backend/internal/shared/identity"
)

// DisputeRepository persists disputes. Reads join the owner identity.
type DisputeRepository interface {
	Create(ctx context.Context, d *entity.Dispute) error
	// FindByID returns ErrDisputeNotFound if no dispute has the id.
	FindByID(ctx context.Context, id string) (*entity.Dispute, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Dispute, error)
	ListAll(ctx context.Context) ([]*entity.Dispute, error)
	// Update writes the lifecycle fields: status, notes, timestamps and letter.
	Update(ctx context.Context, d *entity.Dispute) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[entity.Status]int64, error)
}

// IdentityResolver looks up users. Unknown ids yield identity.ErrUnknownUser.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (identity.Identity, error)
}

// LetterGenerator writes dispute letters.
type LetterGenerator interface {
	Generate(ctx context.Context, req letter.Request) (*letter.Letter, error)
}

type DocumentInput struct {
	FileName    string
	FileType    string
	FileSize    int64
	Description *string
}

type CreateInput struct {
	Title               string
	Description         string
	DisputeReason       entity.Reason
	AccountName         *string
	AccountNumber       *string
	CreditorName        *string
	DisputeAmount       *float64
	DateOfService       *time.Time
	SupportingDocuments []DocumentInput
	Priority            entity.Priority
}

type StatusUpdate struct {
	Status          entity.Status
	AdminNotes      *string
	ResolutionNotes *string
}

// Stats summarizes all disputes by status.
type Stats struct {
	Total          int64
	Pending        int64
	Submitted      int64
	UnderReview    int64
	Resolved       int64
	Rejected       int64
	ResolutionRate float64 // percent, two decimals
}

type DisputeUsecase struct {
	disputes DisputeRepository
	users    IdentityResolver
	letters  LetterGenerator
	log      *zap.Logger
	now      func() time.Time
}

func NewDisputeUsecase(disputes DisputeRepository, users IdentityResolver, letters LetterGenerator, log *zap.Logger) *DisputeUsecase {
	return &DisputeUsecase{
		disputes: disputes,
		users:    users,
		letters:  letters,
		log:      log,
		now:      time.Now,
	}
}

// Create files a pending dispute for userID.
func (u *DisputeUsecase) Create(ctx context.Context, userID string, in CreateInput) (*entity.Dispute, error) {
	owner, err := u.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !in.DisputeReason.IsValid() {
		return nil, apperror.ValidationFailed("disputeReason", "invalid dispute reason")
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, apperror.ValidationFailed("priority", "invalid priority")
	}

	now := u.now()
	docs := make([]entity.SupportingDocument, 0, len(in.SupportingDocuments))
	for _, doc := range in.SupportingDocuments {
		docs = append(docs, entity.SupportingDocument{
			ID:          uuid.NewString(),
			FileName:    doc.FileName,
			FileType:    doc.FileType,
			FileSize:    doc.FileSize,
			Description: doc.Description,
			UploadedAt:  now,
		})
	}

	d := &entity.Dispute{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Owner:               &owner,
		Title:               in.Title,
		Description:         in.Description,
		DisputeReason:       in.DisputeReason,
		Status:              entity.StatusPending,
		AccountName:         in.AccountName,
		AccountNumber:       in.AccountNumber,
		CreditorName:        in.CreditorName,
		DisputeAmount:       in.DisputeAmount,
		DateOfService:       in.DateOfService,
		SupportingDocuments: docs,
		Priority:            priority,
	}
	if err := u.disputes.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create dispute: %w", err)
	}

	u.log.Info("dispute created", zap.String("dispute_id", d.ID), zap.String("user_id", userID))
	return d, nil
}

// Submit moves the caller's own pending dispute to submitted.
func (u *DisputeUsecase) Submit(ctx context.Context, disputeID string, caller identity.Caller) (*entity.Dispute, error) {
	d, err := u.find(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if d.UserID != caller.ID {
		return nil, apperror.Forbidden("you can only submit your own disputes")
	}
	if d.Status != entity.StatusPending {
		return nil, apperror.Forbidden("only pending disputes can be submitted")
	}

	d.Status = entity.StatusSubmitted
	if d.SubmittedAt == nil {
		now := u.now()
		d.SubmittedAt = &now
	}
	if err := u.update(ctx, d); err != nil {
		return nil, err
	}

	u.log.Info("dispute submitted", zap.String("dispute_id", d.ID), zap.String("user_id", caller.ID))
	return d, nil
}

// UpdateStatus sets any status on a dispute. The acting user is looked up
// again so a stale token role is not trusted.
func (u *DisputeUsecase) UpdateStatus(ctx context.Context, disputeID string, in StatusUpdate, actingAdminID string) (*entity.Dispute, error) {
	admin, err := u.users.ResolveIdentity(ctx, actingAdminID)
	if err != nil && !errors.Is(err, identity.ErrUnknownUser) {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if err := requireAdmin(admin.Caller()); err != nil {
		return nil, err
	}
	if !in.Status.IsValid() {
		return nil, apperror.ValidationFailed("status", "invalid dispute status")
	}

	d, err := u.find(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	d.Status = in.Status
	d.AdminNotes = in.AdminNotes
	d.ResolutionNotes = in.ResolutionNotes
	if in.Status == entity.StatusSubmitted && d.SubmittedAt == nil {
		d.SubmittedAt = &now
	}
	if in.Status == entity.StatusResolved && d.ResolvedAt == nil {
		d.ResolvedAt = &now
	}
	if err := u.update(ctx, d); err != nil {
		return nil, err
	}

	u.log.Info("dispute status updated",
		zap.String("dispute_id", d.ID),
		zap.String("status", string(d.Status)),
		zap.String("admin_id", actingAdminID))
	return d, nil
}

// Delete removes a dispute. Owners may delete only pending ones.
func (u *DisputeUsecase) Delete(ctx context.Context, disputeID string, caller identity.Caller) error {
	d, err := u.find(ctx, disputeID)
	if err != nil {
		return err
	}
	if err := canDelete(caller, d); err != nil {
		return err
	}

	if err := u.disputes.Delete(ctx, disputeID); err != nil {
		if errors.Is(err, ErrDisputeNotFound) {
			return apperror.NotFound("dispute")
		}
		return fmt.Errorf("delete dispute: %w", err)
	}

	u.log.Info("dispute deleted",
		zap.String("dispute_id", disputeID),
		zap.String("user_id", caller.ID),
		zap.String("role", string(caller.Role)))
	return nil
}

func (u *DisputeUsecase) Get(ctx context.Context, disputeID string, caller identity.Caller) (*entity.Dispute, error) {
	d, err := u.find(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if !canAccessDispute(caller, d) {
		return nil, apperror.Forbidden("you can only view your own disputes")
	}
	return d, nil
}

// ListByUser returns the user's disputes, newest first.
func (u *DisputeUsecase) ListByUser(ctx context.Context, userID string) ([]*entity.Dispute, error) {
	out, err := u.disputes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list disputes: %w", err)
	}
	return out, nil
}

// ListAll returns every dispute, newest first. Callers are admin-gated at the route.
func (u *DisputeUsecase) ListAll(ctx context.Context) ([]*entity.Dispute, error) {
	out, err := u.disputes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list disputes: %w", err)
	}
	return out, nil
}

func (u *DisputeUsecase) Stats(ctx context.Context) (*Stats, error) {
	counts, err := u.disputes.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count disputes: %w", err)
	}

	s := &Stats{
		Pending:     counts[entity.StatusPending],
		Submitted:   counts[entity.StatusSubmitted],
		UnderReview: counts[entity.StatusUnderReview],
		Resolved:    counts[entity.StatusResolved],
		Rejected:    counts[entity.StatusRejected],
	}
	for _, n := range counts {
		s.Total += n
	}
	s.ResolutionRate = ResolutionRate(s.Resolved, s.Total)
	return s, nil
}

// ResolutionRate returns resolved/total as a percentage rounded to two decimals.
func ResolutionRate(resolved, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(resolved)/float64(total)*100*100) / 100
}

// GenerateDisputeLetter writes a letter from the dispute's own fields and
// stores its text on the dispute. Status is left untouched.
func (u *DisputeUsecase) GenerateDisputeLetter(ctx context.Context, disputeID string, caller identity.Caller, tone letter.Tone, details string) (*entity.Dispute, *letter.Letter, error) {
	d, err := u.find(ctx, disputeID)
	if err != nil {
		return nil, nil, err
	}
	if !canAccessDispute(caller, d) {
		return nil, nil, apperror.Forbidden("you can only generate letters for your own disputes")
	}

	if strings.TrimSpace(details) == "" {
		details = d.Description
	}
	l, err := u.letters.Generate(ctx, letter.Request{
		DisputeTitle:      d.Title,
		DisputeReason:     string(d.DisputeReason),
		AccountName:       deref(d.AccountName),
		CreditorName:      deref(d.CreditorName),
		AccountNumber:     deref(d.AccountNumber),
		DisputeAmount:     d.DisputeAmount,
		DateOfService:     d.DateOfService,
		AdditionalDetails: details,
		Tone:              tone,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("generate letter: %w", err)
	}

	d.DisputeLetter = &l.Letter
	if err := u.update(ctx, d); err != nil {
		return nil, nil, err
	}
	return d, l, nil
}

func (u *DisputeUsecase) find(ctx context.Context, id string) (*entity.Dispute, error) {
	d, err := u.disputes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDisputeNotFound) {
			return nil, apperror.NotFound("dispute")
		}
		return nil, fmt.Errorf("find dispute: %w", err)
	}
	return d, nil
}

func (u *DisputeUsecase) update(ctx context.Context, d *entity.Dispute) error {
	if err := u.disputes.Update(ctx, d); err != nil {
		if errors.Is(err, ErrDisputeNotFound) {
			return apperror.NotFound("dispute")
		}
		return fmt.Errorf("update dispute: %w", err)
	}
	return nil
}

func (u *DisputeUsecase) resolve(ctx context.Context, userID string) (identity.Identity, error) {
	id, err := u.users.ResolveIdentity(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			return identity.Identity{}, apperror.NotFound("user")
		}
		return identity.Identity{}, fmt.Errorf("resolve user: %w", err)
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package ledger

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/ledger/database"
	apperrors "github.com/kbukum/ledger/errors"
	"github.com/kbukum/ledger/logger"
	"github.com/kbukum/ledger/observability"
	"github.com/kbukum/ledger/validation"
)

// Service manages a user's entries.
type Service struct {
	repo Repository
	log  *logger.Logger
	now  func() time.Time
}

// NewService creates a Service on repo.
func NewService(repo Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{repo: repo, log: log.WithComponent("ledger"), now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID int64, in Input) (*Entry, error) {
	in = in.normalized()
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	e := &Entry{UserID: userID, CreatedAt: now, UpdatedAt: now}
	in.apply(e)
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, database.FromDatabase(err, "entry")
	}

	s.log.WithContext(ctx).Debug("Entry created", logger.Fields(logger.FieldEntryID, e.ID))
	return e, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Entry, error) {
	e, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, s.mapErr(err, id)
	}
	return e, nil
}

// Update replaces the editable fields of an entry.
func (s *Service) Update(ctx context.Context, userID, id int64, in Input) (*Entry, error) {
	in = in.normalized()
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	e, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, s.mapErr(err, id)
	}
	in.apply(e)
	e.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, s.mapErr(err, id)
	}

	s.log.WithContext(ctx).Debug("Entry updated", logger.Fields(logger.FieldEntryID, id))
	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.mapErr(err, id)
	}
	s.log.WithContext(ctx).Debug("Entry deleted", logger.Fields(logger.FieldEntryID, id))
	return nil
}

// List returns entries newest first (occurred_on, then id) with the total
// count and summary. A zero Limit means DefaultLimit.
func (s *Service) List(ctx context.Context, userID int64, page Page) (listing Listing, err error) {
	ctx, span := observability.StartSpan(ctx, "ledger.List",
		attribute.Int("page.limit", page.Limit),
		attribute.Int("page.offset", page.Offset),
	)
	defer func() { observability.EndSpan(span, err) }()

	if page.Limit == 0 {
		page.Limit = DefaultLimit
	}
	v := validation.New().
		Range("limit", page.Limit, 1, MaxLimit).
		Min("offset", page.Offset, 0)
	if appErr := v.Validate(); appErr != nil {
		return Listing{}, appErr
	}

	listing, err = s.repo.List(ctx, userID, page)
	if err != nil {
		return Listing{}, database.FromDatabase(err, "entry")
	}
	span.SetAttributes(attribute.Int64("listing.total", listing.Total))
	return listing, nil
}

func (s *Service) mapErr(err error, id int64) error {
	if errors.Is(err, ErrEntryNotFound) {
		return apperrors.NotFound("entry", strconv.FormatInt(id, 10))
	}
	return database.FromDatabase(err, "entry")
}

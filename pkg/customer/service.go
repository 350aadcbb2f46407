package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mihaimyh/qondesk/pkg/qondesk"
	"github.com/mihaimyh/qondesk/pkg/qonversion"
)

// API is the slice of the Qonversion client the service needs.
type API interface {
	ResolveIdentity(ctx context.Context, email string) (*qonversion.Identity, error)
	GetUser(ctx context.Context, userID string) (*qonversion.User, error)
	GetUserProperties(ctx context.Context, userID string) ([]qonversion.Property, error)
	GetEntitlements(ctx context.Context, userID string) ([]qonversion.Entitlement, error)
}

// Config holds service configuration.
type Config struct {
	// API is the Qonversion client (required).
	API API

	// Logger is optional structured logging. Defaults to no-op.
	Logger qondesk.Logger

	// Metrics is optional operation tracking. Defaults to no-op.
	Metrics qondesk.Metrics
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.API == nil {
		return fmt.Errorf("API client is required")
	}
	return nil
}

// Service resolves a customer email to a normalized subscription summary.
type Service struct {
	api     API
	logger  qondesk.Logger
	metrics qondesk.Metrics
}

// NewService creates a new customer lookup service.
func NewService(config Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = &qondesk.NoopLogger{}
	}
	metrics := config.Metrics
	if metrics == nil {
		metrics = &qondesk.NoopMetrics{}
	}

	return &Service{
		api:     config.API,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// GetCustomerData resolves the email and builds the customer summary.
//
// A nil summary means "no customer record": either the email is unknown to
// Qonversion or the lookup failed. Failures are logged, never returned - the
// sidebar must always render. The three post-identity fetches run
// concurrently; each one degrades to absent data on its own failure without
// affecting the others.
func (s *Service) GetCustomerData(ctx context.Context, email string) *Summary {
	start := time.Now()
	defer func() {
		s.metrics.RecordLookupDuration(time.Since(start))
	}()

	identity, err := s.api.ResolveIdentity(ctx, email)
	if err != nil {
		if errors.Is(err, qonversion.ErrIdentityNotFound) {
			s.metrics.RecordLookup("not_found")
			s.logger.Debug("customer not found in qonversion",
				qondesk.Field{Key: "email", Value: email},
			)
			return nil
		}
		s.metrics.RecordLookup("error")
		s.logger.Error("qonversion customer lookup failed",
			qondesk.Field{Key: "email", Value: email},
			qondesk.Field{Key: "error", Value: err.Error()},
		)
		return nil
	}
	if identity == nil || identity.UserID == "" {
		s.metrics.RecordLookup("not_found")
		return nil
	}

	userID := identity.UserID

	var (
		user  *qonversion.User
		props []qonversion.Property
		ents  []qonversion.Entitlement
	)

	// Best-effort fetches: a failed call yields absent data for that slice
	// only, so every goroutine returns nil to the group.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.api.GetUser(gctx, userID)
		if err != nil {
			s.debugFetchFailure("user", userID, err)
			return nil
		}
		user = u
		return nil
	})
	g.Go(func() error {
		p, err := s.api.GetUserProperties(gctx, userID)
		if err != nil {
			s.debugFetchFailure("properties", userID, err)
			return nil
		}
		props = p
		return nil
	})
	g.Go(func() error {
		e, err := s.api.GetEntitlements(gctx, userID)
		if err != nil {
			s.debugFetchFailure("entitlements", userID, err)
			return nil
		}
		ents = e
		return nil
	})
	_ = g.Wait()

	summary := newSummary(user, props, ents)
	summary.QonversionUserID = userID

	s.metrics.RecordLookup("found")
	s.logger.Debug("qonversion customer lookup finished",
		qondesk.Field{Key: "email", Value: email},
		qondesk.Field{Key: "user_id", Value: userID},
		qondesk.Field{Key: "status", Value: string(summary.SubscriptionStatus)},
	)
	return summary
}

func (s *Service) debugFetchFailure(what, userID string, err error) {
	s.logger.Debug("qonversion fetch failed, treating as absent",
		qondesk.Field{Key: "fetch", Value: what},
		qondesk.Field{Key: "user_id", Value: userID},
		qondesk.Field{Key: "error", Value: err.Error()},
	)
}

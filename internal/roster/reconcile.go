package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"integrityindex/internal/politician/models"
	"integrityindex/internal/politician/store"
	rostermetrics "integrityindex/internal/roster/metrics"
	"integrityindex/pkg/platform/sentinel"
)

// StoreTx provides a transactional boundary for a reconciliation run.
// Implementations wrap a database transaction; the run's writes commit only if
// fn returns nil.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(st store.Store) error) error
}

// Action is the per-record reconciliation decision.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped-invalid"
)

// Outcome records the decision for one roster record, in input order.
type Outcome struct {
	Name   string
	Action Action
	Reason string
}

// Summary reports a reconciliation run. Processed counts records that were
// created or updated; skipped records are listed but not counted.
type Summary struct {
	Outcomes  []Outcome
	Processed int
}

// Reconciler matches normalized roster records against the store and applies
// create-or-update decisions inside a single transactional scope.
type Reconciler struct {
	tx      StoreTx
	logger  *slog.Logger
	metrics *rostermetrics.Metrics
}

// New constructs a reconciler.
func New(tx StoreTx, logger *slog.Logger, m *rostermetrics.Metrics) *Reconciler {
	return &Reconciler{tx: tx, logger: logger, metrics: m}
}

// Run reconciles the record sequence against the store. Records that fail
// normalization are skipped and logged; any storage fault aborts the run,
// rolls back all of its writes, and is returned to the caller.
//
// A record matches an existing entity iff it carries a govtrack id already in
// the store. On match all mutable fields are updated in place; govtrack_id and
// the entity id are preserved. Records without a govtrack id always create a
// new entity.
func (r *Reconciler) Run(ctx context.Context, records []Record) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Outcomes: make([]Outcome, 0, len(records))}

	err := r.tx.RunInTx(ctx, func(st store.Store) error {
		for _, rec := range records {
			normalized, err := Normalize(rec)
			if err != nil {
				var rejection *RejectionError
				if !errors.As(err, &rejection) {
					return err
				}
				summary.Outcomes = append(summary.Outcomes, Outcome{
					Name:   rejection.Name,
					Action: ActionSkipped,
					Reason: rejection.Reason,
				})
				r.metrics.IncrementSkipped()
				r.logger.Warn("skipping record", "name", rejection.Name, "reason", rejection.Reason)
				continue
			}

			outcome, err := r.apply(ctx, st, normalized)
			if err != nil {
				return err
			}
			summary.Outcomes = append(summary.Outcomes, outcome)
			summary.Processed++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile roster: %w", err)
	}

	r.metrics.ObserveRun(start)
	return summary, nil
}

func (r *Reconciler) apply(ctx context.Context, st store.Store, p *models.Politician) (Outcome, error) {
	if p.GovtrackID != "" {
		existing, err := st.FindByExternalID(ctx, store.KindGovtrack, p.GovtrackID)
		if err == nil {
			// govtrack_id is the match key and assumed stable; keep it and
			// the entity id, replace everything else.
			existing.Name = p.Name
			existing.State = p.State
			existing.OfficeType = p.OfficeType
			existing.Party = p.Party
			existing.TermStart = p.TermStart
			existing.TermEnd = p.TermEnd
			existing.OpensecretsID = p.OpensecretsID
			existing.FollowTheMoneyID = p.FollowTheMoneyID
			if err := st.Update(ctx, existing); err != nil {
				return Outcome{}, err
			}
			r.metrics.IncrementUpdated()
			r.logger.Info("updated", "name", p.Name, "state", p.State, "office_type", p.OfficeType)
			return Outcome{Name: p.Name, Action: ActionUpdated}, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return Outcome{}, err
		}
	}

	if err := st.Create(ctx, p); err != nil {
		return Outcome{}, err
	}
	r.metrics.IncrementCreated()
	r.logger.Info("added", "name", p.Name, "state", p.State, "office_type", p.OfficeType)
	return Outcome{Name: p.Name, Action: ActionCreated}, nil
}

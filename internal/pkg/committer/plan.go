// Package committer collects Spanner mutations from multiple repositories
// into a single CommitPlan and applies them atomically.
//
// The flow in a usecase is:
//
//	// 1. Load state, call domain logic
//	rec, err := overrides.Get(ctx, productID, country)
//
//	// 2. Repositories return mutations, they do not apply them
//	plan := committer.NewPlan()
//	mut, err := overrides.UpsertMut(rec, now)
//	plan.Add(mut)
//
//	// 3. Audit events go into the same plan
//	plan.Add(audit.InsertMut(auditEvent))
//
//	// 4. Apply everything atomically
//	return comm.Apply(ctx, plan)
//
// Override edits are last-write-wins: there is no version column and no
// optimistic locking on overrides. The engine is operated by a single
// logical editor per (product, country) pair.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Applier executes CommitPlans. Usecases depend on this interface so tests
// can capture plans without a Spanner client.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

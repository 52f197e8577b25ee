package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/budgetbook-dev/budgetbook/internal/auditlog"
	"github.com/budgetbook-dev/budgetbook/internal/config"
	"github.com/budgetbook-dev/budgetbook/internal/gitops"
	"github.com/budgetbook-dev/budgetbook/internal/ledger"
	"github.com/budgetbook-dev/budgetbook/internal/model"
	"github.com/budgetbook-dev/budgetbook/internal/storage"
)

// ledgerEnv bundles everything a command needs: config, the snapshot
// database, and a ready engine Service.
type ledgerEnv struct {
	root string
	cfg  *config.Config
	db   *storage.SQLiteStore
	svc  *ledger.Service
}

// openLedger loads the ledger at dir. The engine only becomes ready once
// the initial snapshot load completes.
func openLedger(dir string) (*ledgerEnv, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("not a budgetbook ledger (run init first): %w", err)
	}

	db, err := storage.Open(filepath.Join(root, cfg.Database.Path))
	if err != nil {
		return nil, err
	}

	snap, err := db.Load(context.Background())
	if err != nil {
		db.Close()
		return nil, err
	}

	store := ledger.NewStore()
	store.Load(snap)

	return &ledgerEnv{
		root: root,
		cfg:  cfg,
		db:   db,
		svc:  ledger.NewService(store),
	}, nil
}

func (e *ledgerEnv) close() {
	e.db.Close()
}

// persist writes the current snapshot back, appends an audit entry, and
// auto-commits when configured. Audit and git failures warn instead of
// failing the already-applied mutation.
func (e *ledgerEnv) persist(action, details, entityID string) error {
	if err := e.db.Save(context.Background(), e.svc.Store().Snapshot()); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}

	entry := auditlog.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
		EntityID:  entityID,
	}
	if err := auditlog.Append(e.root, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write audit log: %v\n", err)
	}

	if e.cfg.Git.AutoCommit && gitops.IsRepo(e.root) {
		msg := fmt.Sprintf("%s: %s", action, details)
		if _, err := gitops.Open(e.root).CommitAll(msg, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail); err != nil {
			fmt.Fprintf(os.Stderr, "warning: auto-commit failed: %v\n", err)
		}
	}
	return nil
}

// findAccount resolves an account by exact name, falling back to id.
func (e *ledgerEnv) findAccount(ref string) (model.Account, error) {
	for _, a := range e.svc.Store().Accounts() {
		if a.Name == ref {
			return a, nil
		}
	}
	if a, ok := e.svc.Store().Account(ref); ok {
		return a, nil
	}
	return model.Account{}, fmt.Errorf("unknown account %q", ref)
}

// findEnvelope resolves an envelope by exact name, falling back to id.
func (e *ledgerEnv) findEnvelope(ref string) (model.Envelope, error) {
	for _, env := range e.svc.Store().Envelopes() {
		if env.Name == ref {
			return env, nil
		}
	}
	if env, ok := e.svc.Store().Envelope(ref); ok {
		return env, nil
	}
	return model.Envelope{}, fmt.Errorf("unknown envelope %q", ref)
}

// ensurePayee resolves a payee by exact name, creating it when missing.
func (e *ledgerEnv) ensurePayee(name string) (model.Payee, error) {
	if p, ok := e.svc.Store().PayeeByName(name); ok {
		return p, nil
	}
	return e.svc.AddPayee(ledger.PayeeParams{Name: name})
}

// parseDate parses a YYYY-MM-DD flag value; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

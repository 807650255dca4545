package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/store"
)

// ProfileStore implements the store.ProfileStore interface using a
// PostgreSQL database as the storage backend. The profile lives in a
// single JSONB row addressed by the fixed logical key; Transform takes
// a row lock on it so concurrent writers serialize per profile.
type ProfileStore struct {
	db     *sql.DB
	logger *slog.Logger
	key    string
	now    func() time.Time
}

// NewProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. It accepts a database connection that should
// be initialized and managed by the caller.
func NewProfileStore(db *sql.DB, logger *slog.Logger) *ProfileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
		key:    domain.ProfileKey,
		now:    time.Now,
	}
}

// Ensure ProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*ProfileStore)(nil)

// Load implements store.ProfileStore.Load.
func (s *ProfileStore) Load(ctx context.Context) (*domain.UserProfile, error) {
	return s.load(ctx, s.db, false)
}

// Save implements store.ProfileStore.Save.
func (s *ProfileStore) Save(ctx context.Context, profile *domain.UserProfile) error {
	if profile == nil {
		return store.NewStoreError("profile", "save", "profile is nil", store.ErrInvalidEntity)
	}
	if err := profile.Validate(); err != nil {
		return store.NewStoreError("profile", "save", "profile failed validation",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}
	return s.save(ctx, s.db, profile)
}

// Transform implements store.ProfileStore.Transform.
//
// The read-modify-write cycle runs inside one transaction with the
// profile row locked (SELECT ... FOR UPDATE), so a second writer blocks
// until the first commits. An absent row is materialized as the default
// profile before fn runs, which makes first-access creation part of the
// same critical section.
func (s *ProfileStore) Transform(ctx context.Context, fn store.TransformFn) (*domain.UserProfile, error) {
	var result *domain.UserProfile

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		current, err := s.load(ctx, tx, true)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return store.NewStoreError("profile", "transform", "transform returned nil profile",
				store.ErrInvalidEntity)
		}
		if err := next.Validate(); err != nil {
			return store.NewStoreError("profile", "transform", "transformed profile failed validation",
				fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
		}

		if err := s.save(ctx, tx, next); err != nil {
			return err
		}

		result = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// load reads and decodes the profile row. Absent rows and unparseable
// blobs both yield the default profile; corruption is logged and
// recovered, never surfaced to the caller.
func (s *ProfileStore) load(ctx context.Context, q store.DBTX, forUpdate bool) (*domain.UserProfile, error) {
	query := `SELECT data FROM profiles WHERE key = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var raw []byte
	err := q.QueryRowContext(ctx, query, s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.InfoContext(ctx, "no stored profile, creating default",
			slog.String("key", s.key))
		return domain.NewDefaultProfile(s.now()), nil
	}
	if err != nil {
		return nil, store.NewStoreError("profile", "load", "query failed", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		s.logger.WarnContext(ctx, "stored profile is unparseable, substituting default",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return domain.NewDefaultProfile(s.now()), nil
	}

	normalizeProfile(&profile)
	return &profile, nil
}

// save upserts the encoded profile under the logical key.
func (s *ProfileStore) save(ctx context.Context, q store.DBTX, profile *domain.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return store.NewStoreError("profile", "save", "failed to encode profile", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO profiles (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		s.key, raw)
	if err != nil {
		return store.NewStoreError("profile", "save", "upsert failed", err)
	}

	return nil
}

// normalizeProfile repairs nil collections on profiles decoded from
// older blobs so downstream code can index maps without nil checks.
func normalizeProfile(p *domain.UserProfile) {
	if p.Achievements == nil {
		p.Achievements = []domain.Achievement{}
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	if p.Mastery == nil {
		p.Mastery = make(map[string]int)
	}
	if p.DetailedMastery == nil {
		p.DetailedMastery = make(map[string]int)
	}
	if p.History == nil {
		p.History = []domain.ActivityLogEntry{}
	}
	if p.DailyActivity == nil {
		p.DailyActivity = make(map[string]int)
	}
	if p.UnlockedModules == nil {
		p.UnlockedModules = []string{}
	}
	if p.Analytics.DailyXP == nil {
		p.Analytics.DailyXP = make(map[string]int)
	}
	if p.Analytics.WeeklyXP == nil {
		p.Analytics.WeeklyXP = make(map[string]int)
	}
	if p.Analytics.MonthlyXP == nil {
		p.Analytics.MonthlyXP = make(map[string]int)
	}
	if p.Analytics.DomainVelocity == nil {
		p.Analytics.DomainVelocity = make(map[string]int)
	}
	if p.Language == "" {
		p.Language = domain.LanguageEnglish
	}
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/models"
)

// preferencesRepository is the PostgreSQL-backed implementation of
// [PreferencesRepository]. Goal and training-type sets are stored as jsonb
// arrays so reads come back as a single column per set.
type preferencesRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPreferencesRepository constructs a [PreferencesRepository] backed by
// the provided database connection and logger.
func NewPreferencesRepository(db *DB, logger *logger.Logger) PreferencesRepository {
	logger.Debug().Msg("creating preferences repository")
	return &preferencesRepository{
		db:     db,
		logger: logger,
	}
}

// CreateEmpty inserts an empty preferences row for the user. Existing rows
// are left untouched, so calling it for an already provisioned user is safe.
func (r *preferencesRepository) CreateEmpty(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createEmptyPreferences, userID); err != nil {
		log.Err(err).Str("func", "*preferencesRepository.CreateEmpty").Msg("insert empty preferences failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// GetPreferences returns the user's stored preference sets. A user without a
// row gets the empty sets rather than [ErrNotFound]: preferences always
// "exist" conceptually, they just may be empty.
func (r *preferencesRepository) GetPreferences(ctx context.Context, userID int64) (models.Preferences, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getPreferences, userID)

	prefs, err := scanPreferences(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EmptyPreferences(userID), nil
		}
		log.Err(err).Str("func", "*preferencesRepository.GetPreferences").Msg("error: scanning error")
		return models.Preferences{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return prefs, nil
}

// ReplacePreferences overwrites both preference sets wholesale and returns
// the stored result. Upserts, so it works for users created before the
// preferences table gained a row for them.
func (r *preferencesRepository) ReplacePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	log := logger.FromContext(ctx)

	goals, err := json.Marshal(emptyIfNil(prefs.Goals))
	if err != nil {
		return models.Preferences{}, fmt.Errorf("marshaling goals: %w", err)
	}
	trainingTypes, err := json.Marshal(emptyIfNil(prefs.TrainingTypes))
	if err != nil {
		return models.Preferences{}, fmt.Errorf("marshaling training types: %w", err)
	}

	row := r.db.QueryRowContext(ctx, replacePreferences, prefs.UserID, goals, trainingTypes)

	stored, err := scanPreferences(row)
	if err != nil {
		log.Err(err).Str("func", "*preferencesRepository.ReplacePreferences").Msg("error: scanning error")
		return models.Preferences{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return stored, nil
}

func scanPreferences(row *sql.Row) (models.Preferences, error) {
	var (
		prefs         models.Preferences
		goals         []byte
		trainingTypes []byte
	)

	err := row.Scan(&prefs.UserID, &goals, &trainingTypes, &prefs.UpdatedAt)
	if err != nil {
		return models.Preferences{}, err
	}

	if err := json.Unmarshal(goals, &prefs.Goals); err != nil {
		return models.Preferences{}, fmt.Errorf("unmarshaling goals: %w", err)
	}
	if err := json.Unmarshal(trainingTypes, &prefs.TrainingTypes); err != nil {
		return models.Preferences{}, fmt.Errorf("unmarshaling training types: %w", err)
	}

	prefs.Goals = emptyIfNil(prefs.Goals)
	prefs.TrainingTypes = emptyIfNil(prefs.TrainingTypes)

	return prefs, nil
}

func emptyIfNil(set []string) []string {
	if set == nil {
		return []string{}
	}
	return set
}

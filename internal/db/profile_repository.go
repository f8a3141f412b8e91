package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/auraforge/internal/model"
)

// ProfileRow — строка таблицы profiles.
type ProfileRow struct {
	State      model.PlayerState
	AnvilLevel int
}

// ProfileRepository управляет профилями в БД.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository создаёт новый ProfileRepository.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const upsertProfileSQL = `
	INSERT INTO profiles (
		id, name, class, level, xp, xp_to_next,
		strength, dexterity, intellect, vitality, unspent_points,
		gold, essence, mana_crystals, energy, max_energy,
		energy_packs_today, energy_pack_day, anvil_level
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		class = EXCLUDED.class,
		level = EXCLUDED.level,
		xp = EXCLUDED.xp,
		xp_to_next = EXCLUDED.xp_to_next,
		strength = EXCLUDED.strength,
		dexterity = EXCLUDED.dexterity,
		intellect = EXCLUDED.intellect,
		vitality = EXCLUDED.vitality,
		unspent_points = EXCLUDED.unspent_points,
		gold = EXCLUDED.gold,
		essence = EXCLUDED.essence,
		mana_crystals = EXCLUDED.mana_crystals,
		energy = EXCLUDED.energy,
		max_energy = EXCLUDED.max_energy,
		energy_packs_today = EXCLUDED.energy_packs_today,
		energy_pack_day = EXCLUDED.energy_pack_day,
		anvil_level = EXCLUDED.anvil_level,
		updated_at = NOW()
`

func profileArgs(row ProfileRow) []any {
	s := row.State
	return []any{
		s.ID, s.Name, int16(s.Class), s.Level, s.XP, s.XPToNext,
		s.Base.Strength, s.Base.Dexterity, s.Base.Intellect, s.Base.Vitality, s.UnspentPoints,
		s.Gold, s.Essence, s.ManaCrystals, s.Energy, s.MaxEnergy,
		s.EnergyPacksToday, s.EnergyPackDay, row.AnvilLevel,
	}
}

// Save inserts or updates a profile.
func (r *ProfileRepository) Save(ctx context.Context, row ProfileRow) error {
	if _, err := r.db.Exec(ctx, upsertProfileSQL, profileArgs(row)...); err != nil {
		return fmt.Errorf("saving profile %s: %w", row.State.ID, err)
	}
	return nil
}

// SaveTx inserts or updates a profile within an existing transaction.
func (r *ProfileRepository) SaveTx(ctx context.Context, tx pgx.Tx, row ProfileRow) error {
	if _, err := tx.Exec(ctx, upsertProfileSQL, profileArgs(row)...); err != nil {
		return fmt.Errorf("saving profile %s: %w", row.State.ID, err)
	}
	return nil
}

const selectProfileSQL = `
	SELECT id, name, class, level, xp, xp_to_next,
	       strength, dexterity, intellect, vitality, unspent_points,
	       gold, essence, mana_crystals, energy, max_energy,
	       energy_packs_today, energy_pack_day, anvil_level
	FROM profiles
`

func scanProfile(row pgx.Row) (ProfileRow, error) {
	var (
		p     ProfileRow
		class int16
	)
	s := &p.State
	err := row.Scan(
		&s.ID, &s.Name, &class, &s.Level, &s.XP, &s.XPToNext,
		&s.Base.Strength, &s.Base.Dexterity, &s.Base.Intellect, &s.Base.Vitality, &s.UnspentPoints,
		&s.Gold, &s.Essence, &s.ManaCrystals, &s.Energy, &s.MaxEnergy,
		&s.EnergyPacksToday, &s.EnergyPackDay, &p.AnvilLevel,
	)
	s.Class = model.Class(class)
	return p, err
}

// Load returns a profile by id. Returns ErrNotFound if it does not exist.
func (r *ProfileRepository) Load(ctx context.Context, id uuid.UUID) (ProfileRow, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, selectProfileSQL+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return ProfileRow{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return ProfileRow{}, fmt.Errorf("querying profile %s: %w", id, err)
	}
	return p, nil
}

// List returns profiles ordered by level (desc) then name.
func (r *ProfileRepository) List(ctx context.Context, limit int) ([]ProfileRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, selectProfileSQL+` ORDER BY level DESC, name LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	out := make([]ProfileRow, 0, limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile rows: %w", err)
	}
	return out, nil
}

// Delete removes a profile and (via cascade) its items.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting profile %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

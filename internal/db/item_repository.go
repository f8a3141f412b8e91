package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/auraforge/internal/model"
)

// ItemRow — предмет с местом хранения.
// SortOrder сохраняет порядок в сумке и inbox.
type ItemRow struct {
	Item       model.Item
	Location   model.ItemLocation
	SortOrder  int
	Source     string
	ReceivedAt time.Time // только для inbox
}

var itemColumns = []string{
	"id", "owner_id", "template_id", "name", "slot", "rarity", "quality", "level",
	"strength", "dexterity", "intellect", "vitality",
	"weapon_min", "weapon_max", "armor", "crit_rate", "crit_damage", "speed",
	"aura_bonus", "power", "sell_value",
	"location", "sort_order", "source", "received_at",
}

// ItemRepository управляет предметами в БД.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository создаёт новый ItemRepository.
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// SaveAllTx replaces every item of the owner within a transaction.
func (r *ItemRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, items []ItemRow) error {
	if _, err := tx.Exec(ctx, `DELETE FROM items WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("deleting old items for %s: %w", ownerID, err)
	}
	if len(items) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(items))
	for _, row := range items {
		rows = append(rows, itemValues(ownerID, row))
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"items"}, itemColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("inserting items for %s: %w", ownerID, err)
	}
	return nil
}

func itemValues(ownerID uuid.UUID, row ItemRow) []any {
	it := row.Item
	var received *time.Time
	if !row.ReceivedAt.IsZero() {
		received = &row.ReceivedAt
	}
	return []any{
		it.ID, ownerID, it.TemplateID, it.Name,
		int16(it.Slot), int16(it.Rarity), int16(it.Quality), int32(it.Level),
		int32(it.Bonus.Strength), int32(it.Bonus.Dexterity), int32(it.Bonus.Intellect), int32(it.Bonus.Vitality),
		int32(it.WeaponDamageMin), int32(it.WeaponDamageMax), int32(it.Armor),
		it.CritRate, it.CritDamage, it.Speed,
		it.AuraBonusPercent, it.Power, it.SellValue,
		int16(row.Location), int32(row.SortOrder), row.Source, received,
	}
}

// LoadByOwner returns every item of the owner ordered by location and sort order.
func (r *ItemRepository) LoadByOwner(ctx context.Context, ownerID uuid.UUID) ([]ItemRow, error) {
	query := `
		SELECT id, template_id, name, slot, rarity, quality, level,
		       strength, dexterity, intellect, vitality,
		       weapon_min, weapon_max, armor, crit_rate, crit_damage, speed,
		       aura_bonus, power, sell_value,
		       location, sort_order, source, received_at
		FROM items
		WHERE owner_id = $1
		ORDER BY location, sort_order
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying items for %s: %w", ownerID, err)
	}
	defer rows.Close()

	// Сумка 10 + экипировка 10 + немного inbox.
	out := make([]ItemRow, 0, 24)
	for rows.Next() {
		var (
			row                   ItemRow
			slot, rarity, quality int16
			location              int16
			received              *time.Time
		)
		it := &row.Item
		err := rows.Scan(
			&it.ID, &it.TemplateID, &it.Name, &slot, &rarity, &quality, &it.Level,
			&it.Bonus.Strength, &it.Bonus.Dexterity, &it.Bonus.Intellect, &it.Bonus.Vitality,
			&it.WeaponDamageMin, &it.WeaponDamageMax, &it.Armor, &it.CritRate, &it.CritDamage, &it.Speed,
			&it.AuraBonusPercent, &it.Power, &it.SellValue,
			&location, &row.SortOrder, &row.Source, &received,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		it.Slot = model.Slot(slot)
		it.Rarity = model.Rarity(rarity)
		it.Quality = model.Quality(quality)
		row.Location = model.ItemLocation(location)
		if received != nil {
			row.ReceivedAt = *received
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}
	return out, nil
}

// CountByRarity returns how many stored items exist per rarity.
// Используется отчётом симулятора.
func (r *ItemRepository) CountByRarity(ctx context.Context) (map[model.Rarity]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT rarity, COUNT(*) FROM items GROUP BY rarity`)
	if err != nil {
		return nil, fmt.Errorf("counting items by rarity: %w", err)
	}
	defer rows.Close()

	out := make(map[model.Rarity]int64, model.RarityCount)
	for rows.Next() {
		var (
			rarity int16
			n      int64
		)
		if err := rows.Scan(&rarity, &n); err != nil {
			return nil, fmt.Errorf("scanning rarity count: %w", err)
		}
		out[model.Rarity(rarity)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rarity counts: %w", err)
	}
	return out, nil
}

package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/auraforge/internal/game/character"
	"github.com/udisondev/auraforge/internal/game/inventory"
	"github.com/udisondev/auraforge/internal/model"
)

// CharacterStore атомарно сохраняет/загружает персонажа:
// профиль, экипировку, сумку и inbox.
type CharacterStore struct {
	pool     *pgxpool.Pool
	profiles *ProfileRepository
	items    *ItemRepository
}

// NewCharacterStore создаёт новый сервис.
func NewCharacterStore(pool *pgxpool.Pool) *CharacterStore {
	return &CharacterStore{
		pool:     pool,
		profiles: NewProfileRepository(pool),
		items:    NewItemRepository(pool),
	}
}

func (s *CharacterStore) Profiles() *ProfileRepository { return s.profiles }
func (s *CharacterStore) Items() *ItemRepository       { return s.items }

// Save writes the profile and every item of c in a single transaction.
func (s *CharacterStore) Save(ctx context.Context, c *character.Character, anvilLevel int) error {
	id := c.ID()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for profile %s: %w", id, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "profile", id, "error", err)
		}
	}()

	if err := s.profiles.SaveTx(ctx, tx, ProfileRow{State: c.Player().State(), AnvilLevel: anvilLevel}); err != nil {
		return err
	}
	if err := s.items.SaveAllTx(ctx, tx, id, collectItems(c)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for profile %s: %w", id, err)
	}
	return nil
}

func collectItems(c *character.Character) []ItemRow {
	var rows []ItemRow
	for _, it := range c.Equipment().Items() {
		rows = append(rows, ItemRow{Item: it, Location: model.ItemLocationEquipped, SortOrder: int(it.Slot)})
	}
	for i, it := range c.Inventory().Items() {
		rows = append(rows, ItemRow{Item: it, Location: model.ItemLocationInventory, SortOrder: i})
	}
	for i, e := range c.Inventory().Inbox() {
		rows = append(rows, ItemRow{
			Item:       e.Item,
			Location:   model.ItemLocationInbox,
			SortOrder:  i,
			Source:     string(e.Source),
			ReceivedAt: e.ReceivedAt,
		})
	}
	return rows
}

// Load rebuilds a character with derived stats recomputed from stored data.
// Returns the character and its anvil level.
func (s *CharacterStore) Load(ctx context.Context, id uuid.UUID, capacity int) (*character.Character, int, error) {
	prof, err := s.profiles.Load(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.items.LoadByOwner(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	c := character.New(model.RestorePlayer(prof.State), capacity)

	var (
		bag   []model.Item
		inbox []inventory.InboxEntry
	)
	for _, row := range rows {
		switch row.Location {
		case model.ItemLocationEquipped:
			if _, err := c.Equipment().Equip(row.Item); err != nil {
				slog.Warn("skipping stored item", "profile", id, "item", row.Item.ID, "error", err)
			}
		case model.ItemLocationInventory:
			bag = append(bag, row.Item)
		case model.ItemLocationInbox:
			inbox = append(inbox, inventory.InboxEntry{
				Item:       row.Item,
				Source:     inventory.Source(row.Source),
				ReceivedAt: row.ReceivedAt,
			})
		}
	}
	c.Inventory().Restore(bag, inbox)
	c.Recompute()

	return c, prof.AnvilLevel, nil
}

package sqlite

import (
	"context"
	"time"

	"github.com/feedme/feedme/internal/api/domain"
)

type inventoryRepo struct {
	db dbtx
}

const inventorySelect = `
	SELECT ui.id, ui.user_id, ui.ingredient_id, i.name, ui.quantity, ui.unit,
	       ui.expires_at, ui.created_at, ui.updated_at
	FROM user_ingredients ui
	JOIN ingredients i ON i.id = ui.ingredient_id`

func scanInventoryItem(row interface{ Scan(dest ...any) error }) (domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.IngredientID,
		&item.IngredientName,
		&item.Quantity,
		&item.Unit,
		&item.ExpiresAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

func (r *inventoryRepo) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, inventorySelect+`
		WHERE ui.user_id = ?
		ORDER BY ui.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepo) GetInventoryItem(ctx context.Context, id string) (domain.InventoryItem, error) {
	row := r.db.QueryRowContext(ctx, inventorySelect+` WHERE ui.id = ?`, id)
	item, err := scanInventoryItem(row)
	if err != nil {
		return domain.InventoryItem{}, mapNotFound(err)
	}
	return item, nil
}

func (r *inventoryRepo) AddInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_ingredients (id, user_id, ingredient_id, quantity, unit, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.IngredientID, item.Quantity, item.Unit,
		item.ExpiresAt, item.CreatedAt, item.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *inventoryRepo) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_ingredients
		SET quantity = ?, unit = ?, expires_at = ?, updated_at = ?
		WHERE id = ?`,
		item.Quantity, item.Unit, item.ExpiresAt, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *inventoryRepo) RemoveInventoryItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_ingredients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *inventoryRepo) DeleteExpiredItems(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM user_ingredients
		WHERE expires_at IS NOT NULL AND expires_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

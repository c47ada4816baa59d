package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const productColumns = `id, branch_id, name, sku, unit_price, stock, reorder_level, is_active, created_at`

func (s *Store) ListProducts(ctx context.Context, branchID string) ([]Product, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+productColumns+" FROM products WHERE branch_id = $1 AND is_active = true ORDER BY name", branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.BranchID, &p.Name, &p.SKU, &p.UnitPrice, &p.Stock, &p.ReorderLevel, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// LowStock lists active products at or below their reorder level.
func (s *Store) LowStock(ctx context.Context, branchID string) ([]Product, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT "+productColumns+" FROM products WHERE branch_id = $1 AND is_active = true AND stock <= reorder_level ORDER BY name", branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.BranchID, &p.Name, &p.SKU, &p.UnitPrice, &p.Stock, &p.ReorderLevel, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) Product(ctx context.Context, productID string) (Product, error) {
	var p Product
	err := s.DB.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", productID,
	).Scan(&p.ID, &p.BranchID, &p.Name, &p.SKU, &p.UnitPrice, &p.Stock, &p.ReorderLevel, &p.IsActive, &p.CreatedAt)
	return p, err
}

func (s *Store) CreateProduct(ctx context.Context, p Product) (Product, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO products (branch_id, name, sku, unit_price, stock, reorder_level, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,true)
    RETURNING id, is_active, created_at
  `, p.BranchID, p.Name, p.SKU, p.UnitPrice, p.Stock, p.ReorderLevel).Scan(&p.ID, &p.IsActive, &p.CreatedAt)
	return p, err
}

// RecordMovement updates the product stock and writes the movement row in one
// transaction, locking the product row so concurrent movements serialize.
func (s *Store) RecordMovement(ctx context.Context, m StockMovement) (StockMovement, int, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return StockMovement{}, 0, err
	}
	defer tx.Rollback(ctx)

	var stock int
	if err := tx.QueryRow(ctx,
		"SELECT stock FROM products WHERE id = $1 FOR UPDATE", m.ProductID,
	).Scan(&stock); err != nil {
		return StockMovement{}, 0, err
	}

	next, err := ApplyMovement(stock, m.Kind, m.Quantity)
	if err != nil {
		return StockMovement{}, 0, err
	}
	if _, err := tx.Exec(ctx, "UPDATE products SET stock = $1 WHERE id = $2", next, m.ProductID); err != nil {
		return StockMovement{}, 0, err
	}

	err = tx.QueryRow(ctx, `
    INSERT INTO stock_movements (product_id, kind, quantity, reference, created_by)
    VALUES ($1,$2,$3,$4,NULLIF($5,''))
    RETURNING id, created_at
  `, m.ProductID, m.Kind, m.Quantity, m.Reference, m.CreatedBy).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return StockMovement{}, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return StockMovement{}, 0, err
	}
	return m, next, nil
}

func (s *Store) Movements(ctx context.Context, productID string, limit int) ([]StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, product_id, kind, quantity, COALESCE(reference, ''), COALESCE(created_by::text, ''), created_at
    FROM stock_movements
    WHERE product_id = $1
    ORDER BY created_at DESC
    LIMIT $2
  `, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []StockMovement
	for rows.Next() {
		var m StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.Reference, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

const orderColumns = `id, branch_id, supplier, status, COALESCE(created_by::text, ''), created_at, received_at`

func (s *Store) Order(ctx context.Context, orderID string) (PurchaseOrder, error) {
	var po PurchaseOrder
	err := s.DB.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM purchase_orders WHERE id = $1", orderID,
	).Scan(&po.ID, &po.BranchID, &po.Supplier, &po.Status, &po.CreatedBy, &po.CreatedAt, &po.ReceivedAt)
	if err != nil {
		return PurchaseOrder{}, err
	}
	items, err := s.orderItems(ctx, po.ID)
	if err != nil {
		return PurchaseOrder{}, err
	}
	po.Items = items
	return po, nil
}

func (s *Store) orderItems(ctx context.Context, orderID string) ([]PurchaseOrderItem, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT id, order_id, product_id, quantity, unit_cost FROM purchase_order_items WHERE order_id = $1 ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PurchaseOrderItem
	for rows.Next() {
		var item PurchaseOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitCost); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) ListOrders(ctx context.Context, branchID, status string) ([]PurchaseOrder, error) {
	query := "SELECT " + orderColumns + " FROM purchase_orders WHERE branch_id = $1"
	args := []any{branchID}
	if status != "" {
		args = append(args, status)
		query += " AND status = $2"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []PurchaseOrder
	for rows.Next() {
		var po PurchaseOrder
		if err := rows.Scan(&po.ID, &po.BranchID, &po.Supplier, &po.Status, &po.CreatedBy, &po.CreatedAt, &po.ReceivedAt); err != nil {
			return nil, err
		}
		orders = append(orders, po)
	}
	return orders, rows.Err()
}

func (s *Store) CreateOrder(ctx context.Context, po PurchaseOrder) (PurchaseOrder, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return PurchaseOrder{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
    INSERT INTO purchase_orders (branch_id, supplier, status, created_by)
    VALUES ($1,$2,$3,NULLIF($4,''))
    RETURNING id, created_at
  `, po.BranchID, po.Supplier, po.Status, po.CreatedBy).Scan(&po.ID, &po.CreatedAt)
	if err != nil {
		return PurchaseOrder{}, err
	}

	for i := range po.Items {
		item := &po.Items[i]
		item.OrderID = po.ID
		err = tx.QueryRow(ctx, `
      INSERT INTO purchase_order_items (order_id, product_id, quantity, unit_cost)
      VALUES ($1,$2,$3,$4)
      RETURNING id
    `, item.OrderID, item.ProductID, item.Quantity, item.UnitCost).Scan(&item.ID)
		if err != nil {
			return PurchaseOrder{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return PurchaseOrder{}, err
	}
	return po, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	query := "UPDATE purchase_orders SET status = $1 WHERE id = $2"
	if status == OrderReceived {
		query = "UPDATE purchase_orders SET status = $1, received_at = now() WHERE id = $2"
	}
	tag, err := s.DB.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
